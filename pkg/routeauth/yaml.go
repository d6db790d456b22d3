package routeauth

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadYAML decodes a rule file and builds a table from it.
//
//	rules:
//	  - pattern: /studio
//	    requires_auth: true
//	    min_role: creator
//	  - pattern: /family
//	    requires_auth: true
//	    min_tier: family
//	    unauthorized_redirect: /account/plan
func LoadYAML(r io.Reader, opts ...TableOption) (*Table, error) {
	var f ruleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(ErrParseRules, err)
	}
	return NewTable(f.Rules, opts...)
}
