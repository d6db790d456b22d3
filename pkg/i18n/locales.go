package i18n

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is the default language code used when no language is detected
const DefaultLanguage = "en"

// maxAcceptLanguageLength caps header parsing work for oversized Accept-Language values.
const maxAcceptLanguageLength = 4096

// DefaultLocales lists the languages the site ships with.
var DefaultLocales = []string{"en", "es", "fr", "de", "pt", "uk"}

// Locales is an immutable set of supported two-letter language codes.
// The first code is the default.
type Locales struct {
	codes   []string
	matcher language.Matcher
}

// NewLocales validates the codes and builds a locale set.
func NewLocales(codes ...string) (*Locales, error) {
	if len(codes) == 0 {
		return nil, ErrNoLocales
	}

	normalized := make([]string, 0, len(codes))
	tags := make([]language.Tag, 0, len(codes))
	for _, c := range codes {
		code := strings.ToLower(strings.TrimSpace(c))
		if !isTwoLetter(code) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLocale, c)
		}
		base, err := language.ParseBase(code)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidLocale, c, err)
		}
		if slices.Contains(normalized, code) {
			continue
		}
		normalized = append(normalized, code)
		tags = append(tags, language.Make(base.String()))
	}

	return &Locales{
		codes:   normalized,
		matcher: language.NewMatcher(tags),
	}, nil
}

// MustLocales is like NewLocales but panics on invalid input.
func MustLocales(codes ...string) *Locales {
	l, err := NewLocales(codes...)
	if err != nil {
		panic(err)
	}
	return l
}

// Default returns the fallback locale.
func (l *Locales) Default() string { return l.codes[0] }

// Codes returns the supported codes, default first.
func (l *Locales) Codes() []string { return slices.Clone(l.codes) }

// Supports reports whether code is one of the supported locales.
func (l *Locales) Supports(code string) bool {
	return slices.Contains(l.codes, strings.ToLower(code))
}

// SplitPath separates a leading locale segment from a URL path.
// "/en/account" yields ("en", "/account"), "/en" yields ("en", "/").
// Paths without a supported locale segment are returned unchanged with an
// empty locale.
func (l *Locales) SplitPath(path string) (locale, rest string) {
	trimmed := strings.TrimPrefix(path, "/")
	segment, tail, hasTail := strings.Cut(trimmed, "/")
	if !isTwoLetter(segment) || !l.Supports(segment) {
		return "", path
	}
	if !hasTail || tail == "" {
		return strings.ToLower(segment), "/"
	}
	return strings.ToLower(segment), "/" + tail
}

// Match picks the best supported locale for an Accept-Language header value.
// Unparseable or unmatched headers yield the default locale.
func (l *Locales) Match(acceptLanguage string) string {
	if acceptLanguage == "" {
		return l.Default()
	}
	if len(acceptLanguage) > maxAcceptLanguageLength {
		acceptLanguage = acceptLanguage[:maxAcceptLanguageLength]
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return l.Default()
	}

	_, idx, confidence := l.matcher.Match(tags...)
	if confidence == language.No {
		return l.Default()
	}
	return l.codes[idx]
}

func isTwoLetter(s string) bool {
	if len(s) != 2 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}
