package web

import (
	"encoding/json"
	"net/http"
	"strings"
)

type webManifest struct {
	Name            string `json:"name"`
	ShortName       string `json:"short_name"`
	StartURL        string `json:"start_url"`
	Scope           string `json:"scope"`
	Display         string `json:"display"`
	BackgroundColor string `json:"background_color"`
	ThemeColor      string `json:"theme_color"`
	Lang            string `json:"lang"`
}

// manifest serves the PWA manifest.
func (s *Service) manifest(w http.ResponseWriter, _ *http.Request) {
	name := s.appName
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}

	w.Header().Set("Content-Type", "application/manifest+json")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_ = json.NewEncoder(w).Encode(webManifest{
		Name:            name,
		ShortName:       name,
		StartURL:        "/",
		Scope:           "/",
		Display:         "standalone",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#2f4858",
		Lang:            s.locales.Default(),
	})
}
