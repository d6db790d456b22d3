package handler

import (
	"net/http"
	"net/url"
)

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect sends a 303, or a client-side redirect for datastar requests.
func Redirect(target string) Response {
	return redirectResponse{url: target, code: http.StatusSeeOther}
}

// RedirectBack redirects to the same-origin Referer, or to fallback.
func RedirectBack(r *http.Request, fallback string) Response {
	if ref := r.Header.Get("Referer"); ref != "" && SameOrigin(ref, r) {
		return Redirect(ref)
	}
	return Redirect(fallback)
}

// SameOrigin reports whether target stays on r's host.
func SameOrigin(target string, r *http.Request) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	return u.Host == "" || u.Host == r.Host
}

// LocalPath returns target when it is an absolute path on this host and
// fallback otherwise. It guards post-login "next" parameters against open
// redirects.
func LocalPath(target, fallback string) string {
	if len(target) == 0 || target[0] != '/' || (len(target) > 1 && (target[1] == '/' || target[1] == '\\')) {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Host != "" || u.Scheme != "" {
		return fallback
	}
	return target
}
