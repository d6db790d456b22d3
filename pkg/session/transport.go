package session

import (
	"net/http"
	"time"

	"github.com/dmitrymomot/testimony/pkg/cookie"
)

// Transport moves the session token between the server and the browser.
type Transport interface {
	GetToken(r *http.Request) (string, error)
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error
	ClearToken(w http.ResponseWriter) error
}

// CookieTransport carries the token in a signed cookie.
type CookieTransport struct {
	jar     *cookie.Manager
	name    string
	options []cookie.Option
}

// NewCookieTransport keeps tokens in a signed cookie called name.
func NewCookieTransport(jar *cookie.Manager, name string, opts ...cookie.Option) *CookieTransport {
	return &CookieTransport{jar: jar, name: name, options: opts}
}

// GetToken reads and verifies the cookie.
func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	token, err := t.jar.GetSigned(r, t.name)
	if err != nil || token == "" {
		return "", ErrSessionNotFound
	}
	return token, nil
}

// SetToken writes token for ttl.
func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	opts := append([]cookie.Option{cookie.WithMaxAge(int(ttl.Seconds()))}, t.options...)
	t.jar.SetSigned(w, t.name, token, opts...)
	return nil
}

// ClearToken expires the cookie.
func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	t.jar.Delete(w, t.name)
	return nil
}
