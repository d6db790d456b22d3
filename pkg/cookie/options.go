package cookie

import "net/http"

// Options are the attributes written with every cookie. Cookies are always
// HttpOnly; SameSite defaults to Lax.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Secure   bool
	SameSite http.SameSite
}

// Option overrides one cookie attribute.
type Option func(*Options)

// WithPath limits the cookie to path. Defaults to "/".
func WithPath(path string) Option {
	return func(o *Options) { o.Path = path }
}

// WithDomain scopes the cookie to domain and its subdomains. Empty keeps it host-only.
func WithDomain(domain string) Option {
	return func(o *Options) { o.Domain = domain }
}

// WithMaxAge sets the lifetime in seconds. Zero makes a browser-session cookie.
func WithMaxAge(seconds int) Option {
	return func(o *Options) { o.MaxAge = seconds }
}

// WithSecure sends the cookie over HTTPS only.
func WithSecure(secure bool) Option {
	return func(o *Options) { o.Secure = secure }
}

// WithStrictSameSite keeps the cookie off cross-site navigations entirely.
func WithStrictSameSite() Option {
	return func(o *Options) { o.SameSite = http.SameSiteStrictMode }
}

func (o Options) with(opts []Option) Options {
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
