package session

import "time"

// Config holds cookie, lifetime and store settings.
type Config struct {
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"sid"`
	AnonTTL         time.Duration `env:"SESSION_ANON_TTL" envDefault:"24h"`
	AuthTTL         time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	Secure          bool          `env:"SESSION_SECURE" envDefault:"false"`
	Domain          string        `env:"SESSION_COOKIE_DOMAIN"`
	StrictSameSite  bool          `env:"SESSION_STRICT_SAMESITE" envDefault:"false"`
	Secret          string        `env:"SESSION_SECRET,required"`
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
}

// DefaultConfig mirrors the env defaults.
func DefaultConfig() Config {
	return Config{
		CookieName:      "sid",
		AnonTTL:         24 * time.Hour,
		AuthTTL:         30 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
		Store:           "memory",
	}
}

// TTL returns the lifetime for a session in the given state.
func (c Config) TTL(authenticated bool) time.Duration {
	if authenticated {
		return c.AuthTTL
	}
	return c.AnonTTL
}
