package i18n

import "context"

type (
	localeContextKey       struct{}
	originalPathContextKey struct{}
)

// SetLocale sets the locale in the context.
func SetLocale(ctx context.Context, locale string) context.Context {
	return context.WithValue(ctx, localeContextKey{}, locale)
}

// GetLocale returns the locale from the context.
// If no locale is set, will return default locale - "en".
func GetLocale(ctx context.Context) string {
	locale, _ := ctx.Value(localeContextKey{}).(string)
	if locale == "" {
		return DefaultLanguage
	}
	return locale
}

func withOriginalPath(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, originalPathContextKey{}, path)
}

// OriginalPath returns the request path as the client sent it, before the
// locale segment was stripped. The second value is false when Middleware did
// not rewrite the path.
func OriginalPath(ctx context.Context) (string, bool) {
	p, ok := ctx.Value(originalPathContextKey{}).(string)
	return p, ok
}
