// Package i18n negotiates the request locale for a multi-language site.
//
// Locales holds the set of supported two-letter language codes. It strips a
// locale segment from URL paths ("/en/account" -> "en", "/account") and matches
// Accept-Language headers against the supported set using
// golang.org/x/text/language.
//
// Middleware picks the locale for each request (path prefix, then cookie, then
// Accept-Language, then the default), stores it in the request context and
// rewrites the path to its locale-free form so routers only see canonical paths:
//
//	locales := i18n.MustLocales("en", "es", "uk")
//	r.Use(i18n.Middleware(locales))
//
//	// later
//	lang := i18n.GetLocale(r.Context())
//
// Message catalogues are not part of this package.
package i18n
