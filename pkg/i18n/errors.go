package i18n

import "errors"

var (
	// ErrInvalidLocale is returned for codes that are not two-letter ISO 639-1 languages.
	ErrInvalidLocale = errors.New("i18n.invalid_locale")

	// ErrNoLocales is returned when a locale set is built without any codes.
	ErrNoLocales = errors.New("i18n.no_locales")
)
