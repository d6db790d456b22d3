package cookie

import "errors"

var (
	ErrNoSecret       = errors.New("cookie.no_secret")
	ErrSecretTooShort = errors.New("cookie.secret_too_short")

	// Read errors. Callers treat all of them as "no usable cookie".
	ErrCookieNotFound   = errors.New("cookie.not_found")
	ErrInvalidFormat    = errors.New("cookie.malformed")
	ErrInvalidSignature = errors.New("cookie.bad_signature")
)
