// Package cookie signs and verifies HTTP cookies.
//
// A Manager holds one or more secrets. The first secret signs new values; every
// secret is tried when verifying, so secrets can be rotated without logging
// users out:
//
//	jar, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")}, cookie.WithSecure(true))
//	if err != nil {
//		return err
//	}
//	jar.SetSigned(w, "sid", token, cookie.WithMaxAge(3600))
//	token, err := jar.GetSigned(r, "sid")
//
// Signed values are base64url(value) + "|" + base64url(HMAC-SHA256(value)).
// Tampered or unsigned values yield ErrInvalidSignature or ErrInvalidFormat.
package cookie
