// Package session keeps the signed-in state of a browser.
//
// A Session is identified by an opaque token carried in a signed cookie and
// persisted in a Store (MemoryStore for single instances, RedisStore when the
// app runs behind a load balancer). Session implements guard.Subject, so the
// route guard reads role and tier straight from it:
//
//	jar, _ := cookie.New(secrets, cookie.WithSecure(true))
//	sessions := session.New(session.NewCookieTransport(jar, "sid"),
//		session.WithStore(session.NewRedisStore(rdb)),
//	)
//	r.Use(sessions.EnsureSession)
//	r.Use(guard.Middleware(table, session.Subject))
//
// The session ID is stable for the lifetime of the browser session; the token is
// rotated on every privilege change.
package session
