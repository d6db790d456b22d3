// Package redis connects to Redis with retries and exposes a readiness probe.
// The client backs the shared session store when SESSION_STORE=redis.
package redis
