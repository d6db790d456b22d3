package session

import "context"

// Store persists sessions by token. Get returns ErrSessionNotFound for unknown
// tokens and ErrSessionExpired for stale ones.
type Store interface {
	Create(ctx context.Context, session *Session) error
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
