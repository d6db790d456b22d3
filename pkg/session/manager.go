package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/rbac"
)

// Manager loads, creates and rotates sessions.
type Manager struct {
	store     Store
	transport Transport
	config    Config
	logger    *slog.Logger
}

// New returns a Manager reading tokens through transport.
func New(transport Transport, opts ...Option) *Manager {
	if transport == nil {
		panic("session: transport is required")
	}

	m := &Manager{
		transport: transport,
		config:    DefaultConfig(),
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}

	return m
}

// Get loads the session referenced by the request.
func (m *Manager) Get(ctx context.Context, r *http.Request) (*Session, error) {
	token, err := m.transport.GetToken(r)
	if err != nil {
		return nil, err
	}

	session, err := m.store.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	return session, nil
}

// Ensure returns the request's session, starting an anonymous one when there is
// none or it is no longer valid.
func (m *Manager) Ensure(ctx context.Context, w http.ResponseWriter, r *http.Request) (*Session, error) {
	session, err := m.Get(ctx, r)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrSessionExpired) {
		return nil, err
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session = NewSession(token, m.config.TTL(false))
	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, session.Token, m.config.TTL(false)); err != nil {
		_ = m.store.Delete(ctx, session.Token)
		return nil, err
	}

	return session, nil
}

// Authenticate signs userID in with the given role and tier. The session keeps
// its ID but gets a fresh token.
func (m *Manager) Authenticate(ctx context.Context, w http.ResponseWriter, r *http.Request, userID string, role rbac.Role, tier rbac.Tier) (*Session, error) {
	if userID == "" || !role.Valid() || !tier.Valid() {
		return nil, ErrInvalidUser
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	session, err := m.Get(ctx, r)
	if err != nil {
		session = NewSession(token, 0)
	} else {
		_ = m.store.Delete(ctx, session.Token)
		session.Token = token
	}

	session.UserID = userID
	session.UserRole = &role
	session.UserTier = &tier
	session.ExpiresAt = time.Now().Add(m.config.TTL(true))

	if err := m.store.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := m.transport.SetToken(w, session.Token, m.config.TTL(true)); err != nil {
		return nil, err
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "session authenticated",
		logger.SessionID(session.ID),
		logger.UserID(userID),
		logger.Role(role),
		logger.Tier(tier),
	)

	return session, nil
}

// Destroy deletes the request's session and clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if token, err := m.transport.GetToken(r); err == nil {
		if err := m.store.Delete(ctx, token); err != nil {
			m.logger.LogAttrs(ctx, slog.LevelWarn, "failed to delete session", logger.Error(err))
		}
	}

	return m.transport.ClearToken(w)
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
