package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/testimony/pkg/rbac"
)

// Session is the server-side state of one browser.
type Session struct {
	ID        string     `json:"id"`
	Token     string     `json:"token"`
	UserID    string     `json:"user_id,omitempty"`
	UserRole  *rbac.Role `json:"role,omitempty"`
	UserTier  *rbac.Tier `json:"tier,omitempty"`
	ExpiresAt time.Time  `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewSession returns an anonymous session that expires after ttl.
func NewSession(token string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
}

// IsAuthenticated reports whether a user signed in to the session.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.UserID != ""
}

// Role returns the signed-in user's role, or nil for anonymous sessions.
func (s *Session) Role() *rbac.Role {
	if s == nil {
		return nil
	}
	return s.UserRole
}

// Tier returns the signed-in user's subscription tier, or nil.
func (s *Session) Tier() *rbac.Tier {
	if s == nil {
		return nil
	}
	return s.UserTier
}

// IsExpired reports whether ExpiresAt has passed.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

func (s *Session) clone() *Session {
	c := *s
	if s.UserRole != nil {
		r := *s.UserRole
		c.UserRole = &r
	}
	if s.UserTier != nil {
		t := *s.UserTier
		c.UserTier = &t
	}
	return &c
}
