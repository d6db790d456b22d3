package web

import (
	"net/http"

	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/rbac"
	"github.com/dmitrymomot/testimony/pkg/session"
	"github.com/dmitrymomot/testimony/views"
)

var ErrUnknownProfile = handler.NewHTTPError(http.StatusUnprocessableEntity, "unknown_profile")

// Profile is a demo account the sign-in form offers. The user service is not
// part of this application; a host app calls session.Manager.Authenticate
// from its own login flow instead.
type Profile struct {
	Key    string
	Label  string
	UserID string
	Role   rbac.Role
	Tier   rbac.Tier
}

// DefaultProfiles covers every role and tier combination the route table
// distinguishes.
func DefaultProfiles() []Profile {
	return []Profile{
		{Key: "member", Label: "Member (free plan)", UserID: "demo-member", Role: rbac.RoleUser, Tier: rbac.TierFree},
		{Key: "family", Label: "Member (family plan)", UserID: "demo-family", Role: rbac.RoleUser, Tier: rbac.TierFamily},
		{Key: "creator", Label: "Creator (family plan)", UserID: "demo-creator", Role: rbac.RoleCreator, Tier: rbac.TierFamily},
		{Key: "admin", Label: "Administrator (legacy plan)", UserID: "demo-admin", Role: rbac.RoleAdmin, Tier: rbac.TierLegacy},
	}
}

type loginRequest struct {
	Profile string `form:"profile" query:"profile"`
	Next    string `form:"next" query:"next"`
}

func (s *Service) profile(key string) (Profile, bool) {
	for _, p := range s.profiles {
		if p.Key == key {
			return p, true
		}
	}
	return Profile{}, false
}

func (s *Service) loginForm(ctx handler.Context, req loginRequest) handler.Response {
	next := handler.LocalPath(req.Next, "/account")
	if sess, ok := session.FromContext(ctx); ok && sess.IsAuthenticated() {
		return handler.Redirect(next)
	}

	choices := make([]views.DemoProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		choices = append(choices, views.DemoProfile{Key: p.Key, Label: p.Label})
	}
	return s.page(ctx, "Sign in", views.Login(next, choices))
}

func (s *Service) login(ctx handler.Context, req loginRequest) handler.Response {
	p, ok := s.profile(req.Profile)
	if !ok {
		return handler.Error(ErrUnknownProfile)
	}

	r := ctx.Request()
	sess, err := s.deps.Sessions.Authenticate(ctx, ctx.ResponseWriter(), r, p.UserID, p.Role, p.Tier)
	if err != nil {
		return handler.Error(err)
	}

	if _, err := s.deps.Hub.Add(sess.ID, notifications.Success("Welcome back", "Signed in as "+p.Label)); err != nil {
		s.logger.WarnContext(ctx, "failed to queue welcome notification",
			logger.SessionID(sess.ID),
			logger.Error(err),
		)
	}

	return handler.Redirect(handler.LocalPath(req.Next, "/account"))
}

func (s *Service) logout(ctx handler.Context, _ struct{}) handler.Response {
	if sid, ok := session.IDFromContext(ctx); ok {
		s.deps.Hub.Drop(sid)
	}
	if err := s.deps.Sessions.Destroy(ctx, ctx.ResponseWriter(), ctx.Request()); err != nil {
		return handler.Error(err)
	}
	return handler.Redirect("/")
}
