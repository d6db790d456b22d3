package web

import (
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/testimony/binder"
	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/pkg/i18n"
	"github.com/dmitrymomot/testimony/pkg/session"
	"github.com/dmitrymomot/testimony/views"
)

func (s *Service) pageRoutes(r chi.Router) {
	wrap := handler.WithErrorHandler(s.errorHandler)

	r.Get("/", handler.Wrap(s.section("Testimony", "Record the stories that matter and keep them for the people who come after you."), wrap))
	r.Get("/about", handler.Wrap(s.section("About", "Testimony is a private archive for family stories, told in your own words."), wrap))
	r.Get("/offline", handler.Wrap(s.section("You are offline", "Your drafts are safe. We will sync them when the connection is back."), wrap))

	r.Get("/login", handler.Wrap(s.loginForm, wrap, handler.WithBinders(binder.Query())))
	r.Post("/login", handler.Wrap(s.login, wrap, handler.WithBinders(binder.Form())))
	r.Post("/logout", handler.Wrap(s.logout, wrap))

	r.Get("/account", handler.Wrap(s.account, wrap))
	r.Get("/account/plan", handler.Wrap(s.section("Plans", "Family unlocks shared vaults. Legacy keeps your archive for generations."), wrap))
	r.Get("/testimonies/new", handler.Wrap(s.compose, wrap))
	r.Get("/studio", handler.Wrap(s.section("Studio", "Edit, caption and publish your recordings."), wrap))
	r.Get("/family", handler.Wrap(s.section("Family vault", "Stories shared with the people on your family plan."), wrap))
	r.Get("/legacy", handler.Wrap(s.section("Legacy", "Choose who receives your archive and when."), wrap))
	r.Get("/admin", handler.Wrap(s.section("Administration", "Moderation queues and platform settings."), wrap))
	r.Get("/admin/users", handler.Wrap(s.section("Users", "Search and manage accounts."), wrap))
}

func (s *Service) section(title, body string) handler.HandlerFunc[struct{}] {
	return func(ctx handler.Context, _ struct{}) handler.Response {
		return s.page(ctx, title, views.Section(title, body))
	}
}

func (s *Service) account(ctx handler.Context, _ struct{}) handler.Response {
	sess, ok := session.FromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	return s.page(ctx, "Your account", views.Account(viewer(sess)))
}

func (s *Service) compose(ctx handler.Context, _ struct{}) handler.Response {
	return s.page(ctx, "Share a testimony", views.ComposeTestimony())
}

// page wraps content in the layout. Datastar navigations only swap #main.
func (s *Service) page(ctx handler.Context, title string, content templ.Component) handler.Response {
	p := views.Page{
		Title:   title,
		Lang:    i18n.GetLocale(ctx),
		Content: content,
	}
	if sess, ok := session.FromContext(ctx); ok {
		p.Viewer = viewer(sess)
		if store, err := s.deps.Hub.Store(sess.ID); err == nil {
			p.Unread = store.Len()
		}
	}
	return handler.TemplPartial(content, views.Layout(p),
		handler.WithTarget("#main"),
		handler.WithPatchMode(handler.PatchInner),
	)
}

func viewer(sess *session.Session) views.Viewer {
	v := views.Viewer{Authenticated: sess.IsAuthenticated(), UserID: sess.UserID}
	if r := sess.Role(); r != nil {
		v.Role = r.String()
	}
	if t := sess.Tier(); t != nil {
		v.Tier = t.String()
	}
	return v
}
