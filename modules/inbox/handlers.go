package inbox

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/pkg/logger"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/session"
	"github.com/dmitrymomot/testimony/pkg/toast"
	"github.com/dmitrymomot/testimony/views"
)

var (
	ErrActionFailed   = handler.NewHTTPError(http.StatusUnprocessableEntity, "action_failed")
	ErrNotDismissible = handler.NewHTTPError(http.StatusForbidden, "not_dismissible")
)

type enqueueRequest struct {
	Kind        string `json:"kind" form:"kind"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	ActionLabel string `json:"action_label" form:"action_label"`
	ActionURL   string `json:"action_url" form:"action_url"`
	Persistent  bool   `json:"persistent" form:"persistent"`
}

func (r enqueueRequest) draft() notifications.Draft {
	d := notifications.Draft{
		Kind:        notifications.Kind(strings.TrimSpace(r.Kind)),
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
	}
	if r.ActionLabel != "" || r.ActionURL != "" {
		d = d.WithAction(notifications.Action{Label: r.ActionLabel, URL: r.ActionURL})
	}
	if r.Persistent {
		d = d.Persistent()
	}
	return d
}

type idRequest struct {
	ID string `path:"id"`
}

// EnqueueResponse is the JSON body of a successful POST.
type EnqueueResponse struct {
	ID string `json:"id"`
}

// OpenStreams returns the number of live toast streams of session sid.
func (s *Service) OpenStreams(sid string) int {
	return s.stacks.count(sid)
}

func (s *Service) list(ctx handler.Context, _ struct{}) handler.Response {
	store, err := s.store(ctx)
	if err != nil {
		return handler.Error(err)
	}
	items := store.List()

	if handler.WantsJSON(ctx.Request()) {
		return handler.JSON(items, handler.WithJSONMeta(map[string]any{"total": len(items)}))
	}
	return handler.TemplMulti(
		handler.Patch(views.NotificationList(items)),
		handler.Patch(views.UnreadBadge(len(items))),
	)
}

func (s *Service) enqueue(ctx handler.Context, req enqueueRequest) handler.Response {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}

	d := req.draft()
	if err := d.Validate(); err != nil {
		return handler.Error(validationError(err))
	}

	id, err := s.hub.Add(sid, d)
	if err != nil {
		return handler.Error(hubError(err))
	}

	r := ctx.Request()
	switch {
	case handler.IsDataStar(r):
		return handler.Empty()
	case isForm(r):
		return handler.RedirectBack(r, "/")
	default:
		return handler.JSON(EnqueueResponse{ID: id}, handler.WithJSONStatus(http.StatusCreated))
	}
}

func (s *Service) dismiss(ctx handler.Context, req idRequest) handler.Response {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	store, err := s.hub.Store(sid)
	if err != nil {
		return handler.Error(hubError(err))
	}

	n, ok := store.Get(req.ID)
	if !ok {
		return handler.Empty()
	}
	if !n.Dismissible {
		return handler.Error(ErrNotDismissible)
	}
	if !s.stacks.dismiss(sid, req.ID) {
		store.Remove(req.ID)
	}
	return handler.Empty()
}

func (s *Service) clear(ctx handler.Context, _ struct{}) handler.Response {
	store, err := s.store(ctx)
	if err != nil {
		return handler.Error(err)
	}
	store.Clear()
	return handler.Empty()
}

func (s *Service) invoke(ctx handler.Context, req idRequest) handler.Response {
	store, err := s.store(ctx)
	if err != nil {
		return handler.Error(err)
	}

	target, err := store.Invoke(ctx, req.ID)
	if err != nil {
		return handler.Error(errors.Join(ErrActionFailed, err))
	}
	if target == "" {
		return handler.Empty()
	}
	return handler.Redirect(handler.LocalPath(target, "/"))
}

// stream pushes the toast region, the unread badge and the dropdown list
// whenever the session's stack changes, until the client goes away.
func (s *Service) stream(ctx handler.Context, _ struct{}) handler.Response {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	store, err := s.hub.Store(sid)
	if err != nil {
		return handler.Error(hubError(err))
	}

	return handler.SSE(func(sc handler.StreamContext) error {
		if s.recorder != nil {
			defer s.recorder.StreamOpened()()
		}

		stack := toast.New(store, s.toastOpts...)
		defer stack.Close()
		defer s.stacks.add(sid, stack)()
		stack.Start(sc)

		for {
			if err := push(sc, stack); err != nil {
				s.logger.DebugContext(sc, "toast stream closed",
					logger.SessionID(sid),
					logger.Error(err),
				)
				return nil
			}
			select {
			case <-sc.Done():
				return nil
			case <-stack.Done():
				// The store was evicted or dropped; the client reconnects to a fresh one.
				s.logger.DebugContext(sc, "notification store closed, ending toast stream",
					logger.SessionID(sid),
				)
				return nil
			case <-stack.Changes():
			}
		}
	})
}

func push(sc handler.StreamContext, stack *toast.Stack) error {
	items := stack.List()
	return sc.SendMultiple(
		handler.Patch(views.ToastRegion(stack.Visible())),
		handler.Patch(views.UnreadBadge(len(items))),
		handler.Patch(views.NotificationList(items)),
	)
}

func (s *Service) store(ctx handler.Context) (*notifications.Store, error) {
	sid, ok := session.IDFromContext(ctx)
	if !ok {
		return nil, handler.ErrUnauthorized
	}
	store, err := s.hub.Store(sid)
	if err != nil {
		return nil, hubError(err)
	}
	return store, nil
}

// requestFields maps draft fields onto the flat request names.
var requestFields = map[string]string{
	"label": "action_label",
	"url":   "action_url",
}

func validationError(err error) error {
	verr := handler.NewValidationError()
	for _, fe := range notifications.FieldErrors(err) {
		field := fe.Field
		if name, ok := requestFields[field]; ok {
			field = name
		}
		verr.Add(field, fe.Rule)
	}
	if verr.Empty() {
		return errors.Join(handler.ErrBadRequest, err)
	}
	return verr
}

func hubError(err error) error {
	switch {
	case errors.Is(err, notifications.ErrRateLimited):
		return errors.Join(handler.ErrTooManyRequests, err)
	case errors.Is(err, notifications.ErrStoreClosed):
		return errors.Join(handler.ErrServiceUnavailable, err)
	case errors.Is(err, notifications.ErrEmptySession):
		return errors.Join(handler.ErrUnauthorized, err)
	}
	return err
}

func isForm(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded")
}
