package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/testimony/binder"
	"github.com/dmitrymomot/testimony/handler"
)

func text(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func datastarRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Datastar-Request", "true")
	return req
}

type greetRequest struct {
	Name string `json:"name" query:"name"`
}

func TestWrap(t *testing.T) {
	t.Parallel()

	greet := func(ctx handler.Context, req greetRequest) handler.Response {
		if req.Name == "" {
			v := handler.NewValidationError()
			v.Add("name", "required")
			return handler.Error(v)
		}
		return handler.JSON(map[string]string{"hello": req.Name})
	}
	h := handler.Wrap(greet, handler.WithBinders(binder.JSON(), binder.Query()))

	t.Run("binds json", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"ada"}`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		var body handler.JSONResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, map[string]any{"hello": "ada"}, body.Data)
	})

	t.Run("skips non-applicable binder", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/?name=bob", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bob")
	})

	t.Run("bind error is a bad request", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("custom error handler", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(greet, handler.WithErrorHandler(func(ctx handler.Context, err error) {
			got = err
			ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
		}))
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		var valErr handler.ValidationError
		require.ErrorAs(t, got, &valErr)
		assert.True(t, valErr.Has("name"))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		h := handler.Wrap(func(handler.Context, struct{}) handler.Response { return nil },
			handler.WithErrorHandler(func(_ handler.Context, err error) { got = err }))
		h(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
	})
}

func TestDecorate(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) handler.Decorator[struct{}] {
		return func(next handler.HandlerFunc[struct{}]) handler.HandlerFunc[struct{}] {
			return func(ctx handler.Context, req struct{}) handler.Response {
				order = append(order, name)
				return next(ctx, req)
			}
		}
	}

	h := handler.Decorate(func(handler.Context, struct{}) handler.Response {
		order = append(order, "handler")
		return handler.Empty()
	}, mark("outer"), mark("inner"))

	rec := httptest.NewRecorder()
	handler.Wrap(h)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"outer", "inner", "handler"}, order)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/account").Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/account", rec.Header().Get("Location"))
	})

	t.Run("datastar", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.Redirect("/account").Render(rec, datastarRequest(http.MethodGet, "/")))
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")
		assert.Contains(t, rec.Body.String(), "/account")
	})

	t.Run("back", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Referer", "https://evil.example/phish")
		rec := httptest.NewRecorder()
		require.NoError(t, handler.RedirectBack(req, "/home").Render(rec, req))
		assert.Equal(t, "/home", rec.Header().Get("Location"))
	})
}

func TestLocalPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"/studio", "/studio"},
		{"/studio?tab=1", "/studio?tab=1"},
		{"", "/"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
		{"https://evil.example/", "/"},
		{"studio", "/"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, handler.LocalPath(tt.in, "/"), tt.in)
	}
}

func TestTempl(t *testing.T) {
	t.Parallel()

	t.Run("html", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplPartial(text("<li>one</li>"), text("<html>page</html>"))
		require.NoError(t, resp.Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, "<html>page</html>", rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("datastar", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		resp := handler.TemplPartial(text("<li>one</li>"), text("<html>page</html>"), handler.WithTarget("#list"))
		require.NoError(t, resp.Render(rec, datastarRequest(http.MethodGet, "/")))
		assert.Contains(t, rec.Body.String(), "<li>one</li>")
		assert.Contains(t, rec.Body.String(), "#list")
		assert.NotContains(t, rec.Body.String(), "page")
	})

	t.Run("status", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		require.NoError(t, handler.TemplWithStatus(http.StatusNotFound, text("gone")).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSSE(t *testing.T) {
	t.Parallel()

	t.Run("requires datastar", func(t *testing.T) {
		t.Parallel()
		err := handler.SSE(func(handler.StreamContext) error { return nil }).
			Render(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		var httpErr handler.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("streams patches", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()
		err := handler.SSE(func(ctx handler.StreamContext) error {
			if err := ctx.SendComponent(text("<div id=\"a\">hi</div>")); err != nil {
				return err
			}
			if err := ctx.SendSignals(map[string]any{"unread": 2}); err != nil {
				return err
			}
			return ctx.Remove("#a")
		}).Render(rec, datastarRequest(http.MethodGet, "/stream"))
		require.NoError(t, err)

		body := rec.Body.String()
		assert.Contains(t, body, "hi")
		assert.Contains(t, body, "unread")
		assert.Contains(t, body, "#a")
	})
}

func TestJSONError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "http error", err: handler.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: "not_found"},
		{name: "wrapped http error", err: errors.Join(errors.New("boom"), handler.ErrTooManyRequests), wantStatus: http.StatusTooManyRequests, wantCode: "too_many_requests"},
		{name: "validation", err: handler.ValidationError{"title": {"required"}}, wantStatus: http.StatusUnprocessableEntity, wantCode: "validation_error"},
		{name: "unknown", err: errors.New("db password leaked"), wantStatus: http.StatusInternalServerError, wantCode: "internal_server_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			require.NoError(t, handler.JSONError(tt.err).Render(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body handler.JSONResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.NotContains(t, rec.Body.String(), "password")
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	v := handler.NewValidationError()
	assert.True(t, v.Empty())
	v.Add("title", "required")
	v.Add("kind", "oneof")
	v.Add("title", "max")

	assert.False(t, v.Empty())
	assert.Equal(t, "validation failed: kind: oneof; title: required, max", v.Error())
}
