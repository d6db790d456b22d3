package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/testimony/modules/inbox"
	"github.com/dmitrymomot/testimony/modules/web"
	"github.com/dmitrymomot/testimony/pkg/cookie"
	"github.com/dmitrymomot/testimony/pkg/metrics"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/routeauth"
	"github.com/dmitrymomot/testimony/pkg/session"
)

const testSecret = "test-secret-with-at-least-32-characters"

type app struct {
	server *httptest.Server
	hub    *notifications.Hub
}

func newApp(t *testing.T, opts ...web.Option) *app {
	t.Helper()
	log := slog.New(slog.DiscardHandler)

	jar, err := cookie.New([]string{testSecret})
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	t.Cleanup(func() { _ = store.Close() })
	sessions := session.New(session.NewCookieTransport(jar, "sid"),
		session.WithStore(store),
		session.WithLogger(log),
	)

	hub := notifications.NewHub(notifications.WithHubLogger(log))
	t.Cleanup(func() { _ = hub.Close() })

	table, err := routeauth.NewTable(routeauth.DefaultRules())
	require.NoError(t, err)

	svc := web.New(web.Deps{
		Sessions: sessions,
		Hub:      hub,
		Table:    table,
		Inbox:    inbox.New(hub, inbox.WithLogger(log)),
	}, append([]web.Option{web.WithLogger(log)}, opts...)...)

	srv := httptest.NewServer(svc.Handle())
	t.Cleanup(srv.Close)
	return &app{server: srv, hub: hub}
}

// browser follows no redirects so tests can assert on them.
func (a *app) browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

type response struct {
	code     int
	location string
	header   http.Header
	body     string
}

func do(t *testing.T, c *http.Client, req *http.Request) response {
	t.Helper()
	res, err := c.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return response{code: res.StatusCode, location: res.Header.Get("Location"), header: res.Header, body: string(body)}
}

func (a *app) get(t *testing.T, c *http.Client, path string) response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, a.server.URL+path, nil)
	require.NoError(t, err)
	return do(t, c, req)
}

func (a *app) post(t *testing.T, c *http.Client, path string, form url.Values) response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, a.server.URL+path, strings.NewReader(form.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, c, req)
}

func (a *app) login(t *testing.T, c *http.Client, profile string) {
	t.Helper()
	res := a.post(t, c, "/login", url.Values{"profile": {profile}})
	require.Equal(t, http.StatusSeeOther, res.code)
}

func TestPublicPages(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	c := a.browser(t)

	for _, path := range []string{"/", "/about", "/offline", "/login", "/es/about"} {
		res := a.get(t, c, path)
		assert.Equal(t, http.StatusOK, res.code, path)
		assert.Contains(t, res.body, "<!doctype html>", path)
	}

	res := a.get(t, c, "/about")
	assert.Equal(t, "DENY", res.header.Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", res.header.Get("X-Content-Type-Options"))
	assert.NotEmpty(t, res.header.Get("Content-Security-Policy"))
	assert.NotEmpty(t, res.header.Get("X-Request-ID"))

	res = a.get(t, c, "/es/about")
	assert.Contains(t, res.body, `lang="es"`)
}

func TestGuardedPages_Anonymous(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	c := a.browser(t)

	tests := []struct {
		path     string
		location string
	}{
		{"/account", "/login?next=%2Faccount"},
		{"/account/plan", "/login?next=%2Faccount%2Fplan"},
		{"/testimonies/new", "/login?next=%2Ftestimonies%2Fnew"},
		{"/admin/users", "/login?next=%2Fadmin%2Fusers"},
		{"/uk/studio", "/login?next=%2Fuk%2Fstudio"},
	}
	for _, tt := range tests {
		res := a.get(t, c, tt.path)
		assert.Equal(t, http.StatusSeeOther, res.code, tt.path)
		assert.Equal(t, tt.location, res.location, tt.path)
	}
}

func TestSignedInAccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		profile  string
		path     string
		code     int
		location string
	}{
		{"member", "/account", http.StatusOK, ""},
		{"member", "/testimonies/new", http.StatusOK, ""},
		{"member", "/studio", http.StatusSeeOther, "/account"},
		{"member", "/family", http.StatusSeeOther, "/account/plan"},
		{"member", "/admin", http.StatusSeeOther, "/"},
		{"family", "/family", http.StatusOK, ""},
		{"family", "/legacy", http.StatusSeeOther, "/account/plan"},
		{"creator", "/studio", http.StatusOK, ""},
		{"creator", "/admin/users", http.StatusSeeOther, "/"},
		{"admin", "/admin/users", http.StatusOK, ""},
		{"admin", "/legacy", http.StatusOK, ""},
	}

	a := newApp(t)
	for _, tt := range tests {
		t.Run(tt.profile+tt.path, func(t *testing.T) {
			c := a.browser(t)
			a.login(t, c, tt.profile)

			res := a.get(t, c, tt.path)
			assert.Equal(t, tt.code, res.code)
			assert.Equal(t, tt.location, res.location)
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	a := newApp(t)

	t.Run("returns to next and greets", func(t *testing.T) {
		c := a.browser(t)

		res := a.get(t, c, "/account")
		require.Equal(t, http.StatusSeeOther, res.code)

		res = a.post(t, c, "/login", url.Values{"profile": {"creator"}, "next": {"/studio"}})
		require.Equal(t, http.StatusSeeOther, res.code)
		assert.Equal(t, "/studio", res.location)

		res = a.get(t, c, "/account")
		require.Equal(t, http.StatusOK, res.code)
		assert.Contains(t, res.body, "demo-creator")
		assert.Contains(t, res.body, "creator")

		req, err := http.NewRequest(http.MethodGet, a.server.URL+"/notifications", nil)
		require.NoError(t, err)
		req.Header.Set("Accept", "application/json")
		res = do(t, c, req)
		require.Equal(t, http.StatusOK, res.code)

		var body struct {
			Data []notifications.Notification `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.body), &body))
		require.Len(t, body.Data, 1)
		assert.Equal(t, "Welcome back", body.Data[0].Title)
		assert.Equal(t, notifications.KindSuccess, body.Data[0].Kind)
	})

	t.Run("ignores off-site next", func(t *testing.T) {
		c := a.browser(t)
		res := a.post(t, c, "/login", url.Values{"profile": {"member"}, "next": {"https://evil.example/steal"}})
		require.Equal(t, http.StatusSeeOther, res.code)
		assert.Equal(t, "/account", res.location)
	})

	t.Run("signed in users skip the form", func(t *testing.T) {
		c := a.browser(t)
		a.login(t, c, "member")
		res := a.get(t, c, "/login?next=%2Ftestimonies%2Fnew")
		assert.Equal(t, http.StatusSeeOther, res.code)
		assert.Equal(t, "/testimonies/new", res.location)
	})

	t.Run("unknown profile", func(t *testing.T) {
		c := a.browser(t)
		res := a.post(t, c, "/login", url.Values{"profile": {"root"}})
		assert.Equal(t, http.StatusUnprocessableEntity, res.code)
		assert.Contains(t, res.body, "Choose one of the listed accounts.")
	})
}

func TestLogout(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	c := a.browser(t)
	a.login(t, c, "admin")
	require.Equal(t, http.StatusOK, a.get(t, c, "/admin").code)

	res := a.post(t, c, "/logout", nil)
	require.Equal(t, http.StatusSeeOther, res.code)
	assert.Equal(t, "/", res.location)

	res = a.get(t, c, "/admin")
	assert.Equal(t, http.StatusSeeOther, res.code)
	assert.Equal(t, "/login?next=%2Fadmin", res.location)
}

func TestNotificationStreamIsPublic(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	c := a.browser(t)

	// Not a datastar request, so the stream refuses it, but the guard let it through.
	res := a.get(t, c, "/notifications/stream")
	assert.Equal(t, http.StatusBadRequest, res.code)
	assert.Empty(t, res.location)

	res = a.get(t, c, "/notifications")
	assert.Equal(t, http.StatusSeeOther, res.code)
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	a := newApp(t)
	res := a.get(t, a.browser(t), "/no-such-page")
	assert.Equal(t, http.StatusNotFound, res.code)
	assert.Contains(t, res.body, "We could not find that page.")
}

func TestProbes(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := newApp(t,
		web.WithMetrics(metrics.NewCollector(reg), reg),
		web.WithReadinessCheck("redis", func(context.Context) error { return errors.New("connection refused") }),
	)
	c := a.browser(t)

	res := a.get(t, c, "/healthz")
	assert.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "ALIVE", res.body)

	res = a.get(t, c, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, res.code)
	assert.Equal(t, "NOT_READY", res.body)

	a.get(t, c, "/account")
	res = a.get(t, c, "/metrics")
	assert.Equal(t, http.StatusOK, res.code)
	assert.Contains(t, res.body, `testimony_guard_decisions_total{reason="unauthenticated",state="unauthorized"} 1`)
	assert.Contains(t, res.body, "testimony_http_request_duration_seconds")
}

func TestManifest(t *testing.T) {
	t.Parallel()

	a := newApp(t, web.WithAppName("testimony"))
	res := a.get(t, a.browser(t), "/manifest.webmanifest")
	require.Equal(t, http.StatusOK, res.code)
	assert.Equal(t, "application/manifest+json", res.header.Get("Content-Type"))

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(res.body), &m))
	assert.Equal(t, "Testimony", m["name"])
	assert.Equal(t, "standalone", m["display"])
	assert.Equal(t, "/", m["start_url"])
}
