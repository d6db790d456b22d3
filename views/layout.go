package views

import (
	"github.com/a-h/templ"
)

const datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@1.0.0/bundles/datastar.js"

// Viewer is what the layout shows about the signed-in user.
type Viewer struct {
	Authenticated bool
	UserID        string
	Role          string
	Tier          string
}

// Page is a full HTML document.
type Page struct {
	Title   string
	Lang    string
	Viewer  Viewer
	Unread  int
	Content templ.Component
}

type navLink struct {
	href  string
	label string
}

var navLinks = []navLink{
	{"/", "Home"},
	{"/testimonies/new", "Share a testimony"},
	{"/studio", "Studio"},
	{"/family", "Family"},
	{"/legacy", "Legacy"},
	{"/admin", "Admin"},
	{"/about", "About"},
}

// Layout renders p with the navigation, the notification dropdown and the
// toast regions. The toast region subscribes to the notification stream on load.
func Layout(p Page) templ.Component {
	lang := p.Lang
	if lang == "" {
		lang = "en"
	}
	return component(func(b *builder) {
		b.raw(`<!doctype html><html`)
		b.attr("lang", lang)
		b.raw(`><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.raw(`<title>`)
		b.text(p.Title)
		b.raw(` · Testimony</title><link rel="manifest" href="/manifest.webmanifest"><script type="module"`)
		b.attr("src", datastarScript)
		b.raw(`></script></head><body><header class="site-header"><nav><ul>`)
		for _, l := range navLinks {
			b.raw(`<li><a`)
			b.attr("href", l.href)
			b.raw(`>`)
			b.text(l.label)
			b.raw(`</a></li>`)
		}
		b.raw(`</ul></nav><div class="site-header__user">`)
		if p.Viewer.Authenticated {
			b.raw(`<details class="notifications-menu"><summary aria-label="Notifications" data-on-click="@get('/notifications')">&#128276;`)
			b.render(UnreadBadge(p.Unread))
			b.raw(`</summary>`)
			b.render(NotificationList(nil))
			b.raw(`</details><a href="/account">`)
			b.text(p.Viewer.UserID)
			b.raw(`</a><span class="plan">`)
			b.text(p.Viewer.Role + " · " + p.Viewer.Tier)
			b.raw(`</span><form method="post" action="/logout"><button type="submit">Sign out</button></form>`)
		} else {
			b.raw(`<a href="/login">Sign in</a>`)
		}
		b.raw(`</div></header><main id="main">`)
		b.render(p.Content)
		b.raw(`</main><div data-init="@get('/notifications/stream')">`)
		b.render(ToastRegion(nil))
		b.raw(`</div><section`)
		b.attr("id", ErrorToastRegionID)
		b.raw(` class="toast-region toast-region--errors" aria-live="assertive"></section></body></html>`)
	})
}
