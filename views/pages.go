package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/testimony/handler"
)

// Section is a titled content block used by the simple pages.
func Section(title, body string) templ.Component {
	return component(func(b *builder) {
		b.raw(`<section class="page"><h1>`)
		b.text(title)
		b.raw(`</h1><p>`)
		b.text(body)
		b.raw(`</p></section>`)
	})
}

// DemoProfile is a selectable account on the demo sign-in form.
type DemoProfile struct {
	Key   string
	Label string
}

// Login is the sign-in form. next is carried through as a hidden field.
func Login(next string, profiles []DemoProfile) templ.Component {
	return component(func(b *builder) {
		b.raw(`<section class="page"><h1>Sign in</h1><form method="post" action="/login">`)
		b.raw(`<input type="hidden" name="next"`)
		b.attr("value", next)
		b.raw(`><fieldset><legend>Choose a demo account</legend>`)
		for i, p := range profiles {
			b.raw(`<label><input type="radio" name="profile"`)
			b.attr("value", p.Key)
			if i == 0 {
				b.raw(` checked`)
			}
			b.raw(`> `)
			b.text(p.Label)
			b.raw(`</label>`)
		}
		b.raw(`</fieldset><button type="submit">Sign in</button></form></section>`)
	})
}

// Account shows the signed-in user's plan.
func Account(v Viewer) templ.Component {
	return component(func(b *builder) {
		b.raw(`<section class="page"><h1>Your account</h1><dl><dt>User</dt><dd>`)
		b.text(v.UserID)
		b.raw(`</dd><dt>Role</dt><dd>`)
		b.text(v.Role)
		b.raw(`</dd><dt>Plan</dt><dd>`)
		b.text(v.Tier)
		b.raw(`</dd></dl><a href="/account/plan">Change plan</a></section>`)
	})
}

// ComposeTestimony is the new testimony form. Submitting it posts a
// notification through the inbox API.
func ComposeTestimony() templ.Component {
	return component(func(b *builder) {
		b.raw(`<section class="page" data-signals="{kind: 'success', title: '', description: ''}">`)
		b.raw(`<h1>Share a testimony</h1><label>Title <input data-bind-title maxlength="120"></label>`)
		b.raw(`<label>Story <textarea data-bind-description maxlength="500"></textarea></label>`)
		b.raw(`<button type="button" data-on-click="@post('/notifications')">Publish</button></section>`)
	})
}

// ErrorPage is the full-page error surface.
func ErrorPage(p handler.ErrorPageParams) templ.Component {
	return Layout(Page{
		Title:   strconv.Itoa(p.StatusCode),
		Content: errorContent(p),
	})
}

// BoundaryFallback is rendered when a page fails mid-render. It keeps the
// markup minimal so it cannot fail itself.
func BoundaryFallback(p handler.ErrorPageParams) templ.Component {
	return component(func(b *builder) {
		b.raw(`<!doctype html><html lang="en"><head><meta charset="utf-8"><title>Something went wrong</title></head><body>`)
		b.render(errorContent(p))
		b.raw(`</body></html>`)
	})
}

func errorContent(p handler.ErrorPageParams) templ.Component {
	return component(func(b *builder) {
		b.raw(`<section class="page page--error"><h1>`)
		b.text(Message(p.Error))
		b.raw(`</h1>`)
		if p.RequestID != "" {
			b.raw(`<p class="reference">Reference: <code>`)
			b.text(p.RequestID)
			b.raw(`</code></p>`)
		}
		if p.RetryURL != "" {
			b.raw(`<a class="button"`)
			b.attr("href", p.RetryURL)
			b.raw(`>Try again</a>`)
		}
		b.raw(` <a href="/">Go home</a></section>`)
	})
}
