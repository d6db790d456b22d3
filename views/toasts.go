package views

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/testimony/handler"
	"github.com/dmitrymomot/testimony/pkg/notifications"
	"github.com/dmitrymomot/testimony/pkg/toast"
)

const (
	ToastRegionID      = "toasts"
	ErrorToastRegionID = "toast-errors"
	NotificationListID = "notification-list"
	UnreadBadgeID      = "notification-count"
)

// ToastRegion is the fixed live region holding the visible toasts.
func ToastRegion(entries []toast.Entry) templ.Component {
	return component(func(b *builder) {
		b.raw(`<section`)
		b.attr("id", ToastRegionID)
		b.raw(` class="toast-region" aria-live="polite" aria-label="Notifications">`)
		for _, e := range entries {
			b.render(Toast(e))
		}
		b.raw(`</section>`)
	})
}

// Toast renders one entry. The phase drives enter and exit transitions in CSS.
func Toast(e toast.Entry) templ.Component {
	style := e.Kind.Style()
	return component(func(b *builder) {
		b.raw(`<div`)
		b.attr("id", "toast-"+e.ID)
		b.attr("class", "toast "+style.Class)
		b.attr("role", style.Role)
		b.attr("data-phase", string(e.Phase))
		b.raw(`>`)
		b.raw(`<svg class="toast__icon" aria-hidden="true"><use`)
		b.attr("href", "/static/icons.svg#"+style.Icon)
		b.raw(`></use></svg><div class="toast__body"><span class="sr-only">`)
		b.text(style.Label)
		b.raw(`: </span><strong class="toast__title">`)
		b.text(e.Title)
		b.raw(`</strong>`)
		if e.Description != "" {
			b.raw(`<p class="toast__description">`)
			b.text(e.Description)
			b.raw(`</p>`)
		}
		b.raw(`</div>`)
		if e.HasAction() {
			b.raw(`<button type="button" class="toast__action"`)
			b.attr("data-on-click", "@post('/notifications/"+e.ID+"/action')")
			b.raw(`>`)
			b.text(e.Action.Label)
			b.raw(`</button>`)
		}
		if e.Dismissible {
			b.raw(`<button type="button" class="toast__close" aria-label="Dismiss"`)
			b.attr("data-on-click", "@delete('/notifications/"+e.ID+"')")
			b.raw(`>&times;</button>`)
		}
		b.raw(`</div>`)
	})
}

// NotificationList is the dropdown listing every stored notification, newest last.
func NotificationList(items []notifications.Notification) templ.Component {
	return component(func(b *builder) {
		b.raw(`<div`)
		b.attr("id", NotificationListID)
		b.raw(` class="notification-list">`)
		if len(items) == 0 {
			b.raw(`<p class="notification-list__empty">No notifications</p></div>`)
			return
		}
		b.raw(`<ul>`)
		for _, n := range items {
			style := n.Kind.Style()
			b.raw(`<li`)
			b.attr("class", "notification "+style.Class)
			b.raw(`><span class="sr-only">`)
			b.text(style.Label)
			b.raw(`: </span><strong>`)
			b.text(n.Title)
			b.raw(`</strong>`)
			if n.Description != "" {
				b.raw(`<span class="notification__description">`)
				b.text(n.Description)
				b.raw(`</span>`)
			}
			b.raw(`<time`)
			b.attr("datetime", n.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"))
			b.raw(`></time>`)
			if n.Dismissible {
				b.raw(`<button type="button" aria-label="Dismiss"`)
				b.attr("data-on-click", "@delete('/notifications/"+n.ID+"')")
				b.raw(`>&times;</button>`)
			}
			b.raw(`</li>`)
		}
		b.raw(`</ul><button type="button" class="notification-list__clear" data-on-click="@delete('/notifications')">Clear all</button></div>`)
	})
}

// UnreadBadge shows the number of stored notifications.
func UnreadBadge(count int) templ.Component {
	return component(func(b *builder) {
		b.raw(`<span`)
		b.attr("id", UnreadBadgeID)
		b.raw(` class="badge"`)
		if count == 0 {
			b.raw(` hidden`)
		}
		b.raw(`>`)
		b.text(strconv.Itoa(count))
		b.raw(`</span>`)
	})
}

// ErrorToast is appended to the error region when a datastar request fails.
func ErrorToast(p handler.ErrorToastParams) templ.Component {
	kind := notifications.KindError
	if p.Type == "warning" {
		kind = notifications.KindWarning
	}
	style := kind.Style()
	return component(func(b *builder) {
		b.raw(`<div`)
		b.attr("class", "toast "+style.Class)
		b.attr("role", style.Role)
		b.raw(` data-phase="visible"><div class="toast__body"><strong class="toast__title">`)
		b.text(Message(p.Message))
		b.raw(`</strong>`)
		if p.RequestID != "" {
			b.raw(`<p class="toast__description">Reference: `)
			b.text(p.RequestID)
			b.raw(`</p>`)
		}
		b.raw(`</div><button type="button" class="toast__close" aria-label="Dismiss" data-on-click="el.parentElement.remove()">&times;</button></div>`)
	})
}
