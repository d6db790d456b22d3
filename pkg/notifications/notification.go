package notifications

import (
	"context"
	"time"
)

// Kind is the closed set of notification severities.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// Kinds lists every Kind in display order.
var Kinds = []Kind{KindInfo, KindSuccess, KindWarning, KindError}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindInfo, KindSuccess, KindWarning, KindError:
		return true
	}
	return false
}

// Style is how a kind is presented.
type Style struct {
	Icon  string // icon name in the sprite sheet
	Class string // CSS modifier
	Role  string // ARIA role: errors interrupt, everything else is polite
	Label string // screen reader prefix
}

// Style returns the presentation for k. Unknown kinds render as info.
func (k Kind) Style() Style {
	switch k {
	case KindSuccess:
		return Style{Icon: "check-circle", Class: "toast--success", Role: "status", Label: "Success"}
	case KindWarning:
		return Style{Icon: "alert-triangle", Class: "toast--warning", Role: "status", Label: "Warning"}
	case KindError:
		return Style{Icon: "x-circle", Class: "toast--error", Role: "alert", Label: "Error"}
	case KindInfo:
		return Style{Icon: "info", Class: "toast--info", Role: "status", Label: "Info"}
	default:
		return KindInfo.Style()
	}
}

// Action is the optional call to action of a notification. OnInvoke runs
// server side; URL is where the browser goes afterwards. Either may be empty.
type Action struct {
	Label    string                          `json:"label" validate:"required,max=40"`
	URL      string                          `json:"url,omitempty" validate:"omitempty,startswith=/,max=512"`
	OnInvoke func(ctx context.Context) error `json:"-"`
}

// Notification is a stored notification.
type Notification struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Action      *Action   `json:"action,omitempty"`
	Dismissible bool      `json:"dismissible"`
	CreatedAt   time.Time `json:"created_at"`
}

// HasAction reports whether the notification carries a call to action.
func (n Notification) HasAction() bool { return n.Action != nil }

// Draft is a notification before it has an id. Dismissible defaults to true
// when nil.
type Draft struct {
	Kind        Kind    `json:"kind" validate:"required,oneof=info success warning error"`
	Title       string  `json:"title" validate:"required,max=120"`
	Description string  `json:"description,omitempty" validate:"max=500"`
	Action      *Action `json:"action,omitempty" validate:"omitempty"`
	Dismissible *bool   `json:"dismissible,omitempty"`
}

// Info builds an informational draft.
func Info(title, description string) Draft {
	return Draft{Kind: KindInfo, Title: title, Description: description}
}

// Success builds a draft confirming a completed action.
func Success(title, description string) Draft {
	return Draft{Kind: KindSuccess, Title: title, Description: description}
}

// Warning builds a draft for something the user should look at.
func Warning(title, description string) Draft {
	return Draft{Kind: KindWarning, Title: title, Description: description}
}

// Error builds a failure draft. Error toasts do not auto-dismiss by default.
func Error(title, description string) Draft {
	return Draft{Kind: KindError, Title: title, Description: description}
}

// WithAction returns a copy of d carrying a.
func (d Draft) WithAction(a Action) Draft {
	d.Action = &a
	return d
}

// Persistent returns a copy of d that the user cannot dismiss.
func (d Draft) Persistent() Draft {
	f := false
	d.Dismissible = &f
	return d
}
