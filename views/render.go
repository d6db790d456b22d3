package views

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// builder writes markup and keeps the first write error.
type builder struct {
	ctx context.Context
	w   io.Writer
	err error
}

func component(fn func(b *builder)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		b := &builder{ctx: ctx, w: w}
		fn(b)
		return b.err
	})
}

// raw writes trusted markup.
func (b *builder) raw(parts ...string) {
	for _, p := range parts {
		if b.err != nil {
			return
		}
		_, b.err = io.WriteString(b.w, p)
	}
}

// text writes escaped text.
func (b *builder) text(s string) {
	b.raw(templ.EscapeString(s))
}

// attr writes ` name="value"` with value escaped.
func (b *builder) attr(name, value string) {
	b.raw(" ", name, `="`, templ.EscapeString(value), `"`)
}

func (b *builder) render(c templ.Component) {
	if b.err != nil || c == nil {
		return
	}
	b.err = c.Render(b.ctx, b.w)
}
