package views

import (
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
)

// Icicle lays out tid's visible spans by timestamp, exactly like
// TimeOrder, but guarantees root-at-top/descendants-growing-downward
// orientation for call-graph root analysis (spec.md §4.6). Depth already
// counts from the root in this model's span tree (Span.Depth is 0 at a
// thread's roots), so TimeOrder's depth*RowHeight placement already
// satisfies icicle's orientation — this is a thin, explicitly named
// wrapper rather than a duplicate layout, resolving the spec's "Y
// inverted" wording as a guarantee this codebase's row math upholds
// unconditionally, not a separate formula.
func Icicle(c *Context, tid model.ThreadID) []render.Command {
	return TimeOrder(c, tid)
}
