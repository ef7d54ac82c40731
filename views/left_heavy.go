package views

import (
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
)

// LeftHeavy lays out tid's spans by aggregate duration rather than
// timestamp: within each parent, children are ordered by total duration
// descending and packed left to right starting at the parent's left edge,
// discarding their original times entirely. Depth and color follow the
// same contract as TimeOrder. Grounded on the Rust reference's
// views/left_heavy.rs and the packing shape of the teacher's
// cmd/gotraceui/flamegraph.go.
func LeftHeavy(c *Context, tid model.ThreadID) []render.Command {
	t0, t1 := c.visibleWindow()
	l0, l1 := c.localWindow(t0, t1)

	var visibleRoots []model.FrameID
	visibleRoots = c.Profile.VisibleSpans(tid, l0, l1, visibleRoots)
	if len(visibleRoots) == 0 {
		return nil
	}

	var total int64
	for _, id := range visibleRoots {
		total += c.Profile.Span(id).Duration()
	}
	if total <= 0 {
		return nil
	}
	ppu := c.WidthPx / float64(total)

	byDurationDesc(c.Profile, visibleRoots)

	var cmds []render.Command
	x := 0.0
	for _, id := range visibleRoots {
		x = layoutLeftHeavy(c, id, x, ppu, &cmds)
	}
	return cmds
}

// layoutLeftHeavy places id's rect at x, then recurses into its children
// sorted by duration descending, packed starting at the same x. Returns
// x + id's width, the next free x for a sibling at the same level.
func layoutLeftHeavy(c *Context, id model.FrameID, x, ppu float64, cmds *[]render.Command) float64 {
	s := c.Profile.Span(id)
	w := float64(s.Duration()) * ppu
	if w < MinWidthPx {
		return x + w
	}
	y := float64(s.Depth) * RowHeight
	rect := render.DrawRect{
		Rect:       geom.Rectangle(snap(x), y, snap(x)+w, y+RowHeight-1),
		Fill:       spanFillToken(c, s),
		FrameID:    s.ID,
		HasFrameID: true,
	}
	if w > LabelMinPx {
		rect.Label = s.Name
	}
	*cmds = append(*cmds, rect)
	*cmds = spanOverlayCommands(*cmds, c, s, rect)

	var children []model.FrameID
	children = c.Profile.Children(id, children)
	byDurationDesc(c.Profile, children)

	childX := x
	for _, child := range children {
		childX = layoutLeftHeavy(c, child, childX, ppu, cmds)
	}
	return x + w
}
