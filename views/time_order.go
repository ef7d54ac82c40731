package views

import (
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
)

// TimeOrder lays out tid's visible spans at their true timestamps, one row
// per depth, root at the top growing downward — the default flame-shaped
// view, grounded on the Rust reference's views/time_order.rs and on the
// teacher's cmd/gotraceui/timeline.go row math.
func TimeOrder(c *Context, tid model.ThreadID) []render.Command {
	t0, t1 := c.visibleWindow()
	ppu := c.pixelsPerMicro(t0, t1)
	if ppu == 0 {
		return nil
	}
	l0, l1 := c.localWindow(t0, t1)

	var ids []model.FrameID
	ids = c.Profile.VisibleSpans(tid, l0, l1, ids)

	var cmds []render.Command
	for _, id := range ids {
		s := c.Profile.Span(id)
		x := float64(c.alignLocal(s.StartUS)-t0) * ppu
		w := float64(s.Duration()) * ppu
		if w < MinWidthPx {
			continue
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
		cmds = append(cmds, rect)
		cmds = spanOverlayCommands(cmds, c, s, rect)
	}
	return cmds
}
