// Package interaction implements hit testing, span selection with
// hierarchy navigation, and search, per spec.md §4.7/§4.8. None of it
// re-runs a view transform: it scans the render.Command lists the lane
// package already cached for the current frame.
package interaction

import (
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/lane"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
)

// HitResult identifies the span (if any) under a pointer position.
type HitResult struct {
	LaneID  int
	FrameID model.FrameID
	Found   bool
}

// HitTest determines the target lane from my via mgr.LaneAtY, translates
// (mx,my) to lane-local coordinates, and scans that lane's cached rect
// list in last-drawn-first order: the first rect whose bounding box
// contains the point and carries a frame id wins, per spec.md §4.7.
func HitTest(mgr *lane.Manager, generation uint64, mx, my float64) HitResult {
	l, ok := mgr.LaneAtY(my)
	if !ok {
		return HitResult{}
	}
	top, ok := mgr.LaneTop(l.ID)
	if !ok {
		return HitResult{}
	}
	localX := mx
	localY := my + mgr.GlobalScrollY() - top

	cmds, ok := mgr.CachedLayout(l.ID, generation)
	if !ok {
		return HitResult{LaneID: l.ID}
	}

	pt := geom.Point{X: localX, Y: localY}
	for i := len(cmds) - 1; i >= 0; i-- {
		r, ok := cmds[i].(render.DrawRect)
		if !ok || !r.HasFrameID {
			continue
		}
		if r.Rect.Contains(pt) {
			return HitResult{LaneID: l.ID, FrameID: r.FrameID, Found: true}
		}
	}
	return HitResult{LaneID: l.ID}
}
