package views

import (
	"math"

	"honnef.co/go/curve"

	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// flattenTolerance bounds how far the polyline approximation of a flow
// arrow's Bézier curve may deviate from the true curve, in pixels.
const flattenTolerance = 0.5

// arrowheadLength/arrowheadSpread size the two-line arrowhead drawn at a
// flow arrow's destination end.
const (
	arrowheadLength = 8.0
	arrowheadSpread = 5.0
)

// laneYLookup resolves the pixel Y of a thread lane's top edge, so Flow
// can place an edge's endpoints without owning lane layout itself.
type laneYLookup func(model.ThreadID) (y float64, visible bool)

// Flow renders edges whose endpoints both fall in a currently visible
// thread lane as a cubic-Bézier curve — flattened to short DrawLine
// segments via honnef.co/go/curve, the teacher's own Bézier dependency —
// plus a two-line arrowhead at the destination, per spec.md §4.6. An edge
// with either endpoint in a hidden lane is skipped entirely.
func Flow(c *Context, edges []model.FlowEdge, laneY laneYLookup) []render.Command {
	t0, t1 := c.visibleWindow()
	ppu := c.pixelsPerMicro(t0, t1)
	if ppu == 0 {
		return nil
	}

	var cmds []render.Command
	for _, e := range edges {
		fromY, ok := laneY(e.FromTID)
		if !ok {
			continue
		}
		toY, ok := laneY(e.ToTID)
		if !ok {
			continue
		}
		fromAligned := c.alignLocal(e.FromTS)
		toAligned := c.alignLocal(e.ToTS)
		if (fromAligned < t0 || fromAligned > t1) && (toAligned < t0 || toAligned > t1) {
			continue
		}

		p0 := curve.Point{X: float64(fromAligned-t0) * ppu, Y: fromY + RowHeight/2}
		p3 := curve.Point{X: float64(toAligned-t0) * ppu, Y: toY + RowHeight/2}
		dx := (p3.X - p0.X) / 2
		p1 := curve.Point{X: p0.X + dx, Y: p0.Y}
		p2 := curve.Point{X: p3.X - dx, Y: p3.Y}

		bez := curve.CubicBez{P0: p0, P1: p1, P2: p2, P3: p3}
		var pts []curve.Point
		for el := range curve.Flatten(bez.PathElements(flattenTolerance), flattenTolerance) {
			switch el.Kind {
			case curve.MoveToKind, curve.LineToKind:
				pts = append(pts, el.P0)
			}
		}
		for i := 0; i+1 < len(pts); i++ {
			cmds = append(cmds, render.DrawLine{
				From:  geom.Point{X: pts[i].X, Y: pts[i].Y},
				To:    geom.Point{X: pts[i+1].X, Y: pts[i+1].Y},
				Token: theme.FlowArrow,
				Width: 1,
			})
		}
		cmds = append(cmds, arrowhead(p3, p2)...)
	}
	return cmds
}

// arrowhead draws a two-line arrowhead at tip, pointing away from from.
func arrowhead(tip, from curve.Point) []render.Command {
	dx, dy := tip.X-from.X, tip.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return nil
	}
	ux, uy := dx/length, dy/length
	// perpendicular unit vector
	px, py := -uy, ux

	baseX, baseY := tip.X-ux*arrowheadLength, tip.Y-uy*arrowheadLength
	leftX, leftY := baseX+px*arrowheadSpread, baseY+py*arrowheadSpread
	rightX, rightY := baseX-px*arrowheadSpread, baseY-py*arrowheadSpread

	return []render.Command{
		render.DrawLine{From: geom.Point{X: tip.X, Y: tip.Y}, To: geom.Point{X: leftX, Y: leftY}, Token: theme.FlowArrow, Width: 1},
		render.DrawLine{From: geom.Point{X: tip.X, Y: tip.Y}, To: geom.Point{X: rightX, Y: rightY}, Token: theme.FlowArrow, Width: 1},
	}
}
