package views

import (
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// Counter projects counter's samples within the visible window onto
// widthPx, normalizing value to [trackMin,trackMax] over heightPx, and
// approximates the resulting polyline as a chain of thin step rects
// between adjacent samples, per spec.md §4.6.
func Counter(c *Context, counter *model.Counter, trackMin, trackMax, widthPx, heightPx float64) []render.Command {
	t0, t1 := c.visibleWindow()
	ppu := c.pixelsPerMicro(t0, t1)
	if ppu == 0 || len(counter.Samples) == 0 {
		return nil
	}
	l0, l1 := c.localWindow(t0, t1)

	lo, _ := counter.FloorCeil(l0)
	if lo < 0 {
		lo = 0
	}
	_, hi := counter.FloorCeil(l1)
	if hi < 0 || hi >= len(counter.Samples) {
		hi = len(counter.Samples) - 1
	}
	if lo > hi {
		return nil
	}

	valueRange := trackMax - trackMin
	if valueRange <= 0 {
		valueRange = 1
	}
	yFor := func(v float64) float64 {
		norm := (v - trackMin) / valueRange
		if norm < 0 {
			norm = 0
		}
		if norm > 1 {
			norm = 1
		}
		return heightPx - norm*heightPx
	}

	var cmds []render.Command
	for i := lo; i < hi; i++ {
		a := counter.Samples[i]
		b := counter.Samples[i+1]
		x0 := snap(float64(c.alignLocal(a.TimestampUS)-t0) * ppu)
		x1 := snap(float64(c.alignLocal(b.TimestampUS)-t0) * ppu)
		if x1 <= x0 {
			continue
		}
		y := yFor(a.Value)
		cmds = append(cmds, render.DrawRect{
			Rect: geom.Rectangle(x0, y, x1, heightPx),
			Fill: theme.CounterFill,
		})
		cmds = append(cmds, render.DrawLine{
			From:  geom.Point{X: x0, Y: y},
			To:    geom.Point{X: x1, Y: y},
			Token: theme.CounterLine,
			Width: 1,
		})
	}
	return cmds
}
