package views

import (
	"math"

	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// Minimap renders tid's full [0,1] session timeline as a density heatmap
// plus the current viewport window as an overlay rect, per spec.md §4.6.
// render.Command's fill is a discrete theme.Token rather than an alpha
// channel, so "map log(count+1) to opacity" is realized as four discrete
// heat levels (FlameNeutral..FlameHot) rather than continuous opacity —
// noted as an Open Question resolution in DESIGN.md.
func Minimap(c *Context, tid model.ThreadID, widthPx, heightPx float64) []render.Command {
	buckets := int(widthPx)
	if buckets < 1 {
		buckets = 1
	}
	counts := make([]int, buckets)

	span := c.SessionEndUS - c.SessionStartUS
	if span <= 0 {
		return nil
	}

	var ids []model.FrameID
	for i := range c.Profile.Threads {
		t := &c.Profile.Threads[i]
		if t.ID != tid {
			continue
		}
		ids = t.RootSpans
		break
	}
	var stack []model.FrameID
	stack = append(stack, ids...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s := c.Profile.Span(id)
		frac := float64(c.alignLocal(s.StartUS)-c.SessionStartUS) / float64(span)
		idx := int(frac * float64(buckets))
		if idx >= 0 && idx < buckets {
			counts[idx]++
		}
		var kids []model.FrameID
		kids = c.Profile.Children(id, kids)
		stack = append(stack, kids...)
	}

	maxLog := 0.0
	logs := make([]float64, buckets)
	for i, n := range counts {
		l := math.Log(float64(n) + 1)
		logs[i] = l
		if l > maxLog {
			maxLog = l
		}
	}

	var cmds []render.Command
	cmds = append(cmds, render.DrawRect{
		Rect: geom.Rectangle(0, 0, widthPx, heightPx),
		Fill: theme.MinimapBackground,
	})
	if maxLog > 0 {
		for i, l := range logs {
			if l == 0 {
				continue
			}
			tok := heatToken(l / maxLog)
			x := float64(i)
			cmds = append(cmds, render.DrawRect{
				Rect: geom.Rectangle(x, 0, x+1, heightPx),
				Fill: tok,
			})
		}
	}

	vx0 := c.Viewport.Start * widthPx
	vx1 := c.Viewport.End * widthPx
	cmds = append(cmds, render.DrawRect{
		Rect:      geom.Rectangle(vx0, 0, vx1, heightPx),
		Fill:      theme.MinimapViewport,
		Border:    theme.MinimapViewport,
		HasBorder: true,
	})
	return cmds
}

func heatToken(ratio float64) theme.Token {
	switch {
	case ratio >= 0.75:
		return theme.FlameHot
	case ratio >= 0.5:
		return theme.FlameWarm
	case ratio >= 0.25:
		return theme.FlameCold
	default:
		return theme.FlameNeutral
	}
}
