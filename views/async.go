package views

import (
	"sort"

	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// Async lays out spans in as few rows as possible by greedily placing each
// one in the lowest row whose last end is at or before its start, per
// spec.md §4.6.
func Async(c *Context, spans []model.AsyncSpan) []render.Command {
	t0, t1 := c.visibleWindow()
	ppu := c.pixelsPerMicro(t0, t1)
	if ppu == 0 {
		return nil
	}

	var visible []model.AsyncSpan
	for _, s := range spans {
		if c.alignLocal(s.EndUS) < t0 || c.alignLocal(s.StartUS) > t1 {
			continue
		}
		visible = append(visible, s)
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].StartUS < visible[j].StartUS
	})

	var rowEnds []int64
	var cmds []render.Command
	for _, s := range visible {
		row := -1
		for i, end := range rowEnds {
			if end <= s.StartUS {
				row = i
				break
			}
		}
		if row == -1 {
			row = len(rowEnds)
			rowEnds = append(rowEnds, s.EndUS)
		} else {
			rowEnds[row] = s.EndUS
		}

		x0 := float64(c.alignLocal(s.StartUS)-t0) * ppu
		x1 := float64(c.alignLocal(s.EndUS)-t0) * ppu
		if x1-x0 < MinWidthPx {
			continue
		}
		y := float64(row) * RowHeight
		rect := render.DrawRect{
			Rect:      geom.Rectangle(snap(x0), y, snap(x1), y+RowHeight-1),
			Fill:      theme.AsyncSpanFill,
			Border:    theme.AsyncSpanBorder,
			HasBorder: true,
		}
		if x1-x0 > LabelMinPx {
			rect.Label = s.Name
		}
		cmds = append(cmds, rect)
	}
	return cmds
}
