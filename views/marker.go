package views

import (
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// Marker emits a vertical line plus clipped label for every marker of p
// falling within the visible window, per spec.md §4.6.
func Marker(c *Context, markers []model.Marker, heightPx float64) []render.Command {
	t0, t1 := c.visibleWindow()
	ppu := c.pixelsPerMicro(t0, t1)
	if ppu == 0 {
		return nil
	}

	var cmds []render.Command
	for _, m := range markers {
		aligned := c.alignLocal(m.TimestampUS)
		if aligned < t0 || aligned > t1 {
			continue
		}
		x := snap(float64(aligned-t0) * ppu)
		cmds = append(cmds,
			render.DrawLine{
				From:  geom.Point{X: x, Y: 0},
				To:    geom.Point{X: x, Y: heightPx},
				Token: theme.MarkerLine,
				Width: 1,
			},
			render.SetClip{Rect: geom.Rectangle(x, 0, x+120, RowHeight)},
			render.DrawText{
				Pos:      geom.Point{X: x + 2, Y: 2},
				Text:     m.Name,
				Token:    theme.MarkerText,
				FontSize: 10,
				Align:    render.AlignLeft,
			},
			render.ClearClip{},
		)
	}
	return cmds
}
