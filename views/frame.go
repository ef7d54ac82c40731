package views

import (
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// Frame emits one fixed-height rect per frame, tokenized by its
// classification, per spec.md §4.6.
func Frame(c *Context, frames []model.Frame, heightPx float64) []render.Command {
	t0, t1 := c.visibleWindow()
	ppu := c.pixelsPerMicro(t0, t1)
	if ppu == 0 {
		return nil
	}

	var cmds []render.Command
	for _, f := range frames {
		start := c.alignLocal(f.StartUS)
		end := c.alignLocal(f.EndUS)
		if end < t0 || start > t1 {
			continue
		}
		x0 := float64(start-t0) * ppu
		x1 := float64(end-t0) * ppu
		if x1-x0 < MinWidthPx {
			continue
		}
		cmds = append(cmds, render.DrawRect{
			Rect: geom.Rectangle(snap(x0), 0, snap(x1), heightPx),
			Fill: frameToken(f.Classification),
		})
	}
	return cmds
}

func frameToken(class model.FrameClass) theme.Token {
	switch class {
	case model.FrameWarning:
		return theme.FrameWarning
	case model.FrameDropped:
		return theme.FrameDropped
	default:
		return theme.FrameGood
	}
}
