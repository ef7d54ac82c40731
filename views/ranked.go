package views

import (
	"sort"

	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
)

// RankMetric selects which aggregate Ranked sorts by.
type RankMetric uint8

const (
	RankBySelfTime RankMetric = iota
	RankByTotalTime
)

// SortDirection selects ascending or descending order for Ranked.
type SortDirection uint8

const (
	SortDescending SortDirection = iota
	SortAscending
)

type rankedRow struct {
	name     string
	category string
	total    int64
	self     int64
}

// Ranked flattens tid's visible spans to one row per unique (name,
// category), each a horizontal bar whose length encodes aggregate self or
// total time, per spec.md §4.6. Ties break by name, lexicographically.
func Ranked(c *Context, tid model.ThreadID, metric RankMetric, dir SortDirection) []render.Command {
	t0, t1 := c.visibleWindow()
	l0, l1 := c.localWindow(t0, t1)
	var ids []model.FrameID
	ids = c.Profile.VisibleSpans(tid, l0, l1, ids)

	byKey := make(map[string]*rankedRow)
	var order []string
	for _, id := range ids {
		s := c.Profile.Span(id)
		key := s.Name + "\x00" + s.Category
		row, ok := byKey[key]
		if !ok {
			row = &rankedRow{name: s.Name, category: s.Category}
			byKey[key] = row
			order = append(order, key)
		}
		row.total += s.Duration()
		row.self += s.SelfTimeUS
	}

	rows := make([]*rankedRow, 0, len(order))
	for _, k := range order {
		rows = append(rows, byKey[k])
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		var av, bv int64
		if metric == RankBySelfTime {
			av, bv = a.self, b.self
		} else {
			av, bv = a.total, b.total
		}
		if av != bv {
			if dir == SortAscending {
				return av < bv
			}
			return av > bv
		}
		return a.name < b.name
	})

	var maxV int64
	for _, r := range rows {
		v := r.total
		if metric == RankBySelfTime {
			v = r.self
		}
		if v > maxV {
			maxV = v
		}
	}
	if maxV == 0 {
		return nil
	}
	ppu := c.WidthPx / float64(maxV)

	var cmds []render.Command
	for i, r := range rows {
		v := r.total
		if metric == RankBySelfTime {
			v = r.self
		}
		w := float64(v) * ppu
		y := float64(i) * RowHeight
		rect := render.DrawRect{
			Rect:  geom.Rectangle(0, y, snap(w), y+RowHeight-1),
			Fill:  sandwichFillToken(c, r.name),
			Label: r.name,
		}
		cmds = append(cmds, rect)
	}
	return cmds
}
