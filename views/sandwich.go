package views

import (
	"fmt"
	"sort"

	"github.com/proftrace/proftrace/colormap"
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// aggNode is a synthetic, merged call-tree node used only by Sandwich: it
// has no backing model.FrameID because it represents the sum of every
// span sharing a name at the same hop-distance from the selected frame,
// not a single span.
type aggNode struct {
	name       string
	durationUS int64
	children   map[string]*aggNode
}

func newAggNode(name string) *aggNode {
	return &aggNode{name: name, children: make(map[string]*aggNode)}
}

func (n *aggNode) childFor(name string) *aggNode {
	c, ok := n.children[name]
	if !ok {
		c = newAggNode(name)
		n.children[name] = c
	}
	return c
}

func (n *aggNode) sortedChildren() []*aggNode {
	out := make([]*aggNode, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].durationUS != out[j].durationUS {
			return out[i].durationUS > out[j].durationUS
		}
		return out[i].name < out[j].name
	})
	return out
}

// mergeCallees walks id's descendants, accumulating duration into node and
// recursing into children merged by name.
func mergeCallees(p *model.Profile, node *aggNode, id model.FrameID) {
	s := p.Span(id)
	node.durationUS += s.Duration()
	var kids []model.FrameID
	kids = p.Children(id, kids)
	for _, k := range kids {
		mergeCallees(p, node.childFor(p.Span(k).Name), k)
	}
}

// mergeCallers walks id's ancestors, crediting each one with id's own
// duration (not the ancestor's own duration) — every node in the caller
// tree represents "time spent in F, attributed to this call path", so the
// weight stays fixed at id's duration all the way up.
func mergeCallers(p *model.Profile, node *aggNode, id model.FrameID) {
	mergeCallersWeighted(p, node, id, p.Span(id).Duration())
}

func mergeCallersWeighted(p *model.Profile, node *aggNode, id model.FrameID, weight int64) {
	node.durationUS += weight
	s := p.Span(id)
	if s.Parent == model.NoFrame {
		return
	}
	parent := p.Span(s.Parent)
	mergeCallersWeighted(p, node.childFor(parent.Name), s.Parent, weight)
}

// maxAggDepth returns the deepest child chain under node, 0 if it is a
// leaf.
func maxAggDepth(node *aggNode) int {
	max := 0
	for _, c := range node.children {
		if d := maxAggDepth(c) + 1; d > max {
			max = d
		}
	}
	return max
}

// packAgg lays node out at x, width = durationUS*ppu, at row y0+depth*
// RowHeight (or y0-depth*RowHeight if invert), then recurses into
// children packed left-heavy starting at the same x.
func packAgg(node *aggNode, id model.FrameID, hasID bool, c *Context, x, ppu float64, depth int, invert bool, y0 float64, cmds *[]render.Command) float64 {
	w := float64(node.durationUS) * ppu
	if w < MinWidthPx {
		return x + w
	}
	var y float64
	if invert {
		y = y0 - float64(depth)*RowHeight
	} else {
		y = y0 + float64(depth)*RowHeight
	}
	rect := render.DrawRect{
		Rect:       geom.Rectangle(snap(x), y, snap(x)+w, y+RowHeight-1),
		Fill:       sandwichFillToken(c, node.name),
		HasFrameID: hasID,
	}
	if hasID {
		rect.FrameID = id
	}
	if w > LabelMinPx {
		rect.Label = node.name
	}
	*cmds = append(*cmds, rect)

	childX := x
	for _, child := range node.sortedChildren() {
		childX = packAgg(child, model.NoFrame, false, c, childX, ppu, depth+1, invert, y0, cmds)
	}
	return x + w
}

// sandwichFillToken resolves a fill token from a bare name, for synthetic
// aggNodes that have no backing *model.Span to check for a category
// override — colormap.Resolve only needs Name and Category for ByName
// mode, so a throwaway Span carrying just the name is sufficient.
func sandwichFillToken(c *Context, name string) theme.Token {
	return colormap.Resolve(&model.Span{Name: name}, c.ColorMode)
}

// Sandwich builds the caller flame (upper half, F at the bottom) and
// callee flame (lower half, F at the top) for the span sharing the
// selected frame's name and category within tid, aggregating every
// occurrence. Returns model.ErrSandwichRequiresSelection-wrapped error if
// no frame is selected, per spec.md §4.6/§7.
func Sandwich(c *Context, tid model.ThreadID) ([]render.Command, error) {
	if !c.Selection.Has || c.Selection.ProfileHandle != c.ProfileHandle {
		return nil, &model.ViewError{Kind: model.SandwichRequiresSelection}
	}
	f := c.Profile.Span(c.Selection.FrameID)
	if f.ThreadID != tid {
		return nil, &model.ViewError{Kind: model.SandwichRequiresSelection}
	}

	t0, t1 := c.visibleWindow()
	l0, l1 := c.localWindow(t0, t1)
	var visible []model.FrameID
	visible = c.Profile.VisibleSpans(tid, l0, l1, visible)

	var occurrences []model.FrameID
	for _, id := range visible {
		s := c.Profile.Span(id)
		if s.Name == f.Name && s.Category == f.Category {
			occurrences = append(occurrences, id)
		}
	}
	if len(occurrences) == 0 {
		occurrences = []model.FrameID{c.Selection.FrameID}
	}

	var totalDuration, totalSelf int64
	calleeRoot := newAggNode(f.Name)
	callerRoot := newAggNode(f.Name)
	for _, id := range occurrences {
		s := c.Profile.Span(id)
		totalDuration += s.Duration()
		totalSelf += s.SelfTimeUS
		mergeCallees(c.Profile, calleeRoot, id)
		mergeCallers(c.Profile, callerRoot, id)
	}
	if totalDuration <= 0 {
		return nil, nil
	}
	ppu := c.WidthPx / float64(totalDuration)

	callerDepth := maxAggDepth(callerRoot)
	upperHeight := float64(callerDepth+1) * RowHeight
	lowerY0 := upperHeight

	var cmds []render.Command
	cmds = append(cmds, render.DrawText{
		Pos:      geom.Point{X: 4, Y: 12},
		Text:     fmt.Sprintf("%s: total=%dus self=%dus (%d occurrences)", f.Name, totalDuration, totalSelf, len(occurrences)),
		Token:    theme.TextMuted,
		FontSize: 11,
		Align:    render.AlignLeft,
	})

	packAgg(callerRoot, c.Selection.FrameID, true, c, 0, ppu, 0, true, upperHeight-RowHeight, &cmds)
	packAgg(calleeRoot, c.Selection.FrameID, true, c, 0, ppu, 0, false, lowerY0, &cmds)
	return cmds, nil
}
