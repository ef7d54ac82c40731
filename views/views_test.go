package views

import (
	"testing"

	"github.com/proftrace/proftrace/colormap"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
	"github.com/proftrace/proftrace/viewport"
)

// buildThreeSpanProfile constructs spec.md §8 scenario 1's fixture:
// A(0..1000,d=0), B(100..400,d=1,parent=A), C(500..900,d=1,parent=A).
func buildThreeSpanProfile(t *testing.T) (*model.Profile, model.ThreadID, model.FrameID, model.FrameID, model.FrameID) {
	t.Helper()
	p := model.NewProfile(model.FormatChrome)
	p.StartTimeUS = 0
	p.EndTimeUS = 1000

	const tid model.ThreadID = 1

	aID, a := p.AllocSpan()
	a.Name = p.Intern("A")
	a.ThreadID = tid
	a.StartUS, a.EndUS = 0, 1000

	bID, b := p.AllocSpan()
	b.Name = p.Intern("B")
	b.ThreadID = tid
	b.StartUS, b.EndUS = 100, 400
	b.Parent = aID
	b.Depth = 1

	cID, c := p.AllocSpan()
	c.Name = p.Intern("C")
	c.ThreadID = tid
	c.StartUS, c.EndUS = 500, 900
	c.Parent = aID
	c.Depth = 1

	a.FirstChild = bID
	b.NextSibling = cID

	p.Threads = append(p.Threads, model.Thread{ID: tid, Name: "main", SortKey: "main", RootSpans: []model.FrameID{aID}})
	p.Finalize()
	return p, tid, aID, bID, cID
}

func baseContext(p *model.Profile, width, height float64) *Context {
	return &Context{
		Profile:        p,
		ProfileHandle:  1,
		Viewport:       &viewport.Viewport{Start: 0, End: 1},
		SessionStartUS: 0,
		SessionEndUS:   1000,
		WidthPx:        width,
		HeightPx:       height,
		ColorMode:      colormap.ByName,
		Search:         NoSearch,
	}
}

func findRect(cmds []render.Command, frameID model.FrameID) (render.DrawRect, bool) {
	for _, cmd := range cmds {
		if r, ok := cmd.(render.DrawRect); ok && r.HasFrameID && r.FrameID == frameID {
			return r, true
		}
	}
	return render.DrawRect{}, false
}

func TestTimeOrderThreeSpanScenario(t *testing.T) {
	p, tid, aID, bID, cID := buildThreeSpanProfile(t)
	c := baseContext(p, 1000, 60)
	cmds := TimeOrder(c, tid)

	cases := []struct {
		id             model.FrameID
		x, y, w, h float64
	}{
		{aID, 0, 0, 1000, 19},
		{bID, 100, 20, 300, 19},
		{cID, 500, 20, 400, 19},
	}
	for _, tc := range cases {
		r, ok := findRect(cmds, tc.id)
		if !ok {
			t.Fatalf("no rect found for frame %d", tc.id)
		}
		if r.Rect.Min.X != tc.x || r.Rect.Min.Y != tc.y || r.Rect.Dx() != tc.w || r.Rect.Dy() != tc.h {
			t.Fatalf("frame %d rect = %v, want x=%g y=%g w=%g h=%g", tc.id, r.Rect, tc.x, tc.y, tc.w, tc.h)
		}
	}
}

type fixedSearch struct {
	match func(int64, model.FrameID) bool
}

func (f fixedSearch) IsMatch(handle int64, id model.FrameID) bool { return f.match(handle, id) }
func (f fixedSearch) Active() bool                                { return true }

func TestSearchDimScenario(t *testing.T) {
	p, tid, aID, bID, cID := buildThreeSpanProfile(t)
	c := baseContext(p, 1000, 60)
	c.Search = fixedSearch{match: func(_ int64, id model.FrameID) bool { return id == bID }}

	cmds := TimeOrder(c, tid)

	rA, _ := findRect(cmds, aID)
	rB, _ := findRect(cmds, bID)
	rC, _ := findRect(cmds, cID)

	if rA.Fill != theme.FlameNeutral || rC.Fill != theme.FlameNeutral {
		t.Fatalf("non-matching spans should recolor to FlameNeutral: A=%v C=%v", rA.Fill, rC.Fill)
	}
	if rB.Fill == theme.FlameNeutral {
		t.Fatal("matching span B should keep its color mapper token")
	}

	var hasHighlight bool
	for _, cmd := range cmds {
		if r, ok := cmd.(render.DrawRect); ok && r.Fill == theme.SearchHighlight && r.Rect == rB.Rect {
			hasHighlight = true
		}
	}
	if !hasHighlight {
		t.Fatal("expected a SearchHighlight overlay rect over B")
	}
}

func TestSandwichOfBScenario(t *testing.T) {
	p, tid, _, bID, _ := buildThreeSpanProfile(t)
	c := baseContext(p, 1000, 60)
	c.Selection = Selection{ProfileHandle: 1, FrameID: bID, Has: true}

	cmds, err := Sandwich(c, tid)
	if err != nil {
		t.Fatalf("Sandwich() error = %v", err)
	}

	var sawCallerA bool
	for _, cmd := range cmds {
		if r, ok := cmd.(render.DrawRect); ok && r.Label == "A" {
			sawCallerA = true
			if r.Rect.Dx() <= 0 {
				t.Fatal("caller A's rect should have positive width proportional to 300us")
			}
		}
	}
	if !sawCallerA {
		t.Fatal("expected the caller flame to contain A")
	}
}

func TestSandwichWithoutSelectionErrors(t *testing.T) {
	p, tid, _, _, _ := buildThreeSpanProfile(t)
	c := baseContext(p, 1000, 60)
	if _, err := Sandwich(c, tid); err == nil {
		t.Fatal("expected an error when no frame is selected")
	}
}

func TestRankedSortsByMetric(t *testing.T) {
	p, tid, aID, _, _ := buildThreeSpanProfile(t)
	c := baseContext(p, 1000, 60)
	cmds := Ranked(c, tid, RankByTotalTime, SortDescending)
	if len(cmds) == 0 {
		t.Fatal("expected at least one ranked row")
	}
	first, ok := cmds[0].(render.DrawRect)
	if !ok || first.Label != p.Span(aID).Name {
		t.Fatalf("expected A (longest total duration) to rank first, got %+v", first)
	}
}
