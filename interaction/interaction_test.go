package interaction

import (
	"testing"

	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/lane"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
)

func buildThreeSpanProfile(t *testing.T) (*model.Profile, model.ThreadID, model.FrameID, model.FrameID, model.FrameID) {
	t.Helper()
	p := model.NewProfile(model.FormatChrome)
	p.StartTimeUS, p.EndTimeUS = 0, 1000
	const tid model.ThreadID = 1

	aID, a := p.AllocSpan()
	a.Name, a.ThreadID, a.StartUS, a.EndUS = "A", tid, 0, 1000

	bID, b := p.AllocSpan()
	b.Name, b.ThreadID, b.StartUS, b.EndUS = "B", tid, 100, 400
	b.Parent, b.Depth = aID, 1

	cID, c := p.AllocSpan()
	c.Name, c.ThreadID, c.StartUS, c.EndUS = "C", tid, 500, 900
	c.Parent, c.Depth = aID, 1

	a.FirstChild = bID
	b.NextSibling = cID
	p.Threads = append(p.Threads, model.Thread{ID: tid, Name: "main", SortKey: "main", RootSpans: []model.FrameID{aID}})
	p.Finalize()
	return p, tid, aID, bID, cID
}

func TestHitTestLastDrawnFirstWins(t *testing.T) {
	mgr := lane.NewManager()
	l := mgr.AddLane(lane.KindThread, 1)
	mgr.SetHeight(l.ID, 100)

	cmds := []render.Command{
		render.DrawRect{Rect: geom.Rectangle(0, 0, 100, 19), HasFrameID: true, FrameID: model.FrameID(1)},
		render.DrawRect{Rect: geom.Rectangle(0, 0, 100, 19), HasFrameID: true, FrameID: model.FrameID(2)},
	}
	mgr.StoreLayout(l.ID, 1, cmds)
	mgr.WaitLayoutCache()

	res := HitTest(mgr, 1, 10, float64(lane.HeaderHeight)+5)
	if !res.Found || res.FrameID != model.FrameID(2) {
		t.Fatalf("HitTest = %+v, want last-drawn frame 2", res)
	}
}

func TestHitTestMissReturnsNotFound(t *testing.T) {
	mgr := lane.NewManager()
	l := mgr.AddLane(lane.KindThread, 1)
	mgr.SetHeight(l.ID, 100)
	mgr.StoreLayout(l.ID, 1, []render.Command{
		render.DrawRect{Rect: geom.Rectangle(0, 0, 10, 10), HasFrameID: true, FrameID: model.FrameID(1)},
	})
	mgr.WaitLayoutCache()

	res := HitTest(mgr, 1, 500, float64(lane.HeaderHeight)+5)
	if res.Found {
		t.Fatalf("HitTest = %+v, want not found outside any rect", res)
	}
}

func TestNavigationHierarchy(t *testing.T) {
	p, _, aID, bID, cID := buildThreeSpanProfile(t)

	sel := Select(p, 1, 0, aID)
	sel = NavigateToChild(p, sel)
	if sel.FrameID != bID {
		t.Fatalf("NavigateToChild(A) = %d, want B(%d)", sel.FrameID, bID)
	}
	sel = NavigateToNextSibling(p, sel)
	if sel.FrameID != cID {
		t.Fatalf("NavigateToNextSibling(B) = %d, want C(%d)", sel.FrameID, cID)
	}
	sel = NavigateToPrevSibling(p, sel)
	if sel.FrameID != bID {
		t.Fatalf("NavigateToPrevSibling(C) = %d, want B(%d)", sel.FrameID, bID)
	}
	sel = NavigateToParent(p, sel)
	if sel.FrameID != aID {
		t.Fatalf("NavigateToParent(B) = %d, want A(%d)", sel.FrameID, aID)
	}
	// no-op at the root
	sel = NavigateToParent(p, sel)
	if sel.FrameID != aID {
		t.Fatalf("NavigateToParent(A) should be a no-op, got %d", sel.FrameID)
	}
}

func TestSearchDimScenarioMatchCounts(t *testing.T) {
	p, tid, aID, bID, cID := buildThreeSpanProfile(t)
	targets := []SearchTarget{{ProfileHandle: 1, Profile: p, ThreadID: tid}}

	s := SetQuery("B", targets)
	if s.MatchCount() != 1 {
		t.Fatalf("MatchCount() = %d, want 1", s.MatchCount())
	}
	if !s.IsMatch(1, bID) {
		t.Fatal("expected B to match query \"B\"")
	}
	if s.IsMatch(1, aID) || s.IsMatch(1, cID) {
		t.Fatal("A and C should not match query \"B\"")
	}

	cleared := SetQuery("", targets)
	if cleared.Active() {
		t.Fatal("empty query should clear the active search")
	}
}

func TestNextPrevMatchWraps(t *testing.T) {
	p, tid, _, _, _ := buildThreeSpanProfile(t)
	targets := []SearchTarget{{ProfileHandle: 1, Profile: p, ThreadID: tid}}
	s := SetQuery("", targets)
	s.Matches = []Match{{ProfileHandle: 1, FrameID: 1}, {ProfileHandle: 1, FrameID: 2}}
	s.Query = "x"

	s = s.NextMatch()
	if s.ActiveIndex != 1 {
		t.Fatalf("ActiveIndex after NextMatch = %d, want 1", s.ActiveIndex)
	}
	s = s.NextMatch()
	if s.ActiveIndex != 0 {
		t.Fatalf("ActiveIndex after wrap = %d, want 0", s.ActiveIndex)
	}
	s = s.PrevMatch()
	if s.ActiveIndex != 1 {
		t.Fatalf("ActiveIndex after PrevMatch wrap = %d, want 1", s.ActiveIndex)
	}
}

func TestCenterWindowClampsToBounds(t *testing.T) {
	p, _, aID, _, _ := buildThreeSpanProfile(t)
	start, end := CenterWindow(p, 0, 0, 1000, aID, 0.4)
	if start < 0 || end > 1 || end-start > 0.4+1e-9 {
		t.Fatalf("CenterWindow = [%g,%g], want within [0,1] with span <= 0.4", start, end)
	}
}
