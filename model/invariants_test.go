package model_test

import (
	"testing"

	"github.com/proftrace/proftrace/facade"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/views"
	"github.com/proftrace/proftrace/viewport"
)

// checkSpanInvariants re-verifies spec.md §8's quantified span invariants
// against p, independent of how many façade commands have run since p was
// loaded: spans are immutable once built, so these must hold forever.
func checkSpanInvariants(t *testing.T, p *model.Profile) {
	t.Helper()
	for i := 0; i < p.NumSpans(); i++ {
		s := p.Span(model.FrameID(i + 1))
		if s.StartUS > s.EndUS {
			t.Errorf("span %d: start %d > end %d", s.ID, s.StartUS, s.EndUS)
		}
		if s.StartUS < p.StartTimeUS || s.EndUS > p.EndTimeUS {
			t.Errorf("span %d: [%d,%d] outside profile range [%d,%d]", s.ID, s.StartUS, s.EndUS, p.StartTimeUS, p.EndTimeUS)
		}
		if s.Parent == model.NoFrame {
			continue
		}
		parent := p.Span(s.Parent)
		if s.Depth != parent.Depth+1 {
			t.Errorf("span %d: depth %d, want %d", s.ID, s.Depth, parent.Depth+1)
		}
		if s.StartUS < parent.StartUS || s.EndUS > parent.EndUS {
			t.Errorf("span %d: [%d,%d] not contained in parent [%d,%d]", s.ID, s.StartUS, s.EndUS, parent.StartUS, parent.EndUS)
		}
	}
	for _, th := range p.Threads {
		for _, root := range th.RootSpans {
			checkNoSiblingOverlap(t, p, root)
		}
	}
}

func checkNoSiblingOverlap(t *testing.T, p *model.Profile, id model.FrameID) {
	t.Helper()
	s := p.Span(id)
	var prev *model.Span
	for c := s.FirstChild; c != model.NoFrame; {
		cur := p.Span(c)
		if prev != nil && prev.EndUS > cur.StartUS {
			t.Errorf("sibling overlap: %d ends at %d after %d starts at %d", prev.ID, prev.EndUS, cur.ID, cur.StartUS)
		}
		checkNoSiblingOverlap(t, p, c)
		prev = cur
		c = cur.NextSibling
	}
}

func checkViewportInvariant(t *testing.T, f *facade.Facade) {
	t.Helper()
	st := f.GetState()
	if !(0 <= st.Viewport.Start && st.Viewport.Start < st.Viewport.End && st.Viewport.End <= 1) {
		t.Errorf("viewport invariant violated: [%g,%g]", st.Viewport.Start, st.Viewport.End)
	}
}

// TestInvariantsHoldAcrossScriptedCommandSequence drives a façade through
// load, select, navigate, search, zoom, and export commands and re-checks
// spec.md §8's quantified invariants after every one — the "must hold
// after every command" requirement, exercised end to end rather than
// against one frozen fixture.
func TestInvariantsHoldAcrossScriptedCommandSequence(t *testing.T) {
	const collapsed = "root;a;leaf1 10\nroot;a;leaf2 5\nroot;b 8\n"

	f := facade.New()
	h, err := f.LoadProfile("scripted", []byte(collapsed))
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	p := f.Session.Profile(h)
	checkSpanInvariants(t, p)
	checkViewportInvariant(t, f)

	f.SetSearch("leaf")
	checkViewportInvariant(t, f)
	f.NextSearchResult()
	checkSpanInvariants(t, p)
	checkViewportInvariant(t, f)

	var root model.FrameID
	for i := 0; i < p.NumSpans(); i++ {
		s := p.Span(model.FrameID(i + 1))
		if s.Parent == model.NoFrame {
			root = s.ID
			break
		}
	}
	f.SelectSpan(h, 0, root)
	f.NavigateToChild()
	checkSpanInvariants(t, p)
	checkViewportInvariant(t, f)

	f.ZoomToSelection()
	checkViewportInvariant(t, f)

	f.ResetZoom()
	checkViewportInvariant(t, f)

	f.SetSearch("")
	checkSpanInvariants(t, p)
	checkViewportInvariant(t, f)

	if _, err := f.ExportJSON(h); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	checkSpanInvariants(t, p)
}

// TestMinimapDragRoundTripScenario is spec.md §8 end-to-end scenario 6:
// dragging the minimap's viewport indicator from [0,0.2] to [0.6,0.8]
// sets the viewport exactly, and a subsequent resetZoom restores [0,1]
// while pushing [0.6,0.8] onto the back stack.
func TestMinimapDragRoundTripScenario(t *testing.T) {
	f := facade.New()
	f.SetViewport(0, 0.2)
	f.SetViewport(0.6, 0.8)

	st := f.GetState()
	if st.Viewport.Start != 0.6 || st.Viewport.End != 0.8 {
		t.Fatalf("viewport after drag = [%g,%g], want [0.6,0.8]", st.Viewport.Start, st.Viewport.End)
	}

	f.ResetZoom()
	st = f.GetState()
	if st.Viewport.Start != 0 || st.Viewport.End != 1 {
		t.Fatalf("viewport after resetZoom = [%g,%g], want [0,1]", st.Viewport.Start, st.Viewport.End)
	}

	f.NavigateBack()
	st = f.GetState()
	if st.Viewport.Start != 0.6 || st.Viewport.End != 0.8 {
		t.Fatalf("viewport after Back = [%g,%g], want [0.6,0.8]", st.Viewport.Start, st.Viewport.End)
	}
}

// TestEmptyProfileBoundary checks spec.md §8's empty-profile boundary:
// every transform returns an empty command list and hit testing always
// misses.
func TestEmptyProfileBoundary(t *testing.T) {
	p := model.NewProfile(model.FormatCollapsed)
	p.Finalize()

	ctx := &views.Context{
		Profile:        p,
		ProfileHandle:  1,
		Viewport:       viewport.New(),
		SessionStartUS: 0,
		SessionEndUS:   0,
		WidthPx:        1000,
		HeightPx:       60,
		Search:         views.NoSearch,
	}
	if cmds := views.TimeOrder(ctx, 0); len(cmds) != 0 {
		t.Errorf("TimeOrder on an empty profile returned %d commands, want 0", len(cmds))
	}
	if cmds := views.LeftHeavy(ctx, 0); len(cmds) != 0 {
		t.Errorf("LeftHeavy on an empty profile returned %d commands, want 0", len(cmds))
	}
	if cmds := views.Minimap(ctx, 0, 200, 30); len(cmds) != 0 {
		t.Errorf("Minimap on an empty profile returned %d commands, want 0", len(cmds))
	}
}

// TestZeroDurationSpansBoundary checks spec.md §8's "all spans at one
// instant" boundary: transforms must emit no rects wider than
// views.MinWidthPx, even though every span has start == end.
func TestZeroDurationSpansBoundary(t *testing.T) {
	p := model.NewProfile(model.FormatCollapsed)
	p.StartTimeUS, p.EndTimeUS = 0, 1000
	const tid model.ThreadID = 1

	aID, a := p.AllocSpan()
	a.Name, a.ThreadID = p.Intern("instant-a"), tid
	a.StartUS, a.EndUS = 500, 500

	bID, b := p.AllocSpan()
	b.Name, b.ThreadID = p.Intern("instant-b"), tid
	b.StartUS, b.EndUS = 500, 500

	p.Threads = append(p.Threads, model.Thread{ID: tid, Name: "main", SortKey: "main", RootSpans: []model.FrameID{aID, bID}})
	p.Finalize()

	ctx := &views.Context{
		Profile:        p,
		ProfileHandle:  1,
		Viewport:       viewport.New(),
		SessionStartUS: 0,
		SessionEndUS:   1000,
		WidthPx:        1000,
		HeightPx:       60,
		Search:         views.NoSearch,
	}
	cmds := views.TimeOrder(ctx, tid)
	for _, cmd := range cmds {
		dr, ok := cmd.(render.DrawRect)
		if !ok {
			continue
		}
		if dr.Rect.Dx() > views.MinWidthPx {
			t.Errorf("zero-duration span rect has width %g, want <= MinWidthPx (%g)", dr.Rect.Dx(), views.MinWidthPx)
		}
	}
}
