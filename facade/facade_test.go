package facade

import (
	"errors"
	"testing"
	"time"

	"github.com/proftrace/proftrace/colormap"
	"github.com/proftrace/proftrace/export"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/session"
)

const collapsedFixture = "root;a;leaf1 10\nroot;a;leaf2 5\nroot;b 8\n"

func mustLoad(t *testing.T, f *Facade) (int64, *model.Profile) {
	t.Helper()
	h, err := f.LoadProfile("fixture", []byte(collapsedFixture))
	if err != nil {
		t.Fatalf("LoadProfile: %v", err)
	}
	p := f.Session.Profile(h)
	if p == nil {
		t.Fatalf("Session.Profile(%d) returned nil after LoadProfile", h)
	}
	return int64(h), p
}

func TestLoadProfileCreatesOneLanePerThread(t *testing.T) {
	f := New()
	_, p := mustLoad(t, f)
	if len(p.Threads) != 1 {
		t.Fatalf("collapsed fixture should parse to 1 thread, got %d", len(p.Threads))
	}
	lanes := f.Lanes.Lanes()
	if len(lanes) != 1 {
		t.Fatalf("want 1 lane after load, got %d", len(lanes))
	}
	if lanes[0].ProfileHandle != int64(1) {
		t.Errorf("lane.ProfileHandle = %d, want 1", lanes[0].ProfileHandle)
	}
}

func TestLoadProfileInvalidDataReturnsError(t *testing.T) {
	f := New()
	if _, err := f.LoadProfile("bad", []byte("not a recognizable profile\n")); err == nil {
		t.Fatal("LoadProfile with unrecognizable data should return an error")
	}
}

func TestLoadAsyncThenDrainAdoptsProfile(t *testing.T) {
	f := New()
	f.LoadAsync("fixture", []byte(collapsedFixture))

	deadline := time.Now().Add(2 * time.Second)
	for f.Session.Empty() && time.Now().Before(deadline) {
		f.Drain()
		time.Sleep(time.Millisecond)
	}
	if f.Session.Empty() {
		t.Fatal("Drain never adopted the async-loaded profile")
	}
	if len(f.Lanes.Lanes()) == 0 {
		t.Error("Drain should have adopted lanes for the newly loaded profile")
	}
}

func TestClearSessionResetsDerivedState(t *testing.T) {
	f := New()
	h, p := mustLoad(t, f)
	root := p.Threads[0].RootSpans[0]
	f.SelectSpan(session.Handle(h), 0, root)

	f.ClearSession()

	if !f.Session.Empty() {
		t.Error("ClearSession should empty the session")
	}
	if len(f.Lanes.Lanes()) != 0 {
		t.Error("ClearSession should drop every lane")
	}
	if f.Selection.Has {
		t.Error("ClearSession should clear the selection")
	}
}

func TestSetSearchThenNextPrevMovesActiveMatch(t *testing.T) {
	f := New()
	mustLoad(t, f)

	f.SetSearch("leaf")
	if f.Search.MatchCount() != 2 {
		t.Fatalf("want 2 matches for \"leaf\", got %d", f.Search.MatchCount())
	}
	first := f.Search.ActiveIndex
	f.NextSearchResult()
	if f.Search.ActiveIndex == first {
		t.Error("NextSearchResult should advance the active index")
	}
	f.PrevSearchResult()
	if f.Search.ActiveIndex != first {
		t.Error("PrevSearchResult should return to the previous active index")
	}

	f.SetSearch("")
	if f.Search.Active() {
		t.Error("an empty query should clear the active search")
	}
}

func TestSelectAndNavigateHierarchy(t *testing.T) {
	f := New()
	h, p := mustLoad(t, f)
	root := p.Threads[0].RootSpans[0]

	f.SelectSpan(session.Handle(h), 0, root)
	if !f.Selection.Has || f.Selection.FrameID != root {
		t.Fatalf("SelectSpan did not select the root span")
	}

	f.NavigateToChild()
	if f.Selection.FrameID == root {
		t.Error("NavigateToChild should move off the root span, which has children")
	}

	f.NavigateToParent()
	if f.Selection.FrameID != root {
		t.Error("NavigateToParent should return to the root span")
	}

	f.ClearSelection()
	if f.Selection.Has {
		t.Error("ClearSelection should drop the selection")
	}
}

func TestSetViewportClampsToInvariant(t *testing.T) {
	f := New()
	f.SetViewport(0.9, 0.1)
	if f.Viewport.Start >= f.Viewport.End {
		t.Errorf("SetViewport should enforce start < end, got [%f,%f]", f.Viewport.Start, f.Viewport.End)
	}

	f.SetViewport(-5, 5)
	if f.Viewport.Start < 0 || f.Viewport.End > 1 {
		t.Errorf("SetViewport should clamp to [0,1], got [%f,%f]", f.Viewport.Start, f.Viewport.End)
	}
}

func TestZoomToSelectionNarrowsViewportAroundSpan(t *testing.T) {
	f := New()
	h, p := mustLoad(t, f)
	root := p.Threads[0].RootSpans[0]
	// Select a leaf, narrower than the full root span.
	children := p.Children(root, nil)
	if len(children) == 0 {
		t.Fatal("fixture's root span should have children")
	}
	f.SelectSpan(session.Handle(h), 0, children[0])

	f.ZoomToSelection()

	if f.Viewport.Span() >= 1.0 {
		t.Errorf("ZoomToSelection should narrow the viewport, got span %f", f.Viewport.Span())
	}
}

func TestNavigateBackForwardRestoresViewport(t *testing.T) {
	f := New()
	mustLoad(t, f)

	f.Viewport.PushHistory()
	f.SetViewport(0.2, 0.4)
	want := [2]float64{f.Viewport.Start, f.Viewport.End}

	f.NavigateBack()
	if f.Viewport.Start != 0 || f.Viewport.End != 1 {
		t.Errorf("NavigateBack should restore the pushed [0,1] window, got [%f,%f]", f.Viewport.Start, f.Viewport.End)
	}

	f.NavigateForward()
	if f.Viewport.Start != want[0] || f.Viewport.End != want[1] {
		t.Errorf("NavigateForward should replay the undone window, got [%f,%f]", f.Viewport.Start, f.Viewport.End)
	}
}

func TestOnStateChangeFiresOnMutatingCommand(t *testing.T) {
	f := New()
	var calls int
	var lastGen uint64
	unsubscribe := f.OnStateChange(func(st State) {
		calls++
		lastGen = st.Generation
	})

	mustLoad(t, f)
	if calls == 0 {
		t.Fatal("OnStateChange listener should fire on LoadProfile")
	}
	if lastGen != f.Generation() {
		t.Errorf("listener's State.Generation = %d, want %d", lastGen, f.Generation())
	}

	unsubscribe()
	before := calls
	f.ToggleTheme()
	if calls != before {
		t.Error("listener should not fire again after unsubscribe")
	}
}

func TestExportJSONRoundTripsThroughFromDocument(t *testing.T) {
	f := New()
	h, p := mustLoad(t, f)

	data, err := f.ExportJSON(session.Handle(h))
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("ExportJSON returned empty data")
	}
	p2, err := export.UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if len(p2.Threads) != len(p.Threads) || p2.NumSpans() != p.NumSpans() {
		t.Fatalf("round trip gave %d threads/%d spans, want %d/%d", len(p2.Threads), p2.NumSpans(), len(p.Threads), p.NumSpans())
	}
}

func TestExportJSONUnknownHandleReturnsNoProfileLoaded(t *testing.T) {
	f := New()
	_, err := f.ExportJSON(session.Handle(999))
	var exportErr *model.ExportError
	if !errors.As(err, &exportErr) || exportErr.Kind != model.NoProfileLoaded {
		t.Fatalf("want ExportError{NoProfileLoaded}, got %v", err)
	}
}

func TestExportSVGProducesDocumentForLoadedProfile(t *testing.T) {
	f := New()
	h, _ := mustLoad(t, f)

	svg, err := f.ExportSVG(session.Handle(h), 800, 400)
	if err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	if svg == "" {
		t.Fatal("ExportSVG returned an empty document")
	}
}

func TestClassifyMapsParseErrorToSentinel(t *testing.T) {
	err := &model.ParseError{Kind: model.Truncated, Format: "chrome"}
	classified := Classify(err)
	if !errors.Is(classified, ErrTruncated) {
		t.Errorf("Classify(%v) should be errors.Is(ErrTruncated), got %v", err, classified)
	}
}

func TestClassifyMapsExportErrorToSentinel(t *testing.T) {
	err := &model.ExportError{Kind: model.NoProfileLoaded}
	classified := Classify(err)
	if !errors.Is(classified, ErrNoProfileLoaded) {
		t.Errorf("Classify(%v) should be errors.Is(ErrNoProfileLoaded), got %v", err, classified)
	}
}

func TestHandleKeyZoomToSelectionNoopWithoutSelection(t *testing.T) {
	f := New()
	mustLoad(t, f)
	before := [2]float64{f.Viewport.Start, f.Viewport.End}

	f.HandleKey(KeyZoomToSelection)

	if f.Viewport.Start != before[0] || f.Viewport.End != before[1] {
		t.Error("KeyZoomToSelection without a selection should be a no-op")
	}
}

func TestHandleKeyToggleThemeSwitchesTheme(t *testing.T) {
	f := New()
	start := f.Theme.Name
	f.HandleKey(KeyToggleTheme)
	if f.Theme.Name == start {
		t.Error("KeyToggleTheme should switch themes")
	}
}

func TestSetColorModeUpdatesState(t *testing.T) {
	f := New()
	f.SetColorMode(colormap.ByDepth)
	if f.ColorMode != colormap.ByDepth {
		t.Errorf("SetColorMode(ByDepth) = %v, want ByDepth", f.ColorMode)
	}
	st := f.GetState()
	if st.ColorMode != "by-depth" {
		t.Errorf("GetState().ColorMode = %q, want \"by-depth\"", st.ColorMode)
	}
}
