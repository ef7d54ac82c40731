package export

import (
	"strings"
	"testing"

	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

func buildTwoSpanProfile() *model.Profile {
	p := model.NewProfile(model.FormatChrome)
	p.StartTimeUS, p.EndTimeUS = 0, 1000
	const tid model.ThreadID = 1

	aID, a := p.AllocSpan()
	a.Name, a.ThreadID, a.StartUS, a.EndUS = "A", tid, 0, 1000

	bID, b := p.AllocSpan()
	b.Name, b.ThreadID, b.StartUS, b.EndUS = "B", tid, 100, 400
	b.Parent, b.Depth = aID, 1
	a.FirstChild = bID

	p.Threads = append(p.Threads, model.Thread{ID: tid, Name: "main", SortKey: "main", RootSpans: []model.FrameID{aID}})
	p.Counters = append(p.Counters, model.Counter{Name: "heap", Samples: []model.CounterSample{{TimestampUS: 0, Value: 1}, {TimestampUS: 500, Value: 2}}})
	p.Finalize()
	return p
}

func TestToDocumentRoundTripsSpanTree(t *testing.T) {
	p := buildTwoSpanProfile()
	raw, err := MarshalJSON(p)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	p2, err := UnmarshalJSON(raw)
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if p2.StartTimeUS != p.StartTimeUS || p2.EndTimeUS != p.EndTimeUS {
		t.Fatalf("time bounds changed: got [%d,%d] want [%d,%d]", p2.StartTimeUS, p2.EndTimeUS, p.StartTimeUS, p.EndTimeUS)
	}
	if len(p2.Threads) != 1 || len(p2.Threads[0].RootSpans) != 1 {
		t.Fatalf("thread/root shape changed: %+v", p2.Threads)
	}
	root := p2.Span(p2.Threads[0].RootSpans[0])
	if root.Name != "A" {
		t.Fatalf("root name = %q, want A", root.Name)
	}
	childID := root.FirstChild
	if childID == model.NoFrame {
		t.Fatal("root lost its child across round trip")
	}
	child := p2.Span(childID)
	if child.Name != "B" || child.Parent != p2.Threads[0].RootSpans[0] {
		t.Fatalf("child malformed after round trip: %+v", child)
	}
	if len(p2.Counters) != 1 || len(p2.Counters[0].Samples) != 2 {
		t.Fatalf("counter data lost: %+v", p2.Counters)
	}
}

func TestCompressDecompressSnapshotRoundTrips(t *testing.T) {
	p := buildTwoSpanProfile()
	blob, err := CompressSnapshot(p)
	if err != nil {
		t.Fatalf("CompressSnapshot: %v", err)
	}
	p2, err := DecompressSnapshot(blob)
	if err != nil {
		t.Fatalf("DecompressSnapshot: %v", err)
	}
	if len(p2.Threads) != len(p.Threads) {
		t.Fatalf("thread count changed: got %d want %d", len(p2.Threads), len(p.Threads))
	}
}

func TestRenderSVGProducesWellFormedDocument(t *testing.T) {
	cmds := []render.Command{
		render.DrawRect{Rect: geom.Rectangle(0, 0, 100, 19), Fill: theme.FlameWarm, Label: "A", HasFrameID: true, FrameID: 1},
		render.SetClip{Rect: geom.Rectangle(0, 0, 50, 19)},
		render.DrawText{Pos: geom.Point{X: 2, Y: 14}, Text: "A", Token: theme.TextPrimary},
		render.ClearClip{},
	}
	svg := RenderSVG(cmds, 200, 50, theme.Light)

	if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not a well-formed SVG document: %q", svg)
	}
	if !strings.Contains(svg, `viewBox="0 0 200.00 50.00"`) {
		t.Fatalf("viewBox mismatch: %q", svg)
	}
	if !strings.Contains(svg, "<clipPath") || !strings.Contains(svg, "</g>") {
		t.Fatalf("expected a balanced clip group: %q", svg)
	}
	if strings.Count(svg, "<g") != strings.Count(svg, "</g>") {
		t.Fatalf("unbalanced <g> tags: %q", svg)
	}
}

func TestEscapeXMLEscapesReservedCharacters(t *testing.T) {
	got := escapeXML(`<tag a="b">&</tag>`)
	want := "&lt;tag a=&quot;b&quot;&gt;&amp;&lt;/tag&gt;"
	if got != want {
		t.Fatalf("escapeXML = %q, want %q", got, want)
	}
}
