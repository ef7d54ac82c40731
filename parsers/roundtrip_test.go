package parsers

import (
	"testing"

	"github.com/proftrace/proftrace/export"
	"github.com/proftrace/proftrace/model"
)

// TestLoadExportLoadRoundTrips checks spec.md §8's round-trip property:
// load(bytes) -> P, exportJSON(P) -> s, load(s) -> P' yields P' ≡ P,
// modulo the arena-index renumbering FromDocument performs on re-import.
func TestLoadExportLoadRoundTrips(t *testing.T) {
	const collapsed = "root;a;leaf1 10\nroot;a;leaf2 5\nroot;b 8\n"

	p, err := Parse([]byte(collapsed))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	data, err := export.MarshalJSON(p)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	p2, err := export.UnmarshalJSON(data)
	if err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}

	if p2.StartTimeUS != p.StartTimeUS || p2.EndTimeUS != p.EndTimeUS {
		t.Errorf("time range = [%d,%d], want [%d,%d]", p2.StartTimeUS, p2.EndTimeUS, p.StartTimeUS, p.EndTimeUS)
	}
	if len(p2.Threads) != len(p.Threads) {
		t.Fatalf("thread count = %d, want %d", len(p2.Threads), len(p.Threads))
	}
	if p2.NumSpans() != p.NumSpans() {
		t.Fatalf("span count = %d, want %d", p2.NumSpans(), p.NumSpans())
	}

	for i, th := range p.Threads {
		th2 := p2.Threads[i]
		if th2.Name != th.Name || th2.SpanCount != th.SpanCount || th2.MaxDepth != th.MaxDepth {
			t.Errorf("thread %d = %+v, want name/spancount/maxdepth matching %+v", i, th2, th)
		}
	}

	var names, names2 []string
	walkNames(p, p.Threads[0].RootSpans[0], &names)
	walkNames(p2, p2.Threads[0].RootSpans[0], &names2)
	if len(names) != len(names2) {
		t.Fatalf("walked %d spans, want %d", len(names2), len(names))
	}
	for i := range names {
		if names[i] != names2[i] {
			t.Errorf("span %d name = %q, want %q", i, names2[i], names[i])
		}
	}

	var selfA, selfA2 int64
	for i := 0; i < p.NumSpans(); i++ {
		s := p.Span(model.FrameID(i + 1))
		if s.Name == "root" {
			selfA = s.SelfTimeUS
		}
	}
	for i := 0; i < p2.NumSpans(); i++ {
		s := p2.Span(model.FrameID(i + 1))
		if s.Name == "root" {
			selfA2 = s.SelfTimeUS
		}
	}
	if selfA2 != selfA {
		t.Errorf("root self time after round-trip = %d, want %d", selfA2, selfA)
	}
}

func walkNames(p *model.Profile, id model.FrameID, out *[]string) {
	s := p.Span(id)
	*out = append(*out, s.Name)
	var children []model.FrameID
	children = p.Children(id, children)
	for _, c := range children {
		walkNames(p, c, out)
	}
}
