package model

import "testing"

func buildThreeSpanProfile(t *testing.T) (*Profile, FrameID, FrameID, FrameID) {
	p := NewProfile(FormatChrome)
	p.StartTimeUS = 0
	p.EndTimeUS = 1000
	p.Threads = []Thread{{ID: 1, Name: "main", SortKey: "main"}}

	aID, a := p.AllocSpan()
	a.Name = p.Intern("A")
	a.ThreadID = 1
	a.StartUS, a.EndUS = 0, 1000

	bID, b := p.AllocSpan()
	b.Name = p.Intern("B")
	b.ThreadID = 1
	b.StartUS, b.EndUS = 100, 400
	b.Parent = aID
	b.Depth = 1

	cID, c := p.AllocSpan()
	c.Name = p.Intern("C")
	c.ThreadID = 1
	c.StartUS, c.EndUS = 500, 900
	c.Parent = aID
	c.Depth = 1

	a.FirstChild = bID
	b.NextSibling = cID

	p.Threads[0].RootSpans = []FrameID{aID}
	p.Finalize()
	return p, aID, bID, cID
}

func TestSelfTimeArithmetic(t *testing.T) {
	p, a, b, c := buildThreeSpanProfile(t)

	tests := []struct {
		id   FrameID
		want int64
	}{
		{a, 300},
		{b, 300},
		{c, 400},
	}
	for _, tt := range tests {
		if got := p.Span(tt.id).SelfTimeUS; got != tt.want {
			t.Errorf("self time of %v = %d, want %d", tt.id, got, tt.want)
		}
	}
}

func TestSpanInvariants(t *testing.T) {
	p, a, b, c := buildThreeSpanProfile(t)
	for _, id := range []FrameID{a, b, c} {
		s := p.Span(id)
		if s.StartUS > s.EndUS {
			t.Errorf("span %v: start %d > end %d", id, s.StartUS, s.EndUS)
		}
		if s.StartUS < p.StartTimeUS || s.EndUS > p.EndTimeUS {
			t.Errorf("span %v: [%d,%d] outside profile range [%d,%d]", id, s.StartUS, s.EndUS, p.StartTimeUS, p.EndTimeUS)
		}
		if s.Parent == NoFrame {
			continue
		}
		parent := p.Span(s.Parent)
		if s.Depth != parent.Depth+1 {
			t.Errorf("span %v: depth %d, want %d", id, s.Depth, parent.Depth+1)
		}
		if s.StartUS < parent.StartUS || s.EndUS > parent.EndUS {
			t.Errorf("span %v: [%d,%d] not contained in parent [%d,%d]", id, s.StartUS, s.EndUS, parent.StartUS, parent.EndUS)
		}
	}
}

func TestNoSiblingOverlap(t *testing.T) {
	p, a, _, _ := buildThreeSpanProfile(t)
	s := p.Span(a)
	var prev *Span
	for c := s.FirstChild; c != NoFrame; c = p.Span(c).NextSibling {
		cur := p.Span(c)
		if prev != nil && prev.EndUS > cur.StartUS {
			t.Errorf("sibling overlap: %v ends at %d after %v starts at %d", prev.ID, prev.EndUS, cur.ID, cur.StartUS)
		}
		prev = cur
	}
}

func TestVisibleSpans(t *testing.T) {
	p, a, b, _ := buildThreeSpanProfile(t)

	var out []FrameID
	out = p.VisibleSpans(1, 100, 300, out)

	found := make(map[FrameID]bool)
	for _, id := range out {
		found[id] = true
	}
	if !found[a] {
		t.Errorf("expected root span A to be visible in [100,300]")
	}
	if !found[b] {
		t.Errorf("expected span B to be visible in [100,300]")
	}
}

func TestCounterFloorCeil(t *testing.T) {
	c := &Counter{Samples: []CounterSample{
		{TimestampUS: 0, Value: 1},
		{TimestampUS: 100, Value: 2},
		{TimestampUS: 200, Value: 3},
	}}

	floor, ceil := c.FloorCeil(150)
	if floor != 1 {
		t.Errorf("floor(150) = %d, want 1", floor)
	}
	if ceil != 2 {
		t.Errorf("ceil(150) = %d, want 2", ceil)
	}

	floor, ceil = c.FloorCeil(100)
	if floor != 1 {
		t.Errorf("floor(100) = %d, want 1", floor)
	}
	if ceil != 1 {
		t.Errorf("ceil(100) = %d, want 1", ceil)
	}
}
