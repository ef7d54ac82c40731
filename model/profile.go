package model

import (
	"sort"

	"github.com/proftrace/proftrace/container"
	"github.com/proftrace/proftrace/mem"
)

// Format identifies which parser produced a Profile.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatChrome
	FormatFirefox
	FormatSpeedscope
	FormatV8CPUProfile
	FormatPprof
	FormatPIX
	FormatTracy
	FormatPerfScript
	FormatCollapsed
	FormatReactDevTools
)

func (f Format) String() string {
	switch f {
	case FormatChrome:
		return "chrome"
	case FormatFirefox:
		return "firefox"
	case FormatSpeedscope:
		return "speedscope"
	case FormatV8CPUProfile:
		return "v8-cpuprofile"
	case FormatPprof:
		return "pprof"
	case FormatPIX:
		return "pix"
	case FormatTracy:
		return "tracy"
	case FormatPerfScript:
		return "perf-script"
	case FormatCollapsed:
		return "collapsed"
	case FormatReactDevTools:
		return "react-devtools"
	default:
		return "unknown"
	}
}

// Profile is one capture, normalized into the shared model. It is built
// once by a Parser, then immutable: every field below except visibleIndex
// is read-only after Finalize returns. Spans live in an arena and are never
// addressed by pointer, so the tree has no reference cycles. visibleIndex
// is filled by VisibleSpans on first use per thread, so concurrent
// VisibleSpans calls on one Profile are not safe.
type Profile struct {
	Name    string
	HasName bool
	Format  Format

	StartTimeUS int64
	EndTimeUS   int64

	Threads    []Thread
	Counters   []Counter
	Markers    []Marker
	AsyncSpans []AsyncSpan
	Frames     []Frame
	FlowEdges  []FlowEdge

	arena   mem.BucketSlice[Span]
	interns *Interner

	// visibleIndex maps a thread to an interval tree over its spans'
	// [StartUS,EndUS] ranges (both ends inclusive), built lazily on first use by a view
	// transform's visible-span cull (spec §4.6 step 3).
	visibleIndex map[ThreadID]*container.IntervalTree[int64, FrameID]
}

// NewProfile returns an empty Profile ready for a Builder to populate.
func NewProfile(format Format) *Profile {
	return &Profile{
		Format:  format,
		interns: NewInterner(),
	}
}

// Intern returns the canonical copy of s for this profile's string table.
func (p *Profile) Intern(s string) string {
	return p.interns.Intern(s)
}

// AllocSpan reserves the next arena slot, returning its id and a pointer
// to the zero-valued span so a builder can fill it in place.
func (p *Profile) AllocSpan() (FrameID, *Span) {
	ptr := p.arena.Grow()
	id := FrameID(p.arena.Len())
	ptr.ID = id
	return id, ptr
}

// Span returns the span addressed by id. Calling with NoFrame panics, by
// design: callers must check against NoFrame themselves.
func (p *Profile) Span(id FrameID) *Span {
	return p.arena.Ptr(int(id) - 1)
}

// NumSpans reports the total number of spans across all threads.
func (p *Profile) NumSpans() int {
	return p.arena.Len()
}

// buildVisibleIndex constructs the interval tree for thread's spans, used
// to cull spans outside a view transform's visible time window in
// O(log n + k) instead of a linear scan over every span in the thread.
func (p *Profile) buildVisibleIndex(tid ThreadID) *container.IntervalTree[int64, FrameID] {
	if p.visibleIndex == nil {
		p.visibleIndex = make(map[ThreadID]*container.IntervalTree[int64, FrameID])
	}
	if t, ok := p.visibleIndex[tid]; ok {
		return t
	}
	tree := container.NewIntervalTree[int64, FrameID]()
	for i := 0; i < p.arena.Len(); i++ {
		s := p.arena.Ptr(i)
		if s.ThreadID == tid {
			tree.Insert(s.StartUS, s.EndUS, s.ID)
		}
	}
	p.visibleIndex[tid] = tree
	return tree
}

// VisibleSpans appends the ids of tid's spans overlapping [t0,t1] to out,
// in no particular order. Building the underlying index is amortized
// across calls: it is built once per thread and reused for every frame
// until the profile is replaced.
func (p *Profile) VisibleSpans(tid ThreadID, t0, t1 int64, out []FrameID) []FrameID {
	tree := p.buildVisibleIndex(tid)
	tree.FindIter(t0, t1, func(n *container.RBNode[container.Interval[int64], container.Value[int64, FrameID]]) bool {
		out = append(out, n.Value.Value)
		return false
	})
	return out
}

// Finalize sorts threads by their stable key and children by start time,
// then recomputes self time for every span. Builders call this once after
// populating the profile, before returning it to the caller.
func (p *Profile) Finalize() {
	sort.Slice(p.Threads, func(i, j int) bool {
		a, b := p.Threads[i], p.Threads[j]
		if a.SortKey != b.SortKey {
			return a.SortKey < b.SortKey
		}
		return a.ID < b.ID
	})
	for i := range p.Threads {
		t := &p.Threads[i]
		sort.Slice(t.RootSpans, func(a, b int) bool {
			return p.Span(t.RootSpans[a]).StartUS < p.Span(t.RootSpans[b]).StartUS
		})
		for _, root := range t.RootSpans {
			p.sortChildren(root)
			p.computeSelfTime(root)
		}
	}
}

func (p *Profile) sortChildren(id FrameID) {
	s := p.Span(id)
	var children []FrameID
	for c := s.FirstChild; c != NoFrame; c = p.Span(c).NextSibling {
		children = append(children, c)
	}
	sort.Slice(children, func(i, j int) bool {
		return p.Span(children[i]).StartUS < p.Span(children[j]).StartUS
	})
	for i, c := range children {
		cs := p.Span(c)
		if i+1 < len(children) {
			cs.NextSibling = children[i+1]
		} else {
			cs.NextSibling = NoFrame
		}
	}
	if len(children) > 0 {
		s.FirstChild = children[0]
	}
	for _, c := range children {
		p.sortChildren(c)
	}
}

// computeSelfTime sets SelfTimeUS for id and its descendants: duration
// minus the sum of (non-overlapping, sorted) children's durations.
func (p *Profile) computeSelfTime(id FrameID) {
	s := p.Span(id)
	var childTotal int64
	for c := s.FirstChild; c != NoFrame; c = p.Span(c).NextSibling {
		p.computeSelfTime(c)
		childTotal += p.Span(c).Duration()
	}
	s.SelfTimeUS = s.Duration() - childTotal
}
