// Package build provides a shared span-tree builder that every format
// parser feeds with a stream of begin/end/sample events, instead of each
// parser hand-rolling its own stack bookkeeping.
package build

import "github.com/proftrace/proftrace/model"

type openSpan struct {
	id       model.FrameID
	lastChild model.FrameID
}

type threadState struct {
	stack     []openSpan
	sampleRows []sampleFrame // currently open spans reconstructed from samples, indexed by depth
}

type sampleFrame struct {
	id   model.FrameID
	name string
}

// Builder accumulates begin/end/sample events per thread and materializes
// them into a Profile's span arena. It does not sort or finalize the
// profile; call Profile.Finalize once all events have been fed.
type Builder struct {
	p       *model.Profile
	threads map[model.ThreadID]*threadState
}

// New returns a Builder writing into p.
func New(p *model.Profile) *Builder {
	return &Builder{p: p, threads: make(map[model.ThreadID]*threadState)}
}

func (b *Builder) thread(tid model.ThreadID) *threadState {
	t, ok := b.threads[tid]
	if !ok {
		t = &threadState{}
		b.threads[tid] = t
	}
	return t
}

// EnsureThread registers tid with the given display name if it hasn't
// been seen yet, returning the Profile's thread slice index.
func (b *Builder) EnsureThread(tid model.ThreadID, name string) int {
	for i := range b.p.Threads {
		if b.p.Threads[i].ID == tid {
			return i
		}
	}
	b.p.Threads = append(b.p.Threads, model.Thread{
		ID:      tid,
		Name:    b.p.Intern(name),
		SortKey: name,
	})
	return len(b.p.Threads) - 1
}

// Begin opens a span on tid at ts, nested under whatever span is currently
// open on that thread (or as a new root if none is). Returns the new
// span's id so the caller can attach flags or a category after the fact.
func (b *Builder) Begin(tid model.ThreadID, ts int64, name, category string) model.FrameID {
	ts_ := b.thread(tid)
	id, span := b.p.AllocSpan()
	span.Name = b.p.Intern(name)
	if category != "" {
		span.Category = b.p.Intern(category)
	}
	span.ThreadID = tid
	span.StartUS = ts
	span.EndUS = ts // closed by End; left open (== start) if never closed

	if len(ts_.stack) == 0 {
		b.attachRoot(tid, id)
	} else {
		parent := ts_.stack[len(ts_.stack)-1]
		span.Parent = parent.id
		span.Depth = b.p.Span(parent.id).Depth + 1
		b.attachChild(parent.id, id, ts_)
	}
	ts_.stack = append(ts_.stack, openSpan{id: id})
	return id
}

func (b *Builder) attachRoot(tid model.ThreadID, id model.FrameID) {
	idx := b.EnsureThread(tid, "")
	b.p.Threads[idx].RootSpans = append(b.p.Threads[idx].RootSpans, id)
	b.p.Threads[idx].SpanCount++
}

func (b *Builder) attachChild(parentID, childID model.FrameID, ts_ *threadState) {
	parent := b.p.Span(parentID)
	if parent.FirstChild == model.NoFrame {
		parent.FirstChild = childID
	} else {
		last := ts_.stack[len(ts_.stack)-1].lastChild
		if last != model.NoFrame {
			b.p.Span(last).NextSibling = childID
		}
	}
	ts_.stack[len(ts_.stack)-1].lastChild = childID
	tidx := b.EnsureThread(parent.ThreadID, "")
	b.p.Threads[tidx].SpanCount++
	if d := b.p.Span(childID).Depth + 1; d > b.p.Threads[tidx].MaxDepth {
		b.p.Threads[tidx].MaxDepth = d
	}
}

// End closes the innermost open span on tid at ts. A mismatched End (no
// open span) is silently ignored: formats that only report well-formed
// begin/end pairs never trigger it, and a truncated capture should still
// produce a usable partial-thread profile rather than failing outright.
func (b *Builder) End(tid model.ThreadID, ts int64) {
	ts_ := b.thread(tid)
	if len(ts_.stack) == 0 {
		return
	}
	top := ts_.stack[len(ts_.stack)-1]
	ts_.stack = ts_.stack[:len(ts_.stack)-1]
	b.p.Span(top.id).EndUS = ts
}

// CloseAll force-closes every thread's remaining open spans at ts, for
// formats whose capture ends mid-span.
func (b *Builder) CloseAll(ts int64) {
	for tid, ts_ := range b.threads {
		for len(ts_.stack) > 0 {
			b.End(tid, ts)
		}
	}
}

// Flat appends a single begin/end pair in one call: the span nests under
// whatever is currently open on tid, exactly as with Begin, and is closed
// again before Flat returns — used by formats (speedscope's event list,
// Chrome's "X" complete events) that hand the builder an interval
// directly rather than separate begin/end signals.
func (b *Builder) Flat(tid model.ThreadID, start, end int64, name, category string) model.FrameID {
	id := b.Begin(tid, start, name, category)
	b.End(tid, end)
	return id
}

// Sample feeds one sampled-stack observation (innermost frame last) at ts
// for tid. Consecutive samples sharing a prefix extend the open spans at
// those prefix depths; the first differing frame closes every span at or
// below that depth and opens new ones for the remainder of stack. This
// reconstructs approximate intervals from sampled profilers (V8, perf,
// pprof) per the shared-prefix rule.
func (b *Builder) Sample(tid model.ThreadID, ts int64, stack []string) {
	ts_ := b.thread(tid)

	common := 0
	for common < len(ts_.sampleRows) && common < len(stack) && ts_.sampleRows[common].name == stack[common] {
		common++
	}

	// Close every open sampled span at or beyond the common prefix.
	for i := len(ts_.sampleRows) - 1; i >= common; i-- {
		id := ts_.sampleRows[i].id
		b.p.Span(id).EndUS = ts
	}
	ts_.sampleRows = ts_.sampleRows[:common]

	// Open new spans for the remainder of the stack.
	for i := common; i < len(stack); i++ {
		id, span := b.p.AllocSpan()
		span.Name = b.p.Intern(stack[i])
		span.ThreadID = tid
		span.StartUS = ts
		span.EndUS = ts
		span.Flags |= model.FlagSampled

		if i == 0 {
			span.Depth = 0
			b.attachRoot(tid, id)
		} else {
			parent := ts_.sampleRows[i-1].id
			span.Parent = parent
			span.Depth = b.p.Span(parent).Depth + 1
			b.attachSampledChild(tid, parent, id)
		}
		ts_.sampleRows = append(ts_.sampleRows, sampleFrame{id: id, name: stack[i]})
	}

	// Extend EndUS for spans that survived the common prefix: they remain
	// open, so their provisional end is pushed forward to the latest
	// sample that observed them.
	for i := 0; i < common; i++ {
		b.p.Span(ts_.sampleRows[i].id).EndUS = ts
	}
}

// attachSampledChild links childID under parentID, appending to the
// parent's sibling chain, and updates the owning thread's span count and
// max depth. Sampled stacks are shallow in practice (tens of frames), so
// the sibling-chain walk is cheap relative to the cost of the sample.
func (b *Builder) attachSampledChild(tid model.ThreadID, parentID, childID model.FrameID) {
	parent := b.p.Span(parentID)
	if parent.FirstChild == model.NoFrame {
		parent.FirstChild = childID
	} else {
		c := parent.FirstChild
		for {
			cs := b.p.Span(c)
			if cs.NextSibling == model.NoFrame {
				cs.NextSibling = childID
				break
			}
			c = cs.NextSibling
		}
	}
	tidx := b.EnsureThread(tid, "")
	b.p.Threads[tidx].SpanCount++
	if d := b.p.Span(childID).Depth + 1; d > b.p.Threads[tidx].MaxDepth {
		b.p.Threads[tidx].MaxDepth = d
	}
}
