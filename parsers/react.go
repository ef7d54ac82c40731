package parsers

import (
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// reactDocument is a React DevTools profiler export: one entry in
// commitData per commit, each holding the duration and updaters for that
// commit. Per-fiber timings (the "fiberActualDurations" map) are nested
// by component, not by thread, so every commit is modeled as a single
// thread lane, each commit as a span and its fibers as child spans that
// all start at the commit's start, clipped to its end, in document order.
type reactDocument struct {
	Version    int                `json:"version"`
	CommitData []reactCommit      `json:"commitData"`
}

type reactCommit struct {
	Duration   float64            `json:"duration"` // milliseconds
	Timestamp  float64            `json:"timestamp"` // milliseconds since profiling start
	Priority   string             `json:"priorityLevel"`
	Fibers     []reactFiber       `json:"fiberActualDurations"`
}

type reactFiber struct {
	Name     string  `json:"name"`
	Duration float64 `json:"duration"` // milliseconds
}

// ParseReactDevTools parses a React DevTools profiler commit log.
func ParseReactDevTools(data []byte) (*model.Profile, error) {
	var doc reactDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "react-devtools", Reason: err.Error()}
	}
	if len(doc.CommitData) == 0 {
		return nil, &model.ParseError{Kind: model.Truncated, Format: "react-devtools", Reason: "no commits"}
	}

	p := model.NewProfile(model.FormatReactDevTools)
	b := build.New(p)
	const tid = model.ThreadID(1)
	b.EnsureThread(tid, "React commits")

	var maxTS int64
	for ci, commit := range doc.CommitData {
		start := int64(commit.Timestamp * 1000)
		end := start + int64(commit.Duration*1000)
		if end > maxTS {
			maxTS = end
		}
		label := commit.Priority
		if label == "" {
			label = "commit"
		}
		commitID := b.Begin(tid, start, label, "react-commit")
		_ = ci
		for _, f := range commit.Fibers {
			fStart := start
			fEnd := start + int64(f.Duration*1000)
			if fEnd > end {
				fEnd = end
			}
			b.Flat(tid, fStart, fEnd, f.Name, "react-fiber")
		}
		b.End(tid, end)
		p.Span(commitID).Flags |= model.FlagFrameCost
	}

	b.CloseAll(maxTS)
	p.StartTimeUS = 0
	p.EndTimeUS = maxTS
	p.Finalize()
	return p, nil
}
