package parsers

import (
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// chromeEvent is one entry of a Chrome trace's traceEvents array. Not
// every field applies to every phase.
type chromeEvent struct {
	Name string     `json:"name"`
	Cat  string     `json:"cat"`
	Ph   string     `json:"ph"`  // phase: B, E, X, M, C, i/I
	Ts   float64    `json:"ts"`  // microseconds
	Dur  float64    `json:"dur"` // microseconds, X events only
	Pid  int64      `json:"pid"`
	Tid  int64      `json:"tid"`
	Args RawMessage `json:"args"`
}

type chromeDocument struct {
	TraceEvents []chromeEvent `json:"traceEvents"`
}

// ParseChrome parses a Chrome/Chromium trace-event JSON document (the
// "about:tracing" / Perfetto JSON format): a flat list of B/E/X phase
// events, optionally wrapped in a {"traceEvents": [...]} object.
func ParseChrome(data []byte) (*model.Profile, error) {
	events, err := decodeChromeEvents(data)
	if err != nil {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "chrome", Reason: err.Error()}
	}
	if len(events) == 0 {
		return nil, &model.ParseError{Kind: model.Truncated, Format: "chrome", Reason: "no trace events"}
	}

	p := model.NewProfile(model.FormatChrome)
	b := build.New(p)

	threadTid := func(e chromeEvent) model.ThreadID {
		return model.ThreadID(e.Pid<<32 | (e.Tid & 0xFFFFFFFF))
	}

	minTS, maxTS := events[0].Ts, events[0].Ts
	for _, e := range events {
		if e.Ts < minTS {
			minTS = e.Ts
		}
		end := e.Ts
		if e.Ph == "X" {
			end += e.Dur
		}
		if end > maxTS {
			maxTS = end
		}
	}

	for _, e := range events {
		tid := threadTid(e)
		ts := int64(e.Ts - minTS)
		switch e.Ph {
		case "B":
			b.EnsureThread(tid, threadLabel(e))
			b.Begin(tid, ts, e.Name, e.Cat)
		case "E":
			b.End(tid, ts)
		case "X":
			b.EnsureThread(tid, threadLabel(e))
			b.Flat(tid, ts, ts+int64(e.Dur), e.Name, e.Cat)
		case "M":
			// Metadata events (thread_name, process_name) carry no timing
			// information useful to the span tree; thread naming is best
			// effort via threadLabel and otherwise ignored.
		case "i", "I":
			p.Markers = append(p.Markers, model.Marker{
				TimestampUS: ts,
				Name:        p.Intern(e.Name),
				Category:    p.Intern(e.Cat),
				HasCategory: e.Cat != "",
			})
		}
	}

	b.CloseAll(int64(maxTS - minTS))
	p.StartTimeUS = 0
	p.EndTimeUS = int64(maxTS - minTS)
	p.Finalize()
	return p, nil
}

func threadLabel(e chromeEvent) string {
	if e.Tid == 0 {
		return "main"
	}
	return ""
}

func decodeChromeEvents(data []byte) ([]chromeEvent, error) {
	trimmed := data
	for len(trimmed) > 0 && (trimmed[0] == ' ' || trimmed[0] == '\t' || trimmed[0] == '\n' || trimmed[0] == '\r') {
		trimmed = trimmed[1:]
	}
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var events []chromeEvent
		if err := json.Unmarshal(trimmed, &events); err != nil {
			return nil, err
		}
		return events, nil
	}
	var doc chromeDocument
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, err
	}
	return doc.TraceEvents, nil
}
