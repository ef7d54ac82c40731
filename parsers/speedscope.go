package parsers

import (
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// speedscopeDocument follows https://www.speedscope.app/file-format-schema.json.
// Each profile is either "sampled" (weights + samples of frame indices) or
// "evented" (open/close frame events), distinguished by Profile.Type.
type speedscopeDocument struct {
	Schema   string             `json:"$schema"`
	Shared   speedscopeShared   `json:"shared"`
	Profiles []speedscopeProfile `json:"profiles"`
}

type speedscopeShared struct {
	Frames []speedscopeFrame `json:"frames"`
}

type speedscopeFrame struct {
	Name string `json:"name"`
	File string `json:"file"`
}

type speedscopeProfile struct {
	Type      string    `json:"type"` // "sampled" or "evented"
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	StartValue float64  `json:"startValue"`
	EndValue   float64  `json:"endValue"`

	// sampled
	Samples [][]int    `json:"samples"`
	Weights []float64  `json:"weights"`

	// evented
	Events []speedscopeEvent `json:"events"`
}

type speedscopeEvent struct {
	Type  string `json:"type"` // "O" (open) or "C" (close)
	Frame int    `json:"frame"`
	At    float64 `json:"at"`
}

// ParseSpeedscope parses either flavor of a speedscope export.
func ParseSpeedscope(data []byte) (*model.Profile, error) {
	var doc speedscopeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "speedscope", Reason: err.Error()}
	}
	if len(doc.Profiles) == 0 {
		return nil, &model.ParseError{Kind: model.Truncated, Format: "speedscope", Reason: "no profiles"}
	}

	p := model.NewProfile(model.FormatSpeedscope)
	b := build.New(p)

	frameName := func(idx int) string {
		if idx < 0 || idx >= len(doc.Shared.Frames) {
			return "(unknown)"
		}
		return doc.Shared.Frames[idx].Name
	}

	var maxTS int64
	toUS := func(v float64) int64 { return int64(v * unitScale(doc.Profiles[0].Unit)) }

	for i, prof := range doc.Profiles {
		tid := model.ThreadID(i + 1)
		name := prof.Name
		if name == "" {
			name = "thread"
		}
		b.EnsureThread(tid, name)

		switch prof.Type {
		case "evented":
			for _, ev := range prof.Events {
				ts := toUS(ev.At)
				if ts > maxTS {
					maxTS = ts
				}
				switch ev.Type {
				case "O":
					b.Begin(tid, ts, frameName(ev.Frame), "")
				case "C":
					b.End(tid, ts)
				}
			}
			b.CloseAll(toUS(prof.EndValue))
		default: // "sampled"
			ts := toUS(prof.StartValue)
			for si, sample := range prof.Samples {
				var stack []string
				for _, frameIdx := range sample {
					stack = append(stack, frameName(frameIdx))
				}
				b.Sample(tid, ts, stack)
				if si < len(prof.Weights) {
					ts += toUS(prof.Weights[si])
				}
				if ts > maxTS {
					maxTS = ts
				}
			}
			b.CloseAll(ts)
		}
	}

	p.StartTimeUS = 0
	p.EndTimeUS = maxTS
	p.Finalize()
	return p, nil
}

// unitScale converts a speedscope time unit to a microseconds multiplier.
func unitScale(unit string) float64 {
	switch unit {
	case "nanoseconds":
		return 0.001
	case "milliseconds":
		return 1000
	case "seconds":
		return 1e6
	default: // "microseconds" or unspecified
		return 1
	}
}
