// Package export turns a model.Profile and a render.Command stream into
// the two stable external representations spec.md §6 names: a versioned
// JSON snapshot and a stand-alone SVG document. A third, additive form —
// snappy-compressed JSON — exists for large multi-profile session exports.
package export

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/proftrace/proftrace/model"
)

// json is this package's codec, matching parsers' own choice of
// jsoniter.ConfigCompatibleWithStandardLibrary over encoding/json: façade
// callers may re-export on every search/filter change, so decode/encode
// throughput on this hot path matters the same way it does on parse.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SchemaVersion is the "version" field every JSON export carries, bumped
// whenever a field is added, renamed, or removed below.
const SchemaVersion = 1

// Document is the top-level JSON export shape: spec.md §6's "top-level
// `profile` object with fields mirroring §3's Profile, plus a version
// integer."
type Document struct {
	Version int     `json:"version"`
	Profile Profile `json:"profile"`
}

// Profile mirrors model.Profile field-for-field, substituting plain
// JSON-friendly slices for the arena and intern table.
type Profile struct {
	Name        string      `json:"name,omitempty"`
	Format      string      `json:"format"`
	StartTimeUS int64       `json:"start_time_us"`
	EndTimeUS   int64       `json:"end_time_us"`
	Threads     []Thread    `json:"threads"`
	Counters    []Counter   `json:"counters,omitempty"`
	Markers     []Marker    `json:"markers,omitempty"`
	AsyncSpans  []AsyncSpan `json:"async_spans,omitempty"`
	Frames      []Frame     `json:"frames,omitempty"`
	FlowEdges   []FlowEdge  `json:"flow_edges,omitempty"`
}

// Thread mirrors model.Thread, with its span forest flattened to a plain
// list of Span records addressed by id rather than arena index.
type Thread struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SortKey   string `json:"sort_key"`
	RootSpans []int64 `json:"root_spans"`
	Spans     []Span  `json:"spans"`
}

// Span mirrors model.Span; Parent/FirstChild/NextSibling are 0 for
// "none", matching model.NoFrame's zero value exactly so re-import needs
// no sentinel translation.
type Span struct {
	ID          int64  `json:"id"`
	Parent      int64  `json:"parent,omitempty"`
	FirstChild  int64  `json:"first_child,omitempty"`
	NextSibling int64  `json:"next_sibling,omitempty"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
	Depth       uint16 `json:"depth"`
	StartUS     int64  `json:"start_us"`
	EndUS       int64  `json:"end_us"`
	SelfTimeUS  int64  `json:"self_time_us"`
	Flags       uint8  `json:"flags,omitempty"`
}

type CounterSample struct {
	TimestampUS int64   `json:"timestamp_us"`
	Value       float64 `json:"value"`
}

type Counter struct {
	Name    string          `json:"name"`
	Unit    string          `json:"unit,omitempty"`
	Samples []CounterSample `json:"samples"`
}

type Marker struct {
	TimestampUS int64  `json:"timestamp_us"`
	Name        string `json:"name"`
	Category    string `json:"category,omitempty"`
}

type AsyncSpan struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	StartUS      int64  `json:"start_us"`
	EndUS        int64  `json:"end_us"`
	OriginThread int64  `json:"origin_thread,omitempty"`
	TargetThread int64  `json:"target_thread,omitempty"`
}

type Frame struct {
	Index          int    `json:"index"`
	StartUS        int64  `json:"start_us"`
	EndUS          int64  `json:"end_us"`
	BudgetUS       int64  `json:"budget_us"`
	Classification string `json:"classification"`
}

type FlowEdge struct {
	Name    string `json:"name"`
	FromTS  int64  `json:"from_ts"`
	FromTID int64  `json:"from_tid"`
	ToTS    int64  `json:"to_ts"`
	ToTID   int64  `json:"to_tid"`
}

// ToDocument flattens p into the stable export shape.
func ToDocument(p *model.Profile) Document {
	doc := Document{Version: SchemaVersion, Profile: Profile{
		Name:        p.Name,
		Format:      p.Format.String(),
		StartTimeUS: p.StartTimeUS,
		EndTimeUS:   p.EndTimeUS,
	}}
	for _, t := range p.Threads {
		jt := Thread{ID: int64(t.ID), Name: t.Name, SortKey: t.SortKey}
		for _, r := range t.RootSpans {
			jt.RootSpans = append(jt.RootSpans, int64(r))
			walkSpans(p, r, &jt.Spans)
		}
		doc.Profile.Threads = append(doc.Profile.Threads, jt)
	}
	for _, c := range p.Counters {
		jc := Counter{Name: c.Name, Unit: c.Unit}
		for _, s := range c.Samples {
			jc.Samples = append(jc.Samples, CounterSample{TimestampUS: s.TimestampUS, Value: s.Value})
		}
		doc.Profile.Counters = append(doc.Profile.Counters, jc)
	}
	for _, m := range p.Markers {
		doc.Profile.Markers = append(doc.Profile.Markers, Marker{
			TimestampUS: m.TimestampUS, Name: m.Name, Category: m.Category,
		})
	}
	for _, a := range p.AsyncSpans {
		doc.Profile.AsyncSpans = append(doc.Profile.AsyncSpans, AsyncSpan{
			ID: int64(a.ID), Name: a.Name, StartUS: a.StartUS, EndUS: a.EndUS,
			OriginThread: int64(a.OriginThread), TargetThread: int64(a.TargetThread),
		})
	}
	for _, f := range p.Frames {
		doc.Profile.Frames = append(doc.Profile.Frames, Frame{
			Index: f.Index, StartUS: f.StartUS, EndUS: f.EndUS, BudgetUS: f.BudgetUS,
			Classification: f.Classification.String(),
		})
	}
	for _, e := range p.FlowEdges {
		doc.Profile.FlowEdges = append(doc.Profile.FlowEdges, FlowEdge{
			Name: e.Name, FromTS: e.FromTS, FromTID: int64(e.FromTID),
			ToTS: e.ToTS, ToTID: int64(e.ToTID),
		})
	}
	return doc
}

func walkSpans(p *model.Profile, id model.FrameID, out *[]Span) {
	s := p.Span(id)
	*out = append(*out, Span{
		ID: int64(s.ID), Parent: int64(s.Parent), FirstChild: int64(s.FirstChild),
		NextSibling: int64(s.NextSibling), Name: s.Name, Category: s.Category,
		Depth: s.Depth, StartUS: s.StartUS, EndUS: s.EndUS, SelfTimeUS: s.SelfTimeUS,
		Flags: uint8(s.Flags),
	})
	var children []model.FrameID
	children = p.Children(id, children)
	for _, c := range children {
		walkSpans(p, c, out)
	}
}

// MarshalJSON serializes p's export Document, per spec.md §4.9.
func MarshalJSON(p *model.Profile) ([]byte, error) {
	return json.Marshal(ToDocument(p))
}

// UnmarshalJSON parses data as a previously-exported Document and
// rebuilds a *model.Profile from it, backing the load→exportJSON→load
// round-trip property from spec.md §8. formatFromString falls back to
// FormatUnknown for a format name this build doesn't recognize.
func UnmarshalJSON(data []byte) (*model.Profile, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "json-export", Reason: err.Error()}
	}
	return FromDocument(doc), nil
}

// FromDocument rebuilds a *model.Profile from a previously-flattened
// Document. Re-import allocates fresh arena slots in export order rather
// than trusting exported ids as new arena indices directly — a document
// can list more than one thread's spans, and arena indices are global
// across threads, so exported id N need not land on arena slot N again.
// A remap table translates every exported id reference (Parent,
// FirstChild, NextSibling, RootSpans) to its freshly allocated id.
func FromDocument(doc Document) *model.Profile {
	jp := doc.Profile
	p := model.NewProfile(formatFromString(jp.Format))
	p.Name, p.HasName = jp.Name, jp.Name != ""
	p.StartTimeUS, p.EndTimeUS = jp.StartTimeUS, jp.EndTimeUS

	remap := make(map[int64]model.FrameID)
	for _, jt := range jp.Threads {
		for _, js := range jt.Spans {
			id, _ := p.AllocSpan()
			remap[js.ID] = id
		}
	}
	resolve := func(oldID int64) model.FrameID {
		if oldID == 0 {
			return model.NoFrame
		}
		return remap[oldID]
	}

	for _, jt := range jp.Threads {
		t := model.Thread{ID: model.ThreadID(jt.ID), Name: jt.Name, SortKey: jt.SortKey}
		for _, js := range jt.Spans {
			s := p.Span(remap[js.ID])
			s.Parent = resolve(js.Parent)
			s.FirstChild = resolve(js.FirstChild)
			s.NextSibling = resolve(js.NextSibling)
			s.Name = p.Intern(js.Name)
			s.Category = p.Intern(js.Category)
			s.ThreadID = t.ID
			s.Depth = js.Depth
			s.StartUS, s.EndUS, s.SelfTimeUS = js.StartUS, js.EndUS, js.SelfTimeUS
			s.Flags = model.SpanFlags(js.Flags)
			t.SpanCount++
			if s.Depth+1 > t.MaxDepth {
				t.MaxDepth = s.Depth + 1
			}
		}
		for _, r := range jt.RootSpans {
			t.RootSpans = append(t.RootSpans, resolve(r))
		}
		p.Threads = append(p.Threads, t)
	}
	for _, jc := range jp.Counters {
		c := model.Counter{Name: jc.Name, Unit: jc.Unit, HasUnit: jc.Unit != ""}
		for _, js := range jc.Samples {
			c.Samples = append(c.Samples, model.CounterSample{TimestampUS: js.TimestampUS, Value: js.Value})
		}
		p.Counters = append(p.Counters, c)
	}
	for _, jm := range jp.Markers {
		p.Markers = append(p.Markers, model.Marker{
			TimestampUS: jm.TimestampUS, Name: jm.Name, Category: jm.Category, HasCategory: jm.Category != "",
		})
	}
	for _, ja := range jp.AsyncSpans {
		p.AsyncSpans = append(p.AsyncSpans, model.AsyncSpan{
			ID: model.AsyncSpanID(ja.ID), Name: ja.Name, StartUS: ja.StartUS, EndUS: ja.EndUS,
			OriginThread: model.ThreadID(ja.OriginThread), HasOrigin: ja.OriginThread != 0,
			TargetThread: model.ThreadID(ja.TargetThread), HasTarget: ja.TargetThread != 0,
		})
	}
	for _, jf := range jp.Frames {
		p.Frames = append(p.Frames, model.Frame{
			Index: jf.Index, StartUS: jf.StartUS, EndUS: jf.EndUS, BudgetUS: jf.BudgetUS,
			Classification: classificationFromString(jf.Classification),
		})
	}
	for _, je := range jp.FlowEdges {
		p.FlowEdges = append(p.FlowEdges, model.FlowEdge{
			Name: je.Name, FromTS: je.FromTS, FromTID: model.ThreadID(je.FromTID),
			ToTS: je.ToTS, ToTID: model.ThreadID(je.ToTID),
		})
	}
	p.Finalize()
	return p
}

func formatFromString(s string) model.Format {
	switch s {
	case "chrome":
		return model.FormatChrome
	case "firefox":
		return model.FormatFirefox
	case "speedscope":
		return model.FormatSpeedscope
	case "v8-cpuprofile":
		return model.FormatV8CPUProfile
	case "pprof":
		return model.FormatPprof
	case "pix":
		return model.FormatPIX
	case "tracy":
		return model.FormatTracy
	case "perf-script":
		return model.FormatPerfScript
	case "collapsed":
		return model.FormatCollapsed
	case "react-devtools":
		return model.FormatReactDevTools
	default:
		return model.FormatUnknown
	}
}

func classificationFromString(s string) model.FrameClass {
	switch s {
	case "Warning":
		return model.FrameWarning
	case "Dropped":
		return model.FrameDropped
	default:
		return model.FrameGood
	}
}
