package parsers

import (
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// v8CPUProfile is a V8/Node.js CPU profile: a tree of call nodes plus a
// flat stream of (sampled node id, time delta since previous sample).
type v8CPUProfile struct {
	Nodes      []v8Node  `json:"nodes"`
	StartTime  int64     `json:"startTime"` // microseconds
	EndTime    int64     `json:"endTime"`
	Samples    []int     `json:"samples"`    // node ids
	TimeDeltas []int64   `json:"timeDeltas"` // microseconds since previous sample
}

type v8Node struct {
	ID          int         `json:"id"`
	CallFrame   v8CallFrame `json:"callFrame"`
	Children    []int       `json:"children"`
}

type v8CallFrame struct {
	FunctionName string `json:"functionName"`
}

// ParseCPUProfile parses a V8/Node.js ".cpuprofile" document. Every
// sample names a call-node id; the node's ancestor chain (via the node
// tree, not the sample stream) gives the full stack, which is fed to the
// shared sample-based span builder exactly like a perf/pprof stack.
func ParseCPUProfile(data []byte) (*model.Profile, error) {
	var doc v8CPUProfile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "v8-cpuprofile", Reason: err.Error()}
	}
	if len(doc.Nodes) == 0 {
		return nil, &model.ParseError{Kind: model.Truncated, Format: "v8-cpuprofile", Reason: "no call nodes"}
	}

	parentOf := make(map[int]int, len(doc.Nodes))
	nameOf := make(map[int]string, len(doc.Nodes))
	for _, n := range doc.Nodes {
		nameOf[n.ID] = n.CallFrame.FunctionName
		for _, c := range n.Children {
			parentOf[c] = n.ID
		}
	}

	stackOf := func(nodeID int) []string {
		var names []string
		for id := nodeID; ; {
			names = append(names, nameOf[id])
			parent, ok := parentOf[id]
			if !ok {
				break
			}
			id = parent
		}
		for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
			names[i], names[j] = names[j], names[i]
		}
		return names
	}

	p := model.NewProfile(model.FormatV8CPUProfile)
	b := build.New(p)
	const tid = model.ThreadID(1)
	b.EnsureThread(tid, "main")

	ts := doc.StartTime
	for i, nodeID := range doc.Samples {
		if i < len(doc.TimeDeltas) {
			ts += doc.TimeDeltas[i]
		}
		b.Sample(tid, ts-doc.StartTime, stackOf(nodeID))
	}
	b.CloseAll(ts - doc.StartTime)

	p.StartTimeUS = 0
	p.EndTimeUS = ts - doc.StartTime
	if doc.EndTime > doc.StartTime {
		p.EndTimeUS = doc.EndTime - doc.StartTime
	}
	p.Finalize()
	return p, nil
}
