package parsers

import (
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// firefoxDocument is a Gecko profiler export: one thread per entry, each
// holding a "stack table" + "frame table" + "samples table" in Firefox's
// columnar (struct-of-arrays) encoding.
type firefoxDocument struct {
	Meta struct {
		Version       int     `json:"version"`
		StartTime     float64 `json:"startTime"` // milliseconds since epoch
		Interval      float64 `json:"interval"`
	} `json:"meta"`
	Threads []firefoxThread `json:"threads"`
}

type firefoxThread struct {
	Name        string        `json:"name"`
	Tid         int64         `json:"tid"`
	StringTable []string      `json:"stringTable"`
	FrameTable  firefoxTable  `json:"frameTable"`
	StackTable  firefoxTable  `json:"stackTable"`
	Samples     firefoxTable  `json:"samples"`
	Markers     firefoxTable  `json:"markers"`
}

// firefoxTable is Gecko's columnar table encoding: a list of column names
// plus a row-major "data" matrix. Column indices are looked up by name
// since Gecko has changed column order across versions.
type firefoxTable struct {
	Schema map[string]int  `json:"schema"`
	Data   [][]interface{} `json:"data"`
}

func (t firefoxTable) col(name string) int {
	if i, ok := t.Schema[name]; ok {
		return i
	}
	return -1
}

func asInt(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

// ParseFirefox parses a Firefox/Gecko profiler JSON export.
func ParseFirefox(data []byte) (*model.Profile, error) {
	var doc firefoxDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "firefox", Reason: err.Error()}
	}
	if doc.Meta.Version == 0 && len(doc.Threads) == 0 {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "firefox", Reason: "missing meta.version and threads"}
	}

	p := model.NewProfile(model.FormatFirefox)
	b := build.New(p)

	frameCol, stackCol := -1, -1
	var maxTS int64

	for _, thread := range doc.Threads {
		tid := model.ThreadID(thread.Tid)
		b.EnsureThread(tid, thread.Name)

		frameCol = thread.FrameTable.col("func")
		stackCol = thread.StackTable.col("frame")
		prefixCol := thread.StackTable.col("prefix")
		tsCol := thread.Samples.col("time")
		stackSampleCol := thread.Samples.col("stack")

		funcName := func(frameIdx int64) string {
			if frameIdx < 0 || int(frameIdx) >= len(thread.FrameTable.Data) {
				return "(unknown)"
			}
			row := thread.FrameTable.Data[frameIdx]
			if frameCol < 0 || frameCol >= len(row) {
				return "(unknown)"
			}
			funcIdx, ok := asInt(row[frameCol])
			if !ok || int(funcIdx) >= len(thread.StringTable) {
				return "(unknown)"
			}
			return thread.StringTable[funcIdx]
		}

		// stackToFrames walks a stack index up its prefix chain to the
		// root, returning root-first frame names for Builder.Sample.
		stackToFrames := func(stackIdx int64) []string {
			var names []string
			for stackIdx >= 0 && int(stackIdx) < len(thread.StackTable.Data) {
				row := thread.StackTable.Data[stackIdx]
				if stackCol >= 0 && stackCol < len(row) {
					if frameIdx, ok := asInt(row[stackCol]); ok {
						names = append(names, funcName(frameIdx))
					}
				}
				if prefixCol < 0 || prefixCol >= len(row) {
					break
				}
				next, ok := asInt(row[prefixCol])
				if !ok || next < 0 {
					break
				}
				stackIdx = next
			}
			// names were collected leaf-first; reverse to root-first.
			for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
				names[i], names[j] = names[j], names[i]
			}
			return names
		}

		for _, row := range thread.Samples.Data {
			if tsCol < 0 || tsCol >= len(row) || stackSampleCol < 0 || stackSampleCol >= len(row) {
				continue
			}
			tsMS, ok := asInt(row[tsCol])
			if !ok {
				continue
			}
			ts := tsMS * 1000 // Gecko samples are millisecond-resolution
			if ts > maxTS {
				maxTS = ts
			}
			stackIdx, ok := asInt(row[stackSampleCol])
			if !ok {
				continue
			}
			b.Sample(tid, ts, stackToFrames(stackIdx))
		}

		nameCol := thread.Markers.col("name")
		mTsCol := thread.Markers.col("time")
		for _, row := range thread.Markers.Data {
			if nameCol < 0 || nameCol >= len(row) || mTsCol < 0 || mTsCol >= len(row) {
				continue
			}
			nameIdx, ok := asInt(row[nameCol])
			if !ok || int(nameIdx) >= len(thread.StringTable) {
				continue
			}
			tsMS, ok := asInt(row[mTsCol])
			if !ok {
				continue
			}
			p.Markers = append(p.Markers, model.Marker{
				TimestampUS: tsMS * 1000,
				Name:        p.Intern(thread.StringTable[nameIdx]),
			})
		}
	}

	b.CloseAll(maxTS)
	p.StartTimeUS = 0
	p.EndTimeUS = maxTS
	p.Finalize()
	return p, nil
}
