package parsers

import (
	"bytes"
	"fmt"

	"github.com/google/pprof/profile"

	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// ParsePprof parses a gzip-compressed pprof protobuf profile using the
// reference pprof/profile decoder rather than hand-rolling the protobuf
// schema: pprof's on-disk format is symbol tables plus delta-encoded
// sample values, which this package doesn't need to understand bit for
// bit when a maintained decoder already does.
func ParsePprof(data []byte) (*model.Profile, error) {
	prof, err := profile.ParseData(data)
	if err != nil {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "pprof", Reason: err.Error()}
	}
	if len(prof.Sample) == 0 {
		return nil, &model.ParseError{Kind: model.Truncated, Format: "pprof", Reason: "no samples"}
	}

	sampleValueIdx := chooseSampleValueIndex(prof)

	p := model.NewProfile(model.FormatPprof)
	b := build.New(p)
	const tid = model.ThreadID(1)
	b.EnsureThread(tid, "main")

	// pprof samples carry no wall-clock timestamp: they're weighted by
	// the chosen value (cpu time, allocation count, ...). Lay samples out
	// back-to-back, each occupying a synthetic span of length = its
	// value, so total duration corresponds to total weight.
	var ts int64
	for _, s := range prof.Sample {
		stack := make([]string, len(s.Location))
		for i, loc := range s.Location {
			name := fmt.Sprintf("0x%x", loc.Address)
			if len(loc.Line) > 0 && loc.Line[0].Function != nil {
				name = loc.Line[0].Function.Name
			}
			stack[len(s.Location)-1-i] = name // pprof stacks are leaf-first
		}
		weight := int64(1)
		if sampleValueIdx >= 0 && sampleValueIdx < len(s.Value) {
			weight = s.Value[sampleValueIdx]
			if weight <= 0 {
				weight = 1
			}
		}
		b.Sample(tid, ts, stack)
		ts += weight
	}
	b.CloseAll(ts)

	p.StartTimeUS = 0
	p.EndTimeUS = ts
	p.Finalize()
	return p, nil
}

// chooseSampleValueIndex prefers a cpu/time-flavored sample type, falling
// back to the profile's first value column.
func chooseSampleValueIndex(prof *profile.Profile) int {
	for i, vt := range prof.SampleType {
		if vt.Type == "cpu" || vt.Type == "samples" || vt.Unit == "nanoseconds" {
			return i
		}
	}
	if len(prof.SampleType) > 0 {
		return 0
	}
	return -1
}

var _ = fmt.Sprintf
var _ = bytes.Equal
