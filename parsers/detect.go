// Package parsers normalizes the ten supported capture formats into a
// single model.Profile. Each format has its own file (chrome.go,
// firefox.go, speedscope.go, cpuprofile.go, pprof.go, pix.go, tracy.go,
// perfscript.go, collapsed.go, react.go); Parse content-sniffs the input
// and dispatches to the matching one.
package parsers

import (
	"bytes"

	"github.com/proftrace/proftrace/model"
)

var (
	pixMagic   = []byte{'P', 'I', 'X', '3'}
	tracyMagic = []byte{'T', 'r', 'a', 'c', 'y', ' ', 'P', 'r', 'o', 'f', 'i', 'l', 'e'}
	gzipMagic  = []byte{0x1f, 0x8b}
)

// Detect content-sniffs data and returns the format it believes produced
// it. Binary magics are checked first, then JSON shape, then text
// heuristics, matching the priority order in spec.md §4.1/§6.
func Detect(data []byte) model.Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")

	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return model.FormatPprof
	case bytes.HasPrefix(data, pixMagic):
		return model.FormatPIX
	case bytes.HasPrefix(data, tracyMagic):
		return model.FormatTracy
	}

	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		if f := detectJSON(trimmed); f != model.FormatUnknown {
			return f
		}
	}

	if looksLikeCollapsedStacks(data) {
		return model.FormatCollapsed
	}
	if looksLikePerfScript(data) {
		return model.FormatPerfScript
	}

	return model.FormatUnknown
}

// jsonShape is a minimal, order-independent probe of the top-level JSON
// object's distinguishing keys. Parsers decode the full structure
// themselves; this only needs enough to disambiguate.
type jsonShape struct {
	Schema      string     `json:"$schema"`
	TraceEvents RawMessage `json:"traceEvents"`
	Meta        RawMessage `json:"meta"`
	Threads     RawMessage `json:"threads"`
	Nodes       RawMessage `json:"nodes"`
	Samples     RawMessage `json:"samples"`
	TimeDeltas  RawMessage `json:"timeDeltas"`
	CommitData  RawMessage `json:"commitData"`
}

func detectJSON(data []byte) model.Format {
	// A bare top-level array is Chrome's shorthand for {"traceEvents": [...]}.
	if data[0] == '[' {
		return model.FormatChrome
	}

	var shape jsonShape
	if err := json.Unmarshal(data, &shape); err != nil {
		return model.FormatUnknown
	}

	switch {
	case bytes.Contains([]byte(shape.Schema), []byte("speedscope")):
		return model.FormatSpeedscope
	case shape.TraceEvents != nil:
		return model.FormatChrome
	case shape.Meta != nil && shape.Threads != nil:
		return model.FormatFirefox
	case shape.Nodes != nil && shape.Samples != nil && shape.TimeDeltas != nil:
		return model.FormatV8CPUProfile
	case shape.CommitData != nil:
		return model.FormatReactDevTools
	default:
		return model.FormatUnknown
	}
}

// looksLikeCollapsedStacks matches lines of the form "a;b;c 123": a
// semicolon-joined stack followed by whitespace and a sample count.
func looksLikeCollapsedStacks(data []byte) bool {
	lines := splitNonEmptyLines(data, 8)
	if len(lines) == 0 {
		return false
	}
	matches := 0
	for _, line := range lines {
		i := bytes.LastIndexByte(line, ' ')
		if i <= 0 || i == len(line)-1 {
			continue
		}
		if !bytes.Contains(line[:i], []byte{';'}) {
			continue
		}
		if isAllDigits(line[i+1:]) {
			matches++
		}
	}
	return matches > 0 && matches == len(lines)
}

// looksLikePerfScript matches perf/eBPF script's "name pid/tid [cpu] ts: stack"
// style lines: a name, whitespace-separated fields, then a stack of
// indented lines beneath. The cheap signal is any unindented line
// containing both a colon and a '['; the indented stack lines are not
// checked.
func looksLikePerfScript(data []byte) bool {
	lines := bytes.Split(data, []byte("\n"))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		if line[0] == ' ' || line[0] == '\t' {
			continue
		}
		if bytes.Contains(line, []byte(":")) && bytes.Contains(line, []byte("[")) {
			return true
		}
	}
	return false
}

func splitNonEmptyLines(data []byte, limit int) [][]byte {
	var out [][]byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		out = append(out, line)
		if len(out) >= limit {
			break
		}
	}
	return out
}

func isAllDigits(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
