package parsers

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// ParseCollapsed parses Brendan Gregg-style folded stacks: one line per
// unique call stack, semicolon-joined root-first, followed by whitespace
// and a sample count. The format carries no timestamps, so each line is
// laid out as a synthetic span whose duration equals its count — the
// standard flamegraph convention of "width encodes weight."
func ParseCollapsed(data []byte) (*model.Profile, error) {
	p := model.NewProfile(model.FormatCollapsed)
	b := build.New(p)
	const tid = model.ThreadID(1)
	b.EnsureThread(tid, "all")

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var ts int64
	lines := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		sp := strings.LastIndexByte(line, ' ')
		if sp <= 0 {
			continue
		}
		count, err := strconv.ParseInt(line[sp+1:], 10, 64)
		if err != nil {
			continue
		}
		stack := strings.Split(line[:sp], ";")
		for _, frame := range stack {
			b.Begin(tid, ts, frame, "")
		}
		end := ts + count
		for range stack {
			b.End(tid, end)
		}
		lines++
		ts = end
	}
	if lines == 0 {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "collapsed", Reason: "no folded-stack lines"}
	}

	b.CloseAll(ts)
	p.StartTimeUS = 0
	p.EndTimeUS = ts
	p.Finalize()
	return p, nil
}
