package parsers

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"

	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// ParsePerfScript parses `perf script` / eBPF-profiler text output: a
// header line per sample ("comm pid/tid [cpu] timestamp: ...") followed
// by indented stack-frame lines, terminated by a blank line. Frame order
// in the text is leaf-first; Sample wants root-first, so each block's
// frames are reversed before being fed to the builder.
func ParsePerfScript(data []byte) (*model.Profile, error) {
	p := model.NewProfile(model.FormatPerfScript)
	b := build.New(p)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	var (
		tid      model.ThreadID
		ts       int64
		frames   []string
		maxTS    int64
		haveHead bool
	)

	flush := func() {
		if !haveHead {
			return
		}
		for i, j := 0, len(frames)-1; i < j; i, j = i+1, j-1 {
			frames[i], frames[j] = frames[j], frames[i]
		}
		b.Sample(tid, ts, frames)
		frames = nil
		haveHead = false
	}

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			flush()
			continue
		}
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
			// indented stack frame, e.g. "    ffffffff812345 do_work (/path)"
			fields := strings.Fields(trimmed)
			if len(fields) >= 2 {
				frames = append(frames, fields[1])
			} else if len(fields) == 1 {
				frames = append(frames, fields[0])
			}
			continue
		}

		// header line: "comm pid/tid [cpu] seconds.nanos: ..."
		flush()
		var commTidPart, rest string
		if idx := strings.Index(trimmed, "["); idx >= 0 {
			commTidPart = strings.TrimSpace(trimmed[:idx])
			rest = trimmed[idx:]
		} else {
			commTidPart = trimmed
		}
		pidTid := lastField(commTidPart)
		if slash := strings.IndexByte(pidTid, '/'); slash >= 0 {
			if n, err := strconv.ParseInt(pidTid[slash+1:], 10, 64); err == nil {
				tid = model.ThreadID(n)
			}
		} else if n, err := strconv.ParseInt(pidTid, 10, 64); err == nil {
			tid = model.ThreadID(n)
		}
		comm := strings.TrimSpace(strings.TrimSuffix(commTidPart, pidTid))
		b.EnsureThread(tid, comm)

		if colon := strings.IndexByte(rest, ':'); colon >= 0 {
			tsField := strings.TrimSpace(rest[strings.IndexByte(rest, ']')+1 : colon])
			if secs, err := strconv.ParseFloat(tsField, 64); err == nil {
				ts = int64(secs * 1e6)
			}
		}
		if ts > maxTS {
			maxTS = ts
		}
		haveHead = true
	}
	flush()

	if maxTS == 0 && p.NumSpans() == 0 {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "perf-script", Reason: "no recognizable sample headers"}
	}

	b.CloseAll(maxTS)
	p.StartTimeUS = 0
	p.EndTimeUS = maxTS
	p.Finalize()
	return p, nil
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
