package parsers

import (
	"encoding/binary"

	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers/internal/build"
)

// Binary record kinds shared by the PIX and Tracy common-subset decoders.
// Both formats' full wire protocols are proprietary and versioned; per
// spec.md §9's open question, this parser commits to a minimal, documented
// subset (begin/end timestamp events on named threads/tracks) rather than
// guessing at undocumented fields. A record stream looks like:
//
//	kind byte
//	threadID uint32 little-endian
//	timestampUS int64 little-endian
//	[kindBegin only] nameLen uint16 little-endian, name bytes
const (
	recordBegin byte = 1
	recordEnd   byte = 2
	recordMark  byte = 3
)

// parseMagicTimestampStream decodes the shared record stream described
// above, starting right after the format-specific magic header has been
// consumed by the caller.
func parseMagicTimestampStream(data []byte, format model.Format, formatName string) (*model.Profile, error) {
	p := model.NewProfile(format)
	b := build.New(p)

	var maxTS int64
	off := 0
	for off < len(data) {
		if off+1 > len(data) {
			return nil, &model.ParseError{Kind: model.Truncated, Format: formatName, Reason: "truncated record header"}
		}
		kind := data[off]
		off++

		if off+12 > len(data) {
			return nil, &model.ParseError{Kind: model.Truncated, Format: formatName, Reason: "truncated record body"}
		}
		tid := model.ThreadID(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		ts := int64(binary.LittleEndian.Uint64(data[off:]))
		off += 8
		if ts > maxTS {
			maxTS = ts
		}

		switch kind {
		case recordBegin:
			if off+2 > len(data) {
				return nil, &model.ParseError{Kind: model.Truncated, Format: formatName, Reason: "truncated name length"}
			}
			nameLen := int(binary.LittleEndian.Uint16(data[off:]))
			off += 2
			if off+nameLen > len(data) {
				return nil, &model.ParseError{Kind: model.Truncated, Format: formatName, Reason: "truncated name"}
			}
			name := string(data[off : off+nameLen])
			off += nameLen
			b.EnsureThread(tid, "")
			b.Begin(tid, ts, name, "")
		case recordEnd:
			b.End(tid, ts)
		case recordMark:
			p.Markers = append(p.Markers, model.Marker{TimestampUS: ts, Name: p.Intern("mark")})
		default:
			return nil, &model.ParseError{Kind: model.TreeConstructionFailed, Format: formatName, Reason: "unknown record kind"}
		}
	}

	b.CloseAll(maxTS)
	p.StartTimeUS = 0
	p.EndTimeUS = maxTS
	p.Finalize()
	return p, nil
}
