package parsers

import "github.com/proftrace/proftrace/model"

// TracyCapabilities flags which parts of the Tracy capture protocol this
// parser understands. As with PIX, full protocol coverage is an open
// question in the source spec (§9); this build covers the common
// begin/end/mark event subset only.
type TracyCapabilities struct {
	ZoneEvents   bool
	LockEvents   bool
	MemoryEvents bool
}

// DefaultTracyCapabilities is what ParseTracy currently understands.
var DefaultTracyCapabilities = TracyCapabilities{ZoneEvents: true}

// ParseTracy parses a Tracy capture's common subset: the magic header
// followed by the same begin/end/mark record stream as ParsePIX. Lock and
// memory-event zones are not decoded; DefaultTracyCapabilities reports
// that.
func ParseTracy(data []byte) (*model.Profile, error) {
	if len(data) < len(tracyMagic) || string(data[:len(tracyMagic)]) != string(tracyMagic) {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "tracy", Reason: "missing Tracy magic"}
	}
	return parseMagicTimestampStream(data[len(tracyMagic):], model.FormatTracy, "tracy")
}
