package parsers

import "github.com/proftrace/proftrace/model"

// Parser produces a fully built Profile from raw capture bytes, or a
// *model.ParseError. A non-nil error means no partial Profile is
// returned, per spec.md §4.1.
type Parser func(data []byte) (*model.Profile, error)

var byFormat = map[model.Format]Parser{
	model.FormatChrome:         ParseChrome,
	model.FormatFirefox:        ParseFirefox,
	model.FormatSpeedscope:     ParseSpeedscope,
	model.FormatV8CPUProfile:   ParseCPUProfile,
	model.FormatPprof:          ParsePprof,
	model.FormatPIX:            ParsePIX,
	model.FormatTracy:          ParseTracy,
	model.FormatPerfScript:     ParsePerfScript,
	model.FormatCollapsed:      ParseCollapsed,
	model.FormatReactDevTools:  ParseReactDevTools,
}

// Parse detects data's format and dispatches to the matching parser.
func Parse(data []byte) (*model.Profile, error) {
	format := Detect(data)
	if format == model.FormatUnknown {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: "unknown", Reason: "no parser recognized the input"}
	}
	parse, ok := byFormat[format]
	if !ok {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: format.String(), Reason: "no registered parser"}
	}
	return parse(data)
}

// ParseAs forces parsing with a specific format, bypassing detection; used
// when a caller already knows the format (e.g. from a file extension) or
// wants to retry after Detect guessed wrong.
func ParseAs(format model.Format, data []byte) (*model.Profile, error) {
	parse, ok := byFormat[format]
	if !ok {
		return nil, &model.ParseError{Kind: model.InvalidFormat, Format: format.String(), Reason: "no registered parser"}
	}
	return parse(data)
}
