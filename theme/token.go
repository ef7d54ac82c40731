// Package theme resolves the closed set of semantic color tokens used
// throughout the viewer into concrete RGBA colors. A Theme is data, not
// inheritance: swapping themes means swapping one lookup table.
package theme

// Token is a semantic color name. The set is closed — every Theme must
// supply a color for every Token, making Resolve a total function.
type Token uint8

const (
	Background Token = iota
	Surface
	Border

	TextPrimary
	TextSecondary
	TextMuted

	LaneBackground
	LaneBorder
	LaneHeaderBackground
	LaneHeaderText

	FlameHot
	FlameWarm
	FlameCold
	FlameNeutral

	SelectionHighlight
	HoverHighlight
	SearchHighlight

	ToolbarBackground
	ToolbarText
	ToolbarTabActive
	ToolbarTabHover

	MinimapBackground
	MinimapViewport

	TableRowEven
	TableRowOdd
	TableHeaderBackground
	TableBorder
	BarFill

	CounterFill
	CounterLine
	CounterText

	MarkerLine
	MarkerText

	AsyncSpanFill
	AsyncSpanBorder

	FrameGood
	FrameWarning
	FrameDropped

	FlowArrow

	NetworkBar
	NetworkTTFB

	tokenCount
)

// String names a token for diagnostics and SVG export group labels.
func (t Token) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return "Unknown"
}

var tokenNames = [tokenCount]string{
	Background:            "Background",
	Surface:                "Surface",
	Border:                 "Border",
	TextPrimary:            "TextPrimary",
	TextSecondary:          "TextSecondary",
	TextMuted:              "TextMuted",
	LaneBackground:         "LaneBackground",
	LaneBorder:             "LaneBorder",
	LaneHeaderBackground:   "LaneHeaderBackground",
	LaneHeaderText:         "LaneHeaderText",
	FlameHot:               "FlameHot",
	FlameWarm:              "FlameWarm",
	FlameCold:              "FlameCold",
	FlameNeutral:           "FlameNeutral",
	SelectionHighlight:     "SelectionHighlight",
	HoverHighlight:         "HoverHighlight",
	SearchHighlight:        "SearchHighlight",
	ToolbarBackground:      "ToolbarBackground",
	ToolbarText:            "ToolbarText",
	ToolbarTabActive:       "ToolbarTabActive",
	ToolbarTabHover:        "ToolbarTabHover",
	MinimapBackground:      "MinimapBackground",
	MinimapViewport:        "MinimapViewport",
	TableRowEven:           "TableRowEven",
	TableRowOdd:            "TableRowOdd",
	TableHeaderBackground:  "TableHeaderBackground",
	TableBorder:            "TableBorder",
	BarFill:                "BarFill",
	CounterFill:            "CounterFill",
	CounterLine:            "CounterLine",
	CounterText:            "CounterText",
	MarkerLine:             "MarkerLine",
	MarkerText:             "MarkerText",
	AsyncSpanFill:          "AsyncSpanFill",
	AsyncSpanBorder:        "AsyncSpanBorder",
	FrameGood:              "FrameGood",
	FrameWarning:           "FrameWarning",
	FrameDropped:           "FrameDropped",
	FlowArrow:              "FlowArrow",
	NetworkBar:             "NetworkBar",
	NetworkTTFB:            "NetworkTTFB",
}
