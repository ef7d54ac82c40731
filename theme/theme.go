package theme

import "image/color"

// Theme is a total token→color lookup table. Resolve never fails: every
// Token has an entry in every Theme.
type Theme struct {
	Name   string
	colors [tokenCount]color.NRGBA
}

// Resolve returns the color bound to tok in t.
func (t *Theme) Resolve(tok Token) color.NRGBA {
	return t.colors[tok]
}

// rgba decodes a 0xRRGGBBAA literal into a color.NRGBA, matching the hex
// constants used throughout this package.
func rgba(c uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(c & 0xFF),
		B: uint8(c >> 8 & 0xFF),
		G: uint8(c >> 16 & 0xFF),
		R: uint8(c >> 24 & 0xFF),
	}
}

// Light is the default theme: a pale, high-contrast palette suited to
// printed exports and well-lit displays.
var Light = &Theme{
	Name: "light",
	colors: [tokenCount]color.NRGBA{
		Background: rgba(0xFFFFEAFF),
		Surface:    rgba(0xFFFFFFFF),
		Border:     rgba(0xDDDDDDFF),

		TextPrimary:   rgba(0x1A1A1AFF),
		TextSecondary: rgba(0x555555FF),
		TextMuted:     rgba(0x888888FF),

		LaneBackground:       rgba(0xF5F5F0FF),
		LaneBorder:           rgba(0xDDDDDDFF),
		LaneHeaderBackground: rgba(0xEAEAE0FF),
		LaneHeaderText:       rgba(0x1A1A1AFF),

		FlameHot:     rgba(0xBA4141FF),
		FlameWarm:    rgba(0xE8A33DFF),
		FlameCold:    rgba(0x4BACB8FF),
		FlameNeutral: rgba(0x98D597FF),

		SelectionHighlight: rgba(0xFF00FF66),
		HoverHighlight:     rgba(0x6FFF0044),
		SearchHighlight:    rgba(0xFFD70099),

		ToolbarBackground: rgba(0xECECE4FF),
		ToolbarText:       rgba(0x1A1A1AFF),
		ToolbarTabActive:  rgba(0xFFFFFFFF),
		ToolbarTabHover:   rgba(0xDDDDD0FF),

		MinimapBackground: rgba(0xF0F0E8FF),
		MinimapViewport:   rgba(0xEEEE9E99),

		TableRowEven:          rgba(0xFFFFFFFF),
		TableRowOdd:           rgba(0xF2F2ECFF),
		TableHeaderBackground: rgba(0xEAEAE0FF),
		TableBorder:           rgba(0xDDDDDDFF),
		BarFill:               rgba(0x4BACB8FF),

		CounterFill: rgba(0x9C6FD633),
		CounterLine: rgba(0x9C6FD6FF),
		CounterText: rgba(0x555555FF),

		MarkerLine: rgba(0xBA4141FF),
		MarkerText: rgba(0x1A1A1AFF),

		AsyncSpanFill:   rgba(0xF2A2E8FF),
		AsyncSpanBorder: rgba(0xB9679FFF),

		FrameGood:    rgba(0x448844FF),
		FrameWarning: rgba(0xE8A33DFF),
		FrameDropped: rgba(0xBA4141FF),

		FlowArrow: rgba(0x000000AA),

		NetworkBar:  rgba(0x4BACB8FF),
		NetworkTTFB: rgba(0xE8A33DFF),
	},
}

// Dark mirrors Light with an inverted luminance ramp, used by the facade's
// setTheme command and the viewer's theme-toggle key binding.
var Dark = &Theme{
	Name: "dark",
	colors: [tokenCount]color.NRGBA{
		Background: rgba(0x1E1E1AFF),
		Surface:    rgba(0x272723FF),
		Border:     rgba(0x3C3C36FF),

		TextPrimary:   rgba(0xEDEDE5FF),
		TextSecondary: rgba(0xAFAFA5FF),
		TextMuted:     rgba(0x808078FF),

		LaneBackground:       rgba(0x242420FF),
		LaneBorder:           rgba(0x3C3C36FF),
		LaneHeaderBackground: rgba(0x2E2E28FF),
		LaneHeaderText:       rgba(0xEDEDE5FF),

		FlameHot:     rgba(0xD66A6AFF),
		FlameWarm:    rgba(0xE8B564FF),
		FlameCold:    rgba(0x5FC9D4FF),
		FlameNeutral: rgba(0x85C484FF),

		SelectionHighlight: rgba(0xFF66FF66),
		HoverHighlight:     rgba(0x8CFF5544),
		SearchHighlight:    rgba(0xFFD70099),

		ToolbarBackground: rgba(0x2A2A25FF),
		ToolbarText:       rgba(0xEDEDE5FF),
		ToolbarTabActive:  rgba(0x34342EFF),
		ToolbarTabHover:   rgba(0x3C3C36FF),

		MinimapBackground: rgba(0x1A1A17FF),
		MinimapViewport:   rgba(0xEEEE9E55),

		TableRowEven:          rgba(0x242420FF),
		TableRowOdd:           rgba(0x2A2A25FF),
		TableHeaderBackground: rgba(0x2E2E28FF),
		TableBorder:           rgba(0x3C3C36FF),
		BarFill:               rgba(0x5FC9D4FF),

		CounterFill: rgba(0xB18CE655),
		CounterLine: rgba(0xB18CE6FF),
		CounterText: rgba(0xAFAFA5FF),

		MarkerLine: rgba(0xD66A6AFF),
		MarkerText: rgba(0xEDEDE5FF),

		AsyncSpanFill:   rgba(0xC988BFFF),
		AsyncSpanBorder: rgba(0xE0B8D9FF),

		FrameGood:    rgba(0x6CBD6CFF),
		FrameWarning: rgba(0xE8B564FF),
		FrameDropped: rgba(0xD66A6AFF),

		FlowArrow: rgba(0xEDEDE5AA),

		NetworkBar:  rgba(0x5FC9D4FF),
		NetworkTTFB: rgba(0xE8B564FF),
	},
}

// ByName resolves a theme by its setTheme command argument, defaulting to
// Light for an unrecognized or empty name.
func ByName(name string) *Theme {
	switch name {
	case "dark":
		return Dark
	default:
		return Light
	}
}

// Toggle returns the counterpart of t, for the theme-toggle key binding.
func Toggle(t *Theme) *Theme {
	if t == Dark {
		return Light
	}
	return Dark
}
