package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// RenderSVG translates cmds into a stand-alone SVG document widthPx by
// heightPx CSS pixels, resolving theme.Token colors against t. Grounded
// on the Rust reference's render_svg: one <defs>/<clipPath> section built
// as clips are encountered, rect/line/text elements in command order,
// BeginGroup/EndGroup as <g>, per spec.md §4.9/§6.
func RenderSVG(cmds []render.Command, widthPx, heightPx float64, t *theme.Theme) string {
	var b strings.Builder
	b.Grow(len(cmds) * 96)

	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" style="font-family:system-ui,-apple-system,sans-serif;font-size:11px">`,
		f(widthPx), f(heightPx), f(widthPx), f(heightPx))
	// Clip paths collect in defs and are spliced in here, as one <defs>
	// section, once every command has been translated.
	headLen := b.Len()
	var defs strings.Builder

	bg := resolveHex(t, theme.Background)
	fmt.Fprintf(&b, `<rect width="%s" height="%s" fill="%s"/>`, f(widthPx), f(heightPx), bg)

	clipCounter := 0
	clipDepth := 0
	groupDepth := 0

	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case render.DrawRect:
			fill := resolveHex(t, c.Fill)
			fmt.Fprintf(&b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"`,
				f(c.Rect.Min.X), f(c.Rect.Min.Y), f(c.Rect.Dx()), f(c.Rect.Dy()), fill)
			if c.HasBorder {
				fmt.Fprintf(&b, ` stroke="%s" stroke-width="1"`, resolveHex(t, c.Border))
			}
			b.WriteString(">")
			if c.Label != "" {
				fmt.Fprintf(&b, "<title>%s</title>", escapeXML(c.Label))
			}
			b.WriteString("</rect>")
			if c.Label != "" && c.Rect.Dx() > 30 {
				tx, ty := c.Rect.Min.X+3, c.Rect.Min.Y+c.Rect.Dy()*0.75
				text := truncateLabel(c.Label, c.Rect.Dx())
				fmt.Fprintf(&b, `<text x="%s" y="%s" fill="%s" style="pointer-events:none">%s</text>`,
					f(tx), f(ty), resolveHex(t, theme.TextPrimary), escapeXML(text))
			}
		case render.DrawLine:
			fmt.Fprintf(&b, `<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s"/>`,
				f(c.From.X), f(c.From.Y), f(c.To.X), f(c.To.Y), resolveHex(t, c.Token), f(c.Width))
		case render.DrawText:
			fmt.Fprintf(&b, `<text x="%s" y="%s" fill="%s"`, f(c.Pos.X), f(c.Pos.Y), resolveHex(t, c.Token))
			switch c.Align {
			case render.AlignCenter:
				b.WriteString(` text-anchor="middle"`)
			case render.AlignRight:
				b.WriteString(` text-anchor="end"`)
			}
			fmt.Fprintf(&b, ` font-size="%s">%s</text>`, f(c.FontSize), escapeXML(c.Text))
		case render.SetClip:
			clipCounter++
			id := fmt.Sprintf("clip%d", clipCounter)
			fmt.Fprintf(&defs, `<clipPath id="%s"><rect x="%s" y="%s" width="%s" height="%s"/></clipPath>`,
				id, f(c.Rect.Min.X), f(c.Rect.Min.Y), f(c.Rect.Dx()), f(c.Rect.Dy()))
			fmt.Fprintf(&b, `<g clip-path="url(#%s)">`, id)
			clipDepth++
		case render.ClearClip:
			if clipDepth > 0 {
				b.WriteString("</g>")
				clipDepth--
			}
		case render.PushTransform:
			fmt.Fprintf(&b, `<g transform="translate(%s,%s) scale(%s,%s)">`,
				f(c.Translate.X), f(c.Translate.Y), f(c.ScaleX), f(c.ScaleY))
			groupDepth++
		case render.PopTransform:
			if groupDepth > 0 {
				b.WriteString("</g>")
				groupDepth--
			}
		case render.BeginGroup:
			if c.ID != "" {
				fmt.Fprintf(&b, `<g id="%s">`, escapeXML(c.ID))
			} else {
				b.WriteString("<g>")
			}
			groupDepth++
		case render.EndGroup:
			if groupDepth > 0 {
				b.WriteString("</g>")
				groupDepth--
			}
		}
	}

	for i := 0; i < clipDepth; i++ {
		b.WriteString("</g>")
	}
	for i := 0; i < groupDepth; i++ {
		b.WriteString("</g>")
	}
	b.WriteString("</svg>")
	out := b.String()
	if defs.Len() == 0 {
		return out
	}
	return out[:headLen] + "<defs>" + defs.String() + "</defs>" + out[headLen:]
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func resolveHex(t *theme.Theme, tok theme.Token) string {
	c := t.Resolve(tok)
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, f(float64(c.A)/255))
}

func escapeXML(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncateLabel(label string, widthPx float64) string {
	maxChars := int(widthPx / 7.0)
	runes := []rune(label)
	if len(runes) <= maxChars || maxChars <= 2 {
		return label
	}
	return string(runes[:maxChars-1]) + "…"
}
