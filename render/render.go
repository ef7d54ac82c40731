// Package render defines the render-command protocol produced by view
// transforms: a small, stateless instruction set that a Renderer
// implementation turns into pixels, SVG, or any other sink. View transforms
// depend only on this package, never on a concrete renderer.
package render

import (
	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/theme"
)

// TextAlign controls horizontal text anchoring within DrawText.Pos.
type TextAlign uint8

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// Command is the closed set of render instructions a view transform may
// emit. Only the concrete types below implement it; the interface exists
// to make the sum type exhaustive-switchable without an explicit tag field.
type Command interface {
	commandMarker()
}

// DrawRect paints a filled, optionally bordered rectangle. Label and
// FrameID are metadata for hit-testing and export; a rasterizing renderer
// may ignore both.
type DrawRect struct {
	Rect        geom.Rect
	Fill        theme.Token
	Border      theme.Token
	HasBorder   bool
	Label       string
	FrameID     model.FrameID
	HasFrameID  bool
}

// DrawText paints a single line of text anchored at Pos according to Align.
type DrawText struct {
	Pos      geom.Point
	Text     string
	Token    theme.Token
	FontSize float64
	Align    TextAlign
}

// DrawLine paints a straight segment from From to To, Width pixels wide.
type DrawLine struct {
	From, To geom.Point
	Token    theme.Token
	Width    float64
}

// SetClip pushes a scissor rectangle; subsequent commands are clipped to
// the intersection of all rectangles currently on the stack.
type SetClip struct {
	Rect geom.Rect
}

// ClearClip pops one entry from the clip stack. Mirrors SetClip LIFO.
type ClearClip struct{}

// PushTransform pushes a 2D affine transform (translate then per-axis
// scale) onto the transform stack.
type PushTransform struct {
	Translate geom.Point
	ScaleX    float64
	ScaleY    float64
}

// PopTransform pops one entry from the transform stack. Mirrors
// PushTransform LIFO.
type PopTransform struct{}

// BeginGroup opens a semantic group, consumed by export renderers (SVG
// groups, PDF layers) and ignored by rasterizing renderers.
type BeginGroup struct {
	ID    string
	Label string
}

// EndGroup closes the most recently opened BeginGroup.
type EndGroup struct{}

func (DrawRect) commandMarker()      {}
func (DrawText) commandMarker()      {}
func (DrawLine) commandMarker()      {}
func (SetClip) commandMarker()       {}
func (ClearClip) commandMarker()     {}
func (PushTransform) commandMarker() {}
func (PopTransform) commandMarker()  {}
func (BeginGroup) commandMarker()    {}
func (EndGroup) commandMarker()      {}

// Renderer consumes a command stream and turns it into a concrete output —
// pixels, SVG markup, or any other sink. View transforms never depend on
// this interface directly; only hosts assembling a pipeline do.
type Renderer interface {
	Render(cmds []Command) error
}

// Sink is a plain growable command buffer, reused across frames via
// Reset, that a host can collect command streams into. View transforms
// return []Command directly and do not write to a Sink.
type Sink struct {
	cmds []Command
}

// Emit appends cmd to the sink.
func (s *Sink) Emit(cmd Command) {
	s.cmds = append(s.cmds, cmd)
}

// Commands returns the accumulated command slice. The returned slice is
// owned by the caller until the next Reset.
func (s *Sink) Commands() []Command {
	return s.cmds
}

// Reset empties the sink for reuse, retaining its backing array.
func (s *Sink) Reset() {
	s.cmds = s.cmds[:0]
}

// Len reports the number of commands currently buffered.
func (s *Sink) Len() int {
	return len(s.cmds)
}
