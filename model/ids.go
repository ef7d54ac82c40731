// Package model is the normalized in-memory representation every parser
// builds into and every view transform reads from. A Profile is built once
// and is immutable thereafter; spans live in an arena and are addressed by
// FrameID, never by pointer, so the span graph has no reference cycles.
package model

// FrameID stably identifies a span within the profile that owns it. The
// zero value means "no span" — arena index 0 is never handed out, so a
// valid FrameID is always >= 1.
type FrameID int64

// NoFrame is the "none" sentinel for optional FrameID fields.
const NoFrame FrameID = 0

// ThreadID identifies a thread within a profile. Threads are compared by
// identity, not by SortKey; SortKey only controls display order.
type ThreadID int64

// AsyncSpanID identifies an AsyncSpan within a profile.
type AsyncSpanID int64
