// Package session holds the set of loaded profiles shown together, their
// per-profile time offsets, and the virtual timeline those offsets imply.
package session

import (
	"github.com/proftrace/proftrace/model"
	"github.com/proftrace/proftrace/parsers"
)

// Handle identifies one loaded profile within a Session.
type Handle int64

// Entry pairs a loaded Profile with its alignment offset.
type Entry struct {
	Handle   Handle
	Profile  *model.Profile
	Label    string
	OffsetUS int64
}

// Info summarizes a Session for the façade's state snapshot.
type Info struct {
	ProfileCount int
	StartUS      int64
	EndUS        int64
	Profiles     []ProfileInfo
}

// ProfileInfo is one profile's entry in Info.
type ProfileInfo struct {
	Handle   Handle
	Label    string
	OffsetUS int64
}

// Session is an ordered set of loaded profiles. It is mutated only by its
// own methods, never concurrently: the façade serializes every command
// onto a single thread per spec.md §5.
type Session struct {
	entries []Entry
	nextID  Handle
}

// New returns an empty Session.
func New() *Session {
	return &Session{nextID: 1}
}

// AddProfile detects bytes' format, parses it, and appends it to the
// session with a zero offset.
func (s *Session) AddProfile(label string, data []byte) (Handle, error) {
	p, err := parsers.Parse(data)
	if err != nil {
		return 0, err
	}
	return s.adopt(label, p), nil
}

// AddProfileAs is AddProfile but with a caller-supplied format, bypassing
// content sniffing.
func (s *Session) AddProfileAs(label string, format model.Format, data []byte) (Handle, error) {
	p, err := parsers.ParseAs(format, data)
	if err != nil {
		return 0, err
	}
	return s.adopt(label, p), nil
}

// AdoptProfile admits an already-parsed Profile into the session with a
// zero offset, without running it through a Parser. Used by
// facade.Facade's async load path, which parses on a background
// goroutine and must hand the finished Profile back to the session
// without parsing it a second time.
func (s *Session) AdoptProfile(label string, p *model.Profile) Handle {
	return s.adopt(label, p)
}

func (s *Session) adopt(label string, p *model.Profile) Handle {
	h := s.nextID
	s.nextID++
	if label == "" {
		label = p.Name
	}
	s.entries = append(s.entries, Entry{Handle: h, Profile: p, Label: label})
	return h
}

// Clear drops every loaded profile.
func (s *Session) Clear() {
	s.entries = nil
}

// SetOffset shifts h's profile along the session timeline. Unknown
// handles are a no-op: commands never fail per spec.md §7's policy of
// clamping/no-op over hard failure for non-parse operations.
func (s *Session) SetOffset(h Handle, offsetUS int64) {
	for i := range s.entries {
		if s.entries[i].Handle == h {
			s.entries[i].OffsetUS = offsetUS
			return
		}
	}
}

// Profile returns h's profile, or nil if h is unknown.
func (s *Session) Profile(h Handle) *model.Profile {
	for i := range s.entries {
		if s.entries[i].Handle == h {
			return s.entries[i].Profile
		}
	}
	return nil
}

// Entries returns the session's profiles in load order. The returned
// slice is owned by the caller; the Session retains its own copy.
func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Empty reports whether the session has no loaded profiles.
func (s *Session) Empty() bool {
	return len(s.entries) == 0
}

// AlignedTime converts p's local timestamp t into session-virtual time,
// per spec.md §4.2: t − p.start_time + p.offset.
func AlignedTime(p *model.Profile, offsetUS, localTS int64) int64 {
	return localTS - p.StartTimeUS + offsetUS
}

// Info aggregates the session's virtual time range and per-profile
// labels/offsets.
func (s *Session) Info() Info {
	info := Info{ProfileCount: len(s.entries)}
	if len(s.entries) == 0 {
		return info
	}
	first := true
	for _, e := range s.entries {
		start := AlignedTime(e.Profile, e.OffsetUS, e.Profile.StartTimeUS)
		end := AlignedTime(e.Profile, e.OffsetUS, e.Profile.EndTimeUS)
		if first || start < info.StartUS {
			info.StartUS = start
		}
		if first || end > info.EndUS {
			info.EndUS = end
		}
		first = false
		info.Profiles = append(info.Profiles, ProfileInfo{Handle: e.Handle, Label: e.Label, OffsetUS: e.OffsetUS})
	}
	return info
}
