package interaction

import (
	"strings"

	"github.com/proftrace/proftrace/model"
)

// Match identifies one span that satisfied a search query.
type Match struct {
	ProfileHandle int64
	FrameID       model.FrameID
}

// SearchTarget is one (profile, thread) pair a search query scans —
// normally every thread lane currently visible, per spec.md §4.8
// ("across all spans in all visible lanes").
type SearchTarget struct {
	ProfileHandle int64
	Profile       *model.Profile
	ThreadID      model.ThreadID
}

// SearchState is the SearchState of spec.md §3: the active query plus
// its ordered match list and active index.
type SearchState struct {
	Query       string
	Matches     []Match
	ActiveIndex int
}

// IsMatch satisfies views.SearchLookup: does id within profileHandle
// appear in the current match list.
func (s SearchState) IsMatch(profileHandle int64, id model.FrameID) bool {
	for _, m := range s.Matches {
		if m.ProfileHandle == profileHandle && m.FrameID == id {
			return true
		}
	}
	return false
}

// Active satisfies views.SearchLookup: is a non-empty query in effect.
func (s SearchState) Active() bool {
	return s.Query != ""
}

// MatchCount reports how many spans the current query matched.
// SearchState keeps no count of the spans scanned, only of those that
// matched.
func (s SearchState) MatchCount() int { return len(s.Matches) }

// SetQuery re-scans targets for spans whose name case-insensitively
// contains query, storing the ordered match list. An empty query clears
// highlights and match counts entirely, per spec.md §4.8.
func SetQuery(query string, targets []SearchTarget) SearchState {
	if query == "" {
		return SearchState{}
	}
	needle := strings.ToLower(query)

	var matches []Match
	for _, target := range targets {
		var ids []model.FrameID
		for i := range target.Profile.Threads {
			t := &target.Profile.Threads[i]
			if t.ID != target.ThreadID {
				continue
			}
			ids = append(ids, t.RootSpans...)
			break
		}
		var stack []model.FrameID
		stack = append(stack, ids...)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			s := target.Profile.Span(id)
			if strings.Contains(strings.ToLower(s.Name), needle) {
				matches = append(matches, Match{ProfileHandle: target.ProfileHandle, FrameID: id})
			}
			var kids []model.FrameID
			kids = target.Profile.Children(id, kids)
			stack = append(stack, kids...)
		}
	}
	return SearchState{Query: query, Matches: matches}
}

// NextMatch advances to the next match, wrapping around, per spec.md
// §4.8. No-op on an empty match list.
func (s SearchState) NextMatch() SearchState {
	if len(s.Matches) == 0 {
		return s
	}
	s.ActiveIndex = (s.ActiveIndex + 1) % len(s.Matches)
	return s
}

// PrevMatch retreats to the previous match, wrapping around.
func (s SearchState) PrevMatch() SearchState {
	if len(s.Matches) == 0 {
		return s
	}
	s.ActiveIndex = (s.ActiveIndex - 1 + len(s.Matches)) % len(s.Matches)
	return s
}

// ActiveMatch returns the currently active match, if any.
func (s SearchState) ActiveMatch() (Match, bool) {
	if len(s.Matches) == 0 {
		return Match{}, false
	}
	return s.Matches[s.ActiveIndex], true
}

// CenterWindow computes the normalized [start,end] viewport window that
// centers span id's aligned time range within a window spanFraction wide
// (of the session's full duration), clamped to the session bounds — the
// "animation that centers the matched span, clamped to the profile
// bounds" spec.md §4.8 calls for on nextMatch/prevMatch.
func CenterWindow(p *model.Profile, offsetUS, sessionStartUS, sessionEndUS int64, id model.FrameID, spanFraction float64) (start, end float64) {
	s := p.Span(id)
	aligned := (s.StartUS+s.EndUS)/2 - p.StartTimeUS + offsetUS
	total := float64(sessionEndUS - sessionStartUS)
	if total <= 0 {
		return 0, 1
	}
	centerFrac := float64(aligned-sessionStartUS) / total
	half := spanFraction / 2
	start = centerFrac - half
	end = centerFrac + half
	if start < 0 {
		end -= start
		start = 0
	}
	if end > 1 {
		start -= end - 1
		end = 1
	}
	if start < 0 {
		start = 0
	}
	return start, end
}
