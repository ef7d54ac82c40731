package interaction

import "github.com/proftrace/proftrace/model"

// Selection is the SelectedSpan of spec.md §3: the one span the viewer
// currently has selected, plus enough cached data to render it without
// re-touching the profile.
type Selection struct {
	ProfileHandle int64
	FrameID       model.FrameID
	LaneIndex     int
	Has           bool

	// Cached for display; set by Select, not kept in sync afterward
	// (the model is immutable once loaded, so this never goes stale).
	CachedName    string
	CachedStartUS int64
	CachedEndUS   int64
}

// Select sets the selection to id within profileHandle/laneIndex, caching
// its display fields from p.
func Select(p *model.Profile, profileHandle int64, laneIndex int, id model.FrameID) Selection {
	s := p.Span(id)
	return Selection{
		ProfileHandle: profileHandle,
		FrameID:       id,
		LaneIndex:     laneIndex,
		Has:           true,
		CachedName:    s.Name,
		CachedStartUS: s.StartUS,
		CachedEndUS:   s.EndUS,
	}
}

// Clear returns the empty selection.
func Clear() Selection {
	return Selection{}
}

// NavigateToParent moves the selection to its current span's parent, a
// no-op if unselected or already at a root, per spec.md §4.7's O(1)
// arena-link navigation.
func NavigateToParent(p *model.Profile, sel Selection) Selection {
	if !sel.Has {
		return sel
	}
	parent := p.Span(sel.FrameID).Parent
	if parent == model.NoFrame {
		return sel
	}
	return Select(p, sel.ProfileHandle, sel.LaneIndex, parent)
}

// NavigateToChild moves the selection to its current span's first child,
// a no-op if it has none.
func NavigateToChild(p *model.Profile, sel Selection) Selection {
	if !sel.Has {
		return sel
	}
	child := p.Span(sel.FrameID).FirstChild
	if child == model.NoFrame {
		return sel
	}
	return Select(p, sel.ProfileHandle, sel.LaneIndex, child)
}

// NavigateToNextSibling moves to the current span's next sibling, a no-op
// if it is the last child (or a root).
func NavigateToNextSibling(p *model.Profile, sel Selection) Selection {
	if !sel.Has {
		return sel
	}
	next := p.Span(sel.FrameID).NextSibling
	if next == model.NoFrame {
		return sel
	}
	return Select(p, sel.ProfileHandle, sel.LaneIndex, next)
}

// NavigateToPrevSibling moves to the current span's previous sibling, a
// no-op if it is the first child (or a root).
func NavigateToPrevSibling(p *model.Profile, sel Selection) Selection {
	if !sel.Has {
		return sel
	}
	prev := p.PrevSibling(sel.FrameID)
	if prev == model.NoFrame {
		return sel
	}
	return Select(p, sel.ProfileHandle, sel.LaneIndex, prev)
}
