package facade

import "github.com/proftrace/proftrace/session"

// State is the flat, JSON-serializable snapshot spec.md §4.10's
// getState/getStateSnapshot returns: every field an external consumer
// needs to render a status bar or re-derive the viewer's chrome, with no
// pointers into Facade's own state.
type State struct {
	Generation uint64 `json:"generation"`
	Theme      string `json:"theme"`
	ColorMode  string `json:"color_mode"`

	Session session.Info `json:"session"`
	Lanes   []LaneState  `json:"lanes"`

	Selection SelectionState `json:"selection"`
	Search    SearchState    `json:"search"`
	Viewport  ViewportState  `json:"viewport"`
}

// LaneState is one lane's externally visible fields.
type LaneState struct {
	ID            int    `json:"id"`
	ProfileHandle int64  `json:"profile_handle"`
	Kind          string `json:"kind"`
	ViewType      string `json:"view_type,omitempty"`
	HeightPx      int    `json:"height_px"`
	Visible       bool   `json:"visible"`
	ThreadID      int64  `json:"thread_id,omitempty"`
	CounterName   string `json:"counter_name,omitempty"`
}

// SelectionState mirrors interaction.Selection, flattened for export.
type SelectionState struct {
	Has           bool   `json:"has"`
	ProfileHandle int64  `json:"profile_handle,omitempty"`
	FrameID       int64  `json:"frame_id,omitempty"`
	Name          string `json:"name,omitempty"`
	StartUS       int64  `json:"start_us,omitempty"`
	EndUS         int64  `json:"end_us,omitempty"`
}

// SearchState mirrors interaction.SearchState, flattened for export.
type SearchState struct {
	Query       string `json:"query,omitempty"`
	MatchCount  int    `json:"match_count"`
	ActiveIndex int    `json:"active_index"`
}

// ViewportState mirrors viewport.Viewport's externally relevant fields.
type ViewportState struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	ScrollY float64 `json:"scroll_y"`
}

func colorModeName(m int) string {
	if m == 1 {
		return "by-depth"
	}
	return "by-name"
}

// GetState flattens the façade's current state into a State snapshot.
func (f *Facade) GetState() State {
	st := State{
		Generation: f.generation,
		Theme:      f.Theme.Name,
		ColorMode:  colorModeName(int(f.ColorMode)),
		Session:    f.Session.Info(),
		Viewport: ViewportState{
			Start:   f.Viewport.Start,
			End:     f.Viewport.End,
			ScrollY: f.Viewport.ScrollY,
		},
		Search: SearchState{
			Query:       f.Search.Query,
			MatchCount:  f.Search.MatchCount(),
			ActiveIndex: f.Search.ActiveIndex,
		},
	}

	for _, l := range f.Lanes.Lanes() {
		ls := LaneState{
			ID: l.ID, ProfileHandle: l.ProfileHandle, Kind: l.Kind.String(),
			HeightPx: l.HeightPx, Visible: l.Visible, CounterName: l.CounterName,
		}
		if l.Kind.String() == "thread" {
			ls.ViewType = l.ViewType.String()
		}
		if l.HasThreadID {
			ls.ThreadID = int64(l.ThreadID)
		}
		st.Lanes = append(st.Lanes, ls)
	}

	if f.Selection.Has {
		st.Selection = SelectionState{
			Has: true, ProfileHandle: f.Selection.ProfileHandle,
			FrameID: int64(f.Selection.FrameID), Name: f.Selection.CachedName,
			StartUS: f.Selection.CachedStartUS, EndUS: f.Selection.CachedEndUS,
		}
	}

	return st
}
