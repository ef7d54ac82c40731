package lane

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"

	"github.com/proftrace/proftrace/geom"
	"github.com/proftrace/proftrace/render"
	"github.com/proftrace/proftrace/theme"
)

// layoutCacheKey identifies one lane's rendered layout at one viewport
// generation. Bumping generation on every viewport/selection mutation that
// affects rendering invalidates stale entries without an explicit sweep:
// they simply age out of the cache under LFU/LRU pressure.
//
// ristretto's Key constraint only admits a handful of primitive types, so
// the (laneID, generation) pair is hashed down to a uint64 rather than used
// as a struct key directly.
func layoutCacheKey(laneID int, generation uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(laneID))
	binary.LittleEndian.PutUint64(buf[8:], generation)
	return xxhash.Sum64(buf[:])
}

// Manager owns the ordered list of Lanes and the global vertical scroll
// position, per spec.md §4.4. It is the only thing that knows how Lanes
// map to pixel rows.
type Manager struct {
	lanes         []*Lane
	nextID        int
	globalScrollY float64

	layouts *ristretto.Cache[uint64, []render.Command]
}

// NewManager returns an empty Manager with its layout cache initialized.
// The cache is sized for a comfortably large session (tens of lanes,
// dozens of cached generations each) without attempting to bound it
// precisely — ristretto's cost-aware eviction handles the rest.
func NewManager() *Manager {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []render.Command]{
		NumCounters: 1e5,
		MaxCost:     1 << 24,
		BufferItems: 64,
	})
	if err != nil {
		// Config above is static and valid; NewCache only fails on
		// malformed config.
		panic(err)
	}
	return &Manager{layouts: cache}
}

// AddLane appends a new lane bound to profileHandle and returns its id.
func (m *Manager) AddLane(kind Kind, profileHandle int64) *Lane {
	l := &Lane{
		ID:            m.nextID,
		ProfileHandle: profileHandle,
		Kind:          kind,
		HeightPx:      clampHeight(80),
		Visible:       true,
		ViewType:      TimeOrder,
	}
	m.nextID++
	m.lanes = append(m.lanes, l)
	return l
}

// RemoveLanesForProfile drops every lane bound to profileHandle, as
// happens when a profile is removed from the session (spec.md §3,
// "removing a profile removes all lanes bound to it").
func (m *Manager) RemoveLanesForProfile(profileHandle int64) {
	kept := m.lanes[:0]
	for _, l := range m.lanes {
		if l.ProfileHandle != profileHandle {
			kept = append(kept, l)
		} else {
			m.layouts.Del(layoutCacheKey(l.ID, 0))
		}
	}
	m.lanes = kept
}

// Lanes returns the full ordered list, visible or not.
func (m *Manager) Lanes() []*Lane {
	return m.lanes
}

// VisibleLanes returns the lanes with Visible == true, preserving order.
func (m *Manager) VisibleLanes() []*Lane {
	out := make([]*Lane, 0, len(m.lanes))
	for _, l := range m.lanes {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

// SetVisible toggles a lane's visibility by id.
func (m *Manager) SetVisible(id int, visible bool) {
	if l := m.find(id); l != nil {
		l.Visible = visible
	}
}

// SetHeight sets a lane's content height, clamped to [MinHeight,MaxHeight].
func (m *Manager) SetHeight(id int, px int) {
	if l := m.find(id); l != nil {
		l.HeightPx = clampHeight(px)
	}
}

// Lane looks up a lane by id, for callers (the façade, in particular)
// that need direct access beyond the mutation helpers above.
func (m *Manager) Lane(id int) (*Lane, bool) {
	l := m.find(id)
	return l, l != nil
}

func (m *Manager) find(id int) *Lane {
	for _, l := range m.lanes {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// MoveLane relocates the lane at position from to position to within the
// full ordered list (visible or not), preserving every other lane's
// relative order.
func (m *Manager) MoveLane(from, to int) {
	if from < 0 || from >= len(m.lanes) || to < 0 || to >= len(m.lanes) || from == to {
		return
	}
	l := m.lanes[from]
	m.lanes = append(m.lanes[:from], m.lanes[from+1:]...)
	m.lanes = append(m.lanes[:to], append([]*Lane{l}, m.lanes[to:]...)...)
}

// LaneY returns the cumulative content-only pixel offset above the ith
// visible lane: the sum of HeightPx for every visible lane before it.
// Header heights are excluded, per spec.md §4.4 — callers that need the
// header-inclusive offset (hit-testing, total layout height) use
// TotalHeight/LaneAtY instead.
func (m *Manager) LaneY(visibleIndex int) int {
	visible := m.VisibleLanes()
	if visibleIndex < 0 || visibleIndex > len(visible) {
		return 0
	}
	y := 0
	for i := 0; i < visibleIndex; i++ {
		y += visible[i].HeightPx
	}
	return y
}

// TotalHeight sums HeaderHeight+HeightPx over every visible lane.
func (m *Manager) TotalHeight() int {
	total := 0
	for _, l := range m.VisibleLanes() {
		total += HeaderHeight + l.HeightPx
	}
	return total
}

// ScrollGlobal advances the global vertical scroll position by dy,
// clamped to [0, max(0, totalHeight-viewportHeight)].
func (m *Manager) ScrollGlobal(dy, viewportHeight float64) {
	max := float64(m.TotalHeight()) - viewportHeight
	if max < 0 {
		max = 0
	}
	y := m.globalScrollY + dy
	if y < 0 {
		y = 0
	}
	if y > max {
		y = max
	}
	m.globalScrollY = y
}

// GlobalScrollY returns the current global vertical scroll offset.
func (m *Manager) GlobalScrollY() float64 {
	return m.globalScrollY
}

// LaneTop returns the header-inclusive, pre-scroll Y offset of lane id's
// content area (i.e. below its own header), and whether id is currently
// visible. Used to translate an absolute pointer position into
// lane-local coordinates for hit testing.
func (m *Manager) LaneTop(id int) (y float64, ok bool) {
	off := 0.0
	for _, l := range m.VisibleLanes() {
		if l.ID == id {
			return off + HeaderHeight, true
		}
		off += float64(HeaderHeight + l.HeightPx)
	}
	return 0, false
}

// LaneAtY reverse-maps an absolute (pre-scroll-compensated) y coordinate
// to the lane whose header-or-content strip contains it, honoring the
// current global scroll offset.
func (m *Manager) LaneAtY(y float64) (*Lane, bool) {
	pos := y + m.globalScrollY
	off := 0.0
	for _, l := range m.VisibleLanes() {
		span := float64(HeaderHeight + l.HeightPx)
		if pos >= off && pos < off+span {
			return l, true
		}
		off += span
	}
	return nil, false
}

// dragHandleSlop is how many pixels of a lane's bottom edge count as its
// resize drag handle.
const dragHandleSlop = 4

// DragHandleAtY reports the lane whose bottom-edge resize handle contains
// y, honoring the global scroll offset. Returns false if y doesn't land
// on any handle.
func (m *Manager) DragHandleAtY(y float64) (*Lane, bool) {
	pos := y + m.globalScrollY
	off := 0.0
	for _, l := range m.VisibleLanes() {
		span := float64(HeaderHeight + l.HeightPx)
		bottom := off + span
		if pos >= bottom-dragHandleSlop && pos <= bottom+dragHandleSlop {
			return l, true
		}
		off += span
	}
	return nil, false
}

// RenderHeaders produces one fixed-height header strip per visible lane,
// stacked starting at yOffset, width wide.
func (m *Manager) RenderHeaders(width float64, yOffset float64) []render.Command {
	var cmds []render.Command
	y := yOffset - m.globalScrollY
	for _, l := range m.VisibleLanes() {
		cmds = append(cmds,
			render.DrawRect{
				Rect: geom.Rectangle(0, y, width, y+HeaderHeight),
				Fill: theme.LaneHeaderBackground,
			},
			render.DrawText{
				Pos:      geom.Point{X: 4, Y: y + HeaderHeight/2},
				Text:     headerLabel(l),
				Token:    theme.LaneHeaderText,
				FontSize: 12,
				Align:    render.AlignLeft,
			},
		)
		y += float64(HeaderHeight + l.HeightPx)
	}
	return cmds
}

func headerLabel(l *Lane) string {
	switch l.Kind {
	case KindCounter:
		return l.CounterName
	default:
		return l.Kind.String()
	}
}

// CachedLayout returns the previously stored render commands for lane id
// at generation, if still present in the cache.
func (m *Manager) CachedLayout(laneID int, generation uint64) ([]render.Command, bool) {
	return m.layouts.Get(layoutCacheKey(laneID, generation))
}

// StoreLayout caches cmds as lane id's rendered layout for generation. Cost
// is the number of commands, giving ristretto's admission policy a cheap
// proxy for memory weight without measuring actual byte sizes.
func (m *Manager) StoreLayout(laneID int, generation uint64, cmds []render.Command) {
	m.layouts.Set(layoutCacheKey(laneID, generation), cmds, int64(len(cmds)))
}

// WaitLayoutCache blocks until every pending layout-cache write has been
// applied. ristretto applies Set calls asynchronously, so callers that need
// to observe a just-stored layout (tests, in particular) must wait first.
func (m *Manager) WaitLayoutCache() {
	m.layouts.Wait()
}
