package facade

import "github.com/proftrace/proftrace/lane"

// Key is the closed set of logical keyboard actions the viewer's minimum
// keyboard surface names (spec.md §6). The façade has no I/O dependency
// of its own; a host translates physical key events into Key values and
// calls HandleKey.
type Key int

const (
	KeyPanLeft Key = iota
	KeyPanRight
	KeyScrollUp
	KeyScrollDown
	KeyZoomIn
	KeyZoomOut
	KeyResetZoom
	KeyZoomToFit
	KeyZoomToSelection
	KeyToggleTheme
	KeyFocusSearch
	KeyClear
	KeyViewTimeOrder
	KeyViewLeftHeavy
	KeyViewIcicle
	KeyViewSandwich
	KeyToggleLaneSidebar
	KeySearchNext
	KeySearchPrev
	KeyNavigateParent
	KeyNavigateChild
	KeyNavigateNextSibling
	KeyNavigatePrevSibling
	KeyNavigateBack
	KeyNavigateForward
)

// panStep/scrollStep/zoomFactor are the discrete-keypress equivalents of
// one WASD spring tick, used by the non-WASD arrow/+-/Home bindings that
// spec.md §6 lists alongside the held-key pan.
const (
	panStep    = 0.02
	scrollStep = 20.0
	zoomFactor = 1.25
)

// HandleKey dispatches one logical key press to the matching façade
// command. View-switch keys (1–4 in spec.md §6) apply to the lane
// holding the current selection, falling back to a no-op without one —
// the façade has no separate notion of "focused lane" beyond selection.
func (f *Facade) HandleKey(k Key) {
	switch k {
	case KeyPanLeft:
		f.Viewport.CancelAnimation()
		f.Viewport.ScrollBy(-scrollStep, 1/panStep)
	case KeyPanRight:
		f.Viewport.CancelAnimation()
		f.Viewport.ScrollBy(scrollStep, 1/panStep)
	case KeyScrollUp:
		f.Viewport.ScrollY -= scrollStep
		if f.Viewport.ScrollY < 0 {
			f.Viewport.ScrollY = 0
		}
	case KeyScrollDown:
		f.Viewport.ScrollY += scrollStep
	case KeyZoomIn:
		f.Viewport.CancelAnimation()
		f.Viewport.ZoomAt(zoomFactor, 0.5/panStep, 1/panStep)
	case KeyZoomOut:
		f.Viewport.CancelAnimation()
		f.Viewport.ZoomAt(1/zoomFactor, 0.5/panStep, 1/panStep)
	case KeyResetZoom, KeyZoomToFit:
		f.ResetZoom()
		return
	case KeyZoomToSelection:
		f.ZoomToSelection()
		return
	case KeyToggleTheme:
		f.ToggleTheme()
		return
	case KeyFocusSearch:
		// Focusing a search box is a host UI concern; the façade has
		// nothing to do until SetSearch is called with a query.
		return
	case KeyClear:
		f.ClearSelection()
		f.SetSearch("")
		return
	case KeyViewTimeOrder:
		f.setSelectedLaneViewType(lane.TimeOrder)
		return
	case KeyViewLeftHeavy:
		f.setSelectedLaneViewType(lane.LeftHeavy)
		return
	case KeyViewIcicle:
		f.setSelectedLaneViewType(lane.Icicle)
		return
	case KeyViewSandwich:
		f.setSelectedLaneViewType(lane.Sandwich)
		return
	case KeyToggleLaneSidebar:
		// Sidebar visibility is host UI chrome, explicitly out of scope
		// per spec.md §1's Non-goals; nothing for the façade to do.
		return
	case KeySearchNext:
		f.NextSearchResult()
		return
	case KeySearchPrev:
		f.PrevSearchResult()
		return
	case KeyNavigateParent:
		f.NavigateToParent()
		return
	case KeyNavigateChild:
		f.NavigateToChild()
		return
	case KeyNavigateNextSibling:
		f.NavigateToNextSibling()
		return
	case KeyNavigatePrevSibling:
		f.NavigateToPrevSibling()
		return
	case KeyNavigateBack:
		f.NavigateBack()
		return
	case KeyNavigateForward:
		f.NavigateForward()
		return
	default:
		return
	}
	f.bumpAndNotify()
}

func (f *Facade) setSelectedLaneViewType(vt lane.ViewType) {
	if !f.Selection.Has {
		return
	}
	f.SetViewType(f.Selection.LaneIndex, vt)
}
