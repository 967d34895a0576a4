// Package navigation turns user actions into orbit controller commands.
package navigation

import "github.com/Faultbox/globeview/internal/engine/camera"

// Action is a discrete navigation command.
type Action int

const (
	ActionNone Action = iota
	ActionZoomIn
	ActionZoomOut
	ActionPanLeft
	ActionPanRight
	ActionPanUp
	ActionPanDown
	ActionLookSky
	ActionLookBack
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionZoomIn:   "zoom_in",
	ActionZoomOut:  "zoom_out",
	ActionPanLeft:  "pan_left",
	ActionPanRight: "pan_right",
	ActionPanUp:    "pan_up",
	ActionPanDown:  "pan_down",
	ActionLookSky:  "look_sky",
	ActionLookBack: "look_back",
	ActionQuit:     "quit",
}

// String returns the action name.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Navigator is the command surface of an orbit controller.
type Navigator interface {
	ApplyZoomDelta(k float64)
	ApplyPanDelta(kx, ky float64)
	SetLookMode(mode camera.LookMode)
}

// Apply performs a on nav. It returns false for actions that are not
// navigation commands (none, quit).
func Apply(nav Navigator, a Action) bool {
	switch a {
	case ActionZoomIn:
		nav.ApplyZoomDelta(-1)
	case ActionZoomOut:
		nav.ApplyZoomDelta(1)
	case ActionPanLeft:
		nav.ApplyPanDelta(-1, 0)
	case ActionPanRight:
		nav.ApplyPanDelta(1, 0)
	case ActionPanUp:
		nav.ApplyPanDelta(0, 1)
	case ActionPanDown:
		nav.ApplyPanDelta(0, -1)
	case ActionLookSky:
		nav.SetLookMode(camera.LookZenith)
	case ActionLookBack:
		nav.SetLookMode(camera.LookHorizon)
	default:
		return false
	}
	return true
}

// ApplyWheel zooms by one step per wheel notch. Scrolling up zooms in.
func ApplyWheel(nav Navigator, notches int) {
	if notches == 0 {
		return
	}
	nav.ApplyZoomDelta(-float64(notches))
}
