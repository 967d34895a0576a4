// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/globeview/internal/navigation"
)

// EventType classifies a processed event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventMouseWheel
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Action navigation.Action // Bound action for EventKeyDown
	Width  int
	Height int
	WheelY int
}

// DefaultBindings maps keys to navigation actions: +/- zoom, arrows pan,
// T looks at the sky, Y looks back at the globe.
func DefaultBindings() map[sdl.Scancode]navigation.Action {
	return map[sdl.Scancode]navigation.Action{
		sdl.SCANCODE_EQUALS:   navigation.ActionZoomIn,
		sdl.SCANCODE_KP_PLUS:  navigation.ActionZoomIn,
		sdl.SCANCODE_MINUS:    navigation.ActionZoomOut,
		sdl.SCANCODE_KP_MINUS: navigation.ActionZoomOut,
		sdl.SCANCODE_LEFT:     navigation.ActionPanLeft,
		sdl.SCANCODE_RIGHT:    navigation.ActionPanRight,
		sdl.SCANCODE_UP:       navigation.ActionPanUp,
		sdl.SCANCODE_DOWN:     navigation.ActionPanDown,
		sdl.SCANCODE_T:        navigation.ActionLookSky,
		sdl.SCANCODE_Y:        navigation.ActionLookBack,
		sdl.SCANCODE_ESCAPE:   navigation.ActionQuit,
	}
}

// Input polls SDL and translates events.
type Input struct {
	bindings map[sdl.Scancode]navigation.Action
	events   []Event
}

// New creates a new input handler with the default key bindings.
func New() *Input {
	return &Input{
		bindings: DefaultBindings(),
		events:   make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to viewer events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			// Key repeat is wanted: holding an arrow keeps feeding velocity.
			if e.Type == sdl.KEYDOWN {
				i.events = append(i.events, Event{
					Type:   EventKeyDown,
					Key:    e.Keysym.Scancode,
					Action: i.bindings[e.Keysym.Scancode],
				})
			}

		case *sdl.MouseWheelEvent:
			y := int(e.Y)
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			i.events = append(i.events, Event{Type: EventMouseWheel, WheelY: y})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
