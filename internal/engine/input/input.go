// Package input translates SDL2 events into viewer events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/skinview/internal/engine/input/pointer"
)

// EventType classifies a polled event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPointer
	EventDrop
)

// Event is one processed SDL event.
type Event struct {
	Type    EventType
	Key     sdl.Scancode
	Width   int
	Height  int
	Pointer pointer.Event
	Path    string // dropped file
}

// Input pumps the SDL event queue.
type Input struct {
	events []Event
}

// New creates an input pump.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events. It returns true when the window was asked to
// close.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Scancode,
				})
			}

		case *sdl.MouseMotionEvent:
			i.addPointer(pointer.Event{Kind: pointer.Move, X: float32(e.X), Y: float32(e.Y)})

		case *sdl.MouseButtonEvent:
			kind := pointer.Press
			if e.Type == sdl.MOUSEBUTTONUP {
				kind = pointer.Release
			}
			i.addPointer(pointer.Event{
				Kind:   kind,
				X:      float32(e.X),
				Y:      float32(e.Y),
				Button: mapButton(e.Button),
			})

		case *sdl.MouseWheelEvent:
			y := e.Y
			if e.Direction == sdl.MOUSEWHEEL_FLIPPED {
				y = -y
			}
			i.addPointer(pointer.Event{Kind: pointer.Wheel, WheelDelta: float32(y) * pointer.WheelNotch})

		case *sdl.DropEvent:
			if e.Type == sdl.DROPFILE {
				i.events = append(i.events, Event{Type: EventDrop, Path: e.File})
			}
		}
	}

	return false
}

func (i *Input) addPointer(p pointer.Event) {
	i.events = append(i.events, Event{Type: EventPointer, Pointer: p})
}

func mapButton(b uint8) pointer.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return pointer.ButtonPrimary
	case sdl.BUTTON_MIDDLE:
		return pointer.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return pointer.ButtonSecondary
	}
	return pointer.ButtonNone
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// IsKeyPressed checks if a key went down this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
