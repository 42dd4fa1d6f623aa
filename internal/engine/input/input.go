// Package input turns window and UI input into discrete viewer events and
// routes them to a scene controller.
package input

import (
	"fmt"

	"github.com/Faultbox/gman/internal/engine/camera"
)

// EventType identifies a viewer input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventLook
	EventScroll
	EventMove
	EventFilesDropped
	EventCameraMouse
	EventScreenshot
	EventPick
)

func (t EventType) String() string {
	switch t {
	case EventNone:
		return "none"
	case EventQuit:
		return "quit"
	case EventLook:
		return "look"
	case EventScroll:
		return "scroll"
	case EventMove:
		return "move"
	case EventFilesDropped:
		return "files-dropped"
	case EventCameraMouse:
		return "camera-mouse"
	case EventScreenshot:
		return "screenshot"
	case EventPick:
		return "pick"
	}
	return fmt.Sprintf("EventType(%d)", int(t))
}

// Event is one processed input event. Only the fields of its Type are set.
type Event struct {
	Type EventType

	// Look: mouse delta in pixels, DY positive upward. Scroll: DY only.
	// Pick: normalized device coordinates of the click.
	DX, DY float32

	// Pick: viewport aspect ratio.
	Aspect float32

	// Move: direction held during this frame.
	Direction camera.Direction

	// FilesDropped: paths in drop order.
	Paths []string

	// CameraMouse: whether camera mouse mode is on.
	Active bool
}

// Look creates a look event.
func Look(dx, dy float32) Event { return Event{Type: EventLook, DX: dx, DY: dy} }

// Scroll creates a zoom event.
func Scroll(dy float32) Event { return Event{Type: EventScroll, DY: dy} }

// Move creates a movement event.
func Move(d camera.Direction) Event { return Event{Type: EventMove, Direction: d} }

// Pick creates a model pick at normalized device coordinates.
func Pick(ndcX, ndcY, aspect float32) Event {
	return Event{Type: EventPick, DX: ndcX, DY: ndcY, Aspect: aspect}
}

// FilesDropped creates a drop event. paths is copied.
func FilesDropped(paths []string) Event {
	return Event{Type: EventFilesDropped, Paths: append([]string(nil), paths...)}
}

// CameraMouse creates a camera mouse mode change.
func CameraMouse(active bool) Event { return Event{Type: EventCameraMouse, Active: active} }

// Input collects the events of one frame.
type Input struct {
	events []Event
}

// New creates a new input queue.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Push appends an event.
func (i *Input) Push(e Event) {
	i.events = append(i.events, e)
}

// Events returns the queued events in arrival order.
func (i *Input) Events() []Event {
	return i.events
}

// Reset clears the queue for the next frame.
func (i *Input) Reset() {
	i.events = i.events[:0]
}

// Has reports whether an event of type t is queued.
func (i *Input) Has(t EventType) bool {
	for _, e := range i.events {
		if e.Type == t {
			return true
		}
	}
	return false
}
