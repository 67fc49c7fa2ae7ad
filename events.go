package planetgen

import (
	"maps"
	"sync"

	"github.com/akmonengine/planetgen/actor"
)

const (
	SHELL_GENERATED EventType = iota
	GRAPH_BUILT
	FEATURES_SCATTERED
	PATH_NOT_FOUND
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ShellGeneratedEvent is sent once per shell built by Generate
type ShellGeneratedEvent struct {
	Kind       ShellKind
	Vertices   int
	Triangles  int
	Degenerate int // triangles that received a zero tangent
}

func (e ShellGeneratedEvent) Type() EventType { return SHELL_GENERATED }

type GraphBuiltEvent struct {
	Nodes   int
	Blocked int
}

func (e GraphBuiltEvent) Type() EventType { return GRAPH_BUILT }

type FeaturesScatteredEvent struct {
	Class  actor.Class
	Placed int
}

func (e FeaturesScatteredEvent) Type() EventType { return FEATURES_SCATTERED }

// PathNotFoundEvent reports a failed search, with the size of the region
// the search could reach
type PathNotFoundEvent struct {
	Start, End int
	Closed     int
	Err        error
}

func (e PathNotFoundEvent) Type() EventType { return PATH_NOT_FOUND }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	mu sync.Mutex

	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event
}

func NewEvents() *Events {
	return &Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer. Listeners run
// outside the lock and may subscribe or trigger new events.
func (e *Events) flush() {
	e.mu.Lock()
	buffer := e.buffer
	e.buffer = make([]Event, 0, cap(buffer))
	listeners := maps.Clone(e.listeners)
	e.mu.Unlock()

	for _, event := range buffer {
		for _, listener := range listeners[event.Type()] {
			listener(event)
		}
	}
}
