package planetgen

import (
	"errors"
	"testing"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) count() int {
	return len(ec.events)
}

func (ec *eventCapture) hasEventType(eventType EventType) bool {
	for _, e := range ec.events {
		if e.Type() == eventType {
			return true
		}
	}
	return false
}

// =============================================================================
// Subscribe and Listeners Tests
// =============================================================================

func TestEvents_Subscribe(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}

	events.Subscribe(GRAPH_BUILT, capture.capture)

	if len(events.listeners[GRAPH_BUILT]) != 1 {
		t.Errorf("Expected 1 listener for GRAPH_BUILT, got %d", len(events.listeners[GRAPH_BUILT]))
	}
}

func TestEvents_FlushDispatchesByType(t *testing.T) {
	events := NewEvents()
	shells := &eventCapture{}
	paths := &eventCapture{}
	events.Subscribe(SHELL_GENERATED, shells.capture)
	events.Subscribe(PATH_NOT_FOUND, paths.capture)

	events.emit(ShellGeneratedEvent{Kind: Terrain})
	events.emit(ShellGeneratedEvent{Kind: Water})
	events.emit(PathNotFoundEvent{Start: 1, End: 2, Err: errors.New("x")})
	events.emit(GraphBuiltEvent{Nodes: 3})

	if shells.count() != 0 {
		t.Fatalf("events delivered before flush")
	}
	events.flush()

	if shells.count() != 2 {
		t.Errorf("Expected 2 shell events, got %d", shells.count())
	}
	if paths.count() != 1 || !paths.hasEventType(PATH_NOT_FOUND) {
		t.Errorf("Expected 1 PATH_NOT_FOUND event, got %v", paths.events)
	}
	if got := shells.events[1].(ShellGeneratedEvent).Kind; got != Water {
		t.Errorf("events out of order, second kind = %v", got)
	}
}

func TestEvents_FlushClearsBuffer(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(GRAPH_BUILT, capture.capture)

	events.emit(GraphBuiltEvent{})
	events.flush()
	events.flush()

	if capture.count() != 1 {
		t.Errorf("Expected 1 event after two flushes, got %d", capture.count())
	}
}

func TestEvents_ListenerMayEmit(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(FEATURES_SCATTERED, capture.capture)
	events.Subscribe(GRAPH_BUILT, func(Event) {
		events.emit(FeaturesScatteredEvent{Placed: 1})
	})

	events.emit(GraphBuiltEvent{})
	events.flush()
	if capture.count() != 0 {
		t.Fatalf("event emitted during flush delivered in the same flush")
	}
	events.flush()
	if capture.count() != 1 {
		t.Errorf("Expected 1 event on the next flush, got %d", capture.count())
	}
}
