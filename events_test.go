package scenerig

import (
	"testing"

	"github.com/akmonengine/scenerig/actor"
)

type eventCapture struct {
	events []Event
}

func (ec *eventCapture) capture(event Event) {
	ec.events = append(ec.events, event)
}

func (ec *eventCapture) reset() {
	ec.events = ec.events[:0]
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

	events.Subscribe(ON_ACTIVATE, capture.capture)

	if len(events.listeners[ON_ACTIVATE]) != 1 {
		t.Errorf("Expected 1 listener for ON_ACTIVATE, got %d", len(events.listeners[ON_ACTIVATE]))
	}
}

func TestEvents_MultipleListeners(t *testing.T) {
	events := NewEvents()
	capture1 := &eventCapture{}
	capture2 := &eventCapture{}

	events.Subscribe(ON_DEACTIVATE, capture1.capture)
	events.Subscribe(ON_DEACTIVATE, capture2.capture)

	node := actor.NewNode("node")
	nodes := []*actor.Node{node}
	events.processNodeEvents(nodes)
	events.flush()

	node.SetActive(false)
	events.processNodeEvents(nodes)
	events.flush()

	if capture1.count() != 1 || capture2.count() != 1 {
		t.Errorf("Expected 1 event per listener, got %d and %d", capture1.count(), capture2.count())
	}
}

func TestEvents_FlushClearsBuffer(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_ACTIVATE, capture.capture)

	events.buffer = append(events.buffer, ActivateEvent{Node: actor.NewNode("a")})
	events.flush()
	events.flush()

	if capture.count() != 1 {
		t.Errorf("Expected 1 event, got %d", capture.count())
	}
	if len(events.buffer) != 0 {
		t.Errorf("Expected empty buffer, got %d", len(events.buffer))
	}
}

// =============================================================================
// Activation Events Tests
// =============================================================================

func TestEvents_OnDeactivate(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_DEACTIVATE, capture.capture)
	events.Subscribe(ON_ACTIVATE, capture.capture)

	node := actor.NewNode("node")
	nodes := []*actor.Node{node}

	// Frame 1: Initialize state
	events.processNodeEvents(nodes)
	events.flush()

	if capture.count() != 0 {
		t.Errorf("Expected no events on initialization, got %d", capture.count())
	}

	// Frame 2: Node is hidden
	node.SetActive(false)
	events.processNodeEvents(nodes)
	events.flush()

	if capture.count() != 1 || !capture.hasEventType(ON_DEACTIVATE) {
		t.Fatalf("Expected 1 ON_DEACTIVATE event, got %v", capture.events)
	}
	if event := capture.events[0].(DeactivateEvent); event.Node != node {
		t.Error("DeactivateEvent should contain the correct node")
	}

	// Frame 3: No change
	capture.reset()
	events.processNodeEvents(nodes)
	events.flush()

	if capture.count() != 0 {
		t.Errorf("Expected no events without change, got %d", capture.count())
	}
}

func TestEvents_OnActivate(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_ACTIVATE, capture.capture)

	node := actor.NewNode("node")
	node.SetActive(false)
	nodes := []*actor.Node{node}

	events.processNodeEvents(nodes)
	events.flush()

	node.SetActive(true)
	events.processNodeEvents(nodes)
	events.flush()

	if !capture.hasEventType(ON_ACTIVATE) || capture.count() != 1 {
		t.Fatalf("Expected 1 ON_ACTIVATE event, got %d", capture.count())
	}
	if event := capture.events[0].(ActivateEvent); event.Node != node {
		t.Error("ActivateEvent should contain the correct node")
	}
}

func TestEvents_InheritedActivation(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_DEACTIVATE, capture.capture)

	root := actor.NewNode("root")
	leaf := actor.NewNode("leaf")
	leaf.SetParent(root, false)
	nodes := []*actor.Node{root, leaf}

	events.processNodeEvents(nodes)
	root.SetActive(false)
	events.processNodeEvents(nodes)
	events.flush()

	// Both the root and its child left the active hierarchy
	if capture.count() != 2 {
		t.Errorf("Expected 2 ON_DEACTIVATE events, got %d", capture.count())
	}
}

// =============================================================================
// Reparent Events Tests
// =============================================================================

func TestEvents_OnReparent(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_REPARENT, capture.capture)

	a := actor.NewNode("a")
	b := actor.NewNode("b")
	child := actor.NewNode("child")
	child.SetParent(a, true)
	nodes := []*actor.Node{a, b, child}

	events.processNodeEvents(nodes)
	events.flush()

	child.SetParent(b, true)
	events.processNodeEvents(nodes)
	events.flush()

	if capture.count() != 1 {
		t.Fatalf("Expected 1 ON_REPARENT event, got %d", capture.count())
	}
	event := capture.events[0].(ReparentEvent)
	if event.Node != child || event.Previous != a || event.Parent != b {
		t.Errorf("ReparentEvent = %+v", event)
	}
}

func TestEvents_Forget(t *testing.T) {
	events := NewEvents()
	capture := &eventCapture{}
	events.Subscribe(ON_DEACTIVATE, capture.capture)

	root := actor.NewNode("root")
	leaf := actor.NewNode("leaf")
	leaf.SetParent(root, false)
	nodes := []*actor.Node{root, leaf}

	events.processNodeEvents(nodes)
	events.forget(root)

	if len(events.nodeStates) != 0 {
		t.Errorf("Expected no tracked states, got %d", len(events.nodeStates))
	}

	// Forgotten nodes are observed silently again
	root.SetActive(false)
	events.processNodeEvents(nodes)
	events.flush()

	if capture.count() != 0 {
		t.Errorf("Expected no events after forget, got %d", capture.count())
	}
}
