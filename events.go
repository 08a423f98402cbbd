package scenerig

import (
	"github.com/akmonengine/scenerig/actor"
)

const (
	ON_ACTIVATE EventType = iota
	ON_DEACTIVATE
	ON_REPARENT
)

type EventType uint8

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// ActivateEvent is sent when a node becomes active in the hierarchy
type ActivateEvent struct {
	Node *actor.Node
}

func (e ActivateEvent) Type() EventType { return ON_ACTIVATE }

// DeactivateEvent is sent when a node stops being active in the hierarchy
type DeactivateEvent struct {
	Node *actor.Node
}

func (e DeactivateEvent) Type() EventType { return ON_DEACTIVATE }

// ReparentEvent is sent when a node parent changed since the previous frame
type ReparentEvent struct {
	Node     *actor.Node
	Previous *actor.Node
	Parent   *actor.Node
}

func (e ReparentEvent) Type() EventType { return ON_REPARENT }

// EventListener - callback for events
type EventListener func(event Event)

type nodeState struct {
	active bool
	parent *actor.Node
}

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	nodeStates map[*actor.Node]nodeState
}

func NewEvents() Events {
	return Events{
		listeners:  make(map[EventType][]EventListener),
		buffer:     make([]Event, 0, 64),
		nodeStates: make(map[*actor.Node]nodeState),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// processNodeEvents compares the nodes with the previous frame to detect activation and parent changes.
// The first time a node is seen its state is only recorded.
func (e *Events) processNodeEvents(nodes []*actor.Node) {
	for _, node := range nodes {
		current := nodeState{active: node.ActiveInHierarchy(), parent: node.Parent()}

		tracked, exists := e.nodeStates[node]
		e.nodeStates[node] = current
		if !exists {
			continue
		}

		if tracked.parent != current.parent {
			e.buffer = append(e.buffer, ReparentEvent{Node: node, Previous: tracked.parent, Parent: current.parent})
		}
		if !tracked.active && current.active {
			e.buffer = append(e.buffer, ActivateEvent{Node: node})
		} else if tracked.active && !current.active {
			e.buffer = append(e.buffer, DeactivateEvent{Node: node})
		}
	}
}

// forget drops the tracked state of node and its subtree
func (e *Events) forget(node *actor.Node) {
	node.Walk(func(n *actor.Node) {
		delete(e.nodeStates, n)
	})
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
