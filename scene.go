// Package scenerig drives viewer behaviours over a small scene graph.
//
// A Scene owns root nodes and behaviours. Every call to Frame runs the update
// phase of all behaviours, then their late phase, then reports the nodes whose
// activation or parent changed during the frame.
package scenerig

import (
	"errors"
	"fmt"
	"slices"

	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/input"
)

var ErrNotBehaviour = errors.New("neither Updater nor LateUpdater")

// Updater runs during the update phase, in registration order
type Updater interface {
	Update(dt float64, in input.State)
}

// LateUpdater runs after every Updater of the frame
type LateUpdater interface {
	LateUpdate(dt float64)
}

type Scene struct {
	// Nodes tracked by the scene, with their subtrees
	Roots      []*actor.Node
	Behaviours []any

	Events Events
}

func NewScene() *Scene {
	return &Scene{
		Events: NewEvents(),
	}
}

// Add tracks a node and its subtree
func (s *Scene) Add(node *actor.Node) {
	if node == nil || slices.Contains(s.Roots, node) {
		return
	}
	s.Roots = append(s.Roots, node)
}

// Remove stops tracking a node, its subtree is forgotten by the events
func (s *Scene) Remove(node *actor.Node) {
	k := slices.Index(s.Roots, node)
	if k != -1 {
		s.Roots = slices.Delete(s.Roots, k, k+1)
	}

	if node != nil {
		s.Events.forget(node)
	}
}

// AddBehaviour registers b, which must implement Updater, LateUpdater or both
func (s *Scene) AddBehaviour(b any) error {
	_, update := b.(Updater)
	_, late := b.(LateUpdater)
	if !update && !late {
		return fmt.Errorf("add behaviour %T: %w", b, ErrNotBehaviour)
	}

	s.Behaviours = append(s.Behaviours, b)

	return nil
}

// RemoveBehaviour unregisters b
func (s *Scene) RemoveBehaviour(b any) {
	k := slices.Index(s.Behaviours, b)
	if k != -1 {
		s.Behaviours = slices.Delete(s.Behaviours, k, k+1)
	}
}

// Frame advances the scene by dt seconds with the input of this frame
func (s *Scene) Frame(dt float64, in input.State) {
	// Phase 1: input handling and desired state
	for _, b := range s.Behaviours {
		if u, ok := b.(Updater); ok {
			u.Update(dt, in)
		}
	}

	// Phase 2: pose resolution, after everything moved
	for _, b := range s.Behaviours {
		if l, ok := b.(LateUpdater); ok {
			l.LateUpdate(dt)
		}
	}

	s.Events.processNodeEvents(s.Nodes())
	s.Events.flush()
}

// Nodes lists every tracked node once, depth first from the roots
func (s *Scene) Nodes() []*actor.Node {
	seen := make(map[*actor.Node]bool)
	nodes := make([]*actor.Node, 0, len(s.Roots))

	for _, root := range s.Roots {
		root.Walk(func(n *actor.Node) {
			if seen[n] {
				return
			}
			seen[n] = true
			nodes = append(nodes, n)
		})
	}

	return nodes
}
