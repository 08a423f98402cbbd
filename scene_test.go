package scenerig

import (
	"errors"
	"testing"

	"github.com/akmonengine/scenerig/actor"
	"github.com/akmonengine/scenerig/input"
)

// recorder logs the phases it goes through in a shared journal
type recorder struct {
	name    string
	journal *[]string
}

func (r *recorder) Update(dt float64, in input.State) {
	*r.journal = append(*r.journal, r.name+".update")
}

type lateRecorder struct {
	recorder
}

func (r *lateRecorder) LateUpdate(dt float64) {
	*r.journal = append(*r.journal, r.name+".late")
}

// hider deactivates a node during the update phase
type hider struct {
	node *actor.Node
}

func (h *hider) Update(dt float64, in input.State) {
	h.node.SetActive(false)
}

// =============================================================================
// Behaviour Tests
// =============================================================================

func TestScene_AddBehaviour(t *testing.T) {
	scene := NewScene()

	if err := scene.AddBehaviour(struct{}{}); !errors.Is(err, ErrNotBehaviour) {
		t.Errorf("err = %v, want ErrNotBehaviour", err)
	}
	if err := scene.AddBehaviour(&recorder{}); err != nil {
		t.Errorf("err = %v", err)
	}
	if len(scene.Behaviours) != 1 {
		t.Errorf("Expected 1 behaviour, got %d", len(scene.Behaviours))
	}
}

func TestScene_FramePhases(t *testing.T) {
	var journal []string
	scene := NewScene()

	a := &lateRecorder{recorder{name: "a", journal: &journal}}
	b := &recorder{name: "b", journal: &journal}
	scene.AddBehaviour(a)
	scene.AddBehaviour(b)

	scene.Frame(1.0/60, input.State{})

	expected := []string{"a.update", "b.update", "a.late"}
	if len(journal) != len(expected) {
		t.Fatalf("journal = %v, want %v", journal, expected)
	}
	for i := range expected {
		if journal[i] != expected[i] {
			t.Errorf("journal[%d] = %s, want %s", i, journal[i], expected[i])
		}
	}
}

func TestScene_RemoveBehaviour(t *testing.T) {
	var journal []string
	scene := NewScene()
	b := &recorder{name: "b", journal: &journal}
	scene.AddBehaviour(b)
	scene.RemoveBehaviour(b)

	scene.Frame(1.0/60, input.State{})
	if len(journal) != 0 {
		t.Errorf("removed behaviour still runs: %v", journal)
	}
}

// =============================================================================
// Node Tests
// =============================================================================

func TestScene_Nodes(t *testing.T) {
	scene := NewScene()
	root := actor.NewNode("root")
	child := actor.NewNode("child")
	child.SetParent(root, false)

	scene.Add(root)
	scene.Add(root)
	scene.Add(child)
	scene.Add(nil)

	if len(scene.Roots) != 2 {
		t.Errorf("Expected 2 roots, got %d", len(scene.Roots))
	}
	if nodes := scene.Nodes(); len(nodes) != 2 {
		t.Errorf("Expected each node once, got %d", len(nodes))
	}
}

func TestScene_FrameEmitsEvents(t *testing.T) {
	scene := NewScene()
	capture := &eventCapture{}
	scene.Events.Subscribe(ON_DEACTIVATE, capture.capture)

	node := actor.NewNode("node")
	scene.Add(node)

	scene.Frame(1.0/60, input.State{})
	if capture.count() != 0 {
		t.Errorf("Expected no events on first frame, got %d", capture.count())
	}

	scene.AddBehaviour(&hider{node: node})
	scene.Frame(1.0/60, input.State{})
	if capture.count() != 1 {
		t.Errorf("Expected 1 ON_DEACTIVATE event, got %d", capture.count())
	}
}

func TestScene_Remove(t *testing.T) {
	scene := NewScene()
	node := actor.NewNode("node")
	scene.Add(node)
	scene.Frame(1.0/60, input.State{})

	scene.Remove(node)
	if len(scene.Roots) != 0 {
		t.Errorf("Expected no roots, got %d", len(scene.Roots))
	}
	if _, ok := scene.Events.nodeStates[node]; ok {
		t.Error("removed node state should be forgotten")
	}
}
