package marker

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// =============================================================================
// Gizmo Tests
// =============================================================================

func TestGizmos(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RelativeToTarget = false
	cfg.Presets[0].Position = mgl64.Vec3{1, 2, 3}
	cfg.Presets[0].Rotation = mgl64.Vec3{0, 90, 0}
	cfg.Presets[0].Scale = mgl64.Vec3{4, 4, 4}

	p := New(nil, cfg)
	lines := p.Gizmos()

	if len(lines) != 3*DefaultPresetCount {
		t.Fatalf("Expected %d lines, got %d", 3*DefaultPresetCount, len(lines))
	}

	tests := []struct {
		name string
		line GizmoLine
		axis TargetAxis
		to   mgl64.Vec3
	}{
		{"right", lines[0], TargetRight, mgl64.Vec3{1, 2, 2.8}},
		{"up", lines[1], TargetUp, mgl64.Vec3{1, 2.2, 3}},
		{"forward", lines[2], TargetForward, mgl64.Vec3{1.2, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.line.Axis != tt.axis {
				t.Errorf("Axis = %v, expected %v", tt.line.Axis, tt.axis)
			}
			if !vec3Equal(tt.line.From, mgl64.Vec3{1, 2, 3}, 1e-9) {
				t.Errorf("From = %v, expected the marker position", tt.line.From)
			}
			if !vec3Equal(tt.line.To, tt.to, 1e-9) {
				t.Errorf("To = %v, expected %v", tt.line.To, tt.to)
			}
		})
	}
}

func TestGizmos_HiddenMarkers(t *testing.T) {
	p := New(nil, DefaultConfig())
	p.HideAll()

	if got := len(p.Gizmos()); got != 3*DefaultPresetCount {
		t.Errorf("Expected lines for hidden markers too, got %d", got)
	}
}
