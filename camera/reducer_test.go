package camera

import (
	"math"
	"testing"

	"github.com/shsengine/shs/internal/vecmath"
)

// TestReduceForwardMovement exercises spec.md §8 end-to-end scenario 5:
// yaw=pi, pitch=0, forward=1, dt=1s, speed=10.
func TestReduceForwardMovement(t *testing.T) {
	prev := RuntimeState{Position: vecmath.Vec3{X: 1, Y: 2, Z: 3}, Yaw: math.Pi, Pitch: 0}
	cfg := ReduceConfig{MoveSpeed: 10, LookSpeed: 1, MaxPitch: 1.5}

	next := Reduce(prev, RuntimeInputLatch{MoveForward: true}, 1.0, cfg)

	forward := vecmath.Vec3FromYawPitch(math.Pi, 0)
	want := prev.Position.Add(forward.Scale(10))

	if !closeVec(next.Position, want, 1e-3) {
		t.Fatalf("Reduce() position = %v, want %v", next.Position, want)
	}
}

func TestReducePure(t *testing.T) {
	prev := RuntimeState{Position: vecmath.Vec3{X: 1, Y: 2, Z: 3}, Yaw: 0.3, Pitch: 0.1, Time: 4}
	in := RuntimeInputLatch{MoveForward: true, LookDeltaX: 0.1, LookDeltaY: -0.05}
	cfg := DefaultReduceConfig()

	a := Reduce(prev, in, 0.016, cfg)
	b := Reduce(prev, in, 0.016, cfg)

	if a != b {
		t.Fatalf("Reduce() is not pure: %v != %v for identical inputs", a, b)
	}
}

func TestReducePitchClamped(t *testing.T) {
	prev := RuntimeState{Pitch: 1.0}
	cfg := ReduceConfig{MoveSpeed: 1, LookSpeed: 1, MaxPitch: 1.2}
	next := Reduce(prev, RuntimeInputLatch{LookDeltaY: 10}, 1, cfg)
	if next.Pitch != cfg.MaxPitch {
		t.Fatalf("Pitch = %v, want clamped to MaxPitch %v", next.Pitch, cfg.MaxPitch)
	}
}

func closeVec(a, b vecmath.Vec3, eps float32) bool {
	return absf(a.X-b.X) < eps && absf(a.Y-b.Y) < eps && absf(a.Z-b.Z) < eps
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
