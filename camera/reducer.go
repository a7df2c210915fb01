// Package camera implements the pure input->camera reduction (the Runtime
// State Reducer collaborator, spec.md §2) and the per-frame CameraUBO data
// the executor uploads.
package camera

import "github.com/shsengine/shs/internal/vecmath"

// RuntimeInputLatch is the raw input state the window/event system
// collaborator produces each frame; the reducer never reads the event
// source itself.
type RuntimeInputLatch struct {
	MoveForward, MoveBack   bool
	MoveLeft, MoveRight     bool
	MoveUp, MoveDown        bool
	LookDeltaX, LookDeltaY  float32
	Quit                    bool
}

// RuntimeState is the reducer's output: the camera's pose.
type RuntimeState struct {
	Position   vecmath.Vec3
	Yaw, Pitch float32
	Time       float32
}

// ReduceConfig holds the tunables the reducer needs beyond the input/state
// pair, so Reduce itself stays pure (same inputs -> same outputs) per
// spec.md §8.
type ReduceConfig struct {
	MoveSpeed   float32
	LookSpeed   float32
	MaxPitch    float32 // radians; clamps Pitch to [-MaxPitch, MaxPitch]
}

// DefaultReduceConfig returns the engine's default movement tunables.
func DefaultReduceConfig() ReduceConfig {
	return ReduceConfig{MoveSpeed: 10, LookSpeed: 1, MaxPitch: 1.5533} // ~89 degrees
}

// Reduce computes the next RuntimeState from the previous state, the
// current input latch, and the elapsed time. Reduce is pure: identical
// arguments always produce an identical result, with no reference to wall
// clock time or other hidden state.
func Reduce(prev RuntimeState, in RuntimeInputLatch, dt float32, cfg ReduceConfig) RuntimeState {
	yaw := prev.Yaw + in.LookDeltaX*cfg.LookSpeed
	pitch := clamp(prev.Pitch+in.LookDeltaY*cfg.LookSpeed, -cfg.MaxPitch, cfg.MaxPitch)

	forward := vecmath.Vec3FromYawPitch(yaw, pitch)
	worldUp := vecmath.Vec3{Y: 1}
	right := forward.Cross(worldUp).Normalize()

	var move vecmath.Vec3
	if in.MoveForward {
		move = move.Add(forward)
	}
	if in.MoveBack {
		move = move.Sub(forward)
	}
	if in.MoveRight {
		move = move.Add(right)
	}
	if in.MoveLeft {
		move = move.Sub(right)
	}
	if in.MoveUp {
		move = move.Add(worldUp)
	}
	if in.MoveDown {
		move = move.Sub(worldUp)
	}

	pos := prev.Position.Add(move.Scale(cfg.MoveSpeed * dt))

	return RuntimeState{
		Position: pos,
		Yaw:      yaw,
		Pitch:    pitch,
		Time:     prev.Time + dt,
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
