// Package temporal manages the TAA jitter schedule and history-image
// lifecycle: accumulation gating and invalidation when temporal
// anti-aliasing is toggled off.
package temporal

import "github.com/shsengine/shs/internal/vecmath"

// haltonBase2And3 is the 8-tap Halton(2,3) jitter sequence, matching the
// original source's fixed TAA jitter table.
var haltonBase2And3 = [8][2]float32{
	{0.5, 0.333333},
	{0.25, 0.666667},
	{0.75, 0.111111},
	{0.125, 0.444444},
	{0.625, 0.777778},
	{0.375, 0.222222},
	{0.875, 0.555556},
	{0.0625, 0.888889},
}

// Manager tracks the jitter schedule and history validity across frames.
type Manager struct {
	enabled      bool
	historyValid bool
	frameIndex   uint64
	blend        float32
}

// DefaultBlend is the history/current blend factor used once history is
// valid: 0 favors the current frame entirely, 1 favors history entirely.
const DefaultBlend = 0.9

// NewManager creates a Manager with TAA disabled and no valid history.
func NewManager() *Manager {
	return &Manager{blend: DefaultBlend}
}

// SetEnabled toggles TAA. Disabling it invalidates history immediately, per
// spec.md §8's boundary behavior: "disabling TAA while history is valid
// invalidates history next frame."
func (m *Manager) SetEnabled(enabled bool) {
	if m.enabled && !enabled {
		m.historyValid = false
	}
	m.enabled = enabled
}

// Enabled reports whether TAA is currently active.
func (m *Manager) Enabled() bool { return m.enabled }

// HistoryValid reports whether the history color image holds usable data
// from a previous frame.
func (m *Manager) HistoryValid() bool { return m.historyValid }

// Jitter returns the current frame's sub-pixel jitter offset in NDC, scaled
// by 1/surfaceWidth and 1/surfaceHeight. Returns (0,0) when TAA is disabled.
func (m *Manager) Jitter(surfaceWidth, surfaceHeight int) (x, y float32) {
	if !m.enabled || surfaceWidth <= 0 || surfaceHeight <= 0 {
		return 0, 0
	}
	h := haltonBase2And3[int(m.frameIndex)%len(haltonBase2And3)]
	jx := (h[0] - 0.5) * 2 / float32(surfaceWidth)
	jy := (h[1] - 0.5) * 2 / float32(surfaceHeight)
	return jx, jy
}

// JitterMatrix builds a jittered projection matrix: it adds the frame's NDC
// jitter offset scaled by w (the projection's z->w row) into the x and y
// output rows, so the offset survives the perspective divide.
func (m *Manager) JitterMatrix(proj vecmath.Mat4, surfaceWidth, surfaceHeight int) vecmath.Mat4 {
	jx, jy := m.Jitter(surfaceWidth, surfaceHeight)
	if jx == 0 && jy == 0 {
		return proj
	}
	jittered := proj
	// proj[11] is the z->w coefficient (column 2, row 3); x/y rows are at
	// column 2, rows 0/1 (indices 8, 9).
	jittered[8] += jx * proj[11]
	jittered[9] += jy * proj[11]
	return jittered
}

// AdvanceFrame advances the jitter schedule and, once a frame has
// completed with TAA enabled, marks history as valid for the next frame's
// accumulation.
func (m *Manager) AdvanceFrame() {
	m.frameIndex++
	if m.enabled {
		m.historyValid = true
	}
}

// Blend returns the history/current blend factor to use this frame: 0 when
// history is not yet valid (first frame after enabling TAA or a cut),
// DefaultBlend otherwise.
func (m *Manager) Blend() float32 {
	if !m.enabled || !m.historyValid {
		return 0
	}
	return m.blend
}

// SetBlend overrides the steady-state history blend factor.
func (m *Manager) SetBlend(b float32) { m.blend = b }

// Params is the packed (enabled, history_valid, blend, reserved) tuple
// consumed by the camera UBO, per spec.md §3's CameraUBO temporal params.
type Params struct {
	Enabled      uint32
	HistoryValid uint32
	Blend        float32
	_reserved    float32
}

// ToParams packs the manager's current state into the UBO-facing Params.
func (m *Manager) ToParams() Params {
	var enabled, valid uint32
	if m.enabled {
		enabled = 1
	}
	if m.historyValid {
		valid = 1
	}
	return Params{Enabled: enabled, HistoryValid: valid, Blend: m.Blend()}
}
