// Package env parses the runtime environment variables that steer
// optional subsystems without requiring a recompiled recipe: backend
// selection for the GPU culler, and the Phase F/G/I bench harnesses.
package env

import (
	"os"
	"strconv"
	"strings"
)

// CullerBackend is the parsed value of SHS_VK_CULLER_BACKEND. The cull and
// lightbin packages do not read it; cmd/shsdemo uses it to choose its
// rendering device.
type CullerBackend string

// Supported culler backends.
const (
	CullerBackendAuto     CullerBackend = "auto"
	CullerBackendGPU      CullerBackend = "gpu"
	CullerBackendSoftware CullerBackend = "software"
)

// RuntimeConfig is the parsed view of the process environment, read once
// at startup. Unset variables take their documented defaults.
type RuntimeConfig struct {
	// CullerBackend comes from SHS_VK_CULLER_BACKEND.
	CullerBackend CullerBackend

	// PhaseF enables the composition benchmark harness (SHS_PHASE_F).
	PhaseF bool
	// PhaseFFrames is the frame count for the Phase F benchmark
	// (SHS_PHASE_F_FRAMES), defaulting to 256 when unset or invalid.
	PhaseFFrames int
	// PhaseFSnapshot enables periodic PPM snapshot capture during the
	// Phase F run (SHS_PHASE_F_SNAPSHOT).
	PhaseFSnapshot bool

	// PhaseG enables soak-mode execution (SHS_PHASE_G).
	PhaseG bool
	// PhaseGDuration is the soak duration in seconds (SHS_PHASE_G_DURATION_S),
	// defaulting to 300 when unset or invalid.
	PhaseGDuration int

	// PhaseI enables the GPU-versus-software culling parity report
	// (SHS_PHASE_I).
	PhaseI bool
}

// Load reads and parses the current process environment. It never
// returns an error: malformed values fall back to their documented
// defaults, matching the original tool's permissive env parsing.
func Load() RuntimeConfig {
	return RuntimeConfig{
		CullerBackend:  parseCullerBackend(os.Getenv("SHS_VK_CULLER_BACKEND")),
		PhaseF:         parseBool(os.Getenv("SHS_PHASE_F")),
		PhaseFFrames:   parseIntDefault(os.Getenv("SHS_PHASE_F_FRAMES"), 256),
		PhaseFSnapshot: parseBool(os.Getenv("SHS_PHASE_F_SNAPSHOT")),
		PhaseG:         parseBool(os.Getenv("SHS_PHASE_G")),
		PhaseGDuration: parseIntDefault(os.Getenv("SHS_PHASE_G_DURATION_S"), 300),
		PhaseI:         parseBool(os.Getenv("SHS_PHASE_I")),
	}
}

func parseCullerBackend(s string) CullerBackend {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(CullerBackendGPU):
		return CullerBackendGPU
	case string(CullerBackendSoftware):
		return CullerBackendSoftware
	default:
		return CullerBackendAuto
	}
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}

func parseIntDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
