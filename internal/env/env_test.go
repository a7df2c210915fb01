package env

import "testing"

func TestParseCullerBackendUnknownFallsBackToAuto(t *testing.T) {
	if got := parseCullerBackend("bogus"); got != CullerBackendAuto {
		t.Fatalf("parseCullerBackend(bogus) = %v, want %v", got, CullerBackendAuto)
	}
	if got := parseCullerBackend("GPU"); got != CullerBackendGPU {
		t.Fatalf("parseCullerBackend(GPU) = %v, want %v", got, CullerBackendGPU)
	}
}

func TestParseIntDefaultInvalidFallsBack(t *testing.T) {
	if got := parseIntDefault("", 256); got != 256 {
		t.Fatalf("parseIntDefault(empty) = %d, want 256", got)
	}
	if got := parseIntDefault("not-a-number", 256); got != 256 {
		t.Fatalf("parseIntDefault(garbage) = %d, want 256", got)
	}
	if got := parseIntDefault("-5", 256); got != 256 {
		t.Fatalf("parseIntDefault(-5) = %d, want 256 (non-positive rejected)", got)
	}
	if got := parseIntDefault("64", 256); got != 64 {
		t.Fatalf("parseIntDefault(64) = %d, want 64", got)
	}
}

func TestParseBool(t *testing.T) {
	if parseBool("") {
		t.Fatal("parseBool(empty) = true, want false")
	}
	if !parseBool("1") {
		t.Fatal("parseBool(1) = false, want true")
	}
	if !parseBool("true") {
		t.Fatal("parseBool(true) = false, want true")
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.PhaseFFrames != 256 && cfg.PhaseFFrames <= 0 {
		t.Fatalf("PhaseFFrames = %d, want positive default", cfg.PhaseFFrames)
	}
}
