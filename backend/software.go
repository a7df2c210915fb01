package backend

import "sync/atomic"

// SoftwareDevice is the CPU fallback device: no real swapchain or GPU
// queue, used when no hardware backend is available or when the user has
// explicitly requested it. The frame executor still runs against it so
// headless soak/benchmark runs (Phase F/G) work without a display.
type SoftwareDevice struct {
	initialized bool
	generation  uint64
	width       int
	height      int
	frameIndex  atomic.Uint64
}

func init() {
	Register(Software, func() Device { return &SoftwareDevice{width: 1280, height: 720} })
}

// NewSoftwareDevice creates a software fallback device with the given
// nominal swapchain extent.
func NewSoftwareDevice(width, height int) *SoftwareDevice {
	return &SoftwareDevice{width: width, height: height}
}

// Name returns the backend identifier.
func (d *SoftwareDevice) Name() string { return Software }

// Init marks the device ready. The software device has no external
// resources to acquire.
func (d *SoftwareDevice) Init() error {
	d.initialized = true
	d.generation = 1
	return nil
}

// Close releases the device. A no-op for the software fallback.
func (d *SoftwareDevice) Close() { d.initialized = false }

// Swapchain returns the device's fixed nominal extent.
func (d *SoftwareDevice) Swapchain() SwapchainInfo {
	return SwapchainInfo{Width: d.width, Height: d.height, Format: FormatColorLDR, Generation: d.generation}
}

// AcquireNextImage always succeeds immediately with a single logical
// image and never reports a generation change.
func (d *SoftwareDevice) AcquireNextImage() (int, bool, error) {
	if !d.initialized {
		return 0, false, ErrNotInitialized
	}
	return 0, false, nil
}

// Submit is a no-op: there is nothing to present.
func (d *SoftwareDevice) Submit(slot, imageIndex int) error {
	if !d.initialized {
		return ErrNotInitialized
	}
	d.frameIndex.Add(1)
	return nil
}

// CollectTimings reports no GPU timings: the software device has no query
// pool, per spec.md §7's "query pool unavailability (timing disabled)".
func (d *SoftwareDevice) CollectTimings(slot int) []QueryPoolResult { return nil }

// SupportsSynchronization2 reports false: the software device has no real
// barriers to translate.
func (d *SoftwareDevice) SupportsSynchronization2() bool { return false }
