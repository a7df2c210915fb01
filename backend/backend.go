// Package backend abstracts the GPU device, swapchain, command-buffer, and
// query-pool primitives the render-path engine's upper layers consume, so
// the same compiled plan can run against a software fallback or a real
// wgpu-backed device.
package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// ImageFormat abstracts over backend-specific pixel formats; each device
// picks a concrete format for a class at runtime from its candidate list.
type ImageFormat string

// Abstract image format classes, per spec.md §6. Each device picks a
// concrete GPU format for every class from its own candidate list.
const (
	FormatDepth     ImageFormat = "depth"
	FormatColorHDR  ImageFormat = "color_hdr"
	FormatColorLDR  ImageFormat = "color_ldr"
	FormatSingleCh  ImageFormat = "single_channel"
)

// SwapchainInfo describes the current swapchain state. Generation
// increments whenever the images, extent, or format change, signaling the
// executor to recreate render targets before the next begin-frame.
type SwapchainInfo struct {
	Width, Height int
	Format        ImageFormat
	Generation    uint64
}

// QueryPoolResult is one completed GPU timestamp query pair's elapsed time,
// in nanoseconds. Unavailable (e.g. no timestamp support) is represented by
// the Unavailable field being true.
type QueryPoolResult struct {
	PassIndex   int
	ElapsedNs   int64
	Unavailable bool
}

// Device is the contract a rendering backend must satisfy: device/queue
// handle, swapchain access, command-buffer submission, and a query pool
// for per-pass GPU timing. Backends must be registered via Register() and
// selected via Get() or Default().
type Device interface {
	// Name returns the backend identifier (e.g., "software", "wgpu").
	Name() string

	// Init initializes the device. Must be called before any other method.
	Init() error

	// Close releases all device resources. The device must not be used
	// after Close is called.
	Close()

	// Swapchain returns the current swapchain state.
	Swapchain() SwapchainInfo

	// AcquireNextImage blocks until the next swapchain image is available,
	// returning its index and whether the swapchain generation changed
	// since the last acquire (requiring target recreation).
	AcquireNextImage() (imageIndex int, generationChanged bool, err error)

	// Submit submits the recorded primary command buffer for frame slot
	// and presents imageIndex.
	Submit(slot, imageIndex int) error

	// CollectTimings returns the GPU timing results recorded by the query
	// pool belonging to frame slot, from its last completed use.
	CollectTimings(slot int) []QueryPoolResult

	// SupportsSynchronization2 reports whether the device exposes the
	// synchronization-2-style barrier feature the barrier planner assumes;
	// backends without it must translate BarrierPlan edges to legacy
	// barriers themselves.
	SupportsSynchronization2() bool
}

// DeviceFactory creates a new Device instance.
type DeviceFactory func() Device
