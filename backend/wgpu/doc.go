// Package wgpu implements the GPU device backend using gogpu/wgpu.
//
// It requests an adapter, a device, and its queue through gogpu/wgpu's core
// and types packages, supporting Vulkan, Metal, and DX12 depending on
// platform. It creates no surface: the swapchain it reports is a nominal
// extent with a rotating logical image index. Registration happens on
// import:
//
//	import _ "github.com/shsengine/shs/backend/wgpu"
package wgpu
