// Package backend provides a pluggable GPU device abstraction.
//
// # Backend Registration
//
// Backends register a DeviceFactory via init():
//
//	import _ "github.com/shsengine/shs/backend/wgpu"
//
// # Backend Selection
//
// Use Default() to get the best available device, or Get() to request one
// by name. Default and Get do not read internal/env's
// SHS_VK_CULLER_BACKEND; cmd/shsdemo reads it to choose the wgpu device
// over the software one. No package in this module uses it to select a
// light binner.
//
//	d := backend.Default()
//	if err := d.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer d.Close()
//
// # Available Backends
//
// - "software": CPU fallback, always available.
// - "wgpu": GPU-accelerated via gogpu/wgpu.
package backend
