// Package light defines the analytical light types the culling engine and
// light binner operate over: a tagged-variant sum type (Point, Spot,
// RectArea, TubeArea) with a shared header, per spec.md §3's "Polymorphism
// in lights" design note (prefer tagged variants over inheritance).
package light

import "github.com/shsengine/shs/internal/vecmath"

// Kind tags which variant of Light's type-specific fields are valid.
type Kind uint8

// Standard light kinds.
const (
	Point Kind = iota
	Spot
	RectArea
	TubeArea
)

// Attenuation selects the falloff model applied to a light's intensity
// over range.
type Attenuation uint8

// Standard attenuation models.
const (
	AttenuationInverseSquare Attenuation = iota
	AttenuationLinear
	AttenuationSmoothWindowed
)

// Flags is a bitmask of per-light runtime toggles.
type Flags uint32

// Standard flags.
const (
	FlagCastsShadow Flags = 1 << 0
	FlagEnabled     Flags = 1 << 1
)

// Light is a tagged-variant analytical light. Common attributes are always
// valid; only the fields named after Kind are meaningful.
type Light struct {
	Kind Kind

	Position    vecmath.Vec3
	Range       float32
	Color       vecmath.Vec3
	Intensity   float32
	Attenuation Attenuation
	AttenParams vecmath.Vec4
	Flags       Flags

	// Spot-specific.
	SpotDirection vecmath.Vec3
	InnerCone     float32 // radians
	OuterCone     float32 // radians

	// RectArea-specific.
	RectRight  vecmath.Vec3
	RectHalfW  float32
	RectHalfH  float32

	// TubeArea-specific.
	TubeAxis   vecmath.Vec3
	TubeHalfLen float32
	TubeRadius  float32
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max vecmath.Vec3
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center vecmath.Vec3
	Radius float32
}

// areaProxyFOV is the fixed field of view used to build a conservative
// shadow-projection frustum for RectArea/TubeArea lights, which have no
// natural cone direction. Preserved as a tunable policy constant per
// spec.md §9 Open Question (a): the source's choice of a fixed FOV here is
// treated as a deliberate policy, not a defect.
const areaProxyFOV = 2.0 // radians, ~114 degrees

// BoundingSphere returns a conservative bounding sphere for the light,
// used by the culling engine to test visibility before any type-specific
// shape test.
func (l Light) BoundingSphere() Sphere {
	switch l.Kind {
	case RectArea:
		extent := vecmath.Vec3{X: l.RectHalfW, Y: l.RectHalfH, Z: 0}.Length()
		return Sphere{Center: l.Position, Radius: l.Range + extent}
	case TubeArea:
		return Sphere{Center: l.Position, Radius: l.Range + l.TubeHalfLen + l.TubeRadius}
	default:
		return Sphere{Center: l.Position, Radius: l.Range}
	}
}

// BoundingAABB returns a conservative AABB derived from the bounding
// sphere, for AABB-vs-AABB tests against scene instance bounds (see
// cull.AABBAABB). cull.PrefilterLights tests the bounding sphere instead.
func (l Light) BoundingAABB() AABB {
	s := l.BoundingSphere()
	r := vecmath.Vec3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// ShadowTechnique selects how a light's shadow is rendered.
type ShadowTechnique uint32

// Standard shadow techniques.
const (
	ShadowTechniqueNone ShadowTechnique = iota
	ShadowTechniquePCF
	ShadowTechniqueAreaProxy
)

// ShadowGPUData is the packed per-light shadow data uploaded to the GPU,
// carried from the original source's ShadowLightGPU (std430, 16-byte
// aligned: see SPEC_FULL.md supplemented features). Field order and types
// keep the struct's size a multiple of 16 bytes.
type ShadowGPUData struct {
	LightViewProj  vecmath.Mat4  // 64 bytes
	PositionRange  vecmath.Vec4  // xyz: position, w: range/far
	ShadowParams   vecmath.Vec4  // x: strength, y: bias_const, z: bias_slope, w: pcf_radius
	Technique      uint32
	LayerBase      uint32
	_reserved      uint32
	Enabled        uint32
}

// AreaProxyFOV returns the fixed field of view used for area-light proxy
// shadow projections.
func AreaProxyFOV() float32 { return areaProxyFOV }
