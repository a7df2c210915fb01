// Package instance defines scene object instances: a small closed set of
// mesh primitives, material parameters, and local bounds used by the
// culling engine.
package instance

import "github.com/shsengine/shs/internal/vecmath"

// MeshKind is the closed set of primitive meshes an instance may reference,
// carried from the original source's Instance::MeshKind enum (see
// SPEC_FULL.md supplemented features).
type MeshKind uint8

// Standard mesh kinds.
const (
	Sphere MeshKind = iota
	Box
	Cone
	Capsule
	Cylinder
)

// Material holds an instance's PBR material parameters.
type Material struct {
	BaseColor vecmath.Vec4
	Metallic  float32
	Roughness float32
	AO        float32
}

// Bounds is an instance's local-space bounding volume, transformed by the
// instance's model matrix for per-frame culling.
type Bounds struct {
	AABBMin, AABBMax vecmath.Vec3
	SphereCenter     vecmath.Vec3
	SphereRadius     float32
}

// Instance is one scene object.
type Instance struct {
	BaseTransform vecmath.Mat4
	ModelMatrix   vecmath.Mat4 // recomputed per frame from BaseTransform + animation
	Mesh          MeshKind
	Material      Material
	Bounds        Bounds
}

// TransformedAABB returns the instance's AABB in world space, by
// transforming the eight corners of the local AABB by ModelMatrix. This is
// a conservative (not tight) world AABB, sufficient for frustum/occlusion
// culling.
func (i Instance) TransformedAABB() (min, max vecmath.Vec3) {
	corners := [8]vecmath.Vec3{
		{X: i.Bounds.AABBMin.X, Y: i.Bounds.AABBMin.Y, Z: i.Bounds.AABBMin.Z},
		{X: i.Bounds.AABBMax.X, Y: i.Bounds.AABBMin.Y, Z: i.Bounds.AABBMin.Z},
		{X: i.Bounds.AABBMin.X, Y: i.Bounds.AABBMax.Y, Z: i.Bounds.AABBMin.Z},
		{X: i.Bounds.AABBMax.X, Y: i.Bounds.AABBMax.Y, Z: i.Bounds.AABBMin.Z},
		{X: i.Bounds.AABBMin.X, Y: i.Bounds.AABBMin.Y, Z: i.Bounds.AABBMax.Z},
		{X: i.Bounds.AABBMax.X, Y: i.Bounds.AABBMin.Y, Z: i.Bounds.AABBMax.Z},
		{X: i.Bounds.AABBMin.X, Y: i.Bounds.AABBMax.Y, Z: i.Bounds.AABBMax.Z},
		{X: i.Bounds.AABBMax.X, Y: i.Bounds.AABBMax.Y, Z: i.Bounds.AABBMax.Z},
	}
	first := transformPoint(i.ModelMatrix, corners[0])
	min, max = first, first
	for _, c := range corners[1:] {
		p := transformPoint(i.ModelMatrix, c)
		min = vecmath.Vec3{X: minf(min.X, p.X), Y: minf(min.Y, p.Y), Z: minf(min.Z, p.Z)}
		max = vecmath.Vec3{X: maxf(max.X, p.X), Y: maxf(max.Y, p.Y), Z: maxf(max.Z, p.Z)}
	}
	return min, max
}

func transformPoint(m vecmath.Mat4, p vecmath.Vec3) vecmath.Vec3 {
	return vecmath.Vec3{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
