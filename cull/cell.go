// Package cull implements frustum and software-occlusion culling for scene
// instances and lights, plus the light-vs-object prefilter.
package cull

import (
	"github.com/shsengine/shs/instance"
	"github.com/shsengine/shs/internal/vecmath"
	"github.com/shsengine/shs/light"
)

// CellKind tags the shape a Cell represents.
type CellKind uint8

// Standard cell kinds.
const (
	CameraFrustumPerspective CellKind = iota
	CascadeFrustum
	SpotShadowFrustum
	PointShadowFaceFrustum
	ClusterCell
)

// Plane is a half-space boundary: points p with Normal.Dot(p)+D >= 0 are on
// the inside.
type Plane struct {
	Normal vecmath.Vec3
	D      float32
}

// SignedDistance returns the signed distance from p to the plane; positive
// values are on the inside.
func (pl Plane) SignedDistance(p vecmath.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Cell is a convex region expressed as six plane equations, used to
// classify bounds for culling. A cell with fewer than six meaningful
// planes may leave the remainder as always-inside planes (Normal zero).
type Cell struct {
	Planes [6]Plane
	Kind   CellKind
}

// Classification is the result of testing a bound against a Cell.
type Classification uint8

// Standard classifications.
const (
	Inside Classification = iota
	Outside
	Intersecting
)

// ClassifySphere classifies a bounding sphere against the cell.
func ClassifySphere(c Cell, s light.Sphere) Classification {
	intersecting := false
	for _, p := range c.Planes {
		if isZeroPlane(p) {
			continue
		}
		d := p.SignedDistance(s.Center)
		if d < -s.Radius {
			return Outside
		}
		if d < s.Radius {
			intersecting = true
		}
	}
	if intersecting {
		return Intersecting
	}
	return Inside
}

// ClassifyAABB classifies an axis-aligned bounding box against the cell,
// using the standard positive-vertex test per plane.
func ClassifyAABB(c Cell, min, max vecmath.Vec3) Classification {
	intersecting := false
	for _, p := range c.Planes {
		if isZeroPlane(p) {
			continue
		}
		pos := positiveVertex(p.Normal, min, max)
		neg := negativeVertex(p.Normal, min, max)

		if p.SignedDistance(pos) < 0 {
			return Outside
		}
		if p.SignedDistance(neg) < 0 {
			intersecting = true
		}
	}
	if intersecting {
		return Intersecting
	}
	return Inside
}

// SphereAABB reports whether a bounding sphere intersects an AABB,
// conservative and ambiguity-free (exact test): used by the light
// prefilter to check a light's culling sphere against an accepted
// instance's bounds.
func SphereAABB(s light.Sphere, min, max vecmath.Vec3) bool {
	closest := vecmath.Vec3{
		X: clampf(s.Center.X, min.X, max.X),
		Y: clampf(s.Center.Y, min.Y, max.Y),
		Z: clampf(s.Center.Z, min.Z, max.Z),
	}
	d := s.Center.Sub(closest)
	return d.Dot(d) <= s.Radius*s.Radius
}

// AABBAABB reports whether two AABBs overlap.
func AABBAABB(aMin, aMax, bMin, bMax vecmath.Vec3) bool {
	return aMin.X <= bMax.X && aMax.X >= bMin.X &&
		aMin.Y <= bMax.Y && aMax.Y >= bMin.Y &&
		aMin.Z <= bMax.Z && aMax.Z >= bMin.Z
}

func isZeroPlane(p Plane) bool {
	return p.Normal.X == 0 && p.Normal.Y == 0 && p.Normal.Z == 0
}

func positiveVertex(n, min, max vecmath.Vec3) vecmath.Vec3 {
	v := min
	if n.X >= 0 {
		v.X = max.X
	}
	if n.Y >= 0 {
		v.Y = max.Y
	}
	if n.Z >= 0 {
		v.Z = max.Z
	}
	return v
}

func negativeVertex(n, min, max vecmath.Vec3) vecmath.Vec3 {
	v := max
	if n.X >= 0 {
		v.X = min.X
	}
	if n.Y >= 0 {
		v.Y = min.Y
	}
	if n.Z >= 0 {
		v.Z = min.Z
	}
	return v
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InstanceVisibility reports whether instance i, with local bounds
// transformed by its model matrix, is visible against cell. Ambiguous
// (Intersecting) results are treated as visible, per spec.md §4.4's
// failure policy.
func InstanceVisibility(c Cell, inst instance.Instance) bool {
	min, max := inst.TransformedAABB()
	return ClassifyAABB(c, min, max) != Outside
}

// CullInstances returns, for each instance, whether it is visible, and the
// indices of the visible subset in original order.
func CullInstances(c Cell, instances []instance.Instance) (visible []bool, indices []int) {
	visible = make([]bool, len(instances))
	for i, inst := range instances {
		v := InstanceVisibility(c, inst)
		visible[i] = v
		if v {
			indices = append(indices, i)
		}
	}
	return visible, indices
}

// LightVisibility is the culling engine's verdict for a single light.
type LightVisibility struct {
	Visible        bool
	Occluded       bool
	PrefilteredOut bool
}

// CullLights classifies each light's bounding sphere against cell, and
// returns a LightVisibility per light in input order. Occlusion/prefilter
// are left false here; PrefilterLights augments this with the
// light-vs-object prefilter once instance culling has run.
func CullLights(c Cell, lights []light.Light) []LightVisibility {
	out := make([]LightVisibility, len(lights))
	for i, l := range lights {
		visible := ClassifySphere(c, l.BoundingSphere()) != Outside
		out[i] = LightVisibility{Visible: visible}
	}
	return out
}

// PrefilterLights rejects lights whose culling sphere intersects no
// accepted scene instance's AABB. visLights must align index-for-index
// with lights; only entries already marked Visible are tested.
func PrefilterLights(lights []light.Light, visLights []LightVisibility, acceptedAABBs [][2]vecmath.Vec3) {
	for i, l := range lights {
		if !visLights[i].Visible {
			continue
		}
		sphere := l.BoundingSphere()
		anyHit := false
		for _, bounds := range acceptedAABBs {
			if SphereAABB(sphere, bounds[0], bounds[1]) {
				anyHit = true
				break
			}
		}
		if !anyHit {
			visLights[i].PrefilteredOut = true
			visLights[i].Visible = false
		}
	}
}
