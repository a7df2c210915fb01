package cull

import (
	"testing"

	"github.com/shsengine/shs/internal/vecmath"
	"github.com/shsengine/shs/light"
)

// unitCubeCell returns an axis-aligned cell bounding [-1,1]^3.
func unitCubeCell() Cell {
	return Cell{Planes: [6]Plane{
		{Normal: vecmath.Vec3{X: 1}, D: 1},  // x >= -1
		{Normal: vecmath.Vec3{X: -1}, D: 1}, // x <= 1
		{Normal: vecmath.Vec3{Y: 1}, D: 1},
		{Normal: vecmath.Vec3{Y: -1}, D: 1},
		{Normal: vecmath.Vec3{Z: 1}, D: 1},
		{Normal: vecmath.Vec3{Z: -1}, D: 1},
	}}
}

// TestClassifySphereCenterZeroRadius exercises spec.md §8 end-to-end
// scenario 6.
func TestClassifySphereCenterZeroRadius(t *testing.T) {
	c := unitCubeCell()
	s := light.Sphere{Center: vecmath.Vec3{}, Radius: 0}
	if got := ClassifySphere(c, s); got != Inside {
		t.Fatalf("ClassifySphere() = %v, want Inside", got)
	}
}

func TestClassifySphereOutside(t *testing.T) {
	c := unitCubeCell()
	s := light.Sphere{Center: vecmath.Vec3{X: 100}, Radius: 1}
	if got := ClassifySphere(c, s); got != Outside {
		t.Fatalf("ClassifySphere() = %v, want Outside", got)
	}
}

func TestClassifySphereIntersecting(t *testing.T) {
	c := unitCubeCell()
	s := light.Sphere{Center: vecmath.Vec3{X: 1}, Radius: 0.5}
	if got := ClassifySphere(c, s); got != Intersecting {
		t.Fatalf("ClassifySphere() = %v, want Intersecting", got)
	}
}

func TestClassifyAABBOutside(t *testing.T) {
	c := unitCubeCell()
	got := ClassifyAABB(c, vecmath.Vec3{X: 10, Y: 10, Z: 10}, vecmath.Vec3{X: 11, Y: 11, Z: 11})
	if got != Outside {
		t.Fatalf("ClassifyAABB() = %v, want Outside", got)
	}
}

func TestClassifyAABBInside(t *testing.T) {
	c := unitCubeCell()
	got := ClassifyAABB(c, vecmath.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, vecmath.Vec3{X: 0.5, Y: 0.5, Z: 0.5})
	if got != Inside {
		t.Fatalf("ClassifyAABB() = %v, want Inside", got)
	}
}

func TestSphereAABB(t *testing.T) {
	min, max := vecmath.Vec3{X: -1, Y: -1, Z: -1}, vecmath.Vec3{X: 1, Y: 1, Z: 1}
	hit := light.Sphere{Center: vecmath.Vec3{X: 2}, Radius: 1.5}
	if !SphereAABB(hit, min, max) {
		t.Fatal("SphereAABB() = false, want true for overlapping sphere")
	}
	miss := light.Sphere{Center: vecmath.Vec3{X: 10}, Radius: 1}
	if SphereAABB(miss, min, max) {
		t.Fatal("SphereAABB() = true, want false for distant sphere")
	}
}

func TestPrefilterLightsRejectsNoHit(t *testing.T) {
	lights := []light.Light{
		{Kind: light.Point, Position: vecmath.Vec3{X: 100}, Range: 1},
		{Kind: light.Point, Position: vecmath.Vec3{}, Range: 5},
	}
	vis := []LightVisibility{{Visible: true}, {Visible: true}}
	aabbs := [][2]vecmath.Vec3{{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}}}

	PrefilterLights(lights, vis, aabbs)

	if vis[0].Visible || !vis[0].PrefilteredOut {
		t.Fatalf("light 0 (far from all instances) vis=%+v, want rejected", vis[0])
	}
	if !vis[1].Visible || vis[1].PrefilteredOut {
		t.Fatalf("light 1 (intersects instance) vis=%+v, want visible", vis[1])
	}
}
