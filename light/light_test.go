package light

import (
	"testing"
	"unsafe"

	"github.com/shsengine/shs/internal/vecmath"
)

func TestBoundingSpherePoint(t *testing.T) {
	l := Light{Kind: Point, Position: vecmath.Vec3{X: 1, Y: 2, Z: 3}, Range: 5}
	s := l.BoundingSphere()
	if s.Center != l.Position || s.Radius != 5 {
		t.Fatalf("BoundingSphere() = %+v, want center=%+v radius=5", s, l.Position)
	}
}

func TestBoundingSphereRectAreaWiderThanRange(t *testing.T) {
	l := Light{Kind: RectArea, Range: 5, RectHalfW: 3, RectHalfH: 4}
	s := l.BoundingSphere()
	if s.Radius <= 5 {
		t.Fatalf("RectArea bounding sphere radius = %v, want > range (5) to cover rect extent", s.Radius)
	}
}

func TestBoundingAABBContainsSphere(t *testing.T) {
	l := Light{Kind: Point, Position: vecmath.Vec3{X: 10, Y: 0, Z: 0}, Range: 2}
	aabb := l.BoundingAABB()
	if aabb.Min.X > 8 || aabb.Max.X < 12 {
		t.Fatalf("BoundingAABB() = %+v, want to contain [8,12] on X", aabb)
	}
}

func TestShadowGPUDataAlignment(t *testing.T) {
	var d ShadowGPUData
	size := int(unsafe.Sizeof(d))
	if size%16 != 0 {
		t.Fatalf("ShadowGPUData size = %d bytes, want a multiple of 16 for std430 layout", size)
	}
}
