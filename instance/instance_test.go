package instance

import (
	"testing"

	"github.com/shsengine/shs/internal/vecmath"
)

func TestTransformedAABBIdentity(t *testing.T) {
	inst := Instance{
		ModelMatrix: vecmath.Identity4(),
		Bounds: Bounds{
			AABBMin: vecmath.Vec3{X: -1, Y: -1, Z: -1},
			AABBMax: vecmath.Vec3{X: 1, Y: 1, Z: 1},
		},
	}
	min, max := inst.TransformedAABB()
	if min != (vecmath.Vec3{X: -1, Y: -1, Z: -1}) || max != (vecmath.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Fatalf("TransformedAABB() = (%v,%v), want unchanged under identity transform", min, max)
	}
}

func TestTransformedAABBTranslated(t *testing.T) {
	inst := Instance{
		ModelMatrix: vecmath.Translation(vecmath.Vec3{X: 5, Y: 0, Z: 0}),
		Bounds: Bounds{
			AABBMin: vecmath.Vec3{X: -1, Y: -1, Z: -1},
			AABBMax: vecmath.Vec3{X: 1, Y: 1, Z: 1},
		},
	}
	min, max := inst.TransformedAABB()
	if min.X != 4 || max.X != 6 {
		t.Fatalf("TransformedAABB() X range = [%v,%v], want [4,6]", min.X, max.X)
	}
}
