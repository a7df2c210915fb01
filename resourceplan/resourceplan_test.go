package resourceplan

import (
	"testing"

	"github.com/shsengine/shs/pass"
	"github.com/shsengine/shs/pathcompiler"
	"github.com/shsengine/shs/recipe"
)

func compileDeferredDefault(t *testing.T) pathcompiler.ExecutionPlan {
	t.Helper()
	reg := pass.NewStandardRegistry("vulkan")
	r := recipe.RenderPathRecipe{
		Name:          "composition_deferred_pbr_default",
		TechniqueMode: pass.PathDeferred,
		PassChain: []recipe.Entry{
			{ID: pass.ShadowMap, Required: true},
			{ID: pass.GBuffer, Required: true},
			{ID: pass.SSAO, Required: false},
			{ID: pass.DeferredLighting, Required: true},
			{ID: pass.Tonemap, Required: true},
		},
	}
	plan := pathcompiler.Compile(r, reg)
	if !plan.Valid {
		t.Fatalf("compile failed: %v", plan.Errors)
	}
	return plan
}

func TestPlanEveryConsumerHasEarlierProducer(t *testing.T) {
	ep := compileDeferredDefault(t)
	rp := Plan(ep, Config{SurfaceWidth: 1280, SurfaceHeight: 720, TileSize: 16, ShadowMapSize: 2048})
	if len(rp.Errors) != 0 {
		t.Fatalf("Plan() errors = %v, want none", rp.Errors)
	}

	for _, b := range rp.Bindings {
		for _, readID := range b.Reads {
			res, ok := rp.ResourceByID(readID)
			if !ok {
				t.Fatalf("binding for pass %s reads unknown resource %d", b.PassID, readID)
			}
			if res.ProducerIndex >= b.PassIndex {
				t.Errorf("pass %s (index %d) reads resource %d produced at index %d, want strictly earlier",
					b.PassID, b.PassIndex, readID, res.ProducerIndex)
			}
		}
	}
}

func TestPlanToneMapReadsColorHDR(t *testing.T) {
	ep := compileDeferredDefault(t)
	rp := Plan(ep, Config{SurfaceWidth: 1280, SurfaceHeight: 720, TileSize: 16})

	tonePass, ok := ep.ByID(pass.Tonemap)
	if !ok {
		t.Fatal("Tonemap not in plan")
	}
	b, ok := rp.BindingFor(tonePass.Index)
	if !ok {
		t.Fatal("no binding for Tonemap")
	}
	if len(b.Reads) != 1 {
		t.Fatalf("Tonemap reads = %v, want exactly 1 (ColorHDR)", b.Reads)
	}
	res, _ := rp.ResourceByID(b.Reads[0])
	if res.Semantic != pass.ColorHDR {
		t.Errorf("Tonemap reads semantic %d, want ColorHDR", res.Semantic)
	}
}

func TestDeriveLightGridLayoutBoundary(t *testing.T) {
	l := DeriveLightGridLayout(1280, 720, 16, 0)
	if l.TileCountX != 80 || l.TileCountY != 45 {
		t.Fatalf("TileCount = (%d,%d), want (80,45)", l.TileCountX, l.TileCountY)
	}
	if l.ListCount() != 3600 {
		t.Fatalf("ListCount() = %d, want 3600", l.ListCount())
	}

	clustered := DeriveLightGridLayout(1280, 720, 16, 16)
	if got := clustered.ListCount(); got != 57600 {
		t.Fatalf("ListCount() (clustered) = %d, want 57600", got)
	}
}

func TestDeriveLightGridLayoutTileSizeOne(t *testing.T) {
	l := DeriveLightGridLayout(64, 32, 1, 0)
	if l.TileCountX != 64 || l.TileCountY != 32 {
		t.Fatalf("tile_size=1 should yield tile_count == surface extent; got (%d,%d)", l.TileCountX, l.TileCountY)
	}
}
