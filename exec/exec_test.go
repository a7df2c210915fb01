package exec

import (
	"sync"
	"testing"

	"github.com/shsengine/shs/barrierplan"
	"github.com/shsengine/shs/pass"
	"github.com/shsengine/shs/pathcompiler"
	"github.com/shsengine/shs/recipe"
	"github.com/shsengine/shs/resourceplan"
)

func testPlans(t *testing.T) (pathcompiler.ExecutionPlan, barrierplan.BarrierPlan, *pass.Registry) {
	t.Helper()
	reg := pass.NewStandardRegistry("software")
	r, _, err := recipe.RenderCompositionRecipe{
		Name:      "composition_deferred_pbr_default",
		Backend:   recipe.BackendSoftware,
		Path:      recipe.PathPresetDeferred,
		Technique: recipe.TechniquePBR,
		PostStack: recipe.PostStackDefault,
	}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	ep := pathcompiler.Compile(r, reg)
	if !ep.Valid {
		t.Fatalf("compile errors: %v", ep.Errors)
	}
	return ep, barrierplan.BarrierPlan{}, reg
}

func TestClampWorkers(t *testing.T) {
	if got := clampWorkers(0); got < minWorkers || got > maxWorkers {
		t.Fatalf("clampWorkers(0) = %d, out of [%d,%d]", got, minWorkers, maxWorkers)
	}
	if got := clampWorkers(100); got != maxWorkers {
		t.Fatalf("clampWorkers(100) = %d, want %d", got, maxWorkers)
	}
	if got := clampWorkers(-1); got < minWorkers {
		t.Fatalf("clampWorkers(-1) = %d, want >= %d", got, minWorkers)
	}
}

func TestBeginFrameRotatesSlot(t *testing.T) {
	ep, bp, reg := testPlans(t)
	e := NewExecutor(reg, 2, nil)
	defer e.Close()
	e.SetPlan(ep, bp)

	f1 := e.BeginFrame()
	f2 := e.BeginFrame()
	if f1.Slot == f2.Slot {
		t.Fatalf("consecutive frames got the same slot %d", f1.Slot)
	}
	if f2.Index != f1.Index+1 {
		t.Fatalf("frame index did not advance: %d -> %d", f1.Index, f2.Index)
	}
}

func TestUnhandledPassIsNoOpNotError(t *testing.T) {
	ep, bp, reg := testPlans(t)
	e := NewExecutor(reg, 1, nil)
	defer e.Close()
	e.SetPlan(ep, bp)

	if err := e.RunFrame(e.BeginFrame(), nil, func(barrierplan.Edge) {}); err != nil {
		t.Fatalf("RunFrame() error = %v, want nil (unhandled passes are no-ops)", err)
	}
}

func TestEmitBarrierFallbackCountsWhenNoEdge(t *testing.T) {
	ep, bp, reg := testPlans(t)
	e := NewExecutor(reg, 1, nil)
	defer e.Close()
	e.SetPlan(ep, bp)

	var got barrierplan.Edge
	e.EmitBarrier(pass.ShadowMap, pass.GBuffer, pass.SemanticShadowMap, func(edge barrierplan.Edge) { got = edge })

	if !got.RequiresMemoryBarrier {
		t.Fatal("fallback edge should require a memory barrier (conservative)")
	}
	if e.Telemetry().BarrierFallbacks != 1 {
		t.Fatalf("BarrierFallbacks = %d, want 1", e.Telemetry().BarrierFallbacks)
	}
}

func TestEmitBarrierOnlyOncePerTuplePerFrame(t *testing.T) {
	ep, bp, reg := testPlans(t)
	e := NewExecutor(reg, 1, nil)
	defer e.Close()
	e.SetPlan(ep, bp)

	calls := 0
	emit := func(barrierplan.Edge) { calls++ }
	e.EmitBarrier(pass.ShadowMap, pass.GBuffer, pass.SemanticShadowMap, emit)
	e.EmitBarrier(pass.ShadowMap, pass.GBuffer, pass.SemanticShadowMap, emit)
	if calls != 1 {
		t.Fatalf("emit called %d times, want 1 (dedup within a frame)", calls)
	}

	e.BeginFrame() // clears the per-frame dedup set
	e.EmitBarrier(pass.ShadowMap, pass.GBuffer, pass.SemanticShadowMap, emit)
	if calls != 2 {
		t.Fatalf("emit called %d times after new frame, want 2", calls)
	}
}

func TestDisablingTAAInvalidatesHistory(t *testing.T) {
	ep, bp, reg := testPlans(t)
	e := NewExecutor(reg, 1, nil)
	defer e.Close()

	withTAA := ep
	withTAA.Passes = append(withTAA.Passes, pathcompiler.CompiledPass{
		Index: len(ep.Passes), ID: pass.TAA, PassID: pass.TAA,
	})
	e.SetPlan(withTAA, bp)
	e.historyValid = true

	e.SetPlan(ep, bp) // ep has no TAA pass
	if e.historyValid {
		t.Fatal("history should be invalidated once TAA is no longer in the plan")
	}
}

// TestRunFrameEmitsBarrierForNonAdjacentProducer covers the deferred chain
// ShadowMap -> GBuffer -> SSAO -> DeferredLighting, where DeferredLighting
// consumes SemanticShadowMap from ShadowMap three passes back. RunFrame
// must walk the installed BarrierPlan's edges per consumer, not just the
// immediately preceding pass, per spec.md §4.6 step 8.
func TestRunFrameEmitsBarrierForNonAdjacentProducer(t *testing.T) {
	reg := pass.NewStandardRegistry("software")
	r, _, err := recipe.RenderCompositionRecipe{
		Name:      "composition_deferred_pbr_default",
		Backend:   recipe.BackendSoftware,
		Path:      recipe.PathPresetDeferred,
		Technique: recipe.TechniquePBR,
		PostStack: recipe.PostStackDefault,
	}.Resolve()
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	ep := pathcompiler.Compile(r, reg)
	if !ep.Valid {
		t.Fatalf("compile errors: %v", ep.Errors)
	}
	rp := resourceplan.Plan(ep, resourceplan.Config{SurfaceWidth: 320, SurfaceHeight: 180, TileSize: 16})
	bp := barrierplan.Plan(ep, rp)

	foundEdge := false
	for _, edge := range bp.Edges {
		if edge.ProducerID == pass.ShadowMap && edge.ConsumerID == pass.DeferredLighting && edge.Semantic == pass.SemanticShadowMap {
			foundEdge = true
		}
	}
	if !foundEdge {
		t.Fatal("barrier plan has no ShadowMap->DeferredLighting edge; test setup invalid")
	}

	e := NewExecutor(reg, 1, nil)
	defer e.Close()
	e.SetPlan(ep, bp)

	seen := false
	emit := func(edge barrierplan.Edge) {
		if edge.ProducerID == pass.ShadowMap && edge.ConsumerID == pass.DeferredLighting && edge.Semantic == pass.SemanticShadowMap {
			seen = true
		}
	}
	if err := e.RunFrame(e.BeginFrame(), nil, emit); err != nil {
		t.Fatalf("RunFrame() error = %v", err)
	}
	if !seen {
		t.Fatal("RunFrame did not emit the non-adjacent ShadowMap->DeferredLighting barrier")
	}
	if e.Telemetry().BarrierEmissions < 1 {
		t.Fatal("BarrierEmissions should count the non-adjacent edge emission")
	}
	if e.Telemetry().BarrierFallbacks != 0 {
		t.Fatalf("BarrierFallbacks = %d, want 0 (a real edge exists for every consumed input)", e.Telemetry().BarrierFallbacks)
	}
}

func TestRecordWorkCoversEveryInstanceExactlyOnce(t *testing.T) {
	ep, bp, reg := testPlans(t)
	e := NewExecutor(reg, 4, nil)
	defer e.Close()
	e.SetPlan(ep, bp)

	const n = 37
	var mu sync.Mutex
	seen := make([]bool, n)
	e.RecordWork(n, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			if seen[i] {
				t.Errorf("instance %d recorded twice", i)
			}
			seen[i] = true
		}
	})
	for i, ok := range seen {
		if !ok {
			t.Fatalf("instance %d never recorded", i)
		}
	}
}
