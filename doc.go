// Package shs provides the render-path engine: a recipe-driven pipeline
// that compiles a named composition (path + technique + post-stack) into
// an ExecutionPlan, derives its transient resources and barriers, and
// drives a frame executor that dispatches the compiled passes against a
// pluggable GPU backend.
//
// # Quick Start
//
//	reg := pass.NewStandardRegistry("wgpu")
//	r, params, err := recipe.RenderCompositionRecipe{
//		Name:      "composition_deferred_pbr_default",
//		Backend:   recipe.BackendWGPU,
//		Path:      recipe.PathPresetDeferred,
//		Technique: recipe.TechniquePBR,
//		PostStack: recipe.PostStackDefault,
//	}.Resolve()
//
//	ep := pathcompiler.Compile(r, reg)
//	rp := resourceplan.Plan(ep, resourceplan.Config{SurfaceWidth: 1280, SurfaceHeight: 720, TileSize: 16})
//	bp := barrierplan.Plan(ep, rp)
//
//	e := exec.NewExecutor(reg, 0, shs.Logger())
//	e.SetPlan(ep, bp)
//
// # Architecture
//
// The engine is layered leaves-first: a backend device abstraction
// (backend/), a static pass contract registry (pass/), the path
// compiler/resource planner/barrier planner (pathcompiler/, resourceplan/,
// barrierplan/), the culling engine and light binner (cull/, lightbin/),
// and the frame executor with its temporal/history manager
// (exec/, exec/temporal/). camera/, light/, and instance/ hold the
// per-frame data model; recipe/ holds the immutable composition types.
//
// # Logging
//
// By default shs produces no log output. Call SetLogger to enable it.
package shs
