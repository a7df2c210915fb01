// Package resourceplan derives the transient GPU resources and per-pass
// bindings implied by a compiled ExecutionPlan.
package resourceplan

import (
	"fmt"

	"github.com/shsengine/shs/pass"
	"github.com/shsengine/shs/pathcompiler"
)

// FormatClass abstracts over concrete GPU image formats; the planner only
// needs to know the resource's shape class, not its exact bit layout.
type FormatClass string

// Standard format classes.
const (
	FormatDepth    FormatClass = "depth"
	FormatColorHDR FormatClass = "color_hdr"
	FormatColorLDR FormatClass = "color_ldr"
	FormatMono     FormatClass = "mono"
	FormatMotion   FormatClass = "motion"
	FormatBuffer   FormatClass = "buffer"
)

// ExtentPolicy describes how a resource's dimensions are derived.
type ExtentPolicy string

// Standard extent policies. TileGrid refines spec.md's "tile-grid for
// LightGrid" behavior note into its own policy value alongside the three
// named in the data model (full|scaled|fixed).
const (
	ExtentFull     ExtentPolicy = "full"
	ExtentScaled   ExtentPolicy = "scaled"
	ExtentFixed    ExtentPolicy = "fixed"
	ExtentTileGrid ExtentPolicy = "tile_grid"
)

// Resource is one declared transient resource.
type Resource struct {
	ID       int
	Semantic pass.Semantic
	Format   FormatClass
	Extent   ExtentPolicy
	Layers   int
	// TileSize is set only for ExtentTileGrid resources.
	TileSize int
	// ProducerIndex is the index (in the ExecutionPlan) of the pass that
	// writes this resource.
	ProducerIndex int
}

// Binding records one compiled pass's resource reads and writes.
type Binding struct {
	PassIndex int
	PassID    pass.Id
	Reads     []int // resource IDs
	Writes    []int // resource IDs
}

// ErrorKind classifies a resource-planning error, per spec.md §7.
type ErrorKind string

// Standard error kinds.
const (
	ErrMissingProducer    ErrorKind = "missing_producer"
	ErrAliasingConflict   ErrorKind = "aliasing_conflict"
)

// ResourceError is one accumulated resource-planning error.
type ResourceError struct {
	Kind     ErrorKind
	PassID   pass.Id
	Semantic pass.Semantic
	Detail   string
}

func (e ResourceError) Error() string {
	return fmt.Sprintf("resourceplan: %s: pass %s semantic %d: %s", e.Kind, e.PassID, e.Semantic, e.Detail)
}

// ResourcePlan is the planner's output.
type ResourcePlan struct {
	Resources []Resource
	Bindings  []Binding
	Errors    []ResourceError
}

// ResourceByID returns the resource with the given id.
func (p ResourcePlan) ResourceByID(id int) (Resource, bool) {
	for _, r := range p.Resources {
		if r.ID == id {
			return r, true
		}
	}
	return Resource{}, false
}

// BindingFor returns the binding for the compiled pass at passIndex.
func (p ResourcePlan) BindingFor(passIndex int) (Binding, bool) {
	for _, b := range p.Bindings {
		if b.PassIndex == passIndex {
			return b, true
		}
	}
	return Binding{}, false
}

// Config holds the sizing inputs the planner needs beyond the
// ExecutionPlan: surface extent and the light grid's tile size default.
type Config struct {
	SurfaceWidth, SurfaceHeight int
	// TileSize is the recipe's light-grid tile size; clamped to >= 1.
	TileSize int
	// ShadowMapSize is the fixed extent of the sun shadow atlas. Plan does
	// not read it: the ShadowMap output is recorded as ExtentFixed with no
	// size attached.
	ShadowMapSize int
}

func classAndExtent(s pass.Semantic, tileSize int) (FormatClass, ExtentPolicy) {
	switch s {
	case pass.Depth, pass.HistoryDepth:
		return FormatDepth, ExtentFull
	case pass.SemanticShadowMap:
		return FormatDepth, ExtentFixed
	case pass.Albedo, pass.Material, pass.ColorLDR, pass.HistoryColor:
		return FormatColorLDR, ExtentFull
	case pass.Normal, pass.ColorHDR:
		return FormatColorHDR, ExtentFull
	case pass.AmbientOcclusion:
		return FormatMono, ExtentFull
	case pass.MotionVectors, pass.HistoryMotion:
		return FormatMotion, ExtentFull
	case pass.LightGrid, pass.LightIndexList, pass.LightClusters:
		return FormatBuffer, ExtentTileGrid
	default:
		return FormatMono, ExtentFull
	}
}

// Plan derives a ResourcePlan from a compiled ExecutionPlan.
//
// Each output semantic from a compiled pass materializes as one resource.
// Consumer bindings reference the most recent producer of their input
// semantic, walking the plan's linear order (spec.md §4.2).
func Plan(ep pathcompiler.ExecutionPlan, cfg Config) ResourcePlan {
	tileSize := cfg.TileSize
	if tileSize < 1 {
		tileSize = 1
	}

	rp := ResourcePlan{}
	nextID := 0
	// latestProducer maps a semantic to the resource id of its most recent
	// producer seen so far while walking the plan in order.
	latestProducer := make(map[pass.Semantic]int)

	for _, cp := range ep.Passes {
		binding := Binding{PassIndex: cp.Index, PassID: cp.ID}

		for _, in := range cp.Contract.Inputs {
			resID, ok := latestProducer[in]
			if !ok {
				rp.Errors = append(rp.Errors, ResourceError{
					Kind:     ErrMissingProducer,
					PassID:   cp.ID,
					Semantic: in,
					Detail:   "no producer bound despite a valid compiled plan",
				})
				continue
			}
			binding.Reads = append(binding.Reads, resID)
		}

		for _, out := range cp.Contract.Outputs {
			format, extent := classAndExtent(out, tileSize)
			res := Resource{
				ID:            nextID,
				Semantic:      out,
				Format:        format,
				Extent:        extent,
				Layers:        1,
				ProducerIndex: cp.Index,
			}
			if extent == ExtentTileGrid {
				res.TileSize = tileSize
			}
			rp.Resources = append(rp.Resources, res)
			binding.Writes = append(binding.Writes, res.ID)
			latestProducer[out] = res.ID
			nextID++
		}

		rp.Bindings = append(rp.Bindings, binding)
	}

	return rp
}
