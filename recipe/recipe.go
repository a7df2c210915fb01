// Package recipe defines the immutable recipe types that name a render path
// and the composition presets that resolve to one: RenderPathRecipe is the
// compiler's input, RenderCompositionRecipe is the user-facing (path,
// technique, post-stack) triple that resolves to it.
package recipe

import "github.com/shsengine/shs/pass"

// Backend names a GPU backend type a recipe targets.
type Backend string

// Standard backends.
const (
	BackendVulkan   Backend = "vulkan"
	BackendWGPU     Backend = "wgpu"
	BackendSoftware Backend = "software"
)

// CullingMode selects how view/shadow culling cells are evaluated.
type CullingMode string

// Standard culling modes.
const (
	CullFrustumOnly      CullingMode = "frustum_only"
	CullFrustumOcclusion CullingMode = "frustum_occlusion"
)

// Entry is one (PassId, required) pair in a pass chain.
type Entry struct {
	ID       pass.Id
	Required bool
}

// RuntimeDefaults carries the recipe's default runtime toggles. These are
// overridable per-frame by the host application but start from the recipe.
type RuntimeDefaults struct {
	ShadowsEnabled   bool
	OcclusionEnabled bool
	DebugFlags       uint32
}

// RenderPathRecipe is a named, immutable specification the compiler
// consumes. Do not mutate PassChain in place after compilation (use Clone
// for an independent copy); the compiler only reads it.
type RenderPathRecipe struct {
	Name              string
	Backend           Backend
	TechniqueMode     pass.PathMode
	PassChain         []Entry
	LightVolumeMode   LightVolumeMode
	ViewCulling       CullingMode
	ShadowCulling     CullingMode
	Defaults          RuntimeDefaults
}

// LightVolumeMode selects the light binner's assignment strategy.
type LightVolumeMode string

// Standard light volume modes, mirroring lightbin.Mode's string ids so
// recipes can name a mode without importing the lightbin package.
const (
	LightVolumeNone              LightVolumeMode = "none"
	LightVolumeTiled             LightVolumeMode = "tiled"
	LightVolumeTiledDepthRange   LightVolumeMode = "tiled_depth_range"
	LightVolumeClustered         LightVolumeMode = "clustered"
)

// Clone returns a deep copy so callers may hold a RenderPathRecipe without
// aliasing the original's PassChain slice.
func (r RenderPathRecipe) Clone() RenderPathRecipe {
	cp := r
	cp.PassChain = append([]Entry(nil), r.PassChain...)
	return cp
}
