// Package pass defines the closed set of standard render passes and the
// semantics used to type-check pass connectivity, plus the registry that
// maps a PassId to its per-backend contract.
package pass

// Id is the closed enumeration of standard passes a RenderPathRecipe may
// reference. The zero value is Unknown, used as a sentinel for lookup
// misses.
type Id uint8

// Standard pass ids.
const (
	Unknown Id = iota
	ShadowMap
	DepthPrepass
	LightCulling
	ClusterLightAssign
	GBuffer
	SSAO
	DeferredLighting
	DeferredLightingTiled
	PBRForward
	PBRForwardPlus
	PBRForwardClustered
	Tonemap
	TAA
	MotionBlur
	DepthOfField
)

var idNames = map[Id]string{
	Unknown:               "unknown",
	ShadowMap:             "shadow_map",
	DepthPrepass:          "depth_prepass",
	LightCulling:          "light_culling",
	ClusterLightAssign:    "cluster_light_assign",
	GBuffer:               "gbuffer",
	SSAO:                  "ssao",
	DeferredLighting:      "deferred_lighting",
	DeferredLightingTiled: "deferred_lighting_tiled",
	PBRForward:            "pbr_forward",
	PBRForwardPlus:        "pbr_forward_plus",
	PBRForwardClustered:   "pbr_forward_clustered",
	Tonemap:               "tonemap",
	TAA:                   "taa",
	MotionBlur:            "motion_blur",
	DepthOfField:          "depth_of_field",
}

// String returns the pass id's stable string id, e.g. "shadow_map".
func (id Id) String() string {
	if s, ok := idNames[id]; ok {
		return s
	}
	return "unknown"
}

// Semantic tags a resource's meaning, independent of its concrete image
// format, so the planner can type-check pass connectivity.
type Semantic uint8

// Standard semantics.
const (
	SemanticUnknown Semantic = iota
	Depth
	Albedo
	Normal
	Material
	AmbientOcclusion
	LightGrid
	LightIndexList
	LightClusters
	SemanticShadowMap
	ColorHDR
	ColorLDR
	MotionVectors
	HistoryColor
	HistoryDepth
	HistoryMotion
)

// Kind distinguishes rasterization passes from compute dispatches.
type Kind uint8

// Pass kinds.
const (
	KindRender Kind = iota
	KindCompute
)

// Contract describes, for a given backend, what a pass reads, writes, and
// how it dispatches. Contracts are produced by a Registry and are immutable
// once built.
type Contract struct {
	ID      Id
	Inputs  []Semantic
	Outputs []Semantic
	Kind    Kind

	// TileDependent marks passes whose dispatch grid is derived from the
	// light grid's tile/cluster layout (LightCulling, ClusterLightAssign,
	// DeferredLightingTiled, PBRForwardPlus, PBRForwardClustered).
	TileDependent bool
}

// HasInput reports whether the contract declares the given input semantic.
func (c Contract) HasInput(s Semantic) bool {
	for _, want := range c.Inputs {
		if want == s {
			return true
		}
	}
	return false
}

// HasOutput reports whether the contract declares the given output
// semantic.
func (c Contract) HasOutput(s Semantic) bool {
	for _, want := range c.Outputs {
		if want == s {
			return true
		}
	}
	return false
}

// Handler executes one pass's work against an opaque execution context. The
// concrete type of ctx is defined by the exec package; it is passed through
// this package as `any` to avoid an import cycle between pass and exec.
type Handler func(ctx any, c Contract) error

// Registry is a static, backend-scoped table of PassId -> contract
// (+ optional handler). Registries are built once at startup and are
// immutable afterward; external users may register additional passes by
// supplying a contract and handler.
type Registry struct {
	backend   string
	contracts map[Id]Contract
	handlers  map[Id]Handler
}

// NewRegistry creates an empty registry for the named backend (e.g.
// "vulkan", "wgpu", "software").
func NewRegistry(backend string) *Registry {
	return &Registry{
		backend:   backend,
		contracts: make(map[Id]Contract),
		handlers:  make(map[Id]Handler),
	}
}

// Backend returns the backend name this registry was built for.
func (r *Registry) Backend() string { return r.backend }

// Register adds a pass contract and its handler. Register is not safe for
// concurrent use with Lookup/Dispatch; call it only during registry
// construction.
func (r *Registry) Register(c Contract, h Handler) {
	r.contracts[c.ID] = c
	r.handlers[c.ID] = h
}

// Lookup returns the contract for id and whether it is known to this
// backend's registry.
func (r *Registry) Lookup(id Id) (Contract, bool) {
	c, ok := r.contracts[id]
	return c, ok
}

// Handler returns the registered handler for id, if any.
func (r *Registry) Handler(id Id) (Handler, bool) {
	h, ok := r.handlers[id]
	return h, ok
}
