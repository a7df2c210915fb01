package pass

// PathMode tags the technique path a composition resolves to. It determines
// which optional passes are path-eligible independent of backend.
type PathMode string

// Standard path modes.
const (
	PathForward           PathMode = "forward"
	PathForwardPlus       PathMode = "forward_plus"
	PathForwardClustered  PathMode = "forward_clustered"
	PathDeferred          PathMode = "deferred"
	PathDeferredTiled     PathMode = "deferred_tiled"
)

// eligiblePathModes is the per-pass compatibility table referenced by the
// compiler when deciding whether an optional pass is "present" for the
// recipe's resolved path mode. A pass absent from this table is eligible
// under every path mode.
var eligiblePathModes = map[Id][]PathMode{
	LightCulling:          {PathForwardPlus, PathDeferredTiled},
	ClusterLightAssign:    {PathForwardClustered},
	DeferredLighting:      {PathDeferred},
	DeferredLightingTiled: {PathDeferredTiled},
	PBRForward:            {PathForward},
	PBRForwardPlus:        {PathForwardPlus},
	PBRForwardClustered:   {PathForwardClustered},
	// Depth of field needs a standalone depth buffer decoupled from the
	// forward color pass; the source engine only wires it up behind the
	// deferred paths.
	DepthOfField: {PathDeferred, PathDeferredTiled},
}

// EligibleForPathMode reports whether id is eligible for the given path
// mode. Passes absent from the compatibility table are eligible everywhere.
func EligibleForPathMode(id Id, mode PathMode) bool {
	modes, ok := eligiblePathModes[id]
	if !ok {
		return true
	}
	for _, m := range modes {
		if m == mode {
			return true
		}
	}
	return false
}

// NewStandardRegistry builds the built-in contract table for the named
// backend. All standard PassIds are backend-eligible on every built-in
// backend ("vulkan", "wgpu", "software"); real deployments that lack a
// capability (e.g. no compute queue) should build a reduced registry by
// omitting the ineligible ids.
func NewStandardRegistry(backend string) *Registry {
	r := NewRegistry(backend)

	r.Register(Contract{
		ID:      ShadowMap,
		Outputs: []Semantic{SemanticShadowMap},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:      DepthPrepass,
		Outputs: []Semantic{Depth},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:            LightCulling,
		Inputs:        []Semantic{Depth},
		Outputs:       []Semantic{LightGrid, LightIndexList},
		Kind:          KindCompute,
		TileDependent: true,
	}, nil)

	r.Register(Contract{
		ID:            ClusterLightAssign,
		Inputs:        []Semantic{Depth},
		Outputs:       []Semantic{LightClusters, LightIndexList},
		Kind:          KindCompute,
		TileDependent: true,
	}, nil)

	r.Register(Contract{
		ID:      GBuffer,
		Outputs: []Semantic{Albedo, Normal, Material, Depth},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:      SSAO,
		Inputs:  []Semantic{Depth, Normal},
		Outputs: []Semantic{AmbientOcclusion},
		Kind:    KindCompute,
	}, nil)

	r.Register(Contract{
		ID:      DeferredLighting,
		Inputs:  []Semantic{Albedo, Normal, Material, Depth, AmbientOcclusion, SemanticShadowMap},
		Outputs: []Semantic{ColorHDR},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:            DeferredLightingTiled,
		Inputs:        []Semantic{Albedo, Normal, Material, Depth, AmbientOcclusion, SemanticShadowMap, LightGrid, LightIndexList},
		Outputs:       []Semantic{ColorHDR},
		Kind:          KindRender,
		TileDependent: true,
	}, nil)

	r.Register(Contract{
		ID:      PBRForward,
		Inputs:  []Semantic{SemanticShadowMap},
		Outputs: []Semantic{ColorHDR, Depth},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:            PBRForwardPlus,
		Inputs:        []Semantic{SemanticShadowMap, LightGrid, LightIndexList},
		Outputs:       []Semantic{ColorHDR, Depth},
		Kind:          KindRender,
		TileDependent: true,
	}, nil)

	r.Register(Contract{
		ID:            PBRForwardClustered,
		Inputs:        []Semantic{SemanticShadowMap, LightClusters, LightIndexList},
		Outputs:       []Semantic{ColorHDR, Depth},
		Kind:          KindRender,
		TileDependent: true,
	}, nil)

	r.Register(Contract{
		ID:      Tonemap,
		Inputs:  []Semantic{ColorHDR},
		Outputs: []Semantic{ColorLDR},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:      TAA,
		Inputs:  []Semantic{ColorLDR, MotionVectors, HistoryColor},
		Outputs: []Semantic{ColorLDR, HistoryColor},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:      MotionBlur,
		Inputs:  []Semantic{ColorLDR, MotionVectors},
		Outputs: []Semantic{ColorLDR},
		Kind:    KindRender,
	}, nil)

	r.Register(Contract{
		ID:      DepthOfField,
		Inputs:  []Semantic{ColorLDR, Depth},
		Outputs: []Semantic{ColorLDR},
		Kind:    KindRender,
	}, nil)

	return r
}
