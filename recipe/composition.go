package recipe

import (
	"fmt"

	"github.com/shsengine/shs/pass"
)

// PathPreset names a base geometry/lighting path shape.
type PathPreset string

// Standard path presets.
const (
	PathPresetForward          PathPreset = "forward"
	PathPresetForwardPlus      PathPreset = "forward_plus"
	PathPresetForwardClustered PathPreset = "forward_clustered"
	PathPresetDeferred         PathPreset = "deferred"
	PathPresetDeferredTiled    PathPreset = "deferred_tiled"
)

// TechniquePreset names the shading technique a composition applies.
type TechniquePreset string

// Standard technique presets.
const (
	TechniquePBR        TechniquePreset = "pbr"
	TechniqueBlinnPhong TechniquePreset = "blinn_phong"
)

// PostStackPreset names the optional post-process stack appended after the
// main lighting pass.
type PostStackPreset string

// Standard post-process stack presets.
const (
	PostStackMinimal  PostStackPreset = "minimal"
	PostStackDefault  PostStackPreset = "default"
	PostStackTemporal PostStackPreset = "temporal"
	PostStackFull     PostStackPreset = "full"
)

// TechniqueParams carries the shading parameters a TechniquePreset resolves
// to: exposure/gamma values for the camera UBO's exposure/gamma fields and
// a shader variant name. The exec package does not read them.
type TechniqueParams struct {
	Exposure      float32
	Gamma         float32
	ShaderVariant string
}

var techniqueParams = map[TechniquePreset]TechniqueParams{
	TechniquePBR:        {Exposure: 1.0, Gamma: 2.2, ShaderVariant: "pbr"},
	TechniqueBlinnPhong: {Exposure: 1.0, Gamma: 2.2, ShaderVariant: "blinn_phong"},
}

// RenderCompositionRecipe is the user-facing (path, technique, post-stack)
// triple. Resolve turns it into a RenderPathRecipe plus TechniqueParams.
type RenderCompositionRecipe struct {
	Name      string
	Backend   Backend
	Path      PathPreset
	Technique TechniquePreset
	PostStack PostStackPreset
	Defaults  RuntimeDefaults
}

// pathModeFor maps a PathPreset to the pass.PathMode the compiler's
// eligibility table keys on.
func pathModeFor(p PathPreset) (pass.PathMode, error) {
	switch p {
	case PathPresetForward:
		return pass.PathForward, nil
	case PathPresetForwardPlus:
		return pass.PathForwardPlus, nil
	case PathPresetForwardClustered:
		return pass.PathForwardClustered, nil
	case PathPresetDeferred:
		return pass.PathDeferred, nil
	case PathPresetDeferredTiled:
		return pass.PathDeferredTiled, nil
	default:
		return "", fmt.Errorf("recipe: unknown path preset %q", p)
	}
}

// basePassChain returns the geometry/lighting portion of the pass chain for
// a path preset, before the post-process stack is appended.
func basePassChain(p PathPreset, includeSSAO bool) ([]Entry, LightVolumeMode, error) {
	switch p {
	case PathPresetForward:
		return []Entry{
			{ID: pass.ShadowMap, Required: true},
			{ID: pass.DepthPrepass, Required: false},
			{ID: pass.PBRForward, Required: true},
		}, LightVolumeNone, nil

	case PathPresetForwardPlus:
		return []Entry{
			{ID: pass.ShadowMap, Required: true},
			{ID: pass.DepthPrepass, Required: true},
			{ID: pass.LightCulling, Required: true},
			{ID: pass.PBRForwardPlus, Required: true},
		}, LightVolumeTiled, nil

	case PathPresetForwardClustered:
		return []Entry{
			{ID: pass.ShadowMap, Required: true},
			{ID: pass.DepthPrepass, Required: true},
			{ID: pass.ClusterLightAssign, Required: true},
			{ID: pass.PBRForwardClustered, Required: true},
		}, LightVolumeClustered, nil

	case PathPresetDeferred:
		chain := []Entry{
			{ID: pass.ShadowMap, Required: true},
			{ID: pass.GBuffer, Required: true},
		}
		if includeSSAO {
			chain = append(chain, Entry{ID: pass.SSAO, Required: false})
		}
		chain = append(chain, Entry{ID: pass.DeferredLighting, Required: true})
		return chain, LightVolumeNone, nil

	case PathPresetDeferredTiled:
		chain := []Entry{
			{ID: pass.ShadowMap, Required: true},
			{ID: pass.GBuffer, Required: true},
			{ID: pass.LightCulling, Required: true},
		}
		if includeSSAO {
			chain = append(chain, Entry{ID: pass.SSAO, Required: false})
		}
		chain = append(chain, Entry{ID: pass.DeferredLightingTiled, Required: true})
		return chain, LightVolumeTiled, nil

	default:
		return nil, "", fmt.Errorf("recipe: unknown path preset %q", p)
	}
}

// postStackChain returns the optional post-process passes for a preset, in
// execution order.
func postStackChain(p PostStackPreset) []Entry {
	switch p {
	case PostStackMinimal:
		return []Entry{{ID: pass.Tonemap, Required: true}}
	case PostStackTemporal:
		return []Entry{
			{ID: pass.Tonemap, Required: true},
			{ID: pass.TAA, Required: false},
		}
	case PostStackFull:
		return []Entry{
			{ID: pass.Tonemap, Required: true},
			{ID: pass.TAA, Required: false},
			{ID: pass.MotionBlur, Required: false},
			{ID: pass.DepthOfField, Required: false},
		}
	case PostStackDefault:
		fallthrough
	default:
		return []Entry{{ID: pass.Tonemap, Required: true}}
	}
}

// includesSSAO reports whether a post-stack preset calls for the SSAO pass
// in the base chain. Minimal skips ambient occlusion entirely; every other
// preset includes it.
func includesSSAO(p PostStackPreset) bool {
	return p != PostStackMinimal
}

// Resolve turns a RenderCompositionRecipe into a RenderPathRecipe and its
// technique parameters.
func (c RenderCompositionRecipe) Resolve() (RenderPathRecipe, TechniqueParams, error) {
	mode, err := pathModeFor(c.Path)
	if err != nil {
		return RenderPathRecipe{}, TechniqueParams{}, err
	}

	base, lvMode, err := basePassChain(c.Path, includesSSAO(c.PostStack))
	if err != nil {
		return RenderPathRecipe{}, TechniqueParams{}, err
	}

	chain := append(base, postStackChain(c.PostStack)...)

	params, ok := techniqueParams[c.Technique]
	if !ok {
		return RenderPathRecipe{}, TechniqueParams{}, fmt.Errorf("recipe: unknown technique preset %q", c.Technique)
	}

	rp := RenderPathRecipe{
		Name:            c.Name,
		Backend:         c.Backend,
		TechniqueMode:   mode,
		PassChain:       chain,
		LightVolumeMode: lvMode,
		ViewCulling:     CullFrustumOcclusion,
		ShadowCulling:   CullFrustumOnly,
		Defaults:        c.Defaults,
	}
	return rp, params, nil
}
