package camera

import "github.com/shsengine/shs/internal/vecmath"

// TemporalParams carries the TAA-related per-frame toggles, carried
// verbatim from the original source's CameraUBO temporal params
// (enabled, history-valid, blend, reserved).
type TemporalParams struct {
	Enabled      uint32
	HistoryValid uint32
	Blend        float32
	_reserved    float32
}

// UBO is the per-frame camera constant buffer uploaded to the GPU, carried
// whole from the original source's CameraUBO (see SPEC_FULL.md
// supplemented features) so every field the shaders expect has a home.
type UBO struct {
	View      vecmath.Mat4
	Proj      vecmath.Mat4 // optionally jittered in NDC, see exec/temporal
	ViewProj  vecmath.Mat4

	CameraPosTime vecmath.Vec4 // xyz: camera position, w: time

	SunDirIntensity vecmath.Vec4 // xyz: direction, w: intensity

	// ScreenTileLightCount packs: x=width, y=height, z=tiles_x, w=light_count.
	ScreenTileLightCount [4]uint32
	// Params packs: x=tiles_y, y=max_per_tile, z=tile_size, w=culling_mode.
	Params [4]uint32
	// CullingParams packs: x=cluster_z_slices, y=lighting_technique.
	// NewUBO writes 0 to y: UBOParams carries no lighting technique.
	CullingParams [4]uint32

	DepthNearFar  vecmath.Vec4 // x=near, y=far
	ExposureGamma vecmath.Vec4 // x=exposure, y=gamma

	SunShadowViewProj vecmath.Mat4
	SunShadowParams   vecmath.Vec4 // x=strength, y=bias_const, z=bias_slope, w=pcf_radius
	SunShadowFilter   vecmath.Vec4 // x=pcf_step, y=enabled

	Temporal TemporalParams
}

// UBOParams groups the non-camera-pose inputs NewUBO needs to populate the
// packed screen/tile/light-count and technique fields.
type UBOParams struct {
	View, Proj                         vecmath.Mat4
	ScreenWidth, ScreenHeight           uint32
	TilesX, TilesY, TileSize            uint32
	LightCount, MaxLightsPerTile        uint32
	CullingMode, ClusterZSlices         uint32
	Near, Far, Exposure, Gamma          float32
	SunDirIntensity                     vecmath.Vec4
	SunShadowViewProj                   vecmath.Mat4
	SunShadowParams, SunShadowFilter    vecmath.Vec4
	Temporal                            TemporalParams
}

// NewUBO builds a UBO from a RuntimeState and UBOParams. It performs no I/O
// and is safe to call every frame.
func NewUBO(state RuntimeState, p UBOParams) UBO {
	return UBO{
		View:     p.View,
		Proj:     p.Proj,
		ViewProj: p.Proj.Multiply(p.View),
		CameraPosTime: vecmath.Vec4{
			X: state.Position.X, Y: state.Position.Y, Z: state.Position.Z, W: state.Time,
		},
		SunDirIntensity:      p.SunDirIntensity,
		ScreenTileLightCount: [4]uint32{p.ScreenWidth, p.ScreenHeight, p.TilesX, p.LightCount},
		Params:               [4]uint32{p.TilesY, p.MaxLightsPerTile, p.TileSize, p.CullingMode},
		CullingParams:        [4]uint32{p.ClusterZSlices, 0, 0, 0},
		DepthNearFar:         vecmath.Vec4{X: p.Near, Y: p.Far},
		ExposureGamma:        vecmath.Vec4{X: p.Exposure, Y: p.Gamma},
		SunShadowViewProj:    p.SunShadowViewProj,
		SunShadowParams:      p.SunShadowParams,
		SunShadowFilter:      p.SunShadowFilter,
		Temporal:             p.Temporal,
	}
}
