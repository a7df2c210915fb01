// Package lightbin assigns visible lights to screen tiles or 3D clusters,
// producing the per-tile count and index lists shading passes consume.
package lightbin

import (
	"github.com/shsengine/shs/light"
	"github.com/shsengine/shs/resourceplan"
)

// Mode selects the light binner's assignment strategy.
type Mode string

// Standard light binning modes.
const (
	ModeNone            Mode = "none"
	ModeTiled           Mode = "tiled"
	ModeTiledDepthRange Mode = "tiled_depth_range"
	ModeClustered       Mode = "clustered"
)

// DefaultMaxLightsPerTile is the engine's default per-tile/cluster light
// budget, carried from the original source's kMaxLightsPerTile.
const DefaultMaxLightsPerTile = 128

// tiledDepthRangeEnlargement conservatively enlarges a light's culling
// sphere before the depth-range test in ModeTiledDepthRange. The original
// source's factor here differs from the other tiled modes; preserved as a
// tunable policy constant per spec.md §9 Open Question (b) rather than
// inferring intent.
const tiledDepthRangeEnlargement = 1.1

// DepthRange is a tile's [min,max] view-space depth, produced by the
// optional depth-range reduction dispatch.
type DepthRange struct {
	Min, Max float32
}

// Result is the light binner's per-frame output.
type Result struct {
	Counts      []uint32
	Indices     []uint32 // len == listCount * maxPerTile
	DepthRanges []DepthRange
	ListCount   int
	MaxPerTile  int

	TotalRefs     int
	NonEmptyLists int
	MaxListSize   int
}

// IndexRange returns the half-open slice of Indices holding tile/cluster
// i's light indices, per spec.md §4.5's invariant: tile i occupies
// [i*MaxPerTile, i*MaxPerTile+Counts[i]).
func (r Result) IndexRange(i int) []uint32 {
	start := i * r.MaxPerTile
	return r.Indices[start : start+int(r.Counts[i])]
}

func newResult(listCount, maxPerTile int) Result {
	return Result{
		Counts:     make([]uint32, listCount),
		Indices:    make([]uint32, listCount*maxPerTile),
		ListCount:  listCount,
		MaxPerTile: maxPerTile,
	}
}

// TileTest reports whether light l (by index into the visible-lights
// array) intersects the tile/cluster at (tileX, tileY, z). z is always 0
// for Tiled/TiledDepthRange modes. This is the host-side stand-in for the
// GPU compute dispatch's per-invocation frustum test (spec.md §4.5
// Algorithm step 2); a real backend instead submits a compute pass.
type TileTest func(tileX, tileY, z int, lightIndex int, l light.Light) bool

// CPUFallback clears the count and index buffers: when the GPU culler is
// disabled or unsupported, shading passes must treat every tile as
// potentially lit (worst case), per spec.md §4.5.
func CPUFallback(layout resourceplan.LightGridLayout, maxPerTile int) Result {
	if maxPerTile <= 0 {
		maxPerTile = DefaultMaxLightsPerTile
	}
	return newResult(layout.ListCount(), maxPerTile)
}

// Bin assigns visibleLights to tiles or clusters according to mode, using
// test to decide per-tile/cluster membership. maxPerTile <= 0 uses
// DefaultMaxLightsPerTile.
//
// Invariant: Counts[i] <= maxPerTile for every i (enforced by truncating
// further hits once a tile's list is full).
func Bin(mode Mode, layout resourceplan.LightGridLayout, visibleLights []light.Light, maxPerTile int, test TileTest) Result {
	if maxPerTile <= 0 {
		maxPerTile = DefaultMaxLightsPerTile
	}
	if mode == ModeNone || len(visibleLights) == 0 {
		return newResult(layout.ListCount(), maxPerTile)
	}

	zSlices := layout.ClusterZSlices
	if mode != ModeClustered || zSlices < 1 {
		zSlices = 1
	}

	r := newResult(layout.ListCount(), maxPerTile)

	listIndex := func(tx, ty, z int) int {
		return (z*layout.TileCountY+ty)*layout.TileCountX + tx
	}

	for ty := 0; ty < layout.TileCountY; ty++ {
		for tx := 0; tx < layout.TileCountX; tx++ {
			for z := 0; z < zSlices; z++ {
				li := listIndex(tx, ty, z)
				count := uint32(0)
				for idx, l := range visibleLights {
					if count >= uint32(maxPerTile) {
						break
					}
					if !test(tx, ty, z, idx, l) {
						continue
					}
					base := li * maxPerTile
					r.Indices[base+int(count)] = uint32(idx)
					count++
				}
				r.Counts[li] = count
				r.TotalRefs += int(count)
				if count > 0 {
					r.NonEmptyLists++
				}
				if int(count) > r.MaxListSize {
					r.MaxListSize = int(count)
				}
			}
		}
	}

	return r
}

// TiledDepthRangeEnlargement returns the conservative sphere-enlargement
// factor applied before testing a light against a tile's depth range in
// ModeTiledDepthRange.
func TiledDepthRangeEnlargement() float32 { return tiledDepthRangeEnlargement }

// ComputeDepthRanges runs the optional depth-range reduction: for each
// tile, sample is called to obtain the tile's [min,max] view-space depth
// from the depth prepass. This stands in for the GPU compute dispatch of
// spec.md §4.5 Algorithm step 1.
func ComputeDepthRanges(layout resourceplan.LightGridLayout, sample func(tileX, tileY int) DepthRange) []DepthRange {
	ranges := make([]DepthRange, layout.TileCount())
	for ty := 0; ty < layout.TileCountY; ty++ {
		for tx := 0; tx < layout.TileCountX; tx++ {
			ranges[ty*layout.TileCountX+tx] = sample(tx, ty)
		}
	}
	return ranges
}
