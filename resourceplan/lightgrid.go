package resourceplan

// LightGridLayout is derived from the ResourcePlan's LightGrid resource
// (if any) and the surface extent. It is consumed by the light binner to
// size its count/index buffers.
type LightGridLayout struct {
	TileSize       int
	TileCountX     int
	TileCountY     int
	ClusterZSlices int
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// DeriveLightGridLayout computes the tile grid for a surface of the given
// extent and tile size, with clusterZSlices slices for clustered modes (0
// for tiled modes).
func DeriveLightGridLayout(surfaceWidth, surfaceHeight, tileSize, clusterZSlices int) LightGridLayout {
	if tileSize < 1 {
		tileSize = 1
	}
	return LightGridLayout{
		TileSize:       tileSize,
		TileCountX:     ceilDiv(surfaceWidth, tileSize),
		TileCountY:     ceilDiv(surfaceHeight, tileSize),
		ClusterZSlices: clusterZSlices,
	}
}

// TileCount returns the total number of 2D tiles (TileCountX * TileCountY).
func (l LightGridLayout) TileCount() int { return l.TileCountX * l.TileCountY }

// ListCount returns the total number of tile/cluster lists the light
// binner must produce: TileCount for tiled modes, TileCount*ClusterZSlices
// for clustered modes (ClusterZSlices==0 behaves as 1).
func (l LightGridLayout) ListCount() int {
	z := l.ClusterZSlices
	if z < 1 {
		z = 1
	}
	return l.TileCount() * z
}
