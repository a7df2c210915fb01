package cull

import "math"

// ScreenRect is an instance's projected screen-space bounding rectangle
// plus its nearest (minimum) view-space depth, used by the software
// occlusion pass.
type ScreenRect struct {
	X0, Y0, X1, Y1 int // half-open: [X0,X1) x [Y0,Y1)
	MinDepth       float32
}

// DepthBuffer is a small CPU depth buffer used for software occlusion
// culling, e.g. 320x180 per spec.md §4.4.
type DepthBuffer struct {
	Width, Height int
	data          []float32
}

// NewDepthBuffer creates a depth buffer of the given size, cleared so no
// rectangle is occluded.
func NewDepthBuffer(width, height int) *DepthBuffer {
	d := &DepthBuffer{Width: width, Height: height, data: make([]float32, width*height)}
	d.Clear()
	return d
}

// Clear resets every pixel to +Inf (no occluder recorded).
func (d *DepthBuffer) Clear() {
	for i := range d.data {
		d.data[i] = float32(math.Inf(1))
	}
}

func (d *DepthBuffer) clipRect(r ScreenRect) (x0, y0, x1, y1 int) {
	x0, y0, x1, y1 = r.X0, r.Y0, r.X1, r.Y1
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > d.Width {
		x1 = d.Width
	}
	if y1 > d.Height {
		y1 = d.Height
	}
	return x0, y0, x1, y1
}

// TestRectOcclusion reports whether rect is fully occluded by previously
// rasterized content: true when every pixel the rectangle covers already
// holds a nearer (smaller) depth than rect.MinDepth. An empty buffer (all
// +Inf) never occludes, and a rectangle entirely outside the buffer bounds
// is never occluded (nothing recorded there to occlude it).
func (d *DepthBuffer) TestRectOcclusion(rect ScreenRect) bool {
	x0, y0, x1, y1 := d.clipRect(rect)
	if x0 >= x1 || y0 >= y1 {
		return false
	}
	for y := y0; y < y1; y++ {
		row := y * d.Width
		for x := x0; x < x1; x++ {
			if d.data[row+x] >= rect.MinDepth {
				return false
			}
		}
	}
	return true
}

// RasterizeOccluder writes rect.MinDepth into every covered pixel whose
// current value is farther, recording this rectangle as a (conservative,
// flat-depth) occluder for subsequent TestRectOcclusion calls.
func (d *DepthBuffer) RasterizeOccluder(rect ScreenRect) {
	x0, y0, x1, y1 := d.clipRect(rect)
	for y := y0; y < y1; y++ {
		row := y * d.Width
		for x := x0; x < x1; x++ {
			if rect.MinDepth < d.data[row+x] {
				d.data[row+x] = rect.MinDepth
			}
		}
	}
}

// OccluderProjector returns the projected screen rectangle of an
// instance's conservative occluder shape; the culling engine only needs
// that rectangle, computed by the caller (the renderer owns full
// mesh/transform knowledge).
type OccluderProjector func(instanceIndex int) ScreenRect

// RasterizeSoftwareOccluders implements spec.md §4.4's software occlusion
// algorithm: visible instances are assumed already sorted front-to-back by
// the caller (by view-space center depth); each is projected, tested
// against buf, and — if not occluded — accepted and rasterized as an
// occluder for subsequent instances. Returns the accepted subset of
// visibleIndices, in the same order.
func RasterizeSoftwareOccluders(buf *DepthBuffer, visibleIndices []int, project OccluderProjector) []int {
	accepted := make([]int, 0, len(visibleIndices))
	for _, idx := range visibleIndices {
		rect := project(idx)
		if buf.TestRectOcclusion(rect) {
			continue
		}
		accepted = append(accepted, idx)
		buf.RasterizeOccluder(rect)
	}
	return accepted
}
