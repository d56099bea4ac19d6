// Package projection maps a voxel solid to its front, top and side
// silhouettes and maps silhouette cells back to the voxels behind them.
//
// Every silhouette is a size x size canvas. The tight projection of the
// solid is centred on the canvas by a per-view Offset:
//
//	front: row = size-1-(y+off.Row)  col = x+off.Col   off = ((size-w)/2, (size-h)/2)
//	top:   row = x+off.Row           col = z+off.Col   off = ((size-d)/2, (size-w)/2)
//	side:  row = size-1-(y+off.Row)  col = z+off.Col   off = ((size-d)/2, (size-h)/2)
//
// with offsets written as (Col, Row) and w, h, d the solid's Dimensions.
package projection

import (
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

// Offset is where the tight projection was placed within the canvas.
type Offset struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Offsets holds one Offset per view.
type Offsets struct {
	Front Offset `json:"front"`
	Top   Offset `json:"top"`
	Side  Offset `json:"side"`
}

// For returns the offset of v.
func (o Offsets) For(v View) Offset {
	switch v {
	case Top:
		return o.Top
	case Side:
		return o.Side
	}
	return o.Front
}

// Silhouette is one projected view.
type Silhouette struct {
	View   View
	Cells  *voxel.Plane
	Offset Offset
}

// Set is the three silhouettes of one solid.
type Set struct {
	Front Silhouette
	Top   Silhouette
	Side  Silhouette
}

// Get returns the silhouette of v.
func (s Set) Get(v View) Silhouette {
	switch v {
	case Top:
		return s.Top
	case Side:
		return s.Side
	}
	return s.Front
}

// Offsets collects the per-view offsets.
func (s Set) Offsets() Offsets {
	return Offsets{Front: s.Front.Offset, Top: s.Top.Offset, Side: s.Side.Offset}
}

// Calculator projects solids onto size x size canvases.
type Calculator struct {
	size int
}

// NewCalculator returns a Calculator for canvases of edge length size.
func NewCalculator(size int) *Calculator {
	return &Calculator{size: size}
}

// Size returns the canvas edge length.
func (c *Calculator) Size() int { return c.size }

// OffsetsFor computes the centring offsets for a solid of the given extents.
// Any zero extent yields zero offsets.
func (c *Calculator) OffsetsFor(dims voxel.Dimensions) Offsets {
	if dims.IsZero() {
		return Offsets{}
	}
	w := floorHalf(c.size - dims.Width)
	h := floorHalf(c.size - dims.Height)
	d := floorHalf(c.size - dims.Depth)
	return Offsets{
		Front: Offset{Col: w, Row: h},
		Top:   Offset{Col: d, Row: w},
		Side:  Offset{Col: d, Row: h},
	}
}

// CellFor is the forward mapping of one voxel into view v.
func (c *Calculator) CellFor(v View, p voxel.Coord, off Offset) (row, col int) {
	switch v {
	case Top:
		return p.X + off.Row, p.Z + off.Col
	case Side:
		return c.size - 1 - (p.Y + off.Row), p.Z + off.Col
	}
	return c.size - 1 - (p.Y + off.Row), p.X + off.Col
}

// Project computes all three silhouettes of solid, whose tight extents are
// dims. A cell is filled if any voxel projects onto it, occluded or not.
func (c *Calculator) Project(solid *voxel.Grid, dims voxel.Dimensions) Set {
	set := Set{
		Front: Silhouette{View: Front, Cells: voxel.NewPlane(c.size, c.size)},
		Top:   Silhouette{View: Top, Cells: voxel.NewPlane(c.size, c.size)},
		Side:  Silhouette{View: Side, Cells: voxel.NewPlane(c.size, c.size)},
	}
	if dims.IsZero() {
		return set
	}

	offs := c.OffsetsFor(dims)
	set.Front.Offset, set.Top.Offset, set.Side.Offset = offs.Front, offs.Top, offs.Side

	for _, p := range solid.Coords() {
		for _, s := range []*Silhouette{&set.Front, &set.Top, &set.Side} {
			row, col := c.CellFor(s.View, p, s.Offset)
			// Out-of-canvas cells are dropped.
			_ = s.Cells.Set(row, col, true)
		}
	}
	return set
}

// ProjectSolid measures solid and projects it.
func (c *Calculator) ProjectSolid(solid *voxel.Grid) Set {
	return c.Project(solid, voxel.Measure(solid))
}

// Unproject returns every occupied voxel of solid that projects onto
// (row, col) in view v under offs. It is the exact inverse of CellFor.
func (c *Calculator) Unproject(solid *voxel.Grid, v View, row, col int, offs Offsets) []voxel.Coord {
	off := offs.For(v)
	var match func(p voxel.Coord) bool
	switch v {
	case Top:
		x, z := row-off.Row, col-off.Col
		match = func(p voxel.Coord) bool { return p.X == x && p.Z == z }
	case Side:
		y, z := c.size-1-row-off.Row, col-off.Col
		match = func(p voxel.Coord) bool { return p.Y == y && p.Z == z }
	default:
		x, y := col-off.Col, c.size-1-row-off.Row
		match = func(p voxel.Coord) bool { return p.X == x && p.Y == y }
	}

	var out []voxel.Coord
	for _, p := range solid.Coords() {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// floorHalf is n/2 rounded toward negative infinity.
func floorHalf(n int) int {
	if n < 0 {
		return -((-n + 1) / 2)
	}
	return n / 2
}
