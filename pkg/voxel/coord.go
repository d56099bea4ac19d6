package voxel

import "strconv"

// Coord identifies one cell of a Grid. Y is the vertical axis.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Key returns the canonical "x,y,z" form used for set membership.
func (c Coord) Key() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y) + "," + strconv.Itoa(c.Z)
}

// Add returns the component-wise sum of c and o.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y, Z: c.Z + o.Z}
}

// Sub returns the component-wise difference c - o.
func (c Coord) Sub(o Coord) Coord {
	return Coord{X: c.X - o.X, Y: c.Y - o.Y, Z: c.Z - o.Z}
}

// Neighbors are the six unit steps of 6-connectivity.
var Neighbors = [6]Coord{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// Dimensions is the tight bounding extent of a grid's occupied cells.
type Dimensions struct {
	Width  int `json:"width"`  // along x
	Height int `json:"height"` // along y
	Depth  int `json:"depth"`  // along z
}

// IsZero reports whether any extent is zero, which is the case for an empty grid.
func (d Dimensions) IsZero() bool {
	return d.Width == 0 || d.Height == 0 || d.Depth == 0
}

// FitsIn reports whether every extent is at most size.
func (d Dimensions) FitsIn(size int) bool {
	return d.Width <= size && d.Height <= size && d.Depth <= size
}
