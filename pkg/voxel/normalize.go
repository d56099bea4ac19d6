package voxel

// Bounds returns the minimum and maximum occupied coordinate of g per axis.
// ok is false when g is empty.
func Bounds(g *Grid) (lo, hi Coord, ok bool) {
	coords := g.Coords()
	if len(coords) == 0 {
		return Coord{}, Coord{}, false
	}
	lo, hi = coords[0], coords[0]
	for _, c := range coords[1:] {
		lo = Coord{X: min(lo.X, c.X), Y: min(lo.Y, c.Y), Z: min(lo.Z, c.Z)}
		hi = Coord{X: max(hi.X, c.X), Y: max(hi.Y, c.Y), Z: max(hi.Z, c.Z)}
	}
	return lo, hi, true
}

// Measure returns the tight extents of g's occupied cells without
// moving them. An empty grid measures zero.
func Measure(g *Grid) Dimensions {
	lo, hi, ok := Bounds(g)
	if !ok {
		return Dimensions{}
	}
	return Dimensions{Width: hi.X - lo.X + 1, Height: hi.Y - lo.Y + 1, Depth: hi.Z - lo.Z + 1}
}

// Normalize shifts the occupied cells of g so the minimum coordinate on
// every axis is zero and returns them in a container of exactly the tight
// extents. An empty grid yields a zero-sized grid and zero Dimensions.
// g is not modified.
func Normalize(g *Grid) (*Grid, Dimensions) {
	lo, _, ok := Bounds(g)
	if !ok {
		return NewGridSized(0, 0, 0), Dimensions{}
	}
	dims := Measure(g)
	out := NewGridSized(dims.Width, dims.Height, dims.Depth)
	for _, c := range g.Coords() {
		s := c.Sub(lo)
		out.cells[out.index(s)] = true
	}
	return out, dims
}

// NormalizePlane is Normalize for a two-axis plane. It returns the shifted
// plane with its tight row and column extents; an empty plane yields a
// zero-sized plane.
func NormalizePlane(p *Plane) (*Plane, int, int) {
	cells := p.Cells()
	if len(cells) == 0 {
		return NewPlane(0, 0), 0, 0
	}
	minR, maxR := cells[0][0], cells[0][0]
	minC, maxC := cells[0][1], cells[0][1]
	for _, rc := range cells[1:] {
		minR, maxR = min(minR, rc[0]), max(maxR, rc[0])
		minC, maxC = min(minC, rc[1]), max(maxC, rc[1])
	}
	rows, cols := maxR-minR+1, maxC-minC+1
	out := NewPlane(rows, cols)
	for _, rc := range cells {
		out.cells[(rc[0]-minR)*cols+(rc[1]-minC)] = true
	}
	return out, rows, cols
}
