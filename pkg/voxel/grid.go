package voxel

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// DefaultSize is the edge length of a solid's grid when none is configured.
const DefaultSize = 8

// MaxSize is the largest supported edge length.
const MaxSize = 8

// ErrOutOfBounds is returned when a write addresses a cell outside the grid.
var ErrOutOfBounds = errors.New("voxel: coordinate out of bounds")

// Grid is a fixed-extent three-axis occupancy grid indexed by (x, y, z).
// Reads outside the extent report empty; writes outside it fail.
type Grid struct {
	sx, sy, sz int
	cells      []bool
}

// NewGrid returns an empty cubic grid with edge length size.
func NewGrid(size int) *Grid {
	return NewGridSized(size, size, size)
}

// NewGridSized returns an empty grid with the given per-axis extents.
// Negative extents are treated as zero.
func NewGridSized(sx, sy, sz int) *Grid {
	sx, sy, sz = max(sx, 0), max(sy, 0), max(sz, 0)
	return &Grid{sx: sx, sy: sy, sz: sz, cells: make([]bool, sx*sy*sz)}
}

// Extent returns the container size along x, y and z.
func (g *Grid) Extent() Dimensions {
	return Dimensions{Width: g.sx, Height: g.sy, Depth: g.sz}
}

// InBounds reports whether c addresses a cell of the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.sx && c.Y >= 0 && c.Y < g.sy && c.Z >= 0 && c.Z < g.sz
}

func (g *Grid) index(c Coord) int {
	return (c.X*g.sy+c.Y)*g.sz + c.Z
}

// Get reports whether (x, y, z) is occupied. Out-of-range cells are empty.
func (g *Grid) Get(x, y, z int) bool {
	return g.Filled(Coord{X: x, Y: y, Z: z})
}

// Filled reports whether c is occupied. Out-of-range cells are empty.
func (g *Grid) Filled(c Coord) bool {
	if g == nil || !g.InBounds(c) {
		return false
	}
	return g.cells[g.index(c)]
}

// Set marks (x, y, z) occupied or empty.
func (g *Grid) Set(x, y, z int, v bool) error {
	return g.SetCoord(Coord{X: x, Y: y, Z: z}, v)
}

// SetCoord marks c occupied or empty.
func (g *Grid) SetCoord(c Coord, v bool) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %s in %dx%dx%d", ErrOutOfBounds, c.Key(), g.sx, g.sy, g.sz)
	}
	g.cells[g.index(c)] = v
	return nil
}

// Coords returns every occupied cell in x-major, then y, then z order.
func (g *Grid) Coords() []Coord {
	var out []Coord
	for x := 0; x < g.sx; x++ {
		for y := 0; y < g.sy; y++ {
			for z := 0; z < g.sz; z++ {
				if g.cells[(x*g.sy+y)*g.sz+z] {
					out = append(out, Coord{X: x, Y: y, Z: z})
				}
			}
		}
	}
	return out
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, v := range g.cells {
		if v {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of g.
func (g *Grid) Clone() *Grid {
	c := &Grid{sx: g.sx, sy: g.sy, sz: g.sz, cells: make([]bool, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether g and o have the same extent and occupancy.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.sx != o.sx || g.sy != o.sy || g.sz != o.sz {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Embed copies g into a cubic grid of edge length size, keeping coordinates.
// It fails if an occupied cell of g does not fit.
func (g *Grid) Embed(size int) (*Grid, error) {
	out := NewGrid(size)
	for _, c := range g.Coords() {
		if err := out.SetCoord(c, true); err != nil {
			return nil, fmt.Errorf("voxel: embed into %d: %w", size, err)
		}
	}
	return out, nil
}

// Connected reports whether the occupied cells form a single 6-connected
// component. An empty grid is not connected.
func (g *Grid) Connected() bool {
	coords := g.Coords()
	if len(coords) == 0 {
		return false
	}
	seen := map[Coord]bool{coords[0]: true}
	queue := []Coord{coords[0]}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range Neighbors {
			n := c.Add(d)
			if g.Filled(n) && !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return len(seen) == len(coords)
}

// Fingerprint returns a stable 64-bit identity for the grid's extent and
// occupancy. Two grids with equal content share a fingerprint.
func (g *Grid) Fingerprint() uint64 {
	if g == nil {
		return 0
	}
	buf := make([]byte, 12, 12+len(g.cells))
	binary.LittleEndian.PutUint32(buf[0:], uint32(g.sx))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.sy))
	binary.LittleEndian.PutUint32(buf[8:], uint32(g.sz))
	for _, v := range g.cells {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}
	return xxhash.Sum64(buf)
}

// Nested returns the grid as a [x][y][z] structure of 0/1 values.
func (g *Grid) Nested() [][][]int {
	out := make([][][]int, g.sx)
	for x := range out {
		out[x] = make([][]int, g.sy)
		for y := range out[x] {
			out[x][y] = make([]int, g.sz)
			for z := range out[x][y] {
				if g.cells[(x*g.sy+y)*g.sz+z] {
					out[x][y][z] = 1
				}
			}
		}
	}
	return out
}

// GridFromNested builds a cubic grid of edge length size from a [x][y][z]
// 0/1 structure. Missing rows and cells are treated as empty and entries
// beyond size are ignored.
func GridFromNested(size int, data [][][]int) *Grid {
	g := NewGrid(size)
	for x := 0; x < size && x < len(data); x++ {
		for y := 0; y < size && y < len(data[x]); y++ {
			for z := 0; z < size && z < len(data[x][y]); z++ {
				if data[x][y][z] != 0 {
					g.cells[g.index(Coord{X: x, Y: y, Z: z})] = true
				}
			}
		}
	}
	return g
}
