package voxel

import "fmt"

// Plane is a two-axis occupancy grid of rows by columns, the storage of a
// silhouette view.
type Plane struct {
	rows, cols int
	cells      []bool
}

// NewPlane returns an empty plane. Negative extents are treated as zero.
func NewPlane(rows, cols int) *Plane {
	rows, cols = max(rows, 0), max(cols, 0)
	return &Plane{rows: rows, cols: cols, cells: make([]bool, rows*cols)}
}

// Rows returns the number of rows.
func (p *Plane) Rows() int { return p.rows }

// Cols returns the number of columns.
func (p *Plane) Cols() int { return p.cols }

// InBounds reports whether (row, col) addresses a cell of p.
func (p *Plane) InBounds(row, col int) bool {
	return row >= 0 && row < p.rows && col >= 0 && col < p.cols
}

// Get reports whether (row, col) is filled. Out-of-range cells are empty.
func (p *Plane) Get(row, col int) bool {
	if p == nil || !p.InBounds(row, col) {
		return false
	}
	return p.cells[row*p.cols+col]
}

// Set fills or clears (row, col).
func (p *Plane) Set(row, col int, v bool) error {
	if !p.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, row, col, p.rows, p.cols)
	}
	p.cells[row*p.cols+col] = v
	return nil
}

// Count returns the number of filled cells.
func (p *Plane) Count() int {
	n := 0
	for _, v := range p.cells {
		if v {
			n++
		}
	}
	return n
}

// Cells returns the filled cells as (row, col) pairs in row-major order.
func (p *Plane) Cells() [][2]int {
	var out [][2]int
	for r := 0; r < p.rows; r++ {
		for c := 0; c < p.cols; c++ {
			if p.cells[r*p.cols+c] {
				out = append(out, [2]int{r, c})
			}
		}
	}
	return out
}

// Equal reports whether p and o have the same shape and contents.
func (p *Plane) Equal(o *Plane) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.rows != o.rows || p.cols != o.cols {
		return false
	}
	for i := range p.cells {
		if p.cells[i] != o.cells[i] {
			return false
		}
	}
	return true
}

// Nested returns p as [row][col] 0/1 values.
func (p *Plane) Nested() [][]int {
	out := make([][]int, p.rows)
	for r := range out {
		out[r] = make([]int, p.cols)
		for c := range out[r] {
			if p.cells[r*p.cols+c] {
				out[r][c] = 1
			}
		}
	}
	return out
}

// PlaneFromNested builds a rows x cols plane from a possibly ragged or
// partially populated [row][col] structure. Missing cells are empty.
func PlaneFromNested(rows, cols int, data [][]int) *Plane {
	p := NewPlane(rows, cols)
	for r := 0; r < p.rows && r < len(data); r++ {
		for c := 0; c < p.cols && c < len(data[r]); c++ {
			if data[r][c] != 0 {
				p.cells[r*p.cols+c] = true
			}
		}
	}
	return p
}
