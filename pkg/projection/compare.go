package projection

import "github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"

// Match reports whether two silhouettes show the same shape regardless of
// where on the canvas it was drawn.
func Match(student, solution *voxel.Plane) bool {
	a, _, _ := voxel.NormalizePlane(student)
	b, _, _ := voxel.NormalizePlane(solution)
	return a.Equal(b)
}

// Verdict is the comparison outcome for one view.
type Verdict struct {
	View    View `json:"view"`
	Correct bool `json:"correct"`
	Missing int  `json:"missing"` // solution cells absent from the answer, after alignment
	Extra   int  `json:"extra"`   // answer cells absent from the solution, after alignment
}

// Compare grades a student's drawing of view v against the solution set.
// The drawing may be ragged or partially filled; missing cells are empty.
func (c *Calculator) Compare(v View, drawing [][]int, solution Set) Verdict {
	student := voxel.PlaneFromNested(c.size, c.size, drawing)
	want := solution.Get(v).Cells

	a, _, _ := voxel.NormalizePlane(student)
	b, _, _ := voxel.NormalizePlane(want)
	verdict := Verdict{View: v, Correct: a.Equal(b)}
	if verdict.Correct {
		return verdict
	}

	rows, cols := max(a.Rows(), b.Rows()), max(a.Cols(), b.Cols())
	for r := 0; r < rows; r++ {
		for col := 0; col < cols; col++ {
			got, exp := a.Get(r, col), b.Get(r, col)
			switch {
			case exp && !got:
				verdict.Missing++
			case got && !exp:
				verdict.Extra++
			}
		}
	}
	return verdict
}
