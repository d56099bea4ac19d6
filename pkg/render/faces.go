package render

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// FaceID names a face of the unit cube by its outward direction in the
// cube's own, unrotated frame.
type FaceID int

const (
	FaceTop    FaceID = iota // +y
	FaceBottom               // -y
	FaceFront                // +z
	FaceBack                 // -z
	FaceRight                // +x
	FaceLeft                 // -x
)

func (f FaceID) String() string {
	switch f {
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceRight:
		return "right"
	case FaceLeft:
		return "left"
	}
	return "unknown"
}

// MarshalText encodes the face by name.
func (f FaceID) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// FaceDefinition is one face of the unit cube: four indices into
// UnitCorners traced around its perimeter, and its outward normal.
type FaceDefinition struct {
	ID      FaceID
	Corners [4]int
	Normal  v3.Vec
	// Step is the grid offset of the neighbour sharing this face.
	Step [3]int
}

// UnitCorners are the eight corners of the unit cube.
var UnitCorners = [8]v3.Vec{
	{X: 0, Y: 0, Z: 0},
	{X: 1, Y: 0, Z: 0},
	{X: 1, Y: 1, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 1, Y: 0, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: 0, Y: 1, Z: 1},
}

// Faces is the fixed emission order of cube faces.
var Faces = [6]FaceDefinition{
	{ID: FaceTop, Corners: [4]int{3, 2, 6, 7}, Normal: v3.Vec{X: 0, Y: 1, Z: 0}, Step: [3]int{0, 1, 0}},
	{ID: FaceBottom, Corners: [4]int{0, 1, 5, 4}, Normal: v3.Vec{X: 0, Y: -1, Z: 0}, Step: [3]int{0, -1, 0}},
	{ID: FaceFront, Corners: [4]int{4, 5, 6, 7}, Normal: v3.Vec{X: 0, Y: 0, Z: 1}, Step: [3]int{0, 0, 1}},
	{ID: FaceBack, Corners: [4]int{0, 1, 2, 3}, Normal: v3.Vec{X: 0, Y: 0, Z: -1}, Step: [3]int{0, 0, -1}},
	{ID: FaceRight, Corners: [4]int{1, 2, 6, 5}, Normal: v3.Vec{X: 1, Y: 0, Z: 0}, Step: [3]int{1, 0, 0}},
	{ID: FaceLeft, Corners: [4]int{0, 3, 7, 4}, Normal: v3.Vec{X: -1, Y: 0, Z: 0}, Step: [3]int{-1, 0, 0}},
}
