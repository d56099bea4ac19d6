package render_test

import (
	"testing"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/render"
	"github.com/stretchr/testify/assert"
)

func TestDragAccumulates(t *testing.T) {
	s := render.ViewState{Solid: 42}

	s = s.BeginDrag(100, 100)
	assert.True(t, s.Dragging())
	s = s.DragTo(150, 80, 0.01)
	assert.InDelta(t, 0.5, s.RotationY, 1e-12)
	assert.InDelta(t, -0.2, s.RotationX, 1e-12)

	// Moves are relative to the anchor, not the previous event.
	s = s.DragTo(110, 100, 0.01)
	assert.InDelta(t, 0.1, s.RotationY, 1e-12)
	assert.InDelta(t, 0, s.RotationX, 1e-12)

	s = s.EndDrag()
	assert.False(t, s.Dragging())

	s = s.BeginDrag(0, 0).DragTo(0, 300, 0.01).EndDrag()
	assert.InDelta(t, 0.1, s.RotationY, 1e-12)
	assert.InDelta(t, 3, s.RotationX, 1e-12)
}

func TestDragWithoutAnchor(t *testing.T) {
	s := render.ViewState{RotationX: 1, RotationY: 2}
	assert.Equal(t, s, s.DragTo(500, 500, 1))
}

func TestTransitionsDoNotMutate(t *testing.T) {
	s := render.ViewState{}.BeginDrag(0, 0)
	moved := s.DragTo(10, 10, 1)
	assert.Zero(t, s.RotationX)
	assert.Equal(t, 10.0, moved.RotationX)
}

func TestForSolid(t *testing.T) {
	s := render.ViewState{RotationX: 0.3, RotationY: 1.2, Solid: 7}

	assert.Equal(t, s, s.ForSolid(7))

	reset := s.BeginDrag(1, 1).ForSolid(8)
	assert.Equal(t, render.ViewState{Solid: 8}, reset)
}
