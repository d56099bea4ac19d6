package render

// DefaultDragSensitivity is the rotation, in radians, per pixel of drag.
const DefaultDragSensitivity = 0.01

// DragAnchor records where a drag began and the angles at that moment.
type DragAnchor struct {
	X, Y      float64
	RotationX float64
	RotationY float64
}

// ViewState is the rotation of the model as shown to the learner. It is a
// value: every transition returns a new state, so a renderer always reads
// one consistent pair of angles.
type ViewState struct {
	RotationX float64     `json:"rotationX"` // pitch, radians
	RotationY float64     `json:"rotationY"` // yaw, radians
	Anchor    *DragAnchor `json:"-"`
	Solid     uint64      `json:"solid"` // fingerprint of the solid these angles belong to
}

// ForSolid returns s unchanged if it already belongs to the solid with the
// given fingerprint, and the canonical orientation for that solid otherwise.
func (s ViewState) ForSolid(fingerprint uint64) ViewState {
	if s.Solid == fingerprint {
		return s
	}
	return ViewState{Solid: fingerprint}
}

// BeginDrag anchors a drag at screen position (x, y).
func (s ViewState) BeginDrag(x, y float64) ViewState {
	s.Anchor = &DragAnchor{X: x, Y: y, RotationX: s.RotationX, RotationY: s.RotationY}
	return s
}

// DragTo sets the angles from the anchor plus the pointer travel times
// sensitivity: horizontal travel turns yaw, vertical travel turns pitch.
// Without an anchor the state is returned unchanged.
func (s ViewState) DragTo(x, y, sensitivity float64) ViewState {
	if s.Anchor == nil {
		return s
	}
	s.RotationY = s.Anchor.RotationY + (x-s.Anchor.X)*sensitivity
	s.RotationX = s.Anchor.RotationX + (y-s.Anchor.Y)*sensitivity
	return s
}

// EndDrag drops the anchor, keeping the current angles.
func (s ViewState) EndDrag() ViewState {
	s.Anchor = nil
	return s
}

// Dragging reports whether a drag is in progress.
func (s ViewState) Dragging() bool {
	return s.Anchor != nil
}
