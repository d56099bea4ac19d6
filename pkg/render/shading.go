package render

import v3 "github.com/deadsy/sdfx/vec/v3"

// Palette holds the base colours of the model. Top, Front and Side match
// the colours of the corresponding silhouette views.
type Palette struct {
	Top          RGB `json:"top"`
	Front        RGB `json:"front"`
	Side         RGB `json:"side"`
	Hidden       RGB `json:"hidden"`
	HiddenStroke RGB `json:"hiddenStroke"`
	Outline      RGB `json:"outline"`
}

// Shades are brightness factors applied to base colours.
type Shades struct {
	Front  float64 `json:"front"`
	Side   float64 `json:"side"`
	Bottom float64 `json:"bottom"`
}

// Shading combines a palette with its shade factors.
type Shading struct {
	Palette Palette
	Shades  Shades
}

// DefaultShading returns the stock red/yellow/blue scheme.
func DefaultShading() Shading {
	return Shading{
		Palette: Palette{
			Top:          RGB{R: 0xf1, G: 0xc4, B: 0x0f},
			Front:        RGB{R: 0xe7, G: 0x4c, B: 0x3c},
			Side:         RGB{R: 0x34, G: 0x98, B: 0xdb},
			Hidden:       RGB{R: 0xbd, G: 0xc3, B: 0xc7},
			HiddenStroke: RGB{R: 0x7f, G: 0x8c, B: 0x8d},
			Outline:      RGB{R: 0x2c, G: 0x3e, B: 0x50},
		},
		Shades: Shades{Front: 0.85, Side: 0.7, Bottom: 0.5},
	}
}

// Paint is the fill and stroke chosen for a face.
type Paint struct {
	Fill   RGB
	Stroke RGB
	Dashed bool
}

// PaintFace picks the paint for a face from its unrotated normal, so a
// face keeps its colour however the model is turned. Back and left faces
// (negative x or z) are drawn grey with a dashed outline.
func (s Shading) PaintFace(normal v3.Vec) Paint {
	if normal.X < 0 || normal.Z < 0 {
		return Paint{Fill: s.Palette.Hidden, Stroke: s.Palette.HiddenStroke, Dashed: true}
	}
	p := Paint{Stroke: s.Palette.Outline}
	switch {
	case normal.Y > 0:
		p.Fill = s.Palette.Top
	case normal.Z > 0:
		p.Fill = s.Palette.Front.Scale(s.Shades.Front)
	case normal.X > 0:
		p.Fill = s.Palette.Side.Scale(s.Shades.Side)
	default:
		p.Fill = s.Palette.Top.Scale(s.Shades.Bottom)
	}
	return p
}
