// Package render draws a voxel solid as an isometric model. It rotates the
// solid, projects it to screen space, keeps the exposed camera-facing
// faces, orders blocks back to front and shades each face. The output is
// a list of screen polygons for a drawing collaborator to rasterize.
package render

import (
	"math"
	"sort"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

var (
	cos30 = math.Cos(math.Pi / 6)
	sin30 = math.Sin(math.Pi / 6)
)

// viewDir points from the model toward the viewer.
var viewDir = v3.Vec{X: 1, Y: 1, Z: 1}

// Options configures a Renderer.
type Options struct {
	BlockSize    float64
	CanvasWidth  float64
	CanvasHeight float64
	Shading      Shading
}

// DefaultOptions returns a 400x400 canvas with 30px blocks.
func DefaultOptions() Options {
	return Options{
		BlockSize:    30,
		CanvasWidth:  400,
		CanvasHeight: 400,
		Shading:      DefaultShading(),
	}
}

// Point is a screen-space position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is one shaded cube face in screen space.
type Polygon struct {
	Block  voxel.Coord `json:"block"`
	Face   FaceID      `json:"face"`
	Points [4]Point    `json:"points"`
	Fill   RGB         `json:"fill"`
	Stroke RGB         `json:"stroke"`
	Dashed bool        `json:"dashed"`
}

// DrawableBlock is one occupied voxel prepared for drawing.
type DrawableBlock struct {
	Coord  voxel.Coord
	Center v3.Vec // block centre after rotation
	Depth  float64
}

// Renderer turns solids into polygon lists. It holds no per-render state.
type Renderer struct {
	opts Options
}

// New returns a Renderer.
func New(opts Options) *Renderer {
	return &Renderer{opts: opts}
}

// Options returns the renderer configuration.
func (r *Renderer) Options() Options { return r.opts }

// Rotation returns yaw about the vertical axis followed by pitch about
// the horizontal axis.
func Rotation(rotationX, rotationY float64) sdf.M44 {
	return sdf.RotateX(rotationX).Mul(sdf.RotateY(rotationY))
}

// project maps a rotated point to unshifted isometric screen space.
func (r *Renderer) project(p v3.Vec) v2.Vec {
	bs := r.opts.BlockSize
	return v2.Vec{
		X: (p.X - p.Z) * bs * cos30,
		Y: (p.X+p.Z)*bs*sin30 - p.Y*bs,
	}
}

// Blocks returns the solid's voxels rotated and sorted back to front.
func (r *Renderer) Blocks(solid *voxel.Grid, rot sdf.M44) []DrawableBlock {
	coords := solid.Coords()
	blocks := make([]DrawableBlock, 0, len(coords))
	for _, c := range coords {
		center := rot.MulPosition(v3.Vec{X: float64(c.X) + 0.5, Y: float64(c.Y) + 0.5, Z: float64(c.Z) + 0.5})
		blocks = append(blocks, DrawableBlock{
			Coord:  c,
			Center: center,
			Depth:  center.X + center.Y + center.Z,
		})
	}
	sort.SliceStable(blocks, func(i, j int) bool { return blocks[i].Depth < blocks[j].Depth })
	return blocks
}

// offset centres the projected bounding box of the solid on the canvas.
func (r *Renderer) offset(solid *voxel.Grid, rot sdf.M44) v2.Vec {
	lo, hi, ok := voxel.Bounds(solid)
	if !ok {
		return v2.Vec{X: r.opts.CanvasWidth / 2, Y: r.opts.CanvasHeight / 2}
	}
	minP := v2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	maxP := v2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, k := range UnitCorners {
		corner := v3.Vec{
			X: float64(lo.X) + k.X*float64(hi.X-lo.X+1),
			Y: float64(lo.Y) + k.Y*float64(hi.Y-lo.Y+1),
			Z: float64(lo.Z) + k.Z*float64(hi.Z-lo.Z+1),
		}
		p := r.project(rot.MulPosition(corner))
		minP = v2.Vec{X: math.Min(minP.X, p.X), Y: math.Min(minP.Y, p.Y)}
		maxP = v2.Vec{X: math.Max(maxP.X, p.X), Y: math.Max(maxP.Y, p.Y)}
	}
	return v2.Vec{
		X: r.opts.CanvasWidth/2 - (minP.X+maxP.X)/2,
		Y: r.opts.CanvasHeight/2 - (minP.Y+maxP.Y)/2,
	}
}

// Visible reports whether face f of the block at c is drawn under rot:
// its neighbour cell must be empty or outside the grid, and its rotated
// normal must face the viewer.
func Visible(solid *voxel.Grid, c voxel.Coord, f FaceDefinition, rot sdf.M44) bool {
	if !Exposed(solid, c, f) {
		return false
	}
	return rot.MulPosition(f.Normal).Dot(viewDir) > 0
}

// Exposed reports whether face f of the block at c borders an empty cell.
func Exposed(solid *voxel.Grid, c voxel.Coord, f FaceDefinition) bool {
	return !solid.Filled(c.Add(voxel.Coord{X: f.Step[0], Y: f.Step[1], Z: f.Step[2]}))
}

// Render draws solid at the given pitch (rotationX) and yaw (rotationY),
// both in radians. Polygons are ordered for painting: blocks back to
// front, and each block's faces in Faces order.
func (r *Renderer) Render(solid *voxel.Grid, rotationX, rotationY float64) []Polygon {
	rot := Rotation(rotationX, rotationY)
	shift := r.offset(solid, rot)

	var out []Polygon
	for _, b := range r.Blocks(solid, rot) {
		base := v3.Vec{X: float64(b.Coord.X), Y: float64(b.Coord.Y), Z: float64(b.Coord.Z)}
		for _, f := range Faces {
			if !Visible(solid, b.Coord, f, rot) {
				continue
			}
			paint := r.opts.Shading.PaintFace(f.Normal)
			poly := Polygon{
				Block:  b.Coord,
				Face:   f.ID,
				Fill:   paint.Fill,
				Stroke: paint.Stroke,
				Dashed: paint.Dashed,
			}
			for i, ci := range f.Corners {
				p := r.project(rot.MulPosition(base.Add(UnitCorners[ci]))).Add(shift)
				poly.Points[i] = Point{X: p.X, Y: p.Y}
			}
			out = append(out, poly)
		}
	}
	return out
}

// RenderView draws solid using the angles of s.
func (r *Renderer) RenderView(solid *voxel.Grid, s ViewState) []Polygon {
	return r.Render(solid, s.RotationX, s.RotationY)
}
