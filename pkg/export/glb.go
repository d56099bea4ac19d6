// Package export writes solids as binary glTF. Every exposed cube face
// becomes a quad coloured by the renderer's shading rules at rest
// orientation, so the model matches what the drawing surface shows
// before any drag.
package export

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/render"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

// Mesh is a flat-shaded quad mesh.
type Mesh struct {
	Positions [][3]float32
	Normals   [][3]float32
	Colors    [][4]float32
	Indices   []uint32
}

// Faces returns the number of quads in m.
func (m *Mesh) Faces() int { return len(m.Positions) / 4 }

// BuildMesh collects the exposed faces of solid, one unit per block.
func BuildMesh(solid *voxel.Grid, shading render.Shading) *Mesh {
	m := &Mesh{}
	for _, c := range solid.Coords() {
		base := [3]float32{float32(c.X), float32(c.Y), float32(c.Z)}
		for _, f := range render.Faces {
			if !render.Exposed(solid, c, f) {
				continue
			}
			color := shading.PaintFace(f.Normal).Fill.Float4()
			normal := [3]float32{float32(f.Normal.X), float32(f.Normal.Y), float32(f.Normal.Z)}
			first := uint32(len(m.Positions))
			for _, ci := range f.Corners {
				u := render.UnitCorners[ci]
				m.Positions = append(m.Positions, [3]float32{
					base[0] + float32(u.X),
					base[1] + float32(u.Y),
					base[2] + float32(u.Z),
				})
				m.Normals = append(m.Normals, normal)
				m.Colors = append(m.Colors, color)
			}
			m.Indices = append(m.Indices, quad(first, f)...)
		}
	}
	return m
}

// quad triangulates a face so both triangles wind counter-clockwise when
// seen from outside the cube.
func quad(first uint32, f render.FaceDefinition) []uint32 {
	a := render.UnitCorners[f.Corners[0]]
	b := render.UnitCorners[f.Corners[1]]
	c := render.UnitCorners[f.Corners[2]]
	if b.Sub(a).Cross(c.Sub(a)).Dot(f.Normal) > 0 {
		return []uint32{first, first + 1, first + 2, first, first + 2, first + 3}
	}
	return []uint32{first, first + 2, first + 1, first, first + 3, first + 2}
}

// Document builds a glTF document holding solid as a single mesh.
func Document(solid *voxel.Grid, shading render.Shading) (*gltf.Document, error) {
	m := BuildMesh(solid, shading)
	if len(m.Positions) == 0 {
		return nil, fmt.Errorf("export: solid is empty")
	}

	doc := gltf.NewDocument()
	doc.Asset.Generator = "Technical Drawing Practice"

	posAccessor := modeler.WritePosition(doc, m.Positions)
	normalAccessor := modeler.WriteNormal(doc, m.Normals)
	colorAccessor := modeler.WriteColor(doc, m.Colors)
	indicesAccessor := modeler.WriteIndices(doc, m.Indices)

	prim := &gltf.Primitive{
		Attributes: map[string]uint32{
			gltf.POSITION: uint32(posAccessor),
			gltf.NORMAL:   uint32(normalAccessor),
			gltf.COLOR_0:  uint32(colorAccessor),
		},
		Indices:  gltf.Index(uint32(indicesAccessor)),
		Material: gltf.Index(0),
	}

	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float32{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	doc.Materials = []*gltf.Material{{PBRMetallicRoughness: pbr, AlphaMode: gltf.AlphaOpaque}}

	doc.Meshes = []*gltf.Mesh{{Name: "Solid", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Name: "Solid", Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(0))
	return doc, nil
}

// SaveGLB writes solid to path as a .glb file.
func SaveGLB(path string, solid *voxel.Grid, shading render.Shading) error {
	doc, err := Document(solid, shading)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("export: %s: %w", path, err)
	}
	return nil
}
