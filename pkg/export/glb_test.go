package export_test

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/export"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/render"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

func solidOf(t *testing.T, coords ...voxel.Coord) *voxel.Grid {
	t.Helper()
	g := voxel.NewGrid(voxel.DefaultSize)
	for _, c := range coords {
		require.NoError(t, g.SetCoord(c, true))
	}
	return g
}

func TestBuildMeshSingleBlock(t *testing.T) {
	m := export.BuildMesh(solidOf(t, voxel.Coord{}), render.DefaultShading())
	assert.Equal(t, 6, m.Faces())
	assert.Len(t, m.Positions, 24)
	assert.Len(t, m.Normals, 24)
	assert.Len(t, m.Colors, 24)
	assert.Len(t, m.Indices, 36)
}

func TestBuildMeshSkipsSharedFaces(t *testing.T) {
	m := export.BuildMesh(solidOf(t, voxel.Coord{}, voxel.Coord{X: 1}), render.DefaultShading())
	assert.Equal(t, 10, m.Faces())
}

func TestBuildMeshWindsOutward(t *testing.T) {
	m := export.BuildMesh(solidOf(t, voxel.Coord{}, voxel.Coord{Y: 1}, voxel.Coord{Z: 1}), render.DefaultShading())
	for i := 0; i < len(m.Indices); i += 3 {
		p0, p1, p2 := m.Positions[m.Indices[i]], m.Positions[m.Indices[i+1]], m.Positions[m.Indices[i+2]]
		e1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		e2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		n := m.Normals[m.Indices[i]]
		dot := cross[0]*n[0] + cross[1]*n[1] + cross[2]*n[2]
		assert.Greater(t, dot, float32(0), "triangle %d winds inward", i/3)
	}
}

func TestBuildMeshColours(t *testing.T) {
	shading := render.DefaultShading()
	m := export.BuildMesh(solidOf(t, voxel.Coord{}), shading)
	for i, n := range m.Normals {
		if n == [3]float32{0, 1, 0} {
			assert.Equal(t, shading.Palette.Top.Float4(), m.Colors[i])
		}
		if n == [3]float32{0, 0, -1} {
			assert.Equal(t, shading.Palette.Hidden.Float4(), m.Colors[i])
		}
	}
}

func TestSaveGLB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "solid.glb")
	solid := solidOf(t, voxel.Coord{}, voxel.Coord{X: 1})
	require.NoError(t, export.SaveGLB(path, solid, render.DefaultShading()))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	require.Len(t, doc.Meshes, 1)
	require.Len(t, doc.Meshes[0].Primitives, 1)

	prim := doc.Meshes[0].Primitives[0]
	pos := doc.Accessors[prim.Attributes[gltf.POSITION]]
	assert.EqualValues(t, 40, pos.Count)
	require.NotNil(t, prim.Indices)
	assert.EqualValues(t, 60, doc.Accessors[*prim.Indices].Count)
}

func TestSaveGLBEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.glb")
	err := export.SaveGLB(path, voxel.NewGrid(voxel.DefaultSize), render.DefaultShading())
	assert.Error(t, err)
}
