package snapshot_test

import (
	"bytes"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/projection"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/shape"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/snapshot"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

func generated(t *testing.T) (*voxel.Grid, projection.Set) {
	t.Helper()
	gen := shape.New(shape.WithSeed(7))
	solid, err := gen.Generate(shape.Medium, shape.DefaultMaxAttempts)
	require.NoError(t, err)
	return solid, projection.NewCalculator(voxel.DefaultSize).ProjectSolid(solid)
}

func TestTake(t *testing.T) {
	solid, set := generated(t)
	s := snapshot.Take(solid, set)

	assert.Equal(t, snapshot.Version, s.Version)
	assert.Equal(t, voxel.DefaultSize, s.Size)
	assert.Equal(t, voxel.Measure(solid), s.Dimensions)
	assert.True(t, solid.Equal(s.Grid()))
	assert.Equal(t, set.Offsets(), s.Offsets)
	assert.Equal(t, set.Top.Cells.Nested(), s.View(projection.Top))

	fp, err := snapshot.ParseFingerprint(s.Fingerprint)
	require.NoError(t, err)
	assert.Equal(t, solid.Fingerprint(), fp)

	// Later edits to the solid do not leak into the snapshot.
	for _, c := range solid.Coords() {
		require.NoError(t, solid.SetCoord(c, false))
	}
	assert.False(t, solid.Equal(s.Grid()))
}

func TestEncodeDecode(t *testing.T) {
	solid, set := generated(t)
	s := snapshot.Take(solid, set)

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))

	got, err := snapshot.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestDecodeRejectsTampering(t *testing.T) {
	solid, set := generated(t)
	s := snapshot.Take(solid, set)
	s.Solid[0][0][0] ^= 1

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf))

	_, err := snapshot.Decode(&buf)
	assert.ErrorIs(t, err, snapshot.ErrFingerprint)
}

func TestDecodeRejectsVersion(t *testing.T) {
	var raw bytes.Buffer
	enc, err := zstd.NewWriter(&raw)
	require.NoError(t, err)
	_, err = enc.Write([]byte(`{"version":99,"fingerprint":"0"}` + "\n{}"))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	_, err = snapshot.Decode(&raw)
	assert.ErrorIs(t, err, snapshot.ErrVersion)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := snapshot.Decode(bytes.NewReader([]byte("not zstd at all")))
	assert.Error(t, err)
}
