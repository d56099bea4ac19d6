// Package snapshot builds the immutable record handed to the hint and
// tutoring side: the solid as nested 0/1 values, its three silhouettes and
// their canvas offsets. Snapshots travel as a JSON header line followed by
// a JSON body, zstd compressed.
package snapshot

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/klauspost/compress/zstd"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/projection"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

// Version is the current encoding version.
const Version = 1

var (
	ErrVersion     = errors.New("snapshot: unsupported version")
	ErrFingerprint = errors.New("snapshot: fingerprint mismatch")
)

type Header struct {
	Version     int    `json:"version"`
	Fingerprint string `json:"fingerprint"`
}

type Snapshot struct {
	Header
	Size       int                `json:"size"`
	Dimensions voxel.Dimensions   `json:"dimensions"`
	Solid      [][][]int          `json:"solid"`
	Front      [][]int            `json:"front"`
	Top        [][]int            `json:"top"`
	Side       [][]int            `json:"side"`
	Offsets    projection.Offsets `json:"offsets"`
}

// Take records solid and its projections. The snapshot shares no memory
// with its inputs.
func Take(solid *voxel.Grid, set projection.Set) *Snapshot {
	return &Snapshot{
		Header: Header{
			Version:     Version,
			Fingerprint: formatFingerprint(solid.Fingerprint()),
		},
		Size:       solid.Extent().Width,
		Dimensions: voxel.Measure(solid),
		Solid:      solid.Nested(),
		Front:      set.Front.Cells.Nested(),
		Top:        set.Top.Cells.Nested(),
		Side:       set.Side.Cells.Nested(),
		Offsets:    set.Offsets(),
	}
}

// Grid rebuilds the solid.
func (s *Snapshot) Grid() *voxel.Grid {
	return voxel.GridFromNested(s.Size, s.Solid)
}

// View returns the silhouette rows of v.
func (s *Snapshot) View(v projection.View) [][]int {
	switch v {
	case projection.Top:
		return s.Top
	case projection.Side:
		return s.Side
	}
	return s.Front
}

// Encode writes the compressed snapshot to w.
func (s *Snapshot) Encode(w io.Writer) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	bw := bufio.NewWriter(enc)

	hb, err := json.Marshal(s.Header)
	if err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: header: %w", err)
	}
	if _, err := bw.Write(append(hb, '\n')); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	if err := json.NewEncoder(bw).Encode(s); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: body: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return fmt.Errorf("snapshot: %w", err)
	}
	return enc.Close()
}

// Decode reads a snapshot written by Encode and checks that the solid
// still matches its fingerprint.
func Decode(r io.Reader) (*Snapshot, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	defer dec.Close()

	br := bufio.NewReader(dec)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("snapshot: header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return nil, fmt.Errorf("snapshot: header: %w", err)
	}
	if h.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, h.Version)
	}

	var s Snapshot
	if err := json.NewDecoder(br).Decode(&s); err != nil {
		return nil, fmt.Errorf("snapshot: body: %w", err)
	}
	if s.Header != h {
		return nil, fmt.Errorf("snapshot: header does not match body")
	}
	if got := formatFingerprint(s.Grid().Fingerprint()); got != h.Fingerprint {
		return nil, fmt.Errorf("%w: have %s, header says %s", ErrFingerprint, got, h.Fingerprint)
	}
	return &s, nil
}

func formatFingerprint(fp uint64) string {
	return fmt.Sprintf("%016x", fp)
}

// ParseFingerprint converts a header fingerprint back to its numeric form.
func ParseFingerprint(s string) (uint64, error) {
	fp, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("snapshot: fingerprint %q: %w", s, err)
	}
	return fp, nil
}
