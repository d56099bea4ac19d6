package main

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/rs/zerolog"

	"github.com/plattj-ai/Technical-Drawing-Practice/internal/config"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/projection"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/shape"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.CatalogPath = filepath.Join("examples", "exercises.yaml")
	app, err := NewApp(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewApp: %v", err)
	}
	return app
}

// TestE2EStepExercise exercises the full pipeline: catalog → script engine
// → projections → render. This is the same path the Wails bindings take,
// but without the Wails runtime.
func TestE2EStepExercise(t *testing.T) {
	app := newTestApp(t)

	result, err := app.LoadExercise("step")
	if err != nil {
		t.Fatalf("LoadExercise: %v", err)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	s := result.Shape
	if s.Name != "step" || s.Tier != shape.Easy {
		t.Errorf("shape = %q/%q, want step/easy", s.Name, s.Tier)
	}
	if s.Blocks != 4 {
		t.Errorf("expected 4 blocks, got %d", s.Blocks)
	}
	want := voxel.Dimensions{Width: 3, Height: 2, Depth: 1}
	if s.Dimensions != want {
		t.Errorf("dimensions = %+v, want %+v", s.Dimensions, want)
	}

	// Front view of the step: a column of two on the left and a floor of three.
	front := voxel.PlaneFromNested(8, 8, s.Front)
	if front.Count() != 4 {
		t.Errorf("front view should cover 4 cells, got %d", front.Count())
	}
	top := voxel.PlaneFromNested(8, 8, s.Top)
	if top.Count() != 3 {
		t.Errorf("top view should cover 3 cells, got %d", top.Count())
	}

	frame, err := app.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(frame.Polygons) == 0 {
		t.Fatal("expected polygons")
	}
	for _, p := range frame.Polygons {
		if p.Dashed {
			t.Errorf("rest orientation should show no hidden faces, got %v on %v", p.Face, p.Block)
		}
	}
}

func TestNewShapeEveryTier(t *testing.T) {
	app := newTestApp(t)
	tiers := shape.DefaultTiers()

	for _, tier := range app.Tiers() {
		s, err := app.NewShape(string(tier))
		if err != nil {
			t.Fatalf("NewShape(%s): %v", tier, err)
		}
		r := tiers[tier]
		if !r.Contains(s.Blocks) {
			t.Errorf("%s: %d blocks outside %d-%d", tier, s.Blocks, r.Min, r.Max)
		}
		if s.Dimensions.IsZero() {
			t.Errorf("%s: zero dimensions", tier)
		}
		if len(s.Front) != 8 || len(s.Top) != 8 || len(s.Side) != 8 {
			t.Errorf("%s: views should be 8 rows", tier)
		}
	}
}

func TestNewShapeUnknownTier(t *testing.T) {
	app := newTestApp(t)
	_, err := app.NewShape("impossible")
	if !errors.Is(err, shape.ErrUnknownTier) {
		t.Fatalf("expected ErrUnknownTier, got %v", err)
	}
	if _, err := app.Current(); !errors.Is(err, ErrNoShape) {
		t.Errorf("failed generation must not publish, got %v", err)
	}
}

func TestDragRotatesAndResets(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.NewShape(string(shape.Easy)); err != nil {
		t.Fatalf("NewShape: %v", err)
	}

	app.BeginDrag(100, 100)
	frame, err := app.Drag(150, 120)
	if err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if math.Abs(frame.View.RotationY-0.5) > 1e-9 || math.Abs(frame.View.RotationX-0.2) > 1e-9 {
		t.Errorf("rotation = (%v, %v), want (0.2, 0.5)", frame.View.RotationX, frame.View.RotationY)
	}
	app.EndDrag()

	// Moving without a drag in progress changes nothing.
	frame, err = app.Drag(400, 400)
	if err != nil {
		t.Fatalf("Drag: %v", err)
	}
	if math.Abs(frame.View.RotationY-0.5) > 1e-9 {
		t.Errorf("rotation changed without a drag: %v", frame.View.RotationY)
	}

	frame, err = app.ResetView()
	if err != nil {
		t.Fatalf("ResetView: %v", err)
	}
	if frame.View.RotationX != 0 || frame.View.RotationY != 0 {
		t.Errorf("reset view = (%v, %v)", frame.View.RotationX, frame.View.RotationY)
	}
}

func TestNewSolidResetsRotation(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.LoadExercise("step"); err != nil {
		t.Fatalf("LoadExercise: %v", err)
	}
	app.BeginDrag(0, 0)
	if _, err := app.Drag(100, 0); err != nil {
		t.Fatalf("Drag: %v", err)
	}
	app.EndDrag()

	// Reloading the identical solid keeps the angles.
	if _, err := app.LoadExercise("step"); err != nil {
		t.Fatalf("LoadExercise: %v", err)
	}
	frame, _ := app.Render()
	if frame.View.RotationY == 0 {
		t.Error("same solid should keep its rotation")
	}

	if _, err := app.LoadExercise("bridge"); err != nil {
		t.Fatalf("LoadExercise: %v", err)
	}
	frame, _ = app.Render()
	if frame.View.RotationY != 0 || frame.View.RotationX != 0 {
		t.Errorf("new solid should reset rotation, got (%v, %v)", frame.View.RotationX, frame.View.RotationY)
	}
}

func TestUnprojectAndCheck(t *testing.T) {
	app := newTestApp(t)
	result, err := app.LoadExercise("corner-post")
	if err != nil || result.Shape == nil {
		t.Fatalf("LoadExercise: %v %v", err, result.Errors)
	}

	// The post is three blocks tall, so one top cell hides all three.
	top := voxel.PlaneFromNested(8, 8, result.Shape.Top)
	deepest := 0
	for _, rc := range top.Cells() {
		blocks, err := app.Unproject("top", rc[0], rc[1])
		if err != nil {
			t.Fatalf("Unproject: %v", err)
		}
		deepest = max(deepest, len(blocks))
	}
	if deepest != 3 {
		t.Errorf("expected a top cell over 3 blocks, got %d", deepest)
	}

	blocks, err := app.Unproject("front", 0, 0)
	if err != nil {
		t.Fatalf("Unproject: %v", err)
	}
	if blocks == nil || len(blocks) != 0 {
		t.Errorf("empty cell should give an empty list, got %v", blocks)
	}

	verdict, err := app.CheckSilhouette("top", result.Shape.Top)
	if err != nil {
		t.Fatalf("CheckSilhouette: %v", err)
	}
	if !verdict.Correct {
		t.Errorf("solution view should be correct: %+v", verdict)
	}

	// The same outline drawn in the corner of the sheet still matches.
	shifted := [][]int{{1, 1}, {1}}
	verdict, err = app.CheckSilhouette("top", shifted)
	if err != nil {
		t.Fatalf("CheckSilhouette: %v", err)
	}
	if !verdict.Correct {
		t.Errorf("translated drawing should be correct: %+v", verdict)
	}

	verdict, _ = app.CheckSilhouette("front", [][]int{{1}})
	if verdict.Correct || verdict.Missing == 0 {
		t.Errorf("single cell front view should be wrong with missing cells: %+v", verdict)
	}
}

func TestHintSnapshotAndExport(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.LoadExercise("stair"); err != nil {
		t.Fatalf("LoadExercise: %v", err)
	}

	snap, err := app.HintSnapshot()
	if err != nil {
		t.Fatalf("HintSnapshot: %v", err)
	}
	current, _ := app.Current()
	if snap.Fingerprint != current.Fingerprint {
		t.Errorf("snapshot fingerprint %s, want %s", snap.Fingerprint, current.Fingerprint)
	}
	if got := snap.Grid().Count(); got != current.Blocks {
		t.Errorf("snapshot holds %d blocks, want %d", got, current.Blocks)
	}
	if len(snap.View(projection.Side)) != 8 {
		t.Error("snapshot side view should have 8 rows")
	}

	path := filepath.Join(t.TempDir(), "stair.glb")
	if err := app.ExportGLB(path); err != nil {
		t.Fatalf("ExportGLB: %v", err)
	}
	doc, err := gltf.Open(path)
	if err != nil {
		t.Fatalf("gltf.Open: %v", err)
	}
	if len(doc.Meshes) != 1 {
		t.Errorf("expected 1 mesh, got %d", len(doc.Meshes))
	}
}

func TestExercisesListed(t *testing.T) {
	app := newTestApp(t)
	names := map[string]bool{}
	for _, e := range app.Exercises() {
		names[e.Name] = true
	}
	for _, want := range []string{"step", "bridge", "stair"} {
		if !names[want] {
			t.Errorf("missing exercise %q", want)
		}
	}
}
