package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/plattj-ai/Technical-Drawing-Practice/internal/config"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/catalog"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/export"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/projection"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/render"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/script"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/shape"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/snapshot"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

// ErrNoShape is returned by bindings that need a published shape.
var ErrNoShape = errors.New("no shape loaded")

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx context.Context
	log zerolog.Logger

	size        int
	maxAttempts int
	sensitivity float64

	calc     *projection.Calculator
	renderer *render.Renderer
	engine   *script.Engine
	catalog  *catalog.Catalog
	shading  render.Shading

	// genMu serializes use of the generator's random source.
	genMu sync.Mutex
	gen   *shape.Generator

	mu      sync.Mutex
	current *exercise
	view    render.ViewState
}

// exercise is a published shape. It is never modified after publication.
type exercise struct {
	name  string
	tier  shape.Tier
	solid *voxel.Grid
	dims  voxel.Dimensions
	set   projection.Set
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// ShapeData describes the published shape and its three views.
type ShapeData struct {
	Name        string             `json:"name,omitempty"`
	Tier        shape.Tier         `json:"tier,omitempty"`
	Fingerprint string             `json:"fingerprint"`
	Blocks      int                `json:"blocks"`
	Dimensions  voxel.Dimensions   `json:"dimensions"`
	Front       [][]int            `json:"front"`
	Top         [][]int            `json:"top"`
	Side        [][]int            `json:"side"`
	Offsets     projection.Offsets `json:"offsets"`
}

// EvalResult is returned by bindings that build a shape from a script.
type EvalResult struct {
	Shape  *ShapeData      `json:"shape"`
	Errors []EvalErrorData `json:"errors"`
}

// RenderData is one frame of the isometric model.
type RenderData struct {
	Polygons []render.Polygon `json:"polygons"`
	View     render.ViewState `json:"view"`
}

// NewApp wires the engine components from cfg.
func NewApp(cfg *config.Config, log zerolog.Logger) (*App, error) {
	opts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	size := cfg.Grid.Size
	return &App{
		log:         log,
		size:        size,
		maxAttempts: cfg.Generator.MaxAttempts,
		sensitivity: cfg.Render.DragSensitivity,
		calc:        projection.NewCalculator(size),
		renderer:    render.New(opts),
		engine:      script.NewEngine(size),
		catalog:     cat,
		shading:     opts.Shading,
		gen: shape.New(
			shape.WithGridSize(size),
			shape.WithTiers(cfg.Tiers()),
			shape.WithLogger(log.With().Str("component", "generator").Logger()),
		),
	}, nil
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// publish makes ex the current shape. The view keeps its angles only if
// the new solid is identical to the old one.
func (a *App) publish(ex *exercise) *ShapeData {
	fp := ex.solid.Fingerprint()

	a.mu.Lock()
	a.current = ex
	a.view = a.view.ForSolid(fp)
	a.mu.Unlock()

	a.log.Info().
		Str("name", ex.name).
		Str("tier", string(ex.tier)).
		Int("blocks", ex.solid.Count()).
		Str("fingerprint", fmt.Sprintf("%016x", fp)).
		Msg("shape published")
	return ex.data()
}

func (ex *exercise) data() *ShapeData {
	return &ShapeData{
		Name:        ex.name,
		Tier:        ex.tier,
		Fingerprint: fmt.Sprintf("%016x", ex.solid.Fingerprint()),
		Blocks:      ex.solid.Count(),
		Dimensions:  ex.dims,
		Front:       ex.set.Front.Cells.Nested(),
		Top:         ex.set.Top.Cells.Nested(),
		Side:        ex.set.Side.Cells.Nested(),
		Offsets:     ex.set.Offsets(),
	}
}

func (a *App) snapshotCurrent() (*exercise, render.ViewState, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.current == nil {
		return nil, a.view, ErrNoShape
	}
	return a.current, a.view, nil
}

// NewShape generates a random solid of the named tier and publishes it.
func (a *App) NewShape(tier string) (*ShapeData, error) {
	t := shape.Tier(tier)

	a.genMu.Lock()
	solid, err := a.gen.Generate(t, a.maxAttempts)
	a.genMu.Unlock()
	if err != nil {
		a.log.Warn().Err(err).Str("tier", tier).Msg("generation failed")
		return nil, err
	}

	dims := voxel.Measure(solid)
	return a.publish(&exercise{
		tier:  t,
		solid: solid,
		dims:  dims,
		set:   a.calc.Project(solid, dims),
	}), nil
}

// Tiers lists the difficulty tiers from easiest to hardest.
func (a *App) Tiers() []shape.Tier {
	return a.gen.Tiers().Names()
}

// Evaluate builds a shape from script source and publishes it. Script
// problems come back in Errors and leave the current shape in place.
func (a *App) Evaluate(source string) EvalResult {
	return a.evaluate("", "", source)
}

func (a *App) evaluate(name string, tier shape.Tier, source string) EvalResult {
	result := EvalResult{Errors: []EvalErrorData{}}

	res, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		a.log.Error().Err(err).Str("name", name).Msg("evaluate fatal error")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}
	if res.Empty() {
		result.Errors = append(result.Errors, EvalErrorData{Message: "script placed no blocks"})
		return result
	}

	result.Shape = a.publish(&exercise{
		name:  name,
		tier:  tier,
		solid: res.Solid,
		dims:  res.Dimensions,
		set:   a.calc.Project(res.Solid, res.Dimensions),
	})
	return result
}

// Exercises lists the preset exercises.
func (a *App) Exercises() []catalog.Exercise {
	return a.catalog.Exercises
}

// LoadExercise evaluates the named preset and publishes it.
func (a *App) LoadExercise(name string) (EvalResult, error) {
	e, err := a.catalog.Find(name)
	if err != nil {
		return EvalResult{}, err
	}
	a.log.Info().Str("name", name).Msg("loading exercise")
	return a.evaluate(e.Name, e.Tier, e.Source), nil
}

// Current returns the published shape.
func (a *App) Current() (*ShapeData, error) {
	ex, _, err := a.snapshotCurrent()
	if err != nil {
		return nil, err
	}
	return ex.data(), nil
}

// Render draws the current shape at the current view angles.
func (a *App) Render() (RenderData, error) {
	ex, view, err := a.snapshotCurrent()
	if err != nil {
		return RenderData{}, err
	}
	return RenderData{Polygons: a.renderer.RenderView(ex.solid, view), View: view}, nil
}

// BeginDrag anchors a rotation drag at screen position (x, y).
func (a *App) BeginDrag(x, y float64) {
	a.mu.Lock()
	a.view = a.view.BeginDrag(x, y)
	a.mu.Unlock()
}

// Drag rotates the model by the pointer travel since BeginDrag and
// returns the redrawn frame.
func (a *App) Drag(x, y float64) (RenderData, error) {
	a.mu.Lock()
	a.view = a.view.DragTo(x, y, a.sensitivity)
	a.mu.Unlock()
	return a.Render()
}

// EndDrag finishes a rotation drag.
func (a *App) EndDrag() {
	a.mu.Lock()
	a.view = a.view.EndDrag()
	a.mu.Unlock()
}

// ResetView returns the model to its canonical orientation.
func (a *App) ResetView() (RenderData, error) {
	a.mu.Lock()
	a.view = render.ViewState{Solid: a.view.Solid}
	a.mu.Unlock()
	return a.Render()
}

// Unproject lists the blocks of the current shape behind a cell of the
// named view.
func (a *App) Unproject(view string, row, col int) ([]voxel.Coord, error) {
	v, err := projection.ParseView(view)
	if err != nil {
		return nil, err
	}
	ex, _, err := a.snapshotCurrent()
	if err != nil {
		return nil, err
	}
	blocks := a.calc.Unproject(ex.solid, v, row, col, ex.set.Offsets())
	if blocks == nil {
		blocks = []voxel.Coord{}
	}
	return blocks, nil
}

// CheckSilhouette grades a drawn silhouette of the named view.
func (a *App) CheckSilhouette(view string, cells [][]int) (projection.Verdict, error) {
	v, err := projection.ParseView(view)
	if err != nil {
		return projection.Verdict{}, err
	}
	ex, _, err := a.snapshotCurrent()
	if err != nil {
		return projection.Verdict{}, err
	}
	verdict := a.calc.Compare(v, cells, ex.set)
	a.log.Debug().
		Str("view", v.String()).
		Bool("correct", verdict.Correct).
		Int("missing", verdict.Missing).
		Int("extra", verdict.Extra).
		Msg("silhouette checked")
	return verdict, nil
}

// HintSnapshot returns the record handed to the hint collaborator.
func (a *App) HintSnapshot() (*snapshot.Snapshot, error) {
	ex, _, err := a.snapshotCurrent()
	if err != nil {
		return nil, err
	}
	return snapshot.Take(ex.solid, ex.set), nil
}

// ExportGLB writes the current shape to path as binary glTF.
func (a *App) ExportGLB(path string) error {
	ex, _, err := a.snapshotCurrent()
	if err != nil {
		return err
	}
	if err := export.SaveGLB(path, ex.solid, a.shading); err != nil {
		a.log.Error().Err(err).Str("path", path).Msg("export failed")
		return err
	}
	a.log.Info().Str("path", path).Msg("exported shape")
	return nil
}
