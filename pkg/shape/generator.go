// Package shape grows random connected voxel solids for a difficulty tier.
package shape

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
	"github.com/rs/zerolog"
)

// DefaultMaxAttempts is the retry budget used when callers pass zero.
const DefaultMaxAttempts = 50

// topCandidates is how many of the highest frontier cells a growth step
// chooses among.
const topCandidates = 5

// ErrGenerationFailed is matched by every error returned when the attempt
// budget is exhausted. It is recoverable: retry, or ask for a smaller tier.
var ErrGenerationFailed = errors.New("shape: generation failed")

// GenerationError reports an exhausted attempt budget.
type GenerationError struct {
	Tier     Tier
	Range    Range
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("shape: no valid %q solid (%d-%d blocks) after %d attempts",
		e.Tier, e.Range.Min, e.Range.Max, e.Attempts)
}

// Is makes errors.Is(err, ErrGenerationFailed) hold.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// Generator produces solids. It is not safe for concurrent use because it
// owns its random source.
type Generator struct {
	size  int
	tiers Tiers
	rng   *rand.Rand
	log   zerolog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand injects the random source, making generation reproducible.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) { g.rng = r }
}

// WithSeed seeds a fresh PCG source.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithGridSize sets the edge length of generated grids.
func WithGridSize(size int) Option {
	return func(g *Generator) { g.size = size }
}

// WithTiers replaces the tier table.
func WithTiers(t Tiers) Option {
	return func(g *Generator) { g.tiers = t }
}

// WithLogger sets the logger used for attempt diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// New returns a Generator with an 8-cell grid, the default tiers and a
// time-seeded random source unless overridden.
func New(opts ...Option) *Generator {
	g := &Generator{
		size:  voxel.DefaultSize,
		tiers: DefaultTiers(),
		log:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(g)
	}
	if g.rng == nil {
		now := uint64(time.Now().UnixNano())
		g.rng = rand.New(rand.NewPCG(now, now>>17))
	}
	return g
}

// Size returns the grid edge length.
func (g *Generator) Size() int { return g.size }

// Tiers returns the tier table.
func (g *Generator) Tiers() Tiers { return g.tiers }

// Generate grows a solid whose block count lies in the tier's range.
func (g *Generator) Generate(t Tier, maxAttempts int) (*voxel.Grid, error) {
	r, err := g.tiers.Lookup(t)
	if err != nil {
		return nil, err
	}
	solid, err := g.GenerateRange(r, maxAttempts)
	var ge *GenerationError
	if errors.As(err, &ge) {
		ge.Tier = t
	}
	return solid, err
}

// GenerateRange grows a solid with a block count in r. The result is
// normalized so its minimum coordinate is zero on every axis and sits in
// a cubic grid of the generator's size.
func (g *Generator) GenerateRange(r Range, maxAttempts int) (*voxel.Grid, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("shape: invalid block range %d-%d", r.Min, r.Max)
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		target := r.Min + g.rng.IntN(r.Max-r.Min+1)
		work := g.grow(target)

		placed := work.Count()
		if placed < r.Min {
			g.log.Debug().Int("attempt", attempt).Int("placed", placed).Int("min", r.Min).
				Msg("rejected solid: too few blocks")
			continue
		}

		tight, dims := voxel.Normalize(work)
		if dims.IsZero() || !dims.FitsIn(g.size) {
			g.log.Debug().Int("attempt", attempt).Interface("dims", dims).
				Msg("rejected solid: does not fit grid")
			continue
		}

		solid, err := tight.Embed(g.size)
		if err != nil {
			g.log.Debug().Int("attempt", attempt).Err(err).Msg("rejected solid")
			continue
		}
		g.log.Debug().Int("attempt", attempt).Int("blocks", placed).Interface("dims", dims).
			Msg("generated solid")
		return solid, nil
	}

	g.log.Warn().Int("attempts", maxAttempts).Int("min", r.Min).Int("max", r.Max).
		Msg("shape generation exhausted")
	return nil, &GenerationError{Range: r, Attempts: maxAttempts}
}

// grow seeds one block on the floor and adds up to target-1 more,
// preferring the highest frontier cells.
func (g *Generator) grow(target int) *voxel.Grid {
	work := voxel.NewGrid(g.size)
	half := max(g.size/2, 1)
	seed := voxel.Coord{X: g.rng.IntN(half), Y: 0, Z: g.rng.IntN(half)}
	if err := work.SetCoord(seed, true); err != nil {
		return work
	}
	placed := []voxel.Coord{seed}

	for len(placed) < target {
		cands := frontier(work, placed)
		if len(cands) == 0 {
			break
		}
		sort.SliceStable(cands, func(i, j int) bool { return cands[i].Y > cands[j].Y })
		pick := cands[g.rng.IntN(min(topCandidates, len(cands)))]
		if err := work.SetCoord(pick, true); err != nil {
			break
		}
		placed = append(placed, pick)
	}
	return work
}

// frontier lists the empty in-bounds cells 6-adjacent to any placed block,
// each once.
func frontier(work *voxel.Grid, placed []voxel.Coord) []voxel.Coord {
	seen := make(map[string]struct{})
	var out []voxel.Coord
	for _, p := range placed {
		for _, d := range voxel.Neighbors {
			n := p.Add(d)
			if !work.InBounds(n) || work.Filled(n) {
				continue
			}
			k := n.Key()
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
