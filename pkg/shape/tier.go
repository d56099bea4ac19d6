package shape

import (
	"errors"
	"fmt"
	"sort"
)

// Tier is a named difficulty level.
type Tier string

const (
	Easy   Tier = "easy"
	Medium Tier = "medium"
	Hard   Tier = "hard"
)

// ErrUnknownTier is returned when a tier has no configured block range.
var ErrUnknownTier = errors.New("shape: unknown tier")

// Range is an inclusive block-count range.
type Range struct {
	Min int `json:"min" mapstructure:"min"`
	Max int `json:"max" mapstructure:"max"`
}

// Valid reports whether the range is non-empty and positive.
func (r Range) Valid() bool {
	return r.Min >= 1 && r.Max >= r.Min
}

// Contains reports whether n lies in the range.
func (r Range) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// Tiers maps each tier to its block-count range.
type Tiers map[Tier]Range

// DefaultTiers returns the stock tier table.
func DefaultTiers() Tiers {
	return Tiers{
		Easy:   {Min: 4, Max: 7},
		Medium: {Min: 8, Max: 12},
		Hard:   {Min: 13, Max: 18},
	}
}

// Lookup returns the range for t.
func (ts Tiers) Lookup(t Tier) (Range, error) {
	r, ok := ts[t]
	if !ok {
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownTier, t)
	}
	return r, nil
}

// Names returns the tiers ordered by ascending minimum block count.
func (ts Tiers) Names() []Tier {
	out := make([]Tier, 0, len(ts))
	for t := range ts {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if ts[out[i]].Min != ts[out[j]].Min {
			return ts[out[i]].Min < ts[out[j]].Min
		}
		return out[i] < out[j]
	})
	return out
}
