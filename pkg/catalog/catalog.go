// Package catalog loads named preset exercises from YAML. Each exercise
// carries a shape script that the script engine turns into a solid.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/shape"
)

// ErrNotFound is returned by Find for unknown exercise names.
var ErrNotFound = errors.New("catalog: exercise not found")

type Catalog struct {
	Exercises []Exercise `yaml:"exercises"`
}

type Exercise struct {
	Name        string     `yaml:"name" json:"name"`
	Tier        shape.Tier `yaml:"tier" json:"tier"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Source      string     `yaml:"source" json:"-"`
}

// Load reads a catalog file. An empty path yields an empty catalog.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return &Catalog{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates catalog YAML.
func Parse(b []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) normalize() {
	for i := range c.Exercises {
		e := &c.Exercises[i]
		e.Name = strings.TrimSpace(e.Name)
		e.Tier = shape.Tier(strings.ToLower(strings.TrimSpace(string(e.Tier))))
	}
}

// Validate rejects unnamed, duplicate and empty exercises.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Exercises))
	for i, e := range c.Exercises {
		if e.Name == "" {
			return fmt.Errorf("catalog: exercise %d has no name", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("catalog: duplicate exercise %q", e.Name)
		}
		seen[e.Name] = true
		if strings.TrimSpace(e.Source) == "" {
			return fmt.Errorf("catalog: exercise %q has no source", e.Name)
		}
	}
	return nil
}

// Find returns the exercise called name.
func (c *Catalog) Find(name string) (Exercise, error) {
	for _, e := range c.Exercises {
		if e.Name == name {
			return e, nil
		}
	}
	return Exercise{}, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Names lists exercise names in alphabetical order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.Exercises))
	for _, e := range c.Exercises {
		out = append(out, e.Name)
	}
	sort.Strings(out)
	return out
}

// ByTier returns the exercises of one tier in file order.
func (c *Catalog) ByTier(t shape.Tier) []Exercise {
	var out []Exercise
	for _, e := range c.Exercises {
		if e.Tier == t {
			out = append(out, e)
		}
	}
	return out
}
