// Package script evaluates exercise shape scripts. A script is a small
// Lisp program run in a fresh zygomys sandbox; builtins such as voxel,
// box, column and carve place blocks in a scratch grid, and the result is
// normalized into a solid of the engine's grid size.
//
//	; an L-shaped step
//	(column 0 0 3)
//	(box :at (vec3 1 0 0) :size (vec3 2 1 1))
package script

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

// ErrDisconnected is reported when a script builds more than one piece.
var ErrDisconnected = errors.New("shape is not 6-connected")

// EvalError represents a non-fatal error encountered during evaluation,
// such as a parse error or a runtime error in user code.
type EvalError struct {
	Line    int
	Col     int
	Message string
}

func (e EvalError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Result is the solid built by a script.
type Result struct {
	Solid      *voxel.Grid
	Dimensions voxel.Dimensions
}

// Empty reports whether the script placed no blocks.
func (r *Result) Empty() bool {
	return r == nil || r.Dimensions.IsZero()
}

// Engine evaluates scripts. It is safe for concurrent use; each call to
// Evaluate creates a fresh sandboxed environment for determinism.
type Engine struct {
	size    int
	timeout time.Duration

	mu         sync.Mutex
	generation uint64
}

// NewEngine creates an Engine producing grids of edge length size.
func NewEngine(size int) *Engine {
	return &Engine{size: size, timeout: EvalTimeout}
}

// SetTimeout changes the per-evaluation limit.
func (e *Engine) SetTimeout(d time.Duration) {
	e.mu.Lock()
	e.timeout = d
	e.mu.Unlock()
}

// Evaluate runs source and returns the solid it builds.
//
// Return semantics:
//   - On success: returns result + nil errors + nil error
//   - On parse/eval/shape failure: returns nil result + eval errors + nil error
//   - On fatal failure (timeout, panic, superseded): returns nil + nil + error
func (e *Engine) Evaluate(source string) (*Result, []EvalError, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	timeout := e.timeout
	e.mu.Unlock()

	ch := make(chan evalResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- evalResult{err: fmt.Errorf("panic during evaluation: %v", r)}
			}
		}()

		res, evalErrs, err := e.evaluate(source)
		ch <- evalResult{result: res, errors: evalErrs, err: err}
	}()

	return waitWithTimeout(ch, gen, &e.mu, &e.generation, timeout)
}

// evaluate performs the actual zygomys evaluation in a fresh sandbox.
func (e *Engine) evaluate(source string) (*Result, []EvalError, error) {
	b := newBuilder(e.size)

	// Empty source is a valid program that produces an empty solid.
	if strings.TrimSpace(source) == "" {
		return b.finish()
	}

	// Sandbox mode prevents user code from accessing the filesystem or syscalls.
	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, b)

	err := env.LoadString(preprocessSource(source))
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	_, err = env.Run()
	if err != nil {
		return nil, parseZygomysError(err), nil
	}

	return b.finish()
}

// builder accumulates blocks placed by builtins.
type builder struct {
	work *voxel.Grid
	size int
}

func newBuilder(size int) *builder {
	return &builder{work: voxel.NewGrid(size), size: size}
}

// finish normalizes the scratch grid into a solid. Shape problems are
// reported as eval errors.
func (b *builder) finish() (*Result, []EvalError, error) {
	tight, dims := voxel.Normalize(b.work)
	solid, err := tight.Embed(b.size)
	if err != nil {
		return nil, nil, fmt.Errorf("script: %w", err)
	}
	if !dims.IsZero() && !solid.Connected() {
		return nil, []EvalError{{Message: ErrDisconnected.Error()}}, nil
	}
	return &Result{Solid: solid, Dimensions: dims}, nil, nil
}

// linePattern matches zygomys error messages that include "Error on line N: ..."
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// linePatternShort matches simpler "line N: ..." patterns.
var linePatternShort = regexp.MustCompile(`(?i)^line (\d+):\s*(.*)`)

// parseZygomysError converts a zygomys error into one or more EvalError values.
func parseZygomysError(err error) []EvalError {
	msg := err.Error()

	for _, p := range []*regexp.Regexp{linePattern, linePatternShort} {
		if m := p.FindStringSubmatch(msg); m != nil {
			line, _ := strconv.Atoi(m[1])
			return []EvalError{{
				Line:    line,
				Message: strings.TrimSpace(m[2]),
			}}
		}
	}

	return []EvalError{{Message: strings.TrimSpace(msg)}}
}
