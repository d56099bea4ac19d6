package script

import (
	"fmt"
	"math"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/plattj-ai/Technical-Drawing-Practice/pkg/voxel"
)

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// sexpVec3 wraps an integer grid vector so it can be passed between builtins.
type sexpVec3 struct {
	vec voxel.Coord
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %d %d %d)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// isKW checks if a Sexp is a preprocessed keyword string.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// toInt extracts a whole number from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return int(v.Val), nil
	case *zygo.SexpFloat:
		if v.Val == math.Trunc(v.Val) {
			return int(v.Val), nil
		}
		return 0, fmt.Errorf("expected whole number, got %v", v.Val)
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a grid vector from a sexpVec3.
func toVec3(s zygo.Sexp) (voxel.Coord, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return voxel.Coord{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// intArgs extracts exactly n whole-number positional arguments.
func intArgs(fn string, args []zygo.Sexp, names ...string) ([]int, error) {
	if len(args) != len(names) {
		return nil, fmt.Errorf("%s requires %d arguments (%s), got %d",
			fn, len(names), strings.Join(names, " "), len(args))
	}
	out := make([]int, len(args))
	for i, a := range args {
		n, err := toInt(a)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", fn, names[i], err)
		}
		out[i] = n
	}
	return out, nil
}

// registerBuiltins installs the shape builtins into a zygomys environment.
// Source must be preprocessed with preprocessSource() first so :keyword
// tokens are recognizable.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// (vec3 1 2 3)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		n, err := intArgs("vec3", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpVec3{vec: voxel.Coord{X: n[0], Y: n[1], Z: n[2]}}, nil
	})

	// (voxel x y z)
	env.AddFunction("voxel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		n, err := intArgs("voxel", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := b.work.Set(n[0], n[1], n[2], true); err != nil {
			return zygo.SexpNull, fmt.Errorf("voxel: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (carve x y z)
	env.AddFunction("carve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		n, err := intArgs("carve", args, "x", "y", "z")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := b.work.Set(n[0], n[1], n[2], false); err != nil {
			return zygo.SexpNull, fmt.Errorf("carve: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// (column x z height) stacks height blocks upward from the floor.
	env.AddFunction("column", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		n, err := intArgs("column", args, "x", "z", "height")
		if err != nil {
			return zygo.SexpNull, err
		}
		if n[2] < 1 {
			return zygo.SexpNull, fmt.Errorf("column: height must be positive, got %d", n[2])
		}
		for y := 0; y < n[2]; y++ {
			if err := b.work.Set(n[0], y, n[1], true); err != nil {
				return zygo.SexpNull, fmt.Errorf("column: %w", err)
			}
		}
		return zygo.SexpNull, nil
	})

	// (box :at (vec3 0 0 0) :size (vec3 2 1 3))
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		at := voxel.Coord{}
		if v, ok := pa.kw["at"]; ok {
			vec, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: at: %w", err)
			}
			at = vec
		}
		v, ok := pa.kw["size"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("box requires :size")
		}
		size, err := toVec3(v)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: size: %w", err)
		}
		if size.X < 1 || size.Y < 1 || size.Z < 1 {
			return zygo.SexpNull, fmt.Errorf("box: size must be positive on every axis")
		}

		for x := 0; x < size.X; x++ {
			for y := 0; y < size.Y; y++ {
				for z := 0; z < size.Z; z++ {
					if err := b.work.SetCoord(at.Add(voxel.Coord{X: x, Y: y, Z: z}), true); err != nil {
						return zygo.SexpNull, fmt.Errorf("box: %w", err)
					}
				}
			}
		}
		return zygo.SexpNull, nil
	})
}
