package projection

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownView is returned when a view name cannot be parsed.
var ErrUnknownView = errors.New("projection: unknown view")

// View names one of the three principal orthographic views.
type View int

const (
	Front View = iota // looking along +z
	Top               // looking along +y
	Side              // looking along +x
)

// Views lists every view in canonical order.
var Views = [3]View{Front, Top, Side}

func (v View) String() string {
	switch v {
	case Front:
		return "front"
	case Top:
		return "top"
	case Side:
		return "side"
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// ParseView accepts "front", "top" or "side" in any case.
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "front":
		return Front, nil
	case "top":
		return Top, nil
	case "side":
		return Side, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, s)
}

// MarshalText encodes the view by name.
func (v View) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a view name.
func (v *View) UnmarshalText(b []byte) error {
	p, err := ParseView(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}
