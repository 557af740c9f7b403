package css

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/cbsinteractive/linesearch/vector"
	"github.com/pkg/errors"
)

// Decl is one property of a Style. Value may be a string, a number, a
// bool, a Unit, a fmt.Stringer or a nested Style, which is flattened
// into the enclosing one.
type Decl struct {
	Property string
	Value    interface{}
}

// Style is an ordered list of declarations
type Style []Decl

// Set appends a declaration and returns the style for chaining
func (s Style) Set(property string, value interface{}) Style {
	return append(s, Decl{property, value})
}

// String renders the style, or "" if any value is unsupported
func (s Style) String() string {
	str, err := StyleString(s)
	if err != nil {
		return ""
	}
	return str
}

// StyleString renders s as "property: value;" pairs. Camel case
// properties are converted to kebab case; custom properties starting
// with "--" are kept as given.
func StyleString(s Style) (string, error) {
	var b strings.Builder
	if err := writeStyle(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeStyle(b *strings.Builder, s Style) error {
	for _, d := range s {
		key := d.Property
		if !strings.HasPrefix(key, "--") {
			key = KebabCase(key)
		}
		var value string
		switch v := d.Value.(type) {
		case Style:
			if err := writeStyle(b, v); err != nil {
				return err
			}
			continue
		case string:
			value = v
		case bool:
			value = fmt.Sprint(v)
		case int:
			value = fmt.Sprint(v)
		case float64:
			value = Scalar(v)
		case fmt.Stringer:
			value = v.String()
		default:
			return errors.Wrapf(ErrValue, "%s: %T", d.Property, d.Value)
		}
		fmt.Fprintf(b, "%s: %s;", key, value)
	}
	return nil
}

// KebabCase converts a camel case property name to kebab case, e.g.
// backgroundColor to background-color.
func KebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Vec2 pairs a vector with the units of its components
type Vec2 struct {
	V            vector.Vec2
	UnitX, UnitY UnitKind
}

// NewVec2 returns v in pixels
func NewVec2(v vector.Vec2) Vec2 {
	return Vec2{V: v, UnitX: Pixel, UnitY: Pixel}
}

func (v Vec2) X() string { return Unit{v.V.X, v.UnitX}.String() }
func (v Vec2) Y() string { return Unit{v.V.Y, v.UnitY}.String() }

// Rect is a positioned box with per-edge units
type Rect struct {
	Position   vector.Vec2
	Dimensions vector.Vec2

	UnitX, UnitY UnitKind
	UnitW, UnitH UnitKind
}

// NewRect returns a rect measured in pixels
func NewRect(position, dimensions vector.Vec2) Rect {
	return Rect{
		Position:   position,
		Dimensions: dimensions,
		UnitX:      Pixel,
		UnitY:      Pixel,
		UnitW:      Pixel,
		UnitH:      Pixel,
	}
}

func (r Rect) X() string { return Unit{r.Position.X, r.UnitX}.String() }
func (r Rect) Y() string { return Unit{r.Position.Y, r.UnitY}.String() }
func (r Rect) W() string { return Unit{r.Dimensions.X, r.UnitW}.String() }
func (r Rect) H() string { return Unit{r.Dimensions.Y, r.UnitH}.String() }

// Style positions an absolutely placed element at r
func (r Rect) Style() Style {
	return Style{
		{"position", "absolute"},
		{"left", r.X()},
		{"top", r.Y()},
		{"width", r.W()},
		{"height", r.H()},
	}
}
