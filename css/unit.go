// Package css builds CSS values and inline style strings.
package css

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrPlaceholders = errors.New("css: placeholder count does not match values")
	ErrValue        = errors.New("css: unsupported style value")
)

// UnitKind is a CSS unit suffix
type UnitKind string

const (
	Centimeter     UnitKind = "cm"
	Millimeter     UnitKind = "mm"
	Second         UnitKind = "s"
	Millisecond    UnitKind = "ms"
	Inch           UnitKind = "in"
	Pixel          UnitKind = "px"
	Pica           UnitKind = "pc"
	Point          UnitKind = "pt"
	FontSize       UnitKind = "em"
	RootFontSize   UnitKind = "rem"
	Percentage     UnitKind = "%"
	ViewportWidth  UnitKind = "vw"
	ViewportHeight UnitKind = "vh"
	ViewportMin    UnitKind = "vmin"
	ViewportMax    UnitKind = "vmax"
	XHeight        UnitKind = "ex"
	ZeroWidth      UnitKind = "ch"
	Auto           UnitKind = "auto"
)

// Unit is a number with a unit, e.g. 10px
type Unit struct {
	Value float64
	Kind  UnitKind
}

// String renders the unit. Auto ignores the value.
func (u Unit) String() string {
	if u.Kind == Auto {
		return string(Auto)
	}
	return Scalar(u.Value) + string(u.Kind)
}

func Cm(v float64) Unit   { return Unit{v, Centimeter} }
func Mm(v float64) Unit   { return Unit{v, Millimeter} }
func Sec(v float64) Unit  { return Unit{v, Second} }
func Ms(v float64) Unit   { return Unit{v, Millisecond} }
func In(v float64) Unit   { return Unit{v, Inch} }
func Px(v float64) Unit   { return Unit{v, Pixel} }
func Pc(v float64) Unit   { return Unit{v, Pica} }
func Pt(v float64) Unit   { return Unit{v, Point} }
func Em(v float64) Unit   { return Unit{v, FontSize} }
func Rem(v float64) Unit  { return Unit{v, RootFontSize} }
func Pct(v float64) Unit  { return Unit{v, Percentage} }
func Vw(v float64) Unit   { return Unit{v, ViewportWidth} }
func Vh(v float64) Unit   { return Unit{v, ViewportHeight} }
func Vmin(v float64) Unit { return Unit{v, ViewportMin} }
func Vmax(v float64) Unit { return Unit{v, ViewportMax} }
func Ex(v float64) Unit   { return Unit{v, XHeight} }
func Ch(v float64) Unit   { return Unit{v, ZeroWidth} }

// Calc substitutes each "{}" in format with the next value and wraps
// the result in calc().
func Calc(format string, values ...Unit) (string, error) {
	if n := strings.Count(format, "{}"); n != len(values) {
		return "", errors.Wrapf(ErrPlaceholders, "%q has %d, got %d values", format, n, len(values))
	}
	for _, v := range values {
		format = strings.Replace(format, "{}", v.String(), 1)
	}
	return "calc(" + format + ")", nil
}

// Var references the custom property --id
func Var(id string) string {
	return "var(--" + id + ")"
}

// Scalar renders a unitless number in its shortest form
func Scalar(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
