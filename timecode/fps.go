package timecode

import (
	"math"

	"github.com/cbsinteractive/pkg/video"
	"github.com/pkg/errors"
)

// Fps is a nominal frame rate tag.
type Fps int

const (
	F23p976 Fps = iota
	F23p976DF
	F24
	F25
	F29p997
	F29p997DF
	F30
)

var rates = [...]struct {
	name     string
	num, den int
	df       bool
}{
	F23p976:   {"23.976", 24000, 1001, false},
	F23p976DF: {"23.976DF", 24000, 1001, true},
	F24:       {"24", 24, 1, false},
	F25:       {"25", 25, 1, false},
	F29p997:   {"29.97", 30000, 1001, false},
	F29p997DF: {"29.97DF", 30000, 1001, true},
	F30:       {"30", 30, 1, false},
}

// ParseFps returns the tag whose String form is s
func ParseFps(s string) (Fps, error) {
	for i, r := range rates {
		if r.name == s {
			return Fps(i), nil
		}
	}
	return 0, errors.Wrapf(ErrFps, "%q", s)
}

// Valid reports whether f is one of the known tags
func (f Fps) Valid() bool {
	return f >= 0 && int(f) < len(rates)
}

func (f Fps) String() string {
	if !f.Valid() {
		return "unknown"
	}
	return rates[f].name
}

// Rate returns the real frame rate, e.g. 29.97002997 for F29p997
func (f Fps) Rate() float64 {
	if !f.Valid() {
		return 0
	}
	return float64(rates[f].num) / float64(rates[f].den)
}

// Nominal returns the integer rate frame labels are counted against.
func (f Fps) Nominal() int {
	return int(math.Round(f.Rate()))
}

// DropFrame reports whether the tag names a drop-frame rate.
func (f Fps) DropFrame() bool {
	return f.Valid() && rates[f].df
}

// Framerate returns the rate as a numerator and divisor pair
func (f Fps) Framerate() video.Framerate {
	if !f.Valid() {
		return video.Framerate{}
	}
	return video.Framerate{Numerator: rates[f].num, Denominator: rates[f].den}
}

// dropped returns the number of frame labels skipped at the start of
// each minute not divisible by ten, or zero if the rate has no SMPTE
// drop-frame rule.
func (f Fps) dropped() int {
	if !f.Valid() || rates[f].den != 1001 || f.Nominal()%30 != 0 {
		return 0
	}
	return f.Nominal() / 15
}

func (f Fps) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, errors.Wrapf(ErrFps, "%d", int(f))
	}
	return []byte(f.String()), nil
}

func (f *Fps) UnmarshalText(p []byte) (err error) {
	*f, err = ParseFps(string(p))
	return err
}
