package timecode

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrSyntax       = errors.New("timecode: malformed")
	ErrParts        = errors.New("timecode: need exactly 4 parts")
	ErrRange        = errors.New("timecode: field out of range")
	ErrFps          = errors.New("timecode: unknown frame rate")
	ErrNotSupported = errors.New("timecode: drop-frame not supported at this rate")
)

const (
	Delimiter   = ":"
	DelimiterDF = ";"
)

const (
	hoursIndex = iota
	minutesIndex
	secondsIndex
	framesIndex
	totalParts
)

var pattern = regexp.MustCompile(`^\d\d:\d\d:\d\d[:;]\d\d$`)

// Flags modify how a Timecode is rendered and counted
type Flags struct {
	DropFrame bool `json:"dropframe"`
}

// Timecode is an HH:MM:SS:FF address counted at a nominal frame rate.
// The zero value is 00:00:00:00 at 23.976.
type Timecode struct {
	parts [totalParts]int
	fps   Fps
	flags Flags
}

// New returns a Timecode with parts in (hours, minutes, seconds, frames)
// order. Drop-frame is off unless flags say otherwise.
func New(parts []int, fps Fps, flags ...Flags) (*Timecode, error) {
	if len(parts) != totalParts {
		return nil, errors.Wrapf(ErrParts, "got %d", len(parts))
	}
	if !fps.Valid() {
		return nil, errors.Wrapf(ErrFps, "%d", int(fps))
	}
	t := &Timecode{fps: fps}
	if len(flags) > 0 {
		t.flags = flags[0]
	}
	for i, p := range parts {
		if p < 0 {
			return nil, errors.Wrapf(ErrRange, "part %d is %d", i, p)
		}
		t.parts[i] = p
	}
	return t, nil
}

// Parse parses s in HH:MM:SS:FF or HH:MM:SS;FF form, every field being
// exactly two digits. A semicolon before the frame field marks the
// result as drop-frame. On mismatch Parse returns a nil Timecode and an
// error wrapping ErrSyntax. Field values are not range checked; see
// Validate.
func Parse(s string, fps Fps) (*Timecode, error) {
	if !pattern.MatchString(s) {
		return nil, errors.Wrapf(ErrSyntax, "%q", s)
	}
	var parts []int
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ':' || r == ';'
	}) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "%q", s)
		}
		parts = append(parts, n)
	}
	return New(parts, fps, Flags{DropFrame: strings.Contains(s, DelimiterDF)})
}

// MustParse is like Parse but panics on error
func MustParse(s string, fps Fps) *Timecode {
	t, err := Parse(s, fps)
	if err != nil {
		panic(err)
	}
	return t
}

// String renders the timecode with each field zero-padded to two digits
// and the frame field set off by ';' when drop-frame.
func (t Timecode) String() string {
	delim := Delimiter
	if t.flags.DropFrame {
		delim = DelimiterDF
	}
	return fmt.Sprintf("%02d:%02d:%02d%s%02d",
		t.parts[hoursIndex], t.parts[minutesIndex], t.parts[secondsIndex],
		delim, t.parts[framesIndex])
}

func (t Timecode) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t Timecode) Hours() int   { return t.parts[hoursIndex] }
func (t Timecode) Minutes() int { return t.parts[minutesIndex] }
func (t Timecode) Seconds() int { return t.parts[secondsIndex] }
func (t Timecode) Frames() int  { return t.parts[framesIndex] }

func (t *Timecode) SetHours(h int) error   { return t.set(hoursIndex, h) }
func (t *Timecode) SetMinutes(m int) error { return t.set(minutesIndex, m) }
func (t *Timecode) SetSeconds(s int) error { return t.set(secondsIndex, s) }
func (t *Timecode) SetFrames(f int) error  { return t.set(framesIndex, f) }

func (t *Timecode) set(i, v int) error {
	if v < 0 {
		return errors.Wrapf(ErrRange, "part %d is %d", i, v)
	}
	t.parts[i] = v
	return nil
}

// Parts returns a copy of the four fields in display order
func (t Timecode) Parts() [4]int {
	return t.parts
}

// SetParts replaces all four fields. It leaves t untouched if any
// field is negative.
func (t *Timecode) SetParts(parts [4]int) error {
	for i, p := range parts {
		if p < 0 {
			return errors.Wrapf(ErrRange, "part %d is %d", i, p)
		}
	}
	t.parts = parts
	return nil
}

func (t Timecode) Fps() Fps { return t.fps }

func (t *Timecode) SetFps(fps Fps) error {
	if !fps.Valid() {
		return errors.Wrapf(ErrFps, "%d", int(fps))
	}
	t.fps = fps
	return nil
}

func (t Timecode) DropFrame() bool { return t.flags.DropFrame }

func (t *Timecode) SetDropFrame(df bool) { t.flags.DropFrame = df }

func (t Timecode) Flags() Flags { return t.flags }

// Validate checks the fields against the clock: hours below 24,
// minutes and seconds below 60 and frames below the nominal rate. For
// drop-frame timecodes the skipped frame labels are rejected, and a
// rate without a drop-frame rule is ErrNotSupported.
func (t Timecode) Validate() error {
	if !t.fps.Valid() {
		return errors.Wrapf(ErrFps, "%d", int(t.fps))
	}
	h, m, s, f := t.parts[hoursIndex], t.parts[minutesIndex], t.parts[secondsIndex], t.parts[framesIndex]
	switch {
	case h > 23:
		return errors.Wrapf(ErrRange, "%s: hours %d", t, h)
	case m > 59:
		return errors.Wrapf(ErrRange, "%s: minutes %d", t, m)
	case s > 59:
		return errors.Wrapf(ErrRange, "%s: seconds %d", t, s)
	case f >= t.fps.Nominal():
		return errors.Wrapf(ErrRange, "%s: frames %d at %s", t, f, t.fps)
	}
	if !t.flags.DropFrame {
		return nil
	}
	drop := t.fps.dropped()
	if drop == 0 {
		return errors.Wrapf(ErrNotSupported, "%s", t.fps)
	}
	if s == 0 && m%10 != 0 && f < drop {
		return errors.Wrapf(ErrRange, "%s: frame label is dropped", t)
	}
	return nil
}
