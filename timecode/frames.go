package timecode

import (
	"time"

	ranges "github.com/cbsinteractive/pkg/timecode"
	"github.com/pkg/errors"
)

// FrameCount returns the number of frames between 00:00:00:00 and t.
// Drop-frame timecodes skip the dropped labels, so 00:01:00;02 at
// 29.97 is frame 1800.
func (t Timecode) FrameCount() (int, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	nominal := t.fps.Nominal()
	h, m, s, f := t.parts[hoursIndex], t.parts[minutesIndex], t.parts[secondsIndex], t.parts[framesIndex]

	n := ((h*60+m)*60+s)*nominal + f
	if t.flags.DropFrame {
		minutes := h*60 + m
		n -= t.fps.dropped() * (minutes - minutes/10)
	}
	return n, nil
}

// FromFrameCount is the inverse of FrameCount. Counts at or beyond
// 24 hours are out of range.
func FromFrameCount(n int, fps Fps, flags ...Flags) (*Timecode, error) {
	t, err := New(make([]int, totalParts), fps, flags...)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Wrapf(ErrRange, "frame count %d", n)
	}
	nominal := fps.Nominal()
	if t.flags.DropFrame {
		drop := fps.dropped()
		if drop == 0 {
			return nil, errors.Wrapf(ErrNotSupported, "%s", fps)
		}
		perMinute := nominal*60 - drop
		perTenMinutes := nominal*600 - drop*9
		d, m := n/perTenMinutes, n%perTenMinutes
		n += drop * 9 * d
		if m > drop {
			n += drop * ((m - drop) / perMinute)
		}
	}

	t.parts[framesIndex] = n % nominal
	n /= nominal
	t.parts[secondsIndex] = n % 60
	n /= 60
	t.parts[minutesIndex] = n % 60
	t.parts[hoursIndex] = n / 60
	if t.parts[hoursIndex] > 23 {
		return nil, errors.Wrapf(ErrRange, "%s", t)
	}
	return t, nil
}

// Duration returns the wall-clock offset of t from zero at the real
// frame rate.
func (t Timecode) Duration() (time.Duration, error) {
	n, err := t.FrameCount()
	if err != nil {
		return 0, err
	}
	fr := t.fps.Framerate()
	return time.Duration(int64(n) * int64(time.Second) * int64(fr.Denominator) / int64(fr.Numerator)), nil
}

// Range returns the interval from zero to t in seconds
func (t Timecode) Range() (ranges.Range, error) {
	d, err := t.Duration()
	if err != nil {
		return ranges.Range{}, err
	}
	return ranges.Range{0, d.Seconds()}, nil
}
