package timecode

import (
	"strings"

	ranges "github.com/cbsinteractive/pkg/timecode"
	"github.com/pkg/errors"
)

// Span is a TC In/TC Out pair, rendered as "IN-OUT"
type Span struct {
	In  Timecode
	Out Timecode
}

// ParseSpan parses "HH:MM:SS:FF-HH:MM:SS:FF". Either side may be drop-frame.
func ParseSpan(s string, fps Fps) (Span, error) {
	in, out, ok := strings.Cut(s, "-")
	if !ok {
		return Span{}, errors.Wrapf(ErrSyntax, "span %q", s)
	}
	tin, err := Parse(in, fps)
	if err != nil {
		return Span{}, err
	}
	tout, err := Parse(out, fps)
	if err != nil {
		return Span{}, err
	}
	return Span{In: *tin, Out: *tout}, nil
}

func (s Span) String() string {
	return s.In.String() + "-" + s.Out.String()
}

// Validate checks both ends and that In does not come after Out
func (s Span) Validate() error {
	in, err := s.In.FrameCount()
	if err != nil {
		return errors.Wrap(err, "tc in")
	}
	out, err := s.Out.FrameCount()
	if err != nil {
		return errors.Wrap(err, "tc out")
	}
	if in > out {
		return errors.Wrapf(ErrRange, "span %s ends before it starts", s)
	}
	return nil
}

// Range returns the span in seconds
func (s Span) Range() (ranges.Range, error) {
	if err := s.Validate(); err != nil {
		return ranges.Range{}, err
	}
	in, _ := s.In.Duration()
	out, _ := s.Out.Duration()
	return ranges.Range{in.Seconds(), out.Seconds()}, nil
}

// Splice converts spans into a seconds based splice, in the order given
func Splice(spans ...Span) (ranges.Splice, error) {
	sp := make(ranges.Splice, 0, len(spans))
	for _, s := range spans {
		r, err := s.Range()
		if err != nil {
			return nil, err
		}
		sp = append(sp, r)
	}
	return sp, nil
}
