package timecode

import (
	"testing"

	"github.com/cbsinteractive/linesearch/test"
	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func TestParseRoundTrip(t *testing.T) {
	for _, s := range []string{
		"00:00:00:00",
		"01:02:03:04",
		"23:59:59:24",
		"00:00:00;00",
		"00:01:00;02",
		"10:00:00;29",
		"99:99:99:99",
	} {
		t.Run(s, func(t *testing.T) {
			tc, err := Parse(s, F29p997DF)
			if err != nil {
				t.Fatalf("Parse(%q): %v", s, err)
			}
			if have := tc.String(); have != s {
				t.Fatalf("have %q, want %q", have, s)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"1:2:3:4",
		"01:02:03",
		"01-02-03-04",
		"01:02;03:04",
		"01:02:03.04",
		"0a:02:03:04",
		" 01:02:03:04",
		"01:02:03:04 ",
		"01:02:03:04:05",
		"x01:02:03:04",
		"٠١:٠٢:٠٣:٠٤",
	} {
		t.Run(s, func(t *testing.T) {
			tc, err := Parse(s, F25)
			if tc != nil {
				t.Fatalf("Parse(%q) = %v, want nil", s, tc)
			}
			if !errors.Is(err, ErrSyntax) {
				t.Fatalf("Parse(%q) error = %v, want ErrSyntax", s, err)
			}
		})
	}
}

func TestParseFields(t *testing.T) {
	tc := MustParse("01:02:03:04", F25)
	have := []int{tc.Hours(), tc.Minutes(), tc.Seconds(), tc.Frames()}
	want := []int{1, 2, 3, 4}
	if diff := cmp.Diff(want, have); diff != "" {
		t.Fatalf("fields (-want +have):\n%s", diff)
	}
	if tc.DropFrame() {
		t.Fatal("01:02:03:04 parsed as drop-frame")
	}
	if tc.Fps() != F25 {
		t.Fatalf("fps = %s, want 25", tc.Fps())
	}

	df := MustParse("00:00:00;00", F29p997DF)
	if !df.DropFrame() {
		t.Fatal("00:00:00;00 not parsed as drop-frame")
	}
	if have := df.String(); have != "00:00:00;00" {
		t.Fatalf("have %q", have)
	}
}

func TestSetFrames(t *testing.T) {
	tc := MustParse("00:00:00:00", F24)
	if err := tc.SetFrames(23); err != nil {
		t.Fatal(err)
	}
	if have := tc.String(); have != "00:00:00:23" {
		t.Fatalf("have %q, want %q", have, "00:00:00:23")
	}
}

func TestAccessors(t *testing.T) {
	tests := []struct {
		name  string
		set   func(*Timecode, int) error
		get   func(Timecode) int
		index int
	}{
		{"hours", (*Timecode).SetHours, Timecode.Hours, 0},
		{"minutes", (*Timecode).SetMinutes, Timecode.Minutes, 1},
		{"seconds", (*Timecode).SetSeconds, Timecode.Seconds, 2},
		{"frames", (*Timecode).SetFrames, Timecode.Frames, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tc Timecode
			if err := tt.set(&tc, 17); err != nil {
				t.Fatal(err)
			}
			if have := tt.get(tc); have != 17 {
				t.Fatalf("get = %d, want 17", have)
			}
			if have := tc.Parts()[tt.index]; have != 17 {
				t.Fatalf("Parts()[%d] = %d, want 17", tt.index, have)
			}
			if err := tt.set(&tc, -1); !errors.Is(err, ErrRange) {
				t.Fatalf("set(-1) error = %v, want ErrRange", err)
			}
			if have := tt.get(tc); have != 17 {
				t.Fatalf("rejected set changed the field to %d", have)
			}
		})
	}
}

func TestSetParts(t *testing.T) {
	var tc Timecode
	want := [4]int{10, 20, 30, 5}
	if err := tc.SetParts(want); err != nil {
		t.Fatal(err)
	}
	if have := tc.Parts(); have != want {
		t.Fatalf("Parts() = %v, want %v", have, want)
	}

	parts := tc.Parts()
	parts[0] = 99
	if tc.Hours() != 10 {
		t.Fatal("mutating the result of Parts changed the timecode")
	}

	if err := tc.SetParts([4]int{1, -2, 3, 4}); !errors.Is(err, ErrRange) {
		t.Fatalf("error = %v, want ErrRange", err)
	}
	if have := tc.Parts(); have != want {
		t.Fatalf("rejected SetParts left %v", have)
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		parts   []int
		fps     Fps
		flags   []Flags
		want    string
		wantErr error
	}{
		{"plain", []int{1, 2, 3, 4}, F25, nil, "01:02:03:04", nil},
		{"dropframe", []int{0, 1, 0, 2}, F29p997DF, []Flags{{DropFrame: true}}, "00:01:00;02", nil},
		{"dropframe defaults off", []int{0, 1, 0, 2}, F29p997DF, nil, "00:01:00:02", nil},
		{"short", []int{1, 2, 3}, F25, nil, "", ErrParts},
		{"long", []int{1, 2, 3, 4, 5}, F25, nil, "", ErrParts},
		{"negative", []int{1, -2, 3, 4}, F25, nil, "", ErrRange},
		{"bad fps", []int{1, 2, 3, 4}, Fps(42), nil, "", ErrFps},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc, err := New(tt.parts, tt.fps, tt.flags...)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if have := tc.String(); have != tt.want {
				t.Fatalf("have %q, want %q", have, tt.want)
			}
		})
	}
}

func TestNewCopiesParts(t *testing.T) {
	parts := []int{1, 2, 3, 4}
	tc, err := New(parts, F25)
	if err != nil {
		t.Fatal(err)
	}
	parts[0] = 9
	if tc.Hours() != 1 {
		t.Fatal("New aliased the caller's slice")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		tc      string
		fps     Fps
		wantErr error
	}{
		{"00:00:00:00", F25, nil},
		{"23:59:59:24", F25, nil},
		{"23:59:59:29", F29p997, nil},
		{"00:00:00:23", F23p976, nil},
		{"24:00:00:00", F25, ErrRange},
		{"00:60:00:00", F25, ErrRange},
		{"00:00:60:00", F25, ErrRange},
		{"00:00:00:25", F25, ErrRange},
		{"00:00:00:24", F24, ErrRange},
		{"00:00:00;00", F29p997DF, nil},
		{"00:01:00;02", F29p997DF, nil},
		{"00:10:00;00", F29p997DF, nil},
		{"00:01:00;00", F29p997DF, ErrRange},
		{"00:01:00;01", F29p997DF, ErrRange},
		{"00:01:01;00", F29p997DF, nil},
		{"00:00:00;00", F23p976DF, ErrNotSupported},
		{"00:00:00;00", F25, ErrNotSupported},
	}
	for _, tt := range tests {
		t.Run(tt.tc+"@"+tt.fps.String(), func(t *testing.T) {
			err := MustParse(tt.tc, tt.fps).Validate()
			test.AssertErrorIs(err, tt.wantErr, "Validate()", t)
		})
	}
}

func TestMarshalText(t *testing.T) {
	p, err := MustParse("01:00:00;00", F29p997DF).MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	if string(p) != "01:00:00;00" {
		t.Fatalf("have %q", p)
	}
}
