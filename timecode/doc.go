// Package timecode implements SMPTE broadcast timecodes. The primary
// type in this package is
//
//	type Timecode struct { ... }
//
// which holds the four fields of an address in the form
//
//	HH:MM:SS:FF	(non-drop-frame)
//	HH:MM:SS;FF	(drop-frame)
//
// together with the nominal frame rate (Fps) the frame field is
// counted against.
//
// A Timecode is a raw container: Parse and New accept any field values
// that fit the textual form, and String renders them back unchanged.
// Validate checks the clock bounds, and the ordinal conversions
// (FrameCount, FromFrameCount, Duration) refuse to work on a value that
// does not validate.
//
// A Span is a TC In/TC Out pair. Spans convert into the seconds based
// Range and Splice types of github.com/cbsinteractive/pkg/timecode.
package timecode
