// Package api defines the request and response shapes of the line
// search service and the deserializers that turn response bodies into
// them.
package api

import (
	"net/url"
	"strconv"

	"github.com/cbsinteractive/linesearch/timecode"
	"github.com/pkg/errors"
)

// ErrInvalidResponse is returned by a Deserializer when the body is
// valid JSON but lacks the fields of the expected shape.
var ErrInvalidResponse = errors.New("invalid response data")

const (
	QueryPing   = "ping"
	QuerySearch = "search"
)

const (
	DefaultAmount = 5
	// MaxAmount caps the rows a single search may ask for
	MaxAmount = 1000
)

// Ping is the response to a ping query
type Ping struct {
	Message string `json:"message"`
}

// PingQuery returns the query parameters for a ping
func PingQuery() url.Values {
	return url.Values{"q": {QueryPing}}
}

// ColumnKind identifies the column of a search result
type ColumnKind int

const (
	Prod ColumnKind = iota
	Segment
	TCIn
	TCOut
	Speaker
	Line
)

var columnNames = [...]string{
	Prod:    "Prod. ID",
	Segment: "Segment",
	TCIn:    "TC In",
	TCOut:   "TC Out",
	Speaker: "Speaker",
	Line:    "Line",
}

// Columns lists every kind in display order
var Columns = []ColumnKind{Prod, Segment, TCIn, TCOut, Speaker, Line}

// DisplayName returns the column header for k. It returns false for an
// unknown kind.
func (k ColumnKind) DisplayName() (string, bool) {
	if k < 0 || int(k) >= len(columnNames) {
		return "", false
	}
	return columnNames[k], true
}

type Column struct {
	Value string     `json:"value"`
	Kind  ColumnKind `json:"kind"`
}

type Row []Column

// Get returns the value of the first column of kind k
func (r Row) Get(k ColumnKind) (string, bool) {
	for _, c := range r {
		if c.Kind == k {
			return c.Value, true
		}
	}
	return "", false
}

// Span parses the TC In and TC Out columns of the row
func (r Row) Span(fps timecode.Fps) (timecode.Span, error) {
	in, ok := r.Get(TCIn)
	if !ok {
		return timecode.Span{}, errors.New("row has no tc in")
	}
	out, ok := r.Get(TCOut)
	if !ok {
		return timecode.Span{}, errors.New("row has no tc out")
	}
	return timecode.ParseSpan(in+"-"+out, fps)
}

type Table []Row

// Search is the response to a search query
type Search struct {
	Hash    string `json:"hash"`
	Results Table  `json:"results"`
}

// SearchQuery holds the parameters of a search. Amount zero means the
// server default. Range, when set, restricts results to lines inside it.
type SearchQuery struct {
	Text   string
	Amount int
	Range  *timecode.Span
}

// Values encodes the query for the request URL
func (q SearchQuery) Values() url.Values {
	v := url.Values{"q": {QuerySearch}}
	if q.Text != "" {
		v.Set("text", q.Text)
	}
	if q.Amount > 0 {
		v.Set("amount", strconv.Itoa(q.Amount))
	}
	if q.Range != nil {
		v.Set("tc", q.Range.String())
	}
	return v
}

// ParseSearchQuery is the inverse of SearchQuery.Values. A missing or
// non-numeric amount becomes DefaultAmount and amounts above MaxAmount
// are capped. The tc range must parse and pass Span.Validate.
func ParseSearchQuery(v url.Values, fps timecode.Fps) (SearchQuery, error) {
	q := SearchQuery{Text: v.Get("text"), Amount: DefaultAmount}
	if n, err := strconv.Atoi(v.Get("amount")); err == nil && n >= 0 {
		q.Amount = n
	}
	if q.Amount > MaxAmount {
		q.Amount = MaxAmount
	}
	if tc := v.Get("tc"); tc != "" {
		span, err := timecode.ParseSpan(tc, fps)
		if err != nil {
			return SearchQuery{}, errors.Wrap(err, "parsing tc")
		}
		if err := span.Validate(); err != nil {
			return SearchQuery{}, errors.Wrap(err, "validating tc")
		}
		q.Range = &span
	}
	return q, nil
}
