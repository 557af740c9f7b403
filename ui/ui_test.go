package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/mock"
	"github.com/cbsinteractive/linesearch/timecode"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends keys in order and runs the last command, if any
func press(t *testing.T, m Model, keys ...string) (Model, tea.Msg) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var tm tea.Model
		tm, cmd = m.Update(key(k))
		m = tm.(Model)
	}
	if cmd == nil {
		return m, nil
	}
	return m, cmd()
}

func feed(m Model, msg tea.Msg) Model {
	tm, _ := m.Update(msg)
	return tm.(Model)
}

func fixture() (*mock.API, Model) {
	f := mock.New(api.Table{
		{{Value: "P1", Kind: api.Prod}, {Value: "00:00:01:00", Kind: api.TCIn}, {Value: "00:00:02:00", Kind: api.TCOut}, {Value: "hi", Kind: api.Line}},
		{{Value: "P1", Kind: api.Prod}, {Value: "00:00:03:00", Kind: api.TCIn}, {Value: "00:00:04:00", Kind: api.TCOut}, {Value: "bye", Kind: api.Line}},
	})
	f.Delay = 0
	return f, New(Options{Fetcher: f, Fps: timecode.F25})
}

func TestSearchFlow(t *testing.T) {
	_, m := fixture()
	m, msg := press(t, m, "h", "i", "enter")
	if m.inflight != 1 {
		t.Fatalf("inflight = %d, want 1", m.inflight)
	}
	if m.query().Text != "hi" {
		t.Fatalf("query text = %q", m.query().Text)
	}
	res, ok := msg.(searchMsg)
	if !ok {
		t.Fatalf("msg = %T, want searchMsg", msg)
	}
	m = feed(m, res)
	if m.inflight != 0 {
		t.Fatalf("inflight = %d after results", m.inflight)
	}
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "P1" || rows[0][5] != "hi" || rows[0][1] != "" {
		t.Fatalf("first row = %v", rows[0])
	}
}

func TestSelectNarrowsRange(t *testing.T) {
	_, m := fixture()
	_, msg := press(t, m, "enter")
	m = feed(m, msg)

	m, msg = press(t, m, "tab", "down", "enter")
	if _, ok := msg.(searchMsg); !ok {
		t.Fatalf("msg = %T, want searchMsg", msg)
	}
	if !m.useSpan || m.span.String() != "00:00:03:00-00:00:04:00" {
		t.Fatalf("span = %s (on %v)", m.span, m.useSpan)
	}
	if q := m.query(); q.Range == nil || q.Range.String() != m.span.String() {
		t.Fatalf("query range = %v", q.Range)
	}
}

func TestEditRange(t *testing.T) {
	_, m := fixture()
	m, _ = press(t, m, "tab", "o", "up", "up", "left", "up")
	if m.focus != focusEditor {
		t.Fatalf("focus = %d, want editor", m.focus)
	}
	if have := m.editors.active.tc.String(); have != "00:00:01:02" {
		t.Fatalf("editing %s", have)
	}
	m, msg := press(t, m, "enter")
	if _, ok := msg.(searchMsg); !ok {
		t.Fatalf("msg = %T, want searchMsg", msg)
	}
	if m.span.Out.String() != "00:00:01:02" || !m.useSpan {
		t.Fatalf("span = %s", m.span)
	}
	if m.editors.manager.Mounted(edgeOut) {
		t.Fatal("editor still mounted")
	}

	m, msg = press(t, m, "i", "left", "up", "up", "enter")
	if msg != nil {
		t.Fatalf("unexpected msg %T", msg)
	}
	if !errors.Is(m.err, timecode.ErrRange) {
		t.Fatalf("err = %v, want ErrRange", m.err)
	}
	if m.span.In.String() != "00:00:00:00" {
		t.Fatalf("in = %s, want unchanged", m.span.In)
	}
}

func TestEditorCancel(t *testing.T) {
	_, m := fixture()
	m, _ = press(t, m, "tab", "i", "up", "esc")
	if m.focus != focusTable || m.span.In.String() != "00:00:00:00" {
		t.Fatalf("focus = %d, in = %s", m.focus, m.span.In)
	}
	if m.editors.manager.Mounted(edgeIn) {
		t.Fatal("editor still mounted")
	}
}

func TestEditorDropFrame(t *testing.T) {
	tc := timecode.MustParse("00:01:00;02", timecode.F29p997DF)
	e := &editor{tc: *tc, field: 3}
	e.step(-1)
	if have := e.tc.String(); have != "00:01:00;29" {
		t.Fatalf("have %s, want 00:01:00;29", have)
	}

	tc = timecode.MustParse("00:09:59;29", timecode.F29p997DF)
	e = &editor{tc: *tc, field: 2}
	e.step(1)
	if have := e.tc.String(); have != "00:09:00;29" {
		t.Fatalf("have %s, want 00:09:00;29", have)
	}
}

func TestEditorDigits(t *testing.T) {
	e := &editor{tc: *timecode.MustParse("00:00:00:00", timecode.F25), field: 3}
	for _, k := range []string{"2", "4"} {
		e.update(k)
	}
	if e.tc.Frames() != 24 {
		t.Fatalf("frames = %d, want 24", e.tc.Frames())
	}
	e.update("7")
	if e.tc.Frames() != 7 {
		t.Fatalf("frames = %d, want 7", e.tc.Frames())
	}
	e.update("left")
	e.update("9")
	e.update("9")
	if e.tc.Seconds() != 9 {
		t.Fatalf("seconds = %d, want 9", e.tc.Seconds())
	}
}

func TestErrorShown(t *testing.T) {
	_, m := fixture()
	m.inflight = 1
	m = feed(m, errMsg{errors.New("offline"), true})
	if m.inflight != 0 || m.err == nil {
		t.Fatalf("inflight = %d, err = %v", m.inflight, m.err)
	}
	if v := m.View(); !strings.Contains(v, "offline") || !strings.Contains(v, "range off") {
		t.Fatalf("view missing error:\n%s", v)
	}
}
