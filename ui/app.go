// Package ui provides a Bubble Tea terminal client for line search.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cbsinteractive/linesearch/api"
	"github.com/cbsinteractive/linesearch/client"
	"github.com/cbsinteractive/linesearch/timecode"
)

type focus int

const (
	focusSearch focus = iota
	focusTable
	focusEditor
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Fetcher client.Fetcher
	Fps     timecode.Fps
	Amount  int
	Theme   Theme
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx     context.Context
	fetcher client.Fetcher
	fps     timecode.Fps
	amount  int
	styles  Styles

	input   textinput.Model
	table   table.Model
	editors *editors
	focus   focus

	span     timecode.Span
	useSpan  bool
	results  api.Search
	status   string
	err      error
	inflight int
	width    int
}

var columnWidths = map[api.ColumnKind]int{
	api.Prod:    8,
	api.Segment: 8,
	api.TCIn:    11,
	api.TCOut:   11,
	api.Speaker: 10,
	api.Line:    40,
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	fps := opts.Fps
	if !fps.Valid() {
		fps = timecode.F25
	}
	amount := opts.Amount
	if amount <= 0 {
		amount = api.DefaultAmount
	}
	theme := opts.Theme
	if theme == (Theme{}) {
		theme = defaultTheme
	}

	in := textinput.New()
	in.Placeholder = "search lines"
	in.Prompt = "/ "
	in.Focus()

	cols := make([]table.Column, 0, len(api.Columns))
	for _, k := range api.Columns {
		name, _ := k.DisplayName()
		cols = append(cols, table.Column{Title: name, Width: columnWidths[k]})
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(amount+1))

	zero, _ := timecode.New([]int{0, 0, 0, 0}, fps)
	return Model{
		ctx:     ctx,
		fetcher: opts.Fetcher,
		fps:     fps,
		amount:  amount,
		styles:  theme.Styles(),
		input:   in,
		table:   t,
		editors: newEditors(),
		span:    timecode.Span{In: *zero, Out: *zero},
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.ping())
}

// Messages

type pingMsg api.Ping

type searchMsg api.Search

type errMsg struct {
	err    error
	search bool
}

// Commands

func (m Model) ping() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	ctx, f := m.ctx, m.fetcher
	return func() tea.Msg {
		p, err := f.Ping(ctx)
		if err != nil {
			return errMsg{err, false}
		}
		return pingMsg(p)
	}
}

func (m *Model) search() tea.Cmd {
	if m.fetcher == nil {
		return nil
	}
	q := m.query()
	m.inflight++
	m.status = "searching"
	ctx, f := m.ctx, m.fetcher
	return func() tea.Msg {
		res, err := f.Search(ctx, q)
		if err != nil {
			return errMsg{err, true}
		}
		return searchMsg(res)
	}
}

func (m Model) query() api.SearchQuery {
	q := api.SearchQuery{Text: strings.TrimSpace(m.input.Value()), Amount: m.amount}
	if m.useSpan {
		span := m.span
		q.Range = &span
	}
	return q
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		return m, nil

	case pingMsg:
		m.status = "connected: " + msg.Message
		m.err = nil
		return m, nil

	case searchMsg:
		m.inflight--
		m.setResults(api.Search(msg))
		return m, nil

	case errMsg:
		if msg.search {
			m.inflight--
		}
		m.err = msg.err
		m.status = ""
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusSearch {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m *Model) setResults(res api.Search) {
	m.results = res
	m.err = nil
	m.status = fmt.Sprintf("%d result(s)", len(res.Results))
	rows := make([]table.Row, 0, len(res.Results))
	for _, r := range res.Results {
		row := make(table.Row, len(api.Columns))
		for i, k := range api.Columns {
			row[i], _ = r.Get(k)
		}
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	m.table.SetCursor(0)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.focus {
	case focusEditor:
		return m.handleEditorKey(msg)
	case focusTable:
		return m.handleTableKey(msg)
	}

	switch msg.String() {
	case "enter":
		return m, m.search()
	case "tab", "esc":
		m.setFocus(focusTable)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/", "tab":
		m.setFocus(focusSearch)
		return m, nil
	case "i":
		return m.openEditor(edgeIn, m.span.In)
	case "o":
		return m.openEditor(edgeOut, m.span.Out)
	case "r":
		m.useSpan = !m.useSpan
		return m, m.search()
	case "p":
		return m, m.ping()
	case "enter":
		// Narrow the range to the selected line
		if m.table.Cursor() < len(m.results.Results) {
			span, err := m.results.Results[m.table.Cursor()].Span(m.fps)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.span, m.useSpan = span, true
			return m, m.search()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) openEditor(key string, tc timecode.Timecode) (tea.Model, tea.Cmd) {
	if err := m.editors.open(key, tc); err != nil {
		m.err = err
		return m, nil
	}
	m.setFocus(focusEditor)
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if _, _, err := m.editors.close(); err != nil {
			m.err = err
		}
		m.setFocus(focusTable)
		return m, nil
	case "enter":
		key, tc, err := m.editors.close()
		m.setFocus(focusTable)
		if err != nil {
			m.err = err
			return m, nil
		}
		span := m.span
		if key == edgeIn {
			span.In = tc
		} else {
			span.Out = tc
		}
		if err := span.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.span, m.useSpan, m.err = span, true, nil
		return m, m.search()
	}
	if m.editors.editing() {
		m.editors.active.update(msg.String())
	}
	return m, nil
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusSearch {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	if f == focusTable {
		m.table.Focus()
	} else {
		m.table.Blur()
	}
}

// View implements tea.Model.
func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Title.Render("line search"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	rng := "range off"
	if m.useSpan {
		rng = "range " + m.span.String()
	}
	b.WriteString(s.Muted.Render(rng))
	b.WriteString("\n")
	if m.focus == focusEditor && m.editors.editing() {
		b.WriteString(s.Panel.Render(m.editors.key + " " + m.editors.active.view(s)))
		b.WriteString("\n")
	}

	b.WriteString(s.Panel.Render(m.table.View()))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(s.Error.Render(m.err.Error()))
	case m.inflight > 0:
		b.WriteString(s.Muted.Render("loading... " + m.status))
	default:
		b.WriteString(s.Muted.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(s.Muted.Render("enter search  tab focus  i/o edit range  r toggle range  p ping  q quit"))
	return b.String()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
