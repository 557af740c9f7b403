package ui

import (
	"fmt"
	"strings"

	"github.com/cbsinteractive/linesearch/component"
	"github.com/cbsinteractive/linesearch/timecode"
)

// editor adjusts one timecode a field at a time. Every state it can
// reach passes Validate.
type editor struct {
	tc      timecode.Timecode
	field   int
	mounted bool
}

func (e *editor) Unmount() error {
	e.mounted = false
	return nil
}

// editors mounts at most one editor per span edge through a component
// manager and remembers the instance it created.
type editors struct {
	manager *component.Manager[string, timecode.Timecode]
	active  *editor
	key     string
}

const (
	edgeIn  = "in"
	edgeOut = "out"
)

func newEditors() *editors {
	es := &editors{}
	mount := component.Func[timecode.Timecode](func(tc timecode.Timecode) (component.Instance, error) {
		if err := tc.Validate(); err != nil {
			return nil, err
		}
		e := &editor{tc: tc, field: 3, mounted: true}
		es.active = e
		return e, nil
	})
	es.manager = component.NewManager(map[string]component.Component[timecode.Timecode]{
		edgeIn:  mount,
		edgeOut: mount,
	})
	return es
}

// open mounts the editor for key. Other editors are unmounted first.
func (es *editors) open(key string, tc timecode.Timecode) error {
	if err := es.manager.UnmountAll(); err != nil {
		return err
	}
	es.active = nil
	if err := es.manager.Mount(key, tc); err != nil {
		return err
	}
	es.key = key
	return nil
}

// close unmounts the active editor and returns its value
func (es *editors) close() (string, timecode.Timecode, error) {
	e, key := es.active, es.key
	es.active, es.key = nil, ""
	if e == nil {
		return "", timecode.Timecode{}, nil
	}
	return key, e.tc, es.manager.Unmount(key)
}

func (es *editors) editing() bool {
	return es.active != nil && es.active.mounted
}

func (e *editor) limit() int {
	switch e.field {
	case 0:
		return 24
	case 1, 2:
		return 60
	default:
		return e.tc.Fps().Nominal()
	}
}

func (e *editor) move(delta int) {
	e.field = (e.field + delta + 4) % 4
}

// step adds delta to the current field, wrapping at its limit and
// skipping labels that drop-frame counting omits.
func (e *editor) step(delta int) {
	limit := e.limit()
	parts := e.tc.Parts()
	for i := 0; i < limit; i++ {
		parts[e.field] = ((parts[e.field]+delta)%limit + limit) % limit
		if e.try(parts) {
			return
		}
	}
}

// digit shifts d into the current field, restarting from d when the
// shifted value is out of range.
func (e *editor) digit(d int) {
	parts := e.tc.Parts()
	parts[e.field] = (parts[e.field]*10 + d) % 100
	if e.try(parts) {
		return
	}
	parts[e.field] = d
	e.try(parts)
}

func (e *editor) try(parts [4]int) bool {
	cand := e.tc
	if err := cand.SetParts(parts); err != nil {
		return false
	}
	if cand.Validate() != nil {
		return false
	}
	e.tc = cand
	return true
}

func (e *editor) update(key string) {
	switch key {
	case "left", "h":
		e.move(-1)
	case "right", "l":
		e.move(1)
	case "up", "k":
		e.step(1)
	case "down", "j":
		e.step(-1)
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			e.digit(int(key[0] - '0'))
		}
	}
}

func (e *editor) view(s Styles) string {
	sep := ":"
	if e.tc.DropFrame() {
		sep = ";"
	}
	parts := e.tc.Parts()
	fields := make([]string, len(parts))
	for i, p := range parts {
		style := s.Field
		if i == e.field {
			style = s.Current
		}
		fields[i] = style.Render(fmt.Sprintf("%02d", p))
	}
	tc := strings.Join(fields[:3], ":") + sep + fields[3]
	return tc + s.Muted.Render(fmt.Sprintf("  %s  ←/→ field  ↑/↓ adjust  enter ok  esc cancel", e.tc.Fps()))
}
