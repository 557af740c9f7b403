// Package component keeps track of which UI components are registered
// against which elements and which of them are currently mounted.
package component

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotFound = errors.New("component not found")
	ErrMounted  = errors.New("component is already mounted")
)

// Component knows how to mount itself with props P
type Component[P any] interface {
	Mount(props P) (Instance, error)
}

// Func adapts a function to a Component
type Func[P any] func(props P) (Instance, error)

func (f Func[P]) Mount(props P) (Instance, error) { return f(props) }

// Instance is a mounted component
type Instance interface {
	Unmount() error
}

// EventTarget is implemented by element keys that accept dispatched events
type EventTarget interface {
	DispatchEvent(kind string)
}

// Manager maps elements of type K to components taking props P and
// mounts them on demand. It is safe for concurrent use.
type Manager[K comparable, P any] struct {
	Log logrus.FieldLogger

	mu         sync.Mutex
	components map[K]Component[P]
	instances  map[K]Instance
}

// NewManager returns a manager seeded with components, which may be nil
func NewManager[K comparable, P any](components map[K]Component[P]) *Manager[K, P] {
	m := &Manager[K, P]{
		Log:        logrus.StandardLogger(),
		components: make(map[K]Component[P], len(components)),
		instances:  make(map[K]Instance),
	}
	for k, c := range components {
		m.components[k] = c
	}
	return m
}

// Add registers c for element k, replacing any earlier registration
func (m *Manager[K, P]) Add(k K, c Component[P]) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.init()
	if _, ok := m.components[k]; ok {
		m.log().WithField("element", k).Warn("component already exists")
	}
	m.components[k] = c
}

// Mount mounts the component registered for k
func (m *Manager[K, P]) Mount(k K, props P) error {
	m.mu.Lock()
	m.init()
	c, ok := m.components[k]
	_, mounted := m.instances[k]
	m.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrNotFound, "%v", k)
	}
	if mounted {
		return errors.Wrapf(ErrMounted, "%v", k)
	}

	inst, err := c.Mount(props)
	if err != nil {
		return errors.Wrapf(err, "mounting %v", k)
	}

	m.mu.Lock()
	_, raced := m.instances[k]
	if !raced {
		m.instances[k] = inst
	}
	m.mu.Unlock()
	if raced {
		_ = inst.Unmount()
		return errors.Wrapf(ErrMounted, "%v", k)
	}
	return nil
}

// Unmount unmounts the instance for k. It is a no-op if k is not mounted.
func (m *Manager[K, P]) Unmount(k K) error {
	m.mu.Lock()
	inst, ok := m.instances[k]
	delete(m.instances, k)
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return errors.Wrapf(inst.Unmount(), "unmounting %v", k)
}

// UnmountAll unmounts every mounted instance
func (m *Manager[K, P]) UnmountAll() error {
	return m.UnmountIf(nil)
}

// UnmountIf unmounts the instances whose element satisfies pred. A nil
// pred matches everything. Every matching instance is removed even if
// some fail to unmount; the first failure is returned.
func (m *Manager[K, P]) UnmountIf(pred func(K) bool) error {
	if pred == nil {
		pred = func(K) bool { return true }
	}
	m.mu.Lock()
	var keys []K
	var insts []Instance
	for k, inst := range m.instances {
		if pred(k) {
			keys = append(keys, k)
			insts = append(insts, inst)
			delete(m.instances, k)
		}
	}
	m.mu.Unlock()

	var first error
	for i, inst := range insts {
		if err := inst.Unmount(); err != nil {
			m.log().WithError(err).WithField("element", keys[i]).Error("unmount failed")
			if first == nil {
				first = errors.Wrapf(err, "unmounting %v", keys[i])
			}
		}
	}
	return first
}

// Dispatch delivers an event of the given kind to k if a component is
// registered for it and k is an EventTarget.
func (m *Manager[K, P]) Dispatch(kind string, k K) bool {
	m.mu.Lock()
	_, ok := m.components[k]
	m.mu.Unlock()
	if !ok {
		return false
	}
	t, ok := any(k).(EventTarget)
	if !ok {
		return false
	}
	t.DispatchEvent(kind)
	return true
}

// Mounted reports whether k has a mounted instance
func (m *Manager[K, P]) Mounted(k K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.instances[k]
	return ok
}

// Registered reports whether a component is registered for k
func (m *Manager[K, P]) Registered(k K) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.components[k]
	return ok
}

func (m *Manager[K, P]) init() {
	if m.components == nil {
		m.components = map[K]Component[P]{}
	}
	if m.instances == nil {
		m.instances = map[K]Instance{}
	}
}

func (m *Manager[K, P]) log() logrus.FieldLogger {
	if m.Log == nil {
		return logrus.StandardLogger()
	}
	return m.Log
}
