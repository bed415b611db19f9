package surface

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"
)

// Event is host input delivered to a surface. Coordinates are in surface
// CSS pixels.
type Event struct {
	Type   EventType
	Target *etree.Element
	X, Y   float64

	phase   Phase
	stopped bool
}

// Phase returns phase currently being dispatched.
func (ev *Event) Phase() Phase { return ev.phase }

// StopPropagation prevents remaining listeners from seeing the event.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Handler processes dispatched event.
type Handler func(*Event)

type listener struct {
	id    int
	typ   EventType
	phase Phase
	fn    Handler
}

// Listen registers document level listener and returns function removing
// it. Release is idempotent.
func (s *Surface) Listen(typ EventType, phase Phase, fn Handler) (release func()) {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, &listener{id: id, typ: typ, phase: phase, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners returns number of registered listeners.
func (s *Surface) Listeners() int { return len(s.listeners) }

// Dispatch delivers event to capture listeners, then to bubble listeners,
// each group in registration order. Events targeting elements of another
// document are dropped.
func (s *Surface) Dispatch(ev *Event) {
	if ev.Target == nil {
		ev.Target = s.Root()
	}
	if !s.owns(ev.Target) {
		s.log.Debug("Dropping event for foreign element", zap.Stringer("type", ev.Type))
		return
	}
	// snapshot, listeners may release themselves
	ls := append([]*listener(nil), s.listeners...)
	for _, phase := range []Phase{PhaseCapture, PhaseBubble} {
		ev.phase = phase
		for _, l := range ls {
			if l.typ != ev.Type || l.phase != phase {
				continue
			}
			l.fn(ev)
			if ev.stopped {
				return
			}
		}
	}
}

func (s *Surface) owns(e *etree.Element) bool {
	root := s.doc.Root()
	for ; e != nil; e = e.Parent() {
		if e == root {
			return true
		}
	}
	return false
}
