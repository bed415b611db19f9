// Package binder wires host input of slide surfaces to drag and selection
// controllers. Every binding returns disposer, all of them run before the
// next binding so handlers never accumulate.
package binder

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"carousel/drag"
	"carousel/selection"
	"carousel/slide"
	"carousel/style"
	"carousel/surface"
)

// Disposer releases resources acquired by a binding.
type Disposer func() error

// Binder binds surfaces.
type Binder struct {
	log   *zap.Logger
	drag  *drag.Controller
	sel   *selection.Controller
	store *style.Store

	ctx       context.Context
	surfaces  []*surface.Surface
	disposers []Disposer
}

// New creates binder.
func New(d *drag.Controller, sel *selection.Controller, store *style.Store, log *zap.Logger) *Binder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Binder{
		log:   log.Named("binder"),
		drag:  d,
		sel:   sel,
		store: store,
		ctx:   context.Background(),
	}
}

// Surfaces returns currently bound surfaces.
func (b *Binder) Surfaces() []*surface.Surface { return b.surfaces }

// Bind tears down previous bindings and binds surfaces. ctx is used by
// blocking waits of drag start.
func (b *Binder) Bind(ctx context.Context, ss []*surface.Surface) error {
	var err error
	if uerr := b.Unbind(); uerr != nil {
		b.log.Warn("Previous bindings were not released cleanly", zap.Error(uerr))
		err = uerr
	}
	b.ctx = ctx
	b.surfaces = slices.Clone(ss)
	b.sel.SetSurfaces(b.surfaces)
	for _, s := range b.surfaces {
		b.disposers = append(b.disposers, b.bind(s))
	}
	b.log.Debug("Surfaces bound", zap.Int("count", len(ss)))
	return err
}

// Unbind runs all disposers in reverse order.
func (b *Binder) Unbind() error {
	if b.drag.Active() {
		b.drag.Cancel()
	}
	b.sel.Deselect()

	var err error
	for i := len(b.disposers) - 1; i >= 0; i-- {
		err = multierr.Append(err, b.disposers[i]())
	}
	b.disposers = nil
	b.surfaces = nil
	b.sel.SetSurfaces(nil)
	return err
}

// bind annotates editable elements of a surface, captures their template
// styles and installs capture phase listeners.
func (b *Binder) bind(s *surface.Surface) Disposer {
	var annotated []slide.Key
	for _, el := range slide.ElementValues() {
		key := slide.Key{Slide: s.Index(), Element: el}
		target := s.Find(el)
		if target == nil {
			b.log.Debug("Element absent from slide markup", zap.Stringer("key", key))
			continue
		}
		s.Annotate(target, el)
		annotated = append(annotated, key)
		if b.store != nil {
			b.store.CaptureOriginal(key, style.Capture(el, s.Resolved(target)))
		}
	}

	handlers := map[surface.EventType]surface.Handler{
		surface.EventTypeClick:         func(ev *surface.Event) { b.onClick(s, ev) },
		surface.EventTypeDblclick:      func(ev *surface.Event) { b.onDblClick(s, ev) },
		surface.EventTypePointerdown:   func(ev *surface.Event) { b.onPointerDown(s, ev) },
		surface.EventTypePointermove:   func(ev *surface.Event) { b.onPointerMove(s, ev) },
		surface.EventTypePointerup:     func(ev *surface.Event) { b.onPointerUp(s, ev) },
		surface.EventTypePointercancel: func(ev *surface.Event) { b.onPointerCancel(s, ev) },
		surface.EventTypePointerleave:  func(ev *surface.Event) { b.onPointerCancel(s, ev) },
		surface.EventTypeBlur:          func(ev *surface.Event) { b.onBlur(s, ev) },
	}
	releases := make([]func(), 0, len(handlers))
	for _, typ := range surface.EventTypeValues() {
		if h, ok := handlers[typ]; ok {
			releases = append(releases, s.Listen(typ, surface.PhaseCapture, h))
		}
	}

	return func() error {
		for _, release := range releases {
			release()
		}
		var err error
		for _, key := range annotated {
			e := s.ByID(key.ID())
			if e == nil {
				err = multierr.Append(err, fmt.Errorf("unbinding %s: %w", key, surface.ErrNoElement))
				continue
			}
			s.Unannotate(e)
		}
		return err
	}
}

func (b *Binder) onClick(s *surface.Surface, ev *surface.Event) {
	key, _, ok := s.KeyOf(ev.Target)
	if !ok {
		b.sel.ClickEmpty()
		return
	}
	if err := b.sel.Select(key); err != nil {
		b.log.Warn("Unable to select element", zap.Stringer("key", key), zap.Error(err))
	}
}

func (b *Binder) onDblClick(s *surface.Surface, ev *surface.Event) {
	key, _, ok := s.KeyOf(ev.Target)
	if !ok || !key.Element.IsText() {
		return
	}
	if err := b.sel.BeginEdit(key); err != nil {
		b.log.Warn("Unable to enter edit mode", zap.Stringer("key", key), zap.Error(err))
	}
}

func (b *Binder) onPointerDown(s *surface.Surface, ev *surface.Event) {
	key, _, ok := s.KeyOf(ev.Target)
	if !ok || !key.Element.Draggable() {
		return
	}
	err := b.drag.Start(b.ctx, s, ev.Target, ev.X, ev.Y)
	switch {
	case err == nil:
	case errors.Is(err, drag.ErrSessionActive), errors.Is(err, drag.ErrLayoutNotReady):
		b.log.Debug("Drag not started", zap.Stringer("key", key), zap.Error(err))
	default:
		b.log.Warn("Drag not started", zap.Stringer("key", key), zap.Error(err))
	}
}

// owned reports whether active drag session belongs to the surface.
func (b *Binder) owned(s *surface.Surface) bool {
	sess, ok := b.drag.Session()
	return ok && sess.Key.Slide == s.Index()
}

func (b *Binder) onPointerMove(s *surface.Surface, ev *surface.Event) {
	if b.owned(s) {
		b.drag.Move(ev.X, ev.Y)
	}
}

func (b *Binder) onPointerUp(s *surface.Surface, ev *surface.Event) {
	if !b.owned(s) {
		return
	}
	b.drag.Move(ev.X, ev.Y)
	if _, err := b.drag.End(); err != nil {
		b.log.Warn("Drag not committed", zap.Error(err))
	}
}

func (b *Binder) onPointerCancel(s *surface.Surface, _ *surface.Event) {
	if b.owned(s) {
		b.drag.Cancel()
	}
}

func (b *Binder) onBlur(s *surface.Surface, ev *surface.Event) {
	if b.owned(s) {
		b.drag.Cancel()
	}
	if key, ok := b.sel.Editing(); ok && key.Slide == s.Index() {
		b.sel.EndEdit()
	}
}
