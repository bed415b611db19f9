// Package drag implements pointer repositioning of slide background media.
// At most one session exists at a time, it lives in a Slot owned by the
// Controller.
package drag

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"carousel/css"
	"carousel/geom"
	"carousel/media"
	"carousel/slide"
	"carousel/style"
	"carousel/surface"
)

var (
	// ErrSessionActive is returned when drag is started while another one is
	// in progress.
	ErrSessionActive = errors.New("drag session already active")
	// ErrLayoutNotReady is returned when container has no size even after
	// waiting for layout.
	ErrLayoutNotReady = errors.New("layout not ready")
	// ErrNotDraggable is returned for elements which cannot be dragged.
	ErrNotDraggable = errors.New("element is not draggable")
)

// Point is a pair of per axis values.
type Point struct {
	X, Y float64
}

// Session is state of one drag interaction.
type Session struct {
	Key  slide.Key
	Kind slide.MediaKind

	Container geom.Size
	Natural   geom.Size
	Display   geom.Size
	// Estimated is set when natural size is guessed from aspect policy.
	Estimated bool
	// MinOffset is most negative allowed pixel offset per axis.
	MinOffset Point

	// Pointer is where pointer went down.
	Pointer Point
	// Origin is position percentage when session started.
	Origin Point
	// Position is live position percentage.
	Position Point

	surface *surface.Surface
	target  *etree.Element
	offset  Point
}

// Slot is single owner cell for the drag session.
type Slot struct {
	mu sync.Mutex
	s  *Session
}

// NewSlot returns empty slot.
func NewSlot() *Slot { return &Slot{} }

// Active reports whether session is in progress.
func (sl *Slot) Active() bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	return sl.s != nil
}

// Current returns copy of active session.
func (sl *Slot) Current() (Session, bool) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.s == nil {
		return Session{}, false
	}
	return *sl.s, true
}

func (sl *Slot) put(s *Session) bool {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.s != nil {
		return false
	}
	sl.s = s
	return true
}

func (sl *Slot) take() *Session {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	s := sl.s
	sl.s = nil
	return s
}

// Options control drag geometry.
type Options struct {
	// Bleed is overscan in pixels added to cover fit.
	Bleed float64
	// Aspect is used when natural media size is unknown.
	Aspect geom.Aspect
}

// Controller drives drag sessions and commits results into style store.
type Controller struct {
	log   *zap.Logger
	slot  *Slot
	store *style.Store
	dims  media.Dimensions
	opts  Options
}

// NewController creates controller owning slot.
func NewController(slot *Slot, store *style.Store, dims media.Dimensions, opts Options, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if slot == nil {
		slot = NewSlot()
	}
	if opts.Aspect.W <= 0 || opts.Aspect.H <= 0 {
		opts.Aspect = geom.DefaultAspect
	}
	return &Controller{log: log.Named("drag"), slot: slot, store: store, dims: dims, opts: opts}
}

// Active reports whether session is in progress.
func (c *Controller) Active() bool { return c.slot.Active() }

// Session returns copy of active session.
func (c *Controller) Session() (Session, bool) { return c.slot.Current() }

// Start begins session for background of the surface when target belongs
// to it. x, y is pointer position.
func (c *Controller) Start(ctx context.Context, s *surface.Surface, target *etree.Element, x, y float64) error {
	if c.slot.Active() {
		return ErrSessionActive
	}
	key, _, ok := s.KeyOf(target)
	if !ok || !key.Element.Draggable() {
		return ErrNotDraggable
	}

	kind, el := s.MediaKind()
	var container *etree.Element
	switch kind {
	case slide.MediaKindImage, slide.MediaKindVideo:
		container = el.Parent()
	case slide.MediaKindCssBackground:
		container = el
	case slide.MediaKindNone:
		return ErrNotDraggable
	}

	box := s.Layout().Box(container)
	if box.IsZero() {
		if err := s.Layout().Settle(ctx); err != nil {
			return err
		}
		if box = s.Layout().Box(container); box.IsZero() {
			c.log.Debug("Container has no size, drag not started", zap.Stringer("key", key))
			return ErrLayoutNotReady
		}
	}

	natural, exact := media.NaturalOrEstimate(ctx, c.dims, s.MediaSource(kind, el), box, c.opts.Aspect, c.log)
	display := geom.Cover(natural, box, c.opts.Bleed)
	minOffset := Point{
		X: geom.MinOffset(box.W, display.W),
		Y: geom.MinOffset(box.H, display.H),
	}
	origin := currentPosition(s, kind, el, minOffset)

	sess := &Session{
		Key:       key,
		Kind:      kind,
		Container: box,
		Natural:   natural,
		Display:   display,
		Estimated: !exact,
		MinOffset: minOffset,
		Pointer:  Point{X: x, Y: y},
		Origin:   origin,
		Position: origin,
		surface:  s,
		target:   el,
		offset: Point{
			X: geom.OffsetFromPercent(origin.X, box.W, display.W),
			Y: geom.OffsetFromPercent(origin.Y, box.H, display.H),
		},
	}
	if !c.slot.put(sess) {
		return ErrSessionActive
	}
	c.log.Debug("Drag started",
		zap.Stringer("key", key),
		zap.Stringer("kind", kind),
		zap.Float64("container_w", box.W), zap.Float64("container_h", box.H),
		zap.Float64("display_w", display.W), zap.Float64("display_h", display.H),
		zap.Bool("estimated", !exact))
	return nil
}

// Move updates live position for pointer at x, y. Nothing is committed to
// the store. Returns false when there is no session.
func (c *Controller) Move(x, y float64) bool {
	c.slot.mu.Lock()
	sess := c.slot.s
	if sess == nil {
		c.slot.mu.Unlock()
		return false
	}
	pos := Point{
		X: axisPercent(sess.offset.X+x-sess.Pointer.X, sess.MinOffset.X, sess.Origin.X),
		Y: axisPercent(sess.offset.Y+y-sess.Pointer.Y, sess.MinOffset.Y, sess.Origin.Y),
	}
	sess.Position = pos
	c.slot.mu.Unlock()

	writePosition(sess.surface, sess.Kind, sess.target, pos)
	return true
}

// axisPercent clamps pixel offset into [minOffset, 0] and converts it back
// to percentage, axis without slack keeps its original percentage.
func axisPercent(offset, minOffset, origin float64) float64 {
	offset = geom.Clamp(offset, minOffset, 0)
	pct, ok := geom.PercentFromOffset(offset, minOffset)
	if !ok {
		return origin
	}
	return geom.Clamp(pct, 0, 100)
}

// End commits live position into the store and clears the session. Returns
// false when there was no session.
func (c *Controller) End() (bool, error) {
	sess := c.slot.take()
	if sess == nil {
		return false, nil
	}
	pos := currentPosition(sess.surface, sess.Kind, sess.target, sess.MinOffset)
	pos.X, pos.Y = geom.Clamp(pos.X, 0, 100), geom.Clamp(pos.Y, 0, 100)

	var err error
	switch sess.Kind {
	case slide.MediaKindImage, slide.MediaKindVideo:
		err = c.store.Set(sess.Key, style.PropertyObjectPosition, css.FormatPosition(pos.X, pos.Y))
	case slide.MediaKindCssBackground:
		err = errors.Join(
			c.store.Set(sess.Key, style.PropertyBackgroundPositionX, css.FormatPercent(pos.X)),
			c.store.Set(sess.Key, style.PropertyBackgroundPositionY, css.FormatPercent(pos.Y)),
		)
	case slide.MediaKindNone:
	}
	if err != nil {
		return true, fmt.Errorf("unable to commit drag of %s: %w", sess.Key, err)
	}
	c.log.Debug("Drag committed", zap.Stringer("key", sess.Key), zap.Float64("x", pos.X), zap.Float64("y", pos.Y))
	return true, nil
}

// Cancel discards session restoring live position it started with.
func (c *Controller) Cancel() bool {
	sess := c.slot.take()
	if sess == nil {
		return false
	}
	writePosition(sess.surface, sess.Kind, sess.target, sess.Origin)
	c.log.Debug("Drag cancelled", zap.Stringer("key", sess.Key))
	return true
}

// currentPosition reads position percentages from the live surface, CSS
// initial values are used when nothing is declared. Pixel offsets are
// converted using media slack of the session.
func currentPosition(s *surface.Surface, kind slide.MediaKind, e *etree.Element, minOffset Point) Point {
	decls := s.Resolved(e)
	switch kind {
	case slide.MediaKindImage, slide.MediaKindVideo:
		if v, ok := decls.Get("object-position"); ok {
			if x, y, ok := css.ParsePositionOffsets(v.Raw); ok {
				return Point{X: offsetPercent(x, minOffset.X), Y: offsetPercent(y, minOffset.Y)}
			}
		}
		return Point{X: 50, Y: 50}
	case slide.MediaKindCssBackground:
		var p Point
		if v, ok := decls.Get("background-position"); ok {
			if x, y, ok := css.ParsePositionOffsets(v.Raw); ok {
				p = Point{X: offsetPercent(x, minOffset.X), Y: offsetPercent(y, minOffset.Y)}
			}
		}
		if v, ok := decls.Get("background-position-x"); ok {
			if x, ok := css.ParseOffset(v.Raw); ok {
				p.X = offsetPercent(x, minOffset.X)
			}
		}
		if v, ok := decls.Get("background-position-y"); ok {
			if y, ok := css.ParseOffset(v.Raw); ok {
				p.Y = offsetPercent(y, minOffset.Y)
			}
		}
		return p
	case slide.MediaKindNone:
	}
	return Point{}
}

// offsetPercent turns axis position into percentage, axis without slack
// renders the same at any percentage and gets centered.
func offsetPercent(o css.Offset, minOffset float64) float64 {
	if !o.Px {
		return o.Value
	}
	pct, ok := geom.PercentFromOffset(o.Value, minOffset)
	if !ok {
		return 50
	}
	return pct
}

func writePosition(s *surface.Surface, kind slide.MediaKind, e *etree.Element, p Point) {
	switch kind {
	case slide.MediaKindImage, slide.MediaKindVideo:
		s.SetInline(e, "object-position", css.Value{Raw: css.FormatPosition(p.X, p.Y)})
	case slide.MediaKindCssBackground:
		s.SetInline(e, "background-position-x", css.PercentValue(p.X))
		s.SetInline(e, "background-position-y", css.PercentValue(p.Y))
	case slide.MediaKindNone:
	}
}
