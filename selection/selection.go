// Package selection tracks the single selected element across all slide
// surfaces, properties panel state and in place text editing.
package selection

import (
	"fmt"
	"strings"
	"sync"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"

	"carousel/slide"
	"carousel/style"
	"carousel/surface"
)

// Default decoration classes.
const (
	DefaultSelectedClass = "editor-selected"
	DefaultEditingClass  = "editor-editing"
)

// Scroller brings selected element into view.
type Scroller interface {
	ScrollIntoView(s *surface.Surface, e *etree.Element)
}

// ScrollFunc adapts function to Scroller.
type ScrollFunc func(s *surface.Surface, e *etree.Element)

// ScrollIntoView implements Scroller.
func (f ScrollFunc) ScrollIntoView(s *surface.Surface, e *etree.Element) { f(s, e) }

// Slot is single owner cell for the selected element.
type Slot struct {
	mu  sync.Mutex
	key *slide.Key
}

// NewSlot returns empty slot.
func NewSlot() *Slot { return &Slot{} }

// Current returns selected key.
func (sl *Slot) Current() (slide.Key, bool) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.key == nil {
		return slide.Key{}, false
	}
	return *sl.key, true
}

func (sl *Slot) set(key *slide.Key) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.key = key
}

// Options control selection decoration.
type Options struct {
	SelectedClass string
	EditingClass  string
	Scroller      Scroller
}

// Controller owns selection slot and edit mode.
type Controller struct {
	log      *zap.Logger
	slot     *Slot
	store    *style.Store
	content  *Content
	opts     Options
	surfaces []*surface.Surface

	panelOpen bool
	pinned    bool
	editing   *slide.Key
}

// NewController creates controller owning slot.
func NewController(slot *Slot, store *style.Store, content *Content, opts Options, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	if slot == nil {
		slot = NewSlot()
	}
	if content == nil {
		content = NewContent()
	}
	if opts.SelectedClass == "" {
		opts.SelectedClass = DefaultSelectedClass
	}
	if opts.EditingClass == "" {
		opts.EditingClass = DefaultEditingClass
	}
	if opts.Scroller == nil {
		opts.Scroller = ScrollFunc(func(*surface.Surface, *etree.Element) {})
	}
	return &Controller{
		log:     log.Named("selection"),
		slot:    slot,
		store:   store,
		content: content,
		opts:    opts,
	}
}

// SetSurfaces replaces surfaces selection spans. Current selection and edit
// mode are dropped.
func (c *Controller) SetSurfaces(ss []*surface.Surface) {
	c.editing = nil
	c.slot.set(nil)
	c.surfaces = ss
}

// Content returns edited content map.
func (c *Controller) Content() *Content { return c.content }

// Selected returns selected element.
func (c *Controller) Selected() (slide.Key, bool) { return c.slot.Current() }

// Editing returns element in edit mode.
func (c *Controller) Editing() (slide.Key, bool) {
	if c.editing == nil {
		return slide.Key{}, false
	}
	return *c.editing, true
}

// PanelOpen reports whether properties panel is open.
func (c *Controller) PanelOpen() bool { return c.panelOpen }

// Pinned reports whether properties panel is pinned open.
func (c *Controller) Pinned() bool { return c.pinned }

// OpenPanel opens properties panel.
func (c *Controller) OpenPanel() { c.panelOpen = true }

// ClosePanel closes and unpins properties panel.
func (c *Controller) ClosePanel() {
	c.panelOpen = false
	c.pinned = false
}

// Pin pins or unpins properties panel, pinning opens it.
func (c *Controller) Pin(pinned bool) {
	c.pinned = pinned
	if pinned {
		c.panelOpen = true
	}
}

func (c *Controller) surface(idx int) (*surface.Surface, error) {
	for _, s := range c.surfaces {
		if s.Index() == idx {
			return s, nil
		}
	}
	return nil, fmt.Errorf("slide %d: %w", idx, surface.ErrNoElement)
}

func (c *Controller) element(key slide.Key) (*surface.Surface, *etree.Element, error) {
	s, err := c.surface(key.Slide)
	if err != nil {
		return nil, nil, err
	}
	e := s.ByID(key.ID())
	if e == nil {
		return nil, nil, fmt.Errorf("%s: %w", key, surface.ErrNoElement)
	}
	return s, e, nil
}

// Select makes key the only selected element. Selection decoration is
// cleared on every surface first.
func (c *Controller) Select(key slide.Key) error {
	s, e, err := c.element(key)
	if err != nil {
		return err
	}
	if c.editing != nil && *c.editing != key {
		c.EndEdit()
	}
	c.clearDecoration()

	surface.AddClass(e, c.opts.SelectedClass)
	c.slot.set(&key)
	c.panelOpen = true
	c.opts.Scroller.ScrollIntoView(s, e)

	if key.Element.IsText() && c.store != nil {
		if c.store.CaptureOriginal(key, style.Capture(key.Element, s.Resolved(e))) {
			c.log.Debug("Captured template style on selection", zap.Stringer("key", key))
		}
	}
	c.log.Debug("Selected", zap.Stringer("key", key))
	return nil
}

// Deselect clears selection and ends edit mode.
func (c *Controller) Deselect() {
	c.EndEdit()
	c.clearDecoration()
	c.slot.set(nil)
}

// ClickEmpty handles click outside of any element: deselects and closes
// panel, pinned panel stays open without target.
func (c *Controller) ClickEmpty() {
	c.Deselect()
	if !c.pinned {
		c.panelOpen = false
	}
}

func (c *Controller) clearDecoration() {
	for _, s := range c.surfaces {
		for _, e := range s.Document().FindElements("//*[@class]") {
			surface.RemoveClass(e, c.opts.SelectedClass)
		}
	}
}

// BeginEdit selects text element and makes it editable in place.
func (c *Controller) BeginEdit(key slide.Key) error {
	if !key.Element.IsText() {
		return fmt.Errorf("%s is not a text element", key)
	}
	if c.editing != nil && *c.editing == key {
		return nil
	}
	if err := c.Select(key); err != nil {
		return err
	}
	_, e, err := c.element(key)
	if err != nil {
		return err
	}
	e.CreateAttr("contenteditable", "true")
	surface.AddClass(e, c.opts.EditingClass)
	c.editing = &key
	c.log.Debug("Edit mode entered", zap.Stringer("key", key))
	return nil
}

// EndEdit leaves edit mode committing element text into content map.
// Returns false when nothing was edited.
func (c *Controller) EndEdit() bool {
	if c.editing == nil {
		return false
	}
	key := *c.editing
	c.editing = nil

	_, e, err := c.element(key)
	if err != nil {
		c.log.Warn("Edited element vanished", zap.Stringer("key", key), zap.Error(err))
		return false
	}
	e.RemoveAttr("contenteditable")
	surface.RemoveClass(e, c.opts.EditingClass)

	text := norm.NFC.String(strings.TrimSpace(surface.Text(e)))
	c.content.SetText(key, text)
	c.log.Debug("Edit committed", zap.Stringer("key", key), zap.Int("length", len(text)))
	return true
}
