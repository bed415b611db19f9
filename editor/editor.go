// Package editor orchestrates carousel editing session: slide surfaces,
// style store, drag and selection controllers, media reconciliation and
// persistence.
package editor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"carousel/binder"
	"carousel/drag"
	"carousel/geom"
	"carousel/media"
	"carousel/persist"
	"carousel/selection"
	"carousel/slide"
	"carousel/style"
	"carousel/surface"
)

// Options configure editor.
type Options struct {
	// Size is slide viewport size in CSS pixels.
	Size geom.Size
	// Bleed is cover fit overscan in pixels.
	Bleed float64
	// Aspect estimates media size when natural one is unknown.
	Aspect geom.Aspect
	// ProbeTimeout bounds natural dimensions lookup.
	ProbeTimeout time.Duration
	// MediaBase resolves relative media URLs.
	MediaBase string
	// ForbiddenVideo lists template classes which do not allow video.
	ForbiddenVideo []string
	SelectedClass  string
	EditingClass   string
	// Defaults are style defaults, builtin ones are used when nil.
	Defaults style.Defaults
	// Scroller brings selected elements into view.
	Scroller selection.Scroller
	// Layout creates layout for surfaces, style layout is used when nil.
	Layout func(*surface.Surface) surface.Layout
}

// Editor is a single carousel editing session. Not safe for concurrent use,
// all calls are expected from host event loop.
type Editor struct {
	log  *zap.Logger
	opts Options

	store      *style.Store
	content    *selection.Content
	drag       *drag.Controller
	sel        *selection.Controller
	binder     *binder.Binder
	reconciler *media.Reconciler

	session  uuid.UUID
	carousel string
	doc      *persist.Document
	surfaces []*surface.Surface
	applied  map[slide.Key]style.Patch
	release  func()
}

// New creates editor. dims resolves natural media size, prober reading
// files and URLs is used when nil.
func New(opts Options, dims media.Dimensions, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("editor")
	if opts.Aspect.W <= 0 || opts.Aspect.H <= 0 {
		opts.Aspect = geom.DefaultAspect
	}
	if dims == nil {
		dims = media.NewProber(opts.MediaBase, opts.ProbeTimeout, log)
	}

	store := style.NewStore(opts.Defaults, log)
	content := selection.NewContent()
	d := drag.NewController(drag.NewSlot(), store, dims, drag.Options{Bleed: opts.Bleed, Aspect: opts.Aspect}, log)
	sel := selection.NewController(selection.NewSlot(), store, content, selection.Options{
		SelectedClass: opts.SelectedClass,
		EditingClass:  opts.EditingClass,
		Scroller:      opts.Scroller,
	}, log)

	return &Editor{
		log:        log,
		opts:       opts,
		store:      store,
		content:    content,
		drag:       d,
		sel:        sel,
		binder:     binder.New(d, sel, store, log),
		reconciler: media.NewReconciler(dims, media.Options{Forbidden: opts.ForbiddenVideo, Aspect: opts.Aspect}, log),
		applied:    make(map[slide.Key]style.Patch),
	}
}

// Store returns style store.
func (e *Editor) Store() *style.Store { return e.store }

// Content returns edited content map.
func (e *Editor) Content() *selection.Content { return e.content }

// Selection returns selection controller.
func (e *Editor) Selection() *selection.Controller { return e.sel }

// Drag returns drag controller.
func (e *Editor) Drag() *drag.Controller { return e.drag }

// Surfaces returns slide surfaces of open carousel.
func (e *Editor) Surfaces() []*surface.Surface { return e.surfaces }

// Document returns document editor was opened with or last saved.
func (e *Editor) Document() *persist.Document { return e.doc }

// Session returns id of current editing session.
func (e *Editor) Session() uuid.UUID { return e.session }

// IsOpen reports whether carousel is open.
func (e *Editor) IsOpen() bool { return e.doc != nil }

// Open loads slide markups of carousel document. Styles and content edits
// of previous carousel are dropped when document id differs. Stored styles
// are applied before Open returns.
func (e *Editor) Open(ctx context.Context, doc *persist.Document, markups [][]byte) error {
	if doc == nil {
		return errors.New("no content document")
	}
	if e.doc != nil {
		if err := e.Close(); err != nil {
			e.log.Warn("Previous carousel closed with errors", zap.Error(err))
		}
	}
	if doc.ID == "" || doc.ID != e.carousel {
		e.store.Reset()
		e.content.Reset()
	}

	session, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("unable to generate session id: %w", err)
	}
	log := e.log.With(zap.Stringer("session", session), zap.String("carousel", doc.ID))

	if len(markups) != len(doc.Slides) {
		log.Warn("Number of slide markups does not match content document",
			zap.Int("markups", len(markups)), zap.Int("slides", len(doc.Slides)))
	}

	surfaces := make([]*surface.Surface, 0, len(markups))
	for i, markup := range markups {
		s, err := surface.LoadBytes(i, markup, surface.Options{Size: e.opts.Size}, e.log)
		if err != nil {
			return err
		}
		if e.opts.Layout != nil {
			s.SetLayout(e.opts.Layout(s))
		}
		var fallbacks []string
		if i < len(doc.Slides) {
			fallbacks = doc.Slides[i].Media
		}
		if _, err := e.reconciler.Sweep(ctx, s, fallbacks); err != nil {
			return fmt.Errorf("slide %d: %w", i, err)
		}
		surfaces = append(surfaces, s)
	}

	if err := e.binder.Bind(ctx, surfaces); err != nil {
		log.Warn("Binding reported problems", zap.Error(err))
	}
	e.session = session
	e.carousel = doc.ID
	e.doc = doc
	e.surfaces = surfaces
	clear(e.applied)

	e.store.Load(doc.Styles)
	if err := e.reapplyContent(ctx); err != nil {
		return err
	}
	e.release = e.store.Subscribe(e.onChange)
	e.applyAll()

	log.Info("Carousel opened", zap.Int("slides", len(surfaces)))
	return nil
}

// reapplyContent puts edited texts and chosen media back into fresh
// surfaces.
func (e *Editor) reapplyContent(ctx context.Context) error {
	for key, text := range e.content.Texts() {
		s := e.surface(key.Slide)
		if s == nil {
			continue
		}
		if el := s.ByID(key.ID()); el != nil {
			surface.SetText(el, text)
		}
	}
	for idx, u := range e.content.Medias() {
		s := e.surface(idx)
		if s == nil {
			continue
		}
		kind, el := s.MediaKind()
		if s.MediaSource(kind, el) == u {
			continue
		}
		if _, err := e.reconciler.Assign(ctx, s, u); err != nil {
			e.log.Warn("Unable to restore chosen media", zap.Int("slide", idx), zap.String("url", u), zap.Error(err))
		}
	}
	return nil
}

// Close tears down bindings. Style and content edits are kept so the same
// carousel may be reopened.
func (e *Editor) Close() error {
	if e.doc == nil {
		return ErrNotOpen
	}
	var err error
	if e.release != nil {
		e.release()
		e.release = nil
	}
	err = multierr.Append(err, e.binder.Unbind())
	e.surfaces = nil
	e.doc = nil
	e.log.Debug("Carousel closed", zap.Stringer("session", e.session))
	return err
}

func (e *Editor) surface(idx int) *surface.Surface {
	if idx < 0 || idx >= len(e.surfaces) {
		return nil
	}
	return e.surfaces[idx]
}

// HandleEvent delivers host input to slide surface.
func (e *Editor) HandleEvent(slideIdx int, ev *surface.Event) error {
	if e.doc == nil {
		return ErrNotOpen
	}
	s := e.surface(slideIdx)
	if s == nil {
		return fmt.Errorf("slide %d: %w", slideIdx, surface.ErrNoElement)
	}
	s.Dispatch(ev)
	return nil
}

// EditText replaces text of title or subtitle as if user typed it in place.
func (e *Editor) EditText(key slide.Key, text string) error {
	if e.doc == nil {
		return ErrNotOpen
	}
	if err := e.sel.BeginEdit(key); err != nil {
		return err
	}
	s := e.surface(key.Slide)
	surface.SetText(s.ByID(key.ID()), text)
	e.sel.EndEdit()
	return nil
}

// SetStyle writes property from the properties panel.
func (e *Editor) SetStyle(key slide.Key, prop style.Property, value string) error {
	if e.doc == nil {
		return ErrNotOpen
	}
	if err := e.store.Set(key, prop, value); err != nil {
		return &UserError{Op: "style", Message: fmt.Sprintf("invalid %s value", prop), Err: err}
	}
	return nil
}

// AssignBackground makes u the background media of slide. Video on template
// which does not allow it is reported as UserError and nothing changes.
func (e *Editor) AssignBackground(ctx context.Context, slideIdx int, u string) error {
	if e.doc == nil {
		return ErrNotOpen
	}
	s := e.surface(slideIdx)
	if s == nil {
		return fmt.Errorf("slide %d: %w", slideIdx, surface.ErrNoElement)
	}
	if e.drag.Active() {
		e.drag.Cancel()
	}

	res, err := e.reconciler.Assign(ctx, s, u)
	if err != nil {
		if errors.Is(err, media.ErrVideoNotAllowed) {
			return &UserError{Op: "background", Message: "this template does not support video", Err: err}
		}
		return fmt.Errorf("unable to assign background of slide %d: %w", slideIdx, err)
	}

	key := slide.Key{Slide: slideIdx, Element: slide.ElementBackground}
	// new element carries none of previously applied values
	delete(e.applied, key)
	if res.Height != "" {
		if err := e.store.Set(key, style.PropertyHeight, res.Height); err != nil {
			e.log.Warn("Unable to keep synchronized container height", zap.Error(err))
		}
	}
	e.content.SetMedia(slideIdx, u)
	e.apply(key)

	e.log.Debug("Background assigned",
		zap.Int("slide", slideIdx), zap.Stringer("from", res.From), zap.Stringer("to", res.To), zap.String("url", u))
	return nil
}

// Save builds updated content document and hands it to saver. Failure is
// reported as UserError, editing state is kept intact for retry.
func (e *Editor) Save(ctx context.Context, saver persist.Saver) (*persist.Document, error) {
	if e.doc == nil {
		return nil, ErrNotOpen
	}
	e.sel.EndEdit()

	doc := persist.Build(e.doc, e.store, e.content, e.log)
	if err := saver.Save(ctx, doc); err != nil {
		e.log.Error("Unable to save carousel", zap.String("carousel", doc.ID), zap.Error(err))
		return nil, &UserError{Op: "save", Message: "carousel could not be saved", Err: err}
	}
	e.doc = doc
	e.log.Info("Carousel saved", zap.String("carousel", doc.ID))
	return doc, nil
}
