package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"carousel/css"
	"carousel/geom"
	"carousel/slide"
	"carousel/surface"
)

// Editor markers kept in slide markup.
const (
	// AttrVideoSized marks container already synchronized to video
	// intrinsic size.
	AttrVideoSized = "data-editor-video-sized"
	// AttrAffordance marks decoration elements owned by the editor.
	AttrAffordance = "data-editor-affordance"

	ClassPlayOverlay = "video-play-overlay"
)

// geometryProps are container properties preserved across representation
// swaps.
var geometryProps = []string{"width", "height", "border-radius", "box-shadow", "margin"}

// Options control reconciliation.
type Options struct {
	// Forbidden lists template classes which do not allow video.
	Forbidden []string
	// Aspect is used when natural dimensions cannot be learned.
	Aspect geom.Aspect
}

// Result describes completed reconciliation.
type Result struct {
	From, To slide.MediaKind
	// Element is live media element after reconciliation.
	Element *etree.Element
	// Container is element whose geometry was preserved.
	Container *etree.Element
	// Height is set when container was resized to the video intrinsic size
	// and should be committed as height override.
	Height string
}

// Reconciler rebuilds background representation of slides.
type Reconciler struct {
	log  *zap.Logger
	dims Dimensions
	opts Options
}

// NewReconciler creates reconciler. dims may be nil, aspect estimate is used
// then.
func NewReconciler(dims Dimensions, opts Options, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Aspect.W <= 0 || opts.Aspect.H <= 0 {
		opts.Aspect = geom.DefaultAspect
	}
	return &Reconciler{log: log.Named("media"), dims: dims, opts: opts}
}

// Compatibility returns compatibility of the surface template.
func (r *Reconciler) Compatibility(s *surface.Surface) Compatibility {
	return CompatibilityOf(s.Template(), r.opts.Forbidden)
}

// Assign makes u the displayed background media of the slide. Video assigned
// to a template which forbids it is rejected before anything is touched.
func (r *Reconciler) Assign(ctx context.Context, s *surface.Surface, u string) (Result, error) {
	target := Classify(u)
	if target == slide.MediaKindNone {
		return Result{}, errors.New("empty media url")
	}
	if target == slide.MediaKindVideo {
		if c := r.Compatibility(s); !c.VideoAllowed {
			return Result{}, fmt.Errorf("template %q: %w", c.Template, ErrVideoNotAllowed)
		}
	}

	from, e := s.MediaKind()
	log := r.log.With(zap.Int("slide", s.Index()), zap.Stringer("from", from), zap.Stringer("to", target), zap.String("url", u))

	var (
		res Result
		err error
	)
	switch from {
	case slide.MediaKindNone:
		return Result{}, fmt.Errorf("slide %d background: %w", s.Index(), surface.ErrNoElement)
	case slide.MediaKindCssBackground:
		if target == slide.MediaKindImage {
			s.SetInline(e, "background-image", css.URLValue(u))
			res = Result{Element: e, Container: e, To: slide.MediaKindCssBackground}
			break
		}
		res, err = r.backgroundToVideo(ctx, s, e, u)
	case slide.MediaKindImage, slide.MediaKindVideo:
		if from == target {
			res = Result{Element: e, Container: e.Parent()}
			setSource(e, u)
			break
		}
		res, err = r.swap(ctx, s, e, target, u)
	}
	if err != nil {
		return Result{}, err
	}
	res.From = from
	if res.To == slide.MediaKindNone {
		res.To = target
	}
	log.Debug("Background reconciled")
	return res, nil
}

// swap replaces img with video or back keeping container geometry.
func (r *Reconciler) swap(ctx context.Context, s *surface.Surface, old *etree.Element, target slide.MediaKind, u string) (Result, error) {
	wrapper := ensureWrapper(s, old)
	captured := captureGeometry(s, wrapper)

	idx := old.Index()
	release(old)
	stripAffordances(wrapper)

	surface.RemoveClass(wrapper, surface.ClassImageWrapper)
	surface.RemoveClass(wrapper, surface.ClassVideoWrapper)

	var e *etree.Element
	switch target {
	case slide.MediaKindVideo:
		surface.AddClass(wrapper, surface.ClassVideoWrapper)
		e = newVideo(u)
	default:
		surface.AddClass(wrapper, surface.ClassImageWrapper)
		e = newImage(u)
	}
	wrapper.InsertChildAt(idx, e)
	restoreGeometry(s, wrapper, captured)
	r.attach(s, wrapper, e, target)

	res := Result{Element: e, Container: wrapper}
	if target == slide.MediaKindVideo && wrapper.SelectAttr(AttrVideoSized) == nil {
		res.Height = r.syncToVideo(ctx, s, wrapper, u)
	}
	if err := r.settle(ctx, s, wrapper, captured, res.Height); err != nil {
		return Result{}, err
	}
	return res, nil
}

// backgroundToVideo puts video wrapper over element with CSS background.
func (r *Reconciler) backgroundToVideo(ctx context.Context, s *surface.Surface, e *etree.Element, u string) (Result, error) {
	s.SetInline(e, "background-image", css.Value{Raw: "none", Keyword: "none"})
	s.Unannotate(e)

	wrapper := etree.NewElement("div")
	surface.SetClasses(wrapper, surface.ClassVideoWrapper)
	wrapper.CreateAttr("style", "position: absolute; top: 0; left: 0; width: 100%; height: 100%;")
	e.InsertChildAt(0, wrapper)

	v := newVideo(u)
	wrapper.AddChild(v)
	r.attach(s, wrapper, v, slide.MediaKindVideo)
	// container keeps element size, template framed it already
	wrapper.CreateAttr(AttrVideoSized, "true")

	if err := s.Layout().Settle(ctx); err != nil {
		return Result{}, err
	}
	return Result{Element: v, Container: wrapper}, nil
}

// syncToVideo sets container height from video intrinsic proportions.
func (r *Reconciler) syncToVideo(ctx context.Context, s *surface.Surface, wrapper *etree.Element, u string) string {
	box := s.Layout().Box(wrapper)
	wrapper.CreateAttr(AttrVideoSized, "true")
	if box.W <= 0 {
		return ""
	}
	natural, _ := NaturalOrEstimate(ctx, r.dims, u, box, r.opts.Aspect, r.log)
	h := css.PxValue(box.W * natural.H / natural.W)
	s.SetInline(wrapper, "height", h)
	return h.Raw
}

// settle is second pass after media loaded: waits for layout and restores
// container geometry in case it shifted.
func (r *Reconciler) settle(ctx context.Context, s *surface.Surface, wrapper *etree.Element, captured css.Declarations, height string) error {
	if err := s.Layout().Settle(ctx); err != nil {
		return err
	}
	if height != "" {
		captured = captured.Set("height", css.ParseValue(height))
	}
	restoreGeometry(s, wrapper, captured)
	return nil
}

// attach puts editor id, drag affordance and play overlay on new element.
func (r *Reconciler) attach(s *surface.Surface, wrapper, e *etree.Element, kind slide.MediaKind) {
	s.Annotate(e, slide.ElementBackground)
	if kind != slide.MediaKindVideo {
		return
	}
	overlay := etree.NewElement("div")
	surface.SetClasses(overlay, ClassPlayOverlay)
	overlay.CreateAttr(AttrAffordance, "play")
	wrapper.InsertChildAt(e.Index()+1, overlay)
}

// Sweep enforces template compatibility at load time: videos on templates
// which forbid them are replaced with first image among fallbacks, or
// removed when there is none. Returns new live media kind.
func (r *Reconciler) Sweep(ctx context.Context, s *surface.Surface, fallbacks []string) (slide.MediaKind, error) {
	kind, e := s.MediaKind()
	if kind != slide.MediaKindVideo {
		return kind, nil
	}
	if r.Compatibility(s).VideoAllowed {
		// template video is already framed
		if w := e.Parent(); !isFrame(s, w) {
			w.CreateAttr(AttrVideoSized, "true")
		}
		return kind, nil
	}

	for _, u := range fallbacks {
		if Classify(u) != slide.MediaKindImage {
			continue
		}
		if _, err := r.swap(ctx, s, e, slide.MediaKindImage, u); err != nil {
			return kind, err
		}
		r.log.Info("Video replaced with fallback image", zap.Int("slide", s.Index()), zap.String("url", u))
		return slide.MediaKindImage, nil
	}

	wrapper := e.Parent()
	release(e)
	if wrapper != nil {
		stripAffordances(wrapper)
	}
	r.log.Info("Video removed, no fallback image", zap.Int("slide", s.Index()))
	return slide.MediaKindNone, nil
}

// ensureWrapper returns media container. Template parent of the media is the
// container whatever its class, new one filling the slide is created only when
// media sits directly in the slide frame.
func ensureWrapper(s *surface.Surface, e *etree.Element) *etree.Element {
	parent := e.Parent()
	if !isFrame(s, parent) {
		return parent
	}
	wrapper := etree.NewElement("div")
	wrapper.CreateAttr("style", "position: absolute; top: 0; left: 0; width: 100%; height: 100%;")
	parent.InsertChildAt(e.Index(), wrapper)
	parent.RemoveChild(e)
	wrapper.AddChild(e)
	return wrapper
}

// isFrame reports whether e is the slide frame itself rather than media
// container.
func isFrame(s *surface.Surface, e *etree.Element) bool {
	return e == nil || e == s.Root() || e == s.Document().Root() || e.SelectAttr(surface.AttrTemplate) != nil
}

func captureGeometry(s *surface.Surface, wrapper *etree.Element) css.Declarations {
	resolved := s.Resolved(wrapper)
	var out css.Declarations
	for _, name := range geometryProps {
		if v, ok := resolved.Get(name); ok {
			out = out.Set(name, v)
		}
	}
	return out
}

func restoreGeometry(s *surface.Surface, wrapper *etree.Element, captured css.Declarations) {
	for _, d := range captured {
		s.SetInline(wrapper, d.Name, d.Value)
	}
}

// release stops video resource and detaches media element.
func release(e *etree.Element) {
	if e.Tag == "video" {
		e.RemoveAttr("autoplay")
		e.RemoveAttr("src")
		for _, src := range e.SelectElements("source") {
			e.RemoveChild(src)
		}
	}
	if p := e.Parent(); p != nil {
		p.RemoveChild(e)
	}
}

func stripAffordances(wrapper *etree.Element) {
	for _, c := range wrapper.ChildElements() {
		if c.SelectAttr(AttrAffordance) != nil || surface.HasClass(c, ClassPlayOverlay) {
			wrapper.RemoveChild(c)
		}
	}
}

func setSource(e *etree.Element, u string) {
	if e.Tag == "video" {
		for _, src := range e.SelectElements("source") {
			e.RemoveChild(src)
		}
	}
	e.CreateAttr("src", u)
}

func newImage(u string) *etree.Element {
	img := etree.NewElement("img")
	img.CreateAttr("src", u)
	img.CreateAttr("alt", "")
	img.CreateAttr("style", "width: 100%; height: 100%; object-fit: cover; object-position: 50% 50%;")
	return img
}

func newVideo(u string) *etree.Element {
	v := etree.NewElement("video")
	v.CreateAttr("src", u)
	v.CreateAttr("muted", "muted")
	v.CreateAttr("loop", "loop")
	v.CreateAttr("playsinline", "playsinline")
	v.CreateAttr("preload", "metadata")
	v.CreateAttr("style", "width: 100%; height: 100%; object-fit: cover; object-position: 50% 50%;")
	return v
}
