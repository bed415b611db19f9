// Package surface implements rendering surface of a single slide: in-memory
// XHTML document produced by the template renderer, element lookup, style
// cascade, event listeners and layout.
package surface

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"carousel/css"
	"carousel/geom"
	"carousel/slide"
)

// Attributes and classes of the slide markup contract.
const (
	AttrID        = "data-editor-id"
	AttrDraggable = "data-editor-draggable"
	AttrTemplate  = "data-template"

	ClassTitle        = "title"
	ClassSubtitle     = "subtitle"
	ClassImageWrapper = "image-wrapper"
	ClassVideoWrapper = "video-wrapper"
)

// ErrNoElement is returned when requested element is absent from markup.
var ErrNoElement = errors.New("element not found")

// htmlEntities are named references templates commonly use, XML parser
// knows only the predefined five.
var htmlEntities = map[string]string{
	"nbsp":   "\u00a0",
	"ensp":   "\u2002",
	"emsp":   "\u2003",
	"thinsp": "\u2009",
	"shy":    "\u00ad",
	"ndash":  "\u2013",
	"mdash":  "\u2014",
	"hellip": "\u2026",
	"laquo":  "\u00ab",
	"raquo":  "\u00bb",
	"lsquo":  "\u2018",
	"rsquo":  "\u2019",
	"ldquo":  "\u201c",
	"rdquo":  "\u201d",
	"bull":   "\u2022",
	"middot": "\u00b7",
	"copy":   "\u00a9",
	"reg":    "\u00ae",
	"trade":  "\u2122",
	"euro":   "\u20ac",
}

// Options control surface construction.
type Options struct {
	// Size of the slide viewport in CSS pixels.
	Size geom.Size
	// Layout computes element boxes, style based layout is used when nil.
	Layout Layout
}

// Surface is one slide document with its listeners.
type Surface struct {
	index  int
	log    *zap.Logger
	doc    *etree.Document
	parser *css.Parser
	sheet  *css.Stylesheet
	size   geom.Size
	layout Layout

	listeners []*listener
	nextID    int
}

// Load parses slide markup and creates surface for slide with given index.
func Load(index int, r io.Reader, opts Options, log *zap.Logger) (*Surface, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("surface").With(zap.Int("slide", index))

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        htmlEntities,
		Permissive:    true,
	}
	doc.WriteSettings = etree.WriteSettings{
		CanonicalText:    true,
		CanonicalAttrVal: true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse slide %d markup: %w", index, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("slide %d markup has no root element", index)
	}

	s := &Surface{
		index:  index,
		log:    log,
		doc:    doc,
		parser: css.NewParser(log),
		size:   opts.Size,
		layout: opts.Layout,
	}
	s.loadStylesheet()
	if s.layout == nil {
		s.layout = NewStyleLayout(s)
	}
	return s, nil
}

// LoadBytes is a convenience wrapper around Load.
func LoadBytes(index int, markup []byte, opts Options, log *zap.Logger) (*Surface, error) {
	return Load(index, bytes.NewReader(markup), opts, log)
}

func (s *Surface) loadStylesheet() {
	var buf bytes.Buffer
	for _, st := range s.doc.FindElements("//style") {
		buf.WriteString(st.Text())
		buf.WriteByte('\n')
	}
	s.sheet = s.parser.Parse(buf.Bytes())
	for _, w := range s.sheet.Warnings {
		s.log.Debug("Stylesheet", zap.String("warning", w))
	}
}

// Index returns slide index of the surface.
func (s *Surface) Index() int { return s.index }

// Document returns underlying document.
func (s *Surface) Document() *etree.Document { return s.doc }

// Size returns slide viewport size.
func (s *Surface) Size() geom.Size { return s.size }

// Layout returns layout engine of the surface.
func (s *Surface) Layout() Layout { return s.layout }

// SetLayout replaces layout of the surface, style layout is restored when
// l is nil.
func (s *Surface) SetLayout(l Layout) {
	if l == nil {
		l = NewStyleLayout(s)
	}
	s.layout = l
}

// Parser returns CSS parser bound to the surface logger.
func (s *Surface) Parser() *css.Parser { return s.parser }

// Root returns body element when present, document root otherwise.
func (s *Surface) Root() *etree.Element {
	root := s.doc.Root()
	if body := root.FindElement("./body"); body != nil {
		return body
	}
	return root
}

// Template returns template class declared in the markup.
func (s *Surface) Template() string {
	if e := s.doc.FindElement("//*[@" + AttrTemplate + "]"); e != nil {
		return e.SelectAttrValue(AttrTemplate, "")
	}
	return ""
}

// Markup serializes live document.
func (s *Surface) Markup() ([]byte, error) {
	return s.doc.WriteToBytes()
}

// Find locates element of the slide. Elements annotated with editor ids are
// found first, then the markup contract is applied.
func (s *Surface) Find(el slide.Element) *etree.Element {
	key := slide.Key{Slide: s.index, Element: el}
	if e := s.ByID(key.ID()); e != nil {
		return e
	}
	switch el {
	case slide.ElementTitle:
		if e := s.findByClass(ClassTitle); e != nil {
			return e
		}
		return s.Root().FindElement(".//h1")
	case slide.ElementSubtitle:
		if e := s.findByClass(ClassSubtitle); e != nil {
			return e
		}
		if e := s.Root().FindElement(".//h2"); e != nil {
			return e
		}
		return s.Root().FindElement(".//p")
	case slide.ElementBackground:
		_, e := s.detectBackground()
		return e
	}
	return nil
}

// MediaKind reports which representation currently backs background slot
// and returns element carrying it: video or img element, or element with
// background-image.
func (s *Surface) MediaKind() (slide.MediaKind, *etree.Element) {
	if e := s.ByID(slide.Key{Slide: s.index, Element: slide.ElementBackground}.ID()); e != nil {
		switch e.Tag {
		case "video":
			return slide.MediaKindVideo, e
		case "img":
			return slide.MediaKindImage, e
		}
		if _, ok := s.BackgroundURL(e); ok {
			return slide.MediaKindCssBackground, e
		}
	}
	return s.detectBackground()
}

func (s *Surface) detectBackground() (slide.MediaKind, *etree.Element) {
	root := s.Root()
	if e := root.FindElement(".//video"); e != nil {
		return slide.MediaKindVideo, e
	}
	if e := root.FindElement(".//img"); e != nil {
		return slide.MediaKindImage, e
	}
	var found *etree.Element
	walk(root, func(e *etree.Element) bool {
		if _, ok := s.BackgroundURL(e); ok {
			found = e
			return false
		}
		return true
	})
	if found != nil {
		return slide.MediaKindCssBackground, found
	}
	return slide.MediaKindNone, nil
}

// BackgroundURL returns url() of element background image.
func (s *Surface) BackgroundURL(e *etree.Element) (string, bool) {
	decls := s.Resolved(e)
	for _, name := range []string{"background-image", "background"} {
		if v, ok := decls.Get(name); ok {
			if u, ok := css.URL(v.Raw); ok {
				return u, true
			}
		}
	}
	return "", false
}

// MediaSource returns URL currently displayed by the background element.
func (s *Surface) MediaSource(kind slide.MediaKind, e *etree.Element) string {
	if e == nil {
		return ""
	}
	switch kind {
	case slide.MediaKindImage:
		return e.SelectAttrValue("src", "")
	case slide.MediaKindVideo:
		if src := e.SelectAttrValue("src", ""); src != "" {
			return src
		}
		if source := e.FindElement("./source[@src]"); source != nil {
			return source.SelectAttrValue("src", "")
		}
	case slide.MediaKindCssBackground:
		u, _ := s.BackgroundURL(e)
		return u
	case slide.MediaKindNone:
	}
	return ""
}

func (s *Surface) findByClass(class string) *etree.Element {
	var found *etree.Element
	walk(s.Root(), func(e *etree.Element) bool {
		if HasClass(e, class) {
			found = e
			return false
		}
		return true
	})
	return found
}

// ByID returns element annotated with editor id.
func (s *Surface) ByID(id string) *etree.Element {
	if id == "" {
		return nil
	}
	return s.doc.FindElement(fmt.Sprintf("//*[@%s='%s']", AttrID, id))
}

// KeyOf returns key of the nearest annotated element at or above e.
func (s *Surface) KeyOf(e *etree.Element) (slide.Key, *etree.Element, bool) {
	for ; e != nil; e = e.Parent() {
		id := e.SelectAttrValue(AttrID, "")
		if id == "" {
			continue
		}
		key, err := slide.ParseKey(strings.TrimPrefix(id, "s"))
		if err != nil || key.Slide != s.index {
			continue
		}
		return key, e, true
	}
	return slide.Key{}, nil, false
}

// Annotate assigns editor id to the element and marks it draggable when
// element kind allows it.
func (s *Surface) Annotate(e *etree.Element, el slide.Element) {
	e.CreateAttr(AttrID, slide.Key{Slide: s.index, Element: el}.ID())
	if el.Draggable() {
		e.CreateAttr(AttrDraggable, "true")
	}
}

// Unannotate removes editor attributes from the element.
func (s *Surface) Unannotate(e *etree.Element) {
	e.RemoveAttr(AttrID)
	e.RemoveAttr(AttrDraggable)
}

// Text returns concatenated character data of the element subtree.
func Text(e *etree.Element) string {
	var sb strings.Builder
	var collect func(*etree.Element)
	collect = func(e *etree.Element) {
		for _, t := range e.Child {
			switch v := t.(type) {
			case *etree.CharData:
				sb.WriteString(v.Data)
			case *etree.Element:
				collect(v)
			}
		}
	}
	collect(e)
	return sb.String()
}

// SetText replaces element content with text.
func SetText(e *etree.Element, text string) {
	for len(e.Child) > 0 {
		e.RemoveChildAt(0)
	}
	e.SetText(text)
}

// walk visits elements in document order while fn returns true.
func walk(e *etree.Element, fn func(*etree.Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.ChildElements() {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}
