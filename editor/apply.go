package editor

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"carousel/css"
	"carousel/slide"
	"carousel/style"
	"carousel/surface"
)

func (e *Editor) onChange(c style.Change) {
	if c.Reset {
		e.applyAll()
		return
	}
	e.apply(c.Key)
}

// applyAll pushes edited layer of every element of open surfaces.
func (e *Editor) applyAll() {
	for _, s := range e.surfaces {
		for _, el := range slide.ElementValues() {
			e.apply(slide.Key{Slide: s.Index(), Element: el})
		}
	}
}

// apply writes edited properties of single element into its surface as
// inline styles. Properties applied earlier and no longer edited get their
// captured original value back.
func (e *Editor) apply(key slide.Key) {
	s := e.surface(key.Slide)
	if s == nil {
		return
	}
	target := s.ByID(key.ID())
	if target == nil {
		return
	}
	edited, _ := e.store.Edited(key)
	original, _ := e.store.Original(key)
	previous := e.applied[key]

	var kind slide.MediaKind
	if key.Element == slide.ElementBackground {
		kind, _ = s.MediaKind()
	}

	for _, prop := range style.PropertyValues() {
		if !prop.AppliesTo(key.Element) {
			continue
		}
		el := applyTarget(s, kind, target, prop)
		if el == nil {
			continue
		}
		if v := edited.Get(prop); v != "" {
			s.SetInline(el, prop.CSSName(), inlineValue(v))
			continue
		}
		if previous.Get(prop) == "" {
			continue
		}
		if v := original.Get(prop); v != "" {
			s.SetInline(el, prop.CSSName(), inlineValue(v))
		} else {
			s.RemoveInline(el, prop.CSSName())
		}
	}

	if edited.IsEmpty() {
		delete(e.applied, key)
	} else {
		e.applied[key] = edited
	}
	e.log.Debug("Styles applied", zap.Stringer("key", key))
}

// applyTarget returns element receiving property: text elements take their
// own properties, media position goes to media element matching current
// representation and height goes to media container.
func applyTarget(s *surface.Surface, kind slide.MediaKind, target *etree.Element, prop style.Property) *etree.Element {
	switch prop {
	case style.PropertyObjectPosition:
		if kind == slide.MediaKindImage || kind == slide.MediaKindVideo {
			return target
		}
		return nil
	case style.PropertyBackgroundPositionX, style.PropertyBackgroundPositionY:
		if kind == slide.MediaKindCssBackground {
			return target
		}
		return nil
	case style.PropertyHeight:
		if kind == slide.MediaKindCssBackground {
			return target
		}
		if p := target.Parent(); p != nil && p != s.Root() {
			return p
		}
		return nil
	default:
		return target
	}
}

// inlineValue keeps stored text verbatim in the style attribute.
func inlineValue(v string) css.Value {
	val := css.ParseValue(v)
	val.Raw = v
	return val
}
