package style

import "carousel/slide"

//go:generate go tool go-enum --marshal --names --values

// Overridable style property of a slide element. Names match keys of the
// persisted style document.
// ENUM(fontSize, fontWeight, textAlign, color, objectPosition, backgroundPositionX, backgroundPositionY, height)
type Property int

// CSSName returns CSS property name used when applying value to a surface.
func (p Property) CSSName() string {
	switch p {
	case PropertyFontSize:
		return "font-size"
	case PropertyFontWeight:
		return "font-weight"
	case PropertyTextAlign:
		return "text-align"
	case PropertyColor:
		return "color"
	case PropertyObjectPosition:
		return "object-position"
	case PropertyBackgroundPositionX:
		return "background-position-x"
	case PropertyBackgroundPositionY:
		return "background-position-y"
	case PropertyHeight:
		return "height"
	}
	return ""
}

// AppliesTo reports whether property is meaningful for the element.
func (p Property) AppliesTo(e slide.Element) bool {
	switch p {
	case PropertyFontSize, PropertyFontWeight, PropertyTextAlign, PropertyColor:
		return e.IsText()
	case PropertyObjectPosition, PropertyBackgroundPositionX, PropertyBackgroundPositionY, PropertyHeight:
		return e.Draggable()
	}
	return false
}

// IsPosition reports whether property holds position percentages.
func (p Property) IsPosition() bool {
	switch p {
	case PropertyObjectPosition, PropertyBackgroundPositionX, PropertyBackgroundPositionY:
		return true
	}
	return false
}

// TextProperties lists properties captured for text elements.
var TextProperties = []Property{PropertyFontSize, PropertyFontWeight, PropertyTextAlign, PropertyColor}
