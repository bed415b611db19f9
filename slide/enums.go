package slide

//go:generate go tool go-enum --marshal --names --values

// Editable element of a slide.
// ENUM(title, subtitle, background)
type Element int

// IsText reports whether element carries text and text styles.
func (e Element) IsText() bool {
	switch e {
	case ElementTitle, ElementSubtitle:
		return true
	case ElementBackground:
		return false
	}
	return false
}

// Draggable reports whether element can be repositioned with pointer drag.
func (e Element) Draggable() bool {
	switch e {
	case ElementBackground:
		return true
	case ElementTitle, ElementSubtitle:
		return false
	}
	return false
}

// Live representation of the background slot.
// ENUM(none, image, video, cssBackground)
type MediaKind int

// IsMedia reports whether representation is a replaced media element (img or
// video) positioned with object-position inside a wrapper.
func (m MediaKind) IsMedia() bool {
	return m == MediaKindImage || m == MediaKindVideo
}
