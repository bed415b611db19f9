package selection

import (
	"maps"
	"sync"

	"carousel/slide"
)

// Content holds user edited literal content: text of title and subtitle
// elements and chosen background media of slides.
type Content struct {
	mu    sync.Mutex
	text  map[slide.Key]string
	media map[int]string
}

// NewContent returns empty content map.
func NewContent() *Content {
	return &Content{
		text:  make(map[slide.Key]string),
		media: make(map[int]string),
	}
}

// SetText records edited text of a text element.
func (c *Content) SetText(key slide.Key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text[key] = text
}

// Text returns edited text of the element.
func (c *Content) Text(key slide.Key) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	t, ok := c.text[key]
	return t, ok
}

// SetMedia records media URL chosen for slide background.
func (c *Content) SetMedia(slideIdx int, u string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.media[slideIdx] = u
}

// Media returns media URL chosen for slide background.
func (c *Content) Media(slideIdx int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	u, ok := c.media[slideIdx]
	return u, ok
}

// Texts returns copy of all edited texts.
func (c *Content) Texts() map[slide.Key]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.text)
}

// Medias returns copy of all chosen media.
func (c *Content) Medias() map[int]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return maps.Clone(c.media)
}

// Reset forgets everything.
func (c *Content) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.text)
	clear(c.media)
}
