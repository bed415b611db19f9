// Package slide defines data model shared by all editor components: editable
// elements, their keys and per-slide content record.
package slide

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxMedia is the number of ranked background media URLs a slide carries.
const MaxMedia = 6

// Key addresses one element of one slide.
type Key struct {
	Slide   int
	Element Element
}

// String returns flat "slide-element" form used as store key.
func (k Key) String() string {
	return strconv.Itoa(k.Slide) + "-" + k.Element.String()
}

// ID returns stable identifier assigned to the element in its surface.
func (k Key) ID() string {
	return fmt.Sprintf("s%d-%s", k.Slide, k.Element)
}

// ParseKey is the reverse of Key.String.
func ParseKey(s string) (Key, error) {
	idx, name, found := strings.Cut(s, "-")
	if !found {
		return Key{}, fmt.Errorf("malformed element key %q", s)
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 {
		return Key{}, fmt.Errorf("malformed slide index in key %q", s)
	}
	el, err := ParseElement(name)
	if err != nil {
		return Key{}, fmt.Errorf("malformed element in key %q: %w", s, err)
	}
	return Key{Slide: n, Element: el}, nil
}

// Less orders keys by slide then element.
func (k Key) Less(o Key) bool {
	if k.Slide != o.Slide {
		return k.Slide < o.Slide
	}
	return k.Element < o.Element
}

// mediaField returns JSON name of ranked media slot i (0 based).
func mediaField(i int) string {
	if i == 0 {
		return "imagem_fundo"
	}
	return "imagem_fundo" + strconv.Itoa(i+1)
}

// Content is per-slide record of carousel content document. Fields we do not
// interpret are kept verbatim so the document survives load/save untouched.
type Content struct {
	Title    string
	Subtitle string
	// Media holds ranked background media URLs, best first.
	Media []string

	extra map[string]json.RawMessage
}

// PrimaryMedia returns the best ranked media URL or empty string.
func (c *Content) PrimaryMedia() string {
	if len(c.Media) == 0 {
		return ""
	}
	return c.Media[0]
}

// Clone returns deep copy of content.
func (c *Content) Clone() Content {
	out := Content{Title: c.Title, Subtitle: c.Subtitle}
	out.Media = append([]string(nil), c.Media...)
	if c.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(c.extra))
		for k, v := range c.extra {
			out.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Content{}
	take := func(name string, dst *string) error {
		v, ok := raw[name]
		if !ok {
			return nil
		}
		delete(raw, name)
		if string(v) == "null" {
			return nil
		}
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		return nil
	}
	if err := take("title", &c.Title); err != nil {
		return err
	}
	if err := take("subtitle", &c.Subtitle); err != nil {
		return err
	}
	for i := range MaxMedia {
		var u string
		if err := take(mediaField(i), &u); err != nil {
			return err
		}
		if u = strings.TrimSpace(u); len(u) > 0 {
			c.Media = append(c.Media, u)
		}
	}
	if len(raw) > 0 {
		c.extra = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (c Content) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.extra)+2+len(c.Media))
	for k, v := range c.extra {
		out[k] = v
	}
	out["title"] = c.Title
	out["subtitle"] = c.Subtitle
	for i, u := range c.Media {
		if i >= MaxMedia {
			break
		}
		out[mediaField(i)] = u
	}
	return json.Marshal(out)
}
