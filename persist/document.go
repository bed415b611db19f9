// Package persist converts editor state into carousel content document and
// back.
package persist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"carousel/slide"
	"carousel/style"
)

// Document is carousel content document exchanged with persistence
// collaborator. Unknown top level fields are preserved.
type Document struct {
	// ID identifies carousel, store is reset when editor opens another one.
	ID string
	// General is opaque business data of the carousel.
	General json.RawMessage
	Slides  []slide.Content
	// Styles is serialized style store, nil when nothing was edited.
	Styles style.Document

	extra map[string]json.RawMessage
}

// Clone returns deep copy of the document.
func (d *Document) Clone() *Document {
	out := &Document{ID: d.ID}
	if d.General != nil {
		out.General = append(json.RawMessage(nil), d.General...)
	}
	out.Slides = make([]slide.Content, len(d.Slides))
	for i := range d.Slides {
		out.Slides[i] = d.Slides[i].Clone()
	}
	if d.Styles != nil {
		out.Styles = make(style.Document, len(d.Styles))
		for idx, els := range d.Styles {
			m := make(map[string]style.Patch, len(els))
			for k, v := range els {
				m[k] = v
			}
			out.Styles[idx] = m
		}
	}
	if d.extra != nil {
		out.extra = make(map[string]json.RawMessage, len(d.extra))
		for k, v := range d.extra {
			out.extra[k] = append(json.RawMessage(nil), v...)
		}
	}
	return out
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = Document{}
	fields := []struct {
		name string
		dst  any
	}{
		{"id", &d.ID},
		{"dados_gerais", &d.General},
		{"conteudos", &d.Slides},
		{"styles", &d.Styles},
	}
	for _, f := range fields {
		v, ok := raw[f.name]
		if !ok {
			continue
		}
		delete(raw, f.name)
		if string(v) == "null" {
			continue
		}
		if err := json.Unmarshal(v, f.dst); err != nil {
			return fmt.Errorf("field %q: %w", f.name, err)
		}
	}
	if len(raw) > 0 {
		d.extra = raw
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.extra)+4)
	for k, v := range d.extra {
		out[k] = v
	}
	if d.ID != "" {
		out["id"] = d.ID
	}
	if d.General != nil {
		out["dados_gerais"] = d.General
	}
	slides := d.Slides
	if slides == nil {
		slides = []slide.Content{}
	}
	out["conteudos"] = slides
	if len(d.Styles) > 0 {
		out["styles"] = d.Styles
	}
	return json.Marshal(out)
}

// Read parses content document.
func Read(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("unable to parse content document: %w", err)
	}
	return &d, nil
}

// Parse parses content document.
func Parse(data []byte) (*Document, error) {
	return Read(bytes.NewReader(data))
}

// Encode renders document as indented JSON.
func (d *Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("unable to encode content document: %w", err)
	}
	return data, nil
}
