// Package style keeps per-slide, per-element style overrides layered over
// styles captured from the template markup.
package style

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"carousel/slide"
)

// Document is persisted form of the edited layer:
// { "slideIndex": { "element": Patch } }.
type Document map[string]map[string]Patch

// Change describes single mutation of the edited layer. Empty Value means
// property was removed. Zero Property with Reset set means whole store was
// cleared or reloaded.
type Change struct {
	Key      slide.Key
	Property Property
	Value    string
	Reset    bool
}

// Store is the two-layer style model. It is safe for concurrent use,
// listeners are called outside of the lock in registration order.
type Store struct {
	log      *zap.Logger
	defaults Defaults

	mu        sync.Mutex
	original  map[slide.Key]Patch
	edited    map[slide.Key]Patch
	listeners map[int]func(Change)
	nextID    int
}

// NewStore creates empty store. When defaults is nil builtin defaults are used.
func NewStore(defaults Defaults, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	if defaults == nil {
		defaults = BuiltinDefaults()
	}
	return &Store{
		log:       log.Named("style"),
		defaults:  defaults,
		original:  make(map[slide.Key]Patch),
		edited:    make(map[slide.Key]Patch),
		listeners: make(map[int]func(Change)),
	}
}

// Effective returns edited override merged over captured original merged over
// default, property by property.
func (s *Store) Effective(key slide.Key) Patch {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.edited[key].Over(s.original[key].Over(s.defaults[key.Element]))
}

// Edited returns edited layer of the element.
func (s *Store) Edited(key slide.Key) (Patch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.edited[key]
	return p, ok
}

// Original returns captured template styles of the element.
func (s *Store) Original(key slide.Key) (Patch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.original[key]
	return p, ok
}

// Set writes property into the edited layer. Original layer is never touched.
func (s *Store) Set(key slide.Key, prop Property, value string) error {
	if !prop.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidProperty, prop)
	}
	if !prop.AppliesTo(key.Element) {
		return fmt.Errorf("property %s does not apply to %s", prop, key.Element)
	}
	norm, err := Normalize(prop, value)
	if err != nil {
		return err
	}
	if norm == "" {
		s.Delete(key, prop)
		return nil
	}

	s.mu.Lock()
	cur := s.edited[key]
	if cur.Get(prop) == norm {
		s.mu.Unlock()
		return nil
	}
	s.edited[key] = cur.With(prop, norm)
	s.mu.Unlock()

	s.log.Debug("Style set", zap.Stringer("key", key), zap.Stringer("property", prop), zap.String("value", norm))
	s.notify(Change{Key: key, Property: prop, Value: norm})
	return nil
}

// Delete removes property from the edited layer, so original value shows
// through again.
func (s *Store) Delete(key slide.Key, prop Property) {
	s.mu.Lock()
	cur, ok := s.edited[key]
	if !ok || cur.Get(prop) == "" {
		s.mu.Unlock()
		return
	}
	cur = cur.With(prop, "")
	if cur.IsEmpty() {
		delete(s.edited, key)
	} else {
		s.edited[key] = cur
	}
	s.mu.Unlock()

	s.notify(Change{Key: key, Property: prop})
}

// CaptureOriginal records template styles of the element. Only first capture
// for the key is kept, later calls return false and change nothing.
func (s *Store) CaptureOriginal(key slide.Key, computed Patch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.original[key]; ok {
		return false
	}
	s.original[key] = computed
	s.log.Debug("Original style captured", zap.Stringer("key", key))
	return true
}

// Load replaces edited layer with content of persisted document. Entries
// which could not be interpreted are skipped and logged.
func (s *Store) Load(doc Document) {
	edited := make(map[slide.Key]Patch)
	for idx, elements := range doc {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			s.log.Warn("Ignoring styles of malformed slide index", zap.String("index", idx))
			continue
		}
		for name, patch := range elements {
			el, err := slide.ParseElement(name)
			if err != nil {
				s.log.Warn("Ignoring styles of unknown element", zap.String("index", idx), zap.String("element", name))
				continue
			}
			key := slide.Key{Slide: n, Element: el}
			var clean Patch
			patch.Each(func(prop Property, value string) {
				if !prop.AppliesTo(el) {
					s.log.Warn("Ignoring inapplicable style", zap.Stringer("key", key), zap.Stringer("property", prop))
					return
				}
				norm, err := Normalize(prop, value)
				if err != nil {
					s.log.Warn("Ignoring invalid style", zap.Stringer("key", key), zap.Error(err))
					return
				}
				clean = clean.With(prop, norm)
			})
			if !clean.IsEmpty() {
				edited[key] = clean
			}
		}
	}

	s.mu.Lock()
	s.edited = edited
	s.mu.Unlock()

	s.log.Debug("Styles loaded", zap.Int("elements", len(edited)))
	s.notify(Change{Reset: true})
}

// Serialize groups edited layer into persisted document form.
func (s *Store) Serialize() Document {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := make(Document)
	for key, patch := range s.edited {
		idx := strconv.Itoa(key.Slide)
		if doc[idx] == nil {
			doc[idx] = make(map[string]Patch)
		}
		doc[idx][key.Element.String()] = patch
	}
	return doc
}

// Keys returns keys with edited styles in slide order.
func (s *Store) Keys() []slide.Key {
	s.mu.Lock()
	keys := make([]slide.Key, 0, len(s.edited))
	for k := range s.edited {
		keys = append(keys, k)
	}
	s.mu.Unlock()

	slices.SortFunc(keys, func(a, b slide.Key) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return keys
}

// Reset clears both layers.
func (s *Store) Reset() {
	s.mu.Lock()
	s.original = make(map[slide.Key]Patch)
	s.edited = make(map[slide.Key]Patch)
	s.mu.Unlock()

	s.notify(Change{Reset: true})
}

// Subscribe registers listener for edited layer changes. Returned function
// removes it.
func (s *Store) Subscribe(fn func(Change)) (release func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify(c Change) {
	s.mu.Lock()
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.listeners[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}

// String dumps both layers for diagnostics.
func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make(map[string]string)
	add := func(layer string, m map[slide.Key]Patch) {
		for k, p := range m {
			var parts []string
			p.Each(func(prop Property, v string) {
				parts = append(parts, prop.String()+"="+v)
			})
			name := k.String() + " " + layer
			lines[name] = name + ": " + strings.Join(parts, " ")
		}
	}
	add("original", s.original)
	add("edited", s.edited)

	names := make([]string, 0, len(lines))
	for n := range lines {
		names = append(names, n)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	var sb strings.Builder
	for _, n := range names {
		sb.WriteString(lines[n])
		sb.WriteByte('\n')
	}
	return sb.String()
}
