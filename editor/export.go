package editor

import (
	"context"
	"fmt"
	"sort"

	"github.com/maruel/natural"
	"go.uber.org/zap"

	"carousel/geom"
	"carousel/slide"
	"carousel/style"
	"carousel/utils/debug"
)

// Frame is serialized state of one slide handed to exporter.
type Frame struct {
	Index  int
	Markup []byte
	Size   geom.Size
}

// Exporter is the rasterization collaborator.
type Exporter interface {
	Export(ctx context.Context, frames []Frame) error
}

// Snapshot serializes all live slide surfaces with applied styles.
// Selection decoration and edit mode are ended first so they do not leak
// into exported frames.
func (e *Editor) Snapshot() ([]Frame, error) {
	if e.doc == nil {
		return nil, ErrNotOpen
	}
	e.sel.EndEdit()
	if _, ok := e.sel.Selected(); ok && !e.sel.Pinned() {
		e.sel.Deselect()
	}

	frames := make([]Frame, 0, len(e.surfaces))
	for _, s := range e.surfaces {
		markup, err := s.Markup()
		if err != nil {
			return nil, fmt.Errorf("unable to serialize slide %d: %w", s.Index(), err)
		}
		frames = append(frames, Frame{Index: s.Index(), Markup: markup, Size: s.Size()})
	}
	return frames, nil
}

// Export hands snapshot of all slides to exporter.
func (e *Editor) Export(ctx context.Context, exporter Exporter) error {
	frames, err := e.Snapshot()
	if err != nil {
		return err
	}
	if err := exporter.Export(ctx, frames); err != nil {
		return &UserError{Op: "export", Message: "carousel could not be exported", Err: err}
	}
	e.log.Info("Carousel exported", zap.String("carousel", e.carousel), zap.Int("slides", len(frames)))
	return nil
}

// Dump returns diagnostic view of the session: effective styles of every
// element and edited content, slides in natural order.
func (e *Editor) Dump() string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "carousel %q session %s", e.carousel, e.session)

	keys := e.store.Keys()
	for k := range e.content.Texts() {
		keys = append(keys, k)
	}
	seen := make(map[slide.Key]bool, len(keys))
	uniq := keys[:0]
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			uniq = append(uniq, k)
		}
	}
	sort.Sort(keyStrings(uniq))

	medias := e.content.Medias()
	lastSlide := -1
	for _, k := range uniq {
		if k.Slide != lastSlide {
			lastSlide = k.Slide
			tw.Line(1, "slide %d", k.Slide)
			if u, ok := medias[k.Slide]; ok {
				tw.TextBlock(2, "media", u)
			}
		}
		tw.Line(2, "%s", k.Element)
		if text, ok := e.content.Text(k); ok {
			tw.TextBlock(3, "text", text)
		}
		edited, _ := e.store.Edited(k)
		e.store.Effective(k).Each(func(prop style.Property, v string) {
			mark := ""
			if edited.Get(prop) != "" {
				mark = " (edited)"
			}
			tw.Line(3, "%s: %s%s", prop, v, mark)
		})
	}
	return tw.String()
}

// keyStrings sorts keys by their "slide-element" form.
type keyStrings []slide.Key

func (k keyStrings) Len() int           { return len(k) }
func (k keyStrings) Swap(i, j int)      { k[i], k[j] = k[j], k[i] }
func (k keyStrings) Less(i, j int) bool { return natural.Less(k[i].String(), k[j].String()) }
