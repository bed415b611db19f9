package persist

import (
	"context"
	"slices"

	"go.uber.org/zap"

	"carousel/selection"
	"carousel/slide"
	"carousel/style"
)

// Saver is persistence collaborator receiving built documents.
type Saver interface {
	Save(ctx context.Context, doc *Document) error
}

// SaverFunc adapts function to Saver.
type SaverFunc func(ctx context.Context, doc *Document) error

// Save implements Saver.
func (f SaverFunc) Save(ctx context.Context, doc *Document) error { return f(ctx, doc) }

// Promote returns media list with u moved to the front, other entries keep
// their relative order. URL not present in the list is prepended and the
// list is capped to slide.MaxMedia.
func Promote(list []string, u string) []string {
	if u == "" {
		return slices.Clone(list)
	}
	out := make([]string, 0, len(list)+1)
	out = append(out, u)
	for _, m := range list {
		if m != u && !slices.Contains(out, m) {
			out = append(out, m)
		}
	}
	if len(out) > slide.MaxMedia {
		out = out[:slide.MaxMedia]
	}
	return out
}

// Build produces updated copy of the document: chosen media promoted to the
// front of each slide media list, edited text replaces original, and
// serialized styles attached. Source document is not modified.
func Build(src *Document, store *style.Store, content *selection.Content, log *zap.Logger) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	doc := src.Clone()

	for key, text := range content.Texts() {
		if key.Slide < 0 || key.Slide >= len(doc.Slides) {
			log.Warn("Dropping edited text of unknown slide", zap.Stringer("key", key))
			continue
		}
		switch key.Element {
		case slide.ElementTitle:
			doc.Slides[key.Slide].Title = text
		case slide.ElementSubtitle:
			doc.Slides[key.Slide].Subtitle = text
		case slide.ElementBackground:
		}
	}
	for idx, u := range content.Medias() {
		if idx < 0 || idx >= len(doc.Slides) {
			log.Warn("Dropping media of unknown slide", zap.Int("slide", idx))
			continue
		}
		doc.Slides[idx].Media = Promote(doc.Slides[idx].Media, u)
	}

	doc.Styles = store.Serialize()
	if len(doc.Styles) == 0 {
		doc.Styles = nil
	}
	return doc
}
