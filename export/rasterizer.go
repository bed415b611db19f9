// Package export turns editor frames into images and packs them into a zip
// bundle.
package export

import (
	"context"
	"errors"
	"image"

	"go.uber.org/multierr"

	"carousel/editor"
)

// ErrUnsupportedFrame is returned by rasterizers which cannot render frame
// markup.
var ErrUnsupportedFrame = errors.New("unsupported frame markup")

// Rasterizer renders single frame.
type Rasterizer interface {
	Rasterize(ctx context.Context, frame editor.Frame) (image.Image, error)
	Close() error
}

// Chain tries rasterizers in order, moving on when frame is unsupported.
type Chain []Rasterizer

// Rasterize implements Rasterizer.
func (c Chain) Rasterize(ctx context.Context, frame editor.Frame) (image.Image, error) {
	for _, r := range c {
		img, err := r.Rasterize(ctx, frame)
		if errors.Is(err, ErrUnsupportedFrame) {
			continue
		}
		return img, err
	}
	return nil, ErrUnsupportedFrame
}

// Close closes all rasterizers of the chain.
func (c Chain) Close() error {
	var err error
	for _, r := range c {
		err = multierr.Append(err, r.Close())
	}
	return err
}
