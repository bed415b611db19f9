package export

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"carousel/editor"
)

// Options configure exporter.
type Options struct {
	// Carousel is used by name template.
	Carousel string
	Encode   EncodeOptions
	// NameTemplate of bundle entries, DefaultNameTemplate when empty.
	NameTemplate string
	// Parallel limits concurrently rasterized frames, number of CPUs when 0.
	Parallel int
}

// Exporter rasterizes editor frames and writes them as zip bundle. It
// implements editor.Exporter.
type Exporter struct {
	log   *zap.Logger
	rast  Rasterizer
	opts  Options
	namer *Namer
	out   io.Writer
	now   func() time.Time
}

// New creates exporter writing bundle into out.
func New(rast Rasterizer, out io.Writer, opts Options, log *zap.Logger) (*Exporter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	namer, err := NewNamer(opts.NameTemplate)
	if err != nil {
		return nil, err
	}
	if opts.Parallel <= 0 {
		opts.Parallel = runtime.NumCPU()
	}
	return &Exporter{
		log:   log.Named("export"),
		rast:  rast,
		opts:  opts,
		namer: namer,
		out:   out,
		now:   time.Now,
	}, nil
}

// Export implements editor.Exporter. Frames are rasterized concurrently,
// bundle keeps slide order. Nothing is written when any frame fails.
func (x *Exporter) Export(ctx context.Context, frames []editor.Frame) error {
	entries := make([]Entry, len(frames))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(x.opts.Parallel)
	for i, frame := range frames {
		g.Go(func() error {
			start := time.Now()
			img, err := x.rast.Rasterize(gctx, frame)
			if err != nil {
				return fmt.Errorf("slide %d: %w", frame.Index, err)
			}
			data, err := Encode(img, x.opts.Encode)
			if err != nil {
				return fmt.Errorf("slide %d: %w", frame.Index, err)
			}
			name, err := x.namer.Name(NameValues{
				Carousel: x.opts.Carousel,
				Index:    frame.Index,
				Number:   frame.Index + 1,
				Count:    len(frames),
				Ext:      x.opts.Encode.Ext(),
			})
			if err != nil {
				return err
			}
			entries[i] = Entry{Name: name, Data: data}
			x.log.Debug("Frame rasterized",
				zap.Int("slide", frame.Index), zap.String("name", name), zap.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := WriteBundle(x.out, entries, x.now()); err != nil {
		return err
	}
	x.log.Info("Bundle written", zap.Int("frames", len(entries)))
	return nil
}
