package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"carousel/editor"
)

// maxRasterDim caps either side of rasterized frame.
const maxRasterDim = 8192

// SVGRasterizer renders frames whose markup is an SVG document. It needs no
// browser and serves templates producing SVG slides.
type SVGRasterizer struct {
	// Background fills frame before drawing, white when nil.
	Background color.Color
	// DeviceScale multiplies frame size.
	DeviceScale float64
}

// Rasterize implements Rasterizer.
func (r SVGRasterizer) Rasterize(_ context.Context, frame editor.Frame) (image.Image, error) {
	if !isSVG(frame.Markup) {
		return nil, ErrUnsupportedFrame
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(frame.Markup), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("unable to parse svg of slide %d: %w", frame.Index, err)
	}

	scale := r.DeviceScale
	if scale <= 0 {
		scale = 1
	}
	w, h := frame.Size.W, frame.Size.H
	if w <= 0 || h <= 0 {
		w, h = icon.ViewBox.W, icon.ViewBox.H
	}
	pw, ph := int(math.Ceil(w*scale)), int(math.Ceil(h*scale))
	if pw <= 0 || ph <= 0 {
		return nil, fmt.Errorf("slide %d has no size", frame.Index)
	}
	if pw > maxRasterDim || ph > maxRasterDim {
		k := min(float64(maxRasterDim)/float64(pw), float64(maxRasterDim)/float64(ph))
		pw = max(int(math.Round(float64(pw)*k)), 1)
		ph = max(int(math.Round(float64(ph)*k)), 1)
	}

	icon.SetTarget(0, 0, float64(pw), float64(ph))

	bg := r.Background
	if bg == nil {
		bg = color.White
	}
	dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(pw, ph, dst, dst.Bounds())
	dasher := rasterx.NewDasher(pw, ph, scanner)
	icon.Draw(dasher, 1.0)
	return dst, nil
}

// Close implements Rasterizer.
func (SVGRasterizer) Close() error { return nil }

// isSVG reports whether markup root element is svg.
func isSVG(markup []byte) bool {
	data := bytes.TrimSpace(markup)
	for len(data) > 0 && data[0] == '<' {
		switch {
		case bytes.HasPrefix(data, []byte("<?")):
			end := bytes.Index(data, []byte("?>"))
			if end < 0 {
				return false
			}
			data = bytes.TrimSpace(data[end+2:])
		case bytes.HasPrefix(data, []byte("<!--")):
			end := bytes.Index(data, []byte("-->"))
			if end < 0 {
				return false
			}
			data = bytes.TrimSpace(data[end+3:])
		case bytes.HasPrefix(data, []byte("<!")):
			end := bytes.IndexByte(data, '>')
			if end < 0 {
				return false
			}
			data = bytes.TrimSpace(data[end+1:])
		default:
			return bytes.HasPrefix(data, []byte("<svg")) || bytes.HasPrefix(data, []byte("<svg:svg"))
		}
	}
	return false
}
