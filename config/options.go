package config

import (
	"github.com/disintegration/imaging"

	"carousel/editor"
	"carousel/export"
	"carousel/geom"
	"carousel/slide"
	"carousel/style"
)

func (t TextConfig) patch() style.Patch {
	return style.Patch{
		FontSize:   t.FontSize,
		FontWeight: t.FontWeight,
		TextAlign:  t.TextAlign,
		Color:      t.Color,
	}
}

// Options converts editor section into editor options. Background defaults
// stay builtin.
func (c *EditorConfig) Options() editor.Options {
	defaults := style.BuiltinDefaults()
	defaults[slide.ElementTitle] = c.Title.patch()
	defaults[slide.ElementSubtitle] = c.Subtitle.patch()

	return editor.Options{
		Size:           geom.Size{W: float64(c.Width), H: float64(c.Height)},
		Bleed:          c.Bleed,
		Aspect:         geom.Aspect{W: c.FallbackAspect.W, H: c.FallbackAspect.H},
		ProbeTimeout:   c.ProbeTimeout,
		MediaBase:      c.MediaBase,
		ForbiddenVideo: c.NoVideo,
		SelectedClass:  c.SelectedClass,
		EditingClass:   c.EditingClass,
		Defaults:       defaults,
	}
}

// EncodeOptions converts export section into frame encoding options.
func (c *ExportConfig) EncodeOptions() export.EncodeOptions {
	opts := export.EncodeOptions{
		Format:  imaging.PNG,
		Quality: c.JPEGQuality,
		Width:   c.Width,
	}
	if c.Format == ImageFormatJpeg {
		opts.Format = imaging.JPEG
		opts.DPI = c.DPI
	}
	return opts
}

// ChromeOptions converts browser section into rasterizer options.
func (c *ExportConfig) ChromeOptions() export.ChromeOptions {
	return export.ChromeOptions{
		ControlURL:  c.Browser.ControlURL.Reveal(),
		Bin:         c.Browser.Bin,
		Headless:    c.Browser.Headless,
		DeviceScale: c.DeviceScale,
	}
}
