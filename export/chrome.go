package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"carousel/editor"
)

// ChromeOptions configure headless browser.
type ChromeOptions struct {
	// ControlURL of already running browser, one is launched when empty.
	ControlURL string
	// Bin is browser executable, launcher looks it up when empty.
	Bin      string
	Headless bool
	// DeviceScale is device pixel ratio of captured frames.
	DeviceScale float64
}

// ChromeRasterizer renders frames in headless Chrome, one page per frame.
type ChromeRasterizer struct {
	log     *zap.Logger
	opts    ChromeOptions
	browser *rod.Browser

	once     sync.Once
	launched *launcher.Launcher
}

// NewChromeRasterizer connects to or launches browser.
func NewChromeRasterizer(ctx context.Context, opts ChromeOptions, log *zap.Logger) (*ChromeRasterizer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("chrome")
	if opts.DeviceScale <= 0 {
		opts.DeviceScale = 1
	}

	r := &ChromeRasterizer{log: log, opts: opts}
	controlURL := opts.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(opts.Headless)
		if opts.Bin != "" {
			l = l.Bin(opts.Bin)
		}
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return nil, fmt.Errorf("unable to launch browser: %w", err)
		}
		r.launched = l
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		r.kill()
		return nil, fmt.Errorf("unable to connect to browser: %w", err)
	}
	r.browser = browser
	log.Debug("Browser connected", zap.String("url", controlURL))
	return r, nil
}

// Rasterize implements Rasterizer.
func (r *ChromeRasterizer) Rasterize(ctx context.Context, frame editor.Frame) (image.Image, error) {
	page, err := r.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("unable to create page: %w", err)
	}
	defer func() {
		if err := page.Close(); err != nil {
			r.log.Debug("Unable to close page", zap.Error(err))
		}
	}()
	page = page.Context(ctx)

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             int(frame.Size.W),
		Height:            int(frame.Size.H),
		DeviceScaleFactor: r.opts.DeviceScale,
	}); err != nil {
		return nil, fmt.Errorf("unable to set viewport: %w", err)
	}
	if err := page.SetDocumentContent(string(frame.Markup)); err != nil {
		return nil, fmt.Errorf("unable to load slide %d: %w", frame.Index, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("slide %d did not load: %w", frame.Index, err)
	}

	data, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, fmt.Errorf("unable to capture slide %d: %w", frame.Index, err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unable to decode capture of slide %d: %w", frame.Index, err)
	}
	return img, nil
}

// Close disconnects from browser and stops it when it was launched here.
func (r *ChromeRasterizer) Close() error {
	var err error
	r.once.Do(func() {
		if r.browser != nil {
			err = r.browser.Close()
		}
		r.kill()
	})
	return err
}

func (r *ChromeRasterizer) kill() {
	if r.launched != nil {
		r.launched.Kill()
		r.launched.Cleanup()
	}
}
