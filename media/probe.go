package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/h2non/filetype"
	"github.com/srwiley/oksvg"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"carousel/geom"
)

// ErrUnknownDimensions is returned when media was read but its natural size
// cannot be determined (videos, malformed images).
var ErrUnknownDimensions = errors.New("natural dimensions unknown")

// DefaultProbeTimeout bounds single natural dimensions lookup.
const DefaultProbeTimeout = 2 * time.Second

// maxProbeBytes limits how much of a media resource is read.
const maxProbeBytes = 16 << 20

// Dimensions resolves natural size of media.
type Dimensions interface {
	Natural(ctx context.Context, u string) (geom.Size, error)
}

type probeResult struct {
	size geom.Size
	err  error
}

// Prober reads media headers to learn natural dimensions. Results are cached
// by URL, each lookup is bounded by timeout.
type Prober struct {
	log     *zap.Logger
	client  *http.Client
	base    string
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]probeResult
}

// NewProber creates prober resolving relative and file URLs against base
// directory.
func NewProber(base string, timeout time.Duration, log *zap.Logger) *Prober {
	if log == nil {
		log = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	return &Prober{
		log:     log.Named("probe"),
		client:  &http.Client{},
		base:    base,
		timeout: timeout,
		cache:   make(map[string]probeResult),
	}
}

// Natural implements Dimensions.
func (p *Prober) Natural(ctx context.Context, u string) (geom.Size, error) {
	p.mu.Lock()
	if r, ok := p.cache[u]; ok {
		p.mu.Unlock()
		return r.size, r.err
	}
	p.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	type reply struct {
		size geom.Size
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		size, err := p.probe(ctx, u)
		done <- reply{size, err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-ctx.Done():
		r.err = fmt.Errorf("probing %q: %w", u, ctx.Err())
	}

	if r.err != nil {
		p.log.Debug("Unable to probe media", zap.String("url", u), zap.Error(r.err))
	}
	if errors.Is(r.err, context.Canceled) || errors.Is(r.err, context.DeadlineExceeded) {
		// slow or abandoned lookup is retried next time
		return r.size, r.err
	}
	p.mu.Lock()
	p.cache[u] = probeResult{size: r.size, err: r.err}
	p.mu.Unlock()
	return r.size, r.err
}

func (p *Prober) probe(ctx context.Context, u string) (geom.Size, error) {
	data, err := p.read(ctx, u)
	if err != nil {
		return geom.Size{}, err
	}
	return Decode(data)
}

// Decode determines natural size of media content.
func Decode(data []byte) (geom.Size, error) {
	if kind, err := filetype.Match(data); err == nil && kind.MIME.Type == "video" {
		return geom.Size{}, fmt.Errorf("%s video: %w", kind.Extension, ErrUnknownDimensions)
	}
	if isSVG(data) {
		icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
		if err != nil {
			return geom.Size{}, fmt.Errorf("svg: %w", err)
		}
		if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			return geom.Size{}, fmt.Errorf("svg without view box: %w", ErrUnknownDimensions)
		}
		return geom.Size{W: icon.ViewBox.W, H: icon.ViewBox.H}, nil
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return geom.Size{}, fmt.Errorf("%w: %w", ErrUnknownDimensions, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return geom.Size{}, ErrUnknownDimensions
	}
	return geom.Size{W: float64(cfg.Width), H: float64(cfg.Height)}, nil
}

func isSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	return bytes.Contains(head, []byte("<svg"))
}

func (p *Prober) read(ctx context.Context, u string) ([]byte, error) {
	if _, ok := dataMIME(u); ok {
		return decodeDataURL(u)
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return nil, fmt.Errorf("malformed media url %q: %w", u, err)
	}
	switch parsed.Scheme {
	case "http", "https":
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		resp, err := p.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetching %q: %s", u, resp.Status)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxProbeBytes))
	case "file":
		return readFile(parsed.Path)
	case "":
		name := filepath.FromSlash(parsed.Path)
		if !filepath.IsAbs(name) {
			name = filepath.Join(p.base, name)
		}
		return readFile(name)
	}
	return nil, fmt.Errorf("unsupported media url scheme %q", parsed.Scheme)
}

func readFile(name string) ([]byte, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, maxProbeBytes))
}

func decodeDataURL(u string) ([]byte, error) {
	meta, payload, found := strings.Cut(strings.TrimPrefix(u, "data:"), ",")
	if !found {
		return nil, errors.New("malformed data url")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// NaturalOrEstimate returns natural size of media or, when it cannot be
// learned, size estimated from aspect for given container.
func NaturalOrEstimate(ctx context.Context, dims Dimensions, u string, container geom.Size, aspect geom.Aspect, log *zap.Logger) (geom.Size, bool) {
	if dims != nil && u != "" {
		size, err := dims.Natural(ctx, u)
		if err == nil && !size.IsZero() {
			return size, true
		}
		if log != nil {
			log.Debug("Using estimated media size", zap.String("url", u), zap.Error(err))
		}
	}
	return aspect.Estimate(container), false
}
