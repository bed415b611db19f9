package media_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"carousel/geom"
	"carousel/media"
	"carousel/slide"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

var mp4Header = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom\x00\x00\x00\x08free")

func TestClassify(t *testing.T) {
	tests := []struct {
		url  string
		want slide.MediaKind
	}{
		{"", slide.MediaKindNone},
		{"media/a.jpg", slide.MediaKindImage},
		{"https://cdn.example.com/clip.MP4?token=1#t=3", slide.MediaKindVideo},
		{"clip.webm", slide.MediaKindVideo},
		{"clip.mov", slide.MediaKindVideo},
		{"picture.webp", slide.MediaKindImage},
		{"logo.svg", slide.MediaKindImage},
		{"no-extension", slide.MediaKindImage},
		{"data:video/mp4;base64,AAAA", slide.MediaKindVideo},
		{"data:image/png;base64,AAAA", slide.MediaKindImage},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := media.Classify(tt.url); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	got, err := media.Decode(pngBytes(t, 40, 30))
	if err != nil || got != (geom.Size{W: 40, H: 30}) {
		t.Fatalf("png: %v %v", got, err)
	}

	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1920 1080"><rect width="10" height="10"/></svg>`)
	got, err = media.Decode(svg)
	if err != nil || got != (geom.Size{W: 1920, H: 1080}) {
		t.Fatalf("svg: %v %v", got, err)
	}

	if _, err := media.Decode(mp4Header); !errors.Is(err, media.ErrUnknownDimensions) {
		t.Fatalf("mp4: err = %v", err)
	}
	if _, err := media.Decode([]byte("garbage")); !errors.Is(err, media.ErrUnknownDimensions) {
		t.Fatalf("garbage: err = %v", err)
	}
}

func TestProberFileAndCache(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "bg.png")
	if err := os.WriteFile(name, pngBytes(t, 16, 9), 0o644); err != nil {
		t.Fatal(err)
	}
	p := media.NewProber(dir, time.Second, nil)

	got, err := p.Natural(context.Background(), "bg.png")
	if err != nil || got != (geom.Size{W: 16, H: 9}) {
		t.Fatalf("relative: %v %v", got, err)
	}
	if err := os.Remove(name); err != nil {
		t.Fatal(err)
	}
	if got, err = p.Natural(context.Background(), "bg.png"); err != nil || got.W != 16 {
		t.Fatalf("cached: %v %v", got, err)
	}
	if _, err = p.Natural(context.Background(), "file://"+filepath.ToSlash(name)); err == nil {
		t.Fatal("removed file probed successfully")
	}
}

func TestProberDataURL(t *testing.T) {
	p := media.NewProber("", 0, nil)
	svg := "data:image/svg+xml," + strings.ReplaceAll(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300 200"></svg>`, " ", "%20")
	got, err := p.Natural(context.Background(), svg)
	if err != nil || got != (geom.Size{W: 300, H: 200}) {
		t.Fatalf("data url: %v %v", got, err)
	}
}

func TestProberHTTPTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/slow.png" {
			select {
			case <-release:
			case <-r.Context().Done():
			}
			return
		}
		_, _ = w.Write(pngBytes(t, 8, 4))
	}))
	defer srv.Close()
	defer close(release)

	p := media.NewProber("", 50*time.Millisecond, nil)
	if got, err := p.Natural(context.Background(), srv.URL+"/fast.png"); err != nil || got.W != 8 {
		t.Fatalf("fast: %v %v", got, err)
	}
	start := time.Now()
	if _, err := p.Natural(context.Background(), srv.URL+"/slow.png"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("slow: err = %v", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Error("probe was not bounded by timeout")
	}

	size, exact := media.NaturalOrEstimate(context.Background(), p, srv.URL+"/slow.png",
		geom.Size{W: 1080, H: 1350}, geom.DefaultAspect, nil)
	if exact || size.H != 1350 || size.W != 2400 {
		t.Errorf("estimate = %v %v", size, exact)
	}
}

func TestProberRetriesAfterTimeout(t *testing.T) {
	var (
		slow     atomic.Bool
		requests atomic.Int32
	)
	slow.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if slow.Load() {
			<-r.Context().Done()
			return
		}
		_, _ = w.Write(pngBytes(t, 8, 4))
	}))
	defer srv.Close()

	p := media.NewProber("", 50*time.Millisecond, nil)
	if _, err := p.Natural(context.Background(), srv.URL+"/a.png"); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("slow: err = %v", err)
	}

	slow.Store(false)
	for range 2 {
		if got, err := p.Natural(context.Background(), srv.URL+"/a.png"); err != nil || got != (geom.Size{W: 8, H: 4}) {
			t.Fatalf("after timeout: %v %v", got, err)
		}
	}
	if n := requests.Load(); n != 2 {
		t.Errorf("requests = %d, want 2 (timeout not cached, success cached)", n)
	}
}

func TestCompatibilityOf(t *testing.T) {
	forbidden := []string{"minimal", "Quote"}
	if media.CompatibilityOf("quote", forbidden).VideoAllowed {
		t.Error("quote must forbid video")
	}
	if !media.CompatibilityOf("bold", forbidden).VideoAllowed {
		t.Error("bold must allow video")
	}
}
