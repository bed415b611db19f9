package drag_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"carousel/drag"
	"carousel/geom"
	"carousel/media"
	"carousel/slide"
	"carousel/style"
	"carousel/surface"
)

const imageSlide = `<html><head><style>
.slide { width: 1080px; height: 1350px; }
.image-wrapper { position: absolute; width: 1080px; height: 1350px; }
</style></head><body>
<div class="slide"><div class="image-wrapper"><img src="a.jpg"/></div><h1>Title</h1></div>
</body></html>`

const backgroundSlide = `<html><body>
<div class="slide" style="width: 1080px; height: 1350px; background-image: url(bg.jpg); background-position: center top"><h1>T</h1></div>
</body></html>`

type fixedDims map[string]geom.Size

func (d fixedDims) Natural(_ context.Context, u string) (geom.Size, error) {
	if s, ok := d[u]; ok {
		return s, nil
	}
	return geom.Size{}, media.ErrUnknownDimensions
}

var bg = slide.Key{Slide: 0, Element: slide.ElementBackground}

func setup(t *testing.T, markup string, layout surface.Layout) (*surface.Surface, *etree.Element, *style.Store, *drag.Controller) {
	t.Helper()
	s, err := surface.Load(0, strings.NewReader(markup), surface.Options{Size: geom.Size{W: 1080, H: 1350}, Layout: layout}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	_, e := s.MediaKind()
	s.Annotate(e, slide.ElementBackground)
	store := style.NewStore(nil, zap.NewNop())
	dims := fixedDims{"a.jpg": {W: 1920, H: 1080}, "bg.jpg": {W: 1920, H: 1080}}
	c := drag.NewController(drag.NewSlot(), store, dims, drag.Options{Bleed: 2}, zap.NewNop())
	return s, e, store, c
}

func inline(s *surface.Surface, e *etree.Element, name string) string {
	v, _ := s.Inline(e).Get(name)
	return v.Raw
}

func TestDragImageCommitsPercent(t *testing.T) {
	s, img, store, c := setup(t, imageSlide, nil)

	if err := c.Start(context.Background(), s, img, 500, 600); err != nil {
		t.Fatal(err)
	}
	sess, ok := c.Session()
	if !ok || sess.Display != (geom.Size{W: 2402, H: 1352}) || sess.Estimated {
		t.Fatalf("session = %+v", sess)
	}
	if sess.MinOffset.X != -1322 || sess.MinOffset.Y != -2 {
		t.Fatalf("min offset = %+v", sess.MinOffset)
	}

	c.Move(450, 600)
	c.Move(400, 600)
	if got := inline(s, img, "object-position"); got != "57.56% 50%" {
		t.Fatalf("live position = %q", got)
	}
	if _, ok := store.Edited(bg); ok {
		t.Fatal("move committed into store")
	}

	done, err := c.End()
	if !done || err != nil {
		t.Fatalf("End() = %v, %v", done, err)
	}
	if got := store.Effective(bg).ObjectPosition; got != "57.56% 50%" {
		t.Errorf("committed = %q", got)
	}
	if c.Active() {
		t.Error("slot not cleared")
	}
	if done, _ := c.End(); done {
		t.Error("second End() reported session")
	}
}

func TestDragClampsToBounds(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   string
	}{
		{"far left and up", -5000, -5000, "100% 100%"},
		{"far right and down", 5000, 5000, "0% 0%"},
		{"still", 0, 0, "50% 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, img, store, c := setup(t, imageSlide, nil)
			if err := c.Start(context.Background(), s, img, 0, 0); err != nil {
				t.Fatal(err)
			}
			c.Move(tt.dx, tt.dy)
			if _, err := c.End(); err != nil {
				t.Fatal(err)
			}
			if got := store.Effective(bg).ObjectPosition; got != tt.want {
				t.Errorf("committed = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSecondStartIgnored(t *testing.T) {
	s, img, _, c := setup(t, imageSlide, nil)
	if err := c.Start(context.Background(), s, img, 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(context.Background(), s, img, 10, 10); !errors.Is(err, drag.ErrSessionActive) {
		t.Fatalf("err = %v", err)
	}
	if sess, _ := c.Session(); sess.Pointer != (drag.Point{}) {
		t.Errorf("first session replaced: %+v", sess.Pointer)
	}
}

func TestCancelRestoresOrigin(t *testing.T) {
	s, img, store, c := setup(t, imageSlide, nil)
	if err := c.Start(context.Background(), s, img, 0, 0); err != nil {
		t.Fatal(err)
	}
	c.Move(-300, 0)
	if !c.Cancel() {
		t.Fatal("Cancel() found no session")
	}
	if got := inline(s, img, "object-position"); got != "50% 50%" {
		t.Errorf("live position = %q", got)
	}
	if _, ok := store.Edited(bg); ok {
		t.Error("cancelled drag committed")
	}
	if c.Move(1, 1) {
		t.Error("Move() after cancel")
	}
}

func TestNotDraggable(t *testing.T) {
	s, _, _, c := setup(t, imageSlide, nil)
	h1 := s.Find(slide.ElementTitle)
	s.Annotate(h1, slide.ElementTitle)
	if err := c.Start(context.Background(), s, h1, 0, 0); !errors.Is(err, drag.ErrNotDraggable) {
		t.Fatalf("err = %v", err)
	}
}

// lateLayout reports zero boxes until settled the given number of times.
type lateLayout struct {
	pending int
	size    geom.Size
}

func (l *lateLayout) Box(*etree.Element) geom.Size {
	if l.pending > 0 {
		return geom.Size{}
	}
	return l.size
}

func (l *lateLayout) Settle(ctx context.Context) error {
	l.pending--
	return ctx.Err()
}

func TestLayoutRetry(t *testing.T) {
	s, img, _, c := setup(t, imageSlide, &lateLayout{pending: 1, size: geom.Size{W: 1080, H: 1350}})
	if err := c.Start(context.Background(), s, img, 0, 0); err != nil {
		t.Fatalf("single retry should succeed: %v", err)
	}

	s, img, _, c = setup(t, imageSlide, &lateLayout{pending: 2, size: geom.Size{W: 1080, H: 1350}})
	if err := c.Start(context.Background(), s, img, 0, 0); !errors.Is(err, drag.ErrLayoutNotReady) {
		t.Fatalf("err = %v", err)
	}
	if c.Active() {
		t.Error("session left after abort")
	}
}

func TestDragCSSBackground(t *testing.T) {
	s, e, store, c := setup(t, backgroundSlide, nil)
	if err := c.Start(context.Background(), s, e, 0, 0); err != nil {
		t.Fatal(err)
	}
	if sess, _ := c.Session(); sess.Origin != (drag.Point{X: 50, Y: 0}) || sess.Kind != slide.MediaKindCssBackground {
		t.Fatalf("session = %+v", sess)
	}
	c.Move(100, 0)
	if _, err := c.End(); err != nil {
		t.Fatal(err)
	}
	got := store.Effective(bg)
	if got.BackgroundPositionX != "42.44%" || got.BackgroundPositionY != "0%" {
		t.Errorf("committed = %q %q", got.BackgroundPositionX, got.BackgroundPositionY)
	}
}

func TestPixelOrigin(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		check  func(style.Patch) string
		want   string
	}{
		{
			"object-position",
			strings.Replace(imageSlide, `<img src="a.jpg"/>`, `<img src="a.jpg" style="object-position: -200px 0px"/>`, 1),
			func(p style.Patch) string { return p.ObjectPosition },
			"15.13% 0%",
		},
		{
			"background-position",
			strings.Replace(backgroundSlide, "center top", "-661px 0", 1),
			func(p style.Patch) string { return p.BackgroundPositionX + " " + p.BackgroundPositionY },
			"50% 0%",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, e, store, c := setup(t, tt.markup, nil)
			if err := c.Start(context.Background(), s, e, 300, 300); err != nil {
				t.Fatal(err)
			}
			if _, err := c.End(); err != nil {
				t.Fatal(err)
			}
			if got := tt.check(store.Effective(bg)); got != tt.want {
				t.Errorf("committed without move = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEstimatedAspect(t *testing.T) {
	s, img, _, _ := setup(t, imageSlide, nil)
	c := drag.NewController(nil, style.NewStore(nil, nil), nil, drag.Options{}, nil)
	if err := c.Start(context.Background(), s, img, 0, 0); err != nil {
		t.Fatal(err)
	}
	sess, _ := c.Session()
	if !sess.Estimated || sess.Natural != (geom.Size{W: 2400, H: 1350}) {
		t.Errorf("session = %+v", sess)
	}
}
