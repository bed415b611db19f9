package editor_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"carousel/editor"
	"carousel/geom"
	"carousel/media"
	"carousel/persist"
	"carousel/slide"
	"carousel/style"
	"carousel/surface"
)

const slideMarkup = `<html><head><style>
.slide { width: 1080px; height: 1350px; }
.image-wrapper { position: absolute; width: 1080px; height: 1350px; }
h1 { font-size: 50px; }
</style></head><body>
<div class="slide" data-template="%s"><div class="image-wrapper"><img src="%s" style="object-position: 50%% 50%%"/></div><h1>%s</h1><p>Sub</p></div>
</body></html>`

const contentDoc = `{
  "id": "%s",
  "dados_gerais": {"tema": "bold"},
  "conteudos": [
    {"title": "One", "subtitle": "Sub", "imagem_fundo": "a.jpg", "imagem_fundo2": "b.jpg", "imagem_fundo3": "c.jpg"},
    {"title": "Two", "subtitle": "Sub", "imagem_fundo": "x.jpg"}
  ]%s
}`

type dims struct{}

func (dims) Natural(context.Context, string) (geom.Size, error) {
	return geom.Size{W: 1920, H: 1080}, nil
}

func parseDoc(t *testing.T, id, styles string) *persist.Document {
	t.Helper()
	if styles != "" {
		styles = `, "styles": ` + styles
	}
	doc, err := persist.Parse(fmt.Appendf(nil, contentDoc, id, styles))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func markups(template string) [][]byte {
	return [][]byte{
		fmt.Appendf(nil, slideMarkup, template, "a.jpg", "One"),
		fmt.Appendf(nil, slideMarkup, template, "x.jpg", "Two"),
	}
}

func open(t *testing.T, doc *persist.Document, template string) *editor.Editor {
	t.Helper()
	e := editor.New(editor.Options{
		Size:           geom.Size{W: 1080, H: 1350},
		Bleed:          2,
		ForbiddenVideo: []string{"quote"},
	}, dims{}, zap.NewNop())
	if err := e.Open(context.Background(), doc, markups(template)); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if e.IsOpen() {
			_ = e.Close()
		}
	})
	return e
}

func inline(t *testing.T, e *editor.Editor, key slide.Key, name string) string {
	t.Helper()
	s := e.Surfaces()[key.Slide]
	el := s.ByID(key.ID())
	if el == nil {
		t.Fatalf("%s not found", key)
	}
	if name == "height" {
		el = el.Parent()
	}
	v, _ := s.Inline(el).Get(name)
	return v.Raw
}

var (
	title0 = slide.Key{Slide: 0, Element: slide.ElementTitle}
	bg0    = slide.Key{Slide: 0, Element: slide.ElementBackground}
	bg1    = slide.Key{Slide: 1, Element: slide.ElementBackground}
)

func TestOpenAppliesStoredStyles(t *testing.T) {
	doc := parseDoc(t, "c-1", `{"0": {"title": {"fontSize": "40px", "color": "#ff0000"}, "background": {"objectPosition": "20% 80%"}}}`)
	e := open(t, doc, "bold")

	if got := inline(t, e, title0, "font-size"); got != "40px" {
		t.Errorf("title font-size = %q", got)
	}
	if got := inline(t, e, title0, "color"); got != "#ff0000" {
		t.Errorf("title color = %q", got)
	}
	if got := inline(t, e, bg0, "object-position"); got != "20% 80%" {
		t.Errorf("background position = %q", got)
	}
	if got := inline(t, e, bg1, "object-position"); got != "50% 50%" {
		t.Errorf("untouched slide position = %q", got)
	}
	if got := e.Store().Effective(title0).FontWeight; got != "700" {
		t.Errorf("default weight = %q", got)
	}
}

func TestSetStyleAndRevert(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", ""), "bold")

	if err := e.SetStyle(title0, style.PropertyFontSize, "60"); err != nil {
		t.Fatal(err)
	}
	if got := inline(t, e, title0, "font-size"); got != "60px" {
		t.Fatalf("font-size = %q", got)
	}
	if err := e.SetStyle(title0, style.PropertyColor, "#00ff00"); err != nil {
		t.Fatal(err)
	}

	e.Store().Delete(title0, style.PropertyFontSize)
	e.Store().Delete(title0, style.PropertyColor)
	if got := inline(t, e, title0, "font-size"); got != "50px" {
		t.Errorf("reverted font-size = %q, want captured 50px", got)
	}
	if got := inline(t, e, title0, "color"); got != "" {
		t.Errorf("reverted color = %q, want none", got)
	}
}

func TestSetStyleInvalid(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", ""), "bold")

	err := e.SetStyle(title0, style.PropertyFontSize, "-3px")
	ue, ok := editor.IsUserError(err)
	if !ok {
		t.Fatalf("SetStyle() = %v, want user error", err)
	}
	if ue.Op != "style" {
		t.Errorf("Op = %q", ue.Op)
	}
	if _, ok := e.Store().Edited(title0); ok {
		t.Error("invalid value stored")
	}
}

func TestDragThroughEvents(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", ""), "bold")
	target := e.Surfaces()[1].ByID(bg1.ID())

	for _, ev := range []surface.Event{
		{Type: surface.EventTypePointerdown, X: 500, Y: 500},
		{Type: surface.EventTypePointermove, X: 450, Y: 500},
		{Type: surface.EventTypePointerup, X: 400, Y: 500},
	} {
		ev.Target = target
		if err := e.HandleEvent(1, &ev); err != nil {
			t.Fatal(err)
		}
	}
	if got := e.Store().Effective(bg1).ObjectPosition; got != "57.56% 50%" {
		t.Errorf("committed = %q", got)
	}
	if got := inline(t, e, bg1, "object-position"); got != "57.56% 50%" {
		t.Errorf("live = %q", got)
	}
	if err := e.HandleEvent(5, &surface.Event{Type: surface.EventTypeClick}); !errors.Is(err, surface.ErrNoElement) {
		t.Errorf("HandleEvent(unknown slide) = %v", err)
	}
}

func TestAssignBackgroundRejectsVideo(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", ""), "quote")
	before, err := e.Surfaces()[0].Markup()
	if err != nil {
		t.Fatal(err)
	}

	err = e.AssignBackground(context.Background(), 0, "clip.mp4")
	ue, ok := editor.IsUserError(err)
	if !ok || !errors.Is(err, media.ErrVideoNotAllowed) {
		t.Fatalf("AssignBackground() = %v", err)
	}
	if ue.Op != "background" {
		t.Errorf("Op = %q", ue.Op)
	}
	after, _ := e.Surfaces()[0].Markup()
	if string(before) != string(after) {
		t.Error("rejected assignment mutated slide")
	}
	if _, ok := e.Content().Media(0); ok {
		t.Error("rejected media recorded")
	}
}

func TestAssignBackgroundKeepsPosition(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", `{"0": {"background": {"objectPosition": "10% 90%"}}}`), "bold")

	if err := e.AssignBackground(context.Background(), 0, "c.jpg"); err != nil {
		t.Fatal(err)
	}
	bg := e.Surfaces()[0].ByID(bg0.ID())
	if bg == nil || bg.SelectAttrValue("src", "") != "c.jpg" {
		t.Fatalf("background not replaced")
	}
	if got := inline(t, e, bg0, "object-position"); got != "10% 90%" {
		t.Errorf("position after assignment = %q", got)
	}
}

const videoMarkup = `<html><body>
<div class="slide" data-template="bold" style="width: 1080px; height: 1350px">
<div class="bg" style="position: absolute; width: 1080px; height: 900px"><video src="intro.mp4"></video></div><h1>%s</h1></div>
</body></html>`

func TestAssignBackgroundVideoImageVideo(t *testing.T) {
	ctx := context.Background()
	e := editor.New(editor.Options{Size: geom.Size{W: 1080, H: 1350}, Bleed: 2}, dims{}, zap.NewNop())
	err := e.Open(ctx, parseDoc(t, "c-1", ""), [][]byte{
		fmt.Appendf(nil, videoMarkup, "One"),
		fmt.Appendf(nil, videoMarkup, "Two"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()

	s := e.Surfaces()[0]
	container := s.ByID(bg0.ID()).Parent()
	want := geom.Size{W: 1080, H: 900}
	if got := s.Layout().Box(container); got != want {
		t.Fatalf("template container = %v", got)
	}

	for _, u := range []string{"still.png", "clip.mp4"} {
		if err := e.AssignBackground(ctx, 0, u); err != nil {
			t.Fatalf("AssignBackground(%s): %v", u, err)
		}
		bg := s.ByID(bg0.ID())
		if bg == nil || bg.SelectAttrValue("src", "") != u {
			t.Fatalf("AssignBackground(%s): background not replaced", u)
		}
		if bg.Parent() != container {
			t.Fatalf("AssignBackground(%s): media moved out of template container", u)
		}
		if got := s.Layout().Box(container); got != want {
			t.Errorf("AssignBackground(%s): container = %v, want %v", u, got, want)
		}
	}
	if _, ok := e.Store().Edited(slide.Key{Slide: 0, Element: slide.ElementBackground}); ok {
		t.Error("framed template video committed height override")
	}
}

func TestSaveReordersMedia(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", ""), "bold")
	if err := e.AssignBackground(context.Background(), 0, "c.jpg"); err != nil {
		t.Fatal(err)
	}
	if err := e.EditText(title0, "One, edited"); err != nil {
		t.Fatal(err)
	}

	var saved *persist.Document
	doc, err := e.Save(context.Background(), persist.SaverFunc(func(_ context.Context, d *persist.Document) error {
		saved = d
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if saved != doc || e.Document() != doc {
		t.Error("saved document not adopted")
	}
	if diff := cmp.Diff([]string{"c.jpg", "a.jpg", "b.jpg"}, doc.Slides[0].Media); diff != "" {
		t.Errorf("media order mismatch (-want +got):\n%s", diff)
	}
	if doc.Slides[0].Title != "One, edited" {
		t.Errorf("title = %q", doc.Slides[0].Title)
	}
	if diff := cmp.Diff([]string{"x.jpg"}, doc.Slides[1].Media); diff != "" {
		t.Errorf("untouched slide media mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveFailurePreservesState(t *testing.T) {
	doc := parseDoc(t, "c-1", "")
	e := open(t, doc, "bold")
	if err := e.SetStyle(title0, style.PropertyTextAlign, "center"); err != nil {
		t.Fatal(err)
	}
	cause := errors.New("network down")

	_, err := e.Save(context.Background(), persist.SaverFunc(func(context.Context, *persist.Document) error {
		return cause
	}))
	if _, ok := editor.IsUserError(err); !ok || !errors.Is(err, cause) {
		t.Fatalf("Save() = %v", err)
	}
	if e.Document() != doc {
		t.Error("document replaced after failed save")
	}
	if got := e.Store().Effective(title0).TextAlign; got != "center" {
		t.Errorf("edit lost: %q", got)
	}
}

func TestReopen(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", ""), "bold")
	if err := e.EditText(title0, "Kept"); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); !errors.Is(err, editor.ErrNotOpen) {
		t.Errorf("second Close() = %v", err)
	}

	if err := e.Open(context.Background(), parseDoc(t, "c-1", ""), markups("bold")); err != nil {
		t.Fatal(err)
	}
	if got := surface.Text(e.Surfaces()[0].ByID(title0.ID())); got != "Kept" {
		t.Errorf("same carousel title = %q", got)
	}

	if err := e.Open(context.Background(), parseDoc(t, "c-2", ""), markups("bold")); err != nil {
		t.Fatal(err)
	}
	if got := surface.Text(e.Surfaces()[0].ByID(title0.ID())); got != "One" {
		t.Errorf("other carousel title = %q", got)
	}
	if _, ok := e.Content().Text(title0); ok {
		t.Error("content of previous carousel kept")
	}
}

func TestSnapshotAndDump(t *testing.T) {
	e := open(t, parseDoc(t, "c-1", `{"1": {"title": {"fontSize": "30px"}}}`), "bold")
	if err := e.Selection().Select(title0); err != nil {
		t.Fatal(err)
	}

	var got []editor.Frame
	err := e.Export(context.Background(), exporterFunc(func(_ context.Context, frames []editor.Frame) error {
		got = frames
		return nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Index != 1 || got[1].Size != (geom.Size{W: 1080, H: 1350}) {
		t.Fatalf("frames = %+v", got)
	}
	if strings.Contains(string(got[0].Markup), "editor-selected") {
		t.Error("selection decoration exported")
	}
	if !strings.Contains(string(got[1].Markup), "font-size: 30px") {
		t.Errorf("applied style missing from frame:\n%s", got[1].Markup)
	}

	dump := e.Dump()
	for _, want := range []string{`carousel "c-1"`, "slide 1", "fontSize: 30px (edited)"} {
		if !strings.Contains(dump, want) {
			t.Errorf("dump lacks %q:\n%s", want, dump)
		}
	}
}

type exporterFunc func(context.Context, []editor.Frame) error

func (f exporterFunc) Export(ctx context.Context, frames []editor.Frame) error { return f(ctx, frames) }
