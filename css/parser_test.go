package css_test

import (
	"testing"

	"go.uber.org/zap"

	"carousel/css"
)

func TestParser_ParseInline(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	decls := p.ParseInline(`width: 1080px; height:100%; object-position: 30% 70%; color: #fff !important; background-image: url("a b.jpg")`)

	if v, ok := decls.Get("width"); !ok || v.Unit != "px" || v.Value != 1080 {
		t.Errorf("width = %+v", v)
	}
	if v, ok := decls.Get("height"); !ok || v.Unit != "%" || v.Value != 100 {
		t.Errorf("height = %+v", v)
	}
	if v, ok := decls.Get("object-position"); !ok || v.Raw != "30% 70%" {
		t.Errorf("object-position = %+v", v)
	}
	if v, ok := decls.Get("color"); !ok || v.Raw != "#fff" {
		t.Errorf("color = %+v", v)
	}
	if decls[3].Name != "color" || !decls[3].Important {
		t.Errorf("expected important color, got %+v", decls[3])
	}
	v, _ := decls.Get("background-image")
	if u, ok := css.URL(v.Raw); !ok || u != "a b.jpg" {
		t.Errorf("URL(%q) = %q", v.Raw, u)
	}
}

func TestParser_ParseInlineEmpty(t *testing.T) {
	if decls := css.NewParser(nil).ParseInline("   "); len(decls) != 0 {
		t.Errorf("expected no declarations, got %v", decls)
	}
}

func TestDeclarations_SetRemoveString(t *testing.T) {
	p := css.NewParser(nil)
	decls := p.ParseInline("width: 10px; height: 20px")
	decls = decls.Set("height", css.PxValue(30))
	decls = decls.Set("margin", css.Value{Raw: "0 auto", Keyword: "0 auto"})
	decls = decls.Remove("width")

	if got, want := decls.String(), "height: 30px; margin: 0 auto;"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	again := p.ParseInline(decls.String())
	if again.String() != decls.String() {
		t.Errorf("re-parse changed declarations: %q != %q", again.String(), decls.String())
	}
}

func TestDeclarations_MergeRespectsImportant(t *testing.T) {
	p := css.NewParser(nil)
	base := p.ParseInline("color: red !important; font-size: 10px")
	top := p.ParseInline("color: blue; font-size: 12px")

	merged := base.Merge(top)
	if v, _ := merged.Get("color"); v.Raw != "red" {
		t.Errorf("important declaration overridden: %+v", v)
	}
	if v, _ := merged.Get("font-size"); v.Raw != "12px" {
		t.Errorf("font-size = %+v", v)
	}
}

func TestParser_ParseStylesheet(t *testing.T) {
	p := css.NewParser(zap.NewNop())

	sheet := p.Parse([]byte(`
@media print { h1 { color: black; } }
.slide h1.title { font-size: 64px; font-weight: 800; }
.subtitle, p { font-size: 28px }
a:hover { color: red }
#main { text-align: center }
`))

	if len(sheet.Rules) != 4 {
		t.Fatalf("expected 4 rules, got %d: %+v", len(sheet.Rules), sheet.Rules)
	}

	r := sheet.Rules[0]
	if r.Selector.Element != "h1" || len(r.Selector.Classes) != 1 || r.Selector.Classes[0] != "title" {
		t.Errorf("unexpected selector %+v", r.Selector)
	}
	if !r.Selector.IsDescendant() || r.Selector.Ancestor.Classes[0] != "slide" {
		t.Errorf("expected .slide ancestor, got %+v", r.Selector.Ancestor)
	}
	if v, _ := r.Declarations.Get("font-weight"); v.Value != 800 {
		t.Errorf("font-weight = %+v", v)
	}
	if got := sheet.RulesBySelector("p"); len(got) != 1 {
		t.Errorf("expected grouped selector to produce p rule")
	}
	if sheet.Rules[3].Selector.ID != "main" {
		t.Errorf("expected id selector, got %+v", sheet.Rules[3].Selector)
	}
	if len(sheet.Warnings) != 1 {
		t.Errorf("expected warning for pseudo-class, got %v", sheet.Warnings)
	}
}

func TestSelector_Specificity(t *testing.T) {
	p := css.NewParser(nil)
	sheet := p.Parse([]byte(`h1 { x: 1 } .title { x: 2 } h1.title { x: 3 } #t { x: 4 } .slide .title { x: 5 }`))
	spec := make(map[string]int)
	for _, r := range sheet.Rules {
		spec[r.Selector.Raw] = r.Selector.Specificity()
	}
	if !(spec["h1"] < spec[".title"] && spec[".title"] < spec["h1.title"] && spec["h1.title"] < spec[".slide .title"] && spec[".slide .title"] < spec["#t"]) {
		t.Errorf("unexpected specificity ordering: %v", spec)
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		x, y float64
		ok   bool
	}{
		{"50% 50%", 50, 50, true},
		{"12.5% 80%", 12.5, 80, true},
		{"center", 50, 50, true},
		{"left top", 0, 0, true},
		{"top right", 100, 0, true},
		{"bottom", 50, 100, true},
		{"25%", 25, 50, true},
		{"10px 20px", 0, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		x, y, ok := css.ParsePosition(tt.in)
		if ok != tt.ok || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("ParsePosition(%q) = %v, %v, %v; want %v, %v, %v", tt.in, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}

func TestParsePositionOffsets(t *testing.T) {
	tests := []struct {
		in   string
		x, y css.Offset
		ok   bool
	}{
		{"-200px 0px", css.Offset{Value: -200, Px: true}, css.Offset{Value: 0, Px: true}, true},
		{"25% -10px", css.Offset{Value: 25}, css.Offset{Value: -10, Px: true}, true},
		{"0 top", css.Offset{Value: 0, Px: true}, css.Offset{Value: 0}, true},
		{"left", css.Offset{Value: 0}, css.Offset{Value: 50}, true},
		{"12em 0", css.Offset{}, css.Offset{}, false},
		{"5 5", css.Offset{}, css.Offset{}, false},
	}
	for _, tt := range tests {
		x, y, ok := css.ParsePositionOffsets(tt.in)
		if ok != tt.ok || (ok && (x != tt.x || y != tt.y)) {
			t.Errorf("ParsePositionOffsets(%q) = %+v, %+v, %v; want %+v, %+v, %v", tt.in, x, y, ok, tt.x, tt.y, tt.ok)
		}
	}
}

func TestFormatting(t *testing.T) {
	if got := css.FormatPosition(57.5625, 50); got != "57.56% 50%" {
		t.Errorf("FormatPosition() = %q", got)
	}
	if got := css.FormatPx(1350); got != "1350px" {
		t.Errorf("FormatPx() = %q", got)
	}
	if v := css.ParseValue("1352px"); v.Unit != "px" || v.Value != 1352 {
		t.Errorf("ParseValue() = %+v", v)
	}
	if px, ok := css.ParseValue("40%").Px(); ok {
		t.Errorf("percentage must not convert to px, got %v", px)
	}
	if u, ok := css.URL(css.URLValue("media/bg 1.jpg").Raw); !ok || u != "media/bg 1.jpg" {
		t.Errorf("URL() = %q", u)
	}
}
