package style

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode"

	"carousel/css"
	"carousel/geom"
	"carousel/slide"
)

// Patch is a set of style values of one element. Empty field means "not set"
// and falls through to the next layer.
type Patch struct {
	FontSize            string `json:"fontSize,omitempty" yaml:"font_size,omitempty"`
	FontWeight          string `json:"fontWeight,omitempty" yaml:"font_weight,omitempty"`
	TextAlign           string `json:"textAlign,omitempty" yaml:"text_align,omitempty"`
	Color               string `json:"color,omitempty" yaml:"color,omitempty"`
	ObjectPosition      string `json:"objectPosition,omitempty" yaml:"object_position,omitempty"`
	BackgroundPositionX string `json:"backgroundPositionX,omitempty" yaml:"background_position_x,omitempty"`
	BackgroundPositionY string `json:"backgroundPositionY,omitempty" yaml:"background_position_y,omitempty"`
	Height              string `json:"height,omitempty" yaml:"height,omitempty"`
}

func (p *Patch) field(prop Property) *string {
	switch prop {
	case PropertyFontSize:
		return &p.FontSize
	case PropertyFontWeight:
		return &p.FontWeight
	case PropertyTextAlign:
		return &p.TextAlign
	case PropertyColor:
		return &p.Color
	case PropertyObjectPosition:
		return &p.ObjectPosition
	case PropertyBackgroundPositionX:
		return &p.BackgroundPositionX
	case PropertyBackgroundPositionY:
		return &p.BackgroundPositionY
	case PropertyHeight:
		return &p.Height
	}
	return nil
}

// Get returns value of property.
func (p Patch) Get(prop Property) string {
	if f := p.field(prop); f != nil {
		return *f
	}
	return ""
}

// With returns copy of patch with property set.
func (p Patch) With(prop Property, value string) Patch {
	if f := p.field(prop); f != nil {
		*f = value
	}
	return p
}

// IsEmpty reports whether no property is set.
func (p Patch) IsEmpty() bool {
	return p == Patch{}
}

// Over returns patch where properties set in p take precedence over base.
func (p Patch) Over(base Patch) Patch {
	out := base
	for _, prop := range PropertyValues() {
		if v := p.Get(prop); v != "" {
			out = out.With(prop, v)
		}
	}
	return out
}

// Each calls fn for every set property in declaration order.
func (p Patch) Each(fn func(Property, string)) {
	for _, prop := range PropertyValues() {
		if v := p.Get(prop); v != "" {
			fn(prop, v)
		}
	}
}

// Normalize validates value for the property and brings it to canonical form.
// Position percentages are clamped to [0, 100].
func Normalize(prop Property, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", nil
	}
	switch prop {
	case PropertyObjectPosition:
		x, y, ok := css.ParsePosition(value)
		if !ok {
			return "", fmt.Errorf("invalid %s value %q", prop, value)
		}
		return css.FormatPosition(geom.Clamp(x, 0, 100), geom.Clamp(y, 0, 100)), nil
	case PropertyBackgroundPositionX, PropertyBackgroundPositionY:
		v, ok := css.ParseAxis(value)
		if !ok {
			return "", fmt.Errorf("invalid %s value %q", prop, value)
		}
		return css.FormatPercent(geom.Clamp(v, 0, 100)), nil
	case PropertyHeight, PropertyFontSize:
		out, ok := normalizeLength(prop, value)
		if !ok {
			return "", fmt.Errorf("invalid %s value %q", prop, value)
		}
		return out, nil
	case PropertyFontWeight, PropertyTextAlign, PropertyColor:
		return value, nil
	}
	return "", fmt.Errorf("unknown property %d", prop)
}

// lengthUnits are CSS length units accepted for sizes besides px.
var lengthUnits = map[string]bool{
	"%": true, "em": true, "rem": true, "ex": true, "ch": true,
	"vw": true, "vh": true, "vmin": true, "vmax": true,
	"pt": true, "pc": true, "cm": true, "mm": true, "in": true,
}

// lengthKeywords are keyword sizes per property.
var lengthKeywords = map[Property][]string{
	PropertyFontSize: {"xx-small", "x-small", "small", "medium", "large", "x-large", "xx-large", "xxx-large", "smaller", "larger"},
	PropertyHeight:   {"auto", "fit-content", "min-content", "max-content"},
}

// normalizeLength accepts positive lengths and size keywords. Unitless
// numbers are pixels.
func normalizeLength(prop Property, value string) (string, bool) {
	value = strings.ToLower(value)
	if slices.Contains(lengthKeywords[prop], value) {
		return value, true
	}
	switch value {
	case "inherit", "initial", "unset", "revert":
		return value, true
	}

	i := strings.IndexFunc(value, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+'
	})
	num, unit := value, ""
	if i >= 0 {
		num, unit = value[:i], value[i:]
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v <= 0 {
		return "", false
	}
	switch {
	case unit == "" || unit == "px":
		return css.FormatPx(v), true
	case lengthUnits[unit]:
		return strconv.FormatFloat(v, 'f', -1, 64) + unit, true
	}
	return "", false
}

// Defaults are built-in values used when neither edited nor original layer
// has a property.
type Defaults map[slide.Element]Patch

// BuiltinDefaults returns template independent defaults.
func BuiltinDefaults() Defaults {
	return Defaults{
		slide.ElementTitle: {
			FontSize:   "24px",
			FontWeight: "700",
			TextAlign:  "left",
			Color:      "#ffffff",
		},
		slide.ElementSubtitle: {
			FontSize:   "16px",
			FontWeight: "400",
			TextAlign:  "left",
			Color:      "#ffffff",
		},
		slide.ElementBackground: {
			ObjectPosition:      "50% 50%",
			BackgroundPositionX: "50%",
			BackgroundPositionY: "50%",
		},
	}
}

// Capture builds patch of the element from resolved declarations. Height is
// container geometry and never captured.
func Capture(el slide.Element, decls css.Declarations) Patch {
	var p Patch
	for _, prop := range PropertyValues() {
		if prop == PropertyHeight || !prop.AppliesTo(el) {
			continue
		}
		if v, ok := decls.Get(prop.CSSName()); ok && v.Raw != "" {
			p = p.With(prop, v.Raw)
		}
	}
	return p
}
