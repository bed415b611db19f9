package css

import (
	"regexp"
	"strconv"
	"strings"
)

// Px returns value in CSS pixels for "px" and unitless numbers.
func (v Value) Px() (float64, bool) {
	if !v.IsNumeric() {
		return 0, false
	}
	switch v.Unit {
	case "px", "":
		return v.Value, true
	}
	return 0, false
}

// Percent returns value of a percentage.
func (v Value) Percent() (float64, bool) {
	if v.Unit != "%" {
		return 0, false
	}
	return v.Value, true
}

// FormatPx renders pixel value without superfluous decimals.
func FormatPx(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64) + "px"
}

// FormatPercent renders percentage with at most two decimals.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64) + "%"
}

// FormatPosition renders two-axis position (object-position).
func FormatPosition(x, y float64) string {
	return FormatPercent(x) + " " + FormatPercent(y)
}

func round2(v float64) float64 {
	// two decimals
	s := strconv.FormatFloat(v, 'f', 2, 64)
	r, _ := strconv.ParseFloat(s, 64)
	if r == 0 {
		// drop sign of negative zero
		return 0
	}
	return r
}

// PxValue returns Value for pixel quantity.
func PxValue(v float64) Value {
	return Value{Raw: FormatPx(v), Value: round2(v), Unit: "px"}
}

// PercentValue returns Value for percentage.
func PercentValue(v float64) Value {
	return Value{Raw: FormatPercent(v), Value: round2(v), Unit: "%"}
}

// positionKeywords maps position keywords to percentages.
var positionKeywords = map[string]float64{
	"left":   0,
	"top":    0,
	"center": 50,
	"right":  100,
	"bottom": 100,
}

// Offset is position along single axis: percentage of the free space or
// pixel offset of the media edge.
type Offset struct {
	Value float64
	Px    bool
}

// ParseOffset parses single axis position ("35%", "-200px", "0", "left").
func ParseOffset(raw string) (Offset, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if p, ok := positionKeywords[raw]; ok {
		return Offset{Value: p}, true
	}
	if s, found := strings.CutSuffix(raw, "%"); found {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Offset{}, false
		}
		return Offset{Value: v}, true
	}
	s, found := strings.CutSuffix(raw, "px")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || (!found && v != 0) {
		return Offset{}, false
	}
	return Offset{Value: v, Px: true}, true
}

// ParseAxis parses single axis percentage position ("35%", "left", "center").
func ParseAxis(raw string) (float64, bool) {
	o, ok := ParseOffset(raw)
	if !ok || o.Px {
		return 0, false
	}
	return o.Value, true
}

// ParsePositionOffsets parses two-axis position used by object-position and
// background-position. Single value means the other axis is centered,
// keywords may be given in either order ("top left").
func ParsePositionOffsets(raw string) (x, y Offset, ok bool) {
	center := Offset{Value: 50}
	parts := strings.Fields(strings.ToLower(raw))
	switch len(parts) {
	case 1:
		v, ok := ParseOffset(parts[0])
		if !ok {
			return Offset{}, Offset{}, false
		}
		if parts[0] == "top" || parts[0] == "bottom" {
			return center, v, true
		}
		return v, center, true
	case 2:
		a, okA := ParseOffset(parts[0])
		b, okB := ParseOffset(parts[1])
		if !okA || !okB {
			return Offset{}, Offset{}, false
		}
		if parts[0] == "top" || parts[0] == "bottom" || parts[1] == "left" || parts[1] == "right" {
			return b, a, true
		}
		return a, b, true
	}
	return Offset{}, Offset{}, false
}

// ParsePosition is ParsePositionOffsets limited to percentages and keywords.
func ParsePosition(raw string) (x, y float64, ok bool) {
	ox, oy, ok := ParsePositionOffsets(raw)
	if !ok || ox.Px || oy.Px {
		return 0, 0, false
	}
	return ox.Value, oy.Value, true
}

// urlPattern matches url() references in CSS values.
// Handles: url("path"), url('path'), url(path)
var urlPattern = regexp.MustCompile(`url\s*\(\s*(?:["']([^"']*)["']|([^)"]*))\s*\)`)

// URL extracts the first url() reference from value.
func URL(raw string) (string, bool) {
	sub := urlPattern.FindStringSubmatch(raw)
	if len(sub) < 3 {
		return "", false
	}
	u := sub[1]
	if u == "" {
		u = sub[2]
	}
	u = strings.TrimSpace(u)
	return u, len(u) > 0
}

// URLValue renders url() value for the given address.
func URLValue(u string) Value {
	raw := `url("` + cssEscapeDoubleQuoted(u) + `")`
	return Value{Raw: raw, Keyword: raw}
}

// cssEscapeDoubleQuoted escapes a string for use inside CSS double quotes.
func cssEscapeDoubleQuoted(s string) string {
	if !strings.ContainsAny(s, `"\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
