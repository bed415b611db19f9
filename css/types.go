package css

import (
	"strings"
	"unicode"
)

// Value represents a parsed CSS property value.
type Value struct {
	Raw     string  // Original CSS value string (e.g., "24px", "bold", "#ffffff")
	Value   float64 // Numeric value if applicable
	Unit    string  // Unit if applicable: "px", "%", "em", etc.
	Keyword string  // Keyword if applicable: "bold", "center", "url(...)", etc.
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Declaration is a single "name: value" pair.
type Declaration struct {
	Name      string
	Value     Value
	Important bool
}

// Declarations keeps property declarations in source order. Later
// declarations of the same property replace earlier ones on Set.
type Declarations []Declaration

// Get returns value of the property.
func (d Declarations) Get(name string) (Value, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Name == name {
			return d[i].Value, true
		}
	}
	return Value{}, false
}

// Set replaces or appends property declaration.
func (d Declarations) Set(name string, v Value) Declarations {
	for i := range d {
		if d[i].Name == name {
			d[i].Value = v
			d[i].Important = false
			return d
		}
	}
	return append(d, Declaration{Name: name, Value: v})
}

// Remove drops all declarations of the property.
func (d Declarations) Remove(name string) Declarations {
	out := d[:0]
	for _, decl := range d {
		if decl.Name != name {
			out = append(out, decl)
		}
	}
	return out
}

// Merge overlays other on top of d. Important declarations in d survive
// non-important ones in other.
func (d Declarations) Merge(other Declarations) Declarations {
	out := append(Declarations(nil), d...)
	for _, decl := range other {
		if cur, ok := out.find(decl.Name); ok && cur.Important && !decl.Important {
			continue
		}
		out = out.Set(decl.Name, decl.Value)
		if decl.Important {
			for i := range out {
				if out[i].Name == decl.Name {
					out[i].Important = true
				}
			}
		}
	}
	return out
}

func (d Declarations) find(name string) (Declaration, bool) {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Name == name {
			return d[i], true
		}
	}
	return Declaration{}, false
}

// String renders declarations as style attribute value.
func (d Declarations) String() string {
	var sb strings.Builder
	for i, decl := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(decl.Name)
		sb.WriteString(": ")
		sb.WriteString(decl.Value.Raw)
		if decl.Important {
			sb.WriteString(" !important")
		}
		sb.WriteByte(';')
	}
	return sb.String()
}

// Selector represents a parsed CSS selector with its components.
type Selector struct {
	Raw      string    // Original selector string
	Element  string    // Element name (e.g., "div", "h1") or empty for class/id-only
	Classes  []string  // Class names without dot
	ID       string    // Id without hash
	Ancestor *Selector // Ancestor selector for descendant selectors (e.g., ".slide h1" -> Ancestor is ".slide")
}

// IsSimple returns true if this selector names an element, class or id.
func (s Selector) IsSimple() bool {
	return s.Element != "" || len(s.Classes) > 0 || s.ID != ""
}

// IsDescendant returns true if this is a descendant selector.
func (s Selector) IsDescendant() bool {
	return s.Ancestor != nil
}

// Specificity returns (ids, classes, elements) counts of the whole selector
// packed into a single comparable number.
func (s Selector) Specificity() int {
	ids, classes, elems := 0, len(s.Classes), 0
	if s.ID != "" {
		ids++
	}
	if s.Element != "" && s.Element != "*" {
		elems++
	}
	spec := ids*10000 + classes*100 + elems
	if s.Ancestor != nil {
		spec += s.Ancestor.Specificity()
	}
	return spec
}

// Rule represents a single CSS rule (selector + declarations).
type Rule struct {
	Selector     Selector
	Declarations Declarations
	Order        int // position in source, used to break specificity ties
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Rules    []Rule
	Warnings []string // Warnings for unsupported features
}

// RulesBySelector returns all rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, r := range s.Rules {
		if r.Selector.Raw == selector {
			matches = append(matches, r)
		}
	}
	return matches
}
