package surface

import (
	"slices"
	"strings"

	"github.com/beevik/etree"

	"carousel/css"
)

// Inline returns declarations of element style attribute.
func (s *Surface) Inline(e *etree.Element) css.Declarations {
	return s.parser.ParseInline(e.SelectAttrValue("style", ""))
}

// SetInline sets property in element style attribute.
func (s *Surface) SetInline(e *etree.Element, name string, v css.Value) {
	s.writeInline(e, s.Inline(e).Set(name, v))
}

// RemoveInline drops properties from element style attribute.
func (s *Surface) RemoveInline(e *etree.Element, names ...string) {
	decls := s.Inline(e)
	for _, n := range names {
		decls = decls.Remove(n)
	}
	s.writeInline(e, decls)
}

func (s *Surface) writeInline(e *etree.Element, decls css.Declarations) {
	if len(decls) == 0 {
		e.RemoveAttr("style")
		return
	}
	e.CreateAttr("style", decls.String())
}

// Resolved returns cascaded style of the element: matching stylesheet rules
// in specificity and source order overlaid with inline declarations.
// Inheritance is not modelled.
func (s *Surface) Resolved(e *etree.Element) css.Declarations {
	var rules []css.Rule
	for _, r := range s.sheet.Rules {
		if matches(r.Selector, e) {
			rules = append(rules, r)
		}
	}
	slices.SortStableFunc(rules, func(a, b css.Rule) int {
		if d := a.Selector.Specificity() - b.Selector.Specificity(); d != 0 {
			return d
		}
		return a.Order - b.Order
	})

	var out css.Declarations
	for _, r := range rules {
		out = out.Merge(r.Declarations)
	}
	return out.Merge(s.Inline(e))
}

// ResolvedValue returns cascaded value of a single property.
func (s *Surface) ResolvedValue(e *etree.Element, name string) (css.Value, bool) {
	return s.Resolved(e).Get(name)
}

func matches(sel css.Selector, e *etree.Element) bool {
	if !matchSimple(sel, e) {
		return false
	}
	if sel.Ancestor == nil {
		return true
	}
	for p := e.Parent(); p != nil; p = p.Parent() {
		if matches(*sel.Ancestor, p) {
			return true
		}
	}
	return false
}

func matchSimple(sel css.Selector, e *etree.Element) bool {
	if sel.Element != "" && sel.Element != "*" && !strings.EqualFold(sel.Element, e.Tag) {
		return false
	}
	if sel.ID != "" && e.SelectAttrValue("id", "") != sel.ID {
		return false
	}
	for _, c := range sel.Classes {
		if !HasClass(e, c) {
			return false
		}
	}
	return true
}

// Classes returns class list of the element.
func Classes(e *etree.Element) []string {
	return strings.Fields(e.SelectAttrValue("class", ""))
}

// HasClass reports whether element has class.
func HasClass(e *etree.Element, class string) bool {
	return slices.Contains(Classes(e), class)
}

// AddClass adds class to the element unless already present.
func AddClass(e *etree.Element, class string) {
	list := Classes(e)
	if slices.Contains(list, class) {
		return
	}
	e.CreateAttr("class", strings.Join(append(list, class), " "))
}

// RemoveClass removes class from the element.
func RemoveClass(e *etree.Element, class string) {
	list := Classes(e)
	idx := slices.Index(list, class)
	if idx < 0 {
		return
	}
	list = slices.Delete(list, idx, idx+1)
	if len(list) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.CreateAttr("class", strings.Join(list, " "))
}

// SetClasses replaces class list of the element.
func SetClasses(e *etree.Element, classes ...string) {
	if len(classes) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.CreateAttr("class", strings.Join(classes, " "))
}
