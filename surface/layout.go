package surface

import (
	"context"

	"github.com/beevik/etree"

	"carousel/geom"
)

// Layout answers box geometry of surface elements. Hosts with real rendering
// engine provide their own implementation.
type Layout interface {
	// Box returns border box size of element, zero when not laid out yet.
	Box(e *etree.Element) geom.Size
	// Settle waits for one layout cycle.
	Settle(ctx context.Context) error
}

// StyleLayout derives boxes from resolved styles: px lengths, percentages of
// the parent box, absolutely positioned elements and replaced media fill
// their parent, slide root takes viewport size. Auto height of flow elements
// is unknown and reported as zero.
type StyleLayout struct {
	s *Surface
}

// NewStyleLayout creates style based layout for the surface.
func NewStyleLayout(s *Surface) *StyleLayout {
	return &StyleLayout{s: s}
}

// Box implements Layout.
func (l *StyleLayout) Box(e *etree.Element) geom.Size {
	if e == nil {
		return geom.Size{}
	}
	if e == l.s.doc.Root() || e == l.s.Root() {
		return l.s.size
	}
	parent := l.Box(e.Parent())
	decls := l.s.Resolved(e)

	fill := e.Tag == "img" || e.Tag == "video"
	if v, ok := decls.Get("position"); ok && (v.Keyword == "absolute" || v.Keyword == "fixed") {
		fill = true
	}

	length := func(name string, base float64, auto float64) float64 {
		v, ok := decls.Get(name)
		if !ok {
			return auto
		}
		if px, ok := v.Px(); ok {
			return px
		}
		if pct, ok := v.Percent(); ok {
			return base * pct / 100
		}
		return auto
	}

	autoH := 0.0
	if fill {
		autoH = parent.H
	}
	return geom.Size{
		W: length("width", parent.W, parent.W),
		H: length("height", parent.H, autoH),
	}
}

// Settle implements Layout. Style layout is synchronous.
func (l *StyleLayout) Settle(ctx context.Context) error {
	return ctx.Err()
}
