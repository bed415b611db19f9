// Package geom holds pure geometry used by the editor: clamping, cover-fit
// sizing with overscan and conversions between media offsets and position
// percentages.
package geom

import "math"

// Size is a width/height pair in CSS pixels.
type Size struct {
	W, H float64
}

// IsZero reports whether either dimension is not positive.
func (s Size) IsZero() bool {
	return s.W <= 0 || s.H <= 0
}

// Clamp returns v bounded to [lo, hi]. When lo > hi the bounds are swapped so
// the function stays total.
func Clamp(v, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	switch {
	case math.IsNaN(v):
		return lo
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}

// CoverBleed computes display dimensions of media scaled to cover container
// plus bleed pixels of overscan on each axis. Result never under-fills the
// container, even when floating point scaling lands a hair short of it.
func CoverBleed(naturalW, naturalH, containerW, containerH, bleed float64) (displayW, displayH float64) {
	scale := math.Max(containerW/naturalW, containerH/naturalH)
	displayW = math.Max(math.Ceil(naturalW*scale), math.Ceil(containerW)) + bleed
	displayH = math.Max(math.Ceil(naturalH*scale), math.Ceil(containerH)) + bleed
	return displayW, displayH
}

// Cover is CoverBleed over sizes.
func Cover(natural, container Size, bleed float64) Size {
	w, h := CoverBleed(natural.W, natural.H, container.W, container.H, bleed)
	return Size{W: w, H: h}
}

// MinOffset is the most negative offset media of display size may be shifted
// by inside container without exposing the container edge.
func MinOffset(container, display float64) float64 {
	return math.Min(0, container-display)
}

// OffsetFromPercent converts position percentage (object-position semantics)
// into pixel offset of the media relative to container origin.
func OffsetFromPercent(pct, container, display float64) float64 {
	return MinOffset(container, display) * Clamp(pct, 0, 100) / 100
}

// PercentFromOffset converts pixel offset back into position percentage. When
// axis has no slack (minOffset is zero) any percentage renders identically and
// ok is false.
func PercentFromOffset(offset, minOffset float64) (pct float64, ok bool) {
	if minOffset >= 0 {
		return 0, false
	}
	pct = Clamp(offset/minOffset*100, 0, 100)
	if pct == 0 {
		pct = 0 // no negative zero
	}
	return pct, true
}

// Aspect is the policy used to estimate natural media dimensions when real
// ones are not available (load failure, cross-origin restrictions, timeouts).
type Aspect struct {
	W, H float64
}

// DefaultAspect is 16:9.
var DefaultAspect = Aspect{W: 16, H: 9}

// Ratio returns width to height ratio, falling back to DefaultAspect for
// degenerate values.
func (a Aspect) Ratio() float64 {
	if a.W <= 0 || a.H <= 0 {
		return DefaultAspect.W / DefaultAspect.H
	}
	return a.W / a.H
}

// Estimate returns natural dimensions with the policy ratio sized to the
// container height.
func (a Aspect) Estimate(container Size) Size {
	h := container.H
	if h <= 0 {
		h = a.H
		if h <= 0 {
			h = DefaultAspect.H
		}
	}
	return Size{W: h * a.Ratio(), H: h}
}
