package geom

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 5, 0, 10, 5},
		{"below", -3, 0, 10, 0},
		{"above", 42, 0, 10, 10},
		{"on lower bound", 0, 0, 10, 0},
		{"on upper bound", 10, 0, 10, 10},
		{"degenerate range", 7, 3, 3, 3},
		{"swapped bounds", 7, 10, 0, 7},
		{"nan", math.NaN(), 1, 2, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
			}
		})
	}
}

func TestClamp_TotalAndIdempotent(t *testing.T) {
	values := []float64{-1e9, -250.5, -1, -0.0001, 0, 0.5, 1, 33.3, 99.999, 100, 100.0001, 1e9}
	bounds := [][2]float64{{0, 100}, {-50, 50}, {-1e6, 0}, {3, 3}, {0.25, 0.75}}
	for _, b := range bounds {
		for _, v := range values {
			c := Clamp(v, b[0], b[1])
			if c < b[0] || c > b[1] {
				t.Fatalf("Clamp(%v, %v, %v) = %v is out of range", v, b[0], b[1], c)
			}
			if cc := Clamp(c, b[0], b[1]); cc != c {
				t.Fatalf("Clamp is not idempotent for %v in %v: %v != %v", v, b, cc, c)
			}
		}
	}
}

func TestCoverBleed_Example(t *testing.T) {
	w, h := CoverBleed(1920, 1080, 1080, 1350, 2)
	if w != 2402 || h != 1352 {
		t.Fatalf("CoverBleed() = %vx%v, want 2402x1352", w, h)
	}
}

func TestCoverBleed_NeverUnderfills(t *testing.T) {
	dims := []float64{1, 3, 7.5, 99, 333.33, 720, 1080, 1350, 1920, 4096}
	for _, nw := range dims {
		for _, nh := range dims {
			for _, cw := range dims {
				for _, ch := range dims {
					for _, bleed := range []float64{0, 2} {
						w, h := CoverBleed(nw, nh, cw, ch, bleed)
						if w < cw || h < ch {
							t.Fatalf("CoverBleed(%v, %v, %v, %v, %v) = %vx%v underfills", nw, nh, cw, ch, bleed, w, h)
						}
					}
				}
			}
		}
	}
}

func TestCoverBleed_KeepsAspect(t *testing.T) {
	// covering axis is exact, other axis overflows
	w, h := CoverBleed(1000, 1000, 400, 300, 0)
	if w != 400 || h != 400 {
		t.Fatalf("CoverBleed() = %vx%v, want 400x400", w, h)
	}
}

func TestOffsetPercentRoundTrip(t *testing.T) {
	const container, display = 1080.0, 2402.0
	min := MinOffset(container, display)
	if min != -1322 {
		t.Fatalf("MinOffset() = %v, want -1322", min)
	}
	for _, pct := range []float64{0, 12.5, 50, 87.25, 100} {
		off := OffsetFromPercent(pct, container, display)
		if off > 0 || off < min {
			t.Fatalf("OffsetFromPercent(%v) = %v is outside [%v, 0]", pct, off, min)
		}
		back, ok := PercentFromOffset(off, min)
		if !ok {
			t.Fatalf("PercentFromOffset(%v, %v) reported no slack", off, min)
		}
		if math.Abs(back-pct) > 1e-9 {
			t.Errorf("round trip %v -> %v -> %v", pct, off, back)
		}
	}
}

func TestPercentFromOffset_NoSlack(t *testing.T) {
	if _, ok := PercentFromOffset(0, 0); ok {
		t.Error("expected no slack for zero min offset")
	}
	if _, ok := PercentFromOffset(-5, MinOffset(100, 90)); ok {
		t.Error("expected no slack when display is smaller than container")
	}
}

func TestAspectEstimate(t *testing.T) {
	got := DefaultAspect.Estimate(Size{W: 1080, H: 1350})
	if got.H != 1350 || math.Abs(got.W-2400) > 1e-9 {
		t.Errorf("Estimate() = %+v, want 2400x1350", got)
	}
	got = Aspect{W: 4, H: 3}.Estimate(Size{})
	if got.IsZero() {
		t.Errorf("Estimate() for empty container = %+v, want non-zero", got)
	}
	if r := (Aspect{}).Ratio(); math.Abs(r-16.0/9.0) > 1e-12 {
		t.Errorf("Ratio() for zero aspect = %v, want 16/9", r)
	}
}
