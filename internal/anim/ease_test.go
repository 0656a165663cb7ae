package anim

import (
	"errors"
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	curves := map[string]Easing{
		"linear":    Linear,
		"easeIn":    EaseIn,
		"easeOut":   EaseOut,
		"easeInOut": EaseInOut,
		"crumple":   CubicBezier(0.22, 1, 0.36, 1),
		"throw":     CubicBezier(0.16, 1, 0.3, 1),
	}

	for name, ease := range curves {
		if got := ease(0); got != 0 {
			t.Errorf("%s(0) = %v", name, got)
		}
		if got := ease(1); got != 1 {
			t.Errorf("%s(1) = %v", name, got)
		}
		prev := 0.0
		for i := 1; i <= 20; i++ {
			v := ease(float64(i) / 20)
			if v+1e-6 < prev {
				t.Errorf("%s not monotonic at step %d: %v < %v", name, i, v, prev)
			}
			prev = v
		}
	}
}

func TestEaseInOutIsSymmetric(t *testing.T) {
	if got := EaseInOut(0.5); math.Abs(got-0.5) > 1e-4 {
		t.Errorf("EaseInOut(0.5) = %v, want 0.5", got)
	}
}

func TestDecelerationCurvesFrontLoad(t *testing.T) {
	crumple := CubicBezier(0.22, 1, 0.36, 1)
	if got := crumple(0.25); got < 0.6 {
		t.Errorf("crumple curve should be past 60%% at a quarter, got %v", got)
	}
	if got := EaseOut(0.5); got <= 0.5 {
		t.Errorf("EaseOut(0.5) = %v, expected > 0.5", got)
	}
}

func TestParseEasing(t *testing.T) {
	for _, name := range []string{"linear", "easeIn", "easeOut", "easeInOut", "ease-in-out", "cubic-bezier(0.22, 1, 0.36, 1)", ""} {
		if _, err := ParseEasing(name); err != nil {
			t.Errorf("ParseEasing(%q) failed: %v", name, err)
		}
	}

	for _, name := range []string{"bouncy", "cubic-bezier(1,2,3)", "cubic-bezier(a,b,c,d)", "cubic-bezier(2,0,0.5,1)"} {
		_, err := ParseEasing(name)
		if !errors.Is(err, ErrUnknownEasing) {
			t.Errorf("ParseEasing(%q) error = %v, want ErrUnknownEasing", name, err)
		}
	}
}
