package anim

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownEasing is returned by ParseEasing for names it does not recognize.
var ErrUnknownEasing = errors.New("unknown easing")

// Easing maps linear progress in [0,1] to eased progress.
type Easing func(t float64) float64

func Linear(t float64) float64 { return clamp01(t) }

var (
	EaseIn    = CubicBezier(0.42, 0, 1, 1)
	EaseOut   = CubicBezier(0, 0, 0.58, 1)
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1)
)

// CubicBezier builds a CSS-style timing function with control points
// (x1, y1) and (x2, y2). x1 and x2 must lie in [0,1].
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	if x1 == y1 && x2 == y2 {
		return Linear
	}
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return bezier(solveBezierX(t, x1, x2), y1, y2)
	}
}

func bezier(t, a1, a2 float64) float64 {
	return ((1-3*a2+3*a1)*t+(3*a2-6*a1))*t*t + 3*a1*t
}

func bezierSlope(t, a1, a2 float64) float64 {
	return 3*(1-3*a2+3*a1)*t*t + 2*(3*a2-6*a1)*t + 3*a1
}

// solveBezierX finds the curve parameter whose x equals x. Newton first,
// bisection when the slope flattens out.
func solveBezierX(x, x1, x2 float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		diff := bezier(t, x1, x2) - x
		if math.Abs(diff) < 1e-7 {
			return t
		}
		slope := bezierSlope(t, x1, x2)
		if math.Abs(slope) < 1e-6 {
			break
		}
		t -= diff / slope
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 40; i++ {
		v := bezier(t, x1, x2)
		if math.Abs(v-x) < 1e-7 {
			break
		}
		if v < x {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return t
}

// ParseEasing resolves a config value such as "easeInOut" or
// "cubic-bezier(0.22, 1, 0.36, 1)".
func ParseEasing(name string) (Easing, error) {
	trimmed := strings.TrimSpace(name)
	switch strings.ToLower(trimmed) {
	case "", "linear":
		return Linear, nil
	case "easein", "ease-in":
		return EaseIn, nil
	case "easeout", "ease-out":
		return EaseOut, nil
	case "easeinout", "ease-in-out":
		return EaseInOut, nil
	}

	if !strings.HasPrefix(trimmed, "cubic-bezier(") || !strings.HasSuffix(trimmed, ")") {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
	}

	args := strings.Split(trimmed[len("cubic-bezier("):len(trimmed)-1], ",")
	if len(args) != 4 {
		return nil, fmt.Errorf("%w: %q needs 4 control values", ErrUnknownEasing, name)
	}
	var points [4]float64
	for i, arg := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrUnknownEasing, name, err)
		}
		points[i] = v
	}
	if points[0] < 0 || points[0] > 1 || points[2] < 0 || points[2] > 1 {
		return nil, fmt.Errorf("%w: %q x control points must be within [0,1]", ErrUnknownEasing, name)
	}
	return CubicBezier(points[0], points[1], points[2], points[3]), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
