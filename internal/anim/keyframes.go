package anim

// Keyframes drives one property through an ordered list of values. Offsets
// are the relative times (0..1) of each value; when omitted the values are
// spaced evenly. A single value animates from the channel's current value.
type Keyframes struct {
	Property Property
	Values   []float64
	Offsets  []float64
}

// To is shorthand for a keyframe list.
func To(prop Property, values ...float64) Keyframes {
	return Keyframes{Property: prop, Values: values}
}

// At samples the keyframes at progress with ease applied per segment.
func (k Keyframes) At(from, progress float64, ease Easing) float64 {
	values := k.Values
	switch len(values) {
	case 0:
		return from
	case 1:
		values = []float64{from, values[0]}
	}
	if ease == nil {
		ease = Linear
	}

	if progress <= 0 {
		return values[0]
	}
	last := len(values) - 1
	if progress >= 1 {
		return values[last]
	}

	offsets := k.Offsets
	if len(offsets) != len(values) {
		offsets = evenOffsets(len(values))
	}

	for i := 0; i < last; i++ {
		start, end := offsets[i], offsets[i+1]
		if progress > end && i < last-1 {
			continue
		}
		span := end - start
		if span <= 0 {
			return values[i+1]
		}
		local := ease(clamp01((progress - start) / span))
		return lerp(values[i], values[i+1], local)
	}
	return values[last]
}

func evenOffsets(n int) []float64 {
	offsets := make([]float64, n)
	if n == 1 {
		return offsets
	}
	for i := range offsets {
		offsets[i] = float64(i) / float64(n-1)
	}
	return offsets
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Animation animates a set of properties over Duration time-units.
type Animation struct {
	Name      string
	Duration  float64
	Ease      Easing
	Keyframes []Keyframes
}

// Frame returns the props at progress, starting from the values the channel
// held when the animation began. Properties without keyframes are untouched.
func (a Animation) Frame(from Props, progress float64) Props {
	out := from
	for _, k := range a.Keyframes {
		out.Set(k.Property, k.At(from.Get(k.Property), progress, a.Ease))
	}
	return out
}
