package anim

// Property identifies one animatable value of a visual channel.
type Property int

const (
	RotateX Property = iota
	RotateY
	RotateZ
	Skew
	ScaleX
	ScaleY
	Scale
	OffsetY
	Radius
	Opacity
	Blur
	ShadowY
	ShadowBlur
	ShadowAlpha

	numProperties
)

var propertyNames = [numProperties]string{
	RotateX:     "rotateX",
	RotateY:     "rotateY",
	RotateZ:     "rotateZ",
	Skew:        "skew",
	ScaleX:      "scaleX",
	ScaleY:      "scaleY",
	Scale:       "scale",
	OffsetY:     "y",
	Radius:      "radius",
	Opacity:     "opacity",
	Blur:        "blur",
	ShadowY:     "shadowY",
	ShadowBlur:  "shadowBlur",
	ShadowAlpha: "shadowAlpha",
}

func (p Property) String() string {
	if p < 0 || p >= numProperties {
		return "unknown"
	}
	return propertyNames[p]
}

// Props is the full property bag of a channel. Angles are degrees, offsets
// and radii are in the same pixel-like units the paper was designed in.
type Props [numProperties]float64

func (p Props) Get(prop Property) float64 { return p[prop] }

func (p *Props) Set(prop Property, v float64) { p[prop] = v }

// Resting values every channel returns to on remount.
const (
	RestingRadius      = 20
	RestingShadowY     = 8
	RestingShadowBlur  = 20
	RestingShadowAlpha = 0.12
)

func Resting() Props {
	var p Props
	p[ScaleX] = 1
	p[ScaleY] = 1
	p[Scale] = 1
	p[Opacity] = 1
	p[Radius] = RestingRadius
	p[ShadowY] = RestingShadowY
	p[ShadowBlur] = RestingShadowBlur
	p[ShadowAlpha] = RestingShadowAlpha
	return p
}
