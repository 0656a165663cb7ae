package core

import (
	"fmt"

	"github.com/Rorical/PaperChat/internal/anim"
	"github.com/Rorical/PaperChat/internal/config"
	"github.com/Rorical/PaperChat/internal/models"
	"github.com/Rorical/PaperChat/internal/stage"
)

// Step is one channel animation inside a phase.
type Step struct {
	Channel   stage.Channel
	Animation anim.Animation
}

// PhasePlan is a bundle of steps started together and joined at a barrier.
type PhasePlan struct {
	Phase    models.Phase
	Duration float64
	Ease     string
	Burst    bool
	Steps    []Step
}

// Plan is the ordered list of animated phases. Reset is not part of it; the
// sequencer always remounts after the last phase.
type Plan []PhasePlan

// Total returns the nominal duration of the plan in time-units.
func (p Plan) Total() float64 {
	var total float64
	for _, ph := range p {
		total += ph.Duration
	}
	return total
}

// BuildPlan turns a profile into the fold, crumple and throw phases.
func BuildPlan(profile config.Profile) (Plan, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	foldEase, err := anim.ParseEasing(profile.Fold.Ease)
	if err != nil {
		return nil, fmt.Errorf("fold: %w", err)
	}
	crumpleEase, err := anim.ParseEasing(profile.Crumple.Ease)
	if err != nil {
		return nil, fmt.Errorf("crumple: %w", err)
	}
	throwEase, err := anim.ParseEasing(profile.Throw.Ease)
	if err != nil {
		return nil, fmt.Errorf("throw: %w", err)
	}

	return Plan{
		foldPhase(profile.Fold.Duration, profile.Fold.Ease, foldEase),
		crumplePhase(profile.Crumple.Duration, profile.Crumple.Ease, crumpleEase),
		throwPhase(profile.Throw.Duration, profile.Throw.Ease, throwEase),
	}, nil
}

// The chat bubble flattens into a sheet and its tail retracts.
func foldPhase(d float64, name string, ease anim.Easing) PhasePlan {
	return PhasePlan{
		Phase:    models.PhaseFold,
		Duration: d,
		Ease:     name,
		Steps: []Step{
			{stage.Shape, anim.Animation{Name: "fold", Duration: d, Ease: ease, Keyframes: []anim.Keyframes{
				anim.To(anim.Radius, 20, 16, 12, 8),
				anim.To(anim.RotateX, 0, 6, 8),
				anim.To(anim.RotateY, 0, -6, -10),
				anim.To(anim.RotateZ, 0, 0.2, -0.2),
				anim.To(anim.Skew, 0, 2, 3),
				anim.To(anim.ScaleY, 1, 0.96, 0.94, 0.95),
				anim.To(anim.ScaleX, 1, 1.04, 1.08, 1.1),
			}}},
			{stage.Tail, anim.Animation{Name: "tail-retract", Duration: d, Ease: ease, Keyframes: []anim.Keyframes{
				anim.To(anim.Opacity, 1, 0.5, 0),
				anim.To(anim.Scale, 1, 0.8, 0.6),
			}}},
			{stage.Shadow, anim.Animation{Name: "fold-shadow", Duration: d, Ease: ease, Keyframes: []anim.Keyframes{
				anim.To(anim.ShadowY, 8, 12),
				anim.To(anim.ShadowBlur, 20, 28),
				anim.To(anim.ShadowAlpha, 0.12, 0.16),
			}}},
		},
	}
}

// The sheet wobbles and balls up.
func crumplePhase(d float64, name string, ease anim.Easing) PhasePlan {
	return PhasePlan{
		Phase:    models.PhaseCrumple,
		Duration: d,
		Ease:     name,
		Steps: []Step{
			{stage.Shape, anim.Animation{Name: "crumple", Duration: d, Ease: ease, Keyframes: []anim.Keyframes{
				anim.To(anim.Radius, 8, 16, 24, 999),
				anim.To(anim.RotateZ, 0, 8, -10, 6, -8, 4, 0),
				anim.To(anim.Scale, 1.1, 0.96, 0.82, 0.64, 0.56),
				anim.To(anim.OffsetY, 0, -2, -4, -6),
			}}},
			{stage.Blur, anim.Animation{Name: "crumple-blur", Duration: d, Ease: anim.EaseOut, Keyframes: []anim.Keyframes{
				anim.To(anim.Blur, 0, 0.4, 0.8),
			}}},
			{stage.Shadow, anim.Animation{Name: "crumple-shadow", Duration: d, Ease: ease, Keyframes: []anim.Keyframes{
				anim.To(anim.ShadowY, 12, 18),
				anim.To(anim.ShadowBlur, 28, 40),
				anim.To(anim.ShadowAlpha, 0.18, 0.22),
			}}},
		},
	}
}

// The ball flies up and away while the particles scatter.
func throwPhase(d float64, name string, ease anim.Easing) PhasePlan {
	return PhasePlan{
		Phase:    models.PhaseThrow,
		Duration: d,
		Ease:     name,
		Burst:    true,
		Steps: []Step{
			{stage.Shape, anim.Animation{Name: "throw", Duration: d, Ease: ease, Keyframes: []anim.Keyframes{
				anim.To(anim.OffsetY, -6, -10, -16, -22),
				anim.To(anim.Scale, 0.56, 0.42, 0.28, 0.14, 0.06),
				anim.To(anim.RotateZ, 0, 40, 80, 120),
				anim.To(anim.Opacity, 1, 0.9, 0.75, 0),
			}}},
			{stage.Blur, anim.Animation{Name: "throw-blur", Duration: d, Ease: anim.EaseOut, Keyframes: []anim.Keyframes{
				anim.To(anim.Blur, 0.8, 1.2, 2),
			}}},
			{stage.Shadow, anim.Animation{Name: "throw-shadow", Duration: d, Ease: anim.EaseOut, Keyframes: []anim.Keyframes{
				anim.To(anim.ShadowY, 10),
				anim.To(anim.ShadowBlur, 26),
				anim.To(anim.ShadowAlpha, 0.08),
			}}},
		},
	}
}
