// Package particles generates the short-lived marks that scatter when the
// paper ball is thrown.
package particles

import (
	"math/rand/v2"
	"time"

	"github.com/Rorical/PaperChat/internal/anim"
)

// Horizontal and vertical cell scale applied to the raw random spread.
const (
	spreadX = 0.8
	spreadY = 0.5
)

type Config struct {
	Count       int
	MinDuration float64 // time-units
	MaxDuration float64
}

func DefaultConfig() Config {
	return Config{Count: 14, MinDuration: 0.45, MaxDuration: 0.85}
}

// Particle is one mark, travelling from the burst origin to (DX, DY).
type Particle struct {
	DX       float64
	DY       float64
	Duration float64
	Size     float64
	Rotation float64
}

// State is a particle sampled at a point in time.
type State struct {
	X        float64
	Y        float64
	Opacity  float64
	Scale    float64
	Rotation float64
}

// Burst is one batch of particles. A newer ID replaces an older batch.
type Burst struct {
	ID        int
	Started   time.Time
	Particles []Particle
}

func NewBurst(id int, cfg Config, rng *rand.Rand, now time.Time) Burst {
	particles := make([]Particle, cfg.Count)
	for i := range particles {
		particles[i] = Particle{
			DX:       between(rng, -10, 10) * spreadX,
			DY:       between(rng, -6, -2) * spreadY,
			Duration: between(rng, cfg.MinDuration, cfg.MaxDuration),
			Size:     between(rng, 2, 4),
			Rotation: between(rng, -45, 45),
		}
	}
	return Burst{ID: id, Started: now, Particles: particles}
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return rng.Float64()*(hi-lo) + lo
}

// Lifetime is how long the slowest particle of the burst stays visible.
func (b Burst) Lifetime() float64 {
	var longest float64
	for _, p := range b.Particles {
		longest = max(longest, p.Duration)
	}
	return longest
}

// At samples the particle elapsed time-units after the burst started.
func (p Particle) At(elapsed float64) (State, bool) {
	if elapsed < 0 || p.Duration <= 0 || elapsed > p.Duration {
		return State{}, false
	}
	progress := elapsed / p.Duration
	moved := anim.EaseOut(progress)
	return State{
		X:        p.DX * moved,
		Y:        p.DY * moved,
		Opacity:  anim.To(anim.Opacity, 0, 1, 0).At(0, progress, anim.EaseOut),
		Scale:    anim.To(anim.Scale, 0.6, p.Size/10, 0.2).At(0, progress, anim.EaseOut),
		Rotation: p.Rotation * moved,
	}, true
}
