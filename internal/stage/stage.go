// Package stage holds the visual channels of the paper widget and drives
// keyframe animations on them in wall-clock time.
package stage

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Rorical/PaperChat/internal/anim"
	"github.com/Rorical/PaperChat/internal/particles"
)

type Channel int

const (
	Shape Channel = iota
	Shadow
	Blur
	Tail

	numChannels
)

func (c Channel) String() string {
	switch c {
	case Shape:
		return "shape"
	case Shadow:
		return "shadow"
	case Blur:
		return "blur"
	case Tail:
		return "tail"
	}
	return "unknown"
}

// Channels lists every channel in render order.
func Channels() []Channel {
	return []Channel{Shape, Shadow, Blur, Tail}
}

type Options struct {
	TimeScale float64       // wall seconds per time-unit
	Frame     time.Duration // animation step interval
	Particles particles.Config
	Rand      *rand.Rand
}

// Snapshot is a consistent copy of the stage for rendering.
type Snapshot struct {
	Channels [numChannels]anim.Props
	InFlight [numChannels]string
	Cycle    int
	Burst    particles.Burst
	BurstAge float64 // time-units since the burst started
}

func (s Snapshot) Props(ch Channel) anim.Props {
	return s.Channels[ch]
}

type Stage struct {
	mu        sync.RWMutex
	channels  [numChannels]anim.Props
	inFlight  [numChannels]string
	cycle     int
	burst     particles.Burst
	timeScale float64
	frame     time.Duration
	particles particles.Config
	rng       *rand.Rand
	now       func() time.Time
}

func New(opts Options) *Stage {
	if opts.TimeScale <= 0 {
		opts.TimeScale = 1
	}
	if opts.Frame <= 0 {
		opts.Frame = time.Second / 60
	}
	if opts.Particles.Count <= 0 {
		opts.Particles = particles.DefaultConfig()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	s := &Stage{
		timeScale: opts.TimeScale,
		frame:     opts.Frame,
		particles: opts.Particles,
		rng:       opts.Rand,
		now:       time.Now,
	}
	s.Remount(0)
	return s
}

// Duration converts time-units to wall time.
func (s *Stage) Duration(units float64) time.Duration {
	return time.Duration(units * s.timeScale * float64(time.Second))
}

// Animate runs a on channel ch and returns once it has finished. It returns
// ctx.Err() if the context ends first, leaving the channel mid-animation.
func (s *Stage) Animate(ctx context.Context, ch Channel, a anim.Animation) error {
	total := s.Duration(a.Duration)

	s.mu.Lock()
	from := s.channels[ch]
	s.inFlight[ch] = a.Name
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		if s.inFlight[ch] == a.Name {
			s.inFlight[ch] = ""
		}
		s.mu.Unlock()
	}()

	start := s.now()
	ticker := time.NewTicker(s.frame)
	defer ticker.Stop()

	for {
		progress := 1.0
		if total > 0 {
			progress = min(1, float64(s.now().Sub(start))/float64(total))
		}

		frame := a.Frame(from, progress)
		s.mu.Lock()
		s.channels[ch] = frame
		s.mu.Unlock()

		if progress >= 1 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Burst replaces the current particle batch with a fresh one.
func (s *Stage) Burst() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.burst = particles.NewBurst(s.burst.ID+1, s.particles, s.rng, s.now())
	return s.burst.ID
}

// Remount discards the current paper and mounts a fresh one at resting
// values. Nothing is animated back.
func (s *Stage) Remount(cycle int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.channels {
		s.channels[i] = anim.Resting()
		s.inFlight[i] = ""
	}
	s.cycle = cycle
}

func (s *Stage) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Channels: s.channels,
		InFlight: s.inFlight,
		Cycle:    s.cycle,
		Burst:    s.burst,
	}
	if !s.burst.Started.IsZero() {
		snap.BurstAge = s.now().Sub(s.burst.Started).Seconds() / s.timeScale
	}
	return snap
}

// BurstVisible reports whether any particle of the current burst is alive.
func (s Snapshot) BurstVisible() bool {
	return s.Burst.ID > 0 && s.BurstAge <= s.Burst.Lifetime()
}
