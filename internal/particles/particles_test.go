package particles

import (
	"math/rand/v2"
	"testing"
	"time"
)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(7, 42))
}

func TestNewBurstRanges(t *testing.T) {
	cfg := Config{Count: 12, MinDuration: 0.4, MaxDuration: 0.85}
	b := NewBurst(3, cfg, seeded(), time.Unix(0, 0))

	if b.ID != 3 {
		t.Errorf("ID = %d", b.ID)
	}
	if len(b.Particles) != 12 {
		t.Fatalf("expected 12 particles, got %d", len(b.Particles))
	}
	for i, p := range b.Particles {
		if p.DX < -10*spreadX || p.DX > 10*spreadX {
			t.Errorf("particle %d DX out of range: %v", i, p.DX)
		}
		if p.DY < -6*spreadY || p.DY > -2*spreadY {
			t.Errorf("particle %d DY out of range: %v", i, p.DY)
		}
		if p.Duration < 0.4 || p.Duration > 0.85 {
			t.Errorf("particle %d duration out of range: %v", i, p.Duration)
		}
		if p.Size < 2 || p.Size > 4 {
			t.Errorf("particle %d size out of range: %v", i, p.Size)
		}
		if p.Rotation < -45 || p.Rotation > 45 {
			t.Errorf("particle %d rotation out of range: %v", i, p.Rotation)
		}
	}
	if b.Lifetime() > 0.85 || b.Lifetime() < 0.4 {
		t.Errorf("lifetime = %v", b.Lifetime())
	}
}

func TestBurstsAreIndependent(t *testing.T) {
	rng := seeded()
	a := NewBurst(1, DefaultConfig(), rng, time.Now())
	b := NewBurst(2, DefaultConfig(), rng, time.Now())
	if a.Particles[0] == b.Particles[0] {
		t.Error("consecutive bursts reused the same particle parameters")
	}
}

func TestParticleLifecycle(t *testing.T) {
	p := Particle{DX: 8, DY: -2, Duration: 0.5, Size: 3, Rotation: 30}

	start, ok := p.At(0)
	if !ok {
		t.Fatal("particle should be alive at start")
	}
	if start.X != 0 || start.Y != 0 || start.Opacity != 0 {
		t.Errorf("unexpected start state: %+v", start)
	}
	if start.Scale != 0.6 {
		t.Errorf("start scale = %v, want 0.6", start.Scale)
	}

	mid, _ := p.At(0.25)
	if mid.Opacity <= 0.5 {
		t.Errorf("expected visible particle mid-flight, opacity %v", mid.Opacity)
	}

	end, ok := p.At(0.5)
	if !ok {
		t.Fatal("particle should still report at exactly its duration")
	}
	if end.X != 8 || end.Y != -2 || end.Opacity != 0 || end.Rotation != 30 {
		t.Errorf("unexpected end state: %+v", end)
	}

	if _, ok := p.At(0.51); ok {
		t.Error("particle should be gone after its duration")
	}
}
