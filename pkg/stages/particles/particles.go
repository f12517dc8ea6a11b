// Package particles implements the rising bubble field drawn inside water text.
package particles

import (
	"math"
	"math/rand/v2"

	"github.com/user/timerreel/pkg/pipeline"
)

const (
	maxParticles   = 900
	pixelsPerPart  = 4500
	respawnMargin  = 12.0
	driftFrequency = 1.6
	driftScale     = 0.12
)

// RandomSource yields uniform values in [0,1).
type RandomSource interface {
	Float64() float64
}

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }

// DefaultSource returns a non-deterministic source.
func DefaultSource() RandomSource {
	return globalSource{}
}

// Particle is one bubble. Radius and Speed never change after seeding.
type Particle struct {
	X, Y   float64
	Radius float64
	Speed  float64
	Drift  float64
	Phase  float64
}

// Field is the set of particles of one render.
type Field struct {
	rnd       RandomSource
	particles []Particle
}

// Count returns the particle count for a frame size.
func Count(width, height int) int {
	return min(maxParticles, width*height/pixelsPerPart)
}

// New seeds count particles uniformly over a width x height frame.
// A nil source uses DefaultSource.
func New(count, width, height int, rnd RandomSource) *Field {
	if rnd == nil {
		rnd = DefaultSource()
	}
	if count < 0 {
		count = 0
	}
	f := &Field{rnd: rnd, particles: make([]Particle, count)}
	for i := range f.particles {
		f.particles[i] = Particle{
			X:      rnd.Float64() * float64(width),
			Y:      rnd.Float64() * float64(height),
			Radius: 2 + rnd.Float64()*7,
			Speed:  1 + rnd.Float64()*2.5,
			Drift:  0.4 + rnd.Float64()*1.6,
			Phase:  rnd.Float64() * 2 * math.Pi,
		}
	}
	return f
}

// Len returns the number of particles.
func (f *Field) Len() int {
	return len(f.particles)
}

// Particles returns the current particles. The slice must not be modified.
func (f *Field) Particles() []Particle {
	return f.particles
}

// Advance moves every particle one step upward with a sinusoidal drift.
// Particles that rise above region are respawned just below it.
func (f *Field) Advance(region pipeline.RectF, speedMultiplier, t float64) {
	for i := range f.particles {
		p := &f.particles[i]
		p.Y -= p.Speed * speedMultiplier
		p.X += math.Sin(t*driftFrequency+p.Phase) * p.Drift * driftScale * speedMultiplier
		if p.Y < region.Top-respawnMargin {
			p.Y = region.Bottom + respawnMargin
			p.X = region.Left + f.rnd.Float64()*region.Width()
		}
	}
}
