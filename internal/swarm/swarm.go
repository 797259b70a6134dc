// Package swarm simulates the particle field whose target configuration
// is driven by the gesture state: scattered across home positions or
// gathered on a sphere around a hand-controlled center.
package swarm

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"
)

// Mode is the swarm's target configuration state.
type Mode string

const (
	// ModeScattered means particles drift around their home positions.
	ModeScattered Mode = "scattered"
	// ModeGathering means particles are converging on the gather sphere.
	ModeGathering Mode = "gathering"
	// ModeGathered means every particle is within epsilon of its sphere
	// target.
	ModeGathered Mode = "gathered"
)

// goldenAngle spaces sphere targets so they never cluster at the poles.
var goldenAngle = math.Pi * (3 - math.Sqrt(5))

// Color is an RGB triple in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Particle is one point mass.
type Particle struct {
	Pos    r3.Vec
	Vel    r3.Vec
	Target r3.Vec
	Color  Color

	home  r3.Vec
	delay float64 // lag factor while gathered, scaled by distance from center
	phase float64 // wobble phase offset
}

// Config holds the simulator tunables.
type Config struct {
	Count  int     // number of particles
	Radius float64 // gather sphere radius

	GatherSpeed  float64 // per-tick lerp rate toward sphere targets
	ScatterSpeed float64 // per-tick lerp rate toward home, slower than gather
	LagWeight    float64 // how strongly the delay factor slows far particles

	Inertia float64 // center velocity gained per unit of center motion
	Damping float64 // center velocity retained per tick

	Epsilon float64 // max position error for ModeGathered

	HomeSpread    float64 // half-extent of the randomized home cube
	ScatterJitter float64 // fresh random offset magnitude on each scatter

	WobbleAmp  float64 // scattered floating wobble amplitude
	WobbleFreq float64 // scattered floating wobble frequency

	WarmColor  Color   // palette while gathering/gathered
	CoolColor  Color   // palette while scattered
	ColorSpeed float64 // per-tick color lerp rate

	Seed int64 // rng seed; 0 means nondeterministic
}

// DefaultConfig returns the simulator defaults.
func DefaultConfig() Config {
	return Config{
		Count:         800,
		Radius:        0.8,
		GatherSpeed:   0.12,
		ScatterSpeed:  0.04,
		LagWeight:     0.6,
		Inertia:       0.15,
		Damping:       0.9,
		Epsilon:       0.01,
		HomeSpread:    2.5,
		ScatterJitter: 0.3,
		WobbleAmp:     0.02,
		WobbleFreq:    2.0,
		WarmColor:     Color{R: 1.0, G: 0.55, B: 0.2},
		CoolColor:     Color{R: 0.25, G: 0.5, B: 1.0},
		ColorSpeed:    0.05,
	}
}

// Simulator owns the particle field. It is not safe for concurrent use;
// the engine steps it once per tick.
type Simulator struct {
	config    Config
	rng       *rand.Rand
	mode      Mode
	particles []Particle
	center    r3.Vec
	centerVel r3.Vec
	clock     float64
}

// New creates a scattered simulator with randomized home positions.
func New(config Config) *Simulator {
	if config.Count <= 0 {
		config.Count = DefaultConfig().Count
	}
	seed := config.Seed
	if seed == 0 {
		seed = rand.Int63()
	}

	s := &Simulator{
		config:    config,
		rng:       rand.New(rand.NewSource(seed)),
		particles: make([]Particle, config.Count),
	}

	for i := range s.particles {
		p := &s.particles[i]
		p.home = s.randomInCube(config.HomeSpread)
		p.Pos = p.home
		p.phase = s.rng.Float64() * 2 * math.Pi
		p.Color = config.CoolColor
	}

	s.enterScatter()
	return s
}

// Mode returns the current target configuration state.
func (s *Simulator) Mode() Mode {
	return s.mode
}

// Particles returns the particle slice for rendering. Callers must not
// mutate it.
func (s *Simulator) Particles() []Particle {
	return s.particles
}

// Gather retargets every particle onto a sphere of the configured radius
// around center, distributed by the golden angle so coverage stays
// near-uniform without polar clustering.
func (s *Simulator) Gather(center r3.Vec) {
	s.mode = ModeGathering
	s.center = center

	n := len(s.particles)
	maxDist := 0.0
	for i := range s.particles {
		p := &s.particles[i]

		phi := math.Acos(1 - 2*(float64(i)+0.5)/float64(n))
		theta := goldenAngle * float64(i)
		p.Target = r3.Add(center, r3.Vec{
			X: s.config.Radius * math.Sin(phi) * math.Cos(theta),
			Y: s.config.Radius * math.Sin(phi) * math.Sin(theta),
			Z: s.config.Radius * math.Cos(phi),
		})

		p.delay = r3.Norm(r3.Sub(p.Pos, center))
		if p.delay > maxDist {
			maxDist = p.delay
		}
	}

	// Normalize the lag factors so the farthest particle lags most.
	if maxDist > 0 {
		for i := range s.particles {
			s.particles[i].delay /= maxDist
		}
	}
}

// Scatter sends every particle back toward its home position with a fresh
// random jitter offset. The mode flips immediately, before particles
// visually arrive.
func (s *Simulator) Scatter() {
	s.enterScatter()
}

func (s *Simulator) enterScatter() {
	s.mode = ModeScattered
	s.centerVel = r3.Vec{}
	for i := range s.particles {
		p := &s.particles[i]
		p.Target = r3.Add(p.home, s.randomInCube(s.config.ScatterJitter))
		p.delay = 0
	}
}

// UpdateCenter moves the gather center, shifting every sphere target by
// the delta and feeding the damped inertia velocity that makes fast hand
// motion trail instead of snap.
func (s *Simulator) UpdateCenter(center r3.Vec) {
	if s.mode == ModeScattered {
		return
	}

	delta := r3.Sub(center, s.center)
	s.center = center
	s.centerVel = r3.Add(s.centerVel, r3.Scale(s.config.Inertia, delta))

	for i := range s.particles {
		s.particles[i].Target = r3.Add(s.particles[i].Target, delta)
	}
}

// Step advances the simulation one tick.
func (s *Simulator) Step() {
	s.clock += 1.0 / 60.0
	s.centerVel = r3.Scale(s.config.Damping, s.centerVel)

	gathering := s.mode != ModeScattered
	palette := s.config.CoolColor
	rate := s.config.ScatterSpeed
	if gathering {
		palette = s.config.WarmColor
		rate = s.config.GatherSpeed
	}

	maxErr := 0.0
	for i := range s.particles {
		p := &s.particles[i]

		step := rate
		if gathering {
			// Far particles approach more slowly, so they trail the
			// center visibly when it moves.
			step = rate * (1 - s.config.LagWeight*p.delay)
		}

		p.Vel = r3.Scale(step, r3.Sub(p.Target, p.Pos))
		if gathering {
			p.Vel = r3.Add(p.Vel, s.centerVel)
		}
		p.Pos = r3.Add(p.Pos, p.Vel)

		if !gathering && s.config.WobbleAmp > 0 {
			// Cosmetic floating wobble; not part of convergence state.
			w := s.clock*s.config.WobbleFreq + p.phase
			p.Pos = r3.Add(p.Pos, r3.Vec{
				X: s.config.WobbleAmp * math.Sin(w),
				Y: s.config.WobbleAmp * math.Cos(w*1.3),
				Z: s.config.WobbleAmp * math.Sin(w*0.7),
			})
		}

		if err := r3.Norm(r3.Sub(p.Target, p.Pos)); err > maxErr {
			maxErr = err
		}

		p.Color = lerpColor(p.Color, palette, s.config.ColorSpeed)
	}

	if s.mode == ModeGathering && maxErr < s.config.Epsilon {
		s.mode = ModeGathered
	}
}

// Center returns the current gather center.
func (s *Simulator) Center() r3.Vec {
	return s.center
}

func (s *Simulator) randomInCube(halfExtent float64) r3.Vec {
	return r3.Vec{
		X: (s.rng.Float64()*2 - 1) * halfExtent,
		Y: (s.rng.Float64()*2 - 1) * halfExtent,
		Z: (s.rng.Float64()*2 - 1) * halfExtent,
	}
}

func lerpColor(from, to Color, t float64) Color {
	return Color{
		R: from.R + (to.R-from.R)*t,
		G: from.G + (to.G-from.G)*t,
		B: from.B + (to.B-from.B)*t,
	}
}
