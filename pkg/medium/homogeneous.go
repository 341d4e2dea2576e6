package medium

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

var (
	// ErrInvalidCoefficient is returned for negative or non-finite coefficients
	ErrInvalidCoefficient = errors.New("invalid medium coefficient")
	// ErrInvalidAnisotropy is returned when |g| >= 1
	ErrInvalidAnisotropy = errors.New("invalid phase anisotropy")
)

// DefaultMaxBounces caps the scattering events per medium segment
const DefaultMaxBounces = 1024

// Homogeneous is a participating medium with constant coefficients and a
// Henyey-Greenstein phase function
type Homogeneous struct {
	SigmaA     core.Vec3 // absorption coefficient
	SigmaS     core.Vec3 // scattering coefficient
	SigmaT     core.Vec3 // extinction, SigmaA + SigmaS
	Emitted    core.Vec3 // emitted radiance per unit length
	Phase      HenyeyGreenstein
	MaxBounces int

	absorptionOnly bool
}

// Option configures a Homogeneous medium during creation
type Option func(*Homogeneous)

// WithEmission makes the medium emit radiance per unit length
func WithEmission(emitted core.Vec3) Option {
	return func(m *Homogeneous) {
		m.Emitted = emitted
	}
}

// WithMaxBounces limits the number of scattering events per segment
func WithMaxBounces(n int) Option {
	return func(m *Homogeneous) {
		m.MaxBounces = n
	}
}

// NewHomogeneous creates a homogeneous medium from absorption and scattering
// coefficients and the phase anisotropy g
func NewHomogeneous(sigmaA, sigmaS core.Vec3, g float64, opts ...Option) (*Homogeneous, error) {
	if !validCoefficient(sigmaA) {
		return nil, fmt.Errorf("%w: sigmaA = %v", ErrInvalidCoefficient, sigmaA)
	}
	if !validCoefficient(sigmaS) {
		return nil, fmt.Errorf("%w: sigmaS = %v", ErrInvalidCoefficient, sigmaS)
	}
	if math.Abs(g) >= 1 || math.IsNaN(g) {
		return nil, fmt.Errorf("%w: g = %g", ErrInvalidAnisotropy, g)
	}

	m := &Homogeneous{
		SigmaA:     sigmaA,
		SigmaS:     sigmaS,
		SigmaT:     sigmaA.Add(sigmaS),
		Phase:      HenyeyGreenstein{G: g},
		MaxBounces: DefaultMaxBounces,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.MaxBounces < 0 {
		return nil, fmt.Errorf("%w: max bounces %d is negative", ErrInvalidCoefficient, m.MaxBounces)
	}
	if !validCoefficient(m.Emitted) {
		return nil, fmt.Errorf("%w: emission = %v", ErrInvalidCoefficient, m.Emitted)
	}

	m.absorptionOnly = sigmaS.IsZero()

	core.Logger().Debug("homogeneous medium created", "sigmaT", m.SigmaT, "g", g, "absorptionOnly", m.absorptionOnly)
	return m, nil
}

func validCoefficient(v core.Vec3) bool {
	for _, c := range []float64{v.X, v.Y, v.Z} {
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// transmittance computes exp(-sigma*t) per channel, treating empty channels
// as fully transparent even over infinite distances
func transmittance(sigma core.Vec3, t float64) core.Vec3 {
	channel := func(s float64) float64 {
		if s == 0 {
			return 1
		}
		return math.Exp(-s * t)
	}
	return core.NewVec3(channel(sigma.X), channel(sigma.Y), channel(sigma.Z))
}

func component(v core.Vec3, i int) float64 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// SampleDistance samples a free-flight distance proportionally to the
// extinction of one randomly chosen color channel. The returned weight
// divides by the average density over all channels, so chromatic media stay
// unbiased.
func (m *Homogeneous) SampleDistance(event *transport.VolumeScatterEvent, state *transport.MediumState) bool {
	if state.Bounce > m.MaxBounces {
		return false
	}

	if m.absorptionOnly {
		if math.IsInf(event.MaxT, 1) {
			return false
		}
		event.T = event.MaxT
		event.Throughput = transmittance(m.SigmaT, event.MaxT)
		return true
	}

	state.Component = int(event.Sampler.Get1D() * 3)
	if state.Component > 2 {
		state.Component = 2
	}
	state.FirstScatter = false

	sigmaTc := component(m.SigmaT, state.Component)
	t := math.Inf(1)
	if sigmaTc > 0 {
		t = -math.Log(1-event.Sampler.Get1D()) / sigmaTc
	}

	exited := t >= event.MaxT
	if exited {
		if math.IsInf(event.MaxT, 1) {
			return false
		}
		event.T = event.MaxT
	} else {
		event.T = t
	}

	tr := transmittance(m.SigmaT, event.T)
	if exited {
		pdf := tr.Avg()
		if pdf == 0 {
			return false
		}
		event.Throughput = tr.Multiply(1 / pdf)
	} else {
		pdf := m.SigmaT.MultiplyVec(tr).Avg()
		if pdf == 0 {
			return false
		}
		event.Throughput = tr.MultiplyVec(m.SigmaS).Multiply(1 / pdf)
	}
	return true
}

// Transmittance follows Beer-Lambert over [0, event.MaxT]
func (m *Homogeneous) Transmittance(event *transport.VolumeScatterEvent) core.Vec3 {
	return transmittance(m.SigmaT, event.MaxT)
}

// Emission returns the emitted radiance of the segment divided by the
// distance sampling weight, so that multiplying by the path throughput
// yields an estimate of the emission integral. Channels that scatter pick
// up emission at scatter events; channels that only absorb carry zero
// throughput past a scatter event and collect their whole segment integral
// when the segment is left instead.
func (m *Homogeneous) Emission(event *transport.VolumeScatterEvent) core.Vec3 {
	if m.Emitted.IsZero() {
		return core.Vec3{}
	}

	exited := event.T >= event.MaxT
	channel := func(le, sigmaS, sigmaT float64) float64 {
		if sigmaS == 0 {
			if !exited {
				return 0
			}
			// segment integral over the exit transmittance
			if sigmaT == 0 {
				return le * event.T
			}
			return le * math.Expm1(sigmaT*event.T) / sigmaT
		}
		if exited {
			return 0
		}
		return le / sigmaS
	}
	return core.NewVec3(
		channel(m.Emitted.X, m.SigmaS.X, m.SigmaT.X),
		channel(m.Emitted.Y, m.SigmaS.Y, m.SigmaT.Y),
		channel(m.Emitted.Z, m.SigmaS.Z, m.SigmaT.Z),
	)
}

// Absorb terminates paths that exceed the scattering budget. Absorption
// itself is already part of the distance sampling weight.
func (m *Homogeneous) Absorb(event *transport.VolumeScatterEvent, state *transport.MediumState) bool {
	state.Bounce++
	return state.Bounce > m.MaxBounces
}

// Scatter samples the phase function. Importance sampling is exact, so the
// weight is one.
func (m *Homogeneous) Scatter(event *transport.VolumeScatterEvent) bool {
	wo, pdf := m.Phase.Sample(event.Wi, event.Sampler.Get2D())
	if pdf == 0 {
		return false
	}
	event.Wo = wo
	event.Pdf = pdf
	event.Throughput = core.Splat(1)
	return true
}

func (m *Homogeneous) PhaseEval(event *transport.VolumeScatterEvent) core.Vec3 {
	return core.Splat(m.Phase.Eval(event.Wi.Dot(event.Wo)))
}

func (m *Homogeneous) PhasePdf(event *transport.VolumeScatterEvent) float64 {
	return m.Phase.Eval(event.Wi.Dot(event.Wo))
}
