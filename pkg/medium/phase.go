package medium

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// HenyeyGreenstein is the single-lobe phase function with anisotropy G.
// Directions follow the propagation convention: cos θ is measured between
// the incoming propagation direction and the outgoing one, so G > 0 is
// forward scattering.
type HenyeyGreenstein struct {
	G float64
}

// Eval returns the phase function value for cos θ
func (p HenyeyGreenstein) Eval(cosTheta float64) float64 {
	g := p.G
	denom := 1 + g*g - 2*g*cosTheta
	return (1 - g*g) / (4 * math.Pi * denom * math.Sqrt(denom))
}

// Sample draws an outgoing direction around wi. The returned pdf equals
// Eval of the sampled cosine.
func (p HenyeyGreenstein) Sample(wi core.Vec3, sample core.Vec2) (core.Vec3, float64) {
	g := p.G

	var cosTheta float64
	if math.Abs(g) < 1e-3 {
		cosTheta = 1 - 2*sample.X
	} else {
		sqr := (1 - g*g) / (1 - g + 2*g*sample.X)
		cosTheta = (1 + g*g - sqr*sqr) / (2 * g)
	}
	cosTheta = math.Max(-1, math.Min(1, cosTheta))

	sinTheta := math.Sqrt(math.Max(0, 1-cosTheta*cosTheta))
	phi := 2 * math.Pi * sample.Y

	local := core.NewVec3(sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta)
	wo := core.NewTangentFrame(wi).ToGlobal(local)

	return wo, p.Eval(cosTheta)
}
