package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// Lambertian represents a perfectly diffuse reflector
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or patterned)
}

// NewLambertian creates a new lambertian material with solid color
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with a color source
func NewTexturedLambertian(albedo ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Lobes implements transport.BSDF
func (l *Lambertian) Lobes() core.Lobes {
	return core.DiffuseReflectionLobe
}

// Eval returns albedo/π times the outgoing cosine
func (l *Lambertian) Eval(event *transport.SurfaceScatterEvent, adjoint bool) core.Vec3 {
	if !event.RequestedLobe.Test(core.DiffuseReflectionLobe) {
		return core.Vec3{}
	}
	if event.Wi.Z <= 0 || event.Wo.Z <= 0 {
		return core.Vec3{} // Below surface
	}
	return albedoAt(l.Albedo, event).Multiply(event.Wo.Z / math.Pi)
}

// Sample draws a cosine-weighted direction. The weight f*cos/pdf reduces
// to the albedo.
func (l *Lambertian) Sample(event *transport.SurfaceScatterEvent, adjoint bool) bool {
	if !event.RequestedLobe.Test(core.DiffuseReflectionLobe) || event.Wi.Z <= 0 {
		return false
	}

	event.Wo = core.CosineHemisphere(event.Sampler.Get2D())
	event.Pdf = core.CosineHemispherePdf(event.Wo)
	if event.Pdf == 0 {
		return false
	}
	event.Throughput = albedoAt(l.Albedo, event)
	event.SampledLobe = core.DiffuseReflectionLobe
	return true
}

// Pdf is the cosine-weighted hemisphere density cos(θ)/π
func (l *Lambertian) Pdf(event *transport.SurfaceScatterEvent) float64 {
	if !event.RequestedLobe.Test(core.DiffuseReflectionLobe) || event.Wi.Z <= 0 {
		return 0
	}
	return core.CosineHemispherePdf(event.Wo)
}

// SelectMedium keeps the current medium; opaque surfaces are not crossed
func (l *Lambertian) SelectMedium(current transport.Medium, backside bool) transport.Medium {
	return current
}
