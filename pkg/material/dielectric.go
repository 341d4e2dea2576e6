package material

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// Dielectric represents a smooth interface like glass that can both reflect and refract
type Dielectric struct {
	MediumBoundary
	RefractiveIndex float64   // Index of refraction (e.g., 1.5 for glass)
	Tint            core.Vec3 // Transmission color, white for clear glass
}

// NewDielectric creates a new clear dielectric material
func NewDielectric(refractiveIndex float64) *Dielectric {
	return &Dielectric{RefractiveIndex: refractiveIndex, Tint: core.Splat(1)}
}

// WithMedia returns a copy of the dielectric enclosing interior
func (d *Dielectric) WithMedia(interior, exterior transport.Medium) *Dielectric {
	c := *d
	c.MediumBoundary = NewMediumBoundary(interior, exterior)
	return &c
}

func (d *Dielectric) Lobes() core.Lobes {
	return core.SpecularReflectionLobe | core.SpecularTransmissionLobe
}

// Eval is zero everywhere: both lobes are delta distributions
func (d *Dielectric) Eval(event *transport.SurfaceScatterEvent, adjoint bool) core.Vec3 {
	return core.Vec3{}
}

// Sample picks reflection or refraction with the Fresnel probability when
// both lobes are requested, otherwise weights the single requested lobe
func (d *Dielectric) Sample(event *transport.SurfaceScatterEvent, adjoint bool) bool {
	sampleR := event.RequestedLobe.Test(core.SpecularReflectionLobe)
	sampleT := event.RequestedLobe.Test(core.SpecularTransmissionLobe)
	if !sampleR && !sampleT {
		return false
	}

	// Determine if we're entering or exiting the material
	entering := event.Wi.Z > 0
	refractionRatio := d.RefractiveIndex
	if entering {
		refractionRatio = 1.0 / d.RefractiveIndex
	}

	cosThetaI := math.Abs(event.Wi.Z)
	sin2ThetaT := refractionRatio * refractionRatio * (1.0 - cosThetaI*cosThetaI)

	// Check for total internal reflection
	reflectance := 1.0
	cosThetaT := 0.0
	if sin2ThetaT < 1.0 {
		reflectance = Reflectance(cosThetaI, refractionRatio)
		cosThetaT = math.Sqrt(1.0 - sin2ThetaT)
	}

	var reflect bool
	switch {
	case sampleR && sampleT:
		reflect = event.Sampler.Get1D() < reflectance
		if reflect {
			event.Pdf = reflectance
			event.Throughput = core.Splat(1)
		} else {
			event.Pdf = 1.0 - reflectance
			event.Throughput = d.Tint
		}
	case sampleR:
		if reflectance == 0 {
			return false
		}
		reflect = true
		event.Pdf = 1
		event.Throughput = core.Splat(reflectance)
	default:
		if reflectance == 1 {
			return false
		}
		event.Pdf = 1
		event.Throughput = d.Tint.Multiply(1.0 - reflectance)
	}

	if reflect {
		event.Wo = reflectLocal(event.Wi)
		event.SampledLobe = core.SpecularReflectionLobe
	} else {
		event.Wo = core.NewVec3(-refractionRatio*event.Wi.X, -refractionRatio*event.Wi.Y, -math.Copysign(cosThetaT, event.Wi.Z))
		event.SampledLobe = core.SpecularTransmissionLobe
	}
	return true
}

func (d *Dielectric) Pdf(event *transport.SurfaceScatterEvent) float64 {
	return 0
}

// Reflectance calculates the Fresnel reflectance using Schlick's approximation
func Reflectance(cosine, refractionRatio float64) float64 {
	// Calculate R0 for normal incidence
	r0 := (1 - refractionRatio) / (1 + refractionRatio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}
