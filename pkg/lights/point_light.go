package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// PointLight is an isotropic or spot-shaped light at a single point. It has
// zero solid angle, so it is only reachable through light sampling.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3 // radiant intensity along the axis

	spot            bool
	direction       core.Vec3 // Normalized direction vector (from -> to)
	cosTotalWidth   float64   // Cosine of total cone angle (outer edge)
	cosFalloffStart float64   // Cosine of falloff start angle (inner cone)
}

// NewPointLight creates a light radiating intensity equally in all directions
func NewPointLight(position, intensity core.Vec3) *PointLight {
	return &PointLight{Position: position, Intensity: intensity}
}

// NewSpotLight creates a point light aimed from -> to
// coneAngleDegrees: total cone angle in degrees
// coneDeltaAngleDegrees: falloff transition angle in degrees
func NewSpotLight(from, to, intensity core.Vec3, coneAngleDegrees, coneDeltaAngleDegrees float64) *PointLight {
	totalWidthRadians := coneAngleDegrees * math.Pi / 180.0
	falloffStartRadians := (coneAngleDegrees - coneDeltaAngleDegrees) * math.Pi / 180.0

	return &PointLight{
		Position:        from,
		Intensity:       intensity,
		spot:            true,
		direction:       to.Subtract(from).Normalize(),
		cosTotalWidth:   math.Cos(totalWidthRadians),
		cosFalloffStart: math.Cos(falloffStartRadians),
	}
}

// falloff returns the spot attenuation for a direction leaving the light
func (l *PointLight) falloff(dir core.Vec3) float64 {
	if !l.spot {
		return 1.0
	}

	cosAngle := l.direction.Dot(dir)
	if cosAngle < l.cosTotalWidth {
		return 0.0
	}
	if cosAngle >= l.cosFalloffStart {
		return 1.0
	}

	// Smooth quartic transition between falloff start and total width
	delta := (cosAngle - l.cosTotalWidth) / (l.cosFalloffStart - l.cosTotalWidth)
	return delta * delta * delta * delta
}

func (l *PointLight) Intersect(*core.Ray, *transport.HitRecord) bool { return false }

// IntersectionInfo describes the light as reached by a connection ray whose
// FarT ends exactly at the light
func (l *PointLight) IntersectionInfo(ray core.Ray, hit *transport.HitRecord) {
	hit.Primitive = l
	hit.T = ray.FarT
	hit.Point = l.Position
	hit.W = ray.Direction
	hit.Ng = ray.Direction.Negate()
	hit.Ns = hit.Ng
}

func (l *PointLight) TangentFrame(hit *transport.HitRecord) core.TangentFrame {
	return core.NewTangentFrame(hit.Ng)
}

func (l *PointLight) HitBackside(*transport.HitRecord) bool { return false }
func (l *PointLight) IsSamplable() bool                     { return true }
func (l *PointLight) IsDirac() bool                         { return true }
func (l *PointLight) MakeSamplable(int)                     {}

// Emission returns the incident radiance proxy I/d² seen from the start of
// the connection ray
func (l *PointLight) Emission(hit *transport.HitRecord) core.Vec3 {
	if hit.T <= 0 {
		return core.Vec3{}
	}
	f := l.falloff(hit.W.Negate())
	return l.Intensity.Multiply(f / (hit.T * hit.T))
}

func (l *PointLight) Bounds() core.AABB {
	return core.NewAABB(l.Position, l.Position)
}

func (l *PointLight) SampleInboundDirection(worker int, sample *transport.LightSample) bool {
	toLight := l.Position.Subtract(sample.P)
	dist := toLight.Length()
	if dist == 0 {
		return false
	}

	sample.D = toLight.Multiply(1.0 / dist)
	sample.Dist = dist
	sample.Pdf = 1.0
	return l.falloff(sample.D.Negate()) > 0
}

// InboundPdf is zero: no direction sampler other than the light itself can
// produce the exact direction to a point
func (l *PointLight) InboundPdf(int, *transport.HitRecord, core.Vec3, core.Vec3) float64 {
	return 0
}

func (l *PointLight) ApproximateRadiance(worker int, p core.Vec3) (float64, bool) {
	toPoint := p.Subtract(l.Position)
	d2 := toPoint.LengthSquared()
	if d2 == 0 {
		return 0, false
	}
	return l.Intensity.Avg() * l.falloff(toPoint.Normalize()) / d2, true
}

// Power is the total emitted flux
func (l *PointLight) Power() float64 {
	if !l.spot {
		return 4 * math.Pi * l.Intensity.Avg()
	}
	// Average the full-intensity and cutoff cones for the falloff band
	return 2 * math.Pi * (1 - 0.5*(l.cosFalloffStart+l.cosTotalWidth)) * l.Intensity.Avg()
}
