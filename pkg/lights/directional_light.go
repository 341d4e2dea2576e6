package lights

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// DirectionalLight is a distant light arriving from a single direction with
// constant irradiance, like the sun. Connections to it never end, so
// shadow rays run to infinity.
//
// It has no Power method: its flux depends on the scene extent, so
// PowerWeighting gives it the unit fallback weight.
type DirectionalLight struct {
	Direction  core.Vec3 // normalized direction the light travels in
	Irradiance core.Vec3 // irradiance on a surface facing the light
}

// NewDirectionalLight creates a light travelling along direction
func NewDirectionalLight(direction, irradiance core.Vec3) *DirectionalLight {
	return &DirectionalLight{Direction: direction.Normalize(), Irradiance: irradiance}
}

func (l *DirectionalLight) Intersect(*core.Ray, *transport.HitRecord) bool { return false }

// IntersectionInfo describes the light as reached by a connection ray with
// an infinite FarT. There is no finite hit point.
func (l *DirectionalLight) IntersectionInfo(ray core.Ray, hit *transport.HitRecord) {
	hit.Primitive = l
	hit.T = ray.FarT
	hit.Point = ray.Origin
	hit.W = ray.Direction
	hit.Ng = l.Direction
	hit.Ns = hit.Ng
}

func (l *DirectionalLight) TangentFrame(hit *transport.HitRecord) core.TangentFrame {
	return core.NewTangentFrame(hit.Ng)
}

func (l *DirectionalLight) HitBackside(*transport.HitRecord) bool { return false }
func (l *DirectionalLight) IsSamplable() bool                     { return true }
func (l *DirectionalLight) IsDirac() bool                         { return true }
func (l *DirectionalLight) MakeSamplable(int)                     {}

// Emission is the irradiance, independent of distance
func (l *DirectionalLight) Emission(*transport.HitRecord) core.Vec3 {
	return l.Irradiance
}

// Bounds is empty, the light is not part of the intersectable geometry
func (l *DirectionalLight) Bounds() core.AABB {
	return core.AABB{}
}

func (l *DirectionalLight) SampleInboundDirection(worker int, sample *transport.LightSample) bool {
	if l.Irradiance.IsZero() {
		return false
	}
	sample.D = l.Direction.Negate()
	sample.Dist = math.Inf(1)
	sample.Pdf = 1.0
	return true
}

// InboundPdf is zero for the same reason as for point lights
func (l *DirectionalLight) InboundPdf(int, *transport.HitRecord, core.Vec3, core.Vec3) float64 {
	return 0
}

func (l *DirectionalLight) ApproximateRadiance(int, core.Vec3) (float64, bool) {
	return l.Irradiance.Avg(), true
}
