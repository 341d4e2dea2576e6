package transport

import "github.com/df07/go-light-transport/pkg/core"

// Scene is the read-only query surface the estimator needs. Implementations
// must be safe for concurrent use by multiple workers.
type Scene interface {
	// Intersect finds the closest hit on [ray.NearT, ray.FarT]. On a hit it
	// shrinks ray.FarT to the hit distance and fills hit completely.
	Intersect(ray *core.Ray, hit *HitRecord) bool
	// Lights returns every light that can be chosen for next-event estimation
	Lights() []Light
}

// Primitive is a piece of scene geometry
type Primitive interface {
	// Intersect tests this primitive alone. On a hit it shrinks ray.FarT and
	// caches whatever IntersectionInfo needs in hit.
	Intersect(ray *core.Ray, hit *HitRecord) bool
	// IntersectionInfo completes hit for the point at ray.FarT
	IntersectionInfo(ray core.Ray, hit *HitRecord)
	// TangentFrame returns the shading frame at hit
	TangentFrame(hit *HitRecord) core.TangentFrame
	// HitBackside reports whether the cached hit is on the inside face
	HitBackside(hit *HitRecord) bool
	// IsSamplable reports whether the primitive takes part in light sampling
	IsSamplable() bool
	// Emission returns radiance leaving the hit point towards -hit.W
	Emission(hit *HitRecord) core.Vec3
	Bounds() core.AABB
}

// Light is a primitive that can be sampled for next-event estimation
type Light interface {
	Primitive

	// IsDirac reports lights with zero solid angle measure (point,
	// directional). They cannot be hit by direction sampling.
	IsDirac() bool
	// MakeSamplable prepares per-worker sampling state. Called once per
	// worker before any other worker-indexed call.
	MakeSamplable(worker int)
	// SampleInboundDirection samples a direction from sample.P towards the
	// light, filling D, Dist and Pdf.
	SampleInboundDirection(worker int, sample *LightSample) bool
	// InboundPdf is the solid angle density of SampleInboundDirection
	// producing direction d from p, given that d hits the light at hit.
	InboundPdf(worker int, hit *HitRecord, p, d core.Vec3) float64
	// ApproximateRadiance estimates the light's contribution at p. The
	// boolean is false when no cheap estimate is available.
	ApproximateRadiance(worker int, p core.Vec3) (float64, bool)
}

// BSDF is a surface scattering model. All directions in the scatter event
// are in the local shading frame.
type BSDF interface {
	Lobes() core.Lobes
	// Eval returns f(wi, wo) * |cos(wo)| for the requested lobes
	Eval(event *SurfaceScatterEvent, adjoint bool) core.Vec3
	// Sample picks event.Wo and sets Throughput (f*cos/pdf), Pdf and SampledLobe
	Sample(event *SurfaceScatterEvent, adjoint bool) bool
	Pdf(event *SurfaceScatterEvent) float64
	// SelectMedium returns the medium on the side a direction leaves into.
	// backside is true when the direction points against the geometric normal.
	SelectMedium(current Medium, backside bool) Medium
}

// Medium is a participating medium. Implementations are shared between
// workers; per-path data lives in MediumState.
type Medium interface {
	// SampleDistance samples a free-flight distance on [0, event.MaxT],
	// setting event.T and replacing event.Throughput (the current path
	// throughput on input) with the flight weight.
	// event.T == event.MaxT means the boundary was reached.
	SampleDistance(event *VolumeScatterEvent, state *MediumState) bool
	// Transmittance over [0, event.MaxT]
	Transmittance(event *VolumeScatterEvent) core.Vec3
	Emission(event *VolumeScatterEvent) core.Vec3
	// Absorb reports whether the path is absorbed at the scatter point
	Absorb(event *VolumeScatterEvent, state *MediumState) bool
	// Scatter samples event.Wo from the phase function, setting event.Pdf
	// and replacing event.Throughput with the sample weight
	Scatter(event *VolumeScatterEvent) bool
	PhaseEval(event *VolumeScatterEvent) core.Vec3
	PhasePdf(event *VolumeScatterEvent) float64
}

// MediumState is per-path traversal state. It persists across consecutive
// bounces inside one medium and is reset at every surface crossing.
type MediumState struct {
	FirstScatter bool
	Component    int
	Bounce       int
}

// Reset prepares the state for a fresh medium segment
func (s *MediumState) Reset() {
	s.FirstScatter = true
	s.Component = 0
	s.Bounce = 0
}

// Camera connects scene points to the sensor
type Camera interface {
	SampleDirect(p core.Vec3, sampler core.Sampler) (LensSample, bool)
}

// LightSample is the in/out record for Light.SampleInboundDirection
type LightSample struct {
	Sampler core.Sampler
	P       core.Vec3 // shading point (input)
	D       core.Vec3 // direction towards the light
	Dist    float64   // distance to the light along D
	Pdf     float64   // solid angle density (1 for Dirac lights)
}

// LensSample is the result of connecting a point to the camera
type LensSample struct {
	D      core.Vec3 // direction from the point towards the lens
	Dist   float64
	Weight core.Vec3 // importance divided by the connection pdf
	Pixel  core.Vec2
}
