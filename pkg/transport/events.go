package transport

import "github.com/df07/go-light-transport/pkg/core"

// HitRecord describes a ray/primitive intersection
type HitRecord struct {
	Primitive Primitive
	BSDF      BSDF
	T         float64   // ray distance of the hit
	Point     core.Vec3 // world-space hit point
	W         core.Vec3 // direction of the ray that produced the hit
	Ng        core.Vec3 // geometric normal
	Ns        core.Vec3 // shading normal
	UV        core.Vec2
	Epsilon   float64 // offset for restarting rays at Point
	Backside  bool    // primitive cache: the ray hit the inside face
}

// SurfaceScatterEvent is the per-bounce scattering context at a surface
type SurfaceScatterEvent struct {
	Info          *HitRecord
	Sampler       core.Sampler
	Supplemental  core.Sampler
	Frame         core.TangentFrame
	Wi            core.Vec3 // local direction towards the previous vertex
	Wo            core.Vec3 // local outgoing direction
	Throughput    core.Vec3
	Pdf           float64
	RequestedLobe core.Lobes
	SampledLobe   core.Lobes
	FlippedFrame  bool
}

// MakeForwardEvent returns the pass-through configuration of the event.
// For forward events the transport direction does not matter since Wo = -Wi.
func (e SurfaceScatterEvent) MakeForwardEvent() SurfaceScatterEvent {
	forward := e
	forward.Wo = e.Wi.Negate()
	forward.RequestedLobe = core.ForwardLobe
	return forward
}

// VolumeScatterEvent is the per-bounce scattering context inside a medium
type VolumeScatterEvent struct {
	Sampler      core.Sampler
	Supplemental core.Sampler
	P            core.Vec3 // segment origin, moved to the scatter point once T is known
	Wi           core.Vec3 // propagation direction
	Wo           core.Vec3
	Throughput   core.Vec3
	T            float64
	MaxT         float64
	Pdf          float64
}

// NewVolumeScatterEvent creates an event for the segment starting at p
func NewVolumeScatterEvent(sampler, supplemental core.Sampler, throughput, p, wi core.Vec3, maxT float64) VolumeScatterEvent {
	return VolumeScatterEvent{
		Sampler:      sampler,
		Supplemental: supplemental,
		P:            p,
		Wi:           wi,
		Throughput:   throughput,
		MaxT:         maxT,
	}
}

// newSegmentEvent is used for transmittance-only queries
func newSegmentEvent(p, wi core.Vec3, maxT float64) VolumeScatterEvent {
	return VolumeScatterEvent{P: p, Wi: wi, MaxT: maxT, Throughput: core.Splat(1)}
}
