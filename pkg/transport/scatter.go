package transport

import "github.com/df07/go-light-transport/pkg/core"

// MakeLocalScatterEvent builds the shading frame for hit and the scattering
// context for the bounce. With two-sided shading, a backside hit on an
// opaque BSDF flips the frame so the shading hemisphere faces the viewer.
func (t *Tracer) MakeLocalScatterEvent(hit *HitRecord, ray core.Ray, sampler, supplemental core.Sampler) SurfaceScatterEvent {
	frame := hit.Primitive.TangentFrame(hit)

	hitBackside := frame.Normal.Dot(ray.Direction) > 0
	isTransmissive := hit.BSDF.Lobes().IsTransmissive()

	flipFrame := t.settings.EnableTwoSidedShading && hitBackside && !isTransmissive
	if flipFrame {
		frame = frame.Flipped()
	}

	return SurfaceScatterEvent{
		Info:          hit,
		Sampler:       sampler,
		Supplemental:  supplemental,
		Frame:         frame,
		Wi:            frame.ToLocal(ray.Direction.Negate()),
		Throughput:    core.Splat(1),
		RequestedLobe: core.AllLobes,
		FlippedFrame:  flipFrame,
	}
}

// IsConsistent rejects world direction w when the side of the geometric
// normal it points to disagrees with the side of the shading normal that
// event.Wo points to. Always true when consistency checks are disabled.
func (t *Tracer) IsConsistent(event *SurfaceScatterEvent, w core.Vec3) bool {
	if !t.settings.EnableConsistencyChecks {
		return true
	}
	geometricBackside := w.Dot(event.Info.Ng) < 0
	shadingBackside := (event.Wo.Z < 0) != event.FlippedFrame
	return geometricBackside == shadingBackside
}
