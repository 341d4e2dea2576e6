package transport

import "github.com/df07/go-light-transport/pkg/core"

func (t *Tracer) volumeLightSample(event VolumeScatterEvent, light Light, medium Medium, performMIS bool, bounce int, parentRay core.Ray) core.Vec3 {
	sample := LightSample{Sampler: event.Sampler, P: event.P}
	if !light.SampleInboundDirection(t.worker, &sample) || sample.Pdf == 0 {
		return core.Vec3{}
	}
	event.Wo = sample.D

	f := medium.PhaseEval(&event)
	if f.IsZero() {
		return core.Vec3{}
	}

	ray := parentRay.Scatter(sample.P, sample.D, 0)
	ray.Primary = false

	var hit HitRecord
	e := t.AttenuatedEmission(light, medium, sample.Dist, &hit, bounce, ray)
	if e.IsZero() {
		return core.Vec3{}
	}

	lightF := f.MultiplyVec(e).Multiply(1.0 / sample.Pdf)

	if !light.IsDirac() && performMIS {
		lightF = lightF.Multiply(core.PowerHeuristic(sample.Pdf, medium.PhasePdf(&event)))
	}

	return lightF
}

func (t *Tracer) volumePhaseSample(light Light, event VolumeScatterEvent, medium Medium, bounce int, parentRay core.Ray) core.Vec3 {
	if !medium.Scatter(&event) {
		return core.Vec3{}
	}
	if event.Throughput.IsZero() {
		return core.Vec3{}
	}

	ray := parentRay.Scatter(event.P, event.Wo, 0)
	ray.Primary = false

	var hit HitRecord
	e := t.AttenuatedEmission(light, medium, -1.0, &hit, bounce, ray)
	if e.IsZero() {
		return core.Vec3{}
	}

	phaseF := e.MultiplyVec(event.Throughput)
	return phaseF.Multiply(core.PowerHeuristic(event.Pdf, light.InboundPdf(t.worker, &hit, event.P, event.Wo)))
}

// VolumeSampleDirect estimates direct lighting from one given light at a
// point inside medium, combining light and phase function sampling
func (t *Tracer) VolumeSampleDirect(light Light, event *VolumeScatterEvent, medium Medium, bounce int, parentRay core.Ray) core.Vec3 {
	result := t.volumeLightSample(*event, light, medium, true, bounce, parentRay)
	if !light.IsDirac() {
		result = result.Add(t.volumePhaseSample(light, *event, medium, bounce, parentRay))
	}
	return result
}

// VolumeEstimateDirect picks a light for the scatter point and returns its
// direct lighting contribution divided by the selection probability
func (t *Tracer) VolumeEstimateDirect(event *VolumeScatterEvent, medium Medium, bounce int, parentRay core.Ray) core.Vec3 {
	light, weight, ok := t.ChooseLight(event.Sampler, event.P)
	if !ok {
		return core.Vec3{}
	}
	return t.VolumeSampleDirect(light, event, medium, bounce, parentRay).Multiply(weight)
}
