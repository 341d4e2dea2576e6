package transport

import "github.com/df07/go-light-transport/pkg/core"

// lightSample is the light-driven strategy of surface next-event estimation
func (t *Tracer) lightSample(light Light, event SurfaceScatterEvent, medium Medium, bounce int, parentRay core.Ray) core.Vec3 {
	sample := LightSample{Sampler: event.Sampler, P: event.Info.Point}
	if !light.SampleInboundDirection(t.worker, &sample) || sample.Pdf == 0 {
		return core.Vec3{}
	}

	event.Wo = event.Frame.ToLocal(sample.D)
	if !t.IsConsistent(&event, sample.D) {
		return core.Vec3{}
	}

	geometricBackside := sample.D.Dot(event.Info.Ng) < 0
	medium = event.Info.BSDF.SelectMedium(medium, geometricBackside)

	event.RequestedLobe = core.AllButSpecular

	f := event.Info.BSDF.Eval(&event, false)
	if f.IsZero() {
		return core.Vec3{}
	}

	ray := parentRay.Scatter(sample.P, sample.D, event.Info.Epsilon)
	ray.Primary = false

	var hit HitRecord
	e := t.AttenuatedEmission(light, medium, sample.Dist, &hit, bounce, ray)
	if e.IsZero() {
		return core.Vec3{}
	}

	lightF := f.MultiplyVec(e).Multiply(1.0 / sample.Pdf)

	// Dirac lights have no density to mix with
	if !light.IsDirac() {
		lightF = lightF.Multiply(core.PowerHeuristic(sample.Pdf, event.Info.BSDF.Pdf(&event)))
	}

	return lightF
}

// bsdfSample is the BSDF-driven strategy of surface next-event estimation.
// It only counts hits on light itself.
func (t *Tracer) bsdfSample(light Light, event SurfaceScatterEvent, medium Medium, bounce int, parentRay core.Ray) core.Vec3 {
	event.RequestedLobe = core.AllButSpecular
	if !event.Info.BSDF.Sample(&event, false) {
		return core.Vec3{}
	}
	if event.Throughput.IsZero() {
		return core.Vec3{}
	}

	wo := event.Frame.ToGlobal(event.Wo)
	if !t.IsConsistent(&event, wo) {
		return core.Vec3{}
	}

	geometricBackside := wo.Dot(event.Info.Ng) < 0
	medium = event.Info.BSDF.SelectMedium(medium, geometricBackside)

	ray := parentRay.Scatter(event.Info.Point, wo, event.Info.Epsilon)
	ray.Primary = false

	var hit HitRecord
	e := t.AttenuatedEmission(light, medium, -1.0, &hit, bounce, ray)
	if e.IsZero() {
		return core.Vec3{}
	}

	bsdfF := e.MultiplyVec(event.Throughput)
	return bsdfF.Multiply(core.PowerHeuristic(event.Pdf, light.InboundPdf(t.worker, &hit, event.Info.Point, wo)))
}

// SampleDirect estimates direct lighting from one given light at a surface,
// combining light and BSDF sampling. Purely specular and purely forward
// BSDFs get nothing here; path continuation covers them.
func (t *Tracer) SampleDirect(light Light, event *SurfaceScatterEvent, medium Medium, bounce int, parentRay core.Ray) core.Vec3 {
	lobes := event.Info.BSDF.Lobes()
	if lobes.IsPureSpecular() || lobes.IsForward() {
		return core.Vec3{}
	}

	result := t.lightSample(light, *event, medium, bounce, parentRay)
	if !light.IsDirac() {
		result = result.Add(t.bsdfSample(light, *event, medium, bounce, parentRay))
	}

	return result
}

// EstimateDirect picks a light for the shading point and returns its
// direct lighting contribution divided by the selection probability
func (t *Tracer) EstimateDirect(event *SurfaceScatterEvent, medium Medium, bounce int, parentRay core.Ray) core.Vec3 {
	light, weight, ok := t.ChooseLight(event.Sampler, event.Info.Point)
	if !ok {
		return core.Vec3{}
	}
	return t.SampleDirect(light, event, medium, bounce, parentRay).Multiply(weight)
}

// LensSample connects a surface vertex to the camera. It returns the
// contribution weight of the connection and the pixel it lands on.
func (t *Tracer) LensSample(camera Camera, event *SurfaceScatterEvent, medium Medium, bounce int, parentRay core.Ray) (core.Vec3, core.Vec2, bool) {
	sample, ok := camera.SampleDirect(event.Info.Point, event.Sampler)
	if !ok {
		return core.Vec3{}, core.Vec2{}, false
	}

	local := *event
	local.Wo = local.Frame.ToLocal(sample.D)
	if !t.IsConsistent(&local, sample.D) {
		return core.Vec3{}, core.Vec2{}, false
	}

	geometricBackside := sample.D.Dot(local.Info.Ng) < 0
	medium = local.Info.BSDF.SelectMedium(medium, geometricBackside)

	local.RequestedLobe = core.AllButSpecular

	f := local.Info.BSDF.Eval(&local, true)
	if f.IsZero() {
		return core.Vec3{}, core.Vec2{}, false
	}

	ray := parentRay.Scatter(local.Info.Point, sample.D, local.Info.Epsilon)
	ray.Primary = false
	ray.FarT = sample.Dist

	transmittance := t.GeneralizedShadowRay(ray, medium, nil, bounce)
	if transmittance.IsZero() {
		return core.Vec3{}, core.Vec2{}, false
	}

	return f.MultiplyVec(transmittance).MultiplyVec(sample.Weight), sample.Pixel, true
}
