package transport

import "github.com/df07/go-light-transport/pkg/core"

// PathState is the state a path carries between bounces. Handlers take it
// by value and return the updated state.
type PathState struct {
	Ray         core.Ray
	Medium      Medium // nil in vacuum
	MediumState MediumState
	Throughput  core.Vec3
	Emission    core.Vec3 // radiance accumulated so far
	WasSpecular bool      // the last scattering decision was specular
	HitSurface  bool      // the last segment ended on a surface
}

// NewPathState starts a path along ray inside medium
func NewPathState(ray core.Ray, medium Medium) PathState {
	state := PathState{
		Ray:         ray,
		Medium:      medium,
		Throughput:  core.Splat(1),
		WasSpecular: true,
		HitSurface:  true,
	}
	state.MediumState.Reset()
	return state
}

// HandleVolume advances the path through its current medium along
// path.Ray, up to path.Ray.FarT. If the medium scatters before the
// boundary, the path continues from the scatter point with
// HitSurface false; otherwise the segment reached the boundary and
// HitSurface is true. The boolean is false when the path terminates.
func (t *Tracer) HandleVolume(sampler, supplemental core.Sampler, path PathState, bounce int, adjoint, enableLightSampling bool) (PathState, bool) {
	medium := path.Medium
	event := NewVolumeScatterEvent(sampler, supplemental, path.Throughput, path.Ray.Origin, path.Ray.Direction, path.Ray.FarT)

	if !medium.SampleDistance(&event, &path.MediumState) {
		return path, false
	}
	path.Throughput = path.Throughput.MultiplyVec(event.Throughput)
	event.Throughput = core.Splat(1)

	if !adjoint && bounce >= t.settings.MinBounces {
		path.Emission = path.Emission.Add(path.Throughput.MultiplyVec(medium.Emission(&event)))
	}

	if !enableLightSampling {
		path.WasSpecular = !path.HitSurface
	}

	if event.T >= event.MaxT {
		path.HitSurface = true
		return path, true
	}

	event.P = event.P.Add(event.Wi.Multiply(event.T))

	if !adjoint && enableLightSampling && bounce < t.settings.MaxBounces {
		path.WasSpecular = false
		direct := t.VolumeEstimateDirect(&event, medium, bounce+1, path.Ray)
		path.Emission = path.Emission.Add(path.Throughput.MultiplyVec(direct))
	}

	if medium.Absorb(&event, &path.MediumState) {
		return path, false
	}
	if !medium.Scatter(&event) {
		return path, false
	}

	path.Ray = path.Ray.Scatter(event.P, event.Wo, 0)
	path.Ray.Primary = false
	path.Throughput = path.Throughput.MultiplyVec(event.Throughput)
	path.HitSurface = false

	return path, true
}

// HandleSurface scatters the path at the surface described by event, which
// must have been built with MakeLocalScatterEvent for the hit at the end of
// path.Ray. Transparent surfaces are passed through stochastically with
// probability equal to the average forward transmittance. Otherwise emission
// and direct lighting are accumulated and the BSDF picks the next direction.
func (t *Tracer) HandleSurface(event *SurfaceScatterEvent, path PathState, bounce int, adjoint, enableLightSampling bool) (PathState, bool) {
	hit := event.Info
	bsdf := hit.BSDF

	forward := event.MakeForwardEvent()
	transparency := bsdf.Eval(&forward, false)
	transparencyScalar := transparency.Avg()

	var wo core.Vec3
	if transparencyScalar > 0 && event.Supplemental.Get1D() < transparencyScalar {
		wo = path.Ray.Direction
		path.Throughput = path.Throughput.MultiplyVec(transparency.Multiply(1.0 / transparencyScalar))
	} else {
		if !adjoint {
			if enableLightSampling {
				// samplable emitters were already counted by the MIS connection
				if (path.WasSpecular || !hit.Primitive.IsSamplable()) && bounce >= t.settings.MinBounces {
					path.Emission = path.Emission.Add(hit.Primitive.Emission(hit).MultiplyVec(path.Throughput))
				}
				if bounce < t.settings.MaxBounces {
					direct := t.EstimateDirect(event, path.Medium, bounce+1, path.Ray)
					path.Emission = path.Emission.Add(direct.MultiplyVec(path.Throughput))
				}
			} else if bounce >= t.settings.MinBounces {
				path.Emission = path.Emission.Add(hit.Primitive.Emission(hit).MultiplyVec(path.Throughput))
			}
		}

		event.RequestedLobe = core.AllLobes
		if !bsdf.Sample(event, adjoint) {
			return path, false
		}

		wo = event.Frame.ToGlobal(event.Wo)
		if !t.IsConsistent(event, wo) {
			return path, false
		}

		path.Throughput = path.Throughput.MultiplyVec(event.Throughput)
		path.WasSpecular = event.SampledLobe.HasSpecular()
		if !path.WasSpecular {
			path.Ray.Primary = false
		}
	}

	geometricBackside := wo.Dot(hit.Ng) < 0
	path.Medium = bsdf.SelectMedium(path.Medium, geometricBackside)
	path.MediumState.Reset()
	path.Ray = path.Ray.Scatter(path.Ray.Hitpoint(), wo, hit.Epsilon)

	return path, true
}
