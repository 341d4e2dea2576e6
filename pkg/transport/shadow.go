package transport

import "github.com/df07/go-light-transport/pkg/core"

// emissionFudgeFactor tolerates numerical drift when a light is re-intersected
// at a distance slightly shorter than the sampled one
const emissionFudgeFactor = 1.0 + 1e-3

// GeneralizedShadowRay returns the fraction of light that travels along ray,
// walking through transparent surfaces and attenuating by the active medium.
// endCap is treated as the transparent terminator of the walk (usually the
// light being connected to) and may be nil. Every surface crossed counts as
// a bounce; the walk fails once the count exceeds MaxBounces.
func (t *Tracer) GeneralizedShadowRay(ray core.Ray, medium Medium, endCap Primitive, bounce int) core.Vec3 {
	initialFarT := ray.FarT
	throughput := core.Splat(1)

	for {
		var hit HitRecord
		didHit := t.scene.Intersect(&ray, &hit)
		reachedEnd := !didHit || hit.Primitive == endCap

		if !reachedEnd {
			event := t.MakeLocalScatterEvent(&hit, ray, nil, nil)
			forward := event.MakeForwardEvent()

			transmittance := hit.BSDF.Eval(&forward, false)
			if transmittance.IsZero() {
				return core.Vec3{}
			}

			throughput = throughput.MultiplyVec(transmittance)
			bounce++

			if bounce > t.settings.MaxBounces {
				return core.Vec3{}
			}
		}

		if medium != nil {
			segment := newSegmentEvent(ray.Origin, ray.Direction, ray.FarT)
			throughput = throughput.MultiplyVec(medium.Transmittance(&segment))
		}

		if reachedEnd {
			if bounce >= t.settings.MinBounces {
				return throughput
			}
			return core.Vec3{}
		}

		medium = hit.BSDF.SelectMedium(medium, !hit.Primitive.HitBackside(&hit))

		ray.Origin = ray.Hitpoint()
		initialFarT -= ray.FarT
		ray.NearT = hit.Epsilon
		ray.FarT = initialFarT
	}
}

// AttenuatedEmission returns the emission of light seen along ray, scaled by
// the shadow-ray transmittance up to it. For Dirac lights expectedDist is
// the exact distance. Other lights are re-intersected and rejected when
// they are hit noticeably closer than expectedDist; pass a negative
// expectedDist to accept any hit. On success hit describes the light hit.
func (t *Tracer) AttenuatedEmission(light Light, medium Medium, expectedDist float64, hit *HitRecord, bounce int, ray core.Ray) core.Vec3 {
	if light.IsDirac() {
		ray.FarT = expectedDist
	} else if !light.Intersect(&ray, hit) || ray.FarT*emissionFudgeFactor < expectedDist {
		return core.Vec3{}
	}
	light.IntersectionInfo(ray, hit)

	transmittance := t.GeneralizedShadowRay(ray, medium, light, bounce)
	if transmittance.IsZero() {
		return core.Vec3{}
	}

	return transmittance.MultiplyVec(light.Emission(hit))
}
