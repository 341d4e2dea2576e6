package integrator

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// PathTracer implements unidirectional path tracing on top of the
// per-bounce handlers of a transport.Tracer. A PathTracer belongs to one
// worker.
type PathTracer struct {
	scene  transport.Scene
	config Config
	tracer *transport.Tracer
	medium transport.Medium // medium the camera sits in

	tracerOpts []transport.Option
}

// Option configures a PathTracer during creation
type Option func(*PathTracer)

// WithCameraMedium starts every path inside m
func WithCameraMedium(m transport.Medium) Option {
	return func(pt *PathTracer) {
		pt.medium = m
	}
}

// WithLightWeighting sets the weighting of the tracer's position-independent
// light distribution
func WithLightWeighting(w transport.LightWeighting) Option {
	return func(pt *PathTracer) {
		pt.tracerOpts = append(pt.tracerOpts, transport.WithLightWeighting(w))
	}
}

// NewPathTracer creates the driver for the given worker
func NewPathTracer(scene transport.Scene, config Config, worker int, opts ...Option) *PathTracer {
	pt := &PathTracer{
		scene:  scene,
		config: config,
	}
	for _, opt := range opts {
		opt(pt)
	}
	pt.tracer = transport.NewTracer(scene, config.Settings, worker, pt.tracerOpts...)
	return pt
}

// Tracer exposes the underlying estimator kernel
func (pt *PathTracer) Tracer() *transport.Tracer {
	return pt.tracer
}

// Trace returns a radiance estimate along ray. Each iteration advances the
// path through the active medium, then scatters it at the surface it
// reached, until the path terminates or the bounce budget is exhausted.
func (pt *PathTracer) Trace(ray core.Ray, sampler, supplemental core.Sampler) core.Vec3 {
	path := transport.NewPathState(ray, pt.medium)

	var hit transport.HitRecord
	didHit := pt.scene.Intersect(&path.Ray, &hit)

	ok := true
	bounce := 0
	for (didHit || path.Medium != nil) && bounce < pt.config.MaxBounces {
		if path.Medium != nil {
			path, ok = pt.tracer.HandleVolume(sampler, supplemental, path, bounce, false, pt.config.EnableVolumeLightSampling)
			if !ok {
				break
			}
		} else {
			path.HitSurface = true
		}

		if path.HitSurface && !didHit {
			break
		}

		if path.HitSurface {
			event := pt.tracer.MakeLocalScatterEvent(&hit, path.Ray, sampler, supplemental)
			path, ok = pt.tracer.HandleSurface(&event, path, bounce, false, pt.config.EnableLightSampling)
			if !ok {
				break
			}
		}

		if path.Throughput.MaxComponent() <= 0 || !isFinite(path.Ray.Direction) {
			break
		}

		// Apply Russian Roulette termination
		if bounce >= pt.config.RussianRouletteMinBounces {
			survivalProb := pt.survivalProbability(path.Throughput)
			if supplemental.Get1D() >= survivalProb {
				break
			}
			path.Throughput = path.Throughput.Multiply(1.0 / survivalProb)
		}

		bounce++
		if bounce < pt.config.MaxBounces {
			hit = transport.HitRecord{}
			didHit = pt.scene.Intersect(&path.Ray, &hit)
		}
	}

	return path.Emission
}

// survivalProbability uses luminance clamped to the configured bounds
func (pt *PathTracer) survivalProbability(throughput core.Vec3) float64 {
	return math.Min(pt.config.RussianRouletteMaxSurvival,
		math.Max(pt.config.RussianRouletteMinSurvival, throughput.Luminance()))
}

func isFinite(v core.Vec3) bool {
	sum := v.X + v.Y + v.Z
	return !math.IsNaN(sum) && !math.IsInf(sum, 0)
}
