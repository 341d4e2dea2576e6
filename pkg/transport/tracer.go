package transport

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// LightWeighting assigns the unnormalized selection weight of a light in the
// position-independent distribution used by ChooseLightAdjoint
type LightWeighting func(light Light) float64

// UniformLightWeighting gives every light the same weight
func UniformLightWeighting(Light) float64 {
	return 1.0
}

// Option configures a Tracer during creation
type Option func(*tracerOptions)

type tracerOptions struct {
	weighting LightWeighting
}

func defaultOptions() tracerOptions {
	return tracerOptions{weighting: UniformLightWeighting}
}

// WithLightWeighting replaces the weighting of the position-independent
// light distribution
func WithLightWeighting(w LightWeighting) Option {
	return func(o *tracerOptions) {
		if w != nil {
			o.weighting = w
		}
	}
}

// Tracer is the per-worker estimation kernel. A Tracer must only be used by
// the worker it was created for; the scene it reads is shared.
type Tracer struct {
	scene    Scene
	settings Settings
	worker   int

	lightWeights []float64 // scratch for ChooseLight
	lightKnown   []bool
	lightDist    *core.Distribution1D
}

// NewTracer creates the kernel for the given worker and prepares every light
// for sampling by that worker
func NewTracer(scene Scene, settings Settings, worker int, opts ...Option) *Tracer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	lights := scene.Lights()
	weights := make([]float64, len(lights))
	for i, light := range lights {
		light.MakeSamplable(worker)
		w := o.weighting(light)
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			core.Logger().Warn("invalid light weight clamped to zero", "light", i, "weight", w)
			w = 0
		}
		weights[i] = w
	}
	dist, err := core.NewDistribution1D(weights)
	if err != nil {
		core.Logger().Error("light distribution disabled", "worker", worker, "error", err)
		dist = nil
	}

	if len(lights) == 0 {
		core.Logger().Warn("scene has no lights, next-event estimation disabled", "worker", worker)
	}
	core.Logger().Debug("tracer created", "worker", worker, "lights", len(lights),
		"minBounces", settings.MinBounces, "maxBounces", settings.MaxBounces)

	return &Tracer{
		scene:        scene,
		settings:     settings,
		worker:       worker,
		lightWeights: make([]float64, len(lights)),
		lightKnown:   make([]bool, len(lights)),
		lightDist:    dist,
	}
}

// Settings returns the tracer's settings
func (t *Tracer) Settings() Settings {
	return t.settings
}

// Worker returns the worker index the tracer was created for
func (t *Tracer) Worker() int {
	return t.worker
}

// Scene returns the scene the tracer queries
func (t *Tracer) Scene() Scene {
	return t.scene
}
