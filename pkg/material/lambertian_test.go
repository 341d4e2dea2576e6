package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvent(wi core.Vec3, sampler core.Sampler) *transport.SurfaceScatterEvent {
	return &transport.SurfaceScatterEvent{
		Info:          &transport.HitRecord{},
		Sampler:       sampler,
		Wi:            wi.Normalize(),
		Throughput:    core.Splat(1),
		RequestedLobe: core.AllLobes,
	}
}

func TestLambertian_PDFCalculation(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	// Test that PDF calculation matches expected formula
	for i := 0; i < 100; i++ {
		event := newEvent(core.NewVec3(0.3, 0, 1), sampler)
		require.True(t, lambertian.Sample(event, false), "Lambertian should always scatter from above")

		expectedPDF := event.Wo.Z / math.Pi
		if math.Abs(event.Pdf-expectedPDF) > 1e-10 {
			t.Errorf("PDF mismatch: got %f, expected %f", event.Pdf, expectedPDF)
		}
		assert.InDelta(t, expectedPDF, lambertian.Pdf(event), 1e-12)
		assert.Equal(t, core.DiffuseReflectionLobe, event.SampledLobe)
	}
}

func TestLambertian_SampleWeightMatchesEval(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		event := newEvent(core.NewVec3(0, 0.5, 1), sampler)
		require.True(t, lambertian.Sample(event, false))

		// f*cos/pdf must equal the sample weight
		f := lambertian.Eval(event, false)
		weight := f.Multiply(1 / lambertian.Pdf(event))
		assert.InDelta(t, event.Throughput.X, weight.X, 1e-9)
		assert.InDelta(t, event.Throughput.Z, weight.Z, 1e-9)
		assert.Equal(t, albedo, event.Throughput)
	}
}

func TestLambertian_BelowSurface(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	event := newEvent(core.NewVec3(0, 0, -1), sampler)
	assert.False(t, lambertian.Sample(event, false))

	event = newEvent(core.NewVec3(0, 0, 1), sampler)
	event.Wo = core.NewVec3(0, 0, -1)
	assert.True(t, lambertian.Eval(event, false).IsZero())
	assert.Zero(t, lambertian.Pdf(event))
}

func TestLambertian_RequestedLobe(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))

	event := newEvent(core.NewVec3(0, 0, 1), sampler)
	event.Wo = core.NewVec3(0, 0, 1)
	event.RequestedLobe = core.SpecularLobe

	assert.True(t, lambertian.Eval(event, false).IsZero())
	assert.False(t, lambertian.Sample(event, false))

	event.RequestedLobe = core.AllButSpecular
	assert.InDelta(t, 0.5/math.Pi, lambertian.Eval(event, false).X, 1e-12)
}

func TestLambertian_Textured(t *testing.T) {
	even := core.NewVec3(1, 0, 0)
	odd := core.NewVec3(0, 0, 1)
	lambertian := NewTexturedLambertian(NewChecker(even, odd, 1))

	event := newEvent(core.NewVec3(0, 0, 1), nil)
	event.Wo = core.NewVec3(0, 0, 1)

	event.Info.Point = core.NewVec3(0.5, 0.5, 0.5)
	assert.InDelta(t, 1/math.Pi, lambertian.Eval(event, false).X, 1e-12)

	event.Info.Point = core.NewVec3(1.5, 0.5, 0.5)
	assert.InDelta(t, 1/math.Pi, lambertian.Eval(event, false).Z, 1e-12)

	event.Info.Point = core.NewVec3(-0.5, 0.5, 0.5)
	assert.InDelta(t, 1/math.Pi, lambertian.Eval(event, false).Z, 1e-12)
}
