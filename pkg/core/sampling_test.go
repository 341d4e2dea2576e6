package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPowerHeuristic(t *testing.T) {
	tests := []struct {
		name     string
		a        float64
		b        float64
		expected float64
	}{
		{name: "Equal PDFs", a: 0.5, b: 0.5, expected: 0.5},
		{name: "First PDF zero", a: 0.0, b: 0.5, expected: 0.0},
		{name: "Second PDF zero", a: 0.5, b: 0.0, expected: 1.0},
		{name: "Both zero", a: 0.0, b: 0.0, expected: 0.0},
		{name: "First PDF higher", a: 0.8, b: 0.2, expected: 0.941176}, // (0.8²) / (0.8² + 0.2²)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := PowerHeuristic(tt.a, tt.b)
			if math.Abs(result-tt.expected) > 1e-5 {
				t.Errorf("PowerHeuristic: got %f, expected %f", result, tt.expected)
			}
		})
	}
}

func TestPowerHeuristicSumsToOne(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := random.Float64()*10 + 1e-6
		b := random.Float64()*10 + 1e-6
		assert.InDelta(t, 1.0, PowerHeuristic(a, b)+PowerHeuristic(b, a), 1e-12)
	}
}

func TestCosineHemisphere(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	for i := 0; i < 500; i++ {
		d := CosineHemisphere(sampler.Get2D())
		assert.InDelta(t, 1.0, d.Length(), 1e-9)
		assert.GreaterOrEqual(t, d.Z, 0.0)
		assert.InDelta(t, d.Z/math.Pi, CosineHemispherePdf(d), 1e-12)
	}
	assert.Equal(t, 0.0, CosineHemispherePdf(NewVec3(0, 0, -1)))
}

func TestSampleCosineHemisphereAroundNormal(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(3)))
	normal := NewVec3(1, 1, 0).Normalize()
	for i := 0; i < 200; i++ {
		d := SampleCosineHemisphere(normal, sampler.Get2D())
		if d.Dot(normal) < 0 {
			t.Fatalf("sample %v is below the hemisphere of %v", d, normal)
		}
	}
}

func TestSampleConeStaysInsideCone(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(11)))
	axis := NewVec3(0, -1, 0)
	cosWidth := math.Cos(20 * math.Pi / 180)
	for i := 0; i < 200; i++ {
		d := SampleCone(axis, cosWidth, sampler.Get2D())
		require.GreaterOrEqual(t, d.Dot(axis), cosWidth-1e-9)
	}
	assert.InDelta(t, 1.0/(2*math.Pi*(1-cosWidth)), UniformConePDF(cosWidth), 1e-12)
}

func TestDistribution1D(t *testing.T) {
	dist, err := NewDistribution1D([]float64{1, 0, 3})
	require.NoError(t, err)

	assert.Equal(t, 3, dist.Len())
	assert.InDelta(t, 0.25, dist.Pdf(0), 1e-12)
	assert.Equal(t, 0.0, dist.Pdf(1))
	assert.InDelta(t, 0.75, dist.Pdf(2), 1e-12)
	assert.Equal(t, 0.0, dist.Pdf(7))

	assert.Equal(t, 0, dist.Warp(0.0))
	assert.Equal(t, 0, dist.Warp(0.2499))
	assert.Equal(t, 2, dist.Warp(0.25))
	assert.Equal(t, 2, dist.Warp(0.9999999))
	assert.Equal(t, 2, dist.Warp(1.0))
}

func TestDistribution1DFrequencies(t *testing.T) {
	weights := []float64{0.5, 2, 1, 0.5}
	dist, err := NewDistribution1D(weights)
	require.NoError(t, err)

	random := rand.New(rand.NewSource(99))
	counts := make([]int, len(weights))
	const n = 200000
	for i := 0; i < n; i++ {
		counts[dist.Warp(random.Float64())]++
	}
	for i := range weights {
		assert.InDelta(t, dist.Pdf(i), float64(counts[i])/n, 0.01, "item %d", i)
	}
}

func TestDistribution1DZeroAndInvalidWeights(t *testing.T) {
	dist, err := NewDistribution1D([]float64{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dist.Pdf(0), 1e-12)
	assert.InDelta(t, 0.5, dist.Pdf(1), 1e-12)

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = NewDistribution1D([]float64{1, bad})
		assert.Error(t, err, "weight %g", bad)
	}
	_, err = NewDistribution1D([]float64{math.MaxFloat64, math.MaxFloat64})
	assert.Error(t, err)

	empty, err := NewDistribution1D(nil)
	require.NoError(t, err)
	assert.Equal(t, -1, empty.Warp(0.5))
	assert.Equal(t, "Distribution1D{empty}", empty.String())
}
