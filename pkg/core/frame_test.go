package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertVecNear(t *testing.T, expected, actual Vec3, tolerance float64) {
	t.Helper()
	if actual.Subtract(expected).Length() > tolerance {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

func TestTangentFrameRoundTrip(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(5)))
	for i := 0; i < 100; i++ {
		normal := SampleOnUnitSphere(sampler.Get2D())
		frame := NewTangentFrame(normal)

		assert.InDelta(t, 0.0, frame.Normal.Dot(frame.Tangent), 1e-9)
		assert.InDelta(t, 0.0, frame.Normal.Dot(frame.Bitangent), 1e-9)
		assert.InDelta(t, 0.0, frame.Tangent.Dot(frame.Bitangent), 1e-9)

		w := SampleOnUnitSphere(sampler.Get2D())
		assertVecNear(t, w, frame.ToGlobal(frame.ToLocal(w)), 1e-9)
		assert.InDelta(t, w.Dot(normal), frame.ToLocal(w).Z, 1e-9)
	}
}

func TestTangentFrameFlipped(t *testing.T) {
	frame := NewTangentFrame(NewVec3(0, 0, 1))
	flipped := frame.Flipped()

	w := NewVec3(0.3, -0.2, 0.9).Normalize()
	local := frame.ToLocal(w)
	flippedLocal := flipped.ToLocal(w)

	assert.InDelta(t, -local.Z, flippedLocal.Z, 1e-12)
	assert.InDelta(t, -local.X, flippedLocal.X, 1e-12)
	assert.InDelta(t, local.Y, flippedLocal.Y, 1e-12)
}

func TestTangentFrameFromTangent(t *testing.T) {
	frame := NewTangentFrameFromTangent(NewVec3(0, 0, 1), NewVec3(1, 0, 0.5))
	assertVecNear(t, NewVec3(1, 0, 0), frame.Tangent, 1e-12)
	assertVecNear(t, NewVec3(0, 1, 0), frame.Bitangent, 1e-12)

	// Degenerate tangent falls back to an arbitrary frame
	fallback := NewTangentFrameFromTangent(NewVec3(0, 0, 1), NewVec3(0, 0, 2))
	assert.InDelta(t, 0.0, fallback.Tangent.Dot(fallback.Normal), 1e-12)
	assert.InDelta(t, 1.0, fallback.Tangent.Length(), 1e-12)
}
