package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

func intersect(p transport.Primitive, ray core.Ray) (transport.HitRecord, core.Ray, bool) {
	var hit transport.HitRecord
	if !p.Intersect(&ray, &hit) {
		return hit, ray, false
	}
	p.IntersectionInfo(ray, &hit)
	return hit, ray, true
}

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, _, isHit := intersect(sphere, ray); isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name             string
		rayOrigin        core.Vec3
		rayDirection     core.Vec3
		expectedT        float64
		expectedBackside bool
	}{
		{
			name:         "front face hit",
			rayOrigin:    core.NewVec3(0, 0, 2),
			rayDirection: core.NewVec3(0, 0, -1),
			expectedT:    1.0,
		},
		{
			name:             "back face hit",
			rayOrigin:        core.NewVec3(0, 0, 0),
			rayDirection:     core.NewVec3(0, 0, 1),
			expectedT:        1.0,
			expectedBackside: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ray, isHit := intersect(sphere, core.NewRay(tt.rayOrigin, tt.rayDirection))
			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if ray.FarT != hit.T {
				t.Errorf("Expected FarT to shrink to %f, got %f", hit.T, ray.FarT)
			}
			if sphere.HitBackside(&hit) != tt.expectedBackside {
				t.Errorf("Expected backside %t, got %t", tt.expectedBackside, sphere.HitBackside(&hit))
			}

			// the geometric normal points outwards on both faces
			if math.Abs(hit.Ng.Z-1) > 1e-9 {
				t.Errorf("Expected outward normal (0,0,1), got %v", hit.Ng)
			}
			if hit.Primitive != sphere {
				t.Error("Expected hit primitive to be the sphere")
			}
		})
	}
}

func TestSphere_Intersect_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	ray.FarT = 0.5
	if hit, _, isHit := intersect(sphere, ray); isHit {
		t.Errorf("Expected miss due to FarT, but got hit at t=%f", hit.T)
	}

	ray = core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	ray.NearT = 3.5
	if hit, _, isHit := intersect(sphere, ray); isHit {
		t.Errorf("Expected miss due to NearT, but got hit at t=%f", hit.T)
	}

	// skipping the entry point lands on the exit point
	ray = core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))
	ray.NearT = 1.5
	hit, _, isHit := intersect(sphere, ray)
	if !isHit || math.Abs(hit.T-3) > 1e-9 || !hit.Backside {
		t.Errorf("Expected backside hit at t=3, got hit=%t t=%f backside=%t", isHit, hit.T, hit.Backside)
	}
}

func TestSphere_EmissionIsOneSided(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	sphere.Emitted = core.Splat(3)

	outside, _, _ := intersect(sphere, core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1)))
	if sphere.Emission(&outside) != core.Splat(3) {
		t.Errorf("Expected outside emission 3, got %v", sphere.Emission(&outside))
	}

	inside, _, _ := intersect(sphere, core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1)))
	if !sphere.Emission(&inside).IsZero() {
		t.Errorf("Expected no inside emission, got %v", sphere.Emission(&inside))
	}
}

func TestSphere_IntersectionInfo(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 0, 0), 2.0, nil)
	hit, _, isHit := intersect(sphere, core.NewRay(core.NewVec3(1, 5, 0), core.NewVec3(0, -1, 0)))
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 2, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
	if hit.UV.Y < 0.999 {
		t.Errorf("Expected v=1 at the +Y pole, got %f", hit.UV.Y)
	}
	if hit.Epsilon <= 0 {
		t.Errorf("Expected positive epsilon, got %f", hit.Epsilon)
	}

	frame := sphere.TangentFrame(&hit)
	if frame.Normal != hit.Ns {
		t.Errorf("Expected frame normal %v, got %v", hit.Ns, frame.Normal)
	}
}

func TestSphere_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), 0.5, nil)
	bounds := sphere.Bounds()

	if bounds.Min != core.NewVec3(0.5, 1.5, 2.5) || bounds.Max != core.NewVec3(1.5, 2.5, 3.5) {
		t.Errorf("Unexpected bounds %v", bounds)
	}
	if sphere.IsSamplable() {
		t.Error("Expected plain sphere to be excluded from light sampling")
	}
}
