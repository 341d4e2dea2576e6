package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/transport"
)

var (
	// ErrNilPrimitive is returned when a scene is built with a nil entry
	ErrNilPrimitive = errors.New("nil primitive")
	// ErrInvalidBounds is returned for primitives with NaN or inverted bounds
	ErrInvalidBounds = errors.New("invalid primitive bounds")
	// ErrMissingBSDF is returned for intersectable primitives without a BSDF
	ErrMissingBSDF = errors.New("primitive has no BSDF")
)

// Scene is a fixed set of primitives and lights behind a BVH. It is
// read-only after New and safe for concurrent use.
type Scene struct {
	primitives []transport.Primitive
	lights     []transport.Light
	bvh        *BVH
}

// Builder collects primitives and lights before the BVH is built
type Builder struct {
	Primitives []transport.Primitive
	Lights     []transport.Light
}

// Add appends plain geometry
func (b *Builder) Add(primitives ...transport.Primitive) {
	b.Primitives = append(b.Primitives, primitives...)
}

// AddLight appends a light. Area lights are also intersectable geometry.
func (b *Builder) AddLight(light transport.Light) {
	b.Lights = append(b.Lights, light)
}

// AddSphereLight adds a spherical light to the scene
func (b *Builder) AddSphereLight(center core.Vec3, radius float64, radiance core.Vec3, bsdf transport.BSDF) *lights.SphereLight {
	light := lights.NewSphereLight(center, radius, radiance, bsdf)
	b.AddLight(light)
	return light
}

// AddQuadLight adds a rectangular area light to the scene
func (b *Builder) AddQuadLight(corner, u, v, radiance core.Vec3, bsdf transport.BSDF) *lights.QuadLight {
	light := lights.NewQuadLight(corner, u, v, radiance, bsdf)
	b.AddLight(light)
	return light
}

// AddPointLight adds an isotropic point light to the scene
func (b *Builder) AddPointLight(position, intensity core.Vec3) *lights.PointLight {
	light := lights.NewPointLight(position, intensity)
	b.AddLight(light)
	return light
}

// AddDirectionalLight adds a distant light travelling along direction
func (b *Builder) AddDirectionalLight(direction, irradiance core.Vec3) *lights.DirectionalLight {
	light := lights.NewDirectionalLight(direction, irradiance)
	b.AddLight(light)
	return light
}

// Build validates the collected content and builds the scene
func (b *Builder) Build() (*Scene, error) {
	return New(b.Primitives, b.Lights)
}

// New builds a scene. Non-Dirac lights are intersected like any other
// primitive; Dirac lights are only reachable through light sampling.
func New(primitives []transport.Primitive, sceneLights []transport.Light) (*Scene, error) {
	all := make([]transport.Primitive, 0, len(primitives)+len(sceneLights))
	for i, p := range primitives {
		if p == nil {
			return nil, fmt.Errorf("%w: primitive %d", ErrNilPrimitive, i)
		}
		all = append(all, p)
	}
	for i, l := range sceneLights {
		if l == nil {
			return nil, fmt.Errorf("%w: light %d", ErrNilPrimitive, i)
		}
		if !l.IsDirac() {
			all = append(all, l)
		}
	}

	for i, p := range all {
		if err := validateBounds(p.Bounds()); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
		if err := validateBSDF(p); err != nil {
			return nil, fmt.Errorf("primitive %d: %w", i, err)
		}
	}

	s := &Scene{
		primitives: all,
		lights:     append([]transport.Light(nil), sceneLights...),
		bvh:        NewBVH(all),
	}

	stats := s.bvh.stats()
	core.Logger().Debug("scene built",
		"primitives", len(all),
		"lights", len(s.lights),
		"bvhNodes", stats.totalNodes,
		"bvhLeaves", stats.leafNodes,
		"bvhMaxDepth", stats.maxDepth,
		"bvhAvgDepth", stats.avgDepth)

	return s, nil
}

func validateBounds(b core.AABB) error {
	if !b.IsValid() {
		return fmt.Errorf("%w: %v", ErrInvalidBounds, b)
	}
	return nil
}

func validateBSDF(p transport.Primitive) error {
	var bsdf transport.BSDF
	switch prim := p.(type) {
	case *geometry.Sphere:
		bsdf = prim.BSDF
	case *geometry.Quad:
		bsdf = prim.BSDF
	case *lights.SphereLight:
		bsdf = prim.BSDF
	case *lights.QuadLight:
		bsdf = prim.BSDF
	default:
		return nil
	}
	if bsdf == nil {
		return ErrMissingBSDF
	}
	return nil
}

// Intersect implements transport.Scene
func (s *Scene) Intersect(ray *core.Ray, hit *transport.HitRecord) bool {
	closest := s.bvh.Intersect(ray, hit)
	if closest == nil {
		return false
	}
	closest.IntersectionInfo(*ray, hit)
	return true
}

// Lights implements transport.Scene
func (s *Scene) Lights() []transport.Light {
	return s.lights
}

// Primitives returns every intersectable primitive, lights included
func (s *Scene) Primitives() []transport.Primitive {
	return s.primitives
}

// Bounds returns the bounds of all intersectable geometry
func (s *Scene) Bounds() core.AABB {
	if s.bvh.Root == nil {
		return core.AABB{}
	}
	return s.bvh.Root.Bounds
}

// NewGroundQuad creates a large horizontal quad with normal +Y centered at
// the given point
func NewGroundQuad(center core.Vec3, size float64, bsdf transport.BSDF) *geometry.Quad {
	corner := core.NewVec3(center.X-size/2, center.Y, center.Z-size/2)
	// u × v = (0,0,size) × (size,0,0) = (0,size²,0)
	u := core.NewVec3(0, 0, size)
	v := core.NewVec3(size, 0, 0)
	return geometry.NewQuad(corner, u, v, bsdf)
}
