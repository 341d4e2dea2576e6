package transport

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
)

// fixedSampler replays a list of values, cycling when exhausted
type fixedSampler struct {
	values []float64
	next   int
}

func newFixedSampler(values ...float64) *fixedSampler {
	return &fixedSampler{values: values}
}

func (s *fixedSampler) Get1D() float64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *fixedSampler) Get2D() core.Vec2 {
	return core.NewVec2(s.Get1D(), s.Get1D())
}

func (s *fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.Get1D(), s.Get1D(), s.Get1D())
}

// mockScene intersects its primitives by brute force
type mockScene struct {
	primitives []Primitive
	lights     []Light
}

func (s *mockScene) Intersect(ray *core.Ray, hit *HitRecord) bool {
	var closest Primitive
	for _, p := range s.primitives {
		if p.Intersect(ray, hit) {
			closest = p
		}
	}
	if closest == nil {
		return false
	}
	closest.IntersectionInfo(*ray, hit)
	return true
}

func (s *mockScene) Lights() []Light {
	return s.lights
}

// sheet is the infinite plane z = Z with geometric normal +Z
type sheet struct {
	Z         float64
	BSDF      BSDF
	Emitted   core.Vec3
	Samplable bool
}

func (p *sheet) Intersect(ray *core.Ray, hit *HitRecord) bool {
	if ray.Direction.Z == 0 {
		return false
	}
	t := (p.Z - ray.Origin.Z) / ray.Direction.Z
	if t <= ray.NearT || t >= ray.FarT {
		return false
	}
	ray.FarT = t
	hit.Primitive = p
	hit.BSDF = p.BSDF
	hit.Backside = ray.Direction.Z > 0
	return true
}

func (p *sheet) IntersectionInfo(ray core.Ray, hit *HitRecord) {
	hit.T = ray.FarT
	hit.Point = ray.Hitpoint()
	hit.W = ray.Direction
	hit.Ng = core.NewVec3(0, 0, 1)
	hit.Ns = hit.Ng
	hit.Epsilon = 1e-6
}

func (p *sheet) TangentFrame(hit *HitRecord) core.TangentFrame {
	return core.NewTangentFrame(hit.Ns)
}

func (p *sheet) HitBackside(hit *HitRecord) bool { return hit.Backside }
func (p *sheet) IsSamplable() bool               { return p.Samplable }

func (p *sheet) Emission(hit *HitRecord) core.Vec3 {
	if hit.Backside {
		return core.Vec3{}
	}
	return p.Emitted
}

func (p *sheet) Bounds() core.AABB {
	inf := math.Inf(1)
	return core.NewAABB(core.NewVec3(-inf, -inf, p.Z), core.NewVec3(inf, inf, p.Z))
}

// mockPointLight is a Dirac light with configurable radiance estimate
type mockPointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
	Radiance  float64
	Known     bool
	samplable []int
}

func (l *mockPointLight) Intersect(*core.Ray, *HitRecord) bool { return false }

func (l *mockPointLight) IntersectionInfo(ray core.Ray, hit *HitRecord) {
	hit.Primitive = l
	hit.T = ray.FarT
	hit.Point = ray.Hitpoint()
	hit.W = ray.Direction
}

func (l *mockPointLight) TangentFrame(*HitRecord) core.TangentFrame {
	return core.NewTangentFrame(core.NewVec3(0, 0, 1))
}

func (l *mockPointLight) HitBackside(*HitRecord) bool { return false }
func (l *mockPointLight) IsSamplable() bool           { return true }

func (l *mockPointLight) Emission(hit *HitRecord) core.Vec3 {
	return l.Intensity.Multiply(1.0 / (hit.T * hit.T))
}

func (l *mockPointLight) Bounds() core.AABB { return core.NewAABB(l.Position, l.Position) }
func (l *mockPointLight) IsDirac() bool     { return true }
func (l *mockPointLight) MakeSamplable(worker int) {
	l.samplable = append(l.samplable, worker)
}

func (l *mockPointLight) SampleInboundDirection(worker int, sample *LightSample) bool {
	d := l.Position.Subtract(sample.P)
	sample.Dist = d.Length()
	sample.D = d.Multiply(1.0 / sample.Dist)
	sample.Pdf = 1.0
	return true
}

func (l *mockPointLight) InboundPdf(int, *HitRecord, core.Vec3, core.Vec3) float64 { return 0 }

func (l *mockPointLight) ApproximateRadiance(int, core.Vec3) (float64, bool) {
	return l.Radiance, l.Known
}

// mockBSDF is a Lambertian reflector with optional forward transmission and
// an optional medium boundary
type mockBSDF struct {
	lobes        core.Lobes
	albedo       float64
	transparency core.Vec3
	interior     Medium
	boundary     bool
}

func (b *mockBSDF) Lobes() core.Lobes { return b.lobes }

func (b *mockBSDF) Eval(event *SurfaceScatterEvent, adjoint bool) core.Vec3 {
	if event.RequestedLobe == core.ForwardLobe {
		if !b.lobes.Test(core.ForwardLobe) {
			return core.Vec3{}
		}
		return b.transparency
	}
	if !b.lobes.Test(core.DiffuseReflectionLobe) || !event.RequestedLobe.Test(core.DiffuseReflectionLobe) {
		return core.Vec3{}
	}
	if event.Wi.Z <= 0 || event.Wo.Z <= 0 {
		return core.Vec3{}
	}
	return core.Splat(b.albedo / math.Pi * event.Wo.Z)
}

func (b *mockBSDF) Sample(event *SurfaceScatterEvent, adjoint bool) bool {
	if !b.lobes.Test(core.DiffuseReflectionLobe) || !event.RequestedLobe.Test(core.DiffuseReflectionLobe) {
		return false
	}
	if event.Wi.Z <= 0 {
		return false
	}
	event.Wo = core.CosineHemisphere(event.Sampler.Get2D())
	event.Pdf = core.CosineHemispherePdf(event.Wo)
	event.Throughput = core.Splat(b.albedo)
	event.SampledLobe = core.DiffuseReflectionLobe
	return true
}

func (b *mockBSDF) Pdf(event *SurfaceScatterEvent) float64 {
	if !b.lobes.Test(core.DiffuseReflectionLobe) || event.Wi.Z <= 0 {
		return 0
	}
	return core.CosineHemispherePdf(event.Wo)
}

func (b *mockBSDF) SelectMedium(current Medium, backside bool) Medium {
	if !b.boundary {
		return current
	}
	if backside {
		return b.interior
	}
	return nil
}

func newDiffuse(albedo float64) *mockBSDF {
	return &mockBSDF{lobes: core.DiffuseReflectionLobe, albedo: albedo}
}

func newOpaque() *mockBSDF {
	return newDiffuse(0.5)
}

func newTransparent(t float64) *mockBSDF {
	return &mockBSDF{lobes: core.ForwardLobe, transparency: core.Splat(t)}
}

// mockMedium is a purely absorbing medium with optional forced scattering
type mockMedium struct {
	sigma     float64
	scatterAt float64 // when > 0, SampleDistance stops here if inside the segment
	emitted   core.Vec3
}

func (m *mockMedium) SampleDistance(event *VolumeScatterEvent, state *MediumState) bool {
	if m.scatterAt > 0 && m.scatterAt < event.MaxT {
		event.T = m.scatterAt
	} else {
		event.T = event.MaxT
	}
	event.Throughput = core.Splat(math.Exp(-m.sigma * event.T))
	state.FirstScatter = false
	return true
}

func (m *mockMedium) Transmittance(event *VolumeScatterEvent) core.Vec3 {
	if m.sigma == 0 {
		return core.Splat(1)
	}
	return core.Splat(math.Exp(-m.sigma * event.MaxT))
}

func (m *mockMedium) Emission(*VolumeScatterEvent) core.Vec3 { return m.emitted }

func (m *mockMedium) Absorb(event *VolumeScatterEvent, state *MediumState) bool {
	state.Bounce++
	return false
}

func (m *mockMedium) Scatter(event *VolumeScatterEvent) bool {
	event.Wo = event.Wi
	event.Pdf = 1
	event.Throughput = core.Splat(1)
	return true
}

func (m *mockMedium) PhaseEval(*VolumeScatterEvent) core.Vec3 { return core.Splat(1 / (4 * math.Pi)) }
func (m *mockMedium) PhasePdf(*VolumeScatterEvent) float64    { return 1 / (4 * math.Pi) }
