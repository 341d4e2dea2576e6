package material

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// Mirror is a perfect specular reflector
type Mirror struct {
	Albedo core.Vec3 // Mirror color
}

// NewMirror creates a new mirror material
func NewMirror(albedo core.Vec3) *Mirror {
	return &Mirror{Albedo: albedo}
}

func (m *Mirror) Lobes() core.Lobes {
	return core.SpecularReflectionLobe
}

// Eval is zero everywhere: a delta distribution cannot be evaluated
func (m *Mirror) Eval(event *transport.SurfaceScatterEvent, adjoint bool) core.Vec3 {
	return core.Vec3{}
}

// Sample reflects Wi about the shading normal
func (m *Mirror) Sample(event *transport.SurfaceScatterEvent, adjoint bool) bool {
	if !event.RequestedLobe.Test(core.SpecularReflectionLobe) || event.Wi.Z <= 0 {
		return false
	}
	event.Wo = reflectLocal(event.Wi)
	event.Pdf = 1
	event.Throughput = m.Albedo
	event.SampledLobe = core.SpecularReflectionLobe
	return true
}

func (m *Mirror) Pdf(event *transport.SurfaceScatterEvent) float64 {
	return 0
}

func (m *Mirror) SelectMedium(current transport.Medium, backside bool) transport.Medium {
	return current
}

// reflectLocal reflects a local-frame direction about +Z
func reflectLocal(w core.Vec3) core.Vec3 {
	return core.NewVec3(-w.X, -w.Y, w.Z)
}
