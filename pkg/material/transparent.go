package material

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// Transparent is a null interface that lets light pass straight through,
// attenuated by Transmission. It is used for medium boundaries without
// refraction and for tinted films. Light that is not transmitted is
// absorbed.
type Transparent struct {
	MediumBoundary
	Transmission core.Vec3
}

// NewTransparent creates a fully transparent interface enclosing interior
func NewTransparent(interior, exterior transport.Medium) *Transparent {
	return &Transparent{MediumBoundary: NewMediumBoundary(interior, exterior), Transmission: core.Splat(1)}
}

// NewFilm creates a tinted interface that does not change the medium
func NewFilm(transmission core.Vec3) *Transparent {
	return &Transparent{Transmission: transmission}
}

func (t *Transparent) Lobes() core.Lobes {
	return core.ForwardLobe
}

// Eval returns the transmission for forward requests and zero otherwise
func (t *Transparent) Eval(event *transport.SurfaceScatterEvent, adjoint bool) core.Vec3 {
	if !event.RequestedLobe.IsForward() {
		return core.Vec3{}
	}
	return t.Transmission
}

// Sample only succeeds for forward requests. Path continuation through the
// surface happens via the forward evaluation, so a failed sample here is
// the absorbed share.
func (t *Transparent) Sample(event *transport.SurfaceScatterEvent, adjoint bool) bool {
	if !event.RequestedLobe.IsForward() {
		return false
	}
	if t.Transmission.IsZero() {
		return false
	}
	event.Wo = event.Wi.Negate()
	event.Pdf = 1
	event.Throughput = t.Transmission
	event.SampledLobe = core.ForwardLobe
	return true
}

func (t *Transparent) Pdf(event *transport.SurfaceScatterEvent) float64 {
	return 0
}
