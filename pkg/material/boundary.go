package material

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// MediumBoundary decides which participating medium a direction leaving a
// surface travels through. Surfaces that do not override keep the current
// medium; overriding surfaces enclose Interior on the side opposite the
// geometric normal and Exterior on the normal side. A nil medium is vacuum.
type MediumBoundary struct {
	Interior  transport.Medium
	Exterior  transport.Medium
	Overrides bool
}

// NewMediumBoundary creates an overriding boundary between two media
func NewMediumBoundary(interior, exterior transport.Medium) MediumBoundary {
	return MediumBoundary{Interior: interior, Exterior: exterior, Overrides: true}
}

// SelectMedium implements the medium half of transport.BSDF
func (b MediumBoundary) SelectMedium(current transport.Medium, backside bool) transport.Medium {
	if !b.Overrides {
		return current
	}
	if backside {
		return b.Interior
	}
	return b.Exterior
}

// albedoAt evaluates a color source at the surface point of an event
func albedoAt(source ColorSource, event *transport.SurfaceScatterEvent) core.Vec3 {
	return source.Evaluate(event.Info.UV, event.Info.Point)
}
