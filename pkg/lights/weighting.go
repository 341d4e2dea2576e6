package lights

import "github.com/df07/go-light-transport/pkg/transport"

// PowerWeighting selects lights proportionally to their emitted flux in the
// position-independent distribution. Lights without a known power fall back
// to a unit weight.
func PowerWeighting(light transport.Light) float64 {
	if p, ok := light.(interface{ Power() float64 }); ok {
		return p.Power()
	}
	return 1.0
}
