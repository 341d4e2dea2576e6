package integrator

import (
	"errors"
	"fmt"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// ErrInvalidRoulette is returned by Config.Validate for unusable Russian
// roulette bounds
var ErrInvalidRoulette = errors.New("invalid russian roulette settings")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns a radiance estimate along ray
	Trace(ray core.Ray, sampler, supplemental core.Sampler) core.Vec3
}

// Config contains the estimator settings plus the driver's own knobs
type Config struct {
	transport.Settings

	RussianRouletteMinBounces  int     // Minimum bounces before Russian Roulette can activate
	RussianRouletteMinSurvival float64 // Lower bound of the survival probability
	RussianRouletteMaxSurvival float64 // Upper bound of the survival probability
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Settings:                   transport.DefaultSettings(),
		RussianRouletteMinBounces:  8,
		RussianRouletteMinSurvival: 0.5,
		RussianRouletteMaxSurvival: 0.95,
	}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.RussianRouletteMinBounces < 0 {
		return fmt.Errorf("%w: min bounces %d is negative", ErrInvalidRoulette, c.RussianRouletteMinBounces)
	}
	if c.RussianRouletteMinSurvival <= 0 || c.RussianRouletteMaxSurvival > 1 ||
		c.RussianRouletteMinSurvival > c.RussianRouletteMaxSurvival {
		return fmt.Errorf("%w: survival bounds [%g, %g]", ErrInvalidRoulette,
			c.RussianRouletteMinSurvival, c.RussianRouletteMaxSurvival)
	}
	return nil
}
