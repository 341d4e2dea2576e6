package transport

import (
	"errors"
	"fmt"
)

// ErrInvalidBounces is returned by Settings.Validate for inconsistent bounce limits
var ErrInvalidBounces = errors.New("invalid bounce limits")

// Settings controls the estimator kernel
type Settings struct {
	MinBounces                int  // Paths shorter than this contribute nothing
	MaxBounces                int  // Maximum number of scattering events per path
	EnableLightSampling       bool // Next-event estimation at surfaces
	EnableVolumeLightSampling bool // Next-event estimation inside media
	EnableConsistencyChecks   bool // Reject directions whose geometric and shading sides disagree
	EnableTwoSidedShading     bool // Flip the shading frame on backside hits of opaque BSDFs
}

// DefaultSettings returns sensible default values
func DefaultSettings() Settings {
	return Settings{
		MinBounces:                0,
		MaxBounces:                64,
		EnableLightSampling:       true,
		EnableVolumeLightSampling: true,
		EnableConsistencyChecks:   false,
		EnableTwoSidedShading:     true,
	}
}

// Validate checks the settings for values the estimator cannot work with
func (s Settings) Validate() error {
	if s.MinBounces < 0 {
		return fmt.Errorf("%w: min bounces %d is negative", ErrInvalidBounces, s.MinBounces)
	}
	if s.MaxBounces < 0 {
		return fmt.Errorf("%w: max bounces %d is negative", ErrInvalidBounces, s.MaxBounces)
	}
	if s.MinBounces > s.MaxBounces {
		return fmt.Errorf("%w: min bounces %d exceeds max bounces %d", ErrInvalidBounces, s.MinBounces, s.MaxBounces)
	}
	return nil
}
