package renderer

import (
	"math"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/transport"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center      core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera looks at
	Up          core.Vec3 // Up direction
	Width       int       // Image width in pixels
	AspectRatio float64   // Width / height
	VFov        float64   // Vertical field of view in degrees
}

// Camera generates rays for rendering and connects scene points back to
// the film
type Camera struct {
	config          CameraConfig
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v, w         core.Vec3 // camera basis, w points backwards
	width, height   int
	filmArea        float64 // film area at unit distance from the pinhole
}

// NewCamera creates a pinhole camera from config
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	viewportHeight := 2.0 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w)

	height := int(float64(config.Width) / config.AspectRatio)
	if height < 1 {
		height = 1
	}

	return &Camera{
		config:          config,
		origin:          config.Center,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		width:           config.Width,
		height:          height,
		filmArea:        viewportWidth * viewportHeight,
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin)

	return core.NewRay(c.origin, direction.Normalize())
}

// GetCameraForward returns the viewing direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.w.Negate()
}

// Resolution returns the image size in pixels
func (c *Camera) Resolution() (int, int) {
	return c.width, c.height
}

// SampleDirect connects p to the pinhole. The weight is the importance of
// the connection, normalized over the whole film, divided by the density
// of the connection expressed in solid angle at p.
func (c *Camera) SampleDirect(p core.Vec3, sampler core.Sampler) (transport.LensSample, bool) {
	toLens := c.origin.Subtract(p)
	dist := toLens.Length()
	if dist == 0 {
		return transport.LensSample{}, false
	}
	dir := toLens.Multiply(-1.0 / dist) // from the camera towards p

	cosTheta := dir.Dot(c.GetCameraForward())
	if cosTheta <= 0 {
		return transport.LensSample{}, false
	}

	// Project onto the film plane at unit distance
	film := dir.Multiply(1.0 / cosTheta)
	s := film.Dot(c.u)/c.horizontal.Length() + 0.5
	t := film.Dot(c.v)/c.vertical.Length() + 0.5
	if s < 0 || s > 1 || t < 0 || t > 1 {
		return transport.LensSample{}, false
	}

	importance := 1.0 / (c.filmArea * cosTheta * cosTheta * cosTheta * dist * dist)
	return transport.LensSample{
		D:      dir.Negate(),
		Dist:   dist,
		Weight: core.Splat(importance),
		Pixel:  core.NewVec2(s*float64(c.width), t*float64(c.height)),
	}, true
}
