package scene

import (
	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/transport"
)

// cornellSize is the edge length of the standard Cornell box
const cornellSize = 555.0

// NewCornellPreset creates the Cornell box with a ceiling light, a mirror
// sphere and a glass sphere. Long specular chains get a large bounce budget.
func NewCornellPreset() (*Preset, error) {
	white := material.NewLambertian(core.Splat(0.73))
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	x := core.NewVec3(cornellSize, 0, 0)
	y := core.NewVec3(0, cornellSize, 0)
	z := core.NewVec3(0, 0, cornellSize)

	walls := []struct {
		corner, u, v core.Vec3
		bsdf         transport.BSDF
	}{
		{core.Vec3{}, x, z, white}, // floor
		{y, x, z, white},           // ceiling
		{z, x, y, white},           // back
		{core.Vec3{}, z, y, red},   // left
		{x, y, z, green},           // right
	}

	var b Builder
	for _, w := range walls {
		b.Add(geometry.NewQuad(w.corner, w.u, w.v, w.bsdf))
	}

	// x × z points down into the box
	const lightSize = 130.0
	offset := (cornellSize - lightSize) / 2
	b.AddQuadLight(core.NewVec3(offset, cornellSize-1, offset),
		core.NewVec3(lightSize, 0, 0), core.NewVec3(0, 0, lightSize),
		core.Splat(15), black())

	b.Add(
		geometry.NewSphere(core.NewVec3(185, 82.5, 169), 82.5, material.NewMirror(core.NewVec3(0.8, 0.8, 0.9))),
		geometry.NewSphere(core.NewVec3(370, 90, 351), 90, material.NewDielectric(1.5)),
	)

	s, err := b.Build()
	if err != nil {
		return nil, err
	}

	config := integrator.DefaultConfig()
	config.MaxBounces = 40
	config.RussianRouletteMinBounces = 4

	return &Preset{
		Scene: s,
		Camera: renderer.CameraConfig{
			Center:      core.NewVec3(278, 278, -800),
			LookAt:      core.NewVec3(278, 278, 0),
			Up:          core.NewVec3(0, 1, 0),
			Width:       400,
			AspectRatio: 1.0,
			VFov:        40.0,
		},
		Config: config,
	}, nil
}
