package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/df07/go-light-transport/pkg/core"
	"github.com/df07/go-light-transport/pkg/geometry"
	"github.com/df07/go-light-transport/pkg/integrator"
	"github.com/df07/go-light-transport/pkg/lights"
	"github.com/df07/go-light-transport/pkg/material"
	"github.com/df07/go-light-transport/pkg/medium"
	"github.com/df07/go-light-transport/pkg/renderer"
	"github.com/df07/go-light-transport/pkg/transport"
)

// ErrUnknownPreset is returned by NewPreset for names not in the registry
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a ready-to-estimate scene with its camera and driver settings
type Preset struct {
	Name   string
	Scene  *Scene
	Camera renderer.CameraConfig
	Config integrator.Config
	Medium transport.Medium // medium the camera sits in

	// Reference is the closed-form radiance through the center of the
	// film, valid when HasReference is set
	Reference    float64
	HasReference bool
}

// PresetInfo describes a registered preset
type PresetInfo struct {
	Name        string
	DisplayName string
	Description string
}

type presetEntry struct {
	description string
	build       func() (*Preset, error)
}

var presets = map[string]presetEntry{
	"lambert-point": {
		description: "diffuse sphere lit by a point light, direct lighting in closed form",
		build:       newLambertPointPreset,
	},
	"lambert-sphere": {
		description: "diffuse sphere under a spherical area light, exercises MIS",
		build:       newLambertSpherePreset,
	},
	"fog": {
		description: "scattering medium inside a transparent sphere over a checker floor",
		build:       newFogPreset,
	},
	"cornell": {
		description: "Cornell box with a mirror and a glass sphere",
		build:       NewCornellPreset,
	},
}

// ListPresets returns every registered preset sorted by name
func ListPresets() []PresetInfo {
	infos := make([]PresetInfo, 0, len(presets))
	for name, entry := range presets {
		infos = append(infos, PresetInfo{
			Name:        name,
			DisplayName: titleCase(name),
			Description: entry.description,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// NewPreset builds the named preset
func NewPreset(name string) (*Preset, error) {
	entry, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	p, err := entry.build()
	if err != nil {
		return nil, fmt.Errorf("building preset %q: %w", name, err)
	}
	p.Name = name
	return p, nil
}

// titleCase converts a preset name to title case
// e.g., "lambert-point" -> "Lambert Point"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

// frontCamera looks down -Z at the origin from (0,0,3)
func frontCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       64,
		AspectRatio: 1.0,
		VFov:        30.0,
	}
}

// black shades emitters that are hit by other paths
func black() transport.BSDF {
	return material.NewLambertian(core.Vec3{})
}

func newLambertPointPreset() (*Preset, error) {
	const albedo, intensity = 0.5, 100.0

	var b Builder
	b.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.Splat(albedo))))
	b.AddPointLight(core.NewVec3(0, 2, 3), core.Splat(intensity))

	s, err := b.Build()
	if err != nil {
		return nil, err
	}

	config := integrator.DefaultConfig()
	config.MaxBounces = 8

	// The center ray hits (0,0,1); the light is sqrt(8) away at 45 degrees
	d2 := 8.0
	cos := 1 / math.Sqrt2
	return &Preset{
		Scene:        s,
		Camera:       frontCamera(),
		Config:       config,
		Reference:    albedo / math.Pi * intensity / d2 * cos,
		HasReference: true,
	}, nil
}

func newLambertSpherePreset() (*Preset, error) {
	const albedo, radiance, radius, dist = 0.5, 64.0, 0.5, 4.0

	var b Builder
	b.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.Splat(albedo))))
	b.AddSphereLight(core.NewVec3(0, 0, 1+dist), radius, core.Splat(radiance), black())

	s, err := b.Build()
	if err != nil {
		return nil, err
	}

	config := integrator.DefaultConfig()
	config.MaxBounces = 8

	// A sphere fully above the horizon irradiates like a disc: E = π L (r/d)²
	return &Preset{
		Scene:        s,
		Camera:       frontCamera(),
		Config:       config,
		Reference:    albedo * radiance * (radius / dist) * (radius / dist),
		HasReference: true,
	}, nil
}

func newFogPreset() (*Preset, error) {
	fog, err := medium.NewHomogeneous(core.Splat(0.05), core.NewVec3(0.6, 0.5, 0.4), 0.3)
	if err != nil {
		return nil, err
	}

	var b Builder
	checker := material.NewChecker(core.Splat(0.8), core.Splat(0.1), 1.0)
	b.Add(NewGroundQuad(core.NewVec3(0, 0, 0), 20, material.NewTexturedLambertian(checker)))
	b.Add(geometry.NewSphere(core.NewVec3(0, 1.6, 0), 1.5, material.NewTransparent(fog, nil)))
	b.Add(geometry.NewSphere(core.NewVec3(0, 1.0, 0), 0.4, material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))))
	b.AddSphereLight(core.NewVec3(3, 5, 2), 0.7, core.Splat(30), black())
	b.AddLight(lights.NewSpotLight(core.NewVec3(-3, 6, 0), core.NewVec3(0, 0, 0), core.Splat(150), 25, 5))

	s, err := b.Build()
	if err != nil {
		return nil, err
	}

	config := integrator.DefaultConfig()
	config.MaxBounces = 32

	return &Preset{
		Scene: s,
		Camera: renderer.CameraConfig{
			Center:      core.NewVec3(0, 2, 7),
			LookAt:      core.NewVec3(0, 1.2, 0),
			Up:          core.NewVec3(0, 1, 0),
			Width:       160,
			AspectRatio: 16.0 / 9.0,
			VFov:        40.0,
		},
		Config: config,
	}, nil
}
