package core

import "strings"

// Lobes is a bitmask of the scattering components a BSDF can produce
type Lobes uint32

const (
	GlossyReflectionLobe Lobes = 1 << iota
	GlossyTransmissionLobe
	DiffuseReflectionLobe
	DiffuseTransmissionLobe
	SpecularReflectionLobe
	SpecularTransmissionLobe
	AnisotropicLobe
	ForwardLobe

	NullLobe Lobes = 0

	GlossyLobe       = GlossyReflectionLobe | GlossyTransmissionLobe
	DiffuseLobe      = DiffuseReflectionLobe | DiffuseTransmissionLobe
	SpecularLobe     = SpecularReflectionLobe | SpecularTransmissionLobe
	TransmissiveLobe = GlossyTransmissionLobe | DiffuseTransmissionLobe | SpecularTransmissionLobe | ForwardLobe

	AllLobes       = GlossyLobe | DiffuseLobe | SpecularLobe | AnisotropicLobe | ForwardLobe
	AllButSpecular = AllLobes &^ SpecularLobe
)

var lobeNames = []struct {
	lobe Lobes
	name string
}{
	{GlossyReflectionLobe, "glossyReflection"},
	{GlossyTransmissionLobe, "glossyTransmission"},
	{DiffuseReflectionLobe, "diffuseReflection"},
	{DiffuseTransmissionLobe, "diffuseTransmission"},
	{SpecularReflectionLobe, "specularReflection"},
	{SpecularTransmissionLobe, "specularTransmission"},
	{AnisotropicLobe, "anisotropic"},
	{ForwardLobe, "forward"},
}

// Test reports whether any of the given lobes are set
func (l Lobes) Test(other Lobes) bool {
	return l&other != 0
}

// IsPureSpecular reports a non-empty mask made only of specular lobes
func (l Lobes) IsPureSpecular() bool {
	return l != NullLobe && l&^SpecularLobe == 0
}

// IsForward reports a mask that only passes light straight through
func (l Lobes) IsForward() bool {
	return l == ForwardLobe
}

// IsTransmissive reports whether any lobe transmits light
func (l Lobes) IsTransmissive() bool {
	return l.Test(TransmissiveLobe)
}

// HasSpecular reports whether any specular lobe is set
func (l Lobes) HasSpecular() bool {
	return l.Test(SpecularLobe)
}

func (l Lobes) String() string {
	if l == NullLobe {
		return "null"
	}
	var names []string
	for _, ln := range lobeNames {
		if l&ln.lobe != 0 {
			names = append(names, ln.name)
		}
	}
	return strings.Join(names, "|")
}
