package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"lambert-point", "Lambert Point"},
		{"dragon_gold", "Dragon Gold"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestListPresets(t *testing.T) {
	infos := ListPresets()
	require.Len(t, infos, len(presets))

	for i := 1; i < len(infos); i++ {
		assert.Less(t, infos[i-1].Name, infos[i].Name, "presets are sorted by name")
	}
	for _, info := range infos {
		assert.NotEmpty(t, info.Description, info.Name)
		assert.NotEmpty(t, info.DisplayName, info.Name)
	}
}

func TestNewPresetBuildsEveryPreset(t *testing.T) {
	for _, info := range ListPresets() {
		t.Run(info.Name, func(t *testing.T) {
			p, err := NewPreset(info.Name)
			require.NoError(t, err)

			assert.Equal(t, info.Name, p.Name)
			assert.NotEmpty(t, p.Scene.Lights())
			assert.NotEmpty(t, p.Scene.Primitives())
			assert.NoError(t, p.Config.Validate())
			assert.Positive(t, p.Camera.Width)
			if p.HasReference {
				assert.Positive(t, p.Reference)
			}
		})
	}
}

func TestNewPresetUnknown(t *testing.T) {
	p, err := NewPreset("does-not-exist")
	assert.ErrorIs(t, err, ErrUnknownPreset)
	assert.Nil(t, p)
}

func TestLambertReferences(t *testing.T) {
	p, err := NewPreset("lambert-point")
	require.NoError(t, err)
	assert.InDelta(t, 1.4067, p.Reference, 1e-4)

	p, err = NewPreset("lambert-sphere")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.Reference, 1e-12)
}
