package coach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryDefaults(t *testing.T) {
	r := NewRegistry()

	m := r.Get("v")
	assert.Equal(t, "v", m.Label)
	assert.Equal(t, "", m.Unit)
	assert.Equal(t, "v", m.DisplayLabel())
	assert.False(t, r.Has("v"))
}

func TestRegistryLastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.Set("t", "s", "Time")
	r.Set("t", "", "Tijd")

	m := r.Get("t")
	assert.Equal(t, "Tijd", m.Label)
	assert.Equal(t, "s", m.Unit, "empty unit keeps the previous one")
	assert.Equal(t, "Tijd (s)", m.DisplayLabel())
}

func TestRegistryUnitOnly(t *testing.T) {
	r := NewRegistry()
	r.Set("v", "m/s", "")

	assert.Equal(t, "v (m/s)", r.Get("v").DisplayLabel())
	assert.True(t, r.Has("v"))
}

func TestRegistryNamesOrder(t *testing.T) {
	r := NewRegistry()
	r.Set("y", "m", "")
	r.Set("t", "s", "")
	r.Set("y", "", "Height")

	assert.Equal(t, []string{"y", "t"}, r.Names())
}

func TestDisplayLabel(t *testing.T) {
	tests := []struct {
		meta     Metadata
		expected string
	}{
		{Metadata{Label: "Time", Unit: "s"}, "Time (s)"},
		{Metadata{Label: "Count"}, "Count"},
		{Metadata{Label: "Speed", Unit: "m/s"}, "Speed (m/s)"},
	}

	for _, tc := range tests {
		if got := tc.meta.DisplayLabel(); got != tc.expected {
			t.Errorf("DisplayLabel(%+v) = %q, expected %q", tc.meta, got, tc.expected)
		}
	}
}
