package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name         string
		displayName  string
		expectedSlug string
	}{
		{name: "override applied", displayName: "United Kingdom", expectedSlug: "Unitedkingdom"},
		{name: "override applied usa", displayName: "United States", expectedSlug: "Usa"},
		{name: "default transform no-op", displayName: "Brazil", expectedSlug: "Brazil"},
		{name: "spaces removed", displayName: "New Zealand", expectedSlug: "NewZealand"},
		{name: "periods removed", displayName: "St. Lucia", expectedSlug: "StLucia"},
		{name: "case preserved", displayName: "SouthAfrica", expectedSlug: "SouthAfrica"},
		{name: "whitespace trimmed before override lookup", displayName: "  United Kingdom  ", expectedSlug: "Unitedkingdom"},
		{name: "unknown country never fails", displayName: "Atlantis", expectedSlug: "Atlantis"},
	}

	r := New(nil)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			country := r.Resolve(tc.displayName)
			assert.Equal(t, tc.expectedSlug, country.Slug)
		})
	}
}

func TestResolveCustomOverrides(t *testing.T) {
	r := New(map[string]string{"Ivory Coast": "Cotedivoire"})

	assert.Equal(t, "Cotedivoire", r.Resolve("Ivory Coast").Slug)

	// A custom table replaces the defaults entirely.
	assert.Equal(t, "UnitedKingdom", r.Resolve("United Kingdom").Slug)
}

func TestResolveKeepsDisplayName(t *testing.T) {
	country := New(nil).Resolve(" United Kingdom ")

	assert.Equal(t, "United Kingdom", country.DisplayName)
	assert.Equal(t, "Unitedkingdom", country.Slug)
}
