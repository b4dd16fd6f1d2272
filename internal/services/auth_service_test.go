// internal/services/auth_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name   string
		prefix string
	}{
		{"Sunrise Motors", "sunrise-motors-"},
		{"  Valley  Auto Group  ", "valley-auto-group-"},
		{"AutoMax 2000", "automax-2000-"},
		{"Déjà Vu Cars", "d-j-vu-cars-"},
	}

	for _, tc := range cases {
		slug := slugify(tc.name)
		assert.True(t, strings.HasPrefix(slug, tc.prefix), "%q -> %q", tc.name, slug)
		// The random suffix is always 8 hex chars.
		assert.Len(t, slug, len(tc.prefix)+8)
	}
}

func TestSlugifyEmptyName(t *testing.T) {
	slug := slugify("!!!")
	require.Len(t, slug, 8)
	assert.NotContains(t, slug, "-")
}

func TestSlugifyUnique(t *testing.T) {
	a := slugify("Sunrise Motors")
	b := slugify("Sunrise Motors")
	assert.NotEqual(t, a, b)
}
