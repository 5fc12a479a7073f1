package storage

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dosada05/community-tournaments/models"
)

func TestImageKey(t *testing.T) {
	key, err := ImageKey("games", "g1", "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "games/g1/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	_, err = ImageKey("games", "g1", "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImageType)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPublicURL(t *testing.T) {
	tests := map[string]struct {
		base string
		key  string
		want string
	}{
		"host only":     {"https://cdn.example.com/", "games/a.png", "https://cdn.example.com/games/a.png"},
		"with path":     {"https://cdn.example.com/media/", "games/a.png", "https://cdn.example.com/media/games/a.png"},
		"leading slash": {"https://cdn.example.com/media/", "/games/a.png", "https://cdn.example.com/media/games/a.png"},
		"empty key":     {"https://cdn.example.com/", "", ""},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			base, err := url.Parse(tc.base)
			require.NoError(t, err)
			assert.Equal(t, tc.want, publicURL(base, tc.key))
		})
	}
}
