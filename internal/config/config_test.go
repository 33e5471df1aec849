package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCORSOrigins(t *testing.T) {
	t.Parallel()

	t.Run("defaults only", func(t *testing.T) {
		origins := Config{}.CORSOrigins()
		assert.Equal(t, defaultOrigins, origins)
	})

	t.Run("client url appended", func(t *testing.T) {
		cfg := Config{ClientURL: "https://app.example.com"}
		assert.Contains(t, cfg.CORSOrigins(), "https://app.example.com")
	})

	t.Run("comma separated extras trimmed", func(t *testing.T) {
		cfg := Config{AllowedOrigins: " https://a.example.com , https://b.example.com ,"}
		origins := cfg.CORSOrigins()
		assert.Contains(t, origins, "https://a.example.com")
		assert.Contains(t, origins, "https://b.example.com")
		assert.Len(t, origins, len(defaultOrigins)+2)
	})
}
