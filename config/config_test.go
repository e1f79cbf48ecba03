package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		fallback bool
		expected bool
	}{
		{"true literal", "true", false, true},
		{"numeric one", "1", false, true},
		{"yes mixed case", "YeS", false, true},
		{"off", "off", true, false},
		{"garbage keeps default", "maybe", true, true},
		{"empty keeps default", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REFLEXO_TEST_BOOL", tt.value)
			assert.Equal(t, tt.expected, getEnvBool("REFLEXO_TEST_BOOL", tt.fallback))
		})
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("REFLEXO_TEST_INT", "25")
	assert.Equal(t, 25, getEnvInt("REFLEXO_TEST_INT", 60))

	t.Setenv("REFLEXO_TEST_INT", "-3")
	assert.Equal(t, 60, getEnvInt("REFLEXO_TEST_INT", 60))

	t.Setenv("REFLEXO_TEST_INT", "abc")
	assert.Equal(t, 60, getEnvInt("REFLEXO_TEST_INT", 60))
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("SEED_LOCATIONS", "")
	t.Setenv("TURSO_DATABASE_URL", "")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.LogFormat)
	assert.False(t, cfg.SeedLocations)
	assert.False(t, cfg.UsesTurso())
	assert.False(t, cfg.R2Configured())
}
