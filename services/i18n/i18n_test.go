package i18n

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatten(t *testing.T) {
	nested := map[string]interface{}{
		"validation": map[string]interface{}{
			"required": "Required",
			"phone": map[string]interface{}{
				"max": "Too long",
			},
		},
		"count": 123,
	}

	flat := make(map[string]string)
	flatten("", nested, flat)

	assert.Equal(t, "Required", flat["validation.required"])
	assert.Equal(t, "Too long", flat["validation.phone.max"])
	assert.Equal(t, "123", flat["count"])
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		args     map[string]interface{}
		expected string
	}{
		{"No placeholders", "Hello World", nil, "Hello World"},
		{"Single placeholder", "Region {id}", map[string]interface{}{"id": "r-1"}, "Region r-1"},
		{"Numeric placeholder", "At least {age} years", map[string]interface{}{"age": 18}, "At least 18 years"},
		{"Missing argument", "Hello {name}", map[string]interface{}{"other": "val"}, "Hello {name}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.args == nil {
				assert.Equal(t, tt.expected, format(tt.text))
				return
			}
			assert.Equal(t, tt.expected, format(tt.text, tt.args))
		})
	}
}

func TestCataloguesLoad(t *testing.T) {
	require.NoError(t, Load())
	assert.True(t, Supported("en"))
	assert.True(t, Supported("es"))
	assert.False(t, Supported("fr"))
}

func TestTranslateFallbacks(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, "This field is required.", Translate("en", "validation.required"))
	assert.Equal(t, "Este campo es obligatorio.", Translate("es", "validation.required"))
	// Unknown language falls back to English
	assert.Equal(t, "This field is required.", Translate("fr", "validation.required"))
	// Unknown key comes back unchanged
	assert.Equal(t, "no.such.key", Translate("es", "no.such.key"))
}

func TestCataloguesHaveSameKeys(t *testing.T) {
	require.NoError(t, Load())
	for key := range translations["en"] {
		_, ok := translations["es"][key]
		assert.True(t, ok, "missing es translation for %s", key)
	}
}

func TestT(t *testing.T) {
	require.NoError(t, Load())

	assert.Equal(t, "en", GetLocale(context.Background()))

	ctx := WithLocale(context.Background(), "es")
	assert.Equal(t, "es", GetLocale(ctx))
	assert.Equal(t, "Región con ID 7 no encontrado.",
		T(ctx, "errors.not_found", map[string]interface{}{"resource": "Región", "id": 7}))
}
