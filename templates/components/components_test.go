package components

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectOptions(t *testing.T) {
	var buf bytes.Buffer
	err := SelectOptions("Select a province", []Option{
		{Value: "p-1", Label: "Cañete"},
		{Value: `"x"`, Label: "<script>alert(1)</script>Lima"},
		{Value: "p-3", Label: "A & B"},
	}).Render(context.Background(), &buf)
	require.NoError(t, err)

	html := buf.String()
	assert.Contains(t, html, `<option value="">Select a province</option>`)
	assert.Contains(t, html, `<option value="p-1">Cañete</option>`)
	assert.Contains(t, html, `<option value="&#34;x&#34;">Lima</option>`)
	assert.Contains(t, html, `A &amp; B`)
	assert.NotContains(t, html, "<script>")
}

func TestJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, JSON(map[string]int{"a": 1}))
	assert.Equal(t, "{}", JSON(make(chan int)))
	assert.Equal(t, `"\u003c/script\u003e"`, JSON("</script>"))
}
