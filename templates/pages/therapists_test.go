package pages

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"reflexo_app_go/models"
	"reflexo_app_go/services"
	"reflexo_app_go/services/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := i18n.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load translations: %v\n", err)
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func render(t *testing.T, ctx context.Context, data TherapistsPageData) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, TherapistsPage(data).Render(ctx, &buf))
	return buf.String()
}

func TestTherapistsPageEscapesNames(t *testing.T) {
	maternal := "<b>López</b>"
	html := render(t, context.Background(), TherapistsPageData{
		Lang:  "en",
		Nonce: "abc123",
		Therapists: []models.Therapist{{
			FirstName:        "<script>alert(1)</script>",
			LastNamePaternal: "García",
			LastNameMaternal: &maternal,
			DocumentType:     models.DocumentTypeDNI,
			DocumentNumber:   "12345678",
			BirthDate:        time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			IsActive:         true,
			District:         &models.District{Name: "Miraflores"},
		}},
		Regions: []services.RegionOption{{ID: "r-1", Name: "Lima"}},
	})

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt; García &lt;b&gt;López&lt;/b&gt;")
	assert.Contains(t, html, "<td>Miraflores</td>")
	assert.Contains(t, html, `nonce="abc123"`)
	assert.Contains(t, html, `<option value="r-1">Lima</option>`)
	assert.Contains(t, html, `id="regions-data"`)
	assert.Contains(t, html, "Show inactive")
}

func TestTherapistsPageEmptyInSpanish(t *testing.T) {
	ctx := i18n.WithLocale(context.Background(), "es")
	html := render(t, ctx, TherapistsPageData{Lang: "es", ShowInactive: true, Search: "zz"})

	assert.Contains(t, html, `<html lang="es">`)
	assert.Contains(t, html, i18n.Translate("es", "pages.therapists.empty"))
	assert.Contains(t, html, `href="/?active=true&amp;search=zz"`)
	assert.Contains(t, html, `name="active" value="false"`)
}

func TestLocationLabel(t *testing.T) {
	th := models.Therapist{
		District: &models.District{Name: "Miraflores"},
		Region:   &models.Region{Name: "Lima"},
	}
	assert.Equal(t, "Miraflores, Lima", locationLabel(th))
	assert.Equal(t, "", locationLabel(models.Therapist{}))
}
