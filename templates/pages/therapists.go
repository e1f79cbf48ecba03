package pages

import (
	"context"
	"io"
	"net/url"
	"strings"

	"reflexo_app_go/models"
	"reflexo_app_go/services/i18n"
	"reflexo_app_go/templates/components"

	"github.com/a-h/templ"
)

const pageStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#1f2937}
table{border-collapse:collapse;width:100%;margin-top:1rem}
th,td{border-bottom:1px solid #e5e7eb;padding:.5rem;text-align:left}
.inactive{color:#9ca3af}
fieldset{margin-top:2rem;border:1px solid #e5e7eb;padding:1rem}`

// htmlWriter accumulates markup; text passed to text and attr is escaped
type htmlWriter struct {
	strings.Builder
}

func (w *htmlWriter) raw(s string) {
	w.WriteString(s)
}

func (w *htmlWriter) text(s string) {
	w.WriteString(templ.EscapeString(s))
}

// TherapistsPage renders the therapist list with search, the active/inactive toggle
// and a cascading region/province/district picker driven by HTMX
func TherapistsPage(data TherapistsPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		t := func(key string) string { return i18n.T(ctx, key) }
		w := &htmlWriter{}

		w.raw(`<!DOCTYPE html><html lang="`)
		w.text(data.Lang)
		w.raw(`"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		w.text(t("pages.therapists.title"))
		w.raw(`</title><style nonce="`)
		w.text(data.Nonce)
		w.raw(`">`)
		w.raw(pageStyle)
		w.raw(`</style><script src="https://unpkg.com/htmx.org@1.9.12" nonce="`)
		w.text(data.Nonce)
		w.raw(`"></script></head><body><h1>`)
		w.text(t("pages.therapists.title"))
		w.raw(`</h1>`)

		writeSearchForm(w, t, data)
		writeTherapistTable(w, t, data.Therapists)
		if err := writeLocationPicker(ctx, w, t, data); err != nil {
			return err
		}

		w.raw(`<script type="application/json" id="regions-data" nonce="`)
		w.text(data.Nonce)
		w.raw(`">`)
		w.raw(components.JSON(data.Regions))
		w.raw(`</script></body></html>`)

		_, err := io.WriteString(out, w.String())
		return err
	})
}

func writeSearchForm(w *htmlWriter, t func(string) string, data TherapistsPageData) {
	active := "true"
	toggleActive, toggleLabel := "false", t("pages.therapists.show_inactive")
	if data.ShowInactive {
		active = "false"
		toggleActive, toggleLabel = "true", t("pages.therapists.show_active")
	}

	w.raw(`<form method="get" action="/"><input type="search" name="search" value="`)
	w.text(data.Search)
	w.raw(`" placeholder="`)
	w.text(t("pages.therapists.search"))
	w.raw(`"><input type="hidden" name="active" value="`)
	w.text(active)
	w.raw(`"><button type="submit">`)
	w.text(t("pages.therapists.search"))
	w.raw(`</button></form>`)

	query := url.Values{"active": {toggleActive}}
	if data.Search != "" {
		query.Set("search", data.Search)
	}
	w.raw(`<p><a href="/?`)
	w.text(query.Encode())
	w.raw(`">`)
	w.text(toggleLabel)
	w.raw(`</a></p>`)
}

func writeTherapistTable(w *htmlWriter, t func(string) string, therapists []models.Therapist) {
	if len(therapists) == 0 {
		w.raw(`<p>`)
		w.text(t("pages.therapists.empty"))
		w.raw(`</p>`)
		return
	}

	w.raw(`<table><thead><tr>`)
	for _, col := range []string{"name", "document", "phone", "email", "location", "status"} {
		w.raw(`<th>`)
		w.text(t("pages.therapists.columns." + col))
		w.raw(`</th>`)
	}
	w.raw(`</tr></thead><tbody>`)

	for _, th := range therapists {
		status := t("pages.therapists.active")
		if !th.IsActive {
			status = t("pages.therapists.inactive")
			w.raw(`<tr class="inactive">`)
		} else {
			w.raw(`<tr>`)
		}
		cells := []string{
			th.DisplayName(),
			th.DocumentType + " " + th.DocumentNumber,
			th.Phone,
			deref(th.Email),
			locationLabel(th),
			status,
		}
		for _, cell := range cells {
			w.raw(`<td>`)
			w.text(cell)
			w.raw(`</td>`)
		}
		w.raw(`</tr>`)
	}
	w.raw(`</tbody></table>`)
}

func writeLocationPicker(ctx context.Context, w *htmlWriter, t func(string) string, data TherapistsPageData) error {
	options := make([]components.Option, len(data.Regions))
	for i, r := range data.Regions {
		options[i] = components.Option{Value: r.ID, Label: r.Name}
	}

	w.raw(`<fieldset><legend>`)
	w.text(t("pages.therapists.columns.location"))
	w.raw(`</legend>`)
	w.raw(`<select name="region_id" hx-get="/provinces" hx-target="#province" hx-trigger="change">`)
	if err := components.SelectOptions("", options).Render(ctx, w); err != nil {
		return err
	}
	w.raw(`</select>`)
	w.raw(`<select id="province" name="province_id" hx-get="/districts" hx-target="#district" hx-trigger="change"><option value="">`)
	w.text(t("pages.locations.select_province"))
	w.raw(`</option></select>`)
	w.raw(`<select id="district" name="district_id"><option value="">`)
	w.text(t("pages.locations.select_district"))
	w.raw(`</option></select></fieldset>`)
	return nil
}

// locationLabel renders "District, Province, Region", skipping missing levels
func locationLabel(th models.Therapist) string {
	var parts []string
	if th.District != nil {
		parts = append(parts, th.District.Name)
	}
	if th.Province != nil {
		parts = append(parts, th.Province.Name)
	}
	if th.Region != nil {
		parts = append(parts, th.Region.Name)
	}
	return strings.Join(parts, ", ")
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
