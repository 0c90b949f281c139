package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLedgerDescription(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render("Tutoring Payment – {{ .Title }} ({{ .Date }} {{ .Time }})", &Context{
		Title: "Algebra", Date: "2024-06-03", Time: "09:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "Tutoring Payment – Algebra (2024-06-03 09:00:00)", out)
}

func TestRenderSprigFuncs(t *testing.T) {
	r := NewRenderer()
	out, err := r.Render(`{{ .Title | upper }} {{ .ClientName | default "walk-in" }} {{ trunc 5 .Time }}`, &Context{Title: "math", Time: "14:30:00"})
	require.NoError(t, err)
	assert.Equal(t, "MATH walk-in 14:30", out)
}

func TestRenderCachesAndRejectsBadTemplates(t *testing.T) {
	r := NewRenderer()
	_, err := r.Render("{{ .Title", &Context{})
	assert.Error(t, err)

	_, err = r.Render("{{ .Title }}", &Context{Title: "a"})
	require.NoError(t, err)
	_, err = r.Render("{{ .Title }}", &Context{Title: "b"})
	require.NoError(t, err)
	assert.Len(t, r.templates, 1)
}

func TestBookingFuncs(t *testing.T) {
	assert.Equal(t, "2:30PM", clock("14:30:00"))
	assert.Equal(t, "soon", clock("soon"))
	assert.Equal(t, "Monday", weekday("2024-06-03"))
	assert.Equal(t, "", weekday("06/03/2024"))
	assert.Equal(t, "45.50", money("45.5"))
	assert.Equal(t, "", money("n/a"))

	addons := `{"recording":true,"materials":["worksheet","slides"]}`
	assert.Equal(t, "true", addon("recording", addons))
	assert.Equal(t, "slides", addon("materials.1", addons))
	assert.Equal(t, "", addon("missing", addons))
	assert.Equal(t, "", addon("recording", ""))

	r := NewRenderer()
	out, err := r.Render(`{{ weekday .Date }} {{ clock .Time }} ${{ money .Amount }}{{ if eq (addon "recording" .Addons) "true" }} +recording{{ end }}`, &Context{
		Date: "2024-06-03", Time: "09:00:00", Amount: "60", Addons: addons,
	})
	require.NoError(t, err)
	assert.Equal(t, "Monday 9:00AM $60.00 +recording", out)
}
