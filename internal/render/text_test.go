package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uncertainty-gin/internal/i18n"
	"uncertainty-gin/internal/models"
	"uncertainty-gin/internal/uncertainty"
)

func sampleReport() models.Report {
	repeats := []float64{1, 2, 3, 4, 5}
	return uncertainty.Evaluate([]models.Session{
		{Label: "Day 1", Measurements: repeats},
		{Label: "Day 2", Measurements: repeats},
		{Label: "Day 3", Measurements: []float64{7}},
	})
}

func TestTextEnglish(t *testing.T) {
	out := TextString(sampleReport(), i18n.NewTranslator(i18n.Match("en")))

	assert.True(t, strings.HasPrefix(out, "### Day 1 Results\n**Average:** 3.0000\n"))
	assert.Contains(t, out, "**Uncertainty:** 0.7071\n**Expanded Uncertainty (k=2):** 1.4142\n**Repeatability:** 1.5811\n")
	assert.Contains(t, out, "### Day 3 Results\n**Average:** 7.0000\n**Uncertainty:** NaN\n")
	assert.Contains(t, out, "\n## General Results\n**General Average:** 3.3636\n")
	assert.Contains(t, out, "**Between Days Repeatability:** 2.3094\n")
	assert.Equal(t, 3, strings.Count(out, "### "))
}

func TestTextTurkishOnlyChangesLabels(t *testing.T) {
	report := sampleReport()
	en := TextString(report, i18n.NewTranslator(i18n.Match("en")))
	tr := TextString(report, i18n.NewTranslator(i18n.Match("tr")))

	assert.Contains(t, tr, "### Day 1 Sonuçlar\n**Ortalama:** 3.0000\n")
	assert.Contains(t, tr, "## Genel Sonuçlar\n")
	assert.Contains(t, tr, "**Gün İçi Tekrarlanabilirlik:**")

	values := func(s string) []string {
		var out []string
		for _, line := range strings.Split(s, "\n") {
			if i := strings.LastIndex(line, ":** "); i >= 0 {
				out = append(out, line[i+4:])
			}
		}
		return out
	}
	assert.Equal(t, values(en), values(tr))
}

func TestSectionsLayout(t *testing.T) {
	sections := Sections(sampleReport(), i18n.NewTranslator(i18n.Match("en")))

	require.Len(t, sections, 4)
	assert.Equal(t, "Day 2 Results", sections[1].Title)
	assert.Len(t, sections[1].Lines, 4)
	assert.Equal(t, "General Results", sections[3].Title)
	assert.Len(t, sections[3].Lines, 5)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestTextReportsWriteErrors(t *testing.T) {
	err := Text(failingWriter{}, sampleReport(), i18n.NewTranslator(i18n.Match("en")))
	assert.ErrorContains(t, err, "disk full")
}
