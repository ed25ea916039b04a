// Package i18n holds the display labels of the application in Turkish and
// English. Only labels are translated; numbers are always formatted the same
// way regardless of the selected language.
package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	Title               = "title"
	Day                 = "day"
	MeasurementPrompt   = "measurement_prompt"
	Repeat              = "repeat"
	ExtraUncertainty    = "extra_uncertainty"
	Calculate           = "calculate"
	Results             = "results"
	Average             = "average"
	Uncertainty         = "uncertainty"
	ExpandedUncertainty = "expanded_uncertainty"
	Repeatability       = "repeatability"
	GeneralResults      = "general_results"
	GeneralAverage      = "general_average"
	BetweenDays         = "between_days"
	WithinDays          = "within_days"
	GeneralUncertainty  = "general_uncertainty"
	ErrorBar            = "error_bar"
	ChartXAxis          = "chart_x_axis"
	ChartYAxis          = "chart_y_axis"
	LanguageLabel       = "language"
)

// Language is a selectable display language.
type Language struct {
	Tag  language.Tag
	Code string
	Name string
}

// Languages lists the supported languages; the first one is the fallback.
var Languages = []Language{
	{Tag: language.Turkish, Code: "tr", Name: "Türkçe"},
	{Tag: language.English, Code: "en", Name: "English"},
}

var messages = map[string]map[string]string{
	"tr": {
		Title:               "Belirsizlik Hesaplama Uygulaması",
		Day:                 "%d. Gün",
		MeasurementPrompt:   "%s İçin Ölçüm Sonucu Girin",
		Repeat:              "%s - Tekrar %d",
		ExtraUncertainty:    "%s İçin Ekstra Belirsizlik Bileşeni (Opsiyonel)",
		Calculate:           "Sonuçları Hesapla",
		Results:             "Sonuçlar",
		Average:             "Ortalama",
		Uncertainty:         "Belirsizlik",
		ExpandedUncertainty: "Genişletilmiş Belirsizlik (k=2)",
		Repeatability:       "Tekrarlanabilirlik",
		GeneralResults:      "Genel Sonuçlar",
		GeneralAverage:      "Genel Ortalama",
		BetweenDays:         "Günler Arası Tekrarlanabilirlik",
		WithinDays:          "Gün İçi Tekrarlanabilirlik",
		GeneralUncertainty:  "Belirsizlik",
		ErrorBar:            "Hata Barı Grafiği",
		ChartXAxis:          "Günler",
		ChartYAxis:          "Ölçüm Ortalaması",
		LanguageLabel:       "Dil / Language",
	},
	"en": {
		Title:               "Uncertainty Calculation App",
		Day:                 "Day %d",
		MeasurementPrompt:   "Enter Measurement Results for %s",
		Repeat:              "%s - Repeat %d",
		ExtraUncertainty:    "Extra Uncertainty Component for %s (Optional)",
		Calculate:           "Calculate Results",
		Results:             "Results",
		Average:             "Average",
		Uncertainty:         "Uncertainty",
		ExpandedUncertainty: "Expanded Uncertainty (k=2)",
		Repeatability:       "Repeatability",
		GeneralResults:      "General Results",
		GeneralAverage:      "General Average",
		BetweenDays:         "Between Days Repeatability",
		WithinDays:          "Within Days Repeatability",
		GeneralUncertainty:  "Uncertainty",
		ErrorBar:            "Error Bar Graph",
		ChartXAxis:          "Days",
		ChartYAxis:          "Measurement Average",
		LanguageLabel:       "Dil / Language",
	},
}

var (
	labels  = mustBuildCatalog()
	matcher = language.NewMatcher(tags())
)

func tags() []language.Tag {
	out := make([]language.Tag, len(Languages))
	for i, l := range Languages {
		out[i] = l.Tag
	}
	return out
}

func mustBuildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(Languages[0].Tag))
	for _, l := range Languages {
		for key, msg := range messages[l.Code] {
			if err := b.SetString(l.Tag, key, msg); err != nil {
				panic(fmt.Sprintf("i18n: %s/%s: %v", l.Code, key, err))
			}
		}
	}
	return b
}

// Match picks the supported language that best fits the given preferences,
// tried in order. A preference may be a language code ("tr"), a display name
// ("English") or an Accept-Language header value. Empty and unparsable
// preferences are skipped; the first supported language is the fallback.
func Match(prefs ...string) Language {
	for _, p := range prefs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for _, l := range Languages {
			if strings.EqualFold(p, l.Name) || strings.EqualFold(p, l.Code) {
				return l
			}
		}
		wanted, _, err := language.ParseAcceptLanguage(p)
		if err != nil || len(wanted) == 0 {
			continue
		}
		_, idx, conf := matcher.Match(wanted...)
		if conf != language.No {
			return Languages[idx]
		}
	}
	return Languages[0]
}

// Translator resolves labels for one language.
type Translator struct {
	lang    Language
	printer *message.Printer
}

// NewTranslator returns a Translator for lang.
func NewTranslator(lang Language) *Translator {
	return &Translator{
		lang:    lang,
		printer: message.NewPrinter(lang.Tag, message.Catalog(labels)),
	}
}

// Language returns the language the translator renders.
func (t *Translator) Language() Language { return t.lang }

// T returns the label for key, formatted with args.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// DayLabel returns the label of the i-th session, counting from 1.
func (t *Translator) DayLabel(i int) string {
	return t.T(Day, i)
}

// DayLabels returns the labels of the first n sessions.
func (t *Translator) DayLabels(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = t.DayLabel(i + 1)
	}
	return out
}
