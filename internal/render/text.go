package render

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"uncertainty-gin/internal/i18n"
	"uncertainty-gin/internal/models"
	"uncertainty-gin/internal/utils"
)

// Line is one labelled value of a report section.
type Line struct {
	Label string
	Value string
}

// Section is a titled group of report lines.
type Section struct {
	Title string
	Lines []Line
}

// Sections lays out report the way it is shown to the user: one section per
// session followed by the general results. Values carry four decimals.
func Sections(report models.Report, tr *i18n.Translator) []Section {
	out := make([]Section, 0, len(report.Sessions)+1)
	for _, s := range report.Sessions {
		out = append(out, Section{
			Title: fmt.Sprintf("%s %s", s.Label, tr.T(i18n.Results)),
			Lines: []Line{
				{tr.T(i18n.Average), utils.FormatValue(s.Average.Float())},
				{tr.T(i18n.Uncertainty), utils.FormatValue(s.TotalUncertainty.Float())},
				{tr.T(i18n.ExpandedUncertainty), utils.FormatValue(s.ExpandedUncertainty.Float())},
				{tr.T(i18n.Repeatability), utils.FormatValue(s.Repeatability.Float())},
			},
		})
	}

	agg := report.Aggregate
	out = append(out, Section{
		Title: tr.T(i18n.GeneralResults),
		Lines: []Line{
			{tr.T(i18n.GeneralAverage), utils.FormatValue(agg.Average.Float())},
			{tr.T(i18n.BetweenDays), utils.FormatValue(agg.BetweenSessionRepeatability.Float())},
			{tr.T(i18n.WithinDays), utils.FormatValue(agg.WithinSessionRepeatability.Float())},
			{tr.T(i18n.GeneralUncertainty), utils.FormatValue(agg.StandardUncertainty.Float())},
			{tr.T(i18n.ExpandedUncertainty), utils.FormatValue(agg.ExpandedUncertainty.Float())},
		},
	})
	return out
}

// Text writes report as markdown-style text.
func Text(w io.Writer, report models.Report, tr *i18n.Translator) error {
	bw := bufio.NewWriter(w)
	sections := Sections(report, tr)
	for i, sec := range sections {
		heading := "###"
		if i == len(sections)-1 {
			heading = "##"
		}
		fmt.Fprintf(bw, "%s %s\n", heading, sec.Title)
		for _, l := range sec.Lines {
			fmt.Fprintf(bw, "**%s:** %s\n", l.Label, l.Value)
		}
		if i < len(sections)-1 {
			bw.WriteString("\n")
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// TextString renders report with Text into a string.
func TextString(report models.Report, tr *i18n.Translator) string {
	var sb strings.Builder
	_ = Text(&sb, report, tr) // strings.Builder never fails
	return sb.String()
}
