package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"uncertainty-gin/internal/chart"
	"uncertainty-gin/internal/i18n"
	"uncertainty-gin/internal/models"
	"uncertainty-gin/internal/render"
	"uncertainty-gin/internal/uncertainty"
	"uncertainty-gin/internal/utils"
)

func newCalcCommand(state *cliState) *cobra.Command {
	var (
		inputPath string
		lang      string
		format    string
		chartPath string
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Evaluate sessions read from a YAML or JSON file",
		Long: `Evaluate sessions read from a YAML or JSON file ("-" reads stdin).

Example input:

  sessions:
    - label: Day 1
      measurements: [10.01, 10.03, 10.02, 10.04, 10.02]
      extra_uncertainty: 0.005
    - label: Day 2
      measurements: [10.05, 10.02, 10.03, 10.04, 10.03]

Sessions without a label are named after their position.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := state.buildLogger("warn"); err != nil {
				return err
			}

			req, err := loadRequest(inputPath, cmd.InOrStdin())
			if err != nil {
				return err
			}

			tr := i18n.NewTranslator(i18n.Match(lang, os.Getenv("DEFAULT_LANGUAGE")))
			for i := range req.Sessions {
				if strings.TrimSpace(req.Sessions[i].Label) == "" {
					req.Sessions[i].Label = tr.DayLabel(i + 1)
				}
			}

			report := uncertainty.Evaluate(req.Sessions)
			state.logger.Debug("uncertainty evaluated",
				zap.String("input", inputPath),
				zap.Int("sessions", len(req.Sessions)),
				zap.Int("measurements", report.Aggregate.Count))

			if err := writeReport(cmd.OutOrStdout(), report, tr, format); err != nil {
				return err
			}

			if chartPath != "" {
				if err := writeChart(chartPath, report, tr); err != nil {
					return err
				}
				state.logger.Debug("chart written", zap.String("path", chartPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "file", "f", "-", "Input file with sessions (YAML or JSON, - for stdin)")
	cmd.Flags().StringVarP(&lang, "lang", "l", "", "Label language: tr or en (default DEFAULT_LANGUAGE, then tr)")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&chartPath, "chart", "", "Write the error-bar chart to this .svg or .png file")

	return cmd
}

func loadRequest(path string, stdin io.Reader) (*models.CalculationRequest, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var req models.CalculationRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse input: %w", err)
	}
	if len(req.Sessions) == 0 {
		return nil, fmt.Errorf("input has no sessions")
	}
	return &req, nil
}

func writeReport(w io.Writer, report models.Report, tr *i18n.Translator, format string) error {
	switch strings.ToLower(format) {
	case "text":
		return render.Text(w, report, tr)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported format %q", format)
}

func writeChart(path string, report models.Report, tr *i18n.Translator) (err error) {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if _, err := chart.ContentType(format); err != nil {
		return err
	}

	if err := utils.EnsureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()

	return chart.ErrorBar(f, chart.PointsFromReport(report), chart.Options{
		Title:  tr.T(i18n.ErrorBar),
		XLabel: tr.T(i18n.ChartXAxis),
		YLabel: tr.T(i18n.ChartYAxis),
		Format: format,
	})
}
