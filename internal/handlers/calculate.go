package handlers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"uncertainty-gin/internal/chart"
	"uncertainty-gin/internal/config"
	"uncertainty-gin/internal/i18n"
	"uncertainty-gin/internal/middleware"
	"uncertainty-gin/internal/models"
	"uncertainty-gin/internal/render"
	"uncertainty-gin/internal/uncertainty"
)

// --- Form view model ---

type formField struct {
	Name  string
	Label string
	Value string
}

type formSession struct {
	Prompt  string
	Repeats []formField
	Extra   formField
}

type pageData struct {
	Lang           string
	Languages      []i18n.Language
	Title          string
	LanguageLabel  string
	CalculateLabel string
	Sessions       []formSession
	Error          string
	Sections       []render.Section
	ChartTitle     string
	ChartURI       template.URL
}

// Handler serves the calculation form and the JSON API.
type Handler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// New returns a Handler using cfg for the form layout and request limits.
func New(cfg *config.Config, logger *zap.Logger) *Handler {
	return &Handler{cfg: cfg, logger: logger}
}

// --- Handler Functions ---

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) ShowForm(c *gin.Context) {
	tr := h.translator(c)
	c.HTML(http.StatusOK, indexTemplate, h.newPage(tr, h.emptyForm(tr)))
}

func (h *Handler) CalculateForm(c *gin.Context) {
	tr := h.translator(c)
	form := h.submittedForm(c, tr)
	page := h.newPage(tr, form)

	sessions, err := parseForm(form, tr)
	if err != nil {
		page.Error = err.Error()
		c.HTML(http.StatusBadRequest, indexTemplate, page)
		return
	}

	report := h.evaluate(c, tr, sessions)
	page.Sections = render.Sections(report, tr)
	page.ChartTitle = tr.T(i18n.ErrorBar)

	var buf bytes.Buffer
	if err := chart.ErrorBar(&buf, chart.PointsFromReport(report), chartOptions(tr, chart.FormatSVG)); err != nil {
		h.logger.Error("failed to render chart",
			zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
	} else {
		page.ChartURI = template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()))
	}

	c.HTML(http.StatusOK, indexTemplate, page)
}

func (h *Handler) CalculateJSON(c *gin.Context) {
	tr := h.translator(c)
	sessions, ok := h.bindSessions(c, tr)
	if !ok {
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "json"))
	if format != "json" && format != "text" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported format %q", format)})
		return
	}

	report := h.evaluate(c, tr, sessions)
	if format == "text" {
		c.String(http.StatusOK, render.TextString(report, tr))
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *Handler) Chart(c *gin.Context) {
	tr := h.translator(c)
	format := strings.ToLower(c.DefaultQuery("format", chart.FormatSVG))
	contentType, err := chart.ContentType(format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sessions, ok := h.bindSessions(c, tr)
	if !ok {
		return
	}

	report := h.evaluate(c, tr, sessions)
	var buf bytes.Buffer
	if err := chart.ErrorBar(&buf, chart.PointsFromReport(report), chartOptions(tr, format)); err != nil {
		h.logger.Error("failed to render chart",
			zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to render chart", "details": err.Error()})
		return
	}
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// --- Helpers ---

// translator picks the display language: explicit lang parameter, then
// Accept-Language, then the configured default.
func (h *Handler) translator(c *gin.Context) *i18n.Translator {
	return i18n.NewTranslator(i18n.Match(
		c.Query("lang"),
		c.PostForm("lang"),
		c.GetHeader("Accept-Language"),
		h.cfg.DefaultLanguage,
	))
}

func (h *Handler) evaluate(c *gin.Context, tr *i18n.Translator, sessions []models.Session) models.Report {
	report := uncertainty.Evaluate(sessions)
	h.logger.Debug("uncertainty evaluated",
		zap.String("request_id", middleware.GetRequestID(c)),
		zap.String("language", tr.Language().Code),
		zap.Int("sessions", len(sessions)),
		zap.Int("measurements", report.Aggregate.Count))
	return report
}

func (h *Handler) bindSessions(c *gin.Context, tr *i18n.Translator) ([]models.Session, bool) {
	var req models.CalculationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if len(req.Sessions) > h.cfg.MaxSessions {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("too many sessions: %d (max %d)", len(req.Sessions), h.cfg.MaxSessions),
		})
		return nil, false
	}
	for i := range req.Sessions {
		if strings.TrimSpace(req.Sessions[i].Label) == "" {
			req.Sessions[i].Label = tr.DayLabel(i + 1)
		}
	}
	return req.Sessions, true
}

func (h *Handler) newPage(tr *i18n.Translator, form []formSession) pageData {
	return pageData{
		Lang:           tr.Language().Code,
		Languages:      i18n.Languages,
		Title:          tr.T(i18n.Title),
		LanguageLabel:  tr.T(i18n.LanguageLabel),
		CalculateLabel: tr.T(i18n.Calculate),
		Sessions:       form,
	}
}

func repeatFieldName(session, repeat int) string {
	return fmt.Sprintf("s%d_m%d", session, repeat)
}

func extraFieldName(session int) string {
	return fmt.Sprintf("s%d_extra", session)
}

// formLayout builds the form with values supplied by value(name).
func (h *Handler) formLayout(tr *i18n.Translator, value func(name string, extra bool) string) []formSession {
	form := make([]formSession, h.cfg.Sessions)
	for i := range form {
		day := tr.DayLabel(i + 1)
		fs := formSession{
			Prompt:  tr.T(i18n.MeasurementPrompt, day),
			Repeats: make([]formField, h.cfg.Repeats),
		}
		for j := range fs.Repeats {
			name := repeatFieldName(i, j)
			fs.Repeats[j] = formField{Name: name, Label: tr.T(i18n.Repeat, day, j+1), Value: value(name, false)}
		}
		name := extraFieldName(i)
		fs.Extra = formField{Name: name, Label: tr.T(i18n.ExtraUncertainty, day), Value: value(name, true)}
		form[i] = fs
	}
	return form
}

func (h *Handler) emptyForm(tr *i18n.Translator) []formSession {
	return h.formLayout(tr, func(_ string, extra bool) string {
		if extra {
			return "0.0000"
		}
		return "0.00"
	})
}

func (h *Handler) submittedForm(c *gin.Context, tr *i18n.Translator) []formSession {
	return h.formLayout(tr, func(name string, _ bool) string {
		return c.PostForm(name)
	})
}

// parseForm turns the submitted form into sessions. Blank repeats are left
// out of the measurement set and a blank extra uncertainty counts as zero.
func parseForm(form []formSession, tr *i18n.Translator) ([]models.Session, error) {
	sessions := make([]models.Session, len(form))
	for i, fs := range form {
		s := models.Session{Label: tr.DayLabel(i + 1), Measurements: make([]float64, 0, len(fs.Repeats))}
		for _, f := range fs.Repeats {
			v, ok, err := parseNumber(f.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", f.Label, err)
			}
			if ok {
				s.Measurements = append(s.Measurements, v)
			}
		}
		extra, _, err := parseNumber(fs.Extra.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fs.Extra.Label, err)
		}
		s.ExtraUncertainty = extra
		sessions[i] = s
	}
	return sessions, nil
}

// parseNumber parses a decimal typed by a user, accepting a comma as the
// decimal separator. ok is false for blank input.
func parseNumber(raw string) (v float64, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false, fmt.Errorf("invalid number %q", raw)
	}
	return v, true, nil
}

func chartOptions(tr *i18n.Translator, format string) chart.Options {
	return chart.Options{
		Title:  tr.T(i18n.ErrorBar),
		XLabel: tr.T(i18n.ChartXAxis),
		YLabel: tr.T(i18n.ChartYAxis),
		Format: format,
	}
}
