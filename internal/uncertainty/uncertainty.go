// Package uncertainty combines per-session statistics into an uncertainty report.
//
// Every session contributes its own standard uncertainty, combined with an
// optional extra component by root-sum-of-squares. The aggregate is computed
// over all raw measurements pooled together. Statistics that are undefined
// for the given input are NaN; nothing here returns an error.
package uncertainty

import (
	"math"

	"uncertainty-gin/internal/models"
	"uncertainty-gin/internal/utils"
)

// CoverageFactor is the k used for expanded uncertainty (~95% under normality).
const CoverageFactor = 2.0

// TotalUncertainty combines a standard uncertainty with an independent extra component.
func TotalUncertainty(standard, extra float64) float64 {
	return math.Sqrt(standard*standard + extra*extra)
}

// Expand scales an uncertainty by CoverageFactor.
func Expand(u float64) float64 {
	return CoverageFactor * u
}

// EvaluateSession computes the statistics of a single session.
func EvaluateSession(s models.Session) models.SessionResult {
	std := utils.StandardUncertainty(s.Measurements)
	total := TotalUncertainty(std, s.ExtraUncertainty)
	return models.SessionResult{
		Label:               s.Label,
		Count:               len(s.Measurements),
		Average:             models.Quantity(utils.Average(s.Measurements)),
		StandardUncertainty: models.Quantity(std),
		ExtraUncertainty:    models.Quantity(s.ExtraUncertainty),
		TotalUncertainty:    models.Quantity(total),
		ExpandedUncertainty: models.Quantity(Expand(total)),
		Repeatability:       models.Quantity(utils.Repeatability(s.Measurements)),
	}
}

// Evaluate computes the per-session results and the aggregate for sessions.
func Evaluate(sessions []models.Session) models.Report {
	report := models.Report{Sessions: make([]models.SessionResult, 0, len(sessions))}

	var pooled []float64
	averages := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		res := EvaluateSession(s)
		report.Sessions = append(report.Sessions, res)
		averages = append(averages, res.Average.Float())
		pooled = append(pooled, s.Measurements...)
	}

	std := utils.StandardUncertainty(pooled)
	report.Aggregate = models.AggregateResult{
		Count:                       len(pooled),
		Average:                     models.Quantity(utils.Average(pooled)),
		StandardUncertainty:         models.Quantity(std),
		ExpandedUncertainty:         models.Quantity(Expand(std)),
		BetweenSessionRepeatability: models.Quantity(utils.Repeatability(averages)),
		// Pooled over all raw values; between-session mean shifts are not removed.
		WithinSessionRepeatability: models.Quantity(utils.Repeatability(pooled)),
	}
	return report
}
