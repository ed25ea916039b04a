package models

// Session defines one measurement session (a day) as entered by the user.
type Session struct {
	Label            string    `json:"label" yaml:"label"`
	Measurements     []float64 `json:"measurements" yaml:"measurements"`
	ExtraUncertainty float64   `json:"extra_uncertainty" yaml:"extra_uncertainty"` // Optional instrument/method component
}

// CalculationRequest is the body accepted by the calculation and chart endpoints
// and the file format read by the CLI.
type CalculationRequest struct {
	Sessions []Session `json:"sessions" yaml:"sessions" binding:"required,min=1,dive"`
}
