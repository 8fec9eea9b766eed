package model

// EstimationResult is the structured output of the sketch-complexity
// analysis.
type EstimationResult struct {
	Complexity        string    `json:"complexity"` // Low, Medium or High
	ScreenCount       int       `json:"screen_count"`
	EstimatedHoursMin int       `json:"estimated_hours_min"`
	EstimatedHoursMax int       `json:"estimated_hours_max"`
	Explanation       string    `json:"explanation"`
	RiskLevel         RiskLevel `json:"risk_level"`
}
