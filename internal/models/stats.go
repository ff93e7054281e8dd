package models

// Stats is the dashboard compensation and validation summary.
// Validated counts are counts of validated missions, not of distinct indicators.
type Stats struct {
	TotalCoreIndicators         int `json:"totalCoreIndicators"`
	ValidatedCoreIndicators     int `json:"validatedCoreIndicators"`
	TotalOptionalIndicators     int `json:"totalOptionalIndicators"`
	ValidatedOptionalIndicators int `json:"validatedOptionalIndicators"`
	FixedCompensation           int `json:"fixedCompensation"`
	MaxFixedCompensation        int `json:"maxFixedCompensation"`
	VariableCompensation        int `json:"variableCompensation"`
	MaxVariableCompensation     int `json:"maxVariableCompensation"`
}
