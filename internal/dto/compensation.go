package dto

import "github.com/noah-isme/msp-aci-api/internal/models"

// CompensationLine summarises one indicator on the compensation page.
// CurrentCompensation sums every mission of the indicator whatever its status.
type CompensationLine struct {
	IndicatorID         int64                `json:"indicatorId"`
	Code                string               `json:"code"`
	Name                string               `json:"name"`
	Type                models.IndicatorType `json:"type"`
	MaxCompensation     int                  `json:"maxCompensation"`
	CurrentCompensation int                  `json:"currentCompensation"`
	Validated           bool                 `json:"validated"`
	MissionCount        int                  `json:"missionCount"`
}

// CompensationTotals aggregates fixed and variable compensation.
type CompensationTotals struct {
	FixedCompensation       int `json:"fixedCompensation"`
	MaxFixedCompensation    int `json:"maxFixedCompensation"`
	VariableCompensation    int `json:"variableCompensation"`
	MaxVariableCompensation int `json:"maxVariableCompensation"`
	TotalCompensation       int `json:"totalCompensation"`
	MaxTotalCompensation    int `json:"maxTotalCompensation"`
	RemainingPotential      int `json:"remainingPotential"`
	CorePercentage          int `json:"corePercentage"`
	OptionalPercentage      int `json:"optionalPercentage"`
	TotalPercentage         int `json:"totalPercentage"`
}

// CompensationBreakdown is the per-indicator compensation report.
type CompensationBreakdown struct {
	Indicators []CompensationLine `json:"indicators"`
	Totals     CompensationTotals `json:"totals"`
}
