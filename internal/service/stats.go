package service

import "github.com/noah-isme/msp-aci-api/internal/models"

// ComputeStats derives the dashboard summary from a snapshot of indicators and
// missions. Missions pointing at unknown indicators are ignored. Validated
// counts are per mission, so two validated missions on one indicator count twice.
func ComputeStats(indicators []models.Indicator, missions []models.Mission) models.Stats {
	var stats models.Stats
	kinds := make(map[int64]models.IndicatorType, len(indicators))

	for _, ind := range indicators {
		kinds[ind.ID] = ind.Type
		switch ind.Type {
		case models.IndicatorTypeCore:
			stats.TotalCoreIndicators++
			stats.MaxFixedCompensation += ind.MaxCompensation
		case models.IndicatorTypeOptional:
			stats.TotalOptionalIndicators++
			stats.MaxVariableCompensation += ind.MaxCompensation
		}
	}

	for _, m := range missions {
		if !m.Validated() {
			continue
		}
		switch kinds[m.IndicatorID] {
		case models.IndicatorTypeCore:
			stats.ValidatedCoreIndicators++
			stats.FixedCompensation += m.Compensation
		case models.IndicatorTypeOptional:
			stats.ValidatedOptionalIndicators++
			stats.VariableCompensation += m.Compensation
		}
	}

	return stats
}
