package service

import (
	"sort"

	"github.com/noah-isme/msp-aci-api/internal/dto"
	"github.com/noah-isme/msp-aci-api/internal/models"
)

// BuildCompensation produces the per-indicator compensation report. Lines list
// core indicators first, then by descending ceiling, then by code.
func BuildCompensation(indicators []models.Indicator, missions []models.Mission) dto.CompensationBreakdown {
	type tally struct {
		amount    int
		count     int
		validated bool
	}
	byIndicator := make(map[int64]*tally, len(indicators))
	for _, m := range missions {
		t, ok := byIndicator[m.IndicatorID]
		if !ok {
			t = &tally{}
			byIndicator[m.IndicatorID] = t
		}
		t.amount += m.Compensation
		t.count++
		t.validated = t.validated || m.Validated()
	}

	lines := make([]dto.CompensationLine, 0, len(indicators))
	for _, ind := range indicators {
		line := dto.CompensationLine{
			IndicatorID:     ind.ID,
			Code:            ind.Code,
			Name:            ind.Name,
			Type:            ind.Type,
			MaxCompensation: ind.MaxCompensation,
		}
		if t, ok := byIndicator[ind.ID]; ok {
			line.CurrentCompensation = t.amount
			line.MissionCount = t.count
			line.Validated = t.validated
		}
		lines = append(lines, line)
	}
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Type != b.Type {
			return a.Type == models.IndicatorTypeCore
		}
		if a.MaxCompensation != b.MaxCompensation {
			return a.MaxCompensation > b.MaxCompensation
		}
		return a.Code < b.Code
	})

	return dto.CompensationBreakdown{Indicators: lines, Totals: compensationTotals(ComputeStats(indicators, missions))}
}

func compensationTotals(stats models.Stats) dto.CompensationTotals {
	total := stats.FixedCompensation + stats.VariableCompensation
	maxTotal := stats.MaxFixedCompensation + stats.MaxVariableCompensation
	remaining := maxTotal - total
	if remaining < 0 {
		remaining = 0
	}
	return dto.CompensationTotals{
		FixedCompensation:       stats.FixedCompensation,
		MaxFixedCompensation:    stats.MaxFixedCompensation,
		VariableCompensation:    stats.VariableCompensation,
		MaxVariableCompensation: stats.MaxVariableCompensation,
		TotalCompensation:       total,
		MaxTotalCompensation:    maxTotal,
		RemainingPotential:      remaining,
		CorePercentage:          percentage(stats.ValidatedCoreIndicators, stats.TotalCoreIndicators),
		OptionalPercentage:      percentage(stats.ValidatedOptionalIndicators, stats.TotalOptionalIndicators),
		TotalPercentage:         percentage(total, maxTotal),
	}
}

// percentage rounds half up and reports 0 for an empty denominator.
func percentage(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return (part*200 + whole) / (whole * 2)
}
