// Package seed loads the demo catalogue, staff and missions into an empty store.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/msp-aci-api/internal/models"
	"github.com/noah-isme/msp-aci-api/internal/repository"
)

// Result counts the records written by Load.
type Result struct {
	Indicators int
	Associates int
	Missions   int
}

// Load writes the demo data when the indicator catalogue is empty. A store
// that already holds indicators is left untouched and Load reports zero.
func Load(ctx context.Context, store *repository.Store, logger *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var res Result

	existing, err := store.Indicators.List(ctx)
	if err != nil {
		return res, fmt.Errorf("list indicators: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("seed skipped, catalogue already present", zap.Int("indicators", len(existing)))
		return res, nil
	}

	codes := make(map[string]int64, len(Indicators))
	for _, fixture := range Indicators {
		indicator := fixture
		if err := store.Indicators.Create(ctx, &indicator); err != nil {
			return res, fmt.Errorf("create indicator %s: %w", fixture.Code, err)
		}
		codes[indicator.Code] = indicator.ID
		res.Indicators++
	}

	associateIDs := make([]int64, 0, len(Associates))
	for _, fixture := range Associates {
		associate := fixture.Clone()
		if err := store.Associates.Create(ctx, &associate); err != nil {
			return res, fmt.Errorf("create associate %s: %w", fixture.FullName(), err)
		}
		associateIDs = append(associateIDs, associate.ID)
		res.Associates++
	}

	for _, fixture := range Missions {
		indicatorID, ok := codes[fixture.IndicatorCode]
		if !ok {
			return res, fmt.Errorf("mission references unknown indicator %s", fixture.IndicatorCode)
		}
		if fixture.Associate < 0 || fixture.Associate >= len(associateIDs) {
			return res, fmt.Errorf("mission references unknown associate #%d", fixture.Associate)
		}
		currentValue, notes := fixture.CurrentValue, fixture.Notes
		mission := models.Mission{
			AssociateID:  associateIDs[fixture.Associate],
			IndicatorID:  indicatorID,
			Status:       fixture.Status,
			CurrentValue: &currentValue,
			Compensation: fixture.Compensation,
			Notes:        &notes,
		}
		if err := store.Missions.Create(ctx, &mission); err != nil {
			return res, fmt.Errorf("create mission %s: %w", fixture.IndicatorCode, err)
		}
		res.Missions++
	}

	logger.Info("seed loaded",
		zap.Int("indicators", res.Indicators),
		zap.Int("associates", res.Associates),
		zap.Int("missions", res.Missions),
	)
	return res, nil
}
