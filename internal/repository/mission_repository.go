package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msp-aci-api/internal/models"
)

const missionColumns = `id, associate_id, indicator_id, status, current_value, compensation, notes`

// MissionRepository provides database access for missions.
type MissionRepository struct {
	db *sqlx.DB
}

// NewMissionRepository creates a new instance of MissionRepository.
func NewMissionRepository(db *sqlx.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// List returns every mission ordered by id.
func (r *MissionRepository) List(ctx context.Context) ([]models.Mission, error) {
	return r.selectMissions(ctx, "list missions", `SELECT `+missionColumns+` FROM missions ORDER BY id`)
}

// ListByAssociate returns the missions assigned to associateID.
func (r *MissionRepository) ListByAssociate(ctx context.Context, associateID int64) ([]models.Mission, error) {
	return r.selectMissions(ctx, "list missions by associate", `SELECT `+missionColumns+` FROM missions WHERE associate_id = $1 ORDER BY id`, associateID)
}

// ListByIndicator returns the missions attached to indicatorID.
func (r *MissionRepository) ListByIndicator(ctx context.Context, indicatorID int64) ([]models.Mission, error) {
	return r.selectMissions(ctx, "list missions by indicator", `SELECT `+missionColumns+` FROM missions WHERE indicator_id = $1 ORDER BY id`, indicatorID)
}

func (r *MissionRepository) selectMissions(ctx context.Context, op, query string, args ...interface{}) ([]models.Mission, error) {
	missions := []models.Mission{}
	if err := r.db.SelectContext(ctx, &missions, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return missions, nil
}

// FindByID returns a mission, or nil when absent.
func (r *MissionRepository) FindByID(ctx context.Context, id int64) (*models.Mission, error) {
	query := `SELECT ` + missionColumns + ` FROM missions WHERE id = $1`
	var m models.Mission
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find mission: %w", err)
	}
	return &m, nil
}

// Create inserts a mission and sets its generated id.
func (r *MissionRepository) Create(ctx context.Context, m *models.Mission) error {
	const query = `INSERT INTO missions (associate_id, indicator_id, status, current_value, compensation, notes) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, m.AssociateID, m.IndicatorID, m.Status, m.CurrentValue, m.Compensation, m.Notes).Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("create mission: %w", err)
	}
	return nil
}

// Update locks the row, merges patch and writes it back in one transaction.
func (r *MissionRepository) Update(ctx context.Context, id int64, patch models.MissionPatch) (*models.Mission, error) {
	var m models.Mission
	found, err := withTx(ctx, r.db, func(tx *sqlx.Tx) (bool, error) {
		query := `SELECT ` + missionColumns + ` FROM missions WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &m, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, fmt.Errorf("lock mission: %w", err)
		}
		patch.Apply(&m)
		const update = `UPDATE missions SET associate_id = :associate_id, indicator_id = :indicator_id, status = :status, current_value = :current_value, compensation = :compensation, notes = :notes WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, update, &m); err != nil {
			return false, fmt.Errorf("update mission: %w", err)
		}
		return true, nil
	})
	if err != nil || !found {
		return nil, err
	}
	return &m, nil
}

// Delete removes the mission and reports whether a row existed.
func (r *MissionRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "missions", id)
}
