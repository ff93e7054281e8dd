package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msp-aci-api/internal/models"
)

const indicatorColumns = `id, code, name, description, type, objective, max_compensation`

// IndicatorRepository provides database access for the ACI catalogue.
type IndicatorRepository struct {
	db *sqlx.DB
}

// NewIndicatorRepository creates a new instance of IndicatorRepository.
func NewIndicatorRepository(db *sqlx.DB) *IndicatorRepository {
	return &IndicatorRepository{db: db}
}

// List returns every indicator ordered by id.
func (r *IndicatorRepository) List(ctx context.Context) ([]models.Indicator, error) {
	query := `SELECT ` + indicatorColumns + ` FROM indicators ORDER BY id`
	indicators := []models.Indicator{}
	if err := r.db.SelectContext(ctx, &indicators, query); err != nil {
		return nil, fmt.Errorf("list indicators: %w", err)
	}
	return indicators, nil
}

// FindByID returns an indicator, or nil when absent.
func (r *IndicatorRepository) FindByID(ctx context.Context, id int64) (*models.Indicator, error) {
	query := `SELECT ` + indicatorColumns + ` FROM indicators WHERE id = $1`
	var ind models.Indicator
	if err := r.db.GetContext(ctx, &ind, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find indicator: %w", err)
	}
	return &ind, nil
}

// FindByCode returns the indicator carrying code, or nil.
func (r *IndicatorRepository) FindByCode(ctx context.Context, code string) (*models.Indicator, error) {
	query := `SELECT ` + indicatorColumns + ` FROM indicators WHERE code = $1`
	var ind models.Indicator
	if err := r.db.GetContext(ctx, &ind, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find indicator by code: %w", err)
	}
	return &ind, nil
}

// Create inserts an indicator and sets its generated id.
func (r *IndicatorRepository) Create(ctx context.Context, ind *models.Indicator) error {
	const query = `INSERT INTO indicators (code, name, description, type, objective, max_compensation) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, ind.Code, ind.Name, ind.Description, ind.Type, ind.Objective, ind.MaxCompensation).Scan(&ind.ID)
	if err != nil {
		return writeError("create indicator", err)
	}
	return nil
}

// Update locks the row, merges patch and writes it back in one transaction.
func (r *IndicatorRepository) Update(ctx context.Context, id int64, patch models.IndicatorPatch) (*models.Indicator, error) {
	var ind models.Indicator
	found, err := withTx(ctx, r.db, func(tx *sqlx.Tx) (bool, error) {
		query := `SELECT ` + indicatorColumns + ` FROM indicators WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &ind, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, fmt.Errorf("lock indicator: %w", err)
		}
		patch.Apply(&ind)
		const update = `UPDATE indicators SET code = :code, name = :name, description = :description, type = :type, objective = :objective, max_compensation = :max_compensation WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, update, &ind); err != nil {
			return false, writeError("update indicator", err)
		}
		return true, nil
	})
	if err != nil || !found {
		return nil, err
	}
	return &ind, nil
}

// withTx runs fn in a transaction, committing only when fn reports a row was
// found and returned no error.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) (bool, error)) (bool, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	found, err := fn(tx)
	if err != nil || !found {
		_ = tx.Rollback()
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return true, nil
}
