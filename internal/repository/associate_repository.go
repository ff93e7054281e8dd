package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/msp-aci-api/internal/models"
)

const associateColumns = `id, first_name, last_name, profession, email, phone, patient_count, active_patients`

// AssociateRepository provides database access for practice staff.
type AssociateRepository struct {
	db *sqlx.DB
}

// NewAssociateRepository creates a new instance of AssociateRepository.
func NewAssociateRepository(db *sqlx.DB) *AssociateRepository {
	return &AssociateRepository{db: db}
}

// List returns every associate ordered by id.
func (r *AssociateRepository) List(ctx context.Context) ([]models.Associate, error) {
	query := `SELECT ` + associateColumns + ` FROM associates ORDER BY id`
	associates := []models.Associate{}
	if err := r.db.SelectContext(ctx, &associates, query); err != nil {
		return nil, fmt.Errorf("list associates: %w", err)
	}
	return associates, nil
}

// FindByID returns an associate, or nil when absent.
func (r *AssociateRepository) FindByID(ctx context.Context, id int64) (*models.Associate, error) {
	query := `SELECT ` + associateColumns + ` FROM associates WHERE id = $1`
	var a models.Associate
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find associate: %w", err)
	}
	return &a, nil
}

// Create inserts an associate and sets its generated id.
func (r *AssociateRepository) Create(ctx context.Context, a *models.Associate) error {
	const query = `INSERT INTO associates (first_name, last_name, profession, email, phone, patient_count, active_patients) VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	err := r.db.QueryRowxContext(ctx, query, a.FirstName, a.LastName, a.Profession, a.Email, a.Phone, a.PatientCount, a.ActivePatients).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("create associate: %w", err)
	}
	return nil
}

// Update locks the row, merges patch and writes it back in one transaction.
func (r *AssociateRepository) Update(ctx context.Context, id int64, patch models.AssociatePatch) (*models.Associate, error) {
	var a models.Associate
	found, err := withTx(ctx, r.db, func(tx *sqlx.Tx) (bool, error) {
		query := `SELECT ` + associateColumns + ` FROM associates WHERE id = $1 FOR UPDATE`
		if err := tx.GetContext(ctx, &a, query, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return false, nil
			}
			return false, fmt.Errorf("lock associate: %w", err)
		}
		patch.Apply(&a)
		const update = `UPDATE associates SET first_name = :first_name, last_name = :last_name, profession = :profession, email = :email, phone = :phone, patient_count = :patient_count, active_patients = :active_patients WHERE id = :id`
		if _, err := tx.NamedExecContext(ctx, update, &a); err != nil {
			return false, fmt.Errorf("update associate: %w", err)
		}
		return true, nil
	})
	if err != nil || !found {
		return nil, err
	}
	return &a, nil
}

// Delete removes the associate and reports whether a row existed.
func (r *AssociateRepository) Delete(ctx context.Context, id int64) (bool, error) {
	return deleteByID(ctx, r.db, "associates", id)
}

func deleteByID(ctx context.Context, db *sqlx.DB, table string, id int64) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete from %s: %w", table, err)
	}
	return affected > 0, nil
}
