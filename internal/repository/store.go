package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/msp-aci-api/internal/models"
)

// ErrDuplicate reports a write rejected by a unique column.
var ErrDuplicate = errors.New("duplicate key")

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation pq.ErrorCode = "23505"

// writeError wraps a failed write, tagging unique violations with ErrDuplicate.
func writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w (%s)", op, ErrDuplicate, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// UserStore persists dashboard accounts. Users are read/create only.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// IndicatorStore persists the ACI catalogue. Indicators are never deleted.
type IndicatorStore interface {
	List(ctx context.Context) ([]models.Indicator, error)
	FindByID(ctx context.Context, id int64) (*models.Indicator, error)
	FindByCode(ctx context.Context, code string) (*models.Indicator, error)
	Create(ctx context.Context, indicator *models.Indicator) error
	Update(ctx context.Context, id int64, patch models.IndicatorPatch) (*models.Indicator, error)
}

// AssociateStore persists practice staff.
type AssociateStore interface {
	List(ctx context.Context) ([]models.Associate, error)
	FindByID(ctx context.Context, id int64) (*models.Associate, error)
	Create(ctx context.Context, associate *models.Associate) error
	Update(ctx context.Context, id int64, patch models.AssociatePatch) (*models.Associate, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// MissionStore persists associate/indicator assignments.
type MissionStore interface {
	List(ctx context.Context) ([]models.Mission, error)
	ListByAssociate(ctx context.Context, associateID int64) ([]models.Mission, error)
	ListByIndicator(ctx context.Context, indicatorID int64) ([]models.Mission, error)
	FindByID(ctx context.Context, id int64) (*models.Mission, error)
	Create(ctx context.Context, mission *models.Mission) error
	Update(ctx context.Context, id int64, patch models.MissionPatch) (*models.Mission, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Store bundles one table per entity kind. Lookups of unknown ids return
// nil (or false for deletes) without an error; errors are reserved for
// infrastructure failures.
type Store struct {
	Users      UserStore
	Indicators IndicatorStore
	Associates AssociateStore
	Missions   MissionStore
}

// NewMemoryStore returns an empty process-local store.
func NewMemoryStore() *Store {
	return &Store{
		Users:      NewMemoryUserRepository(),
		Indicators: NewMemoryIndicatorRepository(),
		Associates: NewMemoryAssociateRepository(),
		Missions:   NewMemoryMissionRepository(),
	}
}

// NewPostgresStore returns a store backed by PostgreSQL.
func NewPostgresStore(db *sqlx.DB) *Store {
	return &Store{
		Users:      NewUserRepository(db),
		Indicators: NewIndicatorRepository(db),
		Associates: NewAssociateRepository(db),
		Missions:   NewMissionRepository(db),
	}
}
