package repository

import (
	"context"

	"github.com/noah-isme/msp-aci-api/internal/models"
)

// MemoryUserRepository keeps users in process memory.
type MemoryUserRepository struct {
	table *memTable[models.User]
}

// NewMemoryUserRepository creates an empty user table.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{table: newMemTable[models.User](nil)}
}

// FindByID returns the user or nil when the id is unknown.
func (r *MemoryUserRepository) FindByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := r.table.get(id)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// FindByUsername returns the first user with the given username.
func (r *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := r.table.find(func(u models.User) bool { return u.Username == username })
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// Create stores the user and assigns its id.
func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	*user = r.table.insert(*user, func(u *models.User, id int64) { u.ID = id })
	return nil
}

// MemoryIndicatorRepository keeps indicators in process memory.
type MemoryIndicatorRepository struct {
	table *memTable[models.Indicator]
}

// NewMemoryIndicatorRepository creates an empty indicator table.
func NewMemoryIndicatorRepository() *MemoryIndicatorRepository {
	return &MemoryIndicatorRepository{table: newMemTable[models.Indicator](nil)}
}

// List returns indicators in creation order.
func (r *MemoryIndicatorRepository) List(_ context.Context) ([]models.Indicator, error) {
	return r.table.list(nil), nil
}

// FindByID returns the indicator or nil when the id is unknown.
func (r *MemoryIndicatorRepository) FindByID(_ context.Context, id int64) (*models.Indicator, error) {
	ind, ok := r.table.get(id)
	if !ok {
		return nil, nil
	}
	return &ind, nil
}

// FindByCode returns the indicator carrying code, if any.
func (r *MemoryIndicatorRepository) FindByCode(_ context.Context, code string) (*models.Indicator, error) {
	ind, ok := r.table.find(func(i models.Indicator) bool { return i.Code == code })
	if !ok {
		return nil, nil
	}
	return &ind, nil
}

// Create stores the indicator and assigns its id.
func (r *MemoryIndicatorRepository) Create(_ context.Context, indicator *models.Indicator) error {
	*indicator = r.table.insert(*indicator, func(i *models.Indicator, id int64) { i.ID = id })
	return nil
}

// Update merges patch over the stored indicator.
func (r *MemoryIndicatorRepository) Update(_ context.Context, id int64, patch models.IndicatorPatch) (*models.Indicator, error) {
	ind, ok := r.table.update(id, patch.Apply)
	if !ok {
		return nil, nil
	}
	return &ind, nil
}

// MemoryAssociateRepository keeps associates in process memory.
type MemoryAssociateRepository struct {
	table *memTable[models.Associate]
}

// NewMemoryAssociateRepository creates an empty associate table.
func NewMemoryAssociateRepository() *MemoryAssociateRepository {
	return &MemoryAssociateRepository{table: newMemTable(models.Associate.Clone)}
}

// List returns associates in creation order.
func (r *MemoryAssociateRepository) List(_ context.Context) ([]models.Associate, error) {
	return r.table.list(nil), nil
}

// FindByID returns the associate or nil when the id is unknown.
func (r *MemoryAssociateRepository) FindByID(_ context.Context, id int64) (*models.Associate, error) {
	a, ok := r.table.get(id)
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// Create stores the associate and assigns its id.
func (r *MemoryAssociateRepository) Create(_ context.Context, associate *models.Associate) error {
	*associate = r.table.insert(*associate, func(a *models.Associate, id int64) { a.ID = id })
	return nil
}

// Update merges patch over the stored associate.
func (r *MemoryAssociateRepository) Update(_ context.Context, id int64, patch models.AssociatePatch) (*models.Associate, error) {
	a, ok := r.table.update(id, patch.Apply)
	if !ok {
		return nil, nil
	}
	return &a, nil
}

// Delete removes the associate. Missions referencing it are left in place.
func (r *MemoryAssociateRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.table.remove(id), nil
}

// MemoryMissionRepository keeps missions in process memory.
type MemoryMissionRepository struct {
	table *memTable[models.Mission]
}

// NewMemoryMissionRepository creates an empty mission table.
func NewMemoryMissionRepository() *MemoryMissionRepository {
	return &MemoryMissionRepository{table: newMemTable(models.Mission.Clone)}
}

// List returns missions in creation order.
func (r *MemoryMissionRepository) List(_ context.Context) ([]models.Mission, error) {
	return r.table.list(nil), nil
}

// ListByAssociate returns the missions assigned to associateID.
func (r *MemoryMissionRepository) ListByAssociate(_ context.Context, associateID int64) ([]models.Mission, error) {
	return r.table.list(func(m models.Mission) bool { return m.AssociateID == associateID }), nil
}

// ListByIndicator returns the missions attached to indicatorID.
func (r *MemoryMissionRepository) ListByIndicator(_ context.Context, indicatorID int64) ([]models.Mission, error) {
	return r.table.list(func(m models.Mission) bool { return m.IndicatorID == indicatorID }), nil
}

// FindByID returns the mission or nil when the id is unknown.
func (r *MemoryMissionRepository) FindByID(_ context.Context, id int64) (*models.Mission, error) {
	m, ok := r.table.get(id)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// Create stores the mission and assigns its id.
func (r *MemoryMissionRepository) Create(_ context.Context, mission *models.Mission) error {
	*mission = r.table.insert(*mission, func(m *models.Mission, id int64) { m.ID = id })
	return nil
}

// Update merges patch over the stored mission.
func (r *MemoryMissionRepository) Update(_ context.Context, id int64, patch models.MissionPatch) (*models.Mission, error) {
	m, ok := r.table.update(id, patch.Apply)
	if !ok {
		return nil, nil
	}
	return &m, nil
}

// Delete removes the mission.
func (r *MemoryMissionRepository) Delete(_ context.Context, id int64) (bool, error) {
	return r.table.remove(id), nil
}
