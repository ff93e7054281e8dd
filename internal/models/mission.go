package models

// MissionStatus tracks the validation state of a mission.
type MissionStatus string

const (
	MissionStatusValidated    MissionStatus = "validated"
	MissionStatusInProgress   MissionStatus = "in_progress"
	MissionStatusNotValidated MissionStatus = "not_validated"
)

// Mission assigns an associate to an indicator. AssociateID and IndicatorID
// are plain references: they may point at records that no longer exist.
type Mission struct {
	ID           int64         `db:"id" json:"id"`
	AssociateID  int64         `db:"associate_id" json:"associateId"`
	IndicatorID  int64         `db:"indicator_id" json:"indicatorId"`
	Status       MissionStatus `db:"status" json:"status"`
	CurrentValue *string       `db:"current_value" json:"currentValue"`
	Compensation int           `db:"compensation" json:"compensation"`
	Notes        *string       `db:"notes" json:"notes"`
}

// Validated reports whether the mission counts toward compensation.
func (m Mission) Validated() bool {
	return m.Status == MissionStatusValidated
}

// Clone returns a deep copy of the mission.
func (m Mission) Clone() Mission {
	m.CurrentValue = cloneString(m.CurrentValue)
	m.Notes = cloneString(m.Notes)
	return m
}

// MissionPatch carries a partial mission update.
type MissionPatch struct {
	AssociateID  *int64
	IndicatorID  *int64
	Status       *MissionStatus
	CurrentValue Nullable[string]
	Compensation *int
	Notes        Nullable[string]
}

// Apply merges the patch over m.
func (p MissionPatch) Apply(m *Mission) {
	if p.AssociateID != nil {
		m.AssociateID = *p.AssociateID
	}
	if p.IndicatorID != nil {
		m.IndicatorID = *p.IndicatorID
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.CurrentValue.Set {
		m.CurrentValue = p.CurrentValue.clone()
	}
	if p.Compensation != nil {
		m.Compensation = *p.Compensation
	}
	if p.Notes.Set {
		m.Notes = p.Notes.clone()
	}
}
