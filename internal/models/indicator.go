package models

// IndicatorType splits the ACI catalogue between fixed and variable compensation.
type IndicatorType string

const (
	// IndicatorTypeCore indicators ("socle") pay the fixed compensation.
	IndicatorTypeCore IndicatorType = "core"
	// IndicatorTypeOptional indicators pay the variable compensation.
	IndicatorTypeOptional IndicatorType = "optional"
)

// Valid reports whether t is a known indicator type.
func (t IndicatorType) Valid() bool {
	return t == IndicatorTypeCore || t == IndicatorTypeOptional
}

// Indicator is a scored ACI compliance criterion.
type Indicator struct {
	ID              int64         `db:"id" json:"id"`
	Code            string        `db:"code" json:"code"`
	Name            string        `db:"name" json:"name"`
	Description     string        `db:"description" json:"description"`
	Type            IndicatorType `db:"type" json:"type"`
	Objective       string        `db:"objective" json:"objective"`
	MaxCompensation int           `db:"max_compensation" json:"maxCompensation"`
}

// IndicatorPatch carries a partial indicator update; nil fields are left untouched.
type IndicatorPatch struct {
	Code            *string
	Name            *string
	Description     *string
	Type            *IndicatorType
	Objective       *string
	MaxCompensation *int
}

// Apply merges the patch over ind.
func (p IndicatorPatch) Apply(ind *Indicator) {
	if p.Code != nil {
		ind.Code = *p.Code
	}
	if p.Name != nil {
		ind.Name = *p.Name
	}
	if p.Description != nil {
		ind.Description = *p.Description
	}
	if p.Type != nil {
		ind.Type = *p.Type
	}
	if p.Objective != nil {
		ind.Objective = *p.Objective
	}
	if p.MaxCompensation != nil {
		ind.MaxCompensation = *p.MaxCompensation
	}
}
