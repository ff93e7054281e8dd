package models

// Profession of an MSP associate.
type Profession string

const (
	ProfessionDoctor          Profession = "doctor"
	ProfessionPharmacist      Profession = "pharmacist"
	ProfessionNurse           Profession = "nurse"
	ProfessionPhysiotherapist Profession = "physiotherapist"
	ProfessionOther           Profession = "other"
)

// Associate is a staff member of the practice.
// PatientCount and ActivePatients are only meaningful for doctors.
type Associate struct {
	ID             int64      `db:"id" json:"id"`
	FirstName      string     `db:"first_name" json:"firstName"`
	LastName       string     `db:"last_name" json:"lastName"`
	Profession     Profession `db:"profession" json:"profession"`
	Email          string     `db:"email" json:"email"`
	Phone          *string    `db:"phone" json:"phone"`
	PatientCount   *int       `db:"patient_count" json:"patientCount"`
	ActivePatients *int       `db:"active_patients" json:"activePatients"`
}

// FullName joins first and last name.
func (a Associate) FullName() string {
	return a.FirstName + " " + a.LastName
}

// AssociatePatch carries a partial associate update. Nil pointers leave a
// field untouched; the nullable columns can also be cleared.
type AssociatePatch struct {
	FirstName      *string
	LastName       *string
	Profession     *Profession
	Email          *string
	Phone          Nullable[string]
	PatientCount   Nullable[int]
	ActivePatients Nullable[int]
}

// Apply merges the patch over a.
func (p AssociatePatch) Apply(a *Associate) {
	if p.FirstName != nil {
		a.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		a.LastName = *p.LastName
	}
	if p.Profession != nil {
		a.Profession = *p.Profession
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Phone.Set {
		a.Phone = p.Phone.clone()
	}
	if p.PatientCount.Set {
		a.PatientCount = p.PatientCount.clone()
	}
	if p.ActivePatients.Set {
		a.ActivePatients = p.ActivePatients.clone()
	}
}

// Clone returns a deep copy so stored records never share pointers with callers.
func (a Associate) Clone() Associate {
	a.Phone = cloneString(a.Phone)
	a.PatientCount = cloneInt(a.PatientCount)
	a.ActivePatients = cloneInt(a.ActivePatients)
	return a
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt(i *int) *int {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}
