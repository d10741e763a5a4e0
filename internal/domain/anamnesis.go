package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Anamnesis is the patient intake history.
type Anamnesis struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	PatientID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FamilyHistory string    `gorm:"type:text"`
	Infancy       string    `gorm:"type:text"`
	Adolescence   string    `gorm:"type:text"`
	Illnesses     string    `gorm:"type:text"`
	Accompaniment string    `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewAnamnesis(patientID uuid.UUID, familyHistory, infancy, adolescence, illnesses, accompaniment string) (*Anamnesis, error) {
	if patientID == uuid.Nil {
		return nil, ErrPatientRequired
	}

	now := time.Now().UTC()
	return &Anamnesis{
		ID:            uuid.New(),
		PatientID:     patientID,
		FamilyHistory: strings.TrimSpace(familyHistory),
		Infancy:       strings.TrimSpace(infancy),
		Adolescence:   strings.TrimSpace(adolescence),
		Illnesses:     strings.TrimSpace(illnesses),
		Accompaniment: strings.TrimSpace(accompaniment),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update applies non-blank fields only.
func (a *Anamnesis) Update(familyHistory, infancy, adolescence, illnesses, accompaniment string) {
	if familyHistory = strings.TrimSpace(familyHistory); familyHistory != "" {
		a.FamilyHistory = familyHistory
	}
	if infancy = strings.TrimSpace(infancy); infancy != "" {
		a.Infancy = infancy
	}
	if adolescence = strings.TrimSpace(adolescence); adolescence != "" {
		a.Adolescence = adolescence
	}
	if illnesses = strings.TrimSpace(illnesses); illnesses != "" {
		a.Illnesses = illnesses
	}
	if accompaniment = strings.TrimSpace(accompaniment); accompaniment != "" {
		a.Accompaniment = accompaniment
	}
	a.UpdatedAt = time.Now().UTC()
}
