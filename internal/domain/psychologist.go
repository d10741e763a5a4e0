package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PsychologistProfile is the clinical identity of a psychologist user.
// Ownership comparisons against appointments and sessions use this profile
// id, never the user id.
type PsychologistProfile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Crp       string    `gorm:"size:32;not null"`
	Specialty string    `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewPsychologistProfile(userID uuid.UUID, crp, specialty string) (*PsychologistProfile, error) {
	crp = strings.TrimSpace(crp)
	specialty = strings.TrimSpace(specialty)

	if crp == "" {
		return nil, ErrCrpRequired
	}
	if specialty == "" {
		return nil, ErrSpecialtyRequired
	}

	now := time.Now().UTC()
	return &PsychologistProfile{
		ID:        uuid.New(),
		UserID:    userID,
		Crp:       crp,
		Specialty: specialty,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdateProfile applies non-blank fields only.
func (p *PsychologistProfile) UpdateProfile(crp, specialty string) {
	if crp = strings.TrimSpace(crp); crp != "" {
		p.Crp = crp
	}
	if specialty = strings.TrimSpace(specialty); specialty != "" {
		p.Specialty = specialty
	}
	p.UpdatedAt = time.Now().UTC()
}
