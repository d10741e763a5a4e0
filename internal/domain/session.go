package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session is the clinical record of a held appointment.
type Session struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	PsychologistID uuid.UUID  `gorm:"type:uuid;not null;index"`
	PatientID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Complaint      string     `gorm:"type:text"`
	Intervention   string     `gorm:"type:text"`
	Referrals      string     `gorm:"type:text"`
	SessionDate    time.Time  `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type NewSessionParams struct {
	PsychologistID uuid.UUID
	PatientID      uuid.UUID
	AppointmentID  *uuid.UUID
	Complaint      string
	Intervention   string
	Referrals      string
	SessionDate    time.Time
}

func NewSession(p NewSessionParams) (*Session, error) {
	if p.PsychologistID == uuid.Nil {
		return nil, ErrPsychologistRequired
	}
	if p.PatientID == uuid.Nil {
		return nil, ErrPatientRequired
	}
	if p.SessionDate.IsZero() {
		p.SessionDate = time.Now().UTC()
	}

	now := time.Now().UTC()
	return &Session{
		ID:             uuid.New(),
		PsychologistID: p.PsychologistID,
		PatientID:      p.PatientID,
		AppointmentID:  p.AppointmentID,
		Complaint:      strings.TrimSpace(p.Complaint),
		Intervention:   strings.TrimSpace(p.Intervention),
		Referrals:      strings.TrimSpace(p.Referrals),
		SessionDate:    p.SessionDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// UpdateNotes applies non-blank fields only.
func (s *Session) UpdateNotes(complaint, intervention, referrals string) {
	if complaint = strings.TrimSpace(complaint); complaint != "" {
		s.Complaint = complaint
	}
	if intervention = strings.TrimSpace(intervention); intervention != "" {
		s.Intervention = intervention
	}
	if referrals = strings.TrimSpace(referrals); referrals != "" {
		s.Referrals = referrals
	}
	s.UpdatedAt = time.Now().UTC()
}
