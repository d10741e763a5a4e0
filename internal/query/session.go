package query

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionFilters are AND-composed; nil fields are skipped.
type SessionFilters struct {
	ID             *uuid.UUID
	PsychologistID *uuid.UUID
	PatientID      *uuid.UUID
	AppointmentID  *uuid.UUID
	StartDate      *time.Time
	EndDate        *time.Time
}

func (f SessionFilters) Apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.PsychologistID != nil {
		db = db.Where("psychologist_id = ?", *f.PsychologistID)
	}
	if f.PatientID != nil {
		db = db.Where("patient_id = ?", *f.PatientID)
	}
	if f.AppointmentID != nil {
		db = db.Where("appointment_id = ?", *f.AppointmentID)
	}
	if f.StartDate != nil {
		db = db.Where("session_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		db = db.Where("session_date <= ?", *f.EndDate)
	}
	return db
}

var sessionSortKeys = map[string]string{
	"sessiondate": "session_date",
	"createddate": "created_at",
	"createdat":   "created_at",
}

func (f SessionFilters) ApplySort(db *gorm.DB, s Sort) *gorm.DB {
	return applySort(db, s, sessionSortKeys, "session_date")
}
