package query

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
)

// AppointmentFilters are AND-composed; nil fields are skipped.
type AppointmentFilters struct {
	ID             *uuid.UUID
	PsychologistID *uuid.UUID
	PatientID      *uuid.UUID
	Status         *domain.Status
	Type           *domain.AppointmentType
	ActivityType   *domain.ActivityType
	StartDate      *time.Time
	EndDate        *time.Time
}

func (f AppointmentFilters) Apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.PsychologistID != nil {
		db = db.Where("psychologist_id = ?", *f.PsychologistID)
	}
	if f.PatientID != nil {
		db = db.Where("patient_id = ?", *f.PatientID)
	}
	if f.Status != nil {
		db = db.Where("status = ?", *f.Status)
	}
	if f.Type != nil {
		db = db.Where("type = ?", *f.Type)
	}
	if f.ActivityType != nil {
		db = db.Where("activity_type = ?", *f.ActivityType)
	}
	if f.StartDate != nil {
		db = db.Where("appointment_date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		db = db.Where("appointment_date <= ?", *f.EndDate)
	}
	return db
}

var appointmentSortKeys = map[string]string{
	"appointmentdate": "appointment_date",
	"status":          "status",
	"createddate":     "created_at",
	"createdat":       "created_at",
}

func (f AppointmentFilters) ApplySort(db *gorm.DB, s Sort) *gorm.DB {
	return applySort(db, s, appointmentSortKeys, "appointment_date")
}
