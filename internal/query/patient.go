package query

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
)

// PatientFilters are AND-composed; nil fields are skipped.
type PatientFilters struct {
	ID              *uuid.UUID
	UserID          *uuid.UUID
	Gender          *domain.Gender
	PatientType     *domain.PatientType
	Education       *domain.Education
	Course          *domain.Course
	CreatedBy       *domain.CreatedBy
	CreatedByUserID *uuid.UUID
}

func (f PatientFilters) Apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.Gender != nil {
		db = db.Where("gender = ?", *f.Gender)
	}
	if f.PatientType != nil {
		db = db.Where("patient_type = ?", *f.PatientType)
	}
	if f.Education != nil {
		db = db.Where("education = ?", *f.Education)
	}
	if f.Course != nil {
		db = db.Where("course = ?", *f.Course)
	}
	if f.CreatedBy != nil {
		db = db.Where("created_by = ?", *f.CreatedBy)
	}
	if f.CreatedByUserID != nil {
		db = db.Where("created_by_user_id = ?", *f.CreatedByUserID)
	}
	return db
}

var patientSortKeys = map[string]string{
	"birthdate":   "birth_date",
	"patienttype": "patient_type",
	"createddate": "created_at",
	"createdat":   "created_at",
}

func (f PatientFilters) ApplySort(db *gorm.DB, s Sort) *gorm.DB {
	return applySort(db, s, patientSortKeys, "created_at")
}
