package query

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
)

// UserFilters are AND-composed; nil fields are skipped. Name matches as a
// case-insensitive substring; everything else is exact.
type UserFilters struct {
	ID       *uuid.UUID
	Name     *string
	Email    *string
	Role     *domain.Role
	IsActive *bool
}

func (f UserFilters) Apply(db *gorm.DB) *gorm.DB {
	if f.ID != nil {
		db = db.Where("id = ?", *f.ID)
	}
	if f.Name != nil {
		db = db.Where("name ILIKE ?", "%"+*f.Name+"%")
	}
	if f.Email != nil {
		db = db.Where("email = ?", *f.Email)
	}
	if f.Role != nil {
		db = db.Where("role = ?", *f.Role)
	}
	if f.IsActive != nil {
		db = db.Where("is_active = ?", *f.IsActive)
	}
	return db
}

var userSortKeys = map[string]string{
	"name":        "name",
	"email":       "email",
	"createddate": "created_at",
	"createdat":   "created_at",
}

func (f UserFilters) ApplySort(db *gorm.DB, s Sort) *gorm.DB {
	return applySort(db, s, userSortKeys, "created_at")
}
