package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is the account record. Clinical data hangs off the profile entities,
// not the user itself.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Phone        string    `gorm:"size:32"`
	IsActive     bool      `gorm:"not null;default:true"`
	Role         Role      `gorm:"size:32;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(name, email, passwordHash, phone string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, ErrNameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if role == "" {
		role = RoleClient
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	now := time.Now().UTC()
	return &User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Phone:        strings.TrimSpace(phone),
		IsActive:     true,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// UpdateProfile applies the non-blank fields, leaving the rest untouched.
func (u *User) UpdateProfile(name, email, phone string) error {
	if name = strings.TrimSpace(name); name != "" {
		u.Name = name
	}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" {
		u.Email = email
	}
	if phone = strings.TrimSpace(phone); phone != "" {
		u.Phone = phone
	}
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) ChangeRole(role Role) error {
	if !role.Valid() {
		return ErrInvalidRole
	}
	u.Role = role
	u.UpdatedAt = time.Now().UTC()
	return nil
}

func (u *User) Activate() {
	u.IsActive = true
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) Deactivate() {
	u.IsActive = false
	u.UpdatedAt = time.Now().UTC()
}

func (u *User) SetPasswordHash(hash string) {
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
}

// CanBeModifiedBy is the user self-service rule: admins or the user itself.
func (u *User) CanBeModifiedBy(requesterID uuid.UUID, requesterRole Role) bool {
	return CanAccess(u.ID, requesterID, requesterRole)
}

// CanChangeRoleOrStatus restricts role and active-flag mutation to admins.
func CanChangeRoleOrStatus(requesterRole Role) bool {
	return requesterRole == RoleAdmin
}
