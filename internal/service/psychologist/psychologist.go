package psychologist

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreatePsychologistRequest struct {
	UserID    uuid.UUID
	Crp       string
	Specialty string
}

type UpdatePsychologistRequest struct {
	Crp       string
	Specialty string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreatePsychologistRequest) (*domain.PsychologistProfile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PsychologistProfile, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PsychologistProfile, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdatePsychologistRequest) (*domain.PsychologistProfile, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type psychologistService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &psychologistService{db: db}
}

func (s *psychologistService) Create(ctx context.Context, actor domain.Actor, req CreatePsychologistRequest) (*domain.PsychologistProfile, error) {
	userID := req.UserID
	if userID == uuid.Nil {
		userID = actor.UserID
	}

	// Only admins may create a profile for somebody else
	if userID != actor.UserID && !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	var created *domain.PsychologistProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if count == 0 {
			return ErrUserNotFound
		}

		if err := tx.Model(&domain.PsychologistProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("check profile: %w", err)
		}
		if count > 0 {
			return ErrAlreadyHasProfile
		}

		p, err := domain.NewPsychologistProfile(userID, req.Crp, req.Specialty)
		if err != nil {
			return err
		}

		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *psychologistService) GetByID(ctx context.Context, id uuid.UUID) (*domain.PsychologistProfile, error) {
	var p domain.PsychologistProfile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPsychologistNotFound
		}
		return nil, fmt.Errorf("fetch psychologist: %w", err)
	}
	return &p, nil
}

func (s *psychologistService) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PsychologistProfile, error) {
	var p domain.PsychologistProfile
	if err := s.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPsychologistNotFound
		}
		return nil, fmt.Errorf("fetch psychologist by user: %w", err)
	}
	return &p, nil
}

func (s *psychologistService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdatePsychologistRequest) (*domain.PsychologistProfile, error) {
	var updated *domain.PsychologistProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.PsychologistProfile
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPsychologistNotFound
			}
			return fmt.Errorf("fetch psychologist: %w", err)
		}

		// Ownership is on the backing user account
		if !domain.CanAccess(p.UserID, actor.UserID, actor.Role) {
			return ErrAccessDenied
		}

		p.UpdateProfile(req.Crp, req.Specialty)

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("save psychologist: %w", err)
		}
		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
