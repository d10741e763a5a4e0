package anamnesis

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

type CreateAnamnesisRequest struct {
	PatientID     uuid.UUID
	FamilyHistory string
	Infancy       string
	Adolescence   string
	Illnesses     string
	Accompaniment string
}

type UpdateAnamnesisRequest struct {
	FamilyHistory string
	Infancy       string
	Adolescence   string
	Illnesses     string
	Accompaniment string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

// Access to anamnesis records is gated by role at the route layer;
// any psychologist may read or edit any patient's record.
type Service interface {
	Create(ctx context.Context, req CreateAnamnesisRequest) (*domain.Anamnesis, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Anamnesis, error)
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*domain.Anamnesis, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateAnamnesisRequest) (*domain.Anamnesis, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type anamnesisService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &anamnesisService{db: db}
}

func (s *anamnesisService) Create(ctx context.Context, req CreateAnamnesisRequest) (*domain.Anamnesis, error) {
	var created *domain.Anamnesis

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.PatientProfile{}).Where("id = ?", req.PatientID).Count(&count).Error; err != nil {
			return fmt.Errorf("check patient: %w", err)
		}
		if count == 0 {
			return ErrPatientNotFound
		}

		if err := tx.Model(&domain.Anamnesis{}).Where("patient_id = ?", req.PatientID).Count(&count).Error; err != nil {
			return fmt.Errorf("check existing anamnesis: %w", err)
		}
		if count > 0 {
			return ErrAlreadyExists
		}

		a, err := domain.NewAnamnesis(req.PatientID, req.FamilyHistory, req.Infancy, req.Adolescence, req.Illnesses, req.Accompaniment)
		if err != nil {
			return err
		}

		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("create anamnesis: %w", err)
		}
		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *anamnesisService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Anamnesis, error) {
	var a domain.Anamnesis
	if err := s.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnamnesisNotFound
		}
		return nil, fmt.Errorf("fetch anamnesis: %w", err)
	}
	return &a, nil
}

func (s *anamnesisService) GetByPatient(ctx context.Context, patientID uuid.UUID) (*domain.Anamnesis, error) {
	var a domain.Anamnesis
	if err := s.db.WithContext(ctx).First(&a, "patient_id = ?", patientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnamnesisNotFound
		}
		return nil, fmt.Errorf("fetch anamnesis by patient: %w", err)
	}
	return &a, nil
}

func (s *anamnesisService) Update(ctx context.Context, id uuid.UUID, req UpdateAnamnesisRequest) (*domain.Anamnesis, error) {
	var updated *domain.Anamnesis

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a domain.Anamnesis
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnamnesisNotFound
			}
			return fmt.Errorf("fetch anamnesis: %w", err)
		}

		a.Update(req.FamilyHistory, req.Infancy, req.Adolescence, req.Illnesses, req.Accompaniment)

		if err := tx.Save(&a).Error; err != nil {
			return fmt.Errorf("save anamnesis: %w", err)
		}
		updated = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *anamnesisService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a domain.Anamnesis
		if err := tx.First(&a, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAnamnesisNotFound
			}
			return fmt.Errorf("fetch anamnesis: %w", err)
		}
		if err := tx.Delete(&a).Error; err != nil {
			return fmt.Errorf("delete anamnesis: %w", err)
		}
		return nil
	})
}
