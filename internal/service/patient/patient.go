package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/query"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreatePatientRequest struct {
	UserID       uuid.UUID // defaults to the actor for clients
	Registration string
	Series       string
	BirthDate    time.Time
	Gender       domain.Gender
	PatientType  domain.PatientType
	Education    domain.Education
	Course       domain.Course
	Disorders    []domain.Disorder
	Difficulties []domain.Difficulty
}

type UpdatePatientRequest struct {
	Registration string
	Series       string
	BirthDate    time.Time
	Gender       domain.Gender
	Education    domain.Education
	Course       domain.Course
	PatientType  *domain.PatientType
	Disorders    []domain.Disorder   // nil leaves the set untouched
	Difficulties []domain.Difficulty // nil leaves the set untouched
}

type SearchPatientsRequest struct {
	Filters query.PatientFilters
	Sort    query.Sort
	Page    query.Page
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreatePatientRequest) (*domain.PatientProfile, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.PatientProfile, error)
	GetByUserID(ctx context.Context, actor domain.Actor, userID uuid.UUID) (*domain.PatientProfile, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdatePatientRequest) (*domain.PatientProfile, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Search(ctx context.Context, actor domain.Actor, req SearchPatientsRequest) (*query.Result[domain.PatientProfile], error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &patientService{db: db}
}

func (s *patientService) Create(ctx context.Context, actor domain.Actor, req CreatePatientRequest) (*domain.PatientProfile, error) {
	userID := req.UserID
	if userID == uuid.Nil {
		userID = actor.UserID
	}

	// Clients may only register themselves
	if actor.IsClient() && userID != actor.UserID {
		return nil, ErrAccessDenied
	}

	createdBy := domain.CreatedByPatient
	if actor.IsPsychologist() || actor.IsAdmin() {
		createdBy = domain.CreatedByPsychologist
	}

	var created *domain.PatientProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("check user: %w", err)
		}
		if count == 0 {
			return ErrUserNotFound
		}

		if err := tx.Model(&domain.PatientProfile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return fmt.Errorf("check profile: %w", err)
		}
		if count > 0 {
			return ErrAlreadyHasProfile
		}

		p, err := domain.NewPatientProfile(domain.NewPatientParams{
			UserID:          userID,
			Registration:    req.Registration,
			Series:          req.Series,
			BirthDate:       req.BirthDate,
			Gender:          req.Gender,
			PatientType:     req.PatientType,
			Education:       req.Education,
			Course:          req.Course,
			CreatedBy:       createdBy,
			CreatedByUserID: actor.UserID,
		})
		if err != nil {
			return err
		}

		if err := p.SetDisorders(req.Disorders); err != nil {
			return err
		}
		if err := p.SetDifficulties(req.Difficulties); err != nil {
			return err
		}

		if err := tx.Create(p).Error; err != nil {
			return fmt.Errorf("create patient: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *patientService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.PatientProfile, error) {
	var p domain.PatientProfile
	if err := s.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("fetch patient: %w", err)
	}

	if err := s.assertReadAccess(&p, actor); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *patientService) GetByUserID(ctx context.Context, actor domain.Actor, userID uuid.UUID) (*domain.PatientProfile, error) {
	var p domain.PatientProfile
	if err := s.db.WithContext(ctx).First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("fetch patient by user: %w", err)
	}

	if err := s.assertReadAccess(&p, actor); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *patientService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdatePatientRequest) (*domain.PatientProfile, error) {
	var updated *domain.PatientProfile

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.PatientProfile
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return fmt.Errorf("fetch patient: %w", err)
		}

		if err := s.assertWriteAccess(&p, actor); err != nil {
			return err
		}

		if err := p.UpdatePersonalInfo(req.Registration, req.Series, req.BirthDate, req.Gender, req.Education, req.Course); err != nil {
			return err
		}
		if req.PatientType != nil {
			if err := p.ChangePatientType(*req.PatientType); err != nil {
				return err
			}
		}
		if req.Disorders != nil {
			if err := p.SetDisorders(req.Disorders); err != nil {
				return err
			}
		}
		if req.Difficulties != nil {
			if err := p.SetDifficulties(req.Difficulties); err != nil {
				return err
			}
		}

		if err := tx.Save(&p).Error; err != nil {
			return fmt.Errorf("save patient: %w", err)
		}
		updated = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *patientService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.PatientProfile
		if err := tx.First(&p, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPatientNotFound
			}
			return fmt.Errorf("fetch patient: %w", err)
		}

		if err := s.assertWriteAccess(&p, actor); err != nil {
			return err
		}

		if err := tx.Delete(&p).Error; err != nil {
			return fmt.Errorf("delete patient: %w", err)
		}
		return nil
	})
}

func (s *patientService) Search(ctx context.Context, actor domain.Actor, req SearchPatientsRequest) (*query.Result[domain.PatientProfile], error) {
	if actor.UserID == uuid.Nil {
		return nil, ErrNoIdentity
	}

	req.Filters = NarrowFilters(actor, req.Filters)

	base := req.Filters.Apply(s.db.WithContext(ctx).Model(&domain.PatientProfile{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count patients: %w", err)
	}

	var patients []domain.PatientProfile
	tx := req.Filters.ApplySort(base.Session(&gorm.Session{}), req.Sort)
	if err := req.Page.Apply(tx).Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("search patients: %w", err)
	}

	out := query.NewResult(patients, total, req.Page)
	return &out, nil
}

// assertReadAccess: admins see everything; clients the profile they are the
// subject of; psychologists the profiles they registered (the creator axis,
// same visibility the search narrowing pins).
func (s *patientService) assertReadAccess(p *domain.PatientProfile, actor domain.Actor) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsClient():
		if p.UserID != actor.UserID {
			return ErrAccessDenied
		}
	case actor.IsPsychologist():
		if p.CreatedByUserID != actor.UserID {
			return ErrAccessDenied
		}
	default:
		return ErrNoIdentity
	}
	return nil
}

// assertWriteAccess: any psychologist may edit any profile (role gated at
// the route); a client may edit only a profile they registered themselves.
// Being the subject of a psychologist-created profile grants read, not
// write.
func (s *patientService) assertWriteAccess(p *domain.PatientProfile, actor domain.Actor) error {
	switch {
	case actor.IsAdmin(), actor.IsPsychologist():
		return nil
	case actor.IsClient():
		if p.CreatedByUserID != actor.UserID {
			return ErrAccessDenied
		}
	default:
		return ErrNoIdentity
	}
	return nil
}

// NarrowFilters embeds the caller's visibility in the query itself:
// clients are pinned to their own user id, psychologists to profiles they
// created. Caller-supplied conflicting values are overwritten, not
// rejected.
func NarrowFilters(actor domain.Actor, f query.PatientFilters) query.PatientFilters {
	switch actor.Role {
	case domain.RoleClient:
		id := actor.UserID
		f.UserID = &id
	case domain.RolePsychologist:
		id := actor.UserID
		f.CreatedByUserID = &id
	}
	return f
}
