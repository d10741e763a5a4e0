package session

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

type CreateSessionRequest struct {
	PsychologistID uuid.UUID // profile id; defaults to the actor's own profile
	PatientID      uuid.UUID // profile id
	AppointmentID  *uuid.UUID
	Complaint      string
	Intervention   string
	Referrals      string
	SessionDate    time.Time
}

type UpdateSessionRequest struct {
	Complaint    string
	Intervention string
	Referrals    string
}

type SearchSessionsRequest struct {
	Filters query.SessionFilters
	Sort    query.Sort
	Page    query.Page
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateSessionRequest) (*domain.Session, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Session, error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdateSessionRequest) (*domain.Session, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Search(ctx context.Context, actor domain.Actor, req SearchSessionsRequest) (*query.Result[domain.Session], error)
	ListByPatient(ctx context.Context, actor domain.Actor, patientID uuid.UUID, page query.Page) (*query.Result[domain.Session], error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type sessionService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &sessionService{db: db}
}

func (s *sessionService) Create(ctx context.Context, actor domain.Actor, req CreateSessionRequest) (*domain.Session, error) {
	var created *domain.Session

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		psyID := req.PsychologistID

		if actor.IsPsychologist() {
			own, err := psychologistProfileByUser(tx, actor.UserID)
			if err != nil {
				return ErrNoProfileResolved
			}
			// Psychologists only record their own sessions
			if psyID == uuid.Nil {
				psyID = own.ID
			} else if psyID != own.ID {
				return ErrAccessDenied
			}
		}

		var count int64
		if err := tx.Model(&domain.PsychologistProfile{}).Where("id = ?", psyID).Count(&count).Error; err != nil {
			return fmt.Errorf("check psychologist: %w", err)
		}
		if count == 0 {
			return ErrPsychologistNotFound
		}

		if err := tx.Model(&domain.PatientProfile{}).Where("id = ?", req.PatientID).Count(&count).Error; err != nil {
			return fmt.Errorf("check patient: %w", err)
		}
		if count == 0 {
			return ErrPatientNotFound
		}

		if req.AppointmentID != nil {
			if err := tx.Model(&domain.Appointment{}).Where("id = ?", *req.AppointmentID).Count(&count).Error; err != nil {
				return fmt.Errorf("check appointment: %w", err)
			}
			if count == 0 {
				return ErrAppointmentNotFound
			}
		}

		sess, err := domain.NewSession(domain.NewSessionParams{
			PsychologistID: psyID,
			PatientID:      req.PatientID,
			AppointmentID:  req.AppointmentID,
			Complaint:      req.Complaint,
			Intervention:   req.Intervention,
			Referrals:      req.Referrals,
			SessionDate:    req.SessionDate,
		})
		if err != nil {
			return err
		}

		if err := tx.Create(sess).Error; err != nil {
			return fmt.Errorf("create session: %w", err)
		}
		created = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *sessionService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Session, error) {
	sess, err := s.fetch(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.assertAccess(ctx, s.db, sess, actor); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *sessionService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdateSessionRequest) (*domain.Session, error) {
	var updated *domain.Session

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, err := s.fetch(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.assertAccess(ctx, tx, sess, actor); err != nil {
			return err
		}

		sess.UpdateNotes(req.Complaint, req.Intervention, req.Referrals)

		if err := tx.Save(sess).Error; err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		updated = sess
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *sessionService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sess, err := s.fetch(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.assertAccess(ctx, tx, sess, actor); err != nil {
			return err
		}
		if err := tx.Delete(sess).Error; err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

func (s *sessionService) Search(ctx context.Context, actor domain.Actor, req SearchSessionsRequest) (*query.Result[domain.Session], error) {
	filters, err := s.narrowFilters(ctx, s.db, actor, req.Filters)
	if err != nil {
		return nil, err
	}

	base := filters.Apply(s.db.WithContext(ctx).Model(&domain.Session{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}

	var sessions []domain.Session
	tx := filters.ApplySort(base.Session(&gorm.Session{}), req.Sort)
	if err := req.Page.Apply(tx).Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("search sessions: %w", err)
	}

	out := query.NewResult(sessions, total, req.Page)
	return &out, nil
}

func (s *sessionService) ListByPatient(ctx context.Context, actor domain.Actor, patientID uuid.UUID, page query.Page) (*query.Result[domain.Session], error) {
	return s.Search(ctx, actor, SearchSessionsRequest{
		Filters: query.SessionFilters{PatientID: &patientID},
		Page:    page,
	})
}

// ---------------------------------------------------------------------------
// internals
// ---------------------------------------------------------------------------

func (s *sessionService) fetch(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Session, error) {
	var sess domain.Session
	if err := tx.WithContext(ctx).First(&sess, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	return &sess, nil
}

func (s *sessionService) assertAccess(ctx context.Context, tx *gorm.DB, sess *domain.Session, actor domain.Actor) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsPsychologist():
		p, err := psychologistProfileByUser(tx.WithContext(ctx), actor.UserID)
		if err != nil {
			return ErrNoProfileResolved
		}
		if !domain.CanAccess(sess.PsychologistID, p.ID, actor.Role) {
			return ErrAccessDenied
		}
	case actor.IsClient():
		p, err := patientProfileByUser(tx.WithContext(ctx), actor.UserID)
		if err != nil {
			return ErrNoProfileResolved
		}
		if !domain.CanAccess(sess.PatientID, p.ID, actor.Role) {
			return ErrAccessDenied
		}
	default:
		return ErrNoProfileResolved
	}
	return nil
}

func (s *sessionService) narrowFilters(ctx context.Context, tx *gorm.DB, actor domain.Actor, f query.SessionFilters) (query.SessionFilters, error) {
	switch actor.Role {
	case domain.RoleAdmin:
		return f, nil
	case domain.RolePsychologist:
		p, err := psychologistProfileByUser(tx.WithContext(ctx), actor.UserID)
		if err != nil {
			return f, ErrNoProfileResolved
		}
		f.PsychologistID = &p.ID
		return f, nil
	case domain.RoleClient:
		p, err := patientProfileByUser(tx.WithContext(ctx), actor.UserID)
		if err != nil {
			return f, ErrNoProfileResolved
		}
		f.PatientID = &p.ID
		return f, nil
	default:
		return f, ErrNoProfileResolved
	}
}

func psychologistProfileByUser(tx *gorm.DB, userID uuid.UUID) (*domain.PsychologistProfile, error) {
	var p domain.PsychologistProfile
	if err := tx.First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPsychologistNotFound
		}
		return nil, fmt.Errorf("resolve psychologist profile: %w", err)
	}
	return &p, nil
}

func patientProfileByUser(tx *gorm.DB, userID uuid.UUID) (*domain.PatientProfile, error) {
	var p domain.PatientProfile
	if err := tx.First(&p, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("resolve patient profile: %w", err)
	}
	return &p, nil
}
