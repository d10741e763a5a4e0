package appointment

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

type CreateAppointmentRequest struct {
	// User ids, resolved to profile ids before persisting. The
	// psychologist defaults to the actor.
	PsychologistUserID uuid.UUID
	PatientUserID      *uuid.UUID

	AppointmentDate time.Time
	Type            domain.AppointmentType
	ActivityType    domain.ActivityType
	Reason          string
	Observation     string
	Objective       string
}

type UpdateAppointmentRequest struct {
	AppointmentDate *time.Time
	Status          *domain.Status
	Type            *domain.AppointmentType
	ActivityType    *domain.ActivityType
	Observation     *string
	Objective       *string
}

type SearchAppointmentsRequest struct {
	Filters query.AppointmentFilters
	Sort    query.Sort
	Page    query.Page
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, actor domain.Actor, req CreateAppointmentRequest) (*domain.Appointment, error)
	GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Appointment, error)
	Search(ctx context.Context, actor domain.Actor, req SearchAppointmentsRequest) (*query.Result[domain.Appointment], error)
	Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdateAppointmentRequest) (*domain.Appointment, error)
	Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error
	Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Appointment, error)
	AssignPatient(ctx context.Context, actor domain.Actor, id, patientID uuid.UUID) (*domain.Appointment, error)
	RemovePatient(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Appointment, error)
	ListByPatient(ctx context.Context, actor domain.Actor, patientID uuid.UUID, page query.Page) (*query.Result[domain.Appointment], error)
	ListByPsychologist(ctx context.Context, actor domain.Actor, psychologistID uuid.UUID, page query.Page) (*query.Result[domain.Appointment], error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	db *gorm.DB
}

func New(db *gorm.DB) Service {
	return &appointmentService{db: db}
}

func (s *appointmentService) Create(ctx context.Context, actor domain.Actor, req CreateAppointmentRequest) (*domain.Appointment, error) {
	psyUserID := req.PsychologistUserID
	if psyUserID == uuid.Nil {
		psyUserID = actor.UserID
	}

	// Psychologists only book their own agenda
	if actor.IsPsychologist() && psyUserID != actor.UserID {
		return nil, ErrAccessDenied
	}

	var created *domain.Appointment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		psyProfile, err := psychologistProfileByUser(tx, psyUserID)
		if err != nil {
			return err
		}

		var patientID *uuid.UUID
		if req.PatientUserID != nil {
			patProfile, err := patientProfileByUser(tx, *req.PatientUserID)
			if err != nil {
				return err
			}
			patientID = &patProfile.ID
		}

		a, err := domain.NewAppointment(domain.NewAppointmentParams{
			PsychologistID:  psyProfile.ID,
			PatientID:       patientID,
			AppointmentDate: req.AppointmentDate,
			Type:            req.Type,
			ActivityType:    req.ActivityType,
			Reason:          req.Reason,
			Observation:     req.Observation,
			Objective:       req.Objective,
		})
		if err != nil {
			return err
		}

		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}

		// Reminder row rides the same transaction as the booking
		if err := tx.Create(domain.NewReminderFor(a)).Error; err != nil {
			return fmt.Errorf("stage reminder: %w", err)
		}

		created = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *appointmentService) GetByID(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Appointment, error) {
	a, err := s.fetch(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if err := s.assertAccess(ctx, s.db, a, actor); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *appointmentService) Search(ctx context.Context, actor domain.Actor, req SearchAppointmentsRequest) (*query.Result[domain.Appointment], error) {
	filters, err := s.narrowFilters(ctx, s.db, actor, req.Filters)
	if err != nil {
		return nil, err
	}

	base := filters.Apply(s.db.WithContext(ctx).Model(&domain.Appointment{}))

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	var appts []domain.Appointment
	tx := filters.ApplySort(base.Session(&gorm.Session{}), req.Sort)
	if err := req.Page.Apply(tx).Find(&appts).Error; err != nil {
		return nil, fmt.Errorf("search appointments: %w", err)
	}

	out := query.NewResult(appts, total, req.Page)
	return &out, nil
}

func (s *appointmentService) Update(ctx context.Context, actor domain.Actor, id uuid.UUID, req UpdateAppointmentRequest) (*domain.Appointment, error) {
	return s.mutate(ctx, actor, id, func(a *domain.Appointment) error {
		if req.AppointmentDate != nil {
			if err := a.Reschedule(*req.AppointmentDate); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if err := a.UpdateStatus(*req.Status); err != nil {
				return err
			}
		}
		if req.Type != nil {
			if err := a.UpdateType(*req.Type); err != nil {
				return err
			}
		}
		if req.ActivityType != nil {
			if err := a.UpdateActivityType(*req.ActivityType); err != nil {
				return err
			}
		}
		if req.Observation != nil {
			if err := a.UpdateObservation(*req.Observation); err != nil {
				return err
			}
		}
		if req.Objective != nil {
			if err := a.UpdateObjective(*req.Objective); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *appointmentService) Delete(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := s.fetch(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.assertAccess(ctx, tx, a, actor); err != nil {
			return err
		}
		if err := tx.Where("appointment_id = ?", a.ID).Delete(&domain.EmailSchedule{}).Error; err != nil {
			return fmt.Errorf("delete reminders: %w", err)
		}
		if err := tx.Delete(a).Error; err != nil {
			return fmt.Errorf("delete appointment: %w", err)
		}
		return nil
	})
}

func (s *appointmentService) Cancel(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Appointment, error) {
	return s.mutate(ctx, actor, id, func(a *domain.Appointment) error {
		return a.Cancel()
	})
}

func (s *appointmentService) AssignPatient(ctx context.Context, actor domain.Actor, id, patientID uuid.UUID) (*domain.Appointment, error) {
	return s.mutate(ctx, actor, id, func(a *domain.Appointment) error {
		return a.AssignPatient(patientID)
	})
}

func (s *appointmentService) RemovePatient(ctx context.Context, actor domain.Actor, id uuid.UUID) (*domain.Appointment, error) {
	return s.mutate(ctx, actor, id, func(a *domain.Appointment) error {
		return a.RemovePatient()
	})
}

func (s *appointmentService) ListByPatient(ctx context.Context, actor domain.Actor, patientID uuid.UUID, page query.Page) (*query.Result[domain.Appointment], error) {
	return s.Search(ctx, actor, SearchAppointmentsRequest{
		Filters: query.AppointmentFilters{PatientID: &patientID},
		Page:    page,
	})
}

func (s *appointmentService) ListByPsychologist(ctx context.Context, actor domain.Actor, psychologistID uuid.UUID, page query.Page) (*query.Result[domain.Appointment], error) {
	return s.Search(ctx, actor, SearchAppointmentsRequest{
		Filters: query.AppointmentFilters{PsychologistID: &psychologistID},
		Page:    page,
	})
}

// ---------------------------------------------------------------------------
// internals
// ---------------------------------------------------------------------------

// mutate runs fetch + ownership check + mutator + save in one transaction.
func (s *appointmentService) mutate(ctx context.Context, actor domain.Actor, id uuid.UUID, fn func(*domain.Appointment) error) (*domain.Appointment, error) {
	var out *domain.Appointment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a, err := s.fetch(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := s.assertAccess(ctx, tx, a, actor); err != nil {
			return err
		}
		if err := fn(a); err != nil {
			return err
		}
		if err := tx.Save(a).Error; err != nil {
			return fmt.Errorf("save appointment: %w", err)
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *appointmentService) fetch(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := tx.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("fetch appointment: %w", err)
	}
	return &a, nil
}

// assertAccess resolves the actor's profile id and compares it against the
// matching side of the appointment. An unresolvable profile means the
// caller has no standing here: Unauthorized, not an internal error.
func (s *appointmentService) assertAccess(ctx context.Context, tx *gorm.DB, a *domain.Appointment, actor domain.Actor) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsPsychologist():
		p, err := psychologistProfileByUser(tx.WithContext(ctx), actor.UserID)
		if err != nil {
			return ErrNoProfileResolved
		}
		if !domain.CanAccess(a.PsychologistID, p.ID, actor.Role) {
			return ErrAccessDenied
		}
	case actor.IsClient():
		p, err := patientProfileByUser(tx.WithContext(ctx), actor.UserID)
		if err != nil {
			return ErrNoProfileResolved
		}
		if a.PatientID == nil || !domain.CanAccess(*a.PatientID, p.ID, actor.Role) {
			return ErrAccessDenied
		}
	default:
		return ErrNoProfileResolved
	}
	return nil
}

// narrowFilters pins the search to the caller's own profile id:
// psychologists to their psychologist profile, clients to their patient
// profile. Caller-supplied conflicting ids are overwritten.
func (s *appointmentService) narrowFilters(ctx context.Context, tx *gorm.DB, actor domain.Actor, f query.AppointmentFilters) (query.AppointmentFilters, error) {
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
