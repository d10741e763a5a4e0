package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxNoteLength = 255

// Appointment is the scheduled encounter. Canceled is terminal: once an
// appointment is canceled every mutator fails, including Cancel itself.
type Appointment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PsychologistID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	PatientID       *uuid.UUID      `gorm:"type:uuid;index"`
	AppointmentDate time.Time       `gorm:"not null;index"`
	Status          Status          `gorm:"size:16;not null"`
	Type            AppointmentType `gorm:"size:32;not null"`
	ActivityType    ActivityType    `gorm:"size:32"`
	Reason          string          `gorm:"size:255"`
	Observation     string          `gorm:"size:255"`
	Objective       string          `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type NewAppointmentParams struct {
	PsychologistID  uuid.UUID
	PatientID       *uuid.UUID
	AppointmentDate time.Time
	Type            AppointmentType
	ActivityType    ActivityType
	Reason          string
	Observation     string
	Objective       string
}

func NewAppointment(p NewAppointmentParams) (*Appointment, error) {
	if p.PsychologistID == uuid.Nil {
		return nil, ErrPsychologistRequired
	}
	if !p.Type.Valid() {
		return nil, ErrInvalidType
	}
	if p.ActivityType != "" && !p.ActivityType.Valid() {
		return nil, ErrInvalidActivityType
	}
	for _, s := range []string{p.Reason, p.Observation, p.Objective} {
		if len(s) > maxNoteLength {
			return nil, ErrTextTooLong
		}
	}

	now := time.Now().UTC()
	return &Appointment{
		ID:              uuid.New(),
		PsychologistID:  p.PsychologistID,
		PatientID:       p.PatientID,
		AppointmentDate: p.AppointmentDate,
		Status:          StatusPending,
		Type:            p.Type,
		ActivityType:    p.ActivityType,
		Reason:          strings.TrimSpace(p.Reason),
		Observation:     strings.TrimSpace(p.Observation),
		Objective:       strings.TrimSpace(p.Objective),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// guard blocks every mutation once the appointment is canceled.
func (a *Appointment) guard() error {
	if a.Status == StatusCanceled {
		return ErrAppointmentCanceled
	}
	return nil
}

func (a *Appointment) touch() {
	a.UpdatedAt = time.Now().UTC()
}

func (a *Appointment) UpdateStatus(s Status) error {
	if err := a.guard(); err != nil {
		return err
	}
	if !s.Valid() {
		return ErrInvalidStatus
	}
	a.Status = s
	a.touch()
	return nil
}

func (a *Appointment) AssignPatient(patientID uuid.UUID) error {
	if err := a.guard(); err != nil {
		return err
	}
	if patientID == uuid.Nil {
		return ErrPatientRequired
	}
	a.PatientID = &patientID
	a.touch()
	return nil
}

func (a *Appointment) Reschedule(date time.Time) error {
	if err := a.guard(); err != nil {
		return err
	}
	a.AppointmentDate = date
	a.touch()
	return nil
}

func (a *Appointment) UpdateType(t AppointmentType) error {
	if err := a.guard(); err != nil {
		return err
	}
	if !t.Valid() {
		return ErrInvalidType
	}
	a.Type = t
	a.touch()
	return nil
}

func (a *Appointment) UpdateActivityType(t ActivityType) error {
	if err := a.guard(); err != nil {
		return err
	}
	if !t.Valid() {
		return ErrInvalidActivityType
	}
	a.ActivityType = t
	a.touch()
	return nil
}

func (a *Appointment) RemovePatient() error {
	if err := a.guard(); err != nil {
		return err
	}
	if a.PatientID == nil {
		return ErrNoPatientAssigned
	}
	a.PatientID = nil
	a.touch()
	return nil
}

func (a *Appointment) UpdateObservation(observation string) error {
	if err := a.guard(); err != nil {
		return err
	}
	if len(observation) > maxNoteLength {
		return ErrTextTooLong
	}
	a.Observation = strings.TrimSpace(observation)
	a.touch()
	return nil
}

func (a *Appointment) UpdateObjective(objective string) error {
	if err := a.guard(); err != nil {
		return err
	}
	if len(objective) > maxNoteLength {
		return ErrTextTooLong
	}
	a.Objective = strings.TrimSpace(objective)
	a.touch()
	return nil
}

func (a *Appointment) RemoveObservation() error {
	if err := a.guard(); err != nil {
		return err
	}
	a.Observation = ""
	a.touch()
	return nil
}

func (a *Appointment) RemoveObjective() error {
	if err := a.guard(); err != nil {
		return err
	}
	a.Objective = ""
	a.touch()
	return nil
}

// Cancel moves the appointment into its terminal state. Canceling an
// already-canceled appointment is an error, not a silent success.
func (a *Appointment) Cancel() error {
	if err := a.guard(); err != nil {
		return err
	}
	a.Status = StatusCanceled
	a.touch()
	return nil
}
