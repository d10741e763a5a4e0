package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/fault"
)

func newTestAppointment(t *testing.T, status Status) *Appointment {
	t.Helper()

	pid := uuid.New()
	a, err := NewAppointment(NewAppointmentParams{
		PsychologistID:  uuid.New(),
		PatientID:       &pid,
		AppointmentDate: time.Now().Add(48 * time.Hour),
		Type:            TypeSession,
		ActivityType:    ActivityGroup,
		Reason:          "initial consultation",
	})
	if err != nil {
		t.Fatalf("NewAppointment() error = %v", err)
	}
	a.Status = status
	return a
}

// Every mutator must fail with a Business failure once the appointment is
// canceled, and succeed from every other status.
func TestAppointmentTerminalState(t *testing.T) {
	mutators := []struct {
		name string
		call func(a *Appointment) error
	}{
		{"UpdateStatus", func(a *Appointment) error { return a.UpdateStatus(StatusConfirmed) }},
		{"AssignPatient", func(a *Appointment) error { return a.AssignPatient(uuid.New()) }},
		{"Reschedule", func(a *Appointment) error { return a.Reschedule(time.Now().Add(72 * time.Hour)) }},
		{"UpdateType", func(a *Appointment) error { return a.UpdateType(TypeCollectiveActivities) }},
		{"UpdateActivityType", func(a *Appointment) error { return a.UpdateActivityType(ActivityLecture) }},
		{"RemovePatient", func(a *Appointment) error { return a.RemovePatient() }},
		{"RemoveObservation", func(a *Appointment) error { return a.RemoveObservation() }},
		{"RemoveObjective", func(a *Appointment) error { return a.RemoveObjective() }},
		{"Cancel", func(a *Appointment) error { return a.Cancel() }},
	}

	liveStatuses := []Status{StatusPending, StatusConfirmed, StatusFinalized, StatusAbsence}

	for _, m := range mutators {
		t.Run(m.name+" fails when canceled", func(t *testing.T) {
			a := newTestAppointment(t, StatusCanceled)
			err := m.call(a)
			if !errors.Is(err, ErrAppointmentCanceled) {
				t.Errorf("%s on canceled appointment: error = %v, want ErrAppointmentCanceled", m.name, err)
			}
			if !fault.IsBusiness(err) {
				t.Errorf("%s failure must be a Business fault, got kind %v", m.name, fault.KindOf(err))
			}
		})

		for _, s := range liveStatuses {
			t.Run(m.name+" succeeds from "+string(s), func(t *testing.T) {
				a := newTestAppointment(t, s)
				if err := m.call(a); err != nil {
					t.Errorf("%s from %s: error = %v", m.name, s, err)
				}
			})
		}
	}
}

func TestAppointmentMutatorEffects(t *testing.T) {
	t.Run("UpdateStatus changes status", func(t *testing.T) {
		a := newTestAppointment(t, StatusPending)
		if err := a.UpdateStatus(StatusConfirmed); err != nil {
			t.Fatalf("UpdateStatus() error = %v", err)
		}
		if a.Status != StatusConfirmed {
			t.Errorf("Status = %s, want Confirmed", a.Status)
		}
	})

	t.Run("UpdateStatus rejects unknown status", func(t *testing.T) {
		a := newTestAppointment(t, StatusPending)
		if err := a.UpdateStatus(Status("Bogus")); !errors.Is(err, ErrInvalidStatus) {
			t.Errorf("error = %v, want ErrInvalidStatus", err)
		}
	})

	t.Run("AssignPatient sets patient", func(t *testing.T) {
		a := newTestAppointment(t, StatusPending)
		a.PatientID = nil
		id := uuid.New()
		if err := a.AssignPatient(id); err != nil {
			t.Fatalf("AssignPatient() error = %v", err)
		}
		if a.PatientID == nil || *a.PatientID != id {
			t.Errorf("PatientID = %v, want %v", a.PatientID, id)
		}
	})

	t.Run("RemovePatient clears patient", func(t *testing.T) {
		a := newTestAppointment(t, StatusConfirmed)
		if err := a.RemovePatient(); err != nil {
			t.Fatalf("RemovePatient() error = %v", err)
		}
		if a.PatientID != nil {
			t.Error("PatientID should be nil after RemovePatient")
		}

		// Removing again fails: no patient left
		if err := a.RemovePatient(); !errors.Is(err, ErrNoPatientAssigned) {
			t.Errorf("error = %v, want ErrNoPatientAssigned", err)
		}
	})

	t.Run("Reschedule moves date", func(t *testing.T) {
		a := newTestAppointment(t, StatusPending)
		d := time.Now().Add(96 * time.Hour)
		if err := a.Reschedule(d); err != nil {
			t.Fatalf("Reschedule() error = %v", err)
		}
		if !a.AppointmentDate.Equal(d) {
			t.Errorf("AppointmentDate = %v, want %v", a.AppointmentDate, d)
		}
	})

	t.Run("Cancel is terminal", func(t *testing.T) {
		a := newTestAppointment(t, StatusPending)
		if err := a.Cancel(); err != nil {
			t.Fatalf("Cancel() error = %v", err)
		}
		if a.Status != StatusCanceled {
			t.Errorf("Status = %s, want Canceled", a.Status)
		}
		if err := a.Cancel(); !errors.Is(err, ErrAppointmentCanceled) {
			t.Errorf("second Cancel: error = %v, want ErrAppointmentCanceled", err)
		}
	})

	t.Run("RemoveObservation clears text", func(t *testing.T) {
		a := newTestAppointment(t, StatusPending)
		a.Observation = "some note"
		if err := a.RemoveObservation(); err != nil {
			t.Fatalf("RemoveObservation() error = %v", err)
		}
		if a.Observation != "" {
			t.Errorf("Observation = %q, want empty", a.Observation)
		}
	})
}

func TestNewAppointmentValidation(t *testing.T) {
	base := NewAppointmentParams{
		PsychologistID:  uuid.New(),
		AppointmentDate: time.Now().Add(24 * time.Hour),
		Type:            TypeSession,
	}

	t.Run("requires psychologist", func(t *testing.T) {
		p := base
		p.PsychologistID = uuid.Nil
		if _, err := NewAppointment(p); !errors.Is(err, ErrPsychologistRequired) {
			t.Errorf("error = %v, want ErrPsychologistRequired", err)
		}
	})

	t.Run("requires valid type", func(t *testing.T) {
		p := base
		p.Type = AppointmentType("Bogus")
		if _, err := NewAppointment(p); !errors.Is(err, ErrInvalidType) {
			t.Errorf("error = %v, want ErrInvalidType", err)
		}
	})

	t.Run("rejects overlong notes", func(t *testing.T) {
		p := base
		p.Reason = strings.Repeat("x", 256)
		if _, err := NewAppointment(p); !errors.Is(err, ErrTextTooLong) {
			t.Errorf("error = %v, want ErrTextTooLong", err)
		}
	})

	t.Run("starts pending with nil patient allowed", func(t *testing.T) {
		a, err := NewAppointment(base)
		if err != nil {
			t.Fatalf("NewAppointment() error = %v", err)
		}
		if a.Status != StatusPending {
			t.Errorf("Status = %s, want Pending", a.Status)
		}
		if a.PatientID != nil {
			t.Error("PatientID should be nil when not provided")
		}
	})
}
