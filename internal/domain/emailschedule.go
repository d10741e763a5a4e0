package domain

import (
	"time"

	"github.com/google/uuid"
)

// reminderLead is how long before the appointment the reminder goes out.
const reminderLead = 24 * time.Hour

// EmailSchedule is a staged reminder row. It is written in the same
// transaction as the appointment it belongs to; the reminder worker picks up
// due rows and sends them.
type EmailSchedule struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	AppointmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	SendAt        time.Time `gorm:"not null;index"`
	IsSent        bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time
}

// NewReminderFor stages the reminder 24h before the appointment date.
func NewReminderFor(a *Appointment) *EmailSchedule {
	return &EmailSchedule{
		ID:            uuid.New(),
		AppointmentID: a.ID,
		SendAt:        a.AppointmentDate.Add(-reminderLead),
		IsSent:        false,
		CreatedAt:     time.Now().UTC(),
	}
}

func (e *EmailSchedule) MarkSent() {
	e.IsSent = true
}
