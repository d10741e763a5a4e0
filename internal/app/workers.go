package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/pkg/email"
)

const reminderPollInterval = time.Minute

// WorkerModule registers the background reminder dispatcher.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc     fx.Lifecycle
	DB     *gorm.DB
	Mailer *email.Client
	Logger *slog.Logger
}

func RegisterWorkers(p WorkerParams) {
	ctx, cancel := context.WithCancel(context.Background())

	p.Lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go runReminderWorker(ctx, p.DB, p.Mailer, p.Logger)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// reminder_worker
// ---------------------------------------------------------------------------

// runReminderWorker polls for due reminder rows and sends them. Rows whose
// appointment was canceled or lost its patient are marked sent without a
// message so they are not retried forever.
func runReminderWorker(ctx context.Context, db *gorm.DB, mailer *email.Client, logger *slog.Logger) {
	logger.Info("reminder_worker: started")

	ticker := time.NewTicker(reminderPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("reminder_worker: stopped")
			return
		case <-ticker.C:
			dispatchDueReminders(ctx, db, mailer, logger)
		}
	}
}

func dispatchDueReminders(ctx context.Context, db *gorm.DB, mailer *email.Client, logger *slog.Logger) {
	var due []domain.EmailSchedule
	err := db.WithContext(ctx).
		Where("is_sent = ? AND send_at <= ?", false, time.Now().UTC()).
		Limit(100).
		Find(&due).Error
	if err != nil {
		logger.Warn("reminder_worker: fetch due reminders failed", "err", err)
		return
	}

	for i := range due {
		sched := &due[i]
		if err := sendReminder(ctx, db, mailer, sched); err != nil {
			logger.Warn("reminder_worker: send failed",
				"schedule_id", sched.ID, "appointment_id", sched.AppointmentID, "err", err)
			continue
		}

		sched.MarkSent()
		if err := db.WithContext(ctx).Save(sched).Error; err != nil {
			logger.Warn("reminder_worker: mark sent failed", "schedule_id", sched.ID, "err", err)
		}
	}
}

func sendReminder(ctx context.Context, db *gorm.DB, mailer *email.Client, sched *domain.EmailSchedule) error {
	var appt domain.Appointment
	if err := db.WithContext(ctx).First(&appt, "id = ?", sched.AppointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Appointment was deleted; retire the row.
			sched.MarkSent()
			return db.WithContext(ctx).Save(sched).Error
		}
		return err
	}

	if appt.Status == domain.StatusCanceled || appt.PatientID == nil {
		sched.MarkSent()
		return db.WithContext(ctx).Save(sched).Error
	}

	patientUser, err := userForPatientProfile(ctx, db, *appt.PatientID)
	if err != nil {
		return err
	}
	psyUser, err := userForPsychologistProfile(ctx, db, appt.PsychologistID)
	if err != nil {
		return err
	}

	cfg := mailer.Config()
	msg := email.BuildAppointmentReminderEmail(email.AppointmentReminderData{
		Name:            patientUser.Name,
		Email:           patientUser.Email,
		AppointmentDate: appt.AppointmentDate,
		Psychologist:    psyUser.Name,
		AppName:         cfg.AppName,
	})

	return mailer.Send(ctx, msg)
}

func userForPatientProfile(ctx context.Context, db *gorm.DB, profileID uuid.UUID) (*domain.User, error) {
	var p domain.PatientProfile
	if err := db.WithContext(ctx).First(&p, "id = ?", profileID).Error; err != nil {
		return nil, err
	}
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", p.UserID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func userForPsychologistProfile(ctx context.Context, db *gorm.DB, profileID uuid.UUID) (*domain.User, error) {
	var p domain.PsychologistProfile
	if err := db.WithContext(ctx).First(&p, "id = ?", profileID).Error; err != nil {
		return nil, err
	}
	var u domain.User
	if err := db.WithContext(ctx).First(&u, "id = ?", p.UserID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
