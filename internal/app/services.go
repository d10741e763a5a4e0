package app

import (
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/mindmanager/mindmanager_backend/config"
	"github.com/mindmanager/mindmanager_backend/internal/service/anamnesis"
	"github.com/mindmanager/mindmanager_backend/internal/service/appointment"
	"github.com/mindmanager/mindmanager_backend/internal/service/auth"
	"github.com/mindmanager/mindmanager_backend/internal/service/patient"
	"github.com/mindmanager/mindmanager_backend/internal/service/psychologist"
	"github.com/mindmanager/mindmanager_backend/internal/service/session"
	"github.com/mindmanager/mindmanager_backend/internal/service/user"
	"github.com/mindmanager/mindmanager_backend/pkg/email"
	"github.com/mindmanager/mindmanager_backend/pkg/jwtauth"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideAuthService,
		ProvideUserService,
		ProvidePsychologistService,
		ProvidePatientService,
		ProvideAppointmentService,
		ProvideSessionService,
		ProvideAnamnesisService,
	),
)

func ProvideAuthService(
	db *gorm.DB,
	rdb *goredis.Client,
	jwt *jwtauth.Manager,
	mailer *email.Client,
	cfg *config.Config,
	logger *slog.Logger,
) auth.Service {
	return auth.New(db, rdb, jwt, mailer, cfg, logger)
}

func ProvideUserService(db *gorm.DB) user.Service {
	return user.New(db)
}

func ProvidePsychologistService(db *gorm.DB) psychologist.Service {
	return psychologist.New(db)
}

func ProvidePatientService(db *gorm.DB) patient.Service {
	return patient.New(db)
}

func ProvideAppointmentService(db *gorm.DB) appointment.Service {
	return appointment.New(db)
}

func ProvideSessionService(db *gorm.DB) session.Service {
	return session.New(db)
}

func ProvideAnamnesisService(db *gorm.DB) anamnesis.Service {
	return anamnesis.New(db)
}
