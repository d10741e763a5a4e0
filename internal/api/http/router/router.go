package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/mindmanager/mindmanager_backend/config"
	"github.com/mindmanager/mindmanager_backend/internal/api/http/handler"
	"github.com/mindmanager/mindmanager_backend/internal/api/http/middleware"
	"github.com/mindmanager/mindmanager_backend/internal/service/anamnesis"
	"github.com/mindmanager/mindmanager_backend/internal/service/appointment"
	"github.com/mindmanager/mindmanager_backend/internal/service/auth"
	"github.com/mindmanager/mindmanager_backend/internal/service/patient"
	"github.com/mindmanager/mindmanager_backend/internal/service/psychologist"
	"github.com/mindmanager/mindmanager_backend/internal/service/session"
	"github.com/mindmanager/mindmanager_backend/internal/service/user"
	"github.com/mindmanager/mindmanager_backend/pkg/authorize"
	"github.com/mindmanager/mindmanager_backend/pkg/jwtauth"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg             *config.Config
	Redis           *goredis.Client
	Auth            authorize.IAuthorization
	JWTMgr          *jwtauth.Manager
	AuthSvc         auth.Service
	UserSvc         user.Service
	PsychologistSvc psychologist.Service
	PatientSvc      patient.Service
	AppointmentSvc  appointment.Service
	SessionSvc      session.Service
	AnamnesisSvc    anamnesis.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	authRequired := middleware.AuthRequired(r.p.JWTMgr, r.p.Redis)

	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}

	authH := handler.NewAuthHandler(r.p.AuthSvc)
	userH := handler.NewUserHandler(r.p.UserSvc)
	profileH := handler.NewProfileHandler(r.p.PatientSvc, r.p.PsychologistSvc)
	appointmentH := handler.NewAppointmentHandler(r.p.AppointmentSvc)
	sessionH := handler.NewSessionHandler(r.p.SessionSvc)
	anamnesisH := handler.NewAnamnesisHandler(r.p.AnamnesisSvc)

	api := app.Group("/api/v1")

	r.registerAuthRoutes(api, authH, authRequired)
	r.registerUserRoutes(api, userH, authRequired, requirePerm)
	r.registerProfileRoutes(api, profileH, authRequired, requirePerm)
	r.registerAppointmentRoutes(api, appointmentH, authRequired, requirePerm)
	r.registerSessionRoutes(api, sessionH, authRequired, requirePerm)
	r.registerAnamnesisRoutes(api, anamnesisH, authRequired, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Metrics.Enabled {
		path := r.p.Cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
