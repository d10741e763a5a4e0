package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/mindmanager/mindmanager_backend/config"
	"github.com/mindmanager/mindmanager_backend/internal/api/http/router"
	"github.com/mindmanager/mindmanager_backend/internal/app"
)

func Start(cfg *config.Config, logger *slog.Logger, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		fx.Supply(logger),
		app.InfraModule,
		app.ServiceModule,
		app.WorkerModule,
		router.Module,
		Module, // the http.Module from server.go

		// Invoking *fiber.App forces its construction, which registers
		// the OnStart hook that begins listening.
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
		fx.WithLogger(func() fxevent.Logger { return fxevent.NopLogger }),
	).Run()
}
