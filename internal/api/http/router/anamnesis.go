package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mindmanager/mindmanager_backend/internal/api/http/handler"
	"github.com/mindmanager/mindmanager_backend/pkg/authorize"
)

func (r *Router) registerAnamnesisRoutes(
	api fiber.Router,
	h *handler.AnamnesisHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	// Role gate only: anamnesis records carry no per-record ownership check.
	anamnesis := api.Group("/anamnesis", authRequired)

	anamnesis.Post("/", requirePerm(authorize.ResourceAnamnesis, authorize.ActionCreate), h.Create)
	anamnesis.Get("/patient/:id", requirePerm(authorize.ResourceAnamnesis, authorize.ActionRead), h.GetByPatient)
	anamnesis.Get("/:id", requirePerm(authorize.ResourceAnamnesis, authorize.ActionRead), h.Get)
	anamnesis.Patch("/:id", requirePerm(authorize.ResourceAnamnesis, authorize.ActionUpdate), h.Update)
	anamnesis.Delete("/:id", requirePerm(authorize.ResourceAnamnesis, authorize.ActionDelete), h.Delete)
}
