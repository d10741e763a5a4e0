package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mindmanager/mindmanager_backend/internal/api/http/handler"
	"github.com/mindmanager/mindmanager_backend/pkg/authorize"
)

func (r *Router) registerSessionRoutes(
	api fiber.Router,
	h *handler.SessionHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	sessions := api.Group("/sessions", authRequired)

	sessions.Post("/", requirePerm(authorize.ResourceSession, authorize.ActionCreate), h.Create)
	sessions.Get("/search", requirePerm(authorize.ResourceSession, authorize.ActionList), h.Search)
	sessions.Get("/patient/:id", requirePerm(authorize.ResourceSession, authorize.ActionList), h.ListByPatient)

	s := sessions.Group("/:id")
	s.Get("/", requirePerm(authorize.ResourceSession, authorize.ActionRead), h.Get)
	s.Patch("/", requirePerm(authorize.ResourceSession, authorize.ActionUpdate), h.Update)
	s.Delete("/", requirePerm(authorize.ResourceSession, authorize.ActionDelete), h.Delete)
}
