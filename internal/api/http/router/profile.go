package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mindmanager/mindmanager_backend/internal/api/http/handler"
	"github.com/mindmanager/mindmanager_backend/pkg/authorize"
)

func (r *Router) registerProfileRoutes(
	api fiber.Router,
	h *handler.ProfileHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	profile := api.Group("/profile", authRequired)

	profile.Get("/", h.GetOwn)

	// Patient profile
	profile.Post("/patient", requirePerm(authorize.ResourcePatient, authorize.ActionCreate), h.CreatePatient)
	profile.Get("/patient/:id", requirePerm(authorize.ResourcePatient, authorize.ActionRead), h.GetPatient)
	profile.Patch("/patient/:id", requirePerm(authorize.ResourcePatient, authorize.ActionUpdate), h.UpdatePatient)
	profile.Delete("/patient/:id", requirePerm(authorize.ResourcePatient, authorize.ActionDelete), h.DeletePatient)
	profile.Get("/patients/search", requirePerm(authorize.ResourcePatient, authorize.ActionList), h.SearchPatients)

	// Psychologist profile
	profile.Post("/psychologist", requirePerm(authorize.ResourcePsychologist, authorize.ActionCreate), h.CreatePsychologist)
	profile.Patch("/psychologist/:id", requirePerm(authorize.ResourcePsychologist, authorize.ActionUpdate), h.UpdatePsychologist)
}
