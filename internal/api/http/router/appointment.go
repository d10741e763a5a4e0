package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mindmanager/mindmanager_backend/internal/api/http/handler"
	"github.com/mindmanager/mindmanager_backend/pkg/authorize"
)

func (r *Router) registerAppointmentRoutes(
	api fiber.Router,
	h *handler.AppointmentHandler,
	authRequired fiber.Handler,
	requirePerm func(authorize.Resource, authorize.Action) fiber.Handler,
) {
	appointments := api.Group("/appointments", authRequired)

	appointments.Post("/", requirePerm(authorize.ResourceAppointment, authorize.ActionCreate), h.Create)
	appointments.Get("/search", requirePerm(authorize.ResourceAppointment, authorize.ActionList), h.Search)
	appointments.Get("/patient/:id", requirePerm(authorize.ResourceAppointment, authorize.ActionList), h.ListByPatient)
	appointments.Get("/psychologist/:id", requirePerm(authorize.ResourceAppointment, authorize.ActionList), h.ListByPsychologist)

	a := appointments.Group("/:id")
	a.Get("/", requirePerm(authorize.ResourceAppointment, authorize.ActionRead), h.Get)
	a.Put("/", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), h.Update)
	a.Delete("/", requirePerm(authorize.ResourceAppointment, authorize.ActionDelete), h.Delete)
	a.Patch("/cancel", requirePerm(authorize.ResourceAppointment, authorize.ActionCancel), h.Cancel)
	a.Patch("/patient", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), h.AssignPatient)
	a.Delete("/patient", requirePerm(authorize.ResourceAppointment, authorize.ActionUpdate), h.RemovePatient)
}
