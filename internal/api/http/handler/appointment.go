package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/query"
	"github.com/mindmanager/mindmanager_backend/internal/service/appointment"
)

type AppointmentHandler struct {
	svc appointment.Service
}

func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrAppointmentCanceled):
		return conflict(c, err)
	default:
		return failure(c, err)
	}
}

// POST /appointments
func (h *AppointmentHandler) Create(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var body struct {
		PsychologistUserID string    `json:"psychologist_user_id"`
		PatientUserID      string    `json:"patient_user_id"`
		AppointmentDate    time.Time `json:"appointment_date"`
		Type               string    `json:"type"`
		ActivityType       string    `json:"activity_type"`
		Reason             string    `json:"reason"`
		Observation        string    `json:"observation"`
		Objective          string    `json:"objective"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := appointment.CreateAppointmentRequest{
		AppointmentDate: body.AppointmentDate,
		Type:            domain.AppointmentType(body.Type),
		ActivityType:    domain.ActivityType(body.ActivityType),
		Reason:          body.Reason,
		Observation:     body.Observation,
		Objective:       body.Objective,
	}
	if body.PsychologistUserID != "" {
		id, err := uuid.Parse(body.PsychologistUserID)
		if err != nil {
			return badRequest(c, "invalid psychologist_user_id")
		}
		req.PsychologistUserID = id
	}
	if body.PatientUserID != "" {
		id, err := uuid.Parse(body.PatientUserID)
		if err != nil {
			return badRequest(c, "invalid patient_user_id")
		}
		req.PatientUserID = &id
	}

	a, err := h.svc.Create(c.Context(), actor, req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, a)
}

// GET /appointments/:id
func (h *AppointmentHandler) Get(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	a, err := h.svc.GetByID(c.Context(), actor, id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// GET /appointments/search
func (h *AppointmentHandler) Search(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var q struct {
		listQuery
		ID             string `query:"id"`
		PsychologistID string `query:"psychologist_id"`
		PatientID      string `query:"patient_id"`
		Status         string `query:"status"`
		Type           string `query:"type"`
		ActivityType   string `query:"activity_type"`
		StartDate      string `query:"start_date"`
		EndDate        string `query:"end_date"`
	}
	_ = c.Bind().Query(&q)

	var filters query.AppointmentFilters
	if q.ID != "" {
		id, err := uuid.Parse(q.ID)
		if err != nil {
			return badRequest(c, "invalid id")
		}
		filters.ID = &id
	}
	if q.PsychologistID != "" {
		id, err := uuid.Parse(q.PsychologistID)
		if err != nil {
			return badRequest(c, "invalid psychologist_id")
		}
		filters.PsychologistID = &id
	}
	if q.PatientID != "" {
		id, err := uuid.Parse(q.PatientID)
		if err != nil {
			return badRequest(c, "invalid patient_id")
		}
		filters.PatientID = &id
	}
	if q.Status != "" {
		s := domain.Status(q.Status)
		filters.Status = &s
	}
	if q.Type != "" {
		t := domain.AppointmentType(q.Type)
		filters.Type = &t
	}
	if q.ActivityType != "" {
		at := domain.ActivityType(q.ActivityType)
		filters.ActivityType = &at
	}
	if q.StartDate != "" {
		t, err := time.Parse(time.RFC3339, q.StartDate)
		if err != nil {
			return badRequest(c, "invalid start_date")
		}
		filters.StartDate = &t
	}
	if q.EndDate != "" {
		t, err := time.Parse(time.RFC3339, q.EndDate)
		if err != nil {
			return badRequest(c, "invalid end_date")
		}
		filters.EndDate = &t
	}

	result, err := h.svc.Search(c.Context(), actor, appointment.SearchAppointmentsRequest{
		Filters: filters,
		Sort:    q.sort(),
		Page:    q.page(),
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, listPayload(result, "appointments"))
}

// PUT /appointments/:id
func (h *AppointmentHandler) Update(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		AppointmentDate *time.Time `json:"appointment_date"`
		Status          *string    `json:"status"`
		Type            *string    `json:"type"`
		ActivityType    *string    `json:"activity_type"`
		Observation     *string    `json:"observation"`
		Objective       *string    `json:"objective"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := appointment.UpdateAppointmentRequest{
		AppointmentDate: body.AppointmentDate,
		Observation:     body.Observation,
		Objective:       body.Objective,
	}
	if body.Status != nil {
		s := domain.Status(*body.Status)
		req.Status = &s
	}
	if body.Type != nil {
		t := domain.AppointmentType(*body.Type)
		req.Type = &t
	}
	if body.ActivityType != nil {
		at := domain.ActivityType(*body.ActivityType)
		req.ActivityType = &at
	}

	a, err := h.svc.Update(c.Context(), actor, id, req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// DELETE /appointments/:id
func (h *AppointmentHandler) Delete(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	if err := h.svc.Delete(c.Context(), actor, id); err != nil {
		return mapAppointmentError(c, err)
	}
	return noContent(c)
}

// PATCH /appointments/:id/cancel
func (h *AppointmentHandler) Cancel(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	a, err := h.svc.Cancel(c.Context(), actor, id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// PATCH /appointments/:id/patient
func (h *AppointmentHandler) AssignPatient(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		PatientID string `json:"patient_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	patientID, err := uuid.Parse(body.PatientID)
	if err != nil {
		return badRequest(c, "invalid patient_id")
	}

	a, err := h.svc.AssignPatient(c.Context(), actor, id, patientID)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// DELETE /appointments/:id/patient
func (h *AppointmentHandler) RemovePatient(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	a, err := h.svc.RemovePatient(c.Context(), actor, id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// GET /appointments/patient/:id
func (h *AppointmentHandler) ListByPatient(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	var q listQuery
	_ = c.Bind().Query(&q)

	result, err := h.svc.ListByPatient(c.Context(), actor, id, q.page())
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, listPayload(result, "appointments"))
}

// GET /appointments/psychologist/:id
func (h *AppointmentHandler) ListByPsychologist(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid psychologist id")
	}

	var q listQuery
	_ = c.Bind().Query(&q)

	result, err := h.svc.ListByPsychologist(c.Context(), actor, id, q.page())
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, listPayload(result, "appointments"))
}
