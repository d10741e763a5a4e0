package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/query"
	"github.com/mindmanager/mindmanager_backend/internal/service/session"
)

type SessionHandler struct {
	svc session.Service
}

func NewSessionHandler(svc session.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// POST /sessions
func (h *SessionHandler) Create(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var body struct {
		PsychologistID string    `json:"psychologist_id"`
		PatientID      string    `json:"patient_id"`
		AppointmentID  string    `json:"appointment_id"`
		Complaint      string    `json:"complaint"`
		Intervention   string    `json:"intervention"`
		Referrals      string    `json:"referrals"`
		SessionDate    time.Time `json:"session_date"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.PatientID == "" {
		return badRequest(c, "patient_id is required")
	}

	patientID, err := uuid.Parse(body.PatientID)
	if err != nil {
		return badRequest(c, "invalid patient_id")
	}

	req := session.CreateSessionRequest{
		PatientID:    patientID,
		Complaint:    body.Complaint,
		Intervention: body.Intervention,
		Referrals:    body.Referrals,
		SessionDate:  body.SessionDate,
	}
	if body.PsychologistID != "" {
		id, err := uuid.Parse(body.PsychologistID)
		if err != nil {
			return badRequest(c, "invalid psychologist_id")
		}
		req.PsychologistID = id
	}
	if body.AppointmentID != "" {
		id, err := uuid.Parse(body.AppointmentID)
		if err != nil {
			return badRequest(c, "invalid appointment_id")
		}
		req.AppointmentID = &id
	}

	s, err := h.svc.Create(c.Context(), actor, req)
	if err != nil {
		return failure(c, err)
	}
	return created(c, s)
}

// GET /sessions/:id
func (h *SessionHandler) Get(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid session id")
	}

	s, err := h.svc.GetByID(c.Context(), actor, id)
	if err != nil {
		return failure(c, err)
	}
	return ok(c, s)
}

// GET /sessions/search
func (h *SessionHandler) Search(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var q struct {
		listQuery
		ID             string `query:"id"`
		PsychologistID string `query:"psychologist_id"`
		PatientID      string `query:"patient_id"`
		AppointmentID  string `query:"appointment_id"`
		StartDate      string `query:"start_date"`
		EndDate        string `query:"end_date"`
	}
	_ = c.Bind().Query(&q)

	var filters query.SessionFilters
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
	if q.AppointmentID != "" {
		id, err := uuid.Parse(q.AppointmentID)
		if err != nil {
			return badRequest(c, "invalid appointment_id")
		}
		filters.AppointmentID = &id
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

	result, err := h.svc.Search(c.Context(), actor, session.SearchSessionsRequest{
		Filters: filters,
		Sort:    q.sort(),
		Page:    q.page(),
	})
	if err != nil {
		return failure(c, err)
	}
	return ok(c, listPayload(result, "sessions"))
}

// PATCH /sessions/:id
func (h *SessionHandler) Update(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid session id")
	}

	var body struct {
		Complaint    string `json:"complaint"`
		Intervention string `json:"intervention"`
		Referrals    string `json:"referrals"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	s, err := h.svc.Update(c.Context(), actor, id, session.UpdateSessionRequest{
		Complaint:    body.Complaint,
		Intervention: body.Intervention,
		Referrals:    body.Referrals,
	})
	if err != nil {
		return failure(c, err)
	}
	return ok(c, s)
}

// DELETE /sessions/:id
func (h *SessionHandler) Delete(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid session id")
	}

	if err := h.svc.Delete(c.Context(), actor, id); err != nil {
		return failure(c, err)
	}
	return noContent(c)
}

// GET /sessions/patient/:id
func (h *SessionHandler) ListByPatient(c fiber.Ctx) error {
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
		return failure(c, err)
	}
	return ok(c, listPayload(result, "sessions"))
}
