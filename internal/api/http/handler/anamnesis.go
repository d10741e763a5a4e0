package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/service/anamnesis"
)

type AnamnesisHandler struct {
	svc anamnesis.Service
}

func NewAnamnesisHandler(svc anamnesis.Service) *AnamnesisHandler {
	return &AnamnesisHandler{svc: svc}
}

func mapAnamnesisError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, anamnesis.ErrAlreadyExists):
		return conflict(c, err)
	default:
		return failure(c, err)
	}
}

type anamnesisBody struct {
	FamilyHistory string `json:"family_history"`
	Infancy       string `json:"infancy"`
	Adolescence   string `json:"adolescence"`
	Illnesses     string `json:"illnesses"`
	Accompaniment string `json:"accompaniment"`
}

// POST /anamnesis
func (h *AnamnesisHandler) Create(c fiber.Ctx) error {
	var body struct {
		PatientID string `json:"patient_id"`
		anamnesisBody
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

	a, err := h.svc.Create(c.Context(), anamnesis.CreateAnamnesisRequest{
		PatientID:     patientID,
		FamilyHistory: body.FamilyHistory,
		Infancy:       body.Infancy,
		Adolescence:   body.Adolescence,
		Illnesses:     body.Illnesses,
		Accompaniment: body.Accompaniment,
	})
	if err != nil {
		return mapAnamnesisError(c, err)
	}
	return created(c, a)
}

// GET /anamnesis/:id
func (h *AnamnesisHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid anamnesis id")
	}

	a, err := h.svc.GetByID(c.Context(), id)
	if err != nil {
		return mapAnamnesisError(c, err)
	}
	return ok(c, a)
}

// GET /anamnesis/patient/:id
func (h *AnamnesisHandler) GetByPatient(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	a, err := h.svc.GetByPatient(c.Context(), id)
	if err != nil {
		return mapAnamnesisError(c, err)
	}
	return ok(c, a)
}

// PATCH /anamnesis/:id
func (h *AnamnesisHandler) Update(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid anamnesis id")
	}

	var body anamnesisBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.Update(c.Context(), id, anamnesis.UpdateAnamnesisRequest{
		FamilyHistory: body.FamilyHistory,
		Infancy:       body.Infancy,
		Adolescence:   body.Adolescence,
		Illnesses:     body.Illnesses,
		Accompaniment: body.Accompaniment,
	})
	if err != nil {
		return mapAnamnesisError(c, err)
	}
	return ok(c, a)
}

// DELETE /anamnesis/:id
func (h *AnamnesisHandler) Delete(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid anamnesis id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return mapAnamnesisError(c, err)
	}
	return noContent(c)
}
