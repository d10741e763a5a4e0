package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/query"
	"github.com/mindmanager/mindmanager_backend/internal/service/patient"
	"github.com/mindmanager/mindmanager_backend/internal/service/psychologist"
)

// ProfileHandler serves both profile kinds: the clinical patient record and
// the psychologist registration.
type ProfileHandler struct {
	patients      patient.Service
	psychologists psychologist.Service
}

func NewProfileHandler(patients patient.Service, psychologists psychologist.Service) *ProfileHandler {
	return &ProfileHandler{patients: patients, psychologists: psychologists}
}

func mapProfileError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrAlreadyHasProfile):
		return conflict(c, err)
	case errors.Is(err, psychologist.ErrAlreadyHasProfile):
		return conflict(c, err)
	default:
		return failure(c, err)
	}
}

// ---------------------------------------------------------------------------
// Patient profile
// ---------------------------------------------------------------------------

type patientBody struct {
	UserID       string   `json:"user_id"`
	Registration string   `json:"registration"`
	Series       string   `json:"series"`
	BirthDate    string   `json:"birth_date"`
	Gender       string   `json:"gender"`
	PatientType  string   `json:"patient_type"`
	Education    string   `json:"education"`
	Course       string   `json:"course"`
	Disorders    []string `json:"disorders"`
	Difficulties []string `json:"difficulties"`
}

func (b patientBody) birthDate() (time.Time, error) {
	if b.BirthDate == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", b.BirthDate)
}

func toDisorders(in []string) []domain.Disorder {
	if in == nil {
		return nil
	}
	out := make([]domain.Disorder, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Disorder(s))
	}
	return out
}

func toDifficulties(in []string) []domain.Difficulty {
	if in == nil {
		return nil
	}
	out := make([]domain.Difficulty, 0, len(in))
	for _, s := range in {
		out = append(out, domain.Difficulty(s))
	}
	return out
}

// POST /profile/patient
func (h *ProfileHandler) CreatePatient(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var body patientBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	birth, err := body.birthDate()
	if err != nil {
		return badRequest(c, "invalid birth_date, expected YYYY-MM-DD")
	}

	req := patient.CreatePatientRequest{
		Registration: body.Registration,
		Series:       body.Series,
		BirthDate:    birth,
		Gender:       domain.Gender(body.Gender),
		PatientType:  domain.PatientType(body.PatientType),
		Education:    domain.Education(body.Education),
		Course:       domain.Course(body.Course),
		Disorders:    toDisorders(body.Disorders),
		Difficulties: toDifficulties(body.Difficulties),
	}
	if body.UserID != "" {
		id, err := uuid.Parse(body.UserID)
		if err != nil {
			return badRequest(c, "invalid user_id")
		}
		req.UserID = id
	}

	p, err := h.patients.Create(c.Context(), actor, req)
	if err != nil {
		return mapProfileError(c, err)
	}
	return created(c, p)
}

// GET /profile/patient/:id
func (h *ProfileHandler) GetPatient(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	p, err := h.patients.GetByID(c.Context(), actor, id)
	if err != nil {
		return mapProfileError(c, err)
	}
	return ok(c, p)
}

// PATCH /profile/patient/:id
func (h *ProfileHandler) UpdatePatient(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	var body patientBody
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	birth, err := body.birthDate()
	if err != nil {
		return badRequest(c, "invalid birth_date, expected YYYY-MM-DD")
	}

	req := patient.UpdatePatientRequest{
		Registration: body.Registration,
		Series:       body.Series,
		BirthDate:    birth,
		Gender:       domain.Gender(body.Gender),
		Education:    domain.Education(body.Education),
		Course:       domain.Course(body.Course),
		Disorders:    toDisorders(body.Disorders),
		Difficulties: toDifficulties(body.Difficulties),
	}
	if body.PatientType != "" {
		pt := domain.PatientType(body.PatientType)
		req.PatientType = &pt
	}

	p, err := h.patients.Update(c.Context(), actor, id, req)
	if err != nil {
		return mapProfileError(c, err)
	}
	return ok(c, p)
}

// DELETE /profile/patient/:id
func (h *ProfileHandler) DeletePatient(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	if err := h.patients.Delete(c.Context(), actor, id); err != nil {
		return mapProfileError(c, err)
	}
	return noContent(c)
}

// GET /profile/patients/search
func (h *ProfileHandler) SearchPatients(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var q struct {
		listQuery
		ID          string `query:"id"`
		UserID      string `query:"user_id"`
		Gender      string `query:"gender"`
		PatientType string `query:"patient_type"`
		Education   string `query:"education"`
		Course      string `query:"course"`
	}
	_ = c.Bind().Query(&q)

	var filters query.PatientFilters
	if q.ID != "" {
		id, err := uuid.Parse(q.ID)
		if err != nil {
			return badRequest(c, "invalid id")
		}
		filters.ID = &id
	}
	if q.UserID != "" {
		id, err := uuid.Parse(q.UserID)
		if err != nil {
			return badRequest(c, "invalid user_id")
		}
		filters.UserID = &id
	}
	if q.Gender != "" {
		g := domain.Gender(q.Gender)
		filters.Gender = &g
	}
	if q.PatientType != "" {
		pt := domain.PatientType(q.PatientType)
		filters.PatientType = &pt
	}
	if q.Education != "" {
		e := domain.Education(q.Education)
		filters.Education = &e
	}
	if q.Course != "" {
		co := domain.Course(q.Course)
		filters.Course = &co
	}

	result, err := h.patients.Search(c.Context(), actor, patient.SearchPatientsRequest{
		Filters: filters,
		Sort:    q.sort(),
		Page:    q.page(),
	})
	if err != nil {
		return mapProfileError(c, err)
	}
	return ok(c, listPayload(result, "patients"))
}

// ---------------------------------------------------------------------------
// Psychologist profile
// ---------------------------------------------------------------------------

// POST /profile/psychologist
func (h *ProfileHandler) CreatePsychologist(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var body struct {
		UserID    string `json:"user_id"`
		Crp       string `json:"crp"`
		Specialty string `json:"specialty"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := psychologist.CreatePsychologistRequest{
		Crp:       body.Crp,
		Specialty: body.Specialty,
	}
	if body.UserID != "" {
		id, err := uuid.Parse(body.UserID)
		if err != nil {
			return badRequest(c, "invalid user_id")
		}
		req.UserID = id
	}

	p, err := h.psychologists.Create(c.Context(), actor, req)
	if err != nil {
		return mapProfileError(c, err)
	}
	return created(c, p)
}

// PATCH /profile/psychologist/:id
func (h *ProfileHandler) UpdatePsychologist(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid psychologist id")
	}

	var body struct {
		Crp       string `json:"crp"`
		Specialty string `json:"specialty"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.psychologists.Update(c.Context(), actor, id, psychologist.UpdatePsychologistRequest{
		Crp:       body.Crp,
		Specialty: body.Specialty,
	})
	if err != nil {
		return mapProfileError(c, err)
	}
	return ok(c, p)
}

// GET /profile
// Returns whichever profile the caller owns.
func (h *ProfileHandler) GetOwn(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	switch {
	case actor.IsPsychologist():
		p, err := h.psychologists.GetByUserID(c.Context(), actor.UserID)
		if err != nil {
			return mapProfileError(c, err)
		}
		return ok(c, fiber.Map{"psychologist": p})
	default:
		p, err := h.patients.GetByUserID(c.Context(), actor, actor.UserID)
		if err != nil {
			return mapProfileError(c, err)
		}
		return ok(c, fiber.Map{"patient": p})
	}
}
