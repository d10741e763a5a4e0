package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/query"
	"github.com/mindmanager/mindmanager_backend/internal/service/user"
)

type UserHandler struct {
	svc user.Service
}

func NewUserHandler(svc user.Service) *UserHandler {
	return &UserHandler{svc: svc}
}

func mapUserError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, user.ErrEmailAlreadyExists):
		return conflict(c, err)
	default:
		return failure(c, err)
	}
}

// userView strips the password hash from responses.
func userView(u *domain.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"phone":      u.Phone,
		"role":       u.Role,
		"is_active":  u.IsActive,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// GET /users/:id
func (h *UserHandler) Get(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	u, err := h.svc.GetByID(c.Context(), actor, id)
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, userView(u))
}

// PATCH /users/:id
func (h *UserHandler) Update(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	var body struct {
		Name     string  `json:"name"`
		Email    string  `json:"email"`
		Phone    string  `json:"phone"`
		Role     *string `json:"role"`
		IsActive *bool   `json:"is_active"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	req := user.UpdateUserRequest{
		Name:     body.Name,
		Email:    body.Email,
		Phone:    body.Phone,
		IsActive: body.IsActive,
	}
	if body.Role != nil {
		r := domain.Role(*body.Role)
		req.Role = &r
	}

	u, err := h.svc.Update(c.Context(), actor, id, req)
	if err != nil {
		return mapUserError(c, err)
	}
	return ok(c, userView(u))
}

// DELETE /users/:id
func (h *UserHandler) Delete(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid user id")
	}

	if err := h.svc.Delete(c.Context(), actor, id); err != nil {
		return mapUserError(c, err)
	}
	return noContent(c)
}

// GET /users/search
func (h *UserHandler) Search(c fiber.Ctx) error {
	actor, hasActor := actorFromFiber(c)
	if !hasActor {
		return unauthorized(c)
	}

	var q struct {
		listQuery
		ID       string `query:"id"`
		Name     string `query:"name"`
		Email    string `query:"email"`
		Role     string `query:"role"`
		IsActive *bool  `query:"is_active"`
	}
	_ = c.Bind().Query(&q)

	filters := query.UserFilters{IsActive: q.IsActive}
	if q.ID != "" {
		id, err := uuid.Parse(q.ID)
		if err != nil {
			return badRequest(c, "invalid id")
		}
		filters.ID = &id
	}
	if q.Name != "" {
		filters.Name = &q.Name
	}
	if q.Email != "" {
		filters.Email = &q.Email
	}
	if q.Role != "" {
		r := domain.Role(q.Role)
		filters.Role = &r
	}

	result, err := h.svc.Search(c.Context(), actor, user.SearchUsersRequest{
		Filters: filters,
		Sort:    q.sort(),
		Page:    q.page(),
	})
	if err != nil {
		return mapUserError(c, err)
	}

	views := make([]fiber.Map, 0, len(result.Data))
	for i := range result.Data {
		views = append(views, userView(&result.Data[i]))
	}
	return ok(c, fiber.Map{
		"users":       views,
		"total":       result.Total,
		"page":        result.Page,
		"limit":       result.Limit,
		"total_pages": result.TotalPages,
	})
}
