package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/mindmanager/mindmanager_backend/internal/domain"
	"github.com/mindmanager/mindmanager_backend/internal/query"
	"github.com/mindmanager/mindmanager_backend/pkg/jwtauth"
)

// actorFromFiber builds the domain actor from the token claims set by the
// auth middleware.
func actorFromFiber(c fiber.Ctx) (domain.Actor, bool) {
	claims, ok := jwtauth.ClaimsFromFiber(c)
	if !ok {
		return domain.Actor{}, false
	}
	return domain.Actor{UserID: claims.UserID, Role: domain.Role(claims.Role)}, true
}

func parseID(c fiber.Ctx, name string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(name))
}

// listQuery is the pagination/sort block shared by every search endpoint.
type listQuery struct {
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
	Sort  string `query:"sort"`
	Order string `query:"order"`
}

func (q listQuery) page() query.Page {
	return query.Page{Page: q.Page, Limit: q.Limit}
}

func (q listQuery) sort() query.Sort {
	return query.Sort{By: q.Sort, Descending: q.Order == "desc"}
}

func listPayload[T any](r *query.Result[T], key string) fiber.Map {
	return fiber.Map{
		key:           r.Data,
		"total":       r.Total,
		"page":        r.Page,
		"limit":       r.Limit,
		"total_pages": r.TotalPages,
	}
}
