package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mindmanager/mindmanager_backend/pkg/authorize"
	"github.com/mindmanager/mindmanager_backend/pkg/jwtauth"
)

// RequirePermission checks that the authenticated user's role grants the
// given permission. A flat role mismatch is an identity-level failure and
// maps to 401; 403 is reserved for the per-record ownership denials the
// services raise.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		claims, ok := jwtauth.ClaimsFromFiber(c)
		if !ok {
			return fiber.ErrUnauthorized
		}

		role, ok := authorize.RoleFromUserRole(claims.Role)
		if !ok {
			return fiber.ErrUnauthorized
		}

		if err := auth.MustEnforce(c.Context(), authorize.GroupSubject(role), resource, action); err != nil {
			if errors.Is(err, authorize.ErrForbidden) {
				return fiber.ErrUnauthorized
			}
			return err
		}

		return c.Next()
	}
}
