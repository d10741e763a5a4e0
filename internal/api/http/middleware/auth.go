package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	goredis "github.com/redis/go-redis/v9"

	"github.com/mindmanager/mindmanager_backend/internal/service/auth"
	"github.com/mindmanager/mindmanager_backend/pkg/jwtauth"
)

// AuthRequired validates a Bearer JWT access token and checks the session in
// Redis. On success, stores *jwtauth.Claims in c.Locals(jwtauth.CtxKeyClaims).
func AuthRequired(mgr *jwtauth.Manager, rdb *goredis.Client) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return fiber.ErrUnauthorized
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.ErrUnauthorized
		}

		claims, err := mgr.VerifyType(strings.TrimSpace(parts[1]), jwtauth.TokenTypeAccess)
		if err != nil {
			return fiber.ErrUnauthorized
		}

		// A revoked session invalidates still-live access tokens
		if claims.SessionID != nil {
			if err := rdb.Get(c.Context(), auth.SessionKey(*claims.SessionID)).Err(); err != nil {
				return fiber.ErrUnauthorized
			}
		}

		c.Locals(jwtauth.CtxKeyClaims, claims)
		return c.Next()
	}
}
