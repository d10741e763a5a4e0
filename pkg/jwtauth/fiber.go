package jwtauth

import (
	"github.com/gofiber/fiber/v3"
)

const CtxKeyClaims = "auth.claims"

// ClaimsFromFiber reads the verified claims the auth middleware stored in
// request locals.
func ClaimsFromFiber(c fiber.Ctx) (*Claims, bool) {
	v := c.Locals(CtxKeyClaims)
	if v == nil {
		return nil, false
	}
	cl, ok := v.(*Claims)
	return cl, ok
}
