package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/mindmanager/mindmanager_backend/internal/api/http/middleware"
	"github.com/mindmanager/mindmanager_backend/internal/fault"
)

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func created(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

func noContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
}

func conflict(c fiber.Ctx, err error) error {
	return errJSON(c, fiber.StatusConflict, err)
}

func internalError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// failure maps service errors to HTTP responses. Fault errors carry a stable
// machine code alongside the human message; anything else is an internal error.
func failure(c fiber.Ctx, err error) error {
	switch fault.KindOf(err) {
	case fault.KindNotFound:
		return errJSON(c, fiber.StatusNotFound, err)
	case fault.KindForbidden:
		return errJSON(c, fiber.StatusForbidden, err)
	case fault.KindUnauthorized:
		return errJSON(c, fiber.StatusUnauthorized, err)
	case fault.KindBusiness:
		return errJSON(c, fiber.StatusBadRequest, err)
	default:
		reqID, _ := middleware.RequestIDFromFiber(c)
		slog.Error("unexpected handler error", "error", err, "request_id", reqID)
		return internalError(c)
	}
}

func errJSON(c fiber.Ctx, status int, err error) error {
	body := fiber.Map{"error": fault.MessageOf(err)}
	if code := fault.CodeOf(err); code != "" {
		body["code"] = code
	}
	return c.Status(status).JSON(body)
}
