package handler

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/api/http/middleware"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
	"github.com/Alijeyrad/dentclinic/pkg/logs"
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

// invalidInput reports every rejected field of a validation error.
func invalidInput(c fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  validation.ErrInvalidInput.Error(),
		"fields": validation.Fields(err),
	})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func conflict(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": msg})
}

func serviceUnavailable(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": msg})
}

// internalError logs err once and hides it from the client.
func internalError(c fiber.Ctx, err error) error {
	logs.FromContext(c.Context()).Error("request failed",
		slog.String("method", c.Method()),
		slog.String("path", c.Path()),
		slog.Any("error", err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

func clinicIDFromLocals(c fiber.Ctx) (uuid.UUID, bool) {
	return middleware.ClinicIDFromFiber(c)
}

func parseID(c fiber.Ctx, param string) (uuid.UUID, error) {
	return uuid.Parse(c.Params(param))
}
