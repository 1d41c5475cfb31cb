package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/pkg/constants"
	"github.com/Alijeyrad/dentclinic/pkg/reqctx"
)

const LocalsClinicID = "clinic_id"

// ClinicChecker is satisfied by clinic.Service.
type ClinicChecker interface {
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// ClinicHeader reads the clinic ID from the X-Clinic-ID header and rejects
// the request unless it names an active clinic. On success the ID is stored
// in Locals and in the request context.
func ClinicHeader(clinics ClinicChecker) fiber.Handler {
	return func(c fiber.Ctx) error {
		idStr := c.Get(constants.HeaderClinicID)
		if idStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "X-Clinic-ID header is required")
		}

		clinicID, err := uuid.Parse(idStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid X-Clinic-ID value")
		}

		active, err := clinics.IsActive(c.Context(), clinicID)
		if err != nil {
			return err
		}
		if !active {
			return fiber.NewError(fiber.StatusNotFound, "clinic not found")
		}

		c.Locals(LocalsClinicID, clinicID)
		c.SetContext(reqctx.WithClinicID(c.Context(), clinicID))

		return c.Next()
	}
}

// ClinicIDFromFiber returns the clinic validated by ClinicHeader.
func ClinicIDFromFiber(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(LocalsClinicID).(uuid.UUID)
	return id, ok && id != uuid.Nil
}
