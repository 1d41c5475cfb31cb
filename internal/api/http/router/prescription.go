package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

func (r *Router) registerPrescriptionRoutes(api fiber.Router, h *handler.PrescriptionHandler, clinicHeader fiber.Handler) {
	rx := api.Group("/prescriptions")

	// Public
	rx.Get("/verify/:code", h.Verify)

	rx.Post("/", clinicHeader, h.Create)
}
