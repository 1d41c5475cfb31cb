package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

func (r *Router) registerTreatmentRoutes(api fiber.Router, h *handler.TreatmentHandler, clinicHeader fiber.Handler) {
	treatments := api.Group("/treatments", clinicHeader)

	treatments.Post("/", h.Create)
	treatments.Put("/:id/paid", h.SetPaid)
}
