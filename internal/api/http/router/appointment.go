package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

func (r *Router) registerAppointmentRoutes(api fiber.Router, h *handler.AppointmentHandler, clinicHeader fiber.Handler) {
	appts := api.Group("/appointments", clinicHeader)

	appts.Get("/", h.List)
	appts.Post("/", h.Create)
	appts.Get("/upcoming", h.Upcoming)
	appts.Get("/:id", h.Get)
	appts.Put("/:id/status", h.SetStatus)
}
