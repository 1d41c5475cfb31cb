package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

// Clinic management runs before a clinic is selected, so it skips the
// clinic header.
func (r *Router) registerClinicRoutes(api fiber.Router, h *handler.ClinicHandler) {
	clinics := api.Group("/clinics")

	clinics.Get("/", h.List)
	clinics.Post("/", h.Create)
	clinics.Get("/:id", h.Get)
	clinics.Patch("/:id", h.Update)
	clinics.Delete("/:id", h.Deactivate)
}
