package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

func (r *Router) registerProfessionalRoutes(api fiber.Router, h *handler.ProfessionalHandler, clinicHeader fiber.Handler) {
	pros := api.Group("/professionals", clinicHeader)

	pros.Get("/", h.List)
	pros.Post("/", h.Create)
	pros.Get("/:id", h.Get)
	pros.Patch("/:id", h.Update)
	pros.Post("/:id/deactivate", h.Deactivate)
	pros.Post("/:id/activate", h.Activate)
}
