package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

func (r *Router) registerDashboardRoutes(api fiber.Router, h *handler.DashboardHandler, clinicHeader fiber.Handler) {
	dash := api.Group("/dashboard", clinicHeader)

	dash.Get("/", h.Summary)
	dash.Get("/admin", h.Admin)
}
