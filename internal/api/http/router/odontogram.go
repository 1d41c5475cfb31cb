package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

func (r *Router) registerOdontogramRoutes(api fiber.Router, h *handler.OdontogramHandler) {
	api.Get("/odontogram/legend", h.Legend)
}
