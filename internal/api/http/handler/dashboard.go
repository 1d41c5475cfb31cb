package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/service/dashboard"
)

type DashboardHandler struct {
	svc dashboard.Service
}

func NewDashboardHandler(svc dashboard.Service) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// GET /api/v1/dashboard
func (h *DashboardHandler) Summary(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	s, err := h.svc.Summary(c.Context(), clinicID)
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, s)
}

// GET /api/v1/dashboard/admin
func (h *DashboardHandler) Admin(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	s, err := h.svc.AdminSummary(c.Context(), clinicID)
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, s)
}
