package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/service/history"
)

type HistoryHandler struct {
	svc history.Service
}

func NewHistoryHandler(svc history.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// GET /api/v1/patients/:id/history
func (h *HistoryHandler) Get(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	patientID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	hist, err := h.svc.Get(c.Context(), clinicID, patientID)
	if err != nil {
		if errors.Is(err, history.ErrPatientNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c, err)
	}
	return ok(c, hist)
}
