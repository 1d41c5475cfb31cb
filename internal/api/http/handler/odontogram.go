package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/service/odontogram"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type OdontogramHandler struct {
	svc odontogram.Service
}

func NewOdontogramHandler(svc odontogram.Service) *OdontogramHandler {
	return &OdontogramHandler{svc: svc}
}

func mapOdontogramError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, odontogram.ErrPatientNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /api/v1/patients/:id/odontogram
func (h *OdontogramHandler) Load(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	patientID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	chart, err := h.svc.Load(c.Context(), clinicID, patientID)
	if err != nil {
		return mapOdontogramError(c, err)
	}
	return ok(c, chart)
}

// PUT /api/v1/patients/:id/odontogram/:tooth
func (h *OdontogramHandler) SaveTooth(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	patientID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}
	number, err := strconv.Atoi(c.Params("tooth"))
	if err != nil {
		return badRequest(c, "invalid tooth number")
	}

	var body struct {
		Condition string `json:"condition"`
		Treatment string `json:"treatment"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	tooth, err := h.svc.SaveTooth(c.Context(), clinicID, patientID, odontogram.SaveToothRequest{
		Number:    number,
		Condition: body.Condition,
		Treatment: body.Treatment,
	})
	if err != nil {
		return mapOdontogramError(c, err)
	}
	return ok(c, tooth)
}

// GET /api/v1/odontogram/legend
func (h *OdontogramHandler) Legend(c fiber.Ctx) error {
	return ok(c, h.svc.Legend())
}
