package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/service/treatment"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type TreatmentHandler struct {
	svc treatment.Service
}

func NewTreatmentHandler(svc treatment.Service) *TreatmentHandler {
	return &TreatmentHandler{svc: svc}
}

func mapTreatmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, treatment.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, treatment.ErrPatientNotFound),
		errors.Is(err, treatment.ErrProfessionalNotFound):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /api/v1/treatments
func (h *TreatmentHandler) Create(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var body struct {
		PatientID      uuid.UUID  `json:"patient_id"`
		ProfessionalID uuid.UUID  `json:"professional_id"`
		AppointmentID  *uuid.UUID `json:"appointment_id"`
		Description    string     `json:"description"`
		Cost           int64      `json:"cost"`
		Paid           bool       `json:"paid"`
		PerformedAt    *time.Time `json:"performed_at"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	t, err := h.svc.Create(c.Context(), clinicID, treatment.CreateRequest{
		PatientID:      body.PatientID,
		ProfessionalID: body.ProfessionalID,
		AppointmentID:  body.AppointmentID,
		Description:    body.Description,
		Cost:           body.Cost,
		Paid:           body.Paid,
		PerformedAt:    body.PerformedAt,
	})
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return created(c, t)
}

// GET /api/v1/patients/:id/treatments
func (h *TreatmentHandler) ListByPatient(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	patientID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	list, err := h.svc.ListByPatient(c.Context(), clinicID, patientID)
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return ok(c, list)
}

// PUT /api/v1/treatments/:id/paid
func (h *TreatmentHandler) SetPaid(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid treatment id")
	}

	var body struct {
		Paid bool `json:"paid"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	t, err := h.svc.SetPaid(c.Context(), clinicID, id, body.Paid)
	if err != nil {
		return mapTreatmentError(c, err)
	}
	return ok(c, t)
}
