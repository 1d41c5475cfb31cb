package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/service/prescription"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type PrescriptionHandler struct {
	svc prescription.Service
}

func NewPrescriptionHandler(svc prescription.Service) *PrescriptionHandler {
	return &PrescriptionHandler{svc: svc}
}

func mapPrescriptionError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, prescription.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, prescription.ErrPatientNotFound),
		errors.Is(err, prescription.ErrProfessionalNotFound):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /api/v1/prescriptions
func (h *PrescriptionHandler) Create(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var body struct {
		PatientID      uuid.UUID  `json:"patient_id"`
		ProfessionalID uuid.UUID  `json:"professional_id"`
		AppointmentID  *uuid.UUID `json:"appointment_id"`
		Medications    string     `json:"medications"`
		Instructions   string     `json:"instructions"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Create(c.Context(), clinicID, prescription.CreateRequest{
		PatientID:      body.PatientID,
		ProfessionalID: body.ProfessionalID,
		AppointmentID:  body.AppointmentID,
		Medications:    body.Medications,
		Instructions:   body.Instructions,
	})
	if err != nil {
		return mapPrescriptionError(c, err)
	}
	return created(c, p)
}

// GET /api/v1/patients/:id/prescriptions
func (h *PrescriptionHandler) ListByPatient(c fiber.Ctx) error {
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
		return mapPrescriptionError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/prescriptions/verify/:code
//
// Public: pharmacies check a code without selecting a clinic.
func (h *PrescriptionHandler) Verify(c fiber.Ctx) error {
	p, err := h.svc.Verify(c.Context(), c.Params("code"))
	if err != nil {
		return mapPrescriptionError(c, err)
	}
	return ok(c, p)
}
