package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/service/patient"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, patient.ErrPatientNotFound),
		errors.Is(err, patient.ErrMedicalRecordNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, patient.ErrGuardianNotFound):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /api/v1/patients
func (h *PatientHandler) List(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var q struct {
		Search string `query:"search"`
	}
	_ = c.Bind().Query(&q)

	list, err := h.svc.List(c.Context(), clinicID, q.Search)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	p, err := h.svc.Get(c.Context(), clinicID, id)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// POST /api/v1/patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var body struct {
		FirstName  string     `json:"first_name"`
		LastName   string     `json:"last_name"`
		BirthDate  *time.Time `json:"birth_date"`
		Phone      string     `json:"phone"`
		Email      string     `json:"email"`
		Address    string     `json:"address"`
		GuardianID *uuid.UUID `json:"guardian_id"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Create(c.Context(), clinicID, patient.CreateRequest{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		BirthDate:  body.BirthDate,
		Phone:      body.Phone,
		Email:      body.Email,
		Address:    body.Address,
		GuardianID: body.GuardianID,
	})
	if err != nil {
		return mapPatientError(c, err)
	}
	return created(c, p)
}

// PATCH /api/v1/patients/:id
func (h *PatientHandler) Update(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	var body struct {
		FirstName   *string    `json:"first_name"`
		LastName    *string    `json:"last_name"`
		BirthDate   *time.Time `json:"birth_date"`
		Phone       *string    `json:"phone"`
		Email       *string    `json:"email"`
		Address     *string    `json:"address"`
		GuardianID  *uuid.UUID `json:"guardian_id"`
		DebtBalance *int64     `json:"debt_balance"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Update(c.Context(), clinicID, id, patient.UpdateRequest{
		FirstName:   body.FirstName,
		LastName:    body.LastName,
		BirthDate:   body.BirthDate,
		Phone:       body.Phone,
		Email:       body.Email,
		Address:     body.Address,
		GuardianID:  body.GuardianID,
		DebtBalance: body.DebtBalance,
	})
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// GET /api/v1/patients/:id/medical-record
func (h *PatientHandler) GetMedicalRecord(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	rec, err := h.svc.GetMedicalRecord(c.Context(), clinicID, id)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, rec)
}

// PUT /api/v1/patients/:id/medical-record
func (h *PatientHandler) SaveMedicalRecord(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	var body struct {
		Allergies   string `json:"allergies"`
		Medications string `json:"medications"`
		Conditions  string `json:"conditions"`
		Notes       string `json:"notes"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	rec, err := h.svc.SaveMedicalRecord(c.Context(), clinicID, id, patient.MedicalRecordRequest{
		Allergies:   body.Allergies,
		Medications: body.Medications,
		Conditions:  body.Conditions,
		Notes:       body.Notes,
	})
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, rec)
}
