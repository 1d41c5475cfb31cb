package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/service/appointment"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type AppointmentHandler struct {
	svc appointment.Service
}

func NewAppointmentHandler(svc appointment.Service) *AppointmentHandler {
	return &AppointmentHandler{svc: svc}
}

func mapAppointmentError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, appointment.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, appointment.ErrPatientNotFound),
		errors.Is(err, appointment.ErrProfessionalNotFound),
		errors.Is(err, appointment.ErrInvalidDate):
		return badRequest(c, err.Error())
	case errors.Is(err, appointment.ErrProfessionalInactive):
		return conflict(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /api/v1/appointments?date=2006-01-02&status=scheduled
// GET /api/v1/appointments?from=...&to=...
func (h *AppointmentHandler) List(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var q struct {
		Date   string `query:"date"`
		From   string `query:"from"`
		To     string `query:"to"`
		Status string `query:"status"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query")
	}

	req := appointment.ListRequest{Date: q.Date}
	if q.From != "" || q.To != "" {
		from, err := time.Parse(time.RFC3339, q.From)
		if err != nil {
			return badRequest(c, "from must be an RFC 3339 timestamp")
		}
		to, err := time.Parse(time.RFC3339, q.To)
		if err != nil {
			return badRequest(c, "to must be an RFC 3339 timestamp")
		}
		req.From, req.To = &from, &to
	}
	if q.Status != "" {
		req.Status = &q.Status
	}

	list, err := h.svc.List(c.Context(), clinicID, req)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/appointments/upcoming?limit=5
func (h *AppointmentHandler) Upcoming(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var q struct {
		Limit int `query:"limit"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query")
	}

	list, err := h.svc.Upcoming(c.Context(), clinicID, q.Limit)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/appointments/:id
func (h *AppointmentHandler) Get(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	a, err := h.svc.Get(c.Context(), clinicID, id)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}

// POST /api/v1/appointments
func (h *AppointmentHandler) Create(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var body struct {
		PatientID      uuid.UUID `json:"patient_id"`
		ProfessionalID uuid.UUID `json:"professional_id"`
		ScheduledAt    time.Time `json:"scheduled_at"`
		Reason         string    `json:"reason"`
		Notes          *string   `json:"notes"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.Create(c.Context(), clinicID, appointment.CreateRequest{
		PatientID:      body.PatientID,
		ProfessionalID: body.ProfessionalID,
		ScheduledAt:    body.ScheduledAt,
		Reason:         body.Reason,
		Notes:          body.Notes,
	})
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return created(c, a)
}

// PUT /api/v1/appointments/:id/status
func (h *AppointmentHandler) SetStatus(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid appointment id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	a, err := h.svc.SetStatus(c.Context(), clinicID, id, body.Status)
	if err != nil {
		return mapAppointmentError(c, err)
	}
	return ok(c, a)
}
