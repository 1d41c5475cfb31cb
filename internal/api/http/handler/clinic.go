package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/service/clinic"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type ClinicHandler struct {
	svc clinic.Service
}

func NewClinicHandler(svc clinic.Service) *ClinicHandler {
	return &ClinicHandler{svc: svc}
}

func mapClinicError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, clinic.ErrClinicNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, clinic.ErrClinicInactive):
		return conflict(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /api/v1/clinics
func (h *ClinicHandler) List(c fiber.Ctx) error {
	list, err := h.svc.ListActive(c.Context())
	if err != nil {
		return mapClinicError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/clinics/:id
func (h *ClinicHandler) Get(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid clinic id")
	}
	cl, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapClinicError(c, err)
	}
	return ok(c, cl)
}

// POST /api/v1/clinics
func (h *ClinicHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name       string     `json:"name"`
		Address    string     `json:"address"`
		Phone      string     `json:"phone"`
		Email      string     `json:"email"`
		Membership string     `json:"membership"`
		Trial      bool       `json:"trial"`
		ExpiresAt  *time.Time `json:"expires_at"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	cl, err := h.svc.Create(c.Context(), clinic.CreateClinicRequest{
		Name:       body.Name,
		Address:    body.Address,
		Phone:      body.Phone,
		Email:      body.Email,
		Membership: body.Membership,
		Trial:      body.Trial,
		ExpiresAt:  body.ExpiresAt,
	})
	if err != nil {
		return mapClinicError(c, err)
	}
	return created(c, cl)
}

// PATCH /api/v1/clinics/:id
func (h *ClinicHandler) Update(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid clinic id")
	}

	var body struct {
		Name       *string    `json:"name"`
		Address    *string    `json:"address"`
		Phone      *string    `json:"phone"`
		Email      *string    `json:"email"`
		Membership *string    `json:"membership"`
		Trial      *bool      `json:"trial"`
		ExpiresAt  *time.Time `json:"expires_at"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	cl, err := h.svc.Update(c.Context(), id, clinic.UpdateClinicRequest{
		Name:       body.Name,
		Address:    body.Address,
		Phone:      body.Phone,
		Email:      body.Email,
		Membership: body.Membership,
		Trial:      body.Trial,
		ExpiresAt:  body.ExpiresAt,
	})
	if err != nil {
		return mapClinicError(c, err)
	}
	return ok(c, cl)
}

// DELETE /api/v1/clinics/:id
func (h *ClinicHandler) Deactivate(c fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid clinic id")
	}
	if err := h.svc.Deactivate(c.Context(), id); err != nil {
		return mapClinicError(c, err)
	}
	return noContent(c)
}
