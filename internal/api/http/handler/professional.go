package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/service/professional"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type ProfessionalHandler struct {
	svc professional.Service
}

func NewProfessionalHandler(svc professional.Service) *ProfessionalHandler {
	return &ProfessionalHandler{svc: svc}
}

func mapProfessionalError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, professional.ErrNotFound):
		return notFound(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// GET /api/v1/professionals?active=true
func (h *ProfessionalHandler) List(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var q struct {
		Active bool `query:"active"`
	}
	if err := c.Bind().Query(&q); err != nil {
		return badRequest(c, "invalid query")
	}

	list, err := h.svc.List(c.Context(), clinicID, q.Active)
	if err != nil {
		return mapProfessionalError(c, err)
	}
	return ok(c, list)
}

// GET /api/v1/professionals/:id
func (h *ProfessionalHandler) Get(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid professional id")
	}

	p, err := h.svc.Get(c.Context(), clinicID, id)
	if err != nil {
		return mapProfessionalError(c, err)
	}
	return ok(c, p)
}

// POST /api/v1/professionals
func (h *ProfessionalHandler) Create(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}

	var body struct {
		FirstName     string `json:"first_name"`
		LastName      string `json:"last_name"`
		Specialty     string `json:"specialty"`
		LicenseNumber string `json:"license_number"`
		Phone         string `json:"phone"`
		Email         string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Create(c.Context(), clinicID, professional.CreateRequest{
		FirstName:     body.FirstName,
		LastName:      body.LastName,
		Specialty:     body.Specialty,
		LicenseNumber: body.LicenseNumber,
		Phone:         body.Phone,
		Email:         body.Email,
	})
	if err != nil {
		return mapProfessionalError(c, err)
	}
	return created(c, p)
}

// PATCH /api/v1/professionals/:id
func (h *ProfessionalHandler) Update(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid professional id")
	}

	var body struct {
		FirstName     *string `json:"first_name"`
		LastName      *string `json:"last_name"`
		Specialty     *string `json:"specialty"`
		LicenseNumber *string `json:"license_number"`
		Phone         *string `json:"phone"`
		Email         *string `json:"email"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Update(c.Context(), clinicID, id, professional.UpdateRequest{
		FirstName:     body.FirstName,
		LastName:      body.LastName,
		Specialty:     body.Specialty,
		LicenseNumber: body.LicenseNumber,
		Phone:         body.Phone,
		Email:         body.Email,
	})
	if err != nil {
		return mapProfessionalError(c, err)
	}
	return ok(c, p)
}

// POST /api/v1/professionals/:id/deactivate
func (h *ProfessionalHandler) Deactivate(c fiber.Ctx) error {
	return h.setActive(c, false)
}

// POST /api/v1/professionals/:id/activate
func (h *ProfessionalHandler) Activate(c fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *ProfessionalHandler) setActive(c fiber.Ctx, active bool) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid professional id")
	}

	if active {
		err = h.svc.Activate(c.Context(), clinicID, id)
	} else {
		err = h.svc.Deactivate(c.Context(), clinicID, id)
	}
	if err != nil {
		return mapProfessionalError(c, err)
	}
	return noContent(c)
}
