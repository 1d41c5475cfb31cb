package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/service/study"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type StudyHandler struct {
	svc study.Service
}

func NewStudyHandler(svc study.Service) *StudyHandler {
	return &StudyHandler{svc: svc}
}

func mapStudyError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, validation.ErrInvalidInput):
		return invalidInput(c, err)
	case errors.Is(err, study.ErrPatientNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, study.ErrStorageDisabled):
		return serviceUnavailable(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /api/v1/patients/:id/studies (multipart: file, kind, description)
func (h *StudyHandler) Upload(c fiber.Ctx) error {
	clinicID, valid := clinicIDFromLocals(c)
	if !valid {
		return badRequest(c, "missing clinic context")
	}
	patientID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "invalid patient id")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "could not read uploaded file")
	}
	defer f.Close()

	item, err := h.svc.Upload(c.Context(), clinicID, patientID, study.UploadRequest{
		Kind:        c.FormValue("kind"),
		Description: c.FormValue("description"),
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	})
	if err != nil {
		return mapStudyError(c, err)
	}
	return created(c, item)
}

// GET /api/v1/patients/:id/studies
func (h *StudyHandler) ListByPatient(c fiber.Ctx) error {
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
		return mapStudyError(c, err)
	}
	return ok(c, list)
}
