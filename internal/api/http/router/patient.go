package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
)

func (r *Router) registerPatientRoutes(
	api fiber.Router,
	h *handler.PatientHandler,
	treatmentH *handler.TreatmentHandler,
	studyH *handler.StudyHandler,
	prescriptionH *handler.PrescriptionHandler,
	odontogramH *handler.OdontogramHandler,
	historyH *handler.HistoryHandler,
	clinicHeader fiber.Handler,
) {
	patients := api.Group("/patients", clinicHeader)

	patients.Get("/", h.List)
	patients.Post("/", h.Create)
	patients.Get("/:id", h.Get)
	patients.Patch("/:id", h.Update)

	patients.Get("/:id/medical-record", h.GetMedicalRecord)
	patients.Put("/:id/medical-record", h.SaveMedicalRecord)

	patients.Get("/:id/history", historyH.Get)

	patients.Get("/:id/odontogram", odontogramH.Load)
	patients.Put("/:id/odontogram/:tooth", odontogramH.SaveTooth)

	patients.Get("/:id/treatments", treatmentH.ListByPatient)
	patients.Get("/:id/studies", studyH.ListByPatient)
	patients.Post("/:id/studies", studyH.Upload)
	patients.Get("/:id/prescriptions", prescriptionH.ListByPatient)
}
