package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/api/http/handler"
	"github.com/Alijeyrad/dentclinic/internal/api/http/middleware"
	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/appointment"
	"github.com/Alijeyrad/dentclinic/internal/service/clinic"
	"github.com/Alijeyrad/dentclinic/internal/service/dashboard"
	"github.com/Alijeyrad/dentclinic/internal/service/history"
	"github.com/Alijeyrad/dentclinic/internal/service/odontogram"
	"github.com/Alijeyrad/dentclinic/internal/service/patient"
	"github.com/Alijeyrad/dentclinic/internal/service/prescription"
	"github.com/Alijeyrad/dentclinic/internal/service/professional"
	"github.com/Alijeyrad/dentclinic/internal/service/study"
	"github.com/Alijeyrad/dentclinic/internal/service/treatment"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg             *config.Config
	DB              *repo.Client
	ClinicSvc       clinic.Service
	PatientSvc      patient.Service
	ProfessionalSvc professional.Service
	AppointmentSvc  appointment.Service
	TreatmentSvc    treatment.Service
	StudySvc        study.Service
	PrescriptionSvc prescription.Service
	OdontogramSvc   odontogram.Service
	DashboardSvc    dashboard.Service
	HistorySvc      history.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Middlewares
	clinicHeader := middleware.ClinicHeader(r.p.ClinicSvc)

	// 3. Initialize Handlers
	clinicH := handler.NewClinicHandler(r.p.ClinicSvc)
	patientH := handler.NewPatientHandler(r.p.PatientSvc)
	professionalH := handler.NewProfessionalHandler(r.p.ProfessionalSvc)
	appointmentH := handler.NewAppointmentHandler(r.p.AppointmentSvc)
	treatmentH := handler.NewTreatmentHandler(r.p.TreatmentSvc)
	studyH := handler.NewStudyHandler(r.p.StudySvc)
	prescriptionH := handler.NewPrescriptionHandler(r.p.PrescriptionSvc)
	odontogramH := handler.NewOdontogramHandler(r.p.OdontogramSvc)
	dashboardH := handler.NewDashboardHandler(r.p.DashboardSvc)
	historyH := handler.NewHistoryHandler(r.p.HistorySvc)

	api := app.Group("/api/v1")

	// 4. Delegate to sub-files
	r.registerClinicRoutes(api, clinicH)
	r.registerPatientRoutes(api, patientH, treatmentH, studyH, prescriptionH, odontogramH, historyH, clinicHeader)
	r.registerProfessionalRoutes(api, professionalH, clinicHeader)
	r.registerAppointmentRoutes(api, appointmentH, clinicHeader)
	r.registerTreatmentRoutes(api, treatmentH, clinicHeader)
	r.registerPrescriptionRoutes(api, prescriptionH, clinicHeader)
	r.registerOdontogramRoutes(api, odontogramH)
	r.registerDashboardRoutes(api, dashboardH, clinicHeader)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool { return r.p.DB.Ping(c.Context()) == nil },
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
