package app

import (
	"go.uber.org/fx"

	"github.com/Alijeyrad/dentclinic/config"
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
	"github.com/Alijeyrad/dentclinic/pkg/events"
	"github.com/Alijeyrad/dentclinic/pkg/phone"
	"github.com/Alijeyrad/dentclinic/pkg/util/codes"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideClinicService,
		ProvidePatientService,
		ProvideProfessionalService,
		ProvideAppointmentService,
		ProvideTreatmentService,
		ProvideStudyService,
		ProvidePrescriptionService,
		ProvideOdontogramService,
		ProvideDashboardService,
		ProvideHistoryService,
	),
)

func ProvideClinicService(db *repo.Client, phones *phone.Normalizer) clinic.Service {
	return clinic.New(db.Clinic, phones)
}

func ProvidePatientService(db *repo.Client, phones *phone.Normalizer, cfg *config.Config) patient.Service {
	return patient.New(db.Patient, db.MedicalRecord, phones, cfg.Clinic)
}

func ProvideProfessionalService(db *repo.Client, phones *phone.Normalizer) professional.Service {
	return professional.New(db.Professional, phones)
}

func ProvideAppointmentService(db *repo.Client, pub events.Publisher, cfg *config.Config) appointment.Service {
	return appointment.New(db.Appointment, db.Patient, db.Professional, pub, cfg.Clinic)
}

func ProvideTreatmentService(db *repo.Client) treatment.Service {
	return treatment.New(db.Treatment, db.Patient, db.Professional)
}

func ProvideStudyService(db *repo.Client, storage study.Storage) study.Service {
	return study.New(db.Study, db.Patient, storage)
}

func ProvidePrescriptionService(db *repo.Client, gen *codes.Generator) prescription.Service {
	return prescription.New(db.Prescription, db.Patient, db.Professional, gen)
}

func ProvideOdontogramService(db *repo.Client, pub events.Publisher) odontogram.Service {
	return odontogram.New(db.Patient, db.ToothRecord, pub)
}

func ProvideDashboardService(db *repo.Client, cfg *config.Config) dashboard.Service {
	return dashboard.New(db.Patient, db.Appointment, db.Treatment, db.Professional, cfg.Clinic)
}

func ProvideHistoryService(db *repo.Client) history.Service {
	return history.New(history.Stores{
		Patients:       db.Patient,
		Treatments:     db.Treatment,
		ToothRecords:   db.ToothRecord,
		Studies:        db.Study,
		Prescriptions:  db.Prescription,
		MedicalRecords: db.MedicalRecord,
	})
}
