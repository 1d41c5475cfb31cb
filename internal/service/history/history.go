// Package history assembles the full clinical history of one patient.
package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/odontogram"
)

var ErrPatientNotFound = errors.New("patient not found")

type PatientStore interface {
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Patient, error)
}

type TreatmentStore interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.Treatment, error)
}

type ToothRecordStore interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.ToothRecord, error)
}

type StudyStore interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.Study, error)
}

type PrescriptionStore interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.Prescription, error)
}

type MedicalRecordStore interface {
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*repo.MedicalRecord, error)
}

// Stores groups the reads History fans out to.
type Stores struct {
	Patients       PatientStore
	Treatments     TreatmentStore
	ToothRecords   ToothRecordStore
	Studies        StudyStore
	Prescriptions  PrescriptionStore
	MedicalRecords MedicalRecordStore
}

// History is everything recorded about a patient. Balance is the total cost
// of treatments not yet paid.
type History struct {
	Patient       *repo.Patient        `json:"patient"`
	Treatments    []*repo.Treatment    `json:"treatments"`
	Chart         *odontogram.Chart    `json:"chart"`
	Studies       []*repo.Study        `json:"studies"`
	Prescriptions []*repo.Prescription `json:"prescriptions"`
	MedicalRecord *repo.MedicalRecord  `json:"medical_record,omitempty"`
	Balance       int64                `json:"balance"`
}

type Service interface {
	Get(ctx context.Context, clinicID, patientID uuid.UUID) (*History, error)
}

type historyService struct {
	s Stores
}

func New(stores Stores) Service {
	return &historyService{s: stores}
}

func (h *historyService) Get(ctx context.Context, clinicID, patientID uuid.UUID) (*History, error) {
	// The patient read also scopes every other read to the clinic.
	p, err := h.s.Patients.Get(ctx, clinicID, patientID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}

	out := &History{Patient: p}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		list, err := h.s.Treatments.ListByPatient(ctx, patientID)
		if err != nil {
			return fmt.Errorf("list treatments: %w", err)
		}
		out.Treatments = list
		out.Balance = Balance(list)
		return nil
	})
	g.Go(func() error {
		records, err := h.s.ToothRecords.ListByPatient(ctx, patientID)
		if err != nil {
			return fmt.Errorf("load chart: %w", err)
		}
		out.Chart = odontogram.BuildChart(patientID, records)
		return nil
	})
	g.Go(func() error {
		list, err := h.s.Studies.ListByPatient(ctx, patientID)
		if err != nil {
			return fmt.Errorf("list studies: %w", err)
		}
		out.Studies = list
		return nil
	})
	g.Go(func() error {
		list, err := h.s.Prescriptions.ListByPatient(ctx, patientID)
		if err != nil {
			return fmt.Errorf("list prescriptions: %w", err)
		}
		out.Prescriptions = list
		return nil
	})
	g.Go(func() error {
		rec, err := h.s.MedicalRecords.GetByPatient(ctx, patientID)
		if err != nil {
			if repo.IsNotFound(err) {
				return nil
			}
			return fmt.Errorf("get medical record: %w", err)
		}
		out.MedicalRecord = rec
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Balance sums the cost of unpaid treatments.
func Balance(treatments []*repo.Treatment) int64 {
	var sum int64
	for _, t := range treatments {
		if !t.Paid {
			sum += t.Cost
		}
	}
	return sum
}
