// Package treatment records the procedures performed on patients and
// whether each one has been paid.
package treatment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type Store interface {
	Create(ctx context.Context, in *repo.Treatment) (*repo.Treatment, error)
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Treatment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.Treatment, error)
	SetPaid(ctx context.Context, clinicID, id uuid.UUID, paid bool) error
}

type PatientStore interface {
	Exists(ctx context.Context, clinicID, id uuid.UUID) (bool, error)
}

type ProfessionalStore interface {
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Professional, error)
}

type CreateRequest struct {
	PatientID      uuid.UUID
	ProfessionalID uuid.UUID
	AppointmentID  *uuid.UUID
	Description    string
	// Cost is in minor currency units.
	Cost        int64
	Paid        bool
	PerformedAt *time.Time
}

type Service interface {
	Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Treatment, error)
	ListByPatient(ctx context.Context, clinicID, patientID uuid.UUID) ([]*repo.Treatment, error)
	SetPaid(ctx context.Context, clinicID, id uuid.UUID, paid bool) (*repo.Treatment, error)
}

type treatmentService struct {
	store         Store
	patients      PatientStore
	professionals ProfessionalStore
}

func New(store Store, patients PatientStore, professionals ProfessionalStore) Service {
	return &treatmentService{store: store, patients: patients, professionals: professionals}
}

func (s *treatmentService) Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Treatment, error) {
	var v validation.Errors
	v.Check(req.PatientID != uuid.Nil, "patient_id", "is required")
	v.Check(req.ProfessionalID != uuid.Nil, "professional_id", "is required")
	v.Required("description", req.Description)
	v.Check(req.Cost >= 0, "cost", "cannot be negative")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.checkPatient(ctx, clinicID, req.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.professionals.Get(ctx, clinicID, req.ProfessionalID); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}

	in := &repo.Treatment{
		ClinicID:       clinicID,
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		AppointmentID:  req.AppointmentID,
		Description:    strings.TrimSpace(req.Description),
		Cost:           req.Cost,
		Paid:           req.Paid,
	}
	if req.PerformedAt != nil {
		in.PerformedAt = *req.PerformedAt
	}
	out, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create treatment: %w", err)
	}
	return out, nil
}

func (s *treatmentService) ListByPatient(ctx context.Context, clinicID, patientID uuid.UUID) ([]*repo.Treatment, error) {
	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}
	list, err := s.store.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list treatments: %w", err)
	}
	return list, nil
}

func (s *treatmentService) SetPaid(ctx context.Context, clinicID, id uuid.UUID, paid bool) (*repo.Treatment, error) {
	if err := s.store.SetPaid(ctx, clinicID, id, paid); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set treatment paid: %w", err)
	}
	t, err := s.store.Get(ctx, clinicID, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get treatment: %w", err)
	}
	return t, nil
}

func (s *treatmentService) checkPatient(ctx context.Context, clinicID, patientID uuid.UUID) error {
	ok, err := s.patients.Exists(ctx, clinicID, patientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return ErrPatientNotFound
	}
	return nil
}
