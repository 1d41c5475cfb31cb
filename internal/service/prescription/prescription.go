// Package prescription issues prescriptions carrying a verification code
// that pharmacies can check.
package prescription

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
	"github.com/Alijeyrad/dentclinic/pkg/util/codes"
)

// codeAttempts bounds retries on a verification code collision.
const codeAttempts = 3

type Store interface {
	Create(ctx context.Context, in *repo.Prescription) (*repo.Prescription, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.Prescription, error)
	GetByCode(ctx context.Context, code string) (*repo.Prescription, error)
}

type PatientStore interface {
	Exists(ctx context.Context, clinicID, id uuid.UUID) (bool, error)
}

type ProfessionalStore interface {
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Professional, error)
}

// CodeGenerator is satisfied by *codes.Generator.
type CodeGenerator interface {
	Generate() (string, error)
}

type CreateRequest struct {
	PatientID      uuid.UUID
	ProfessionalID uuid.UUID
	AppointmentID  *uuid.UUID
	Medications    string
	Instructions   string
}

type Service interface {
	Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Prescription, error)
	ListByPatient(ctx context.Context, clinicID, patientID uuid.UUID) ([]*repo.Prescription, error)
	Verify(ctx context.Context, code string) (*repo.Prescription, error)
}

type prescriptionService struct {
	store         Store
	patients      PatientStore
	professionals ProfessionalStore
	codes         CodeGenerator
}

func New(store Store, patients PatientStore, professionals ProfessionalStore, gen CodeGenerator) Service {
	return &prescriptionService{store: store, patients: patients, professionals: professionals, codes: gen}
}

func (s *prescriptionService) Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Prescription, error) {
	var v validation.Errors
	v.Check(req.PatientID != uuid.Nil, "patient_id", "is required")
	v.Check(req.ProfessionalID != uuid.Nil, "professional_id", "is required")
	v.Required("medications", req.Medications)
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

	in := &repo.Prescription{
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		AppointmentID:  req.AppointmentID,
		Medications:    strings.TrimSpace(req.Medications),
		Instructions:   strings.TrimSpace(req.Instructions),
	}
	for range codeAttempts {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate verification code: %w", err)
		}
		in.VerificationCode = code

		out, err := s.store.Create(ctx, in)
		if err == nil {
			return out, nil
		}
		if !repo.IsConstraintError(err) {
			return nil, fmt.Errorf("create prescription: %w", err)
		}
	}
	return nil, ErrCodeExhausted
}

func (s *prescriptionService) ListByPatient(ctx context.Context, clinicID, patientID uuid.UUID) ([]*repo.Prescription, error) {
	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}
	list, err := s.store.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list prescriptions: %w", err)
	}
	return list, nil
}

// Verify looks a prescription up by its code. Dashes, spaces and case in
// code are ignored.
func (s *prescriptionService) Verify(ctx context.Context, code string) (*repo.Prescription, error) {
	code = codes.ParseCode(code)
	if code == "" {
		var v validation.Errors
		v.Add("code", "is required")
		return nil, v.Err()
	}
	p, err := s.store.GetByCode(ctx, code)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("verify prescription: %w", err)
	}
	return p, nil
}

func (s *prescriptionService) checkPatient(ctx context.Context, clinicID, patientID uuid.UUID) error {
	ok, err := s.patients.Exists(ctx, clinicID, patientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return ErrPatientNotFound
	}
	return nil
}
