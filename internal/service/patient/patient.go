// Package patient manages the clinic's patient files and their single
// medical record.
package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type Store interface {
	Create(ctx context.Context, in *repo.Patient) (*repo.Patient, error)
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Patient, error)
	Exists(ctx context.Context, clinicID, id uuid.UUID) (bool, error)
	List(ctx context.Context, clinicID uuid.UUID, f repo.PatientFilter) ([]*repo.Patient, error)
	Update(ctx context.Context, in *repo.Patient) error
}

type MedicalRecordStore interface {
	GetByPatient(ctx context.Context, patientID uuid.UUID) (*repo.MedicalRecord, error)
	Upsert(ctx context.Context, in *repo.MedicalRecord) (*repo.MedicalRecord, error)
}

// PhoneNormalizer is satisfied by *phone.Normalizer.
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	FirstName  string
	LastName   string
	BirthDate  *time.Time
	Phone      string
	Email      string
	Address    string
	GuardianID *uuid.UUID
}

// UpdateRequest changes only the non-nil fields.
type UpdateRequest struct {
	FirstName   *string
	LastName    *string
	BirthDate   *time.Time
	Phone       *string
	Email       *string
	Address     *string
	GuardianID  *uuid.UUID
	DebtBalance *int64
}

type MedicalRecordRequest struct {
	Allergies   string
	Medications string
	Conditions  string
	Notes       string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, clinicID uuid.UUID, search string) ([]*repo.Patient, error)
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Patient, error)
	Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Patient, error)
	Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateRequest) (*repo.Patient, error)

	GetMedicalRecord(ctx context.Context, clinicID, patientID uuid.UUID) (*repo.MedicalRecord, error)
	SaveMedicalRecord(ctx context.Context, clinicID, patientID uuid.UUID, req MedicalRecordRequest) (*repo.MedicalRecord, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	store   Store
	records MedicalRecordStore
	phones  PhoneNormalizer
	limit   int
	now     func() time.Time
}

func New(store Store, records MedicalRecordStore, phones PhoneNormalizer, cfg config.ClinicConfig) Service {
	limit := cfg.PatientListLimit
	if limit <= 0 {
		limit = 1000
	}
	return &patientService{store: store, records: records, phones: phones, limit: limit, now: time.Now}
}

func (s *patientService) List(ctx context.Context, clinicID uuid.UUID, search string) ([]*repo.Patient, error) {
	list, err := s.store.List(ctx, clinicID, repo.PatientFilter{Search: strings.TrimSpace(search), Limit: s.limit})
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return list, nil
}

func (s *patientService) Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Patient, error) {
	p, err := s.store.Get(ctx, clinicID, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *patientService) Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Patient, error) {
	p := &repo.Patient{
		ClinicID:   clinicID,
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		BirthDate:  req.BirthDate,
		Phone:      req.Phone,
		Email:      strings.TrimSpace(req.Email),
		Address:    strings.TrimSpace(req.Address),
		GuardianID: req.GuardianID,
	}
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if err := s.checkGuardian(ctx, p); err != nil {
		return nil, err
	}

	out, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return out, nil
}

func (s *patientService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateRequest) (*repo.Patient, error) {
	p, err := s.Get(ctx, clinicID, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&p.FirstName, req.FirstName)
	set(&p.LastName, req.LastName)
	set(&p.Phone, req.Phone)
	set(&p.Email, req.Email)
	set(&p.Address, req.Address)
	if req.BirthDate != nil {
		p.BirthDate = req.BirthDate
	}
	if req.GuardianID != nil {
		p.GuardianID = req.GuardianID
	}
	if req.DebtBalance != nil {
		p.DebtBalance = *req.DebtBalance
	}

	if err := s.validate(p); err != nil {
		return nil, err
	}
	if err := s.checkGuardian(ctx, p); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, p); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrPatientNotFound
		}
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return s.Get(ctx, clinicID, id)
}

func (s *patientService) GetMedicalRecord(ctx context.Context, clinicID, patientID uuid.UUID) (*repo.MedicalRecord, error) {
	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}
	rec, err := s.records.GetByPatient(ctx, patientID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrMedicalRecordNotFound
		}
		return nil, fmt.Errorf("get medical record: %w", err)
	}
	return rec, nil
}

// SaveMedicalRecord creates or overwrites the patient's medical record.
func (s *patientService) SaveMedicalRecord(ctx context.Context, clinicID, patientID uuid.UUID, req MedicalRecordRequest) (*repo.MedicalRecord, error) {
	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}
	rec, err := s.records.Upsert(ctx, &repo.MedicalRecord{
		PatientID:   patientID,
		Allergies:   strings.TrimSpace(req.Allergies),
		Medications: strings.TrimSpace(req.Medications),
		Conditions:  strings.TrimSpace(req.Conditions),
		Notes:       strings.TrimSpace(req.Notes),
	})
	if err != nil {
		return nil, fmt.Errorf("save medical record: %w", err)
	}
	return rec, nil
}

func (s *patientService) validate(p *repo.Patient) error {
	var v validation.Errors
	v.Required("first_name", p.FirstName)
	v.Required("last_name", p.LastName)
	if p.BirthDate != nil {
		v.Check(!p.BirthDate.After(s.now()), "birth_date", "cannot be in the future")
	}
	if p.GuardianID != nil {
		v.Check(*p.GuardianID != p.ID || p.ID == uuid.Nil, "guardian_id", "cannot be the patient")
	}
	if p.DebtBalance < 0 {
		v.Add("debt_balance", "cannot be negative")
	}
	if p.Phone != "" {
		normalized, err := s.phones.Normalize(p.Phone)
		if err != nil {
			v.Add("phone", "is not a valid phone number")
		} else {
			p.Phone = normalized
		}
	}
	return v.Err()
}

func (s *patientService) checkGuardian(ctx context.Context, p *repo.Patient) error {
	if p.GuardianID == nil {
		return nil
	}
	ok, err := s.store.Exists(ctx, p.ClinicID, *p.GuardianID)
	if err != nil {
		return fmt.Errorf("check guardian: %w", err)
	}
	if !ok {
		return ErrGuardianNotFound
	}
	return nil
}

func (s *patientService) checkPatient(ctx context.Context, clinicID, patientID uuid.UUID) error {
	ok, err := s.store.Exists(ctx, clinicID, patientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return ErrPatientNotFound
	}
	return nil
}
