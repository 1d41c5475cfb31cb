// Package professional administers the dentists and assistants of a clinic.
package professional

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

// listLimit caps List.
const listLimit = 100

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type Store interface {
	Create(ctx context.Context, in *repo.Professional) (*repo.Professional, error)
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Professional, error)
	List(ctx context.Context, clinicID uuid.UUID, f repo.ProfessionalFilter) ([]*repo.Professional, error)
	Update(ctx context.Context, in *repo.Professional) error
	SetActive(ctx context.Context, clinicID, id uuid.UUID, active bool) error
}

// PhoneNormalizer is satisfied by *phone.Normalizer.
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateRequest struct {
	FirstName     string
	LastName      string
	Specialty     string
	LicenseNumber string
	Phone         string
	Email         string
}

// UpdateRequest changes only the non-nil fields.
type UpdateRequest struct {
	FirstName     *string
	LastName      *string
	Specialty     *string
	LicenseNumber *string
	Phone         *string
	Email         *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, clinicID uuid.UUID, activeOnly bool) ([]*repo.Professional, error)
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Professional, error)
	Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Professional, error)
	Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateRequest) (*repo.Professional, error)
	Deactivate(ctx context.Context, clinicID, id uuid.UUID) error
	Activate(ctx context.Context, clinicID, id uuid.UUID) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type professionalService struct {
	store  Store
	phones PhoneNormalizer
}

func New(store Store, phones PhoneNormalizer) Service {
	return &professionalService{store: store, phones: phones}
}

func (s *professionalService) List(ctx context.Context, clinicID uuid.UUID, activeOnly bool) ([]*repo.Professional, error) {
	list, err := s.store.List(ctx, clinicID, repo.ProfessionalFilter{ActiveOnly: activeOnly, Limit: listLimit})
	if err != nil {
		return nil, fmt.Errorf("list professionals: %w", err)
	}
	return list, nil
}

func (s *professionalService) Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Professional, error) {
	p, err := s.store.Get(ctx, clinicID, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}
	return p, nil
}

func (s *professionalService) Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Professional, error) {
	p := &repo.Professional{
		ClinicID:      clinicID,
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Specialty:     strings.TrimSpace(req.Specialty),
		LicenseNumber: strings.TrimSpace(req.LicenseNumber),
		Phone:         req.Phone,
		Email:         strings.TrimSpace(req.Email),
	}
	if err := s.validate(p); err != nil {
		return nil, err
	}

	out, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create professional: %w", err)
	}
	return out, nil
}

func (s *professionalService) Update(ctx context.Context, clinicID, id uuid.UUID, req UpdateRequest) (*repo.Professional, error) {
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
	set(&p.Specialty, req.Specialty)
	set(&p.LicenseNumber, req.LicenseNumber)
	set(&p.Phone, req.Phone)
	set(&p.Email, req.Email)

	if err := s.validate(p); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, p); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update professional: %w", err)
	}
	return s.Get(ctx, clinicID, id)
}

// Deactivate hides a professional from active listings. Existing
// appointments keep referencing the row.
func (s *professionalService) Deactivate(ctx context.Context, clinicID, id uuid.UUID) error {
	return s.setActive(ctx, clinicID, id, false)
}

func (s *professionalService) Activate(ctx context.Context, clinicID, id uuid.UUID) error {
	return s.setActive(ctx, clinicID, id, true)
}

func (s *professionalService) setActive(ctx context.Context, clinicID, id uuid.UUID, active bool) error {
	if err := s.store.SetActive(ctx, clinicID, id, active); err != nil {
		if repo.IsNotFound(err) {
			return ErrNotFound
		}
		return fmt.Errorf("set professional active: %w", err)
	}
	return nil
}

// validate checks required fields and normalizes the phone in place.
func (s *professionalService) validate(p *repo.Professional) error {
	var v validation.Errors
	v.Required("first_name", p.FirstName)
	v.Required("last_name", p.LastName)
	v.Required("specialty", p.Specialty)
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
