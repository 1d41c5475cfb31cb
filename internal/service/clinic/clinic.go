// Package clinic manages the tenants of the system. Every other resource is
// scoped to one clinic selected per request.
package clinic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type Store interface {
	Create(ctx context.Context, in *repo.Clinic) (*repo.Clinic, error)
	Get(ctx context.Context, id uuid.UUID) (*repo.Clinic, error)
	ListActive(ctx context.Context) ([]*repo.Clinic, error)
	Update(ctx context.Context, in *repo.Clinic) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// PhoneNormalizer is satisfied by *phone.Normalizer.
type PhoneNormalizer interface {
	Normalize(raw string) (string, error)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateClinicRequest struct {
	Name       string
	Address    string
	Phone      string
	Email      string
	Membership string
	Trial      bool
	ExpiresAt  *time.Time
}

type UpdateClinicRequest struct {
	Name       *string
	Address    *string
	Phone      *string
	Email      *string
	Membership *string
	Trial      *bool
	ExpiresAt  *time.Time
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateClinicRequest) (*repo.Clinic, error)
	Get(ctx context.Context, id uuid.UUID) (*repo.Clinic, error)
	ListActive(ctx context.Context) ([]*repo.Clinic, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateClinicRequest) (*repo.Clinic, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// IsActive reports whether id names an active clinic. It backs the
	// clinic header middleware.
	IsActive(ctx context.Context, id uuid.UUID) (bool, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type clinicService struct {
	store  Store
	phones PhoneNormalizer
	now    func() time.Time
}

func New(store Store, phones PhoneNormalizer) Service {
	return &clinicService{store: store, phones: phones, now: time.Now}
}

func (s *clinicService) Create(ctx context.Context, req CreateClinicRequest) (*repo.Clinic, error) {
	c := &repo.Clinic{
		Name:       strings.TrimSpace(req.Name),
		Address:    strings.TrimSpace(req.Address),
		Phone:      req.Phone,
		Email:      strings.TrimSpace(req.Email),
		Membership: req.Membership,
		Trial:      req.Trial,
		ExpiresAt:  req.ExpiresAt,
		Active:     true,
	}
	if c.Membership == "" {
		c.Membership = repo.MembershipMonthly
	}
	if err := s.validate(c); err != nil {
		return nil, err
	}
	if c.ExpiresAt == nil {
		exp := expiry(s.now(), c.Membership)
		c.ExpiresAt = &exp
	}

	out, err := s.store.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("create clinic: %w", err)
	}
	return out, nil
}

func (s *clinicService) Get(ctx context.Context, id uuid.UUID) (*repo.Clinic, error) {
	c, err := s.store.Get(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrClinicNotFound
		}
		return nil, fmt.Errorf("get clinic: %w", err)
	}
	return c, nil
}

func (s *clinicService) ListActive(ctx context.Context) ([]*repo.Clinic, error) {
	list, err := s.store.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list clinics: %w", err)
	}
	return list, nil
}

func (s *clinicService) Update(ctx context.Context, id uuid.UUID, req UpdateClinicRequest) (*repo.Clinic, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Address != nil {
		c.Address = strings.TrimSpace(*req.Address)
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = strings.TrimSpace(*req.Email)
	}
	if req.Membership != nil {
		c.Membership = *req.Membership
	}
	if req.Trial != nil {
		c.Trial = *req.Trial
	}
	if req.ExpiresAt != nil {
		c.ExpiresAt = req.ExpiresAt
	}

	if err := s.validate(c); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, c); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrClinicNotFound
		}
		return nil, fmt.Errorf("update clinic: %w", err)
	}
	return s.Get(ctx, id)
}

func (s *clinicService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if err := s.store.SetActive(ctx, id, false); err != nil {
		if repo.IsNotFound(err) {
			return ErrClinicNotFound
		}
		return fmt.Errorf("deactivate clinic: %w", err)
	}
	return nil
}

func (s *clinicService) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	ok, err := s.store.IsActive(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check clinic: %w", err)
	}
	return ok, nil
}

func (s *clinicService) validate(c *repo.Clinic) error {
	var v validation.Errors
	v.Required("name", c.Name)
	v.Check(c.Membership == repo.MembershipMonthly || c.Membership == repo.MembershipAnnual,
		"membership", "must be monthly or annual")
	if c.Phone != "" {
		normalized, err := s.phones.Normalize(c.Phone)
		if err != nil {
			v.Add("phone", "is not a valid phone number")
		} else {
			c.Phone = normalized
		}
	}
	return v.Err()
}

// expiry is the end of the first membership period starting at from.
func expiry(from time.Time, membership string) time.Time {
	if membership == repo.MembershipAnnual {
		return from.AddDate(1, 0, 0).UTC()
	}
	return from.AddDate(0, 1, 0).UTC()
}
