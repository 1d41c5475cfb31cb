package repo

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Membership values of a clinic subscription.
const (
	MembershipMonthly = "monthly"
	MembershipAnnual  = "annual"
)

// Clinic is the tenant every other row belongs to.
type Clinic struct {
	ID         uuid.UUID  `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Membership string     `json:"membership"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	Active     bool       `json:"active"`
	Trial      bool       `json:"trial"`
	CreatedAt  time.Time  `json:"created_at"`
}

var clinicColumns = []string{
	"id", "name", "address", "phone", "email", "membership", "expires_at", "active", "trial", "created_at",
}

func scanClinic(rows *entsql.Rows) (*Clinic, error) {
	var (
		c         Clinic
		expiresAt stdsql.NullTime
	)
	if err := rows.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Membership,
		&expiresAt, &c.Active, &c.Trial, &c.CreatedAt); err != nil {
		return nil, err
	}
	c.ExpiresAt = timePtr(expiresAt)
	c.CreatedAt = c.CreatedAt.UTC()
	return &c, nil
}

type ClinicRepo struct {
	c *Client
}

// Create inserts a clinic, assigning its ID and creation time.
func (r *ClinicRepo) Create(ctx context.Context, in *Clinic) (*Clinic, error) {
	out := *in
	out.ID = newID()
	out.CreatedAt = r.c.timestamp()

	q := r.c.sql().Insert(ClinicsTable.Name).
		Columns(clinicColumns...).
		Values(out.ID, out.Name, out.Address, out.Phone, out.Email, out.Membership,
			nullTime(out.ExpiresAt), out.Active, out.Trial, out.CreatedAt)
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("insert clinic: %w", constraint(err))
	}
	return &out, nil
}

func (r *ClinicRepo) Get(ctx context.Context, id uuid.UUID) (*Clinic, error) {
	sel := r.c.sql().Select(clinicColumns...).
		From(entsql.Table(ClinicsTable.Name)).
		Where(entsql.EQ("id", id))
	return only(ctx, r.c, sel, scanClinic, "clinic")
}

// ListActive returns active clinics ordered by name.
func (r *ClinicRepo) ListActive(ctx context.Context) ([]*Clinic, error) {
	sel := r.c.sql().Select(clinicColumns...).
		From(entsql.Table(ClinicsTable.Name)).
		Where(entsql.EQ("active", true)).
		OrderBy("name")
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query clinics: %w", err)
	}
	return scanAll(rows, scanClinic)
}

// Update overwrites the mutable fields of an existing clinic.
func (r *ClinicRepo) Update(ctx context.Context, in *Clinic) error {
	q := r.c.sql().Update(ClinicsTable.Name).
		Set("name", in.Name).
		Set("address", in.Address).
		Set("phone", in.Phone).
		Set("email", in.Email).
		Set("membership", in.Membership).
		Set("expires_at", nullTime(in.ExpiresAt)).
		Set("trial", in.Trial).
		Where(entsql.EQ("id", in.ID))
	return r.c.updateOne(ctx, q, "clinic")
}

func (r *ClinicRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	q := r.c.sql().Update(ClinicsTable.Name).
		Set("active", active).
		Where(entsql.EQ("id", id))
	return r.c.updateOne(ctx, q, "clinic")
}

// IsActive reports whether id names an existing, active clinic.
func (r *ClinicRepo) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.c.exists(ctx, ClinicsTable.Name, entsql.EQ("id", id), entsql.EQ("active", true))
}
