package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Professional is a dentist or other staff member who attends appointments.
type Professional struct {
	ID            uuid.UUID `json:"id"`
	ClinicID      uuid.UUID `json:"clinic_id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Specialty     string    `json:"specialty"`
	LicenseNumber string    `json:"license_number"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

var professionalColumns = []string{
	"id", "first_name", "last_name", "specialty", "license_number", "phone", "email",
	"active", "created_at", "updated_at", "clinic_id",
}

func scanProfessional(rows *entsql.Rows) (*Professional, error) {
	var p Professional
	if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Specialty, &p.LicenseNumber,
		&p.Phone, &p.Email, &p.Active, &p.CreatedAt, &p.UpdatedAt, &p.ClinicID); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// ProfessionalFilter narrows List.
type ProfessionalFilter struct {
	ActiveOnly bool
	Limit      int
}

type ProfessionalRepo struct {
	c *Client
}

// Create inserts a professional. New professionals are always active.
func (r *ProfessionalRepo) Create(ctx context.Context, in *Professional) (*Professional, error) {
	out := *in
	out.ID = newID()
	out.Active = true
	out.CreatedAt = r.c.timestamp()
	out.UpdatedAt = out.CreatedAt

	q := r.c.sql().Insert(ProfessionalsTable.Name).
		Columns(professionalColumns...).
		Values(out.ID, out.FirstName, out.LastName, out.Specialty, out.LicenseNumber,
			out.Phone, out.Email, out.Active, out.CreatedAt, out.UpdatedAt, out.ClinicID)
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("insert professional: %w", constraint(err))
	}
	return &out, nil
}

func (r *ProfessionalRepo) Get(ctx context.Context, clinicID, id uuid.UUID) (*Professional, error) {
	sel := r.c.sql().Select(professionalColumns...).
		From(entsql.Table(ProfessionalsTable.Name)).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID)))
	return only(ctx, r.c, sel, scanProfessional, "professional")
}

// List returns the clinic's professionals ordered by first name.
func (r *ProfessionalRepo) List(ctx context.Context, clinicID uuid.UUID, f ProfessionalFilter) ([]*Professional, error) {
	preds := []*entsql.Predicate{entsql.EQ("clinic_id", clinicID)}
	if f.ActiveOnly {
		preds = append(preds, entsql.EQ("active", true))
	}
	sel := r.c.sql().Select(professionalColumns...).
		From(entsql.Table(ProfessionalsTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy("first_name", "last_name")
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query professionals: %w", err)
	}
	return scanAll(rows, scanProfessional)
}

// GetMany loads professionals by ID regardless of their active flag.
func (r *ProfessionalRepo) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Professional, error) {
	out := make(map[uuid.UUID]*Professional, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	sel := r.c.sql().Select(professionalColumns...).
		From(entsql.Table(ProfessionalsTable.Name)).
		Where(entsql.In("id", uuidArgs(ids)...))
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query professionals: %w", err)
	}
	list, err := scanAll(rows, scanProfessional)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// Update overwrites the mutable fields of a professional.
func (r *ProfessionalRepo) Update(ctx context.Context, in *Professional) error {
	q := r.c.sql().Update(ProfessionalsTable.Name).
		Set("first_name", in.FirstName).
		Set("last_name", in.LastName).
		Set("specialty", in.Specialty).
		Set("license_number", in.LicenseNumber).
		Set("phone", in.Phone).
		Set("email", in.Email).
		Set("updated_at", r.c.timestamp()).
		Where(entsql.And(entsql.EQ("id", in.ID), entsql.EQ("clinic_id", in.ClinicID)))
	return r.c.updateOne(ctx, q, "professional")
}

func (r *ProfessionalRepo) SetActive(ctx context.Context, clinicID, id uuid.UUID, active bool) error {
	q := r.c.sql().Update(ProfessionalsTable.Name).
		Set("active", active).
		Set("updated_at", r.c.timestamp()).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID)))
	return r.c.updateOne(ctx, q, "professional")
}

func (r *ProfessionalRepo) CountActive(ctx context.Context, clinicID uuid.UUID) (int, error) {
	n, err := r.c.count(ctx, ProfessionalsTable.Name, entsql.EQ("clinic_id", clinicID), entsql.EQ("active", true))
	if err != nil {
		return 0, fmt.Errorf("count professionals: %w", err)
	}
	return n, nil
}
