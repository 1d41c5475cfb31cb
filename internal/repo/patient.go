package repo

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Patient is a person treated at a clinic.
type Patient struct {
	ID          uuid.UUID  `json:"id"`
	ClinicID    uuid.UUID  `json:"clinic_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	BirthDate   *time.Time `json:"birth_date,omitempty"`
	Phone       string     `json:"phone"`
	Email       string     `json:"email"`
	Address     string     `json:"address"`
	GuardianID  *uuid.UUID `json:"guardian_id,omitempty"`
	DebtBalance int64      `json:"debt_balance"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

var patientColumns = []string{
	"id", "first_name", "last_name", "birth_date", "phone", "email", "address",
	"guardian_id", "debt_balance", "created_at", "updated_at", "clinic_id",
}

func scanPatient(rows *entsql.Rows) (*Patient, error) {
	var (
		p         Patient
		birthDate stdsql.NullTime
		guardian  uuid.NullUUID
	)
	if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &birthDate, &p.Phone, &p.Email,
		&p.Address, &guardian, &p.DebtBalance, &p.CreatedAt, &p.UpdatedAt, &p.ClinicID); err != nil {
		return nil, err
	}
	p.BirthDate = timePtr(birthDate)
	p.GuardianID = uuidPtr(guardian)
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// PatientFilter narrows List. Search matches first or last name, case-insensitively.
type PatientFilter struct {
	Search string
	Limit  int
}

type PatientRepo struct {
	c *Client
}

func (r *PatientRepo) Create(ctx context.Context, in *Patient) (*Patient, error) {
	out := *in
	out.ID = newID()
	out.CreatedAt = r.c.timestamp()
	out.UpdatedAt = out.CreatedAt

	q := r.c.sql().Insert(PatientsTable.Name).
		Columns(patientColumns...).
		Values(out.ID, out.FirstName, out.LastName, nullTime(out.BirthDate), out.Phone, out.Email,
			out.Address, nullUUID(out.GuardianID), out.DebtBalance, out.CreatedAt, out.UpdatedAt, out.ClinicID)
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("insert patient: %w", constraint(err))
	}
	return &out, nil
}

func (r *PatientRepo) Get(ctx context.Context, clinicID, id uuid.UUID) (*Patient, error) {
	sel := r.c.sql().Select(patientColumns...).
		From(entsql.Table(PatientsTable.Name)).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID)))
	return only(ctx, r.c, sel, scanPatient, "patient")
}

// Exists reports whether the patient belongs to the clinic.
func (r *PatientRepo) Exists(ctx context.Context, clinicID, id uuid.UUID) (bool, error) {
	return r.c.exists(ctx, PatientsTable.Name, entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID))
}

// List returns the clinic's patients ordered by first name.
func (r *PatientRepo) List(ctx context.Context, clinicID uuid.UUID, f PatientFilter) ([]*Patient, error) {
	preds := []*entsql.Predicate{entsql.EQ("clinic_id", clinicID)}
	if f.Search != "" {
		preds = append(preds, entsql.Or(
			entsql.ContainsFold("first_name", f.Search),
			entsql.ContainsFold("last_name", f.Search),
		))
	}
	sel := r.c.sql().Select(patientColumns...).
		From(entsql.Table(PatientsTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy("first_name", "last_name")
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	return scanAll(rows, scanPatient)
}

// GetMany loads patients by ID.
func (r *PatientRepo) GetMany(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Patient, error) {
	out := make(map[uuid.UUID]*Patient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	sel := r.c.sql().Select(patientColumns...).
		From(entsql.Table(PatientsTable.Name)).
		Where(entsql.In("id", uuidArgs(ids)...))
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	list, err := scanAll(rows, scanPatient)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

func (r *PatientRepo) Update(ctx context.Context, in *Patient) error {
	q := r.c.sql().Update(PatientsTable.Name).
		Set("first_name", in.FirstName).
		Set("last_name", in.LastName).
		Set("birth_date", nullTime(in.BirthDate)).
		Set("phone", in.Phone).
		Set("email", in.Email).
		Set("address", in.Address).
		Set("guardian_id", nullUUID(in.GuardianID)).
		Set("debt_balance", in.DebtBalance).
		Set("updated_at", r.c.timestamp()).
		Where(entsql.And(entsql.EQ("id", in.ID), entsql.EQ("clinic_id", in.ClinicID)))
	return r.c.updateOne(ctx, q, "patient")
}

func (r *PatientRepo) Count(ctx context.Context, clinicID uuid.UUID) (int, error) {
	n, err := r.c.count(ctx, PatientsTable.Name, entsql.EQ("clinic_id", clinicID))
	if err != nil {
		return 0, fmt.Errorf("count patients: %w", err)
	}
	return n, nil
}
