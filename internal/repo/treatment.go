package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Treatment is a billable procedure performed on a patient. Cost is in minor units.
type Treatment struct {
	ID             uuid.UUID  `json:"id"`
	ClinicID       uuid.UUID  `json:"clinic_id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	ProfessionalID uuid.UUID  `json:"professional_id"`
	AppointmentID  *uuid.UUID `json:"appointment_id,omitempty"`
	Description    string     `json:"description"`
	Cost           int64      `json:"cost"`
	Paid           bool       `json:"paid"`
	PerformedAt    time.Time  `json:"performed_at"`
}

var treatmentColumns = []string{
	"id", "description", "cost", "paid", "performed_at", "clinic_id", "patient_id",
	"professional_id", "appointment_id",
}

func scanTreatment(rows *entsql.Rows) (*Treatment, error) {
	var (
		t           Treatment
		appointment uuid.NullUUID
	)
	if err := rows.Scan(&t.ID, &t.Description, &t.Cost, &t.Paid, &t.PerformedAt, &t.ClinicID,
		&t.PatientID, &t.ProfessionalID, &appointment); err != nil {
		return nil, err
	}
	t.AppointmentID = uuidPtr(appointment)
	t.PerformedAt = t.PerformedAt.UTC()
	return &t, nil
}

type TreatmentRepo struct {
	c *Client
}

// Create inserts a treatment. A zero PerformedAt is set to now.
func (r *TreatmentRepo) Create(ctx context.Context, in *Treatment) (*Treatment, error) {
	out := *in
	out.ID = newID()
	if out.PerformedAt.IsZero() {
		out.PerformedAt = r.c.timestamp()
	}
	out.PerformedAt = out.PerformedAt.UTC()

	q := r.c.sql().Insert(TreatmentsTable.Name).
		Columns(treatmentColumns...).
		Values(out.ID, out.Description, out.Cost, out.Paid, out.PerformedAt, out.ClinicID,
			out.PatientID, out.ProfessionalID, nullUUID(out.AppointmentID))
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("insert treatment: %w", constraint(err))
	}
	return &out, nil
}

func (r *TreatmentRepo) Get(ctx context.Context, clinicID, id uuid.UUID) (*Treatment, error) {
	sel := r.c.sql().Select(treatmentColumns...).
		From(entsql.Table(TreatmentsTable.Name)).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID)))
	return only(ctx, r.c, sel, scanTreatment, "treatment")
}

// ListByPatient returns a patient's treatments, most recent first.
func (r *TreatmentRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Treatment, error) {
	sel := r.c.sql().Select(treatmentColumns...).
		From(entsql.Table(TreatmentsTable.Name)).
		Where(entsql.EQ("patient_id", patientID)).
		OrderBy(entsql.Desc("performed_at"))
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query treatments: %w", err)
	}
	return scanAll(rows, scanTreatment)
}

// ListPaidSince returns the clinic's paid treatments performed at or after since.
func (r *TreatmentRepo) ListPaidSince(ctx context.Context, clinicID uuid.UUID, since time.Time) ([]*Treatment, error) {
	sel := r.c.sql().Select(treatmentColumns...).
		From(entsql.Table(TreatmentsTable.Name)).
		Where(entsql.And(
			entsql.EQ("clinic_id", clinicID),
			entsql.EQ("paid", true),
			entsql.GTE("performed_at", since.UTC()),
		))
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query paid treatments: %w", err)
	}
	return scanAll(rows, scanTreatment)
}

func (r *TreatmentRepo) SetPaid(ctx context.Context, clinicID, id uuid.UUID, paid bool) error {
	q := r.c.sql().Update(TreatmentsTable.Name).
		Set("paid", paid).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID)))
	return r.c.updateOne(ctx, q, "treatment")
}
