package repo

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// ToothRecord is the stored chart entry for one tooth of one patient.
// There is at most one record per (patient, tooth number).
type ToothRecord struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	ToothNumber int       `json:"tooth_number"`
	Condition   string    `json:"condition"`
	Treatment   *string   `json:"treatment,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var toothRecordColumns = []string{
	"id", "tooth_number", "condition", "treatment", "updated_at", "patient_id",
}

func scanToothRecord(rows *entsql.Rows) (*ToothRecord, error) {
	var (
		t         ToothRecord
		treatment stdsql.NullString
	)
	if err := rows.Scan(&t.ID, &t.ToothNumber, &t.Condition, &treatment, &t.UpdatedAt, &t.PatientID); err != nil {
		return nil, err
	}
	t.Treatment = stringPtr(treatment)
	t.UpdatedAt = t.UpdatedAt.UTC()
	return &t, nil
}

type ToothRecordRepo struct {
	c *Client
}

// ListByPatient returns every stored record of the patient ordered by tooth number.
func (r *ToothRecordRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*ToothRecord, error) {
	sel := r.c.sql().Select(toothRecordColumns...).
		From(entsql.Table(ToothRecordsTable.Name)).
		Where(entsql.EQ("patient_id", patientID)).
		OrderBy("tooth_number")
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query tooth records: %w", err)
	}
	return scanAll(rows, scanToothRecord)
}

// Upsert writes the record for (PatientID, ToothNumber), replacing the
// condition and treatment of an existing one, and returns the stored row.
func (r *ToothRecordRepo) Upsert(ctx context.Context, in *ToothRecord) (*ToothRecord, error) {
	now := r.c.timestamp()
	q := r.c.sql().Insert(ToothRecordsTable.Name).
		Columns(toothRecordColumns...).
		Values(newID(), in.ToothNumber, in.Condition, nullString(in.Treatment), now, in.PatientID).
		OnConflict(
			entsql.ConflictColumns("patient_id", "tooth_number"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("condition")
				u.SetExcluded("treatment")
				u.SetExcluded("updated_at")
			}),
		)
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("upsert tooth record: %w", constraint(err))
	}

	sel := r.c.sql().Select(toothRecordColumns...).
		From(entsql.Table(ToothRecordsTable.Name)).
		Where(entsql.And(entsql.EQ("patient_id", in.PatientID), entsql.EQ("tooth_number", in.ToothNumber)))
	return only(ctx, r.c, sel, scanToothRecord, "tooth record")
}
