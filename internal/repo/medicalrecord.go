package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// MedicalRecord is the single anamnesis sheet of a patient.
type MedicalRecord struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	Allergies   string    `json:"allergies"`
	Medications string    `json:"medications"`
	Conditions  string    `json:"conditions"`
	Notes       string    `json:"notes"`
	UpdatedAt   time.Time `json:"updated_at"`
}

var medicalRecordColumns = []string{
	"id", "allergies", "medications", "conditions", "notes", "updated_at", "patient_id",
}

func scanMedicalRecord(rows *entsql.Rows) (*MedicalRecord, error) {
	var m MedicalRecord
	if err := rows.Scan(&m.ID, &m.Allergies, &m.Medications, &m.Conditions, &m.Notes,
		&m.UpdatedAt, &m.PatientID); err != nil {
		return nil, err
	}
	m.UpdatedAt = m.UpdatedAt.UTC()
	return &m, nil
}

type MedicalRecordRepo struct {
	c *Client
}

func (r *MedicalRecordRepo) GetByPatient(ctx context.Context, patientID uuid.UUID) (*MedicalRecord, error) {
	sel := r.c.sql().Select(medicalRecordColumns...).
		From(entsql.Table(MedicalRecordsTable.Name)).
		Where(entsql.EQ("patient_id", patientID))
	return only(ctx, r.c, sel, scanMedicalRecord, "medical record")
}

// Upsert writes the patient's record, replacing every text field of an existing one.
func (r *MedicalRecordRepo) Upsert(ctx context.Context, in *MedicalRecord) (*MedicalRecord, error) {
	q := r.c.sql().Insert(MedicalRecordsTable.Name).
		Columns(medicalRecordColumns...).
		Values(newID(), in.Allergies, in.Medications, in.Conditions, in.Notes, r.c.timestamp(), in.PatientID).
		OnConflict(
			entsql.ConflictColumns("patient_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("allergies")
				u.SetExcluded("medications")
				u.SetExcluded("conditions")
				u.SetExcluded("notes")
				u.SetExcluded("updated_at")
			}),
		)
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("upsert medical record: %w", constraint(err))
	}
	return r.GetByPatient(ctx, in.PatientID)
}
