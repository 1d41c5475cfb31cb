package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Prescription is a medication order issued to a patient by a professional.
type Prescription struct {
	ID               uuid.UUID  `json:"id"`
	PatientID        uuid.UUID  `json:"patient_id"`
	ProfessionalID   uuid.UUID  `json:"professional_id"`
	AppointmentID    *uuid.UUID `json:"appointment_id,omitempty"`
	Medications      string     `json:"medications"`
	Instructions     string     `json:"instructions"`
	VerificationCode string     `json:"verification_code"`
	IssuedAt         time.Time  `json:"issued_at"`
}

var prescriptionColumns = []string{
	"id", "medications", "instructions", "verification_code", "issued_at", "patient_id",
	"professional_id", "appointment_id",
}

func scanPrescription(rows *entsql.Rows) (*Prescription, error) {
	var (
		p           Prescription
		appointment uuid.NullUUID
	)
	if err := rows.Scan(&p.ID, &p.Medications, &p.Instructions, &p.VerificationCode, &p.IssuedAt,
		&p.PatientID, &p.ProfessionalID, &appointment); err != nil {
		return nil, err
	}
	p.AppointmentID = uuidPtr(appointment)
	p.IssuedAt = p.IssuedAt.UTC()
	return &p, nil
}

type PrescriptionRepo struct {
	c *Client
}

func (r *PrescriptionRepo) Create(ctx context.Context, in *Prescription) (*Prescription, error) {
	out := *in
	out.ID = newID()
	out.IssuedAt = r.c.timestamp()

	q := r.c.sql().Insert(PrescriptionsTable.Name).
		Columns(prescriptionColumns...).
		Values(out.ID, out.Medications, out.Instructions, out.VerificationCode, out.IssuedAt,
			out.PatientID, out.ProfessionalID, nullUUID(out.AppointmentID))
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("insert prescription: %w", constraint(err))
	}
	return &out, nil
}

// ListByPatient returns a patient's prescriptions, most recent first.
func (r *PrescriptionRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Prescription, error) {
	sel := r.c.sql().Select(prescriptionColumns...).
		From(entsql.Table(PrescriptionsTable.Name)).
		Where(entsql.EQ("patient_id", patientID)).
		OrderBy(entsql.Desc("issued_at"))
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query prescriptions: %w", err)
	}
	return scanAll(rows, scanPrescription)
}

func (r *PrescriptionRepo) GetByCode(ctx context.Context, code string) (*Prescription, error) {
	sel := r.c.sql().Select(prescriptionColumns...).
		From(entsql.Table(PrescriptionsTable.Name)).
		Where(entsql.EQ("verification_code", code))
	return only(ctx, r.c, sel, scanPrescription, "prescription")
}
