package repo

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Appointment status values.
const (
	AppointmentScheduled = "scheduled"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

// Appointment is a scheduled visit of a patient with a professional.
type Appointment struct {
	ID             uuid.UUID `json:"id"`
	ClinicID       uuid.UUID `json:"clinic_id"`
	PatientID      uuid.UUID `json:"patient_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	Status         string    `json:"status"`
	Reason         string    `json:"reason"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Edges AppointmentEdges `json:"edges"`
}

// AppointmentEdges holds the rows an appointment references, when loaded.
type AppointmentEdges struct {
	Patient      *Patient      `json:"patient,omitempty"`
	Professional *Professional `json:"professional,omitempty"`
}

var appointmentColumns = []string{
	"id", "scheduled_at", "status", "reason", "notes", "created_at", "updated_at",
	"clinic_id", "patient_id", "professional_id",
}

func scanAppointment(rows *entsql.Rows) (*Appointment, error) {
	var (
		a     Appointment
		notes stdsql.NullString
	)
	if err := rows.Scan(&a.ID, &a.ScheduledAt, &a.Status, &a.Reason, &notes, &a.CreatedAt,
		&a.UpdatedAt, &a.ClinicID, &a.PatientID, &a.ProfessionalID); err != nil {
		return nil, err
	}
	a.Notes = stringPtr(notes)
	a.ScheduledAt = a.ScheduledAt.UTC()
	a.CreatedAt = a.CreatedAt.UTC()
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}

// AppointmentFilter narrows List and Count. From is inclusive, To exclusive.
type AppointmentFilter struct {
	From   *time.Time
	To     *time.Time
	Status *string
	Limit  int
	// WithParties attaches the patient and professional of every row.
	WithParties bool
}

func (f AppointmentFilter) predicates(clinicID uuid.UUID) []*entsql.Predicate {
	preds := []*entsql.Predicate{entsql.EQ("clinic_id", clinicID)}
	if f.From != nil {
		preds = append(preds, entsql.GTE("scheduled_at", f.From.UTC()))
	}
	if f.To != nil {
		preds = append(preds, entsql.LT("scheduled_at", f.To.UTC()))
	}
	if f.Status != nil {
		preds = append(preds, entsql.EQ("status", *f.Status))
	}
	return preds
}

type AppointmentRepo struct {
	c *Client
}

// Create inserts an appointment in the scheduled state.
func (r *AppointmentRepo) Create(ctx context.Context, in *Appointment) (*Appointment, error) {
	out := *in
	out.ID = newID()
	out.Status = AppointmentScheduled
	out.ScheduledAt = out.ScheduledAt.UTC()
	out.CreatedAt = r.c.timestamp()
	out.UpdatedAt = out.CreatedAt
	out.Edges = AppointmentEdges{}

	q := r.c.sql().Insert(AppointmentsTable.Name).
		Columns(appointmentColumns...).
		Values(out.ID, out.ScheduledAt, out.Status, out.Reason, nullString(out.Notes), out.CreatedAt,
			out.UpdatedAt, out.ClinicID, out.PatientID, out.ProfessionalID)
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("insert appointment: %w", constraint(err))
	}
	return &out, nil
}

// Get loads one appointment with its patient and professional attached.
func (r *AppointmentRepo) Get(ctx context.Context, clinicID, id uuid.UUID) (*Appointment, error) {
	sel := r.c.sql().Select(appointmentColumns...).
		From(entsql.Table(AppointmentsTable.Name)).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID)))
	a, err := only(ctx, r.c, sel, scanAppointment, "appointment")
	if err != nil {
		return nil, err
	}
	if err := r.attachParties(ctx, []*Appointment{a}); err != nil {
		return nil, err
	}
	return a, nil
}

// List returns appointments ordered by time ascending.
func (r *AppointmentRepo) List(ctx context.Context, clinicID uuid.UUID, f AppointmentFilter) ([]*Appointment, error) {
	sel := r.c.sql().Select(appointmentColumns...).
		From(entsql.Table(AppointmentsTable.Name)).
		Where(entsql.And(f.predicates(clinicID)...)).
		OrderBy("scheduled_at")
	if f.Limit > 0 {
		sel.Limit(f.Limit)
	}
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query appointments: %w", err)
	}
	list, err := scanAll(rows, scanAppointment)
	if err != nil {
		return nil, err
	}
	if f.WithParties {
		if err := r.attachParties(ctx, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *AppointmentRepo) Count(ctx context.Context, clinicID uuid.UUID, f AppointmentFilter) (int, error) {
	n, err := r.c.count(ctx, AppointmentsTable.Name, f.predicates(clinicID)...)
	if err != nil {
		return 0, fmt.Errorf("count appointments: %w", err)
	}
	return n, nil
}

func (r *AppointmentRepo) SetStatus(ctx context.Context, clinicID, id uuid.UUID, status string) error {
	q := r.c.sql().Update(AppointmentsTable.Name).
		Set("status", status).
		Set("updated_at", r.c.timestamp()).
		Where(entsql.And(entsql.EQ("id", id), entsql.EQ("clinic_id", clinicID)))
	return r.c.updateOne(ctx, q, "appointment")
}

func (r *AppointmentRepo) attachParties(ctx context.Context, list []*Appointment) error {
	if len(list) == 0 {
		return nil
	}
	patientIDs := make([]uuid.UUID, 0, len(list))
	professionalIDs := make([]uuid.UUID, 0, len(list))
	for _, a := range list {
		patientIDs = append(patientIDs, a.PatientID)
		professionalIDs = append(professionalIDs, a.ProfessionalID)
	}
	patients, err := r.c.Patient.GetMany(ctx, dedupe(patientIDs))
	if err != nil {
		return err
	}
	professionals, err := r.c.Professional.GetMany(ctx, dedupe(professionalIDs))
	if err != nil {
		return err
	}
	for _, a := range list {
		a.Edges.Patient = patients[a.PatientID]
		a.Edges.Professional = professionals[a.ProfessionalID]
	}
	return nil
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
