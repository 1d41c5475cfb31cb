// Package repo is the data-access layer. It wraps an ent dialect driver and
// exposes one typed repository per table, built on ent's SQL query builder.
package repo

import (
	"context"
	stdsql "database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Client is the shared data-access handle. It is safe for concurrent use.
type Client struct {
	drv dialect.Driver

	Clinic        *ClinicRepo
	Professional  *ProfessionalRepo
	Patient       *PatientRepo
	Appointment   *AppointmentRepo
	Treatment     *TreatmentRepo
	ToothRecord   *ToothRecordRepo
	Study         *StudyRepo
	Prescription  *PrescriptionRepo
	MedicalRecord *MedicalRecordRepo

	// now is overridable in tests.
	now func() time.Time
}

// NewClient creates a Client on top of an opened ent driver.
func NewClient(drv dialect.Driver) *Client {
	c := &Client{drv: drv, now: time.Now}
	c.Clinic = &ClinicRepo{c: c}
	c.Professional = &ProfessionalRepo{c: c}
	c.Patient = &PatientRepo{c: c}
	c.Appointment = &AppointmentRepo{c: c}
	c.Treatment = &TreatmentRepo{c: c}
	c.ToothRecord = &ToothRecordRepo{c: c}
	c.Study = &StudyRepo{c: c}
	c.Prescription = &PrescriptionRepo{c: c}
	c.MedicalRecord = &MedicalRecordRepo{c: c}
	return c
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	return c.drv.Close()
}

// Dialect returns the SQL dialect name of the underlying driver.
func (c *Client) Dialect() string {
	return c.drv.Dialect()
}

// Ping checks that the database is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if p, ok := c.drv.(interface{ DB() *stdsql.DB }); ok && p.DB() != nil {
		return p.DB().PingContext(ctx)
	}
	return c.drv.Exec(ctx, "SELECT 1", []any{}, nil)
}

func (c *Client) sql() *entsql.DialectBuilder {
	return entsql.Dialect(c.drv.Dialect())
}

func (c *Client) timestamp() time.Time {
	return c.now().UTC()
}

func (c *Client) exec(ctx context.Context, q entsql.Querier) (int64, error) {
	query, args := q.Query()
	var res stdsql.Result
	if err := c.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (c *Client) rows(ctx context.Context, q entsql.Querier) (*entsql.Rows, error) {
	query, args := q.Query()
	rows := &entsql.Rows{}
	if err := c.drv.Query(ctx, query, args, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) count(ctx context.Context, table string, preds ...*entsql.Predicate) (int, error) {
	sel := c.sql().Select(entsql.Count("*")).From(entsql.Table(table))
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	rows, err := c.rows(ctx, sel)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, err
		}
	}
	return n, rows.Err()
}

func (c *Client) exists(ctx context.Context, table string, preds ...*entsql.Predicate) (bool, error) {
	n, err := c.count(ctx, table, preds...)
	return n > 0, err
}

// scanAll drains rows with scan and always closes them.
func scanAll[T any](rows *entsql.Rows, scan func(*entsql.Rows) (*T, error)) ([]*T, error) {
	defer rows.Close()
	out := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// only returns the single row selected by sel or ErrNotFound.
func only[T any](ctx context.Context, c *Client, sel *entsql.Selector, scan func(*entsql.Rows) (*T, error), label string) (*T, error) {
	rows, err := c.rows(ctx, sel.Limit(1))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", label, err)
	}
	list, err := scanAll(rows, scan)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", label, err)
	}
	if len(list) == 0 {
		return nil, &NotFoundError{label: label}
	}
	return list[0], nil
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return id
}

func uuidArgs(ids []uuid.UUID) []any {
	out := make([]any, len(ids))
	for i, id := range ids {
		out[i] = id
	}
	return out
}

func nullString(s *string) stdsql.NullString {
	if s == nil {
		return stdsql.NullString{}
	}
	return stdsql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) stdsql.NullTime {
	if t == nil {
		return stdsql.NullTime{}
	}
	return stdsql.NullTime{Time: t.UTC(), Valid: true}
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func stringPtr(ns stdsql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func timePtr(nt stdsql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}

func uuidPtr(nu uuid.NullUUID) *uuid.UUID {
	if !nu.Valid {
		return nil
	}
	id := nu.UUID
	return &id
}

// updateOne executes q and returns a NotFoundError when no row matched.
func (c *Client) updateOne(ctx context.Context, q entsql.Querier, label string) error {
	n, err := c.exec(ctx, q)
	if err != nil {
		return fmt.Errorf("update %s: %w", label, constraint(err))
	}
	if n == 0 {
		return &NotFoundError{label: label}
	}
	return nil
}
