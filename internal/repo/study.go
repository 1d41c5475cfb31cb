package repo

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// Study kinds.
const (
	StudyRadiograph = "radiograph"
	StudyOther      = "study"
)

// Study is an uploaded file (radiograph or other study) attached to a patient.
type Study struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	Kind        string    `json:"kind"`
	FileKey     string    `json:"file_key"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	Description string    `json:"description"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

var studyColumns = []string{
	"id", "kind", "file_key", "file_name", "content_type", "description", "uploaded_at", "patient_id",
}

func scanStudy(rows *entsql.Rows) (*Study, error) {
	var s Study
	if err := rows.Scan(&s.ID, &s.Kind, &s.FileKey, &s.FileName, &s.ContentType, &s.Description,
		&s.UploadedAt, &s.PatientID); err != nil {
		return nil, err
	}
	s.UploadedAt = s.UploadedAt.UTC()
	return &s, nil
}

type StudyRepo struct {
	c *Client
}

// Create inserts a study. The ID may be preset so it can be part of the file key.
func (r *StudyRepo) Create(ctx context.Context, in *Study) (*Study, error) {
	out := *in
	if out.ID == uuid.Nil {
		out.ID = newID()
	}
	out.UploadedAt = r.c.timestamp()

	q := r.c.sql().Insert(StudiesTable.Name).
		Columns(studyColumns...).
		Values(out.ID, out.Kind, out.FileKey, out.FileName, out.ContentType, out.Description,
			out.UploadedAt, out.PatientID)
	if _, err := r.c.exec(ctx, q); err != nil {
		return nil, fmt.Errorf("insert study: %w", constraint(err))
	}
	return &out, nil
}

// ListByPatient returns a patient's studies, most recent first.
func (r *StudyRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Study, error) {
	sel := r.c.sql().Select(studyColumns...).
		From(entsql.Table(StudiesTable.Name)).
		Where(entsql.EQ("patient_id", patientID)).
		OrderBy(entsql.Desc("uploaded_at"))
	rows, err := r.c.rows(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query studies: %w", err)
	}
	return scanAll(rows, scanStudy)
}
