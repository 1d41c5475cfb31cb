// Package study stores radiographs and other study files of a patient in
// object storage and keeps one row per file.
package study

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
	"github.com/Alijeyrad/dentclinic/pkg/logs"
	s3pkg "github.com/Alijeyrad/dentclinic/pkg/s3"
)

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type Store interface {
	Create(ctx context.Context, in *repo.Study) (*repo.Study, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.Study, error)
}

type PatientStore interface {
	Exists(ctx context.Context, clinicID, id uuid.UUID) (bool, error)
}

// Storage is satisfied by *s3.Client.
type Storage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	PresignDownload(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type UploadRequest struct {
	Kind        string
	Description string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Item is a stored study with a short-lived download link.
type Item struct {
	*repo.Study
	DownloadURL string `json:"download_url"`
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	Upload(ctx context.Context, clinicID, patientID uuid.UUID, req UploadRequest) (*Item, error)
	ListByPatient(ctx context.Context, clinicID, patientID uuid.UUID) ([]*Item, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type studyService struct {
	store    Store
	patients PatientStore
	storage  Storage
}

// New builds the service. A nil storage makes Upload and ListByPatient
// return ErrStorageDisabled.
func New(store Store, patients PatientStore, storage Storage) Service {
	return &studyService{store: store, patients: patients, storage: storage}
}

func (s *studyService) Upload(ctx context.Context, clinicID, patientID uuid.UUID, req UploadRequest) (*Item, error) {
	var v validation.Errors
	v.Check(req.Kind == repo.StudyRadiograph || req.Kind == repo.StudyOther, "kind", "must be radiograph or study")
	v.Required("file_name", req.FileName)
	v.Check(req.Size > 0 && req.Body != nil, "file", "is required")
	if err := v.Err(); err != nil {
		return nil, err
	}
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}
	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}

	contentType := req.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("study id: %w", err)
	}
	key := s3pkg.StudyKey(clinicID, patientID, id, req.FileName)
	if err := s.storage.Upload(ctx, key, contentType, req.Body, req.Size); err != nil {
		return nil, fmt.Errorf("upload study: %w", err)
	}

	st, err := s.store.Create(ctx, &repo.Study{
		ID:          id,
		PatientID:   patientID,
		Kind:        req.Kind,
		FileKey:     key,
		FileName:    req.FileName,
		ContentType: contentType,
		Description: strings.TrimSpace(req.Description),
	})
	if err != nil {
		if derr := s.storage.Delete(ctx, key); derr != nil {
			logs.FromContext(ctx).Warn("orphaned study object", slog.String("key", key), slog.Any("error", derr))
		}
		return nil, fmt.Errorf("create study: %w", err)
	}
	return s.item(ctx, st)
}

func (s *studyService) ListByPatient(ctx context.Context, clinicID, patientID uuid.UUID) ([]*Item, error) {
	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}
	list, err := s.store.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list studies: %w", err)
	}
	if s.storage == nil {
		if len(list) == 0 {
			return []*Item{}, nil
		}
		return nil, ErrStorageDisabled
	}

	out := make([]*Item, 0, len(list))
	for _, st := range list {
		it, err := s.item(ctx, st)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *studyService) item(ctx context.Context, st *repo.Study) (*Item, error) {
	url, err := s.storage.PresignDownload(ctx, st.FileKey)
	if err != nil {
		return nil, fmt.Errorf("presign study: %w", err)
	}
	return &Item{Study: st, DownloadURL: url}, nil
}

func (s *studyService) checkPatient(ctx context.Context, clinicID, patientID uuid.UUID) error {
	ok, err := s.patients.Exists(ctx, clinicID, patientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return ErrPatientNotFound
	}
	return nil
}
