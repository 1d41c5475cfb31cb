// Package odontogram implements the per-patient dental chart: loading the 32
// positions, saving one tooth at a time, and an interactive editor session.
package odontogram

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
	"github.com/Alijeyrad/dentclinic/pkg/events"
	"github.com/Alijeyrad/dentclinic/pkg/logs"
)

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

// PatientStore answers whether a patient belongs to a clinic.
type PatientStore interface {
	Exists(ctx context.Context, clinicID, patientID uuid.UUID) (bool, error)
}

// RecordStore reads and writes tooth records.
type RecordStore interface {
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*repo.ToothRecord, error)
	Upsert(ctx context.Context, in *repo.ToothRecord) (*repo.ToothRecord, error)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type SaveToothRequest struct {
	Number    int
	Condition string
	Treatment string
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Load(ctx context.Context, clinicID, patientID uuid.UUID) (*Chart, error)
	SaveTooth(ctx context.Context, clinicID, patientID uuid.UUID, req SaveToothRequest) (*Tooth, error)
	Legend() []LegendEntry
}

type odontogramService struct {
	patients PatientStore
	records  RecordStore
	pub      events.Publisher
}

func New(patients PatientStore, records RecordStore, pub events.Publisher) Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &odontogramService{patients: patients, records: records, pub: pub}
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

func (s *odontogramService) Load(ctx context.Context, clinicID, patientID uuid.UUID) (*Chart, error) {
	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}
	records, err := s.records.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("load chart: %w", err)
	}
	return BuildChart(patientID, records), nil
}

func (s *odontogramService) SaveTooth(ctx context.Context, clinicID, patientID uuid.UUID, req SaveToothRequest) (*Tooth, error) {
	var v validation.Errors
	v.Check(ValidPosition(req.Number), "tooth_number", "must be between 1 and 32")
	v.Check(Condition(req.Condition).Valid(), "condition", "is not a known condition")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.checkPatient(ctx, clinicID, patientID); err != nil {
		return nil, err
	}

	in := &repo.ToothRecord{
		PatientID:   patientID,
		ToothNumber: req.Number,
		Condition:   req.Condition,
	}
	if req.Treatment != "" {
		t := req.Treatment
		in.Treatment = &t
	}

	stored, err := s.records.Upsert(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("save tooth %d: %w", req.Number, err)
	}
	tooth := toothFromRecord(stored)

	ev := events.ToothChanged{
		PatientID:   patientID,
		ToothNumber: tooth.Number,
		Condition:   string(tooth.Condition),
		Treatment:   tooth.Treatment,
	}
	if err := events.PublishJSON(s.pub, events.Subject(events.ToothUpdated, patientID), ev); err != nil {
		logs.FromContext(ctx).Warn("tooth update event not published", slog.Any("error", err))
	}

	return &tooth, nil
}

func (s *odontogramService) Legend() []LegendEntry {
	return Legend()
}

func (s *odontogramService) checkPatient(ctx context.Context, clinicID, patientID uuid.UUID) error {
	ok, err := s.patients.Exists(ctx, clinicID, patientID)
	if err != nil {
		return fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return ErrPatientNotFound
	}
	return nil
}
