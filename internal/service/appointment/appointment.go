package appointment

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
	"github.com/Alijeyrad/dentclinic/pkg/events"
	"github.com/Alijeyrad/dentclinic/pkg/logs"
)

// DateLayout is the format of the date query parameter.
const DateLayout = "2006-01-02"

// ---------------------------------------------------------------------------
// Dependencies
// ---------------------------------------------------------------------------

type Store interface {
	Create(ctx context.Context, in *repo.Appointment) (*repo.Appointment, error)
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Appointment, error)
	List(ctx context.Context, clinicID uuid.UUID, f repo.AppointmentFilter) ([]*repo.Appointment, error)
	SetStatus(ctx context.Context, clinicID, id uuid.UUID, status string) error
}

type PatientStore interface {
	Exists(ctx context.Context, clinicID, id uuid.UUID) (bool, error)
}

type ProfessionalStore interface {
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Professional, error)
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

// ListRequest selects the appointments of one day, or of [From, To) when
// both bounds are set. An empty Date means today in the clinic time zone.
type ListRequest struct {
	Date   string
	From   *time.Time
	To     *time.Time
	Status *string
}

type CreateRequest struct {
	PatientID      uuid.UUID
	ProfessionalID uuid.UUID
	ScheduledAt    time.Time
	Reason         string
	Notes          *string
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	List(ctx context.Context, clinicID uuid.UUID, req ListRequest) ([]*repo.Appointment, error)
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Appointment, error)
	Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Appointment, error)
	SetStatus(ctx context.Context, clinicID, id uuid.UUID, status string) (*repo.Appointment, error)
	Upcoming(ctx context.Context, clinicID uuid.UUID, n int) ([]*repo.Appointment, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type appointmentService struct {
	store         Store
	patients      PatientStore
	professionals ProfessionalStore
	pub           events.Publisher

	loc           *time.Location
	dayLimit      int
	upcomingLimit int
	now           func() time.Time
}

func New(store Store, patients PatientStore, professionals ProfessionalStore, pub events.Publisher, cfg config.ClinicConfig) Service {
	if pub == nil {
		pub = events.Nop{}
	}
	s := &appointmentService{
		store:         store,
		patients:      patients,
		professionals: professionals,
		pub:           pub,
		loc:           cfg.Location(),
		dayLimit:      cfg.DayListLimit,
		upcomingLimit: cfg.UpcomingLimit,
		now:           time.Now,
	}
	if s.dayLimit <= 0 {
		s.dayLimit = 100
	}
	if s.upcomingLimit <= 0 {
		s.upcomingLimit = 5
	}
	return s
}

// DayBounds returns [start of day, start of next day) for t in loc.
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func (s *appointmentService) List(ctx context.Context, clinicID uuid.UUID, req ListRequest) ([]*repo.Appointment, error) {
	f := repo.AppointmentFilter{Status: req.Status, Limit: s.dayLimit, WithParties: true}

	switch {
	case req.From != nil && req.To != nil:
		f.From, f.To = req.From, req.To
	default:
		day := s.now()
		if req.Date != "" {
			d, err := time.ParseInLocation(DateLayout, req.Date, s.loc)
			if err != nil {
				return nil, ErrInvalidDate
			}
			day = d
		}
		from, to := DayBounds(day, s.loc)
		f.From, f.To = &from, &to
	}

	list, err := s.store.List(ctx, clinicID, f)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return list, nil
}

func (s *appointmentService) Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Appointment, error) {
	a, err := s.store.Get(ctx, clinicID, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (s *appointmentService) Create(ctx context.Context, clinicID uuid.UUID, req CreateRequest) (*repo.Appointment, error) {
	var v validation.Errors
	v.Check(req.PatientID != uuid.Nil, "patient_id", "is required")
	v.Check(req.ProfessionalID != uuid.Nil, "professional_id", "is required")
	v.Check(!req.ScheduledAt.IsZero(), "scheduled_at", "is required")
	v.Required("reason", req.Reason)
	if err := v.Err(); err != nil {
		return nil, err
	}

	ok, err := s.patients.Exists(ctx, clinicID, req.PatientID)
	if err != nil {
		return nil, fmt.Errorf("check patient: %w", err)
	}
	if !ok {
		return nil, ErrPatientNotFound
	}

	prof, err := s.professionals.Get(ctx, clinicID, req.ProfessionalID)
	if err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("get professional: %w", err)
	}
	if !prof.Active {
		return nil, ErrProfessionalInactive
	}

	in := &repo.Appointment{
		ClinicID:       clinicID,
		PatientID:      req.PatientID,
		ProfessionalID: req.ProfessionalID,
		ScheduledAt:    req.ScheduledAt,
		Reason:         strings.TrimSpace(req.Reason),
		Notes:          trimmed(req.Notes),
	}
	a, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	ev := events.AppointmentScheduledEvent{AppointmentID: a.ID, ClinicID: clinicID}
	if err := events.PublishJSON(s.pub, events.Subject(events.AppointmentScheduled, a.ID), ev); err != nil {
		logs.FromContext(ctx).Warn("appointment scheduled event not published", slog.Any("error", err))
	}
	return a, nil
}

// SetStatus moves an appointment to any of the three statuses. There are no
// transition rules: a cancelled appointment may be scheduled again.
func (s *appointmentService) SetStatus(ctx context.Context, clinicID, id uuid.UUID, status string) (*repo.Appointment, error) {
	var v validation.Errors
	v.Check(ValidStatus(status), "status", "must be one of scheduled, completed, cancelled")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.store.SetStatus(ctx, clinicID, id, status); err != nil {
		if repo.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("set appointment status: %w", err)
	}

	ev := events.AppointmentStatusChanged{AppointmentID: id, ClinicID: clinicID, Status: status}
	if err := events.PublishJSON(s.pub, events.Subject(events.AppointmentStatus, id), ev); err != nil {
		logs.FromContext(ctx).Warn("appointment status event not published", slog.Any("error", err))
	}

	return s.Get(ctx, clinicID, id)
}

// Upcoming returns the next n scheduled appointments from now. A
// non-positive n uses the configured default.
func (s *appointmentService) Upcoming(ctx context.Context, clinicID uuid.UUID, n int) ([]*repo.Appointment, error) {
	if n <= 0 {
		n = s.upcomingLimit
	}
	now := s.now()
	status := repo.AppointmentScheduled
	list, err := s.store.List(ctx, clinicID, repo.AppointmentFilter{
		From:        &now,
		Status:      &status,
		Limit:       n,
		WithParties: true,
	})
	if err != nil {
		return nil, fmt.Errorf("list upcoming appointments: %w", err)
	}
	return list, nil
}

// ValidStatus reports whether status is one of the appointment statuses.
func ValidStatus(status string) bool {
	switch status {
	case repo.AppointmentScheduled, repo.AppointmentCompleted, repo.AppointmentCancelled:
		return true
	}
	return false
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
