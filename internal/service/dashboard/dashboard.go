// Package dashboard aggregates the clinic's headline numbers. Each figure is
// an independent read; they run concurrently and the first failure wins.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
)

type PatientStore interface {
	Count(ctx context.Context, clinicID uuid.UUID) (int, error)
}

type AppointmentStore interface {
	Count(ctx context.Context, clinicID uuid.UUID, f repo.AppointmentFilter) (int, error)
	List(ctx context.Context, clinicID uuid.UUID, f repo.AppointmentFilter) ([]*repo.Appointment, error)
}

type TreatmentStore interface {
	ListPaidSince(ctx context.Context, clinicID uuid.UUID, since time.Time) ([]*repo.Treatment, error)
}

type ProfessionalStore interface {
	CountActive(ctx context.Context, clinicID uuid.UUID) (int, error)
}

// Summary is the home screen of a clinic.
type Summary struct {
	TotalPatients       int                 `json:"total_patients"`
	TodayAppointments   int                 `json:"today_appointments"`
	PendingAppointments int                 `json:"pending_appointments"`
	MonthRevenue        int64               `json:"month_revenue"`
	Upcoming            []*repo.Appointment `json:"upcoming"`
}

// AdminSummary is the administration screen of a clinic.
type AdminSummary struct {
	TotalPatients       int   `json:"total_patients"`
	MonthAppointments   int   `json:"month_appointments"`
	MonthRevenue        int64 `json:"month_revenue"`
	ActiveProfessionals int   `json:"active_professionals"`
}

type Service interface {
	Summary(ctx context.Context, clinicID uuid.UUID) (*Summary, error)
	AdminSummary(ctx context.Context, clinicID uuid.UUID) (*AdminSummary, error)
}

type dashboardService struct {
	patients      PatientStore
	appointments  AppointmentStore
	treatments    TreatmentStore
	professionals ProfessionalStore

	loc           *time.Location
	upcomingLimit int
	now           func() time.Time
}

func New(patients PatientStore, appointments AppointmentStore, treatments TreatmentStore, professionals ProfessionalStore, cfg config.ClinicConfig) Service {
	limit := cfg.UpcomingLimit
	if limit <= 0 {
		limit = 5
	}
	return &dashboardService{
		patients:      patients,
		appointments:  appointments,
		treatments:    treatments,
		professionals: professionals,
		loc:           cfg.Location(),
		upcomingLimit: limit,
		now:           time.Now,
	}
}

func (s *dashboardService) Summary(ctx context.Context, clinicID uuid.UUID) (*Summary, error) {
	now := s.now()
	dayStart, dayEnd := dayBounds(now, s.loc)
	scheduled := repo.AppointmentScheduled

	var out Summary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.patients.Count(ctx, clinicID)
		if err != nil {
			return fmt.Errorf("count patients: %w", err)
		}
		out.TotalPatients = n
		return nil
	})
	g.Go(func() error {
		n, err := s.appointments.Count(ctx, clinicID, repo.AppointmentFilter{From: &dayStart, To: &dayEnd})
		if err != nil {
			return fmt.Errorf("count today's appointments: %w", err)
		}
		out.TodayAppointments = n
		return nil
	})
	g.Go(func() error {
		n, err := s.appointments.Count(ctx, clinicID, repo.AppointmentFilter{Status: &scheduled})
		if err != nil {
			return fmt.Errorf("count pending appointments: %w", err)
		}
		out.PendingAppointments = n
		return nil
	})
	g.Go(func() error {
		sum, err := s.monthRevenue(ctx, clinicID, now)
		if err != nil {
			return err
		}
		out.MonthRevenue = sum
		return nil
	})
	g.Go(func() error {
		list, err := s.appointments.List(ctx, clinicID, repo.AppointmentFilter{
			From:        &now,
			Status:      &scheduled,
			Limit:       s.upcomingLimit,
			WithParties: true,
		})
		if err != nil {
			return fmt.Errorf("list upcoming appointments: %w", err)
		}
		out.Upcoming = list
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *dashboardService) AdminSummary(ctx context.Context, clinicID uuid.UUID) (*AdminSummary, error) {
	now := s.now()
	monthStart, monthEnd := monthBounds(now, s.loc)

	var out AdminSummary
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.patients.Count(ctx, clinicID)
		if err != nil {
			return fmt.Errorf("count patients: %w", err)
		}
		out.TotalPatients = n
		return nil
	})
	g.Go(func() error {
		n, err := s.appointments.Count(ctx, clinicID, repo.AppointmentFilter{From: &monthStart, To: &monthEnd})
		if err != nil {
			return fmt.Errorf("count month appointments: %w", err)
		}
		out.MonthAppointments = n
		return nil
	})
	g.Go(func() error {
		sum, err := s.monthRevenue(ctx, clinicID, now)
		if err != nil {
			return err
		}
		out.MonthRevenue = sum
		return nil
	})
	g.Go(func() error {
		n, err := s.professionals.CountActive(ctx, clinicID)
		if err != nil {
			return fmt.Errorf("count professionals: %w", err)
		}
		out.ActiveProfessionals = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &out, nil
}

// monthRevenue sums the cost of paid treatments performed since the first
// day of now's month.
func (s *dashboardService) monthRevenue(ctx context.Context, clinicID uuid.UUID, now time.Time) (int64, error) {
	since, _ := monthBounds(now, s.loc)
	list, err := s.treatments.ListPaidSince(ctx, clinicID, since)
	if err != nil {
		return 0, fmt.Errorf("list paid treatments: %w", err)
	}
	var sum int64
	for _, t := range list {
		if t.Paid {
			sum += t.Cost
		}
	}
	return sum, nil
}

func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

func monthBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	t = t.In(loc)
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 1, 0)
}
