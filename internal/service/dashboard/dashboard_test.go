package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
)

type fakePatients struct {
	n   int
	err error
}

func (f fakePatients) Count(context.Context, uuid.UUID) (int, error) { return f.n, f.err }

type fakeAppointments struct {
	rows []*repo.Appointment
}

func (f *fakeAppointments) match(flt repo.AppointmentFilter) []*repo.Appointment {
	var out []*repo.Appointment
	for _, a := range f.rows {
		if flt.From != nil && a.ScheduledAt.Before(*flt.From) {
			continue
		}
		if flt.To != nil && !a.ScheduledAt.Before(*flt.To) {
			continue
		}
		if flt.Status != nil && a.Status != *flt.Status {
			continue
		}
		out = append(out, a)
	}
	return out
}

func (f *fakeAppointments) Count(_ context.Context, _ uuid.UUID, flt repo.AppointmentFilter) (int, error) {
	return len(f.match(flt)), nil
}

func (f *fakeAppointments) List(_ context.Context, _ uuid.UUID, flt repo.AppointmentFilter) ([]*repo.Appointment, error) {
	out := f.match(flt)
	if flt.Limit > 0 && len(out) > flt.Limit {
		out = out[:flt.Limit]
	}
	return out, nil
}

type fakeTreatments struct {
	rows  []*repo.Treatment
	since time.Time
}

func (f *fakeTreatments) ListPaidSince(_ context.Context, _ uuid.UUID, since time.Time) ([]*repo.Treatment, error) {
	f.since = since
	var out []*repo.Treatment
	for _, t := range f.rows {
		if t.Paid && !t.PerformedAt.Before(since) {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeProfessionals int

func (f fakeProfessionals) CountActive(context.Context, uuid.UUID) (int, error) { return int(f), nil }

func at(day, hour int) time.Time {
	return time.Date(2026, 3, day, hour, 0, 0, 0, time.UTC)
}

func newService(p PatientStore, a *fakeAppointments, tr *fakeTreatments) *dashboardService {
	svc := New(p, a, tr, fakeProfessionals(3), config.ClinicConfig{}).(*dashboardService)
	svc.loc = time.UTC
	svc.now = func() time.Time { return at(10, 12) }
	return svc
}

func TestSummary(t *testing.T) {
	appts := &fakeAppointments{}
	for _, row := range []struct {
		at     time.Time
		status string
	}{
		{at(10, 9), repo.AppointmentCompleted},
		{at(10, 15), repo.AppointmentScheduled},
		{at(10, 16), repo.AppointmentCancelled},
		{at(11, 9), repo.AppointmentScheduled},
		{at(12, 9), repo.AppointmentScheduled},
		{at(13, 9), repo.AppointmentScheduled},
		{at(14, 9), repo.AppointmentScheduled},
		{at(15, 9), repo.AppointmentScheduled},
		{at(9, 9), repo.AppointmentScheduled},
	} {
		appts.rows = append(appts.rows, &repo.Appointment{ID: uuid.New(), ScheduledAt: row.at, Status: row.status})
	}
	treatments := &fakeTreatments{rows: []*repo.Treatment{
		{Cost: 100000, Paid: true, PerformedAt: at(2, 10)},
		{Cost: 250000, Paid: true, PerformedAt: at(9, 10)},
		{Cost: 999999, Paid: false, PerformedAt: at(9, 11)},
		{Cost: 50000, Paid: true, PerformedAt: time.Date(2026, 2, 28, 10, 0, 0, 0, time.UTC)},
	}}

	svc := newService(fakePatients{n: 42}, appts, treatments)
	got, err := svc.Summary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if got.TotalPatients != 42 {
		t.Errorf("TotalPatients = %d", got.TotalPatients)
	}
	if got.TodayAppointments != 3 {
		t.Errorf("TodayAppointments = %d, want 3", got.TodayAppointments)
	}
	if got.PendingAppointments != 7 {
		t.Errorf("PendingAppointments = %d, want 7", got.PendingAppointments)
	}
	if got.MonthRevenue != 350000 {
		t.Errorf("MonthRevenue = %d, want 350000", got.MonthRevenue)
	}
	if !treatments.since.Equal(at(1, 0)) {
		t.Errorf("revenue since = %v", treatments.since)
	}
	if len(got.Upcoming) != 5 || !got.Upcoming[0].ScheduledAt.Equal(at(10, 15)) {
		t.Errorf("Upcoming = %v", got.Upcoming)
	}
}

func TestSummaryFailure(t *testing.T) {
	boom := errors.New("db down")
	svc := newService(fakePatients{err: boom}, &fakeAppointments{}, &fakeTreatments{})
	if _, err := svc.Summary(context.Background(), uuid.New()); !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestAdminSummary(t *testing.T) {
	appts := &fakeAppointments{rows: []*repo.Appointment{
		{ScheduledAt: at(1, 0), Status: repo.AppointmentCompleted},
		{ScheduledAt: at(31, 23), Status: repo.AppointmentScheduled},
		{ScheduledAt: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), Status: repo.AppointmentScheduled},
	}}
	treatments := &fakeTreatments{rows: []*repo.Treatment{{Cost: 70000, Paid: true, PerformedAt: at(5, 9)}}}

	svc := newService(fakePatients{n: 7}, appts, treatments)
	got, err := svc.AdminSummary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("AdminSummary: %v", err)
	}
	want := AdminSummary{TotalPatients: 7, MonthAppointments: 2, MonthRevenue: 70000, ActiveProfessionals: 3}
	if *got != want {
		t.Errorf("AdminSummary = %+v, want %+v", *got, want)
	}
}
