package appointment

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
	"github.com/Alijeyrad/dentclinic/pkg/events"
)

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeStore struct {
	rows    []*repo.Appointment
	creates int
	filters []repo.AppointmentFilter
}

func (f *fakeStore) Create(_ context.Context, in *repo.Appointment) (*repo.Appointment, error) {
	f.creates++
	out := *in
	out.ID = uuid.New()
	out.Status = repo.AppointmentScheduled
	f.rows = append(f.rows, &out)
	return &out, nil
}

func (f *fakeStore) Get(_ context.Context, clinicID, id uuid.UUID) (*repo.Appointment, error) {
	for _, a := range f.rows {
		if a.ID == id && a.ClinicID == clinicID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, &repo.NotFoundError{}
}

func (f *fakeStore) List(_ context.Context, clinicID uuid.UUID, flt repo.AppointmentFilter) ([]*repo.Appointment, error) {
	f.filters = append(f.filters, flt)
	var out []*repo.Appointment
	for _, a := range f.rows {
		if a.ClinicID != clinicID {
			continue
		}
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
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	if flt.Limit > 0 && len(out) > flt.Limit {
		out = out[:flt.Limit]
	}
	return out, nil
}

func (f *fakeStore) SetStatus(_ context.Context, clinicID, id uuid.UUID, status string) error {
	for _, a := range f.rows {
		if a.ID == id && a.ClinicID == clinicID {
			a.Status = status
			return nil
		}
	}
	return &repo.NotFoundError{}
}

type fakePatients map[uuid.UUID]bool

func (f fakePatients) Exists(_ context.Context, _, id uuid.UUID) (bool, error) {
	return f[id], nil
}

type fakeProfessionals map[uuid.UUID]*repo.Professional

func (f fakeProfessionals) Get(_ context.Context, _, id uuid.UUID) (*repo.Professional, error) {
	p, ok := f[id]
	if !ok {
		return nil, &repo.NotFoundError{}
	}
	return p, nil
}

type fakePublisher struct {
	subjects []string
}

func (f *fakePublisher) Publish(subject string, _ []byte) error {
	f.subjects = append(f.subjects, subject)
	return nil
}

var asuncion = time.FixedZone("PYT", -3*60*60)

type env struct {
	svc      *appointmentService
	store    *fakeStore
	pub      *fakePublisher
	clinicID uuid.UUID
	patient  uuid.UUID
	active   uuid.UUID
	retired  uuid.UUID
}

func newEnv(now time.Time) *env {
	e := &env{
		store:    &fakeStore{},
		pub:      &fakePublisher{},
		clinicID: uuid.New(),
		patient:  uuid.New(),
		active:   uuid.New(),
		retired:  uuid.New(),
	}
	profs := fakeProfessionals{
		e.active:  {ID: e.active, Active: true},
		e.retired: {ID: e.retired, Active: false},
	}
	svc := New(e.store, fakePatients{e.patient: true}, profs, e.pub, config.ClinicConfig{}).(*appointmentService)
	svc.loc = asuncion
	svc.now = func() time.Time { return now }
	e.svc = svc
	return e
}

func (e *env) add(at time.Time, status string) *repo.Appointment {
	a := &repo.Appointment{ID: uuid.New(), ClinicID: e.clinicID, PatientID: e.patient, ProfessionalID: e.active, ScheduledAt: at, Status: status}
	e.store.rows = append(e.store.rows, a)
	return a
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreateValidation(t *testing.T) {
	e := newEnv(time.Now())
	at := time.Date(2026, 5, 4, 9, 0, 0, 0, asuncion)

	tests := []struct {
		name  string
		req   CreateRequest
		field string
	}{
		{"missing patient", CreateRequest{ProfessionalID: e.active, ScheduledAt: at, Reason: "control"}, "patient_id"},
		{"missing professional", CreateRequest{PatientID: e.patient, ScheduledAt: at, Reason: "control"}, "professional_id"},
		{"missing time", CreateRequest{PatientID: e.patient, ProfessionalID: e.active, Reason: "control"}, "scheduled_at"},
		{"blank reason", CreateRequest{PatientID: e.patient, ProfessionalID: e.active, ScheduledAt: at, Reason: "   "}, "reason"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Create(context.Background(), e.clinicID, tt.req)
			if !errors.Is(err, validation.ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
			fields := validation.Fields(err)
			if len(fields) != 1 || fields[0].Field != tt.field {
				t.Errorf("fields = %+v, want %s", fields, tt.field)
			}
		})
	}
	if e.store.creates != 0 {
		t.Errorf("creates = %d, want 0", e.store.creates)
	}
}

func TestCreate(t *testing.T) {
	e := newEnv(time.Now())
	ctx := context.Background()
	at := time.Date(2026, 5, 4, 9, 0, 0, 0, asuncion)

	notes := "  "
	a, err := e.svc.Create(ctx, e.clinicID, CreateRequest{PatientID: e.patient, ProfessionalID: e.active, ScheduledAt: at, Reason: " limpieza ", Notes: &notes})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if a.Status != repo.AppointmentScheduled || a.Reason != "limpieza" || a.Notes != nil {
		t.Errorf("created = %+v", a)
	}
	if len(e.pub.subjects) != 1 || e.pub.subjects[0] != events.Subject(events.AppointmentScheduled, a.ID) {
		t.Errorf("published = %v", e.pub.subjects)
	}

	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"unknown patient", CreateRequest{PatientID: uuid.New(), ProfessionalID: e.active, ScheduledAt: at, Reason: "x"}, ErrPatientNotFound},
		{"unknown professional", CreateRequest{PatientID: e.patient, ProfessionalID: uuid.New(), ScheduledAt: at, Reason: "x"}, ErrProfessionalNotFound},
		{"inactive professional", CreateRequest{PatientID: e.patient, ProfessionalID: e.retired, ScheduledAt: at, Reason: "x"}, ErrProfessionalInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := e.svc.Create(ctx, e.clinicID, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListDefaultsToTodayInClinicZone(t *testing.T) {
	// 01:30 UTC on the 5th is still the 4th in Asunción.
	now := time.Date(2026, 5, 5, 1, 30, 0, 0, time.UTC)
	e := newEnv(now)
	late := e.add(time.Date(2026, 5, 4, 22, 0, 0, 0, asuncion), repo.AppointmentScheduled)
	early := e.add(time.Date(2026, 5, 4, 8, 0, 0, 0, asuncion), repo.AppointmentCompleted)
	e.add(time.Date(2026, 5, 5, 8, 0, 0, 0, asuncion), repo.AppointmentScheduled)

	list, err := e.svc.List(context.Background(), e.clinicID, ListRequest{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 || list[0].ID != early.ID || list[1].ID != late.ID {
		t.Fatalf("list = %v", list)
	}
	f := e.store.filters[0]
	if f.Limit != 100 || !f.WithParties {
		t.Errorf("filter = %+v", f)
	}
}

func TestListByDate(t *testing.T) {
	e := newEnv(time.Now())
	want := e.add(time.Date(2026, 6, 1, 10, 0, 0, 0, asuncion), repo.AppointmentScheduled)
	e.add(time.Date(2026, 6, 2, 10, 0, 0, 0, asuncion), repo.AppointmentScheduled)

	list, err := e.svc.List(context.Background(), e.clinicID, ListRequest{Date: "2026-06-01"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].ID != want.ID {
		t.Errorf("list = %v", list)
	}

	if _, err := e.svc.List(context.Background(), e.clinicID, ListRequest{Date: "01/06/2026"}); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("bad date err = %v", err)
	}
}

func TestSetStatusAnyTransition(t *testing.T) {
	e := newEnv(time.Now())
	a := e.add(time.Now(), repo.AppointmentCancelled)
	ctx := context.Background()

	for _, status := range []string{repo.AppointmentScheduled, repo.AppointmentCompleted, repo.AppointmentCancelled, repo.AppointmentScheduled} {
		got, err := e.svc.SetStatus(ctx, e.clinicID, a.ID, status)
		if err != nil {
			t.Fatalf("SetStatus(%s): %v", status, err)
		}
		if got.Status != status {
			t.Errorf("status = %s, want %s", got.Status, status)
		}
	}
	if len(e.pub.subjects) != 4 {
		t.Errorf("published %d events, want 4", len(e.pub.subjects))
	}

	if _, err := e.svc.SetStatus(ctx, e.clinicID, a.ID, "no-show"); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("invalid status err = %v", err)
	}
	if _, err := e.svc.SetStatus(ctx, e.clinicID, uuid.New(), repo.AppointmentCompleted); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown appointment err = %v", err)
	}
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	e := newEnv(now)
	e.add(now.Add(-time.Hour), repo.AppointmentScheduled)
	e.add(now.Add(2*time.Hour), repo.AppointmentCancelled)
	var want []uuid.UUID
	for i := 1; i <= 7; i++ {
		a := e.add(now.Add(time.Duration(i)*24*time.Hour), repo.AppointmentScheduled)
		want = append(want, a.ID)
	}

	list, err := e.svc.Upcoming(context.Background(), e.clinicID, 0)
	if err != nil {
		t.Fatalf("Upcoming: %v", err)
	}
	if len(list) != 5 {
		t.Fatalf("len = %d, want 5", len(list))
	}
	for i, a := range list {
		if a.ID != want[i] {
			t.Errorf("list[%d] = %s, want %s", i, a.ID, want[i])
		}
	}
}

func TestDayBounds(t *testing.T) {
	from, to := DayBounds(time.Date(2026, 3, 1, 2, 0, 0, 0, time.UTC), asuncion)
	if want := time.Date(2026, 2, 28, 0, 0, 0, 0, asuncion); !from.Equal(want) {
		t.Errorf("from = %v, want %v", from, want)
	}
	if to.Sub(from) != 24*time.Hour {
		t.Errorf("span = %v", to.Sub(from))
	}
}
