package repo

import (
	"context"
	"strings"
	"testing"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	drv, err := entsql.Open(dialect.SQLite, "file:"+name+"?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	c := NewClient(drv)
	t.Cleanup(func() { _ = c.Close() })
	if err := c.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return c
}

type fixture struct {
	clinic       *Clinic
	patient      *Patient
	professional *Professional
}

func seed(t *testing.T, c *Client) fixture {
	t.Helper()
	ctx := context.Background()
	clinic, err := c.Clinic.Create(ctx, &Clinic{Name: "Sonrisa", Membership: MembershipMonthly, Active: true})
	if err != nil {
		t.Fatalf("create clinic: %v", err)
	}
	patient, err := c.Patient.Create(ctx, &Patient{ClinicID: clinic.ID, FirstName: "Ana", LastName: "Benítez", Phone: "+595981000001"})
	if err != nil {
		t.Fatalf("create patient: %v", err)
	}
	prof, err := c.Professional.Create(ctx, &Professional{ClinicID: clinic.ID, FirstName: "Carlos", LastName: "Duarte", Specialty: "Endodoncia"})
	if err != nil {
		t.Fatalf("create professional: %v", err)
	}
	return fixture{clinic: clinic, patient: patient, professional: prof}
}

func TestClinicIsActive(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	f := seed(t, c)

	ok, err := c.Clinic.IsActive(ctx, f.clinic.ID)
	if err != nil || !ok {
		t.Fatalf("IsActive = %v, %v; want true", ok, err)
	}
	if err := c.Clinic.SetActive(ctx, f.clinic.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	ok, err = c.Clinic.IsActive(ctx, f.clinic.ID)
	if err != nil || ok {
		t.Fatalf("IsActive after deactivate = %v, %v; want false", ok, err)
	}
	ok, err = c.Clinic.IsActive(ctx, uuid.New())
	if err != nil || ok {
		t.Fatalf("IsActive unknown = %v, %v; want false", ok, err)
	}
}

func TestGetMissingIsNotFound(t *testing.T) {
	c := newTestClient(t)
	f := seed(t, c)

	_, err := c.Patient.Get(context.Background(), f.clinic.ID, uuid.New())
	if !IsNotFound(err) {
		t.Fatalf("Get unknown patient err = %v, want not found", err)
	}
	// Scoped by clinic: a patient of another clinic is not visible.
	_, err = c.Patient.Get(context.Background(), uuid.New(), f.patient.ID)
	if !IsNotFound(err) {
		t.Fatalf("Get foreign patient err = %v, want not found", err)
	}
	err = c.Appointment.SetStatus(context.Background(), f.clinic.ID, uuid.New(), AppointmentCompleted)
	if !IsNotFound(err) {
		t.Fatalf("SetStatus unknown err = %v, want not found", err)
	}
}

func TestToothRecordUpsertKeepsOneRow(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	f := seed(t, c)

	first := "obturación"
	if _, err := c.ToothRecord.Upsert(ctx, &ToothRecord{PatientID: f.patient.ID, ToothNumber: 14, Condition: "caries", Treatment: &first}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	got, err := c.ToothRecord.Upsert(ctx, &ToothRecord{PatientID: f.patient.ID, ToothNumber: 14, Condition: "filled"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if got.Condition != "filled" || got.Treatment != nil {
		t.Errorf("stored = %q/%v, want filled/nil", got.Condition, got.Treatment)
	}

	list, err := c.ToothRecord.ListByPatient(ctx, f.patient.ID)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(list))
	}
	if list[0].ToothNumber != 14 || list[0].Condition != "filled" {
		t.Errorf("record = %+v", list[0])
	}
}

func TestDeactivatedProfessionalStillResolves(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	f := seed(t, c)

	at := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	appt, err := c.Appointment.Create(ctx, &Appointment{
		ClinicID: f.clinic.ID, PatientID: f.patient.ID, ProfessionalID: f.professional.ID,
		ScheduledAt: at, Reason: "control",
	})
	if err != nil {
		t.Fatalf("create appointment: %v", err)
	}
	if err := c.Professional.SetActive(ctx, f.clinic.ID, f.professional.ID, false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	active, err := c.Professional.List(ctx, f.clinic.ID, ProfessionalFilter{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("active professionals = %d, want 0", len(active))
	}
	all, err := c.Professional.List(ctx, f.clinic.ID, ProfessionalFilter{})
	if err != nil || len(all) != 1 {
		t.Fatalf("all professionals = %d, %v; want 1", len(all), err)
	}

	got, err := c.Appointment.Get(ctx, f.clinic.ID, appt.ID)
	if err != nil {
		t.Fatalf("Get appointment: %v", err)
	}
	if got.Edges.Professional == nil || got.Edges.Professional.FirstName != "Carlos" {
		t.Errorf("professional edge = %+v, want Carlos", got.Edges.Professional)
	}
}

func TestAppointmentListDayRange(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	f := seed(t, c)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	times := []time.Time{
		day.Add(16 * time.Hour),
		day.Add(9 * time.Hour),
		day.Add(-time.Hour),
		day.Add(25 * time.Hour),
	}
	for _, at := range times {
		if _, err := c.Appointment.Create(ctx, &Appointment{
			ClinicID: f.clinic.ID, PatientID: f.patient.ID, ProfessionalID: f.professional.ID,
			ScheduledAt: at, Reason: "limpieza",
		}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	from, to := day, day.Add(24*time.Hour)
	list, err := c.Appointment.List(ctx, f.clinic.ID, AppointmentFilter{From: &from, To: &to, Limit: 100, WithParties: true})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if !list[0].ScheduledAt.Equal(day.Add(9*time.Hour)) || !list[1].ScheduledAt.Equal(day.Add(16*time.Hour)) {
		t.Errorf("order = %v, %v", list[0].ScheduledAt, list[1].ScheduledAt)
	}
	if list[0].Edges.Patient == nil || list[0].Edges.Patient.FirstName != "Ana" {
		t.Errorf("patient edge = %+v", list[0].Edges.Patient)
	}

	status := AppointmentScheduled
	n, err := c.Appointment.Count(ctx, f.clinic.ID, AppointmentFilter{Status: &status})
	if err != nil || n != 4 {
		t.Fatalf("Count scheduled = %d, %v; want 4", n, err)
	}
}

func TestTreatmentsPaidSince(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	f := seed(t, c)

	monthStart := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := []Treatment{
		{Description: "endodoncia", Cost: 500000, Paid: true, PerformedAt: monthStart.Add(48 * time.Hour)},
		{Description: "limpieza", Cost: 150000, Paid: false, PerformedAt: monthStart.Add(72 * time.Hour)},
		{Description: "corona", Cost: 900000, Paid: true, PerformedAt: monthStart.Add(-24 * time.Hour)},
	}
	for i := range rows {
		rows[i].ClinicID = f.clinic.ID
		rows[i].PatientID = f.patient.ID
		rows[i].ProfessionalID = f.professional.ID
		if _, err := c.Treatment.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("create treatment: %v", err)
		}
	}

	paid, err := c.Treatment.ListPaidSince(ctx, f.clinic.ID, monthStart)
	if err != nil {
		t.Fatalf("ListPaidSince: %v", err)
	}
	if len(paid) != 1 || paid[0].Cost != 500000 {
		t.Fatalf("paid = %+v, want the single endodoncia", paid)
	}

	all, err := c.Treatment.ListByPatient(ctx, f.patient.ID)
	if err != nil {
		t.Fatalf("ListByPatient: %v", err)
	}
	if len(all) != 3 || all[0].Description != "limpieza" {
		t.Fatalf("ListByPatient order wrong: %+v", all)
	}
}

func TestMedicalRecordUpsert(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	f := seed(t, c)

	if _, err := c.MedicalRecord.GetByPatient(ctx, f.patient.ID); !IsNotFound(err) {
		t.Fatalf("GetByPatient before upsert err = %v, want not found", err)
	}
	if _, err := c.MedicalRecord.Upsert(ctx, &MedicalRecord{PatientID: f.patient.ID, Allergies: "penicilina"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	got, err := c.MedicalRecord.Upsert(ctx, &MedicalRecord{PatientID: f.patient.ID, Allergies: "ninguna", Notes: "hipertenso"})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if got.Allergies != "ninguna" || got.Notes != "hipertenso" {
		t.Errorf("record = %+v", got)
	}
}

func TestPatientSearch(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()
	f := seed(t, c)

	if _, err := c.Patient.Create(ctx, &Patient{ClinicID: f.clinic.ID, FirstName: "Bruno", LastName: "Acosta"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tests := []struct {
		search string
		want   int
	}{
		{"", 2},
		{"bru", 1},
		{"ACOSTA", 1},
		{"zz", 0},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			list, err := c.Patient.List(ctx, f.clinic.ID, PatientFilter{Search: tt.search, Limit: 1000})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(list) != tt.want {
				t.Errorf("len = %d, want %d", len(list), tt.want)
			}
		})
	}
}
