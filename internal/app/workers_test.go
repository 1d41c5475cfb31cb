package app

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/pkg/email"
	"github.com/Alijeyrad/dentclinic/pkg/events"
	svcsms "github.com/Alijeyrad/dentclinic/pkg/sms"
)

type fakeAppointmentGetter struct {
	appt *repo.Appointment
	err  error
}

func (f fakeAppointmentGetter) Get(context.Context, uuid.UUID, uuid.UUID) (*repo.Appointment, error) {
	return f.appt, f.err
}

type fakeClinicGetter struct{}

func (fakeClinicGetter) Get(_ context.Context, id uuid.UUID) (*repo.Clinic, error) {
	return &repo.Clinic{ID: id, Name: "Sonrisa"}, nil
}

type fakeMailer struct {
	enabled bool
	sent    []email.Message
	err     error
}

func (f *fakeMailer) Enabled() bool { return f.enabled }

func (f *fakeMailer) Send(_ context.Context, m email.Message) error {
	f.sent = append(f.sent, m)
	return f.err
}

type fakeTexter struct {
	enabled bool
	mobiles []string
	last    svcsms.AppointmentReminder
}

func (f *fakeTexter) IsEnabled() bool { return f.enabled }

func (f *fakeTexter) SendAppointmentReminder(_ context.Context, mobile string, r svcsms.AppointmentReminder) error {
	f.mobiles = append(f.mobiles, mobile)
	f.last = r
	return nil
}

func scheduledPayload(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(events.AppointmentScheduledEvent{AppointmentID: uuid.New(), ClinicID: uuid.New()})
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestNotifierHandleScheduled(t *testing.T) {
	loc := time.FixedZone("PYT", -3*3600)
	appt := &repo.Appointment{
		ID:          uuid.New(),
		ScheduledAt: time.Date(2026, 3, 4, 13, 30, 0, 0, time.UTC),
		Reason:      "limpieza",
		Edges: repo.AppointmentEdges{
			Patient:      &repo.Patient{FirstName: "Ana", LastName: "Gómez", Email: "ana@example.com", Phone: "+595981654321"},
			Professional: &repo.Professional{FirstName: "Luis", LastName: "Benítez", Specialty: "Ortodoncia"},
		},
	}

	tests := []struct {
		name      string
		mailOn    bool
		smsOn     bool
		mailErr   error
		wantMails int
		wantTexts int
		wantErr   bool
	}{
		{"both channels", true, true, nil, 1, 1, false},
		{"all disabled", false, false, nil, 0, 0, false},
		{"mail fails, sms still sent", true, true, errors.New("smtp down"), 1, 1, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail := &fakeMailer{enabled: tt.mailOn, err: tt.mailErr}
			texts := &fakeTexter{enabled: tt.smsOn}
			n := &notifier{
				appointments: fakeAppointmentGetter{appt: appt},
				clinics:      fakeClinicGetter{},
				mail:         mail,
				sms:          texts,
				loc:          loc,
			}

			err := n.handleScheduled(context.Background(), scheduledPayload(t))
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if len(mail.sent) != tt.wantMails || len(texts.mobiles) != tt.wantTexts {
				t.Fatalf("mails = %d, texts = %d", len(mail.sent), len(texts.mobiles))
			}
			if tt.wantTexts > 0 {
				if texts.last.Time != "10:30" || texts.last.Date != "04/03/2026" {
					t.Errorf("reminder time = %s %s, want clinic-local 04/03/2026 10:30", texts.last.Date, texts.last.Time)
				}
				if texts.last.ProfessionalName != "Luis Benítez" {
					t.Errorf("professional = %q", texts.last.ProfessionalName)
				}
			}
			if tt.wantMails > 0 && mail.sent[0].To[0] != "ana@example.com" {
				t.Errorf("mail to = %v", mail.sent[0].To)
			}
		})
	}
}

func TestNotifierHandleScheduledErrors(t *testing.T) {
	n := &notifier{
		appointments: fakeAppointmentGetter{err: &repo.NotFoundError{}},
		clinics:      fakeClinicGetter{},
		mail:         &fakeMailer{},
		sms:          &fakeTexter{},
		loc:          time.UTC,
	}
	if err := n.handleScheduled(context.Background(), scheduledPayload(t)); err == nil {
		t.Error("missing appointment: want error")
	}
	if err := n.handleScheduled(context.Background(), []byte("{")); err == nil {
		t.Error("malformed payload: want error")
	}

	n.appointments = fakeAppointmentGetter{appt: &repo.Appointment{ID: uuid.New()}}
	if err := n.handleScheduled(context.Background(), scheduledPayload(t)); err == nil {
		t.Error("appointment without parties: want error")
	}
}

func TestAuditHandlers(t *testing.T) {
	status, _ := json.Marshal(events.AppointmentStatusChanged{AppointmentID: uuid.New(), Status: "completed"})
	if err := logStatusChange(context.Background(), status); err != nil {
		t.Errorf("logStatusChange: %v", err)
	}
	tooth, _ := json.Marshal(events.ToothChanged{PatientID: uuid.New(), ToothNumber: 8, Condition: "caries"})
	if err := logToothChange(context.Background(), tooth); err != nil {
		t.Errorf("logToothChange: %v", err)
	}
	if err := logToothChange(context.Background(), []byte("x")); err == nil {
		t.Error("malformed tooth payload: want error")
	}
}
