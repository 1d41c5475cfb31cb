package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/pkg/email"
	"github.com/Alijeyrad/dentclinic/pkg/events"
	"github.com/Alijeyrad/dentclinic/pkg/observability"
	svcsms "github.com/Alijeyrad/dentclinic/pkg/sms"
)

const handlerTimeout = 30 * time.Second

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	NC      *nats.Conn `optional:"true"`
	DB      *repo.Client
	Email   *email.Client
	SMS     *svcsms.Client
	Metrics *observability.EventMetrics `optional:"true"`
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		slog.Info("workers: nats disabled, not subscribing")
		return
	}

	n := &notifier{
		appointments: p.DB.Appointment,
		clinics:      p.DB.Clinic,
		mail:         p.Email,
		sms:          p.SMS,
		loc:          p.Cfg.Clinic.Location(),
	}

	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			subscribe(p.NC, events.AppointmentScheduled, p.Metrics, n.handleScheduled)
			subscribe(p.NC, events.AppointmentStatus, p.Metrics, logStatusChange)
			subscribe(p.NC, events.ToothUpdated, p.Metrics, logToothChange)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain handled by ProvideNatsClient
			return nil
		},
	})
}

// subscribe runs handle for every message under root and counts the outcome.
func subscribe(nc *nats.Conn, root string, metrics *observability.EventMetrics, handle func(context.Context, []byte) error) {
	_, err := nc.Subscribe(events.Wildcard(root), func(msg *nats.Msg) {
		ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
		defer cancel()

		err := handle(ctx, msg.Data)
		metrics.Handled(ctx, root, err)
		if err != nil {
			slog.Warn("worker: handle event failed", "subject", msg.Subject, "err", err)
		}
	})
	if err != nil {
		slog.Error("worker: subscribe failed", "subject", events.Wildcard(root), "err", err)
		return
	}
	slog.Info("worker: subscribed", "subject", events.Wildcard(root))
}

// ---------------------------------------------------------------------------
// appointment confirmations
// ---------------------------------------------------------------------------

type appointmentGetter interface {
	Get(ctx context.Context, clinicID, id uuid.UUID) (*repo.Appointment, error)
}

type clinicGetter interface {
	Get(ctx context.Context, id uuid.UUID) (*repo.Clinic, error)
}

type mailer interface {
	Enabled() bool
	Send(ctx context.Context, m email.Message) error
}

type texter interface {
	IsEnabled() bool
	SendAppointmentReminder(ctx context.Context, mobile string, r svcsms.AppointmentReminder) error
}

// notifier confirms newly scheduled appointments to the patient by email
// and SMS, whichever are enabled and have an address on file.
type notifier struct {
	appointments appointmentGetter
	clinics      clinicGetter
	mail         mailer
	sms          texter
	loc          *time.Location
}

func (n *notifier) handleScheduled(ctx context.Context, data []byte) error {
	var ev events.AppointmentScheduledEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}

	appt, err := n.appointments.Get(ctx, ev.ClinicID, ev.AppointmentID)
	if err != nil {
		return fmt.Errorf("load appointment %s: %w", ev.AppointmentID, err)
	}
	pat, pro := appt.Edges.Patient, appt.Edges.Professional
	if pat == nil || pro == nil {
		return fmt.Errorf("appointment %s has no patient or professional", appt.ID)
	}
	cl, err := n.clinics.Get(ctx, ev.ClinicID)
	if err != nil {
		return fmt.Errorf("load clinic %s: %w", ev.ClinicID, err)
	}

	at := appt.ScheduledAt.In(n.loc)
	patientName := pat.FirstName + " " + pat.LastName
	professionalName := pro.FirstName + " " + pro.LastName

	var firstErr error
	if n.mail.Enabled() && pat.Email != "" {
		msg, err := email.BuildAppointmentEmail(email.AppointmentEmailData{
			To:               pat.Email,
			ClinicName:       cl.Name,
			PatientName:      patientName,
			ProfessionalName: professionalName,
			Specialty:        pro.Specialty,
			Date:             at.Format("02/01/2006"),
			Time:             at.Format("15:04"),
			Reason:           appt.Reason,
		})
		if err == nil {
			err = n.mail.Send(ctx, msg)
		}
		if err != nil {
			firstErr = fmt.Errorf("email confirmation: %w", err)
		}
	}

	if n.sms.IsEnabled() && pat.Phone != "" {
		err := n.sms.SendAppointmentReminder(ctx, pat.Phone, svcsms.AppointmentReminder{
			PatientName:      patientName,
			Date:             at.Format("02/01/2006"),
			Time:             at.Format("15:04"),
			ProfessionalName: professionalName,
		})
		if err != nil && firstErr == nil {
			firstErr = fmt.Errorf("sms confirmation: %w", err)
		}
	}

	return firstErr
}

// ---------------------------------------------------------------------------
// audit log
// ---------------------------------------------------------------------------

func logStatusChange(_ context.Context, data []byte) error {
	var ev events.AppointmentStatusChanged
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	slog.Info("appointment status changed",
		"clinic_id", ev.ClinicID,
		"appointment_id", ev.AppointmentID,
		"status", ev.Status,
	)
	return nil
}

func logToothChange(_ context.Context, data []byte) error {
	var ev events.ToothChanged
	if err := json.Unmarshal(data, &ev); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	slog.Info("tooth record updated",
		"patient_id", ev.PatientID,
		"tooth", ev.ToothNumber,
		"condition", ev.Condition,
	)
	return nil
}
