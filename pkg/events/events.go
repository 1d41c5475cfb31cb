// Package events names the NATS subjects the application publishes and
// provides a publisher abstraction that can be disabled.
package events

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Subject roots. The full subject appends the ID of the affected row.
const (
	AppointmentScheduled = "dentclinic.appointment.scheduled"
	AppointmentStatus    = "dentclinic.appointment.status"
	ToothUpdated         = "dentclinic.tooth.updated"
)

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Nop discards every message. It is used when no NATS URL is configured.
type Nop struct{}

func (Nop) Publish(string, []byte) error { return nil }

// Subject returns root.<id>.
func Subject(root string, id uuid.UUID) string {
	return root + "." + id.String()
}

// Wildcard returns the subscription subject matching every ID under root.
func Wildcard(root string) string {
	return root + ".*"
}

// IDFromSubject parses the trailing ID segment of a subject built by Subject.
func IDFromSubject(subject string) (uuid.UUID, error) {
	i := strings.LastIndexByte(subject, '.')
	if i < 0 {
		return uuid.Nil, fmt.Errorf("subject %q has no id segment", subject)
	}
	return uuid.Parse(subject[i+1:])
}

// AppointmentStatusChanged is the payload of AppointmentStatus.
type AppointmentStatusChanged struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ClinicID      uuid.UUID `json:"clinic_id"`
	Status        string    `json:"status"`
}

// AppointmentScheduledEvent is the payload of AppointmentScheduled.
type AppointmentScheduledEvent struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ClinicID      uuid.UUID `json:"clinic_id"`
}

// ToothChanged is the payload of ToothUpdated.
type ToothChanged struct {
	PatientID   uuid.UUID `json:"patient_id"`
	ToothNumber int       `json:"tooth_number"`
	Condition   string    `json:"condition"`
	Treatment   string    `json:"treatment,omitempty"`
}

// PublishJSON encodes v and publishes it on subject.
func PublishJSON(p Publisher, subject string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", subject, err)
	}
	if err := p.Publish(subject, data); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}
