package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
)

type recorder struct {
	subject string
	data    []byte
	err     error
}

func (r *recorder) Publish(subject string, data []byte) error {
	r.subject, r.data = subject, data
	return r.err
}

func TestSubjectRoundTrip(t *testing.T) {
	id := uuid.New()
	subj := Subject(ToothUpdated, id)
	if subj != "dentclinic.tooth.updated."+id.String() {
		t.Fatalf("Subject = %q", subj)
	}
	got, err := IDFromSubject(subj)
	if err != nil || got != id {
		t.Fatalf("IDFromSubject = %v, %v; want %v", got, err, id)
	}
	if _, err := IDFromSubject("nodots"); err == nil {
		t.Error("IDFromSubject without dots should fail")
	}
	if Wildcard(AppointmentStatus) != "dentclinic.appointment.status.*" {
		t.Errorf("Wildcard = %q", Wildcard(AppointmentStatus))
	}
}

func TestPublishJSON(t *testing.T) {
	r := &recorder{}
	ev := ToothChanged{PatientID: uuid.New(), ToothNumber: 8, Condition: "crown"}
	if err := PublishJSON(r, "s", ev); err != nil {
		t.Fatalf("PublishJSON: %v", err)
	}
	var back ToothChanged
	if err := json.Unmarshal(r.data, &back); err != nil || back != ev {
		t.Fatalf("payload = %s (%v)", r.data, err)
	}

	r.err = errors.New("down")
	if err := PublishJSON(r, "s", ev); err == nil {
		t.Error("publisher error was swallowed")
	}
}
