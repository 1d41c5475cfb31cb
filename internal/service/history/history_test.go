package history

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/odontogram"
)

type fakePatients map[uuid.UUID]*repo.Patient

func (f fakePatients) Get(_ context.Context, _, id uuid.UUID) (*repo.Patient, error) {
	p, ok := f[id]
	if !ok {
		return nil, &repo.NotFoundError{}
	}
	return p, nil
}

type fakeTreatments struct {
	rows []*repo.Treatment
	err  error
}

func (f fakeTreatments) ListByPatient(context.Context, uuid.UUID) ([]*repo.Treatment, error) {
	return f.rows, f.err
}

type fakeTeeth []*repo.ToothRecord

func (f fakeTeeth) ListByPatient(context.Context, uuid.UUID) ([]*repo.ToothRecord, error) {
	return f, nil
}

type fakeStudies []*repo.Study

func (f fakeStudies) ListByPatient(context.Context, uuid.UUID) ([]*repo.Study, error) { return f, nil }

type fakePrescriptions []*repo.Prescription

func (f fakePrescriptions) ListByPatient(context.Context, uuid.UUID) ([]*repo.Prescription, error) {
	return f, nil
}

type fakeRecords map[uuid.UUID]*repo.MedicalRecord

func (f fakeRecords) GetByPatient(_ context.Context, id uuid.UUID) (*repo.MedicalRecord, error) {
	r, ok := f[id]
	if !ok {
		return nil, &repo.NotFoundError{}
	}
	return r, nil
}

func TestGet(t *testing.T) {
	patientID := uuid.New()
	stores := Stores{
		Patients: fakePatients{patientID: {ID: patientID, FirstName: "Rosa"}},
		Treatments: fakeTreatments{rows: []*repo.Treatment{
			{Description: "Corona", Cost: 800000, Paid: false},
			{Description: "Limpieza", Cost: 150000, Paid: true},
			{Description: "Caries", Cost: 200000, Paid: false},
		}},
		ToothRecords:   fakeTeeth{{PatientID: patientID, ToothNumber: 8, Condition: "crown"}},
		Studies:        fakeStudies{{Kind: repo.StudyRadiograph}},
		Prescriptions:  fakePrescriptions{},
		MedicalRecords: fakeRecords{},
	}

	h, err := New(stores).Get(context.Background(), uuid.New(), patientID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if h.Balance != 1000000 {
		t.Errorf("Balance = %d, want 1000000", h.Balance)
	}
	if len(h.Chart.Teeth) != odontogram.TeethCount || h.Chart.Teeth[7].Condition != odontogram.Crown {
		t.Errorf("chart = %+v", h.Chart)
	}
	if h.MedicalRecord != nil {
		t.Errorf("MedicalRecord = %+v, want nil", h.MedicalRecord)
	}
	if len(h.Treatments) != 3 || len(h.Studies) != 1 {
		t.Errorf("treatments = %d, studies = %d", len(h.Treatments), len(h.Studies))
	}
}

func TestGetErrors(t *testing.T) {
	patientID := uuid.New()
	boom := errors.New("timeout")
	stores := Stores{
		Patients:       fakePatients{patientID: {ID: patientID}},
		Treatments:     fakeTreatments{err: boom},
		ToothRecords:   fakeTeeth{},
		Studies:        fakeStudies{},
		Prescriptions:  fakePrescriptions{},
		MedicalRecords: fakeRecords{},
	}
	svc := New(stores)

	if _, err := svc.Get(context.Background(), uuid.New(), uuid.New()); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("unknown patient err = %v", err)
	}
	if _, err := svc.Get(context.Background(), uuid.New(), patientID); !errors.Is(err, boom) {
		t.Errorf("store failure err = %v", err)
	}
}

func TestBalance(t *testing.T) {
	tests := []struct {
		name string
		in   []*repo.Treatment
		want int64
	}{
		{"none", nil, 0},
		{"all paid", []*repo.Treatment{{Cost: 5, Paid: true}}, 0},
		{"mixed", []*repo.Treatment{{Cost: 5, Paid: true}, {Cost: 7}, {Cost: 11}}, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Balance(tt.in); got != tt.want {
				t.Errorf("Balance = %d, want %d", got, tt.want)
			}
		})
	}
}
