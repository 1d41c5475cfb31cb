package treatment

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type fakeStore struct {
	rows    map[uuid.UUID]*repo.Treatment
	creates int
}

func (f *fakeStore) Create(_ context.Context, in *repo.Treatment) (*repo.Treatment, error) {
	f.creates++
	out := *in
	out.ID = uuid.New()
	f.rows[out.ID] = &out
	cp := out
	return &cp, nil
}

func (f *fakeStore) Get(_ context.Context, clinicID, id uuid.UUID) (*repo.Treatment, error) {
	t, ok := f.rows[id]
	if !ok || t.ClinicID != clinicID {
		return nil, &repo.NotFoundError{}
	}
	cp := *t
	return &cp, nil
}

func (f *fakeStore) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*repo.Treatment, error) {
	var out []*repo.Treatment
	for _, t := range f.rows {
		if t.PatientID == patientID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeStore) SetPaid(_ context.Context, clinicID, id uuid.UUID, paid bool) error {
	t, ok := f.rows[id]
	if !ok || t.ClinicID != clinicID {
		return &repo.NotFoundError{}
	}
	t.Paid = paid
	return nil
}

type fakePatients map[uuid.UUID]bool

func (f fakePatients) Exists(_ context.Context, _, id uuid.UUID) (bool, error) { return f[id], nil }

type fakeProfessionals map[uuid.UUID]bool

func (f fakeProfessionals) Get(_ context.Context, _, id uuid.UUID) (*repo.Professional, error) {
	if !f[id] {
		return nil, &repo.NotFoundError{}
	}
	return &repo.Professional{ID: id}, nil
}

func TestCreateAndPay(t *testing.T) {
	patientID, profID, clinicID := uuid.New(), uuid.New(), uuid.New()
	store := &fakeStore{rows: map[uuid.UUID]*repo.Treatment{}}
	svc := New(store, fakePatients{patientID: true}, fakeProfessionals{profID: true})
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"missing description", CreateRequest{PatientID: patientID, ProfessionalID: profID, Cost: 10}, validation.ErrInvalidInput},
		{"negative cost", CreateRequest{PatientID: patientID, ProfessionalID: profID, Description: "x", Cost: -1}, validation.ErrInvalidInput},
		{"unknown patient", CreateRequest{PatientID: uuid.New(), ProfessionalID: profID, Description: "x"}, ErrPatientNotFound},
		{"unknown professional", CreateRequest{PatientID: patientID, ProfessionalID: uuid.New(), Description: "x"}, ErrProfessionalNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, clinicID, tt.req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if store.creates != 0 {
		t.Fatalf("creates = %d, want 0", store.creates)
	}

	tr, err := svc.Create(ctx, clinicID, CreateRequest{PatientID: patientID, ProfessionalID: profID, Description: " Limpieza ", Cost: 0})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tr.Description != "Limpieza" || tr.Paid {
		t.Errorf("created = %+v", tr)
	}

	paid, err := svc.SetPaid(ctx, clinicID, tr.ID, true)
	if err != nil || !paid.Paid {
		t.Fatalf("SetPaid = %+v, %v", paid, err)
	}
	if _, err := svc.SetPaid(ctx, uuid.New(), tr.ID, true); !errors.Is(err, ErrNotFound) {
		t.Errorf("other clinic err = %v", err)
	}

	list, err := svc.ListByPatient(ctx, clinicID, patientID)
	if err != nil || len(list) != 1 {
		t.Errorf("ListByPatient = %v, %v", list, err)
	}
	if _, err := svc.ListByPatient(ctx, clinicID, uuid.New()); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("unknown patient list err = %v", err)
	}
}
