package patient

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/config"
	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
	"github.com/Alijeyrad/dentclinic/pkg/phone"
)

type fakeStore struct {
	rows    map[uuid.UUID]*repo.Patient
	writes  int
	filters []repo.PatientFilter
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uuid.UUID]*repo.Patient{}}
}

func (f *fakeStore) Create(_ context.Context, in *repo.Patient) (*repo.Patient, error) {
	f.writes++
	out := *in
	out.ID = uuid.New()
	f.rows[out.ID] = &out
	cp := out
	return &cp, nil
}

func (f *fakeStore) Get(_ context.Context, clinicID, id uuid.UUID) (*repo.Patient, error) {
	p, ok := f.rows[id]
	if !ok || p.ClinicID != clinicID {
		return nil, &repo.NotFoundError{}
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) Exists(_ context.Context, clinicID, id uuid.UUID) (bool, error) {
	p, ok := f.rows[id]
	return ok && p.ClinicID == clinicID, nil
}

func (f *fakeStore) List(_ context.Context, clinicID uuid.UUID, flt repo.PatientFilter) ([]*repo.Patient, error) {
	f.filters = append(f.filters, flt)
	var out []*repo.Patient
	for _, p := range f.rows {
		if p.ClinicID == clinicID && strings.Contains(strings.ToLower(p.FirstName+" "+p.LastName), strings.ToLower(flt.Search)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, in *repo.Patient) error {
	f.writes++
	cp := *in
	f.rows[in.ID] = &cp
	return nil
}

type fakeRecords map[uuid.UUID]*repo.MedicalRecord

func (f fakeRecords) GetByPatient(_ context.Context, patientID uuid.UUID) (*repo.MedicalRecord, error) {
	r, ok := f[patientID]
	if !ok {
		return nil, &repo.NotFoundError{}
	}
	return r, nil
}

func (f fakeRecords) Upsert(_ context.Context, in *repo.MedicalRecord) (*repo.MedicalRecord, error) {
	cp := *in
	if prev, ok := f[in.PatientID]; ok {
		cp.ID = prev.ID
	} else {
		cp.ID = uuid.New()
	}
	f[in.PatientID] = &cp
	return &cp, nil
}

func newService(store *fakeStore) *patientService {
	svc := New(store, fakeRecords{}, phone.NewNormalizer("PY"), config.ClinicConfig{}).(*patientService)
	svc.now = func() time.Time { return time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateValidation(t *testing.T) {
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name  string
		req   CreateRequest
		field string
	}{
		{"missing first name", CreateRequest{LastName: "Gómez"}, "first_name"},
		{"missing last name", CreateRequest{FirstName: "Luis", LastName: " "}, "last_name"},
		{"future birth date", CreateRequest{FirstName: "Luis", LastName: "Gómez", BirthDate: &future}, "birth_date"},
		{"bad phone", CreateRequest{FirstName: "Luis", LastName: "Gómez", Phone: "phone"}, "phone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			_, err := newService(store).Create(context.Background(), uuid.New(), tt.req)
			fields := validation.Fields(err)
			if len(fields) != 1 || fields[0].Field != tt.field {
				t.Fatalf("err = %v, want field %s", err, tt.field)
			}
			if store.writes != 0 {
				t.Errorf("writes = %d, want 0", store.writes)
			}
		})
	}
}

func TestCreateWithGuardian(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	ctx := context.Background()
	clinicID := uuid.New()

	parent, err := svc.Create(ctx, clinicID, CreateRequest{FirstName: "María", LastName: "Ortiz", Phone: "+595 981 123456"})
	if err != nil {
		t.Fatalf("Create parent: %v", err)
	}
	if parent.Phone != "+595981123456" {
		t.Errorf("phone = %s", parent.Phone)
	}

	child, err := svc.Create(ctx, clinicID, CreateRequest{FirstName: "Sofía", LastName: "Ortiz", GuardianID: &parent.ID})
	if err != nil {
		t.Fatalf("Create child: %v", err)
	}
	if child.GuardianID == nil || *child.GuardianID != parent.ID {
		t.Errorf("guardian = %v", child.GuardianID)
	}

	stranger := uuid.New()
	if _, err := svc.Create(ctx, clinicID, CreateRequest{FirstName: "A", LastName: "B", GuardianID: &stranger}); !errors.Is(err, ErrGuardianNotFound) {
		t.Errorf("unknown guardian err = %v", err)
	}
}

func TestListUsesLimitAndSearch(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	ctx := context.Background()
	clinicID := uuid.New()
	_, _ = svc.Create(ctx, clinicID, CreateRequest{FirstName: "Carlos", LastName: "Rojas"})
	_, _ = svc.Create(ctx, clinicID, CreateRequest{FirstName: "Elena", LastName: "Duarte"})

	list, err := svc.List(ctx, clinicID, "  rojas ")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].FirstName != "Carlos" {
		t.Errorf("list = %v", list)
	}
	if f := store.filters[0]; f.Limit != 1000 || f.Search != "rojas" {
		t.Errorf("filter = %+v", f)
	}
}

func TestUpdate(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	ctx := context.Background()
	clinicID := uuid.New()
	p, _ := svc.Create(ctx, clinicID, CreateRequest{FirstName: "Carlos", LastName: "Rojas"})

	addr := "Av. Mariscal López 1234"
	debt := int64(150000)
	got, err := svc.Update(ctx, clinicID, p.ID, UpdateRequest{Address: &addr, DebtBalance: &debt})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Address != addr || got.DebtBalance != debt || got.FirstName != "Carlos" {
		t.Errorf("updated = %+v", got)
	}

	if _, err := svc.Update(ctx, clinicID, p.ID, UpdateRequest{GuardianID: &p.ID}); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("self guardian err = %v", err)
	}
	if _, err := svc.Update(ctx, uuid.New(), p.ID, UpdateRequest{}); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("other clinic err = %v", err)
	}
}

func TestMedicalRecord(t *testing.T) {
	store := newFakeStore()
	svc := newService(store)
	ctx := context.Background()
	clinicID := uuid.New()
	p, _ := svc.Create(ctx, clinicID, CreateRequest{FirstName: "Carlos", LastName: "Rojas"})

	if _, err := svc.GetMedicalRecord(ctx, clinicID, p.ID); !errors.Is(err, ErrMedicalRecordNotFound) {
		t.Fatalf("missing record err = %v", err)
	}
	first, err := svc.SaveMedicalRecord(ctx, clinicID, p.ID, MedicalRecordRequest{Allergies: " penicilina "})
	if err != nil {
		t.Fatalf("SaveMedicalRecord: %v", err)
	}
	second, _ := svc.SaveMedicalRecord(ctx, clinicID, p.ID, MedicalRecordRequest{Allergies: "ninguna"})
	if first.ID != second.ID {
		t.Error("second save created a new record")
	}
	got, err := svc.GetMedicalRecord(ctx, clinicID, p.ID)
	if err != nil || got.Allergies != "ninguna" {
		t.Errorf("record = %+v, %v", got, err)
	}
	if _, err := svc.SaveMedicalRecord(ctx, clinicID, uuid.New(), MedicalRecordRequest{}); !errors.Is(err, ErrPatientNotFound) {
		t.Errorf("unknown patient err = %v", err)
	}
}
