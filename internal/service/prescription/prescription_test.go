package prescription

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

type fakeStore struct {
	byCode  map[string]*repo.Prescription
	inserts int
}

func (f *fakeStore) Create(_ context.Context, in *repo.Prescription) (*repo.Prescription, error) {
	f.inserts++
	if _, taken := f.byCode[in.VerificationCode]; taken {
		return nil, &repo.ConstraintError{}
	}
	out := *in
	out.ID = uuid.New()
	f.byCode[out.VerificationCode] = &out
	return &out, nil
}

func (f *fakeStore) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*repo.Prescription, error) {
	var out []*repo.Prescription
	for _, p := range f.byCode {
		if p.PatientID == patientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) GetByCode(_ context.Context, code string) (*repo.Prescription, error) {
	p, ok := f.byCode[code]
	if !ok {
		return nil, &repo.NotFoundError{}
	}
	return p, nil
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

// sequence hands out the given codes in order and then repeats the last one.
type sequence struct {
	codes []string
	i     int
}

func (s *sequence) Generate() (string, error) {
	c := s.codes[min(s.i, len(s.codes)-1)]
	s.i++
	return c, nil
}

type env struct {
	svc       Service
	store     *fakeStore
	gen       *sequence
	clinicID  uuid.UUID
	patientID uuid.UUID
	profID    uuid.UUID
}

func newEnv(codes ...string) *env {
	e := &env{
		store:     &fakeStore{byCode: map[string]*repo.Prescription{}},
		gen:       &sequence{codes: codes},
		clinicID:  uuid.New(),
		patientID: uuid.New(),
		profID:    uuid.New(),
	}
	e.svc = New(e.store, fakePatients{e.patientID: true}, fakeProfessionals{e.profID: true}, e.gen)
	return e
}

func (e *env) request() CreateRequest {
	return CreateRequest{PatientID: e.patientID, ProfessionalID: e.profID, Medications: "Ibuprofeno 400mg"}
}

func TestCreateRetriesOnCodeCollision(t *testing.T) {
	e := newEnv("AAAA2222", "AAAA2222", "BBBB3333")
	ctx := context.Background()

	first, err := e.svc.Create(ctx, e.clinicID, e.request())
	if err != nil || first.VerificationCode != "AAAA2222" {
		t.Fatalf("first = %+v, %v", first, err)
	}
	second, err := e.svc.Create(ctx, e.clinicID, e.request())
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.VerificationCode != "BBBB3333" || e.store.inserts != 3 {
		t.Errorf("code = %s, inserts = %d", second.VerificationCode, e.store.inserts)
	}
}

func TestCreateGivesUpAfterRepeatedCollisions(t *testing.T) {
	e := newEnv("SAME")
	ctx := context.Background()
	if _, err := e.svc.Create(ctx, e.clinicID, e.request()); err != nil {
		t.Fatalf("first: %v", err)
	}
	if _, err := e.svc.Create(ctx, e.clinicID, e.request()); !errors.Is(err, ErrCodeExhausted) {
		t.Errorf("err = %v, want ErrCodeExhausted", err)
	}
}

func TestCreateValidation(t *testing.T) {
	e := newEnv("X")
	req := e.request()
	req.Medications = " "
	if _, err := e.svc.Create(context.Background(), e.clinicID, req); !errors.Is(err, validation.ErrInvalidInput) {
		t.Errorf("err = %v", err)
	}
	req = e.request()
	req.ProfessionalID = uuid.New()
	if _, err := e.svc.Create(context.Background(), e.clinicID, req); !errors.Is(err, ErrProfessionalNotFound) {
		t.Errorf("err = %v", err)
	}
	if e.store.inserts != 0 {
		t.Errorf("inserts = %d, want 0", e.store.inserts)
	}
}

func TestVerify(t *testing.T) {
	e := newEnv("ABCD2345")
	ctx := context.Background()
	if _, err := e.svc.Create(ctx, e.clinicID, e.request()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		code string
		want error
	}{
		{"ABCD2345", nil},
		{"abcd-2345", nil},
		{" ABCD 2345 ", nil},
		{"ZZZZ9999", ErrNotFound},
		{"--", validation.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			_, err := e.svc.Verify(ctx, tt.code)
			if !errors.Is(err, tt.want) {
				t.Errorf("Verify(%q) err = %v, want %v", tt.code, err, tt.want)
			}
		})
	}
}
