package odontogram

import (
	"context"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/service/validation"
)

// Mode controls whether an Editor accepts edits.
type Mode int

const (
	ReadOnly Mode = iota
	Editable
)

// Staged holds the fields being edited for the selected tooth.
type Staged struct {
	Number    int
	Condition Condition
	Treatment string
}

// Editor is one interactive chart session. It keeps the loaded chart in
// memory and applies each successful save to that single position only.
// An Editor is not safe for concurrent use.
type Editor struct {
	svc       Service
	clinicID  uuid.UUID
	patientID uuid.UUID
	mode      Mode

	chart     *Chart
	modalOpen bool
	staged    Staged
}

// OpenEditor loads the patient's chart and returns an editor in mode.
// A load failure is returned and no editor is created.
func OpenEditor(ctx context.Context, svc Service, clinicID, patientID uuid.UUID, mode Mode) (*Editor, error) {
	chart, err := svc.Load(ctx, clinicID, patientID)
	if err != nil {
		return nil, err
	}
	return &Editor{svc: svc, clinicID: clinicID, patientID: patientID, mode: mode, chart: chart}, nil
}

// Chart returns a copy of the in-memory chart.
func (e *Editor) Chart() *Chart {
	return e.chart.clone()
}

func (e *Editor) Mode() Mode {
	return e.mode
}

// ModalOpen reports whether a tooth is currently selected for editing.
func (e *Editor) ModalOpen() bool {
	return e.modalOpen
}

// Staged returns the fields being edited and whether the modal is open.
func (e *Editor) Staged() (Staged, bool) {
	return e.staged, e.modalOpen
}

// Select stages tooth n for editing and opens the modal. In read-only mode
// it does nothing.
func (e *Editor) Select(n int) error {
	if e.mode == ReadOnly {
		return nil
	}
	t, ok := e.chart.Tooth(n)
	if !ok {
		var v validation.Errors
		v.Add("tooth_number", "must be between 1 and 32")
		return v.Err()
	}
	e.staged = Staged{Number: t.Number, Condition: t.Condition, Treatment: t.Treatment}
	e.modalOpen = true
	return nil
}

// SetCondition changes the staged condition.
func (e *Editor) SetCondition(c Condition) error {
	if !e.modalOpen {
		return ErrNothingSelected
	}
	e.staged.Condition = c
	return nil
}

// SetTreatment changes the staged treatment text.
func (e *Editor) SetTreatment(text string) error {
	if !e.modalOpen {
		return ErrNothingSelected
	}
	e.staged.Treatment = text
	return nil
}

// Save persists the staged fields. On success only the saved position of the
// in-memory chart changes and the modal closes. On failure the chart is left
// untouched, the modal stays open and the error is returned.
func (e *Editor) Save(ctx context.Context) error {
	if e.mode == ReadOnly {
		return ErrReadOnly
	}
	if !e.modalOpen {
		return ErrNothingSelected
	}

	saved, err := e.svc.SaveTooth(ctx, e.clinicID, e.patientID, SaveToothRequest{
		Number:    e.staged.Number,
		Condition: string(e.staged.Condition),
		Treatment: e.staged.Treatment,
	})
	if err != nil {
		return err
	}

	e.chart.Teeth[saved.Number-1] = *saved
	e.modalOpen = false
	e.staged = Staged{}
	return nil
}

// Cancel closes the modal and discards the staged fields.
func (e *Editor) Cancel() {
	e.modalOpen = false
	e.staged = Staged{}
}

// Legend lists the conditions offered by the editor.
func (e *Editor) Legend() []LegendEntry {
	return e.svc.Legend()
}
