package odontogram

import (
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/dentclinic/internal/repo"
)

// TeethCount is the number of positions in an adult chart.
const TeethCount = 32

// Quadrant groups positions by jaw side.
type Quadrant string

const (
	UpperRight Quadrant = "upper-right"
	UpperLeft  Quadrant = "upper-left"
	LowerLeft  Quadrant = "lower-left"
	LowerRight Quadrant = "lower-right"
)

// QuadrantOf returns the quadrant of position n: 1-8 upper right,
// 9-16 upper left, 17-24 lower left and 25-32 lower right.
func QuadrantOf(n int) Quadrant {
	switch {
	case n <= 8:
		return UpperRight
	case n <= 16:
		return UpperLeft
	case n <= 24:
		return LowerLeft
	default:
		return LowerRight
	}
}

// ValidPosition reports whether n is a chart position.
func ValidPosition(n int) bool {
	return n >= 1 && n <= TeethCount
}

// Tooth is one position of a chart as displayed.
type Tooth struct {
	Number    int        `json:"number"`
	Condition Condition  `json:"condition"`
	Treatment string     `json:"treatment"`
	Color     string     `json:"color"`
	Quadrant  Quadrant   `json:"quadrant"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func healthyTooth(n int) Tooth {
	return Tooth{Number: n, Condition: Healthy, Color: Healthy.Color(), Quadrant: QuadrantOf(n)}
}

func toothFromRecord(r *repo.ToothRecord) Tooth {
	t := healthyTooth(r.ToothNumber)
	if r.Condition != "" {
		t.Condition = Condition(r.Condition)
	}
	t.Color = t.Condition.Color()
	if r.Treatment != nil {
		t.Treatment = *r.Treatment
	}
	at := r.UpdatedAt
	t.UpdatedAt = &at
	return t
}

// Chart is the full 32-position chart of one patient, ordered by position.
type Chart struct {
	PatientID uuid.UUID `json:"patient_id"`
	Teeth     []Tooth   `json:"teeth"`
}

// BuildChart lays stored records over an all-healthy chart. Records with a
// position outside 1-32 are ignored.
func BuildChart(patientID uuid.UUID, records []*repo.ToothRecord) *Chart {
	c := &Chart{PatientID: patientID, Teeth: make([]Tooth, TeethCount)}
	for i := range c.Teeth {
		c.Teeth[i] = healthyTooth(i + 1)
	}
	for _, r := range records {
		if !ValidPosition(r.ToothNumber) {
			continue
		}
		c.Teeth[r.ToothNumber-1] = toothFromRecord(r)
	}
	return c
}

// Tooth returns position n.
func (c *Chart) Tooth(n int) (Tooth, bool) {
	if !ValidPosition(n) {
		return Tooth{}, false
	}
	return c.Teeth[n-1], true
}

func (c *Chart) clone() *Chart {
	out := &Chart{PatientID: c.PatientID, Teeth: make([]Tooth, len(c.Teeth))}
	copy(out.Teeth, c.Teeth)
	return out
}
