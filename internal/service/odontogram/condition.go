package odontogram

// Condition is the clinical state of one tooth.
type Condition string

const (
	Healthy    Condition = "healthy"
	Caries     Condition = "caries"
	Filled     Condition = "filled"
	Crown      Condition = "crown"
	Extraction Condition = "extraction"
	Implant    Condition = "implant"
	RootCanal  Condition = "root-canal"
	Missing    Condition = "missing"
)

// conditions is the canonical legend order.
var conditions = []struct {
	condition Condition
	label     string
	color     string
}{
	{Healthy, "Sano", "#10b981"},
	{Caries, "Caries", "#f59e0b"},
	{Filled, "Obturado", "#6366f1"},
	{Crown, "Corona", "#8b5cf6"},
	{Extraction, "Extracción", "#ef4444"},
	{Implant, "Implante", "#06b6d4"},
	{RootCanal, "Endodoncia", "#f97316"},
	{Missing, "Ausente", "#6b7280"},
}

// Valid reports whether c is one of the eight known conditions.
func (c Condition) Valid() bool {
	for _, e := range conditions {
		if e.condition == c {
			return true
		}
	}
	return false
}

// Color returns the display color of c. Unknown conditions get the healthy color.
func (c Condition) Color() string {
	for _, e := range conditions {
		if e.condition == c {
			return e.color
		}
	}
	return conditions[0].color
}

// LegendEntry is one row of the chart legend.
type LegendEntry struct {
	Condition Condition `json:"condition"`
	Label     string    `json:"label"`
	Color     string    `json:"color"`
}

// Legend lists every condition with its label and color, in canonical order.
func Legend() []LegendEntry {
	out := make([]LegendEntry, len(conditions))
	for i, e := range conditions {
		out[i] = LegendEntry{Condition: e.condition, Label: e.label, Color: e.color}
	}
	return out
}
