package domain

import (
	"fmt"
	"time"
)

// Date is a validated calendar date extracted from inspection text.
// The zero value means "no date".
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// NewDate builds a Date, reporting false when the components do not
// form a real calendar day (e.g. February 30th).
func NewDate(year, month, day int) (Date, bool) {
	if month < 1 || month > 12 || day < 1 {
		return Date{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, false
	}
	return Date{Year: year, Month: month, Day: day}, true
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time converts the date to a time.Time at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

// String returns an ISO-style representation for logs.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// RowRange is an inclusive block of 1-based dataset rows belonging to
// one calendar day.
type RowRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// DaySegment groups the dataset row ranges attributed to one date.
// Ranges are ordered and never overlap.
type DaySegment struct {
	Date   Date       `json:"date"`
	Ranges []RowRange `json:"ranges"`
}

// Field is a canonical field name extracted from the inspection report.
type Field string

const (
	FieldEngagementNumber   Field = "engagement_number"
	FieldProjectName        Field = "project_name"
	FieldInspectionLocation Field = "inspection_location"
	FieldMaterial           Field = "material"
	FieldProbeModel         Field = "probe_model"
	FieldInspectionDate     Field = "inspection_date"
	FieldQualityGrade       Field = "quality_grade"
	FieldAppliedStandards   Field = "applied_standards"
	FieldRawDateContext     Field = "raw_date_context"
)

// FieldMap maps canonical field names to extracted string values.
// A missing key means the field was not found; that is never an error.
type FieldMap map[Field]string

// Get returns the value for f, or "" when absent.
func (m FieldMap) Get(f Field) string {
	return m[f]
}

// Has reports whether f was extracted.
func (m FieldMap) Has(f Field) bool {
	_, ok := m[f]
	return ok
}

// WeldType is the weld-joint geometry driving probe selection.
type WeldType string

const (
	WeldTypeButt       WeldType = "butt"
	WeldTypeCornerButt WeldType = "corner-butt"
)

// ProbeInterval is one half-open thickness band [Min, Max) mapped to an
// ordered list of probe model identifiers. The last interval of a rule
// list is treated as unbounded above regardless of Max.
type ProbeInterval struct {
	Min    float64  `json:"min" yaml:"min"`
	Max    float64  `json:"max" yaml:"max"`
	Models []string `json:"models" yaml:"models"`
}

// ProbeRuleSet maps weld types to their ordered interval tables.
// Matching is first-interval-wins in table order.
type ProbeRuleSet map[WeldType][]ProbeInterval

// BasisSlot identifies one fixed output slot for a regulatory basis code.
type BasisSlot string

const (
	SlotGB50205    BasisSlot = "gb50205"
	SlotGB50661    BasisSlot = "gb50661"
	SlotJGT203     BasisSlot = "jgt203"
	SlotGBT50621   BasisSlot = "gbt50621"
	SlotGBT11345   BasisSlot = "gbt11345"
	SlotGBT29712   BasisSlot = "gbt29712"
	SlotGBT29711   BasisSlot = "gbt29711"
	SlotBasisOther BasisSlot = "other"
)

// BasisSlots lists every slot in template order, catch-all last.
var BasisSlots = []BasisSlot{
	SlotGB50205, SlotGB50661, SlotJGT203, SlotGBT50621,
	SlotGBT11345, SlotGBT29712, SlotGBT29711, SlotBasisOther,
}
