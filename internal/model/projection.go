package model

import "fmt"

// ActivityDays is the projection for a single activity.
type ActivityDays struct {
	Activity      Activity `json:"activity"`
	HoursPerDay   float64  `json:"hoursPerDay"`
	DaysLived     float64  `json:"daysLived"`
	DaysRemaining float64  `json:"daysRemaining"`
}

// ActivityProjection is the derived, read-only result of one projection.
// DaysLivedSoFar and DaysRemainingTotal are the whole-lifespan denominators
// shared by every activity.
type ActivityProjection struct {
	Age                int                         `json:"age"`
	LifespanYears      int                         `json:"lifespanYears"`
	DaysLivedSoFar     float64                     `json:"daysLivedSoFar"`
	DaysRemainingTotal float64                     `json:"daysRemainingTotal"`
	Activities         [ActivityCount]ActivityDays `json:"activities"`
}

// For returns the projection entry for one activity.
func (p ActivityProjection) For(a Activity) ActivityDays {
	return p.Activities[a]
}

// Series returns one value per activity in display order, for chart input.
func (p ActivityProjection) Series(pick func(ActivityDays) float64) []float64 {
	out := make([]float64, ActivityCount)
	for i, d := range p.Activities {
		out[i] = pick(d)
	}
	return out
}

// Severity grades a gauge band from low to high.
type Severity int

// Severities in ascending order.
const (
	SeverityLow Severity = iota
	SeverityModerate
	SeverityElevated
	SeverityHigh
)

var severityNames = [...]string{"low", "moderate", "elevated", "high"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Severity) UnmarshalText(text []byte) error {
	for i, name := range severityNames {
		if name == string(text) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown severity %q", text)
}

// Band is one colored range of the life-progress gauge. Bands are
// half-open [Low, High) except the last, which includes High.
type Band struct {
	Low           float64  `json:"low"`
	High          float64  `json:"high"`
	HighInclusive bool     `json:"highInclusive"`
	Severity      Severity `json:"severity"`
}

// Contains reports whether v falls inside the band.
func (b Band) Contains(v float64) bool {
	if v < b.Low {
		return false
	}
	if b.HighInclusive {
		return v <= b.High
	}
	return v < b.High
}

// Summary carries the headline figures shown above the charts.
type Summary struct {
	Age              int     `json:"age"`
	YearsLeft        int     `json:"yearsLeft"`
	DaysLeft         int     `json:"daysLeft"`
	UnallocatedHours float64 `json:"unallocatedHours"`
	// AgeDelta is age minus half the lifespan.
	AgeDelta float64 `json:"ageDelta"`
	// LifeProgress is age / lifespan, clamped to [0, 1].
	LifeProgress float64 `json:"lifeProgress"`
}

// Dashboard is the success output handed to presentation adapters.
type Dashboard struct {
	TotalHours float64            `json:"totalHours"`
	Projection ActivityProjection `json:"projection"`
	GaugeBands [4]Band            `json:"gaugeBands"`
	Summary    Summary            `json:"summary"`
}

// ErrorCodeExceeds24H is the wire code for an infeasible allocation.
const ErrorCodeExceeds24H = "EXCEEDS_24H"

// Rejection is the failure output: the offending total and an error code.
type Rejection struct {
	TotalHours float64 `json:"totalHours"`
	Error      string  `json:"error"`
}
