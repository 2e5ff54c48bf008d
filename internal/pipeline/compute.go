package pipeline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/theirongolddev/lifeclock/internal/model"
)

// Compute is the single entry point presentation adapters call on an
// explicit trigger. It re-checks the boundary constraints, runs the
// feasibility gate and, on success, assembles everything the charts need.
//
// Errors: *InputError for out-of-range values, *RejectedError when the
// allocation totals more than 24 hours.
func Compute(al model.Allocation, age int) (*model.Dashboard, error) {
	if err := CheckBounds(al, age); err != nil {
		return nil, err
	}

	v := Validate(al)
	proj, err := Project(al, age, model.LifespanYears)
	if err != nil {
		return nil, err
	}

	yearsLeft := model.LifespanYears - age
	progress := float64(age) / float64(model.LifespanYears)
	if progress > 1 {
		progress = 1
	}

	return &model.Dashboard{
		TotalHours: v.Total,
		Projection: proj,
		GaugeBands: GaugeBands(model.LifespanYears),
		Summary: model.Summary{
			Age:              age,
			YearsLeft:        yearsLeft,
			DaysLeft:         yearsLeft * model.DaysPerYear,
			UnallocatedHours: v.Unallocated(),
			AgeDelta:         float64(age) - float64(model.LifespanYears)/2,
			LifeProgress:     progress,
		},
	}, nil
}

// CheckBounds enforces the input boundary: age in [MinAge, MaxAge] and each
// present activity value in [0, 24]. Absent and NaN values pass, since they
// read as zero.
func CheckBounds(al model.Allocation, age int) error {
	if !(model.Profile{Age: age}).Valid() {
		return &InputError{
			Field:  "age",
			Reason: fmt.Sprintf("%d is outside [%d, %d]", age, model.MinAge, model.MaxAge),
		}
	}
	for _, a := range model.Activities {
		p := al.Field(a)
		if p == nil || math.IsNaN(*p) {
			continue
		}
		if *p < 0 || *p > model.HoursPerDay {
			return &InputError{
				Field:  a.Key(),
				Reason: fmt.Sprintf("%s is outside [0, 24]", strconv.FormatFloat(*p, 'f', -1, 64)),
			}
		}
	}
	return nil
}

// ParseHours reads a user-typed hours value. Blank or unparseable input
// yields nil, which every computation treats as zero.
func ParseHours(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) {
		return nil
	}
	return &v
}

// ParseAge reads a user-typed age. Unlike hours, age has no neutral default
// so a blank or non-integer value is an input error.
func ParseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, &InputError{Field: "age", Reason: "value is required"}
	}
	age, err := strconv.Atoi(s)
	if err != nil {
		return 0, &InputError{Field: "age", Reason: fmt.Sprintf("%q is not a whole number", s)}
	}
	return age, nil
}
