// Package pipeline derives chart-ready lifetime data from a daily allocation.
package pipeline

import "github.com/theirongolddev/lifeclock/internal/model"

// Validation is the live-total check run on every field edit and again,
// authoritatively, when a computation is triggered.
type Validation struct {
	Total    float64 `json:"totalHours"`
	Feasible bool    `json:"feasible"`
}

// Exceeds reports whether the total is over the 24-hour day.
func (v Validation) Exceeds() bool {
	return !v.Feasible
}

// Unallocated returns the hours of the day not assigned to any activity.
// Negative when the allocation is infeasible.
func (v Validation) Unallocated() float64 {
	return model.HoursPerDay - v.Total
}

// Validate sums the five fields (absent fields count as zero) and checks the
// total against the 24-hour day. Exactly 24 is feasible.
func Validate(al model.Allocation) Validation {
	var total float64
	for _, a := range model.Activities {
		total += al.Hours(a)
	}
	return Validation{
		Total:    total,
		Feasible: !(total > model.HoursPerDay),
	}
}
