package model

import "math"

// Fixed horizon and boundary constants.
const (
	HoursPerDay   = 24.0
	DaysPerYear   = 365
	LifespanYears = 80
	MinAge        = 1
	MaxAge        = 100
)

// Allocation is the hours-per-day breakdown a user submits. A nil field is
// an absent value and counts as zero everywhere. Infeasible allocations
// (sum above 24) are kept as entered so they can be corrected.
type Allocation struct {
	Sleep    *float64 `json:"sleep" toml:"sleep,omitempty"`
	Work     *float64 `json:"work" toml:"work,omitempty"`
	Phone    *float64 `json:"phone" toml:"phone,omitempty"`
	Exercise *float64 `json:"exercise" toml:"exercise,omitempty"`
	Others   *float64 `json:"others" toml:"others,omitempty"`
}

// Hours returns a pointer to v, for building allocations inline.
func Hours(v float64) *float64 {
	return &v
}

// NewAllocation builds an allocation with every field present.
func NewAllocation(sleep, work, phone, exercise, others float64) Allocation {
	return Allocation{
		Sleep:    Hours(sleep),
		Work:     Hours(work),
		Phone:    Hours(phone),
		Exercise: Hours(exercise),
		Others:   Hours(others),
	}
}

// Field returns the raw (possibly nil) value for an activity.
func (al Allocation) Field(a Activity) *float64 {
	switch a {
	case Sleep:
		return al.Sleep
	case Work:
		return al.Work
	case Phone:
		return al.Phone
	case Exercise:
		return al.Exercise
	case Others:
		return al.Others
	}
	return nil
}

// Set replaces the value for an activity. A nil v clears the field.
func (al *Allocation) Set(a Activity, v *float64) {
	switch a {
	case Sleep:
		al.Sleep = v
	case Work:
		al.Work = v
	case Phone:
		al.Phone = v
	case Exercise:
		al.Exercise = v
	case Others:
		al.Others = v
	}
}

// Hours returns the null-coalesced hours for an activity. Absent and NaN
// values read as zero.
func (al Allocation) Hours(a Activity) float64 {
	p := al.Field(a)
	if p == nil || math.IsNaN(*p) {
		return 0
	}
	return *p
}

// Clone returns a deep copy so callers can keep a snapshot while the
// original keeps being edited.
func (al Allocation) Clone() Allocation {
	var out Allocation
	for _, a := range Activities {
		if p := al.Field(a); p != nil {
			out.Set(a, Hours(*p))
		}
	}
	return out
}

// Profile holds the user's current age in whole years.
type Profile struct {
	Age int `json:"age" toml:"age"`
}

// Valid reports whether the age is within [MinAge, MaxAge].
func (p Profile) Valid() bool {
	return p.Age >= MinAge && p.Age <= MaxAge
}
