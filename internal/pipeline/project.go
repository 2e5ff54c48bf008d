package pipeline

import "github.com/theirongolddev/lifeclock/internal/model"

// Project scales each activity's hours-per-day onto the days already lived
// and the days remaining in the lifespan. The fraction of each day spent on
// an activity is assumed constant across the whole life.
//
// An infeasible allocation returns *RejectedError and nothing is computed.
// Age is expected to be validated by the caller; see Compute.
func Project(al model.Allocation, age, lifespanYears int) (model.ActivityProjection, error) {
	v := Validate(al)
	if !v.Feasible {
		return model.ActivityProjection{}, &RejectedError{Total: v.Total}
	}

	livedSoFar := float64(age * model.DaysPerYear)
	remainingTotal := float64((lifespanYears - age) * model.DaysPerYear)

	p := model.ActivityProjection{
		Age:                age,
		LifespanYears:      lifespanYears,
		DaysLivedSoFar:     livedSoFar,
		DaysRemainingTotal: remainingTotal,
	}
	for i, a := range model.Activities {
		h := al.Hours(a)
		p.Activities[i] = model.ActivityDays{
			Activity:      a,
			HoursPerDay:   h,
			DaysLived:     h * livedSoFar / model.HoursPerDay,
			DaysRemaining: h * remainingTotal / model.HoursPerDay,
		}
	}
	return p, nil
}
