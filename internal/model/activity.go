// Package model defines domain types for lifeclock allocations and projections.
package model

import "fmt"

// Activity identifies one of the five tracked daily activities.
type Activity int

// Activities in display order. The order is also the index order used by
// ActivityProjection.Activities.
const (
	Sleep Activity = iota
	Work
	Phone
	Exercise
	Others
)

// ActivityCount is the number of tracked activities.
const ActivityCount = 5

// Activities lists every activity in display order.
var Activities = [ActivityCount]Activity{Sleep, Work, Phone, Exercise, Others}

var activityLabels = [ActivityCount]string{"Sleep", "Work", "Phone", "Exercise", "Others"}

var activityKeys = [ActivityCount]string{"sleep", "work", "phone", "exercise", "others"}

// String returns the display label ("Sleep", "Work", ...).
func (a Activity) String() string {
	if !a.valid() {
		return fmt.Sprintf("Activity(%d)", int(a))
	}
	return activityLabels[a]
}

// Key returns the lower-case identifier used in JSON, TOML and flags.
func (a Activity) Key() string {
	if !a.valid() {
		return ""
	}
	return activityKeys[a]
}

func (a Activity) valid() bool {
	return a >= 0 && int(a) < ActivityCount
}

// ParseActivity resolves a key such as "sleep" back to its Activity.
func ParseActivity(key string) (Activity, bool) {
	for i, k := range activityKeys {
		if k == key {
			return Activity(i), true
		}
	}
	return 0, false
}

// MarshalText implements encoding.TextMarshaler.
func (a Activity) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, fmt.Errorf("unknown activity %d", int(a))
	}
	return []byte(a.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Activity) UnmarshalText(text []byte) error {
	parsed, ok := ParseActivity(string(text))
	if !ok {
		return fmt.Errorf("unknown activity %q", text)
	}
	*a = parsed
	return nil
}
