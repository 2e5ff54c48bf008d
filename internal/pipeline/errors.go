package pipeline

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/theirongolddev/lifeclock/internal/model"
)

// ErrExceeds24H is matched (via errors.Is) by every rejection caused by an
// allocation totalling more than 24 hours.
var ErrExceeds24H = errors.New("total hours exceed 24")

// ErrInvalidInput is matched by every boundary violation.
var ErrInvalidInput = errors.New("invalid input")

// RejectedError is returned instead of a projection when the allocation is
// infeasible. It carries the computed total for display.
type RejectedError struct {
	Total float64
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("total of %s hours exceeds 24", strconv.FormatFloat(e.Total, 'f', -1, 64))
}

// Is lets errors.Is(err, ErrExceeds24H) match.
func (e *RejectedError) Is(target error) bool {
	return target == ErrExceeds24H
}

// Rejection converts the error into the wire failure shape.
func (e *RejectedError) Rejection() model.Rejection {
	return model.Rejection{
		TotalHours: e.Total,
		Error:      model.ErrorCodeExceeds24H,
	}
}

// InputError reports a value outside its allowed range at the boundary.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrInvalidInput) match.
func (e *InputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// AsRejection extracts the failure shape from err when it is an
// infeasibility rejection.
func AsRejection(err error) (model.Rejection, bool) {
	var rej *RejectedError
	if errors.As(err, &rej) {
		return rej.Rejection(), true
	}
	return model.Rejection{}, false
}
