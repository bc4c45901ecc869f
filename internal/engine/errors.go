package engine

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed calculation input: weights that do not
// sum to 1.0, out-of-range scores, or an unknown calculation method.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// MissingDataError marks a track with no usable assessments. Callers
// degrade to an unknown rating instead of failing the calculation; the
// error type exists so they can tell the cases apart.
type MissingDataError struct {
	Track string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("no assessments for track %q", e.Track)
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsMissingData(err error) bool {
	var me *MissingDataError
	return errors.As(err, &me)
}
