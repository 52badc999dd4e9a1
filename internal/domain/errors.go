package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("you do not have permission to perform this action")
)

// RangeError reports a row or seat outside the airplane layout. Bounds are inclusive.
type RangeError struct {
	Field string
	Min   int
	Max   int
	Value int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be in range %d-%d", e.Field, e.Min, e.Max)
}

// UniquenessError reports a seat that is already booked on a flight.
type UniquenessError struct {
	FlightID int64
	Row      int
	Seat     int
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) on flight %d is already booked", e.Row, e.Seat, e.FlightID)
}

// ReferentialError reports a referenced entity that does not exist.
type ReferentialError struct {
	Entity string
	ID     int64
}

func (e *ReferentialError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("referenced %s does not exist", e.Entity)
	}
	return fmt.Sprintf("%s %d does not exist", e.Entity, e.ID)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// IsClientError reports whether err should be surfaced to the caller as a validation failure.
func IsClientError(err error) bool {
	var (
		rangeErr *RangeError
		uniqErr  *UniquenessError
		refErr   *ReferentialError
		valErr   *ValidationError
	)
	return errors.As(err, &rangeErr) ||
		errors.As(err, &uniqErr) ||
		errors.As(err, &refErr) ||
		errors.As(err, &valErr)
}
