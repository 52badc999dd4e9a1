package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTicketPlacement_Bounds(t *testing.T) {
	airplane := Airplane{Rows: 20, SeatsInRow: 6}

	for row := 1; row <= airplane.Rows; row++ {
		for seat := 1; seat <= airplane.SeatsInRow; seat++ {
			require.NoError(t, ValidateTicketPlacement(airplane, row, seat), "row %d seat %d", row, seat)
		}
	}

	testCases := []struct {
		name  string
		row   int
		seat  int
		field string
	}{
		{name: "row zero", row: 0, seat: 1, field: "row"},
		{name: "row past last", row: 21, seat: 1, field: "row"},
		{name: "row negative", row: -3, seat: 1, field: "row"},
		{name: "seat zero", row: 1, seat: 0, field: "seat"},
		{name: "seat past last", row: 1, seat: 7, field: "seat"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTicketPlacement(airplane, tc.row, tc.seat)

			var rangeErr *RangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tc.field, rangeErr.Field)
			assert.Equal(t, 1, rangeErr.Min)
			assert.True(t, IsClientError(err))
		})
	}
}

func TestValidateTicketPlacement_Message(t *testing.T) {
	err := ValidateTicketPlacement(Airplane{Rows: 20, SeatsInRow: 6}, 21, 1)
	assert.EqualError(t, err, "row must be in range 1-20")

	err = ValidateTicketPlacement(Airplane{Rows: 20, SeatsInRow: 6}, 1, 7)
	assert.EqualError(t, err, "seat must be in range 1-6")
}

func TestAirplaneCapacity(t *testing.T) {
	assert.Equal(t, 180, Airplane{Rows: 30, SeatsInRow: 6}.Capacity())
	assert.Equal(t, 120, Airplane{Rows: 20, SeatsInRow: 6}.Capacity())
}

func TestCrewFullName(t *testing.T) {
	assert.Equal(t, "Amelia Earhart", Crew{FirstName: "Amelia", LastName: "Earhart"}.FullName())
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(&UniquenessError{FlightID: 1, Row: 1, Seat: 1}))
	assert.True(t, IsClientError(&ReferentialError{Entity: "flight", ID: 4}))
	assert.True(t, IsClientError(&ValidationError{Field: "name", Message: "blank"}))
	assert.False(t, IsClientError(errors.New("connection reset")))
	assert.False(t, IsClientError(ErrNotFound))
}
