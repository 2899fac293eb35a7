package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

func TestSpan(t *testing.T) {
	grid := &domain.DayGrid{
		Cells: []domain.Cell{
			{Slot: "09:00"},
			{Slot: "09:15"},
			{Slot: "09:30", Occupant: &domain.Occupant{Name: "A"}},
			{Slot: "09:45"},
			// 10:00 отсутствует в таблице
			{Slot: "10:15"},
			{Slot: "10:30"},
		},
	}

	from, err := Span(grid, "09:00", 2, 15)
	require.NoError(t, err)
	assert.Equal(t, 0, from)

	from, err = Span(grid, "10:15", 2, 15)
	require.NoError(t, err)
	assert.Equal(t, 4, from)

	_, err = Span(grid, "09:15", 2, 15)
	assert.ErrorIs(t, err, ErrConflict)

	_, err = Span(grid, "09:45", 2, 15)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = Span(grid, "10:30", 2, 15)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = Span(grid, "11:00", 1, 15)
	assert.ErrorIs(t, err, ErrSlotNotFound)

	_, err = Span(grid, "09:00", 0, 15)
	assert.ErrorIs(t, err, ErrInvalidRange)
}
