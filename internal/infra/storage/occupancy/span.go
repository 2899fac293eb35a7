package occupancy

import (
	"fmt"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Span находит индекс первой из count ячеек, идущих подряд с шагом interval от start,
// и проверяет, что все они свободны
func Span(grid *domain.DayGrid, start types.TimeString, count, interval int) (int, error) {
	if count <= 0 {
		return 0, fmt.Errorf("%w: count=%d", ErrInvalidRange, count)
	}

	from := grid.IndexOf(start)
	if from < 0 {
		return 0, fmt.Errorf("%w: %s", ErrSlotNotFound, start)
	}
	if from+count > len(grid.Cells) {
		return 0, fmt.Errorf("%w: %d slots from %s exceed the day", ErrSlotNotFound, count, start)
	}

	expected := start
	for i := from; i < from+count; i++ {
		cell := grid.Cells[i]
		if cell.Slot != expected {
			return 0, fmt.Errorf("%w: %s missing from grid", ErrSlotNotFound, expected)
		}
		if !cell.IsFree() {
			return 0, fmt.Errorf("%w: %s", ErrConflict, cell.Slot)
		}

		next, err := expected.AddMinutes(interval)
		if err != nil && i < from+count-1 {
			return 0, fmt.Errorf("%w: %v", ErrSlotNotFound, err)
		}
		expected = next
	}
	return from, nil
}
