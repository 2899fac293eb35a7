package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Store сетка занятости в памяти процесса
// Любая дата открыта в часы по умолчанию; все записи сериализуются одним мьютексом
type Store struct {
	mu       sync.Mutex
	open     types.TimeString
	close    types.TimeString
	interval int
	days     map[string]map[types.TimeString]domain.Occupant
}

// NewStore создает пустую сетку
func NewStore(open, close types.TimeString, interval int) *Store {
	return &Store{
		open:     open,
		close:    close,
		interval: interval,
		days:     make(map[string]map[types.TimeString]domain.Occupant),
	}
}

// ReadDay возвращает снимок ячеек даты
func (s *Store) ReadDay(ctx context.Context, date time.Time) (*domain.DayGrid, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshot(date), nil
}

// Reserve занимает count слотов начиная со start целиком либо не занимает ничего
func (s *Store) Reserve(ctx context.Context, date time.Time, start types.TimeString, count int, occupant domain.Occupant) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	grid := s.snapshot(date)
	from, err := occupancy.Span(grid, start, count, s.interval)
	if err != nil {
		return err
	}

	key := dayKey(date)
	cells, ok := s.days[key]
	if !ok {
		cells = make(map[types.TimeString]domain.Occupant)
		s.days[key] = cells
	}
	for i := from; i < from+count; i++ {
		cells[grid.Cells[i].Slot] = occupant
	}
	return nil
}

func (s *Store) snapshot(date time.Time) *domain.DayGrid {
	occupied := s.days[dayKey(date)]

	grid := &domain.DayGrid{
		Date:  domain.CalendarDate(date),
		Open:  s.open,
		Close: s.close,
	}
	for slot := range domain.EnumerateSlots(s.open, s.close, s.interval) {
		cell := domain.Cell{Slot: slot}
		if o, ok := occupied[slot]; ok {
			occupant := o
			cell.Occupant = &occupant
		}
		grid.Cells = append(grid.Cells, cell)
	}
	return grid
}

func dayKey(date time.Time) string {
	return date.Format(domain.DateFormat)
}
