package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Settings параметры сетки
type Settings struct {
	IntervalMinutes int
	MaxBookingDays  int
	WorkingDays     domain.WorkingDays
	DurationPolicy  domain.DurationPolicy
	Location        *time.Location
	StoreTimeout    time.Duration // 0 = без ограничения
}

// Commit параметры бронирования для записи в сетку
type Commit struct {
	Date            time.Time
	Start           types.TimeString
	DurationMinutes int
	Occupant        domain.Occupant
}

// Engine считает свободные окна и атомарно записывает бронирования
// Состояния между вызовами не хранит
type Engine struct {
	store        OccupancyStore
	settings     Settings
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewEngine создает движок доступности
func NewEngine(store OccupancyStore, settings Settings, metrics Metrics, logger Logger) *Engine {
	if settings.Location == nil {
		settings.Location = time.Local
	}
	return &Engine{
		store:        store,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// IntervalMinutes шаг сетки
func (e *Engine) IntervalMinutes() int {
	return e.settings.IntervalMinutes
}

// Today текущая дата в часовом поясе расписания
func (e *Engine) Today() time.Time {
	return domain.CalendarDate(e.timeProvider.Now().In(e.settings.Location))
}

// IsBookable проверяет дату без обращения к сетке
func (e *Engine) IsBookable(date time.Time) bool {
	return domain.IsBookableDate(date, e.Today(), e.settings.MaxBookingDays, e.settings.WorkingDays)
}

// AvailableSlots начала всех окон из n свободных подряд идущих слотов
// Для нерабочей даты или даты вне окна возвращает пустой список без обращения к сетке
func (e *Engine) AvailableSlots(ctx context.Context, date time.Time, durationMinutes int) ([]types.TimeString, error) {
	// 1. Переводим длительность в количество слотов
	n, err := domain.SlotsNeeded(durationMinutes, e.settings.IntervalMinutes, e.settings.DurationPolicy)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}

	// 2. Проверяем дату до обращения к хранилищу
	if !e.IsBookable(date) {
		return []types.TimeString{}, nil
	}

	// 3. Читаем день одним запросом
	grid, err := e.readDay(ctx, date)
	if err != nil {
		if errors.Is(err, occupancy.ErrDateNotFound) {
			e.logger.Info("AvailableSlots: date %s is absent from the grid", date.Format(domain.DateFormat))
			return []types.TimeString{}, nil
		}
		return nil, err
	}

	// 4. Ищем окна
	return freeWindows(grid, n, e.settings.IntervalMinutes), nil
}

// CommitBooking заново проверяет дату и окно и занимает слоты
// Повторов не делает: ErrSlotConflict и ErrGridUnavailable возвращаются вызывающему
func (e *Engine) CommitBooking(ctx context.Context, c Commit) error {
	dateStr := c.Date.Format(domain.DateFormat)

	// 1. Проверяем входные данные
	if err := c.Start.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrSlotOutsideGrid, err)
	}
	if c.Occupant.Name == "" {
		return fmt.Errorf("%w: occupant name is required", ErrInvalidRequest)
	}

	n, err := domain.SlotsNeeded(c.DurationMinutes, e.settings.IntervalMinutes, e.settings.DurationPolicy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	}

	// 2. Дата могла выйти из окна, пока клиент вводил код
	if !e.IsBookable(c.Date) {
		return fmt.Errorf("%w: %s", ErrInvalidDate, dateStr)
	}

	// 3. Пересчитываем окно по часам работы дня
	grid, err := e.readDay(ctx, c.Date)
	if err != nil {
		if errors.Is(err, occupancy.ErrDateNotFound) {
			return fmt.Errorf("%w: %s is absent from the grid", ErrSlotOutsideGrid, dateStr)
		}
		return err
	}

	if grid.IndexOf(c.Start) < 0 {
		return fmt.Errorf("%w: %s is not a slot of %s", ErrSlotOutsideGrid, c.Start, dateStr)
	}
	end, err := c.Start.AddMinutes(n * e.settings.IntervalMinutes)
	if err != nil || end.IsAfter(grid.Close) {
		return fmt.Errorf("%w: %d slots from %s end after %s", ErrSlotOutsideGrid, n, c.Start, grid.Close)
	}

	// 4. Атомарная запись
	callCtx, cancel := e.withTimeout(ctx)
	defer cancel()

	err = e.store.Reserve(callCtx, c.Date, c.Start, n, c.Occupant)
	switch {
	case err == nil:
		e.logger.Info("CommitBooking: reserved %d slots from %s on %s", n, c.Start, dateStr)
		return nil
	case errors.Is(err, occupancy.ErrConflict):
		e.logger.Warn("CommitBooking: conflict at %s on %s: %v", c.Start, dateStr, err)
		return fmt.Errorf("%w: %v", ErrSlotConflict, err)
	case errors.Is(err, occupancy.ErrSlotNotFound), errors.Is(err, occupancy.ErrInvalidRange):
		return fmt.Errorf("%w: %v", ErrSlotOutsideGrid, err)
	default:
		return e.storeFailure(callCtx, "reserve", err)
	}
}

func (e *Engine) readDay(ctx context.Context, date time.Time) (*domain.DayGrid, error) {
	callCtx, cancel := e.withTimeout(ctx)
	defer cancel()

	grid, err := e.store.ReadDay(callCtx, date)
	if err == nil {
		return grid, nil
	}
	if errors.Is(err, occupancy.ErrDateNotFound) {
		return nil, err
	}
	return nil, e.storeFailure(callCtx, "read_day", err)
}

// storeFailure переводит отказ хранилища в ErrGridUnavailable / ErrGridTimeout
func (e *Engine) storeFailure(callCtx context.Context, op string, err error) error {
	if e.metrics != nil {
		e.metrics.GridError(op)
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		e.logger.Error("Engine: %s timed out: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrGridTimeout, op, err)
	}

	e.logger.Error("Engine: %s failed: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrGridUnavailable, op, err)
}

func (e *Engine) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.settings.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, e.settings.StoreTimeout)
}

// freeWindows за один проход справа налево считает длину свободной серии,
// начинающейся в каждой ячейке; ячейка подходит, если серия не короче n
func freeWindows(grid *domain.DayGrid, n, interval int) []types.TimeString {
	cells := grid.Cells
	run := make([]int, len(cells)+1)
	result := make([]types.TimeString, 0)

	for i := len(cells) - 1; i >= 0; i-- {
		if !cells[i].IsFree() {
			continue
		}
		run[i] = 1
		if i+1 < len(cells) && adjacent(cells[i].Slot, cells[i+1].Slot, interval) {
			run[i] += run[i+1]
		}
	}

	for i, c := range cells {
		if run[i] >= n {
			result = append(result, c.Slot)
		}
	}
	return result
}

func adjacent(a, b types.TimeString, interval int) bool {
	next, err := a.AddMinutes(interval)
	return err == nil && next == b
}
