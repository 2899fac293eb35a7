package domain

import (
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	// ErrInvalidDuration длительность не переводится в положительное число слотов
	ErrInvalidDuration = errors.New("domain: invalid duration")

	// ErrUnknownWeekday неизвестное название дня недели в конфигурации
	ErrUnknownWeekday = errors.New("domain: unknown weekday")

	// ErrUnknownDurationPolicy неизвестная политика округления длительности
	ErrUnknownDurationPolicy = errors.New("domain: unknown duration policy")
)

// DurationPolicy правило перевода длительности услуги в количество слотов
type DurationPolicy string

const (
	// DurationRoundUp округляет вверх: 20 минут при шаге 15 занимают 2 слота
	DurationRoundUp DurationPolicy = "round_up"
	// DurationExact требует кратности шагу сетки
	DurationExact DurationPolicy = "exact"
	// DurationTruncate отбрасывает остаток: 20 минут при шаге 15 занимают 1 слот
	DurationTruncate DurationPolicy = "truncate"
)

// ParseDurationPolicy разбирает значение из конфигурации
func ParseDurationPolicy(s string) (DurationPolicy, error) {
	switch p := DurationPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case DurationRoundUp, DurationExact, DurationTruncate:
		return p, nil
	case "":
		return DurationRoundUp, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDurationPolicy, s)
	}
}

// EnumerateSlots лениво перечисляет слоты open, open+interval, ...
// Слот выдается, только если slot+interval <= close
// Итератор можно запускать повторно
func EnumerateSlots(open, close types.TimeString, interval int) iter.Seq[types.TimeString] {
	return func(yield func(types.TimeString) bool) {
		if interval <= 0 {
			return
		}
		start, err := open.Minutes()
		if err != nil {
			return
		}
		end, err := close.Minutes()
		if err != nil {
			return
		}

		for m := start; m+interval <= end; m += interval {
			slot, err := types.NewTimeStringFromMinutes(m)
			if err != nil {
				return
			}
			if !yield(slot) {
				return
			}
		}
	}
}

// SlotsNeeded количество последовательных слотов под услугу
func SlotsNeeded(durationMinutes, interval int, policy DurationPolicy) (int, error) {
	if durationMinutes <= 0 {
		return 0, fmt.Errorf("%w: duration must be positive, got %d", ErrInvalidDuration, durationMinutes)
	}
	if interval <= 0 {
		return 0, fmt.Errorf("%w: slot interval must be positive, got %d", ErrInvalidDuration, interval)
	}

	var n int
	switch policy {
	case DurationExact:
		if durationMinutes%interval != 0 {
			return 0, fmt.Errorf("%w: %d minutes is not a multiple of %d", ErrInvalidDuration, durationMinutes, interval)
		}
		n = durationMinutes / interval
	case DurationTruncate:
		n = durationMinutes / interval
	default:
		n = (durationMinutes + interval - 1) / interval
	}

	if n <= 0 {
		return 0, fmt.Errorf("%w: %d minutes is shorter than one slot", ErrInvalidDuration, durationMinutes)
	}
	return n, nil
}

// WorkingDays множество рабочих дней недели
type WorkingDays map[time.Weekday]struct{}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWorkingDays разбирает названия дней ("monday", "Sun", ...)
func ParseWorkingDays(names []string) (WorkingDays, error) {
	days := make(WorkingDays, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		day, ok := weekdayNames[key]
		if !ok {
			for full, d := range weekdayNames {
				if len(key) >= 3 && strings.HasPrefix(full, key) {
					day, ok = d, true
					break
				}
			}
		}
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWeekday, name)
		}
		days[day] = struct{}{}
	}
	return days, nil
}

// Contains проверяет, что день рабочий
func (w WorkingDays) Contains(day time.Weekday) bool {
	_, ok := w[day]
	return ok
}

// IsBookableDate today <= date <= today+maxDaysAhead и день рабочий
// Сравниваются календарные даты, время суток игнорируется
func IsBookableDate(date, today time.Time, maxDaysAhead int, workingDays WorkingDays) bool {
	d := CalendarDate(date)
	t := CalendarDate(today)

	if d.Before(t) {
		return false
	}
	if d.After(t.AddDate(0, 0, maxDaysAhead)) {
		return false
	}
	return workingDays.Contains(d.Weekday())
}

// CalendarDate отбрасывает время и часовой пояс, оставляя дату
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
