package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Коды ошибок Postgres, означающие гонку за слот
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Hours часы работы по умолчанию, если в grid_days нет строки на дату
type Hours struct {
	Open  types.TimeString
	Close types.TimeString
}

// Store сетка занятости в Postgres
// Занятый слот = строка в occupancy, PK (day, slot) не дает занять его дважды
type Store struct {
	db        txmanager.DBExecutor
	txManager TransactionManager
	defaults  Hours
	interval  int
}

// NewStore создает репозиторий сетки
func NewStore(db txmanager.DBExecutor, txManager TransactionManager, defaults Hours, interval int) *Store {
	return &Store{
		db:        db,
		txManager: txManager,
		defaults:  defaults,
		interval:  interval,
	}
}

// ReadDay читает часы работы и занятые слоты даты
func (s *Store) ReadDay(ctx context.Context, date time.Time) (*domain.DayGrid, error) {
	return s.readDay(ctx, date, false)
}

// Reserve в сериализуемой транзакции проверяет слоты и вставляет все строки одним INSERT
func (s *Store) Reserve(ctx context.Context, date time.Time, start types.TimeString, count int, occupant domain.Occupant) error {
	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		grid, err := s.readDay(txCtx, date, true)
		if err != nil {
			return err
		}

		from, err := occupancy.Span(grid, start, count, s.interval)
		if err != nil {
			return err
		}

		insert := psqlbuilder.Insert("occupancy").
			Columns("day", "slot", "occupant_name", "occupant_contact")
		for i := from; i < from+count; i++ {
			insert = insert.Values(grid.Date, grid.Cells[i].Slot, occupant.Name, occupant.Contact)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("%w: Reserve - build insert query: %v", occupancy.ErrUnavailable, err)
		}

		executor := txmanager.GetExecutor(txCtx, s.db)
		if _, err := executor.ExecContext(txCtx, query, args...); err != nil {
			return classify("Reserve - insert occupancy", err)
		}
		return nil
	})

	if err == nil {
		return nil
	}
	if isKnown(err) {
		return err
	}
	return classify("Reserve - transaction", err)
}

func (s *Store) readDay(ctx context.Context, date time.Time, forUpdate bool) (*domain.DayGrid, error) {
	executor := txmanager.GetExecutor(ctx, s.db)
	day := domain.CalendarDate(date)

	hours, err := s.hours(ctx, executor, day)
	if err != nil {
		return nil, err
	}

	selectBuilder := psqlbuilder.Select("slot", "occupant_name", "occupant_contact").
		From("occupancy").
		Where(squirrel.Eq{"day": day}).
		OrderBy("slot ASC")

	// Внутри транзакции блокируем уже занятые строки даты
	if forUpdate && txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReadDay - build select query: %v", occupancy.ErrUnavailable, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify("ReadDay - select occupancy", err)
	}
	defer rows.Close()

	occupied := make(map[types.TimeString]domain.Occupant)
	for rows.Next() {
		var (
			slot    types.TimeString
			name    string
			contact sql.NullString
		)
		if err := rows.Scan(&slot, &name, &contact); err != nil {
			return nil, fmt.Errorf("%w: ReadDay - scan occupancy: %v", occupancy.ErrMalformedGrid, err)
		}
		occupied[slot] = domain.Occupant{Name: name, Contact: contact.String}
	}
	if err := rows.Err(); err != nil {
		return nil, classify("ReadDay - iterate occupancy", err)
	}

	grid := &domain.DayGrid{Date: day, Open: hours.Open, Close: hours.Close}
	for slot := range domain.EnumerateSlots(hours.Open, hours.Close, s.interval) {
		cell := domain.Cell{Slot: slot}
		if o, ok := occupied[slot]; ok {
			occupant := o
			cell.Occupant = &occupant
		}
		grid.Cells = append(grid.Cells, cell)
	}
	return grid, nil
}

// hours часы работы на дату: строка grid_days или значения по умолчанию
func (s *Store) hours(ctx context.Context, executor txmanager.DBExecutor, day time.Time) (Hours, error) {
	query, args, err := psqlbuilder.Select("open_time", "close_time").
		From("grid_days").
		Where(squirrel.Eq{"day": day}).
		ToSql()
	if err != nil {
		return Hours{}, fmt.Errorf("%w: hours - build select query: %v", occupancy.ErrUnavailable, err)
	}

	var h Hours
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.Open, &h.Close)
	if errors.Is(err, sql.ErrNoRows) {
		return s.defaults, nil
	}
	if err != nil {
		return Hours{}, classify("hours - select grid_days", err)
	}
	return h, nil
}

// classify переводит ошибку драйвера в ошибки occupancy
func classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation, pgSerializationFailure:
			return fmt.Errorf("%w: %s: %v", occupancy.ErrConflict, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %v", occupancy.ErrUnavailable, op, err)
}

func isKnown(err error) bool {
	return errors.Is(err, occupancy.ErrConflict) ||
		errors.Is(err, occupancy.ErrSlotNotFound) ||
		errors.Is(err, occupancy.ErrInvalidRange) ||
		errors.Is(err, occupancy.ErrUnavailable) ||
		errors.Is(err, occupancy.ErrMalformedGrid)
}
