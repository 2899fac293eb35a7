package spreadsheet

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// Раскладка листа (индексы с нуля)
const (
	dateRow      = 0 // строка 1: даты dd/mm
	openRow      = 1 // строка 2: время открытия
	closeRow     = 2 // строка 3: время закрытия
	firstSlotRow = 3 // с строки 4 идут слоты
	timeColumn   = 0 // колонка A: время слота
)

// Config параметры доступа к таблице
type Config struct {
	CredentialsFile string
	CredentialsJSON string
	SpreadsheetID   string
	SheetName       string
	DateFormat      string
	IntervalMinutes int
}

// Store сетка занятости в Google Sheets
// Пустая ячейка на пересечении даты и времени означает свободный слот
type Store struct {
	service       *sheets.Service
	spreadsheetID string
	sheetName     string
	dateFormat    string
	interval      int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore авторизуется сервисным аккаунтом и создает клиент Sheets API
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	credentials := []byte(cfg.CredentialsJSON)
	if len(credentials) == 0 {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("%w: unable to read credentials file: %v", occupancy.ErrUnavailable, err)
		}
		credentials = data
	}

	jwtConfig, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("%w: unable to parse credentials: %v", occupancy.ErrUnavailable, err)
	}

	service, err := sheets.NewService(ctx, option.WithHTTPClient(jwtConfig.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("%w: unable to create Sheets service: %v", occupancy.ErrUnavailable, err)
	}

	return NewStoreWithService(service, cfg), nil
}

// NewStoreWithService использует готовый клиент (в тестах указывает на httptest-сервер)
func NewStoreWithService(service *sheets.Service, cfg Config) *Store {
	dateFormat := cfg.DateFormat
	if dateFormat == "" {
		dateFormat = domain.SheetDateFormat
	}
	sheetName := cfg.SheetName
	if sheetName == "" {
		sheetName = "Sheet1"
	}
	interval := cfg.IntervalMinutes
	if interval <= 0 {
		interval = domain.DefaultSlotIntervalMinutes
	}

	return &Store{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		sheetName:     sheetName,
		dateFormat:    dateFormat,
		interval:      interval,
		locks:         make(map[string]*sync.Mutex),
	}
}

// TestConnection читает первую ячейку листа
func (s *Store) TestConnection(ctx context.Context) error {
	_, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName+"!A1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: connection test failed: %v", occupancy.ErrUnavailable, err)
	}
	return nil
}

// ReadDay читает весь лист одним запросом и собирает ячейки даты
func (s *Store) ReadDay(ctx context.Context, date time.Time) (*domain.DayGrid, error) {
	grid, _, err := s.readDay(ctx, date)
	return grid, err
}

// Reserve перечитывает колонку даты под блокировкой и пишет все ячейки одним BatchUpdate
// Блокировка действует в пределах процесса
func (s *Store) Reserve(ctx context.Context, date time.Time, start types.TimeString, count int, occupant domain.Occupant) error {
	lock := s.dayLock(date)
	lock.Lock()
	defer lock.Unlock()

	grid, layout, err := s.readDay(ctx, date)
	if err != nil {
		return err
	}

	from, err := occupancy.Span(grid, start, count, s.interval)
	if err != nil {
		return err
	}

	label := occupant.Label()
	column := columnLetter(layout.column)
	data := make([]*sheets.ValueRange, 0, count)
	for i := from; i < from+count; i++ {
		row := layout.rows[grid.Cells[i].Slot] + 1
		data = append(data, &sheets.ValueRange{
			Range:  fmt.Sprintf("%s!%s%d", s.sheetName, column, row),
			Values: [][]interface{}{{label}},
		})
	}

	request := &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "RAW",
		Data:             data,
	}
	if _, err := s.service.Spreadsheets.Values.BatchUpdate(s.spreadsheetID, request).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: Reserve - batch update: %v", occupancy.ErrUnavailable, err)
	}
	return nil
}

// dayLayout где в листе лежит дата
type dayLayout struct {
	column int
	rows   map[types.TimeString]int // слот -> индекс строки
}

func (s *Store) readDay(ctx context.Context, date time.Time) (*domain.DayGrid, *dayLayout, error) {
	resp, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, s.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: ReadDay - get values: %v", occupancy.ErrUnavailable, err)
	}
	values := resp.Values

	if len(values) <= closeRow {
		return nil, nil, fmt.Errorf("%w: sheet has %d rows, header needs %d", occupancy.ErrMalformedGrid, len(values), closeRow+1)
	}

	column := s.findDateColumn(values[dateRow], date)
	if column < 0 {
		return nil, nil, fmt.Errorf("%w: %s", occupancy.ErrDateNotFound, date.Format(s.dateFormat))
	}

	open, err := types.NewTimeStringFromString(cellText(values, openRow, column))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: open time for %s: %v", occupancy.ErrMalformedGrid, date.Format(s.dateFormat), err)
	}
	closeAt, err := types.NewTimeStringFromString(cellText(values, closeRow, column))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: close time for %s: %v", occupancy.ErrMalformedGrid, date.Format(s.dateFormat), err)
	}

	rows := make(map[types.TimeString]int)
	for i := firstSlotRow; i < len(values); i++ {
		slot, err := types.NewTimeStringFromString(cellText(values, i, timeColumn))
		if err != nil {
			continue
		}
		if _, dup := rows[slot]; !dup {
			rows[slot] = i
		}
	}

	grid := &domain.DayGrid{
		Date:  domain.CalendarDate(date),
		Open:  open,
		Close: closeAt,
	}
	for slot := range domain.EnumerateSlots(open, closeAt, s.interval) {
		row, ok := rows[slot]
		if !ok {
			// Слота нет в колонке времени: бронировать его некуда
			continue
		}
		cell := domain.Cell{Slot: slot}
		if text := cellText(values, row, column); text != "" {
			occupant := domain.ParseOccupant(text)
			cell.Occupant = &occupant
		}
		grid.Cells = append(grid.Cells, cell)
	}

	return grid, &dayLayout{column: column, rows: rows}, nil
}

func (s *Store) findDateColumn(header []interface{}, date time.Time) int {
	for i, v := range header {
		if i == timeColumn {
			continue
		}
		text := strings.TrimSpace(fmt.Sprint(v))
		parsed, err := time.Parse(s.dateFormat, text)
		if err != nil {
			continue
		}
		if parsed.Day() == date.Day() && parsed.Month() == date.Month() {
			return i
		}
	}
	return -1
}

func (s *Store) dayLock(date time.Time) *sync.Mutex {
	key := date.Format(domain.DateFormat)

	s.mu.Lock()
	defer s.mu.Unlock()

	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func cellText(values [][]interface{}, row, column int) string {
	if row >= len(values) || column >= len(values[row]) || values[row][column] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(values[row][column]))
}

// columnLetter 0 -> A, 25 -> Z, 26 -> AA
func columnLetter(index int) string {
	var b []byte
	for index >= 0 {
		b = append([]byte{byte('A' + index%26)}, b...)
		index = index/26 - 1
	}
	return string(b)
}
