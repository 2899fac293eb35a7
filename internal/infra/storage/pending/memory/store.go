package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending"
)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Store неподтвержденные бронирования в памяти процесса
// Просроченные записи хранятся еще retention, чтобы клиент получил Expired, а не NotFound
type Store struct {
	mu           sync.Mutex
	records      map[string]domain.PendingConfirmation
	ttl          time.Duration
	retention    time.Duration
	codeLength   int
	timeProvider TimeProvider
}

// NewStore создает хранилище
func NewStore(ttl, retention time.Duration, codeLength int) *Store {
	return &Store{
		records:      make(map[string]domain.PendingConfirmation),
		ttl:          ttl,
		retention:    retention,
		codeLength:   codeLength,
		timeProvider: realTimeProvider{},
	}
}

// WithTimeProvider подменяет часы
func (s *Store) WithTimeProvider(tp TimeProvider) *Store {
	s.timeProvider = tp
	return s
}

// TTL срок действия кода
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create создает запись с новым токеном и кодом
func (s *Store) Create(ctx context.Context, details domain.BookingDetails) (*domain.PendingConfirmation, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", pending.ErrUnavailable, err)
	}

	code, err := pending.NewCode(s.codeLength)
	if err != nil {
		return nil, err
	}

	record := domain.PendingConfirmation{
		Token:     pending.NewToken(),
		Code:      code,
		Details:   cloneDetails(details),
		CreatedAt: s.timeProvider.Now(),
	}

	s.mu.Lock()
	s.records[record.Token] = record
	s.mu.Unlock()

	return copyRecord(record), nil
}

// Lookup возвращает запись без изменения состояния
func (s *Store) Lookup(ctx context.Context, token string) (*domain.PendingConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[token]
	if !ok {
		return nil, pending.ErrNotFound
	}
	if record.IsExpired(s.timeProvider.Now(), s.ttl) {
		return nil, pending.ErrExpired
	}
	return copyRecord(record), nil
}

// Consume проверяет код и удаляет запись; успешен не больше одного раза
func (s *Store) Consume(ctx context.Context, token, code string) (*domain.PendingConfirmation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[token]
	if !ok {
		return nil, pending.ErrNotFound
	}
	if record.IsExpired(s.timeProvider.Now(), s.ttl) {
		delete(s.records, token)
		return nil, pending.ErrExpired
	}
	if !pending.CodesEqual(record.Code, code) {
		return nil, pending.ErrCodeMismatch
	}

	delete(s.records, token)
	return copyRecord(record), nil
}

// Cancel удаляет запись по запросу клиента
func (s *Store) Cancel(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[token]; !ok {
		return pending.ErrNotFound
	}
	delete(s.records, token)
	return nil
}

// Restore возвращает потребленную запись без изменений (тот же код и created_at)
func (s *Store) Restore(ctx context.Context, record *domain.PendingConfirmation) error {
	if record.IsExpired(s.timeProvider.Now(), s.ttl) {
		return pending.ErrExpired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Token] = *copyRecord(*record)
	return nil
}

// Sweep удаляет записи старше ttl+retention, возвращает число удаленных
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timeProvider.Now()
	removed := 0
	for token, record := range s.records {
		if record.IsExpired(now, s.ttl+s.retention) {
			delete(s.records, token)
			removed++
		}
	}
	return removed
}

// RunSweeper периодически вызывает Sweep до отмены ctx
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len количество хранимых записей
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

func copyRecord(r domain.PendingConfirmation) *domain.PendingConfirmation {
	r.Details = cloneDetails(r.Details)
	return &r
}

func cloneDetails(d domain.BookingDetails) domain.BookingDetails {
	d.ServiceIDs = append([]string(nil), d.ServiceIDs...)
	return d
}
