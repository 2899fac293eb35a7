package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending"
)

const (
	fieldCode      = "code"
	fieldCreatedAt = "created_at"
	fieldPayload   = "payload"
)

// Проверка и удаление выполняются атомарно внутри Redis
// KEYS[1] ключ записи, ARGV[1] нормализованный код, ARGV[2] now (ms), ARGV[3] ttl (ms)
var consumeScript = goredis.NewScript(`
local v = redis.call('HMGET', KEYS[1], 'code', 'created_at', 'payload')
if not v[1] then
	return {'not_found'}
end
if tonumber(ARGV[2]) - tonumber(v[2]) > tonumber(ARGV[3]) then
	redis.call('DEL', KEYS[1])
	return {'expired'}
end
if v[1] ~= ARGV[1] then
	return {'mismatch'}
end
redis.call('DEL', KEYS[1])
return {'ok', v[3], v[2]}
`)

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Store неподтвержденные бронирования в Redis (hash на токен)
// Ключ живет ttl+retention, после ttl запись отдается как Expired
type Store struct {
	client       goredis.UniversalClient
	keyPrefix    string
	ttl          time.Duration
	retention    time.Duration
	codeLength   int
	timeProvider TimeProvider
}

// NewStore создает хранилище
func NewStore(client goredis.UniversalClient, keyPrefix string, ttl, retention time.Duration, codeLength int) *Store {
	return &Store{
		client:       client,
		keyPrefix:    keyPrefix,
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

// Create сохраняет запись с новым токеном и кодом
func (s *Store) Create(ctx context.Context, details domain.BookingDetails) (*domain.PendingConfirmation, error) {
	code, err := pending.NewCode(s.codeLength)
	if err != nil {
		return nil, err
	}

	record := &domain.PendingConfirmation{
		Token:     pending.NewToken(),
		Code:      code,
		Details:   details,
		CreatedAt: s.timeProvider.Now(),
	}

	if err := s.write(ctx, record, s.ttl+s.retention); err != nil {
		return nil, err
	}
	return record, nil
}

// Lookup возвращает запись без изменения состояния
func (s *Store) Lookup(ctx context.Context, token string) (*domain.PendingConfirmation, error) {
	fields, err := s.client.HGetAll(ctx, s.key(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: Lookup - HGETALL: %v", pending.ErrUnavailable, err)
	}
	if len(fields) == 0 {
		return nil, pending.ErrNotFound
	}

	record, err := decodeRecord(token, fields[fieldCode], fields[fieldCreatedAt], fields[fieldPayload])
	if err != nil {
		return nil, err
	}
	if record.IsExpired(s.timeProvider.Now(), s.ttl) {
		return nil, pending.ErrExpired
	}
	return record, nil
}

// Consume проверяет код и удаляет запись одним скриптом
func (s *Store) Consume(ctx context.Context, token, code string) (*domain.PendingConfirmation, error) {
	now := s.timeProvider.Now()
	reply, err := consumeScript.Run(ctx, s.client,
		[]string{s.key(token)},
		pending.NormalizeCode(code),
		now.UnixMilli(),
		s.ttl.Milliseconds(),
	).StringSlice()
	if err != nil {
		return nil, fmt.Errorf("%w: Consume - script: %v", pending.ErrUnavailable, err)
	}
	if len(reply) == 0 {
		return nil, fmt.Errorf("%w: Consume - empty script reply", pending.ErrUnavailable)
	}

	switch reply[0] {
	case "not_found":
		return nil, pending.ErrNotFound
	case "expired":
		return nil, pending.ErrExpired
	case "mismatch":
		return nil, pending.ErrCodeMismatch
	case "ok":
		if len(reply) < 3 {
			return nil, fmt.Errorf("%w: Consume - short script reply", pending.ErrUnavailable)
		}
		return decodeRecord(token, pending.NormalizeCode(code), reply[2], reply[1])
	default:
		return nil, fmt.Errorf("%w: Consume - unexpected reply %q", pending.ErrUnavailable, reply[0])
	}
}

// Cancel удаляет запись
func (s *Store) Cancel(ctx context.Context, token string) error {
	removed, err := s.client.Del(ctx, s.key(token)).Result()
	if err != nil {
		return fmt.Errorf("%w: Cancel - DEL: %v", pending.ErrUnavailable, err)
	}
	if removed == 0 {
		return pending.ErrNotFound
	}
	return nil
}

// Restore возвращает потребленную запись с оставшимся сроком жизни ключа
func (s *Store) Restore(ctx context.Context, record *domain.PendingConfirmation) error {
	now := s.timeProvider.Now()
	if record.IsExpired(now, s.ttl) {
		return pending.ErrExpired
	}

	remaining := s.ttl + s.retention - now.Sub(record.CreatedAt)
	return s.write(ctx, record, remaining)
}

func (s *Store) write(ctx context.Context, record *domain.PendingConfirmation, lifetime time.Duration) error {
	payload, err := json.Marshal(record.Details)
	if err != nil {
		return fmt.Errorf("%w: %v", pending.ErrEncode, err)
	}

	key := s.key(record.Token)
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.HSet(ctx, key,
			fieldCode, record.Code,
			fieldCreatedAt, strconv.FormatInt(record.CreatedAt.UnixMilli(), 10),
			fieldPayload, string(payload),
		)
		pipe.PExpire(ctx, key, lifetime)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: write - MULTI: %v", pending.ErrUnavailable, err)
	}
	return nil
}

func (s *Store) key(token string) string {
	return s.keyPrefix + token
}

func decodeRecord(token, code, createdAt, payload string) (*domain.PendingConfirmation, error) {
	ms, err := strconv.ParseInt(createdAt, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: created_at %q: %v", pending.ErrEncode, createdAt, err)
	}

	var details domain.BookingDetails
	if err := json.Unmarshal([]byte(payload), &details); err != nil {
		return nil, fmt.Errorf("%w: payload: %v", pending.ErrEncode, err)
	}

	return &domain.PendingConfirmation{
		Token:     token,
		Code:      code,
		Details:   details,
		CreatedAt: time.UnixMilli(ms),
	}, nil
}
