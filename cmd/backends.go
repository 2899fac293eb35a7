package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/config"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	occupancyMemory "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy/memory"
	occupancyPostgres "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy/postgres"
	"github.com/m04kA/SMC-BarberBooking/internal/infra/storage/occupancy/spreadsheet"
	pendingMemory "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending/memory"
	pendingRedis "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/pending/redis"
	"github.com/m04kA/SMC-BarberBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
	"github.com/m04kA/SMC-BarberBooking/pkg/txmanager"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// pendingStore общий интерфейс memory и redis адаптеров
type pendingStore interface {
	Create(ctx context.Context, details domain.BookingDetails) (*domain.PendingConfirmation, error)
	Lookup(ctx context.Context, token string) (*domain.PendingConfirmation, error)
	Consume(ctx context.Context, token, code string) (*domain.PendingConfirmation, error)
	Cancel(ctx context.Context, token string) error
	Restore(ctx context.Context, record *domain.PendingConfirmation) error
	TTL() time.Duration
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }

// notifier общий интерфейс SMTP клиента и заглушки
type notifier interface {
	Deliver(ctx context.Context, contact string, n mailer.Notification) error
}

func buildEngineSettings(cfg *config.Config) (availability.Settings, error) {
	days, err := domain.ParseWorkingDays(cfg.Schedule.WorkingDays)
	if err != nil {
		return availability.Settings{}, err
	}

	policy, err := domain.ParseDurationPolicy(cfg.Schedule.DurationPolicy)
	if err != nil {
		return availability.Settings{}, err
	}

	loc, err := cfg.Schedule.Location()
	if err != nil {
		return availability.Settings{}, err
	}

	return availability.Settings{
		IntervalMinutes: cfg.Schedule.SlotIntervalMinutes,
		MaxBookingDays:  cfg.Schedule.MaxBookingDays,
		WorkingDays:     days,
		DurationPolicy:  policy,
		Location:        loc,
		StoreTimeout:    time.Duration(cfg.Grid.TimeoutSeconds) * time.Second,
	}, nil
}

func buildCatalog(cfg *config.Config) *domain.Catalog {
	services := make([]domain.Service, len(cfg.Services))
	for i, s := range cfg.Services {
		name := s.Name
		if name == "" {
			name = s.ID
		}
		services[i] = domain.Service{ID: s.ID, Name: name, DurationMinutes: s.DurationMinutes}
	}
	return domain.NewCatalog(services)
}

// buildOccupancyStore возвращает хранилище сетки и его ресурсы для закрытия
func buildOccupancyStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (availability.OccupancyStore, io.Closer, error) {
	open, err := types.NewTimeStringFromString(cfg.Schedule.OpenTime)
	if err != nil {
		return nil, nil, fmt.Errorf("schedule.open_time: %w", err)
	}
	closeAt, err := types.NewTimeStringFromString(cfg.Schedule.CloseTime)
	if err != nil {
		return nil, nil, fmt.Errorf("schedule.close_time: %w", err)
	}

	switch cfg.Grid.Backend {
	case config.GridBackendSheets:
		store, err := spreadsheet.NewStore(ctx, spreadsheet.Config{
			CredentialsFile: cfg.Grid.Sheets.CredentialsFile,
			CredentialsJSON: cfg.Grid.Sheets.CredentialsJSON,
			SpreadsheetID:   cfg.Grid.Sheets.SpreadsheetID,
			SheetName:       cfg.Grid.Sheets.SheetName,
			DateFormat:      cfg.Grid.Sheets.DateFormat,
			IntervalMinutes: cfg.Schedule.SlotIntervalMinutes,
		})
		if err != nil {
			return nil, nil, err
		}
		if err := store.TestConnection(ctx); err != nil {
			return nil, nil, err
		}
		log.Info("Occupancy grid: Google Sheets (spreadsheet=%s, sheet=%s)",
			cfg.Grid.Sheets.SpreadsheetID, cfg.Grid.Sheets.SheetName)
		return store, noopCloser{}, nil

	case config.GridBackendPostgres:
		db, err := sql.Open("postgres", cfg.Grid.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		db.SetMaxOpenConns(cfg.Grid.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Grid.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Grid.Database.ConnMaxLifetime) * time.Second)

		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		log.Info("Occupancy grid: PostgreSQL (host=%s, port=%d, db=%s)",
			cfg.Grid.Database.Host, cfg.Grid.Database.Port, cfg.Grid.Database.DBName)

		store := occupancyPostgres.NewStore(db, txmanager.NewTransactionManager(db),
			occupancyPostgres.Hours{Open: open, Close: closeAt}, cfg.Schedule.SlotIntervalMinutes)
		return store, db, nil

	default:
		log.Warn("Occupancy grid: in-memory mock grid, bookings are lost on restart")
		return occupancyMemory.NewStore(open, closeAt, cfg.Schedule.SlotIntervalMinutes), noopCloser{}, nil
	}
}

// buildPendingStore для memory запускает фоновую очистку до отмены ctx
func buildPendingStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (pendingStore, io.Closer, error) {
	ttl := time.Duration(cfg.Pending.TTLMinutes) * time.Minute
	retention := time.Duration(cfg.Pending.RetentionMinutes) * time.Minute

	if cfg.Pending.Backend == config.PendingBackendRedis {
		client, err := pendingRedis.NewClient(ctx, pendingRedis.ClientConfig{
			Address:  cfg.Pending.Redis.Address,
			Password: cfg.Pending.Redis.Password,
			DB:       cfg.Pending.Redis.DB,
			PoolSize: cfg.Pending.Redis.PoolSize,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("Pending store: Redis (address=%s, db=%d)", cfg.Pending.Redis.Address, cfg.Pending.Redis.DB)
		return pendingRedis.NewStore(client, cfg.Pending.Redis.KeyPrefix, ttl, retention, cfg.Pending.CodeLength), client, nil
	}

	store := pendingMemory.NewStore(ttl, retention, cfg.Pending.CodeLength)
	go store.RunSweeper(ctx, time.Duration(cfg.Pending.SweepIntervalSeconds)*time.Second)
	log.Info("Pending store: in-memory (ttl=%s, retention=%s)", ttl, retention)
	return store, noopCloser{}, nil
}

func buildNotifier(cfg *config.Config, log *logger.Logger) (notifier, error) {
	if !cfg.Mail.Enabled() {
		log.Warn("Mailer: credentials not configured, confirmation codes are written to the log")
		return mailer.NewLogNotifier(log), nil
	}

	client, err := mailer.NewClient(mailer.Config{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		Timeout:  time.Duration(cfg.Mail.TimeoutSeconds) * time.Second,
	}, log)
	if err != nil {
		return nil, err
	}
	log.Info("Mailer: SMTP %s:%d as %s", cfg.Mail.Host, cfg.Mail.Port, cfg.Mail.From)
	return client, nil
}
