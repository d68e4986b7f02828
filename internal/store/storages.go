package store

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
)

// Storages aggregates every repository the service layer depends on.
type Storages struct {
	UserRepository    UserRepository
	SessionRepository SessionRepository
	TaskRepository    TaskRepository
}

// NewStorages connects to the database selected by the DSN, applies pending
// migrations, and constructs all repositories over the shared connection.
//
// A "postgres://" or "postgresql://" scheme selects the PostgreSQL backend;
// any other DSN is treated as a SQLite file path (":memory:" included).
func NewStorages(ctx context.Context, cfg config.Storage, log *logger.Logger) (*Storages, error) {
	var db *DB
	var err error

	if isPostgresDSN(cfg.DB.DSN) {
		db, err = NewConnectPostgres(ctx, cfg.DB, log)
	} else {
		db, err = NewConnectSQLite(ctx, cfg.DB, log)
	}
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:    NewUserRepository(db, log),
		SessionRepository: NewSessionRepository(db, log),
		TaskRepository:    NewTaskRepository(db, log),
	}, nil
}

func isPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}
