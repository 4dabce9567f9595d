package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/logger"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverS3       = "s3"
)

// Config selects and configures a backend.
type Config struct {
	Driver    string
	Namespace string

	// Path is the data directory for "file" and the database directory for
	// "sqlite".
	Path string

	PostgresDSN string

	Redis RedisOptions
	S3    S3Options
}

// Open builds the configured backend and wraps it in an Adapter. The caller
// closes the adapter.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Adapter, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Driver))
	if driver == "" {
		driver = DriverFile
	}

	var (
		kv  domain.KeyValueStore
		err error
	)
	switch driver {
	case DriverMemory:
		kv = NewMemoryStore(log)
	case DriverFile:
		kv, err = NewFileStore(cfg.Path)
	case DriverSQLite:
		dir := cfg.Path
		if dir == "" {
			dir = ".barmate"
		}
		kv, err = NewSQLiteStore(ctx, filepath.Join(dir, "barmate.db"))
	case DriverPostgres:
		kv, err = NewPostgresStore(ctx, cfg.PostgresDSN)
	case DriverRedis:
		kv, err = NewRedisStore(ctx, cfg.Redis)
	case DriverS3:
		kv, err = NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDriver, cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", driver, err)
	}

	log.Debug("storage: opened %s backend (namespace=%s)", driver, cfg.Namespace)
	return NewAdapter(kv, driver, cfg.Namespace, log), nil
}
