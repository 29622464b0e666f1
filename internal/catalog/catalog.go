// Package catalog picks the product repository configured for a process.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/appsmart/inventario/backend-go/internal/config"
	"github.com/appsmart/inventario/backend-go/internal/drive"
	"github.com/appsmart/inventario/backend-go/internal/repository"
	"github.com/appsmart/inventario/backend-go/internal/repository/postgres"
)

// Options selects and configures a catalog source.
type Options struct {
	Source               string
	CSVPath              string
	DriveFileID          string
	DriveCredentialsJSON string
	// DatabaseURL, when set, is opened with the pgx driver instead of the
	// DB_* settings.
	DatabaseURL string
	Database    config.DatabaseConfig
}

// FromConfig builds Options from the loaded configuration.
func FromConfig(cfg *config.Config) Options {
	return Options{
		Source:               cfg.Catalog.Source,
		CSVPath:              cfg.Catalog.CSVPath,
		DriveFileID:          cfg.Catalog.DriveFileID,
		DriveCredentialsJSON: cfg.Catalog.DriveCredentialsJSON,
		Database:             cfg.Database,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open returns the repository for opts.Source. The closer releases whatever
// connection the repository holds.
func Open(ctx context.Context, opts Options) (repository.ProductRepository, io.Closer, error) {
	switch opts.Source {
	case "", config.CatalogPostgres:
		db, err := openDatabase(ctx, opts)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewProductRepository(db), db, nil

	case config.CatalogCSV:
		if opts.CSVPath == "" {
			return nil, nil, fmt.Errorf("catalog csv path is required")
		}
		return repository.NewFileProductRepository(opts.CSVPath), nopCloser{}, nil

	case config.CatalogDrive:
		if opts.DriveCredentialsJSON == "" {
			return nil, nil, fmt.Errorf("google drive credentials are required for the drive catalog")
		}
		if opts.DriveFileID == "" {
			return nil, nil, fmt.Errorf("drive catalog file id is required")
		}
		svc, err := drive.NewService(ctx, opts.DriveCredentialsJSON)
		if err != nil {
			return nil, nil, err
		}
		return drive.NewCatalogRepository(svc, opts.DriveFileID), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("unknown catalog source %q", opts.Source)
}

func openDatabase(ctx context.Context, opts Options) (*postgres.DB, error) {
	if opts.DatabaseURL == "" {
		db, err := postgres.NewDB(&opts.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return db, nil
	}

	sqlDB, err := sql.Open("pgx", opts.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return postgres.Wrap(sqlx.NewDb(sqlDB, "pgx")), nil
}
