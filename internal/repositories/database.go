package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/industrial-parts-storefront/internal/config"
	"go.opentelemetry.io/otel/attribute"

	_ "github.com/lib/pq"
)

type Repository struct {
	DB *sql.DB
}

// New opens the traced Postgres pool and builds the repositories on top of
// it.
func New(ctx context.Context, cfg *config.Config) (*Repository, MachineRepository, PartsRequestRepository, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.name", cfg.Database.Name),
		),
	)

	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	postgresInstance := &Repository{DB: db}
	partsRequestRepo := NewPartsRequestRepo(db)

	var machineRepo MachineRepository
	if cfg.Storefront.CatalogSource == "postgres" {
		machineRepo = NewMachineRepo(db)
	} else {
		machineRepo = NewStaticMachineRepo(nil)
	}

	return postgresInstance, machineRepo, partsRequestRepo, nil
}

func (p *Repository) Close() error {
	return p.DB.Close()
}
