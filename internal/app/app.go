// Package app wires configuration into stores and usecases for the binaries.
package app

import (
	"context"
	"errors"
	"fmt"

	"go-candidate-backend/config"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/internal/repository/memory"
	"go-candidate-backend/internal/repository/postgres"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/audit"
	"go-candidate-backend/pkg/database"
	"go-candidate-backend/pkg/logger"
	"go-candidate-backend/pkg/validation"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Storage is an opened store plus the pool behind it, if any.
type Storage struct {
	Store domain.Store
	Pool  *pgxpool.Pool
}

func (s *Storage) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// OpenStorage connects the configured storage driver and migrates the schema
// when migrate is set.
func OpenStorage(ctx context.Context, cfg *config.Config, migrate bool) (*Storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Log.Warn("Using in-memory storage; data is lost on restart")
		return &Storage{Store: memory.NewStore()}, nil
	case config.StorageDriverPostgres:
		if cfg.DBUrl == "" {
			return nil, errors.New("DATABASE_URL is required for the postgres storage driver")
		}
		pool, err := database.NewPostgresConnection(ctx, database.PoolConfig{
			URL:      cfg.DBUrl,
			MaxConns: int32(cfg.DBMaxConns),
			MinConns: int32(cfg.DBMinConns),
		})
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if migrate {
			if err := database.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate database: %w", err)
			}
		}
		return &Storage{Store: postgres.NewStore(pool), Pool: pool}, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

type Usecases struct {
	Candidates domain.CandidateUsecase
	Resumes    domain.ResumeUsecase
	Export     domain.ExportUsecase
}

// NewUsecases builds the usecases over store. A nil recorder disables auditing.
func NewUsecases(store domain.Store, recorder audit.Recorder) Usecases {
	validate := validation.New()
	return Usecases{
		Candidates: usecase.NewCandidateUsecase(store, validate, recorder),
		Resumes:    usecase.NewResumeUsecase(store, validate, recorder),
		Export:     usecase.NewExportUsecase(store),
	}
}
