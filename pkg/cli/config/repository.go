package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/secmon-lab/mnemosyne/pkg/domain/interfaces"
	"github.com/secmon-lab/mnemosyne/pkg/repository/jsonfile"
	"github.com/secmon-lab/mnemosyne/pkg/repository/memory"
	"github.com/secmon-lab/mnemosyne/pkg/repository/sqlite"
	"github.com/secmon-lab/mnemosyne/pkg/utils/logging"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend  string
	dataDir  string
	sqliteDB string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (memory, jsonfile or sqlite)",
			Value:       "jsonfile",
			Category:    "Storage",
			Sources:     cli.EnvVars("MNEMOSYNE_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Directory for JSON file documents (jsonfile backend)",
			Value:       "./data",
			Category:    "Storage",
			Sources:     cli.EnvVars("MNEMOSYNE_DATA_DIR"),
			Destination: &r.dataDir,
		},
		&cli.StringFlag{
			Name:        "sqlite-db",
			Usage:       "SQLite database path (sqlite backend)",
			Value:       "./mnemosyne.db",
			Category:    "Storage",
			Sources:     cli.EnvVars("MNEMOSYNE_SQLITE_DB"),
			Destination: &r.sqliteDB,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	case "jsonfile":
		repo, err := jsonfile.New(r.dataDir)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize jsonfile repository")
		}
		logging.Default().Info("Using JSON file repository", "dir", r.dataDir)
		return repo, nil

	case "sqlite":
		repo, err := sqlite.New(r.sqliteDB)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sqlite repository")
		}
		logging.Default().Info("Using SQLite repository", "path", r.sqliteDB)
		return repo, nil

	default:
		return nil, goerr.Wrap(ErrInvalidConfig, "invalid repository backend", goerr.V(BackendKey, r.backend))
	}
}
