package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// Index set mirrors the lookup paths: (short_id, hash) for the gated lookup,
// expires_at for the sweep, file_id for provenance queries.
var steps = []migrationStep{
	{
		Name: "create_table_transfer_records",
		SQL: `CREATE TABLE IF NOT EXISTS transfer_records (
  short_id       INTEGER     NOT NULL,
  file_id        TEXT        NOT NULL,
  file_unique_id TEXT        NOT NULL,
  name           TEXT        NOT NULL,
  size           BIGINT      NOT NULL CHECK (size >= 0),
  kind           TEXT        NOT NULL,
  hash           TEXT        NOT NULL,
  created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
  expires_at     TIMESTAMPTZ NOT NULL
);`,
	},
	{
		Name: "create_index_transfer_records_short_id_hash",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_transfer_records_short_id_hash ON transfer_records (short_id, hash);`,
	},
	{
		Name: "create_index_transfer_records_expires_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_transfer_records_expires_at ON transfer_records (expires_at);`,
	},
	{
		Name: "create_index_transfer_records_file_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_transfer_records_file_id ON transfer_records (file_id);`,
	},
}

// EnsureMigrated checks whether the transfer_records table exists and runs the
// migration steps if it does not.
func EnsureMigrated(ctx context.Context, db *sql.DB, logger *slog.Logger, dbHost string) error {
	start := time.Now()
	logger = logger.With(slog.String("db_host", dbHost))

	var exists bool
	query := "SELECT to_regclass('public.transfer_records') IS NOT NULL"
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		logger.Error("db migration failed",
			slog.String("error", fmt.Sprintf("failed to check sentinel table: %v", err)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Info("schema already exists, skipping migration",
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil
	}

	logger.Info("db migration starting")

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error("db migration step failed",
				slog.String("migration_step", step.Name),
				slog.String("error", err.Error()),
				slog.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		logger.Info("db migration step applied",
			slog.String("migration_step", step.Name),
			slog.Int64("step_duration_ms", time.Since(stepStart).Milliseconds()),
		)
	}

	logger.Info("db migration complete",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)
	return nil
}
