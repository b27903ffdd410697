package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"filerelay/internal/model"
	"filerelay/internal/repository"
)

// RecordPostgres is the durable PostgreSQL implementation of
// repository.RecordRepository. It uses database/sql with parameterized queries and
// contains no business logic.
type RecordPostgres struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// NewRecordPostgres creates a new RecordPostgres repository with the given
// retention window.
func NewRecordPostgres(db *sql.DB, ttl time.Duration) *RecordPostgres {
	return &RecordPostgres{db: db, ttl: ttl, now: time.Now}
}

var _ repository.RecordRepository = (*RecordPostgres)(nil)

// Create inserts a new record row and returns the stored record. CreatedAt and
// ExpiresAt are stamped here; the repository owns its retention window.
func (r *RecordPostgres) Create(ctx context.Context, rec *model.TransferRecord) (*model.TransferRecord, error) {
	const q = `
		INSERT INTO transfer_records (short_id, file_id, file_unique_id, name, size, kind, hash, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING short_id, file_id, file_unique_id, name, size, kind, hash, created_at, expires_at
	`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now().UTC()
	}
	row := r.db.QueryRowContext(ctx, q,
		rec.ShortID,
		rec.FileID,
		rec.FileUniqueID,
		rec.Name,
		rec.Size,
		string(rec.Kind),
		rec.Hash,
		createdAt,
		createdAt.Add(r.ttl),
	)
	var out model.TransferRecord
	if err := scanRecord(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Find fetches the record matching both short id and hash, excluding expired rows.
// Miss, hash mismatch and expiry all collapse to ErrRecordNotFound.
func (r *RecordPostgres) Find(ctx context.Context, shortID int, hash string) (*model.TransferRecord, error) {
	const q = `
		SELECT short_id, file_id, file_unique_id, name, size, kind, hash, created_at, expires_at
		FROM transfer_records
		WHERE short_id = $1 AND hash = $2 AND expires_at > now()
	`
	row := r.db.QueryRowContext(ctx, q, shortID, hash)
	var rec model.TransferRecord
	if err := scanRecord(row, &rec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrRecordNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// SweepExpired deletes rows past their retention window and returns the count.
func (r *RecordPostgres) SweepExpired(ctx context.Context) (int, error) {
	const q = `DELETE FROM transfer_records WHERE expires_at < now()`
	res, err := r.db.ExecContext(ctx, q)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// Stats returns the count and total size of all rows currently held, swept or not
// yet swept alike.
func (r *RecordPostgres) Stats(ctx context.Context) (*model.RecordStats, error) {
	const q = `SELECT COUNT(*), COALESCE(SUM(size), 0) FROM transfer_records`
	var st model.RecordStats
	if err := r.db.QueryRowContext(ctx, q).Scan(&st.Count, &st.TotalSize); err != nil {
		return nil, err
	}
	return &st, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner, rec *model.TransferRecord) error {
	var kind string
	if err := row.Scan(
		&rec.ShortID,
		&rec.FileID,
		&rec.FileUniqueID,
		&rec.Name,
		&rec.Size,
		&kind,
		&rec.Hash,
		&rec.CreatedAt,
		&rec.ExpiresAt,
	); err != nil {
		return err
	}
	rec.Kind = model.MediaKind(kind)
	return nil
}
