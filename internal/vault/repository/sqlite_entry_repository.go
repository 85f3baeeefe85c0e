package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cachevault/internal/database"
	apperrors "github.com/allisson/cachevault/internal/errors"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// SQLiteEntryRepository implements Entry persistence for the embedded libSQL engine.
//
// Dialect notes:
//   - upserts use ON CONFLICT ... DO UPDATE with RETURNING id, so the id of an
//     existing row comes back without a second query
//   - created_at is never part of the update set, so it keeps the first insert time
//   - every statement goes through database.GetTx and joins an active transaction
type SQLiteEntryRepository struct {
	db *sql.DB
}

// Upsert inserts the entry or, when (namespace, key_name) already exists, replaces its
// nonce, ciphertext, updated_at and expired_at. Returns the row id in both cases.
func (s *SQLiteEntryRepository) Upsert(ctx context.Context, entry *vaultDomain.Entry) (int64, error) {
	querier := database.GetTx(ctx, s.db)

	query := `INSERT INTO entries (namespace, key_name, nonce, encrypted_value, created_at, updated_at, expired_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT (namespace, key_name) DO UPDATE SET
				nonce = excluded.nonce,
				encrypted_value = excluded.encrypted_value,
				updated_at = excluded.updated_at,
				expired_at = excluded.expired_at
			  RETURNING id`

	var id int64
	err := querier.QueryRowContext(
		ctx,
		query,
		entry.Namespace,
		entry.KeyName,
		entry.Nonce,
		entry.EncryptedValue,
		entry.CreatedAt,
		entry.UpdatedAt,
		nullTime(entry.ExpiredAt),
	).Scan(&id)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to upsert entry")
	}

	return id, nil
}

// GetByName retrieves an entry by its exact (namespace, key name).
func (s *SQLiteEntryRepository) GetByName(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Entry, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, namespace, key_name, nonce, encrypted_value, created_at, updated_at, expired_at
			  FROM entries
			  WHERE namespace = ? AND key_name = ?`

	entry, err := scanEntry(querier.QueryRowContext(ctx, query, namespace, keyName))
	if err != nil {
		return nil, translateEntryError(err, "failed to get entry by name")
	}

	return entry, nil
}

// GetByID retrieves an entry by its row id.
func (s *SQLiteEntryRepository) GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error) {
	querier := database.GetTx(ctx, s.db)

	query := `SELECT id, namespace, key_name, nonce, encrypted_value, created_at, updated_at, expired_at
			  FROM entries
			  WHERE id = ?`

	entry, err := scanEntry(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateEntryError(err, "failed to get entry by id")
	}

	return entry, nil
}

// Delete removes an entry by id. Returns ErrEntryNotFound when no row was removed.
func (s *SQLiteEntryRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, s.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete entry")
	}

	return checkRowsAffected(result, vaultDomain.ErrEntryNotFound, "failed to delete entry")
}

// NewSQLiteEntryRepository creates a new SQLite Entry repository instance.
func NewSQLiteEntryRepository(db *sql.DB) *SQLiteEntryRepository {
	return &SQLiteEntryRepository{db: db}
}
