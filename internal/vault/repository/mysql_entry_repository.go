package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cachevault/internal/database"
	apperrors "github.com/allisson/cachevault/internal/errors"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// MySQLEntryRepository implements Entry persistence for MySQL databases.
//
// The connection string must enable parseTime so DATETIME columns scan into time.Time.
//
// MySQL has no RETURNING clause. Upsert sets id = LAST_INSERT_ID(id) in the update
// branch so LastInsertId reports the existing row on overwrite as well as on insert.
// The affected-row count is 1 for an insert and 2 for an update.
type MySQLEntryRepository struct {
	db *sql.DB
}

// Upsert inserts the entry or updates the row matching (namespace, key_name).
func (m *MySQLEntryRepository) Upsert(ctx context.Context, entry *vaultDomain.Entry) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO entries (namespace, key_name, nonce, encrypted_value, created_at, updated_at, expired_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				id = LAST_INSERT_ID(id),
				nonce = VALUES(nonce),
				encrypted_value = VALUES(encrypted_value),
				updated_at = VALUES(updated_at),
				expired_at = VALUES(expired_at)`

	result, err := querier.ExecContext(
		ctx,
		query,
		entry.Namespace,
		entry.KeyName,
		entry.Nonce,
		entry.EncryptedValue,
		entry.CreatedAt,
		entry.UpdatedAt,
		nullTime(entry.ExpiredAt),
	)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to upsert entry")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to read entry id")
	}

	return id, nil
}

// GetByName retrieves an entry by its exact (namespace, key name).
func (m *MySQLEntryRepository) GetByName(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLEntryRepository) GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error) {
	querier := database.GetTx(ctx, m.db)

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
func (m *MySQLEntryRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete entry")
	}

	return checkRowsAffected(result, vaultDomain.ErrEntryNotFound, "failed to delete entry")
}

// NewMySQLEntryRepository creates a new MySQL Entry repository instance.
func NewMySQLEntryRepository(db *sql.DB) *MySQLEntryRepository {
	return &MySQLEntryRepository{db: db}
}
