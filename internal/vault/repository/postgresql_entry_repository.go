// Package repository implements data persistence for vault entries and attributes.
// Repositories exist for PostgreSQL, MySQL and the embedded libSQL (SQLite) engine;
// every write is a native upsert keyed on the record's natural identity.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/cachevault/internal/database"
	apperrors "github.com/allisson/cachevault/internal/errors"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// PostgreSQLEntryRepository implements Entry persistence for PostgreSQL databases.
type PostgreSQLEntryRepository struct {
	db *sql.DB
}

// Upsert inserts the entry or, when (namespace, key_name) already exists, replaces its
// nonce, ciphertext, updated_at and expired_at. Returns the row id in both cases.
func (p *PostgreSQLEntryRepository) Upsert(ctx context.Context, entry *vaultDomain.Entry) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO entries (namespace, key_name, nonce, encrypted_value, created_at, updated_at, expired_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (namespace, key_name) DO UPDATE SET
				nonce = EXCLUDED.nonce,
				encrypted_value = EXCLUDED.encrypted_value,
				updated_at = EXCLUDED.updated_at,
				expired_at = EXCLUDED.expired_at
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
func (p *PostgreSQLEntryRepository) GetByName(
	ctx context.Context,
	namespace, keyName string,
) (*vaultDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, namespace, key_name, nonce, encrypted_value, created_at, updated_at, expired_at
			  FROM entries
			  WHERE namespace = $1 AND key_name = $2`

	entry, err := scanEntry(querier.QueryRowContext(ctx, query, namespace, keyName))
	if err != nil {
		return nil, translateEntryError(err, "failed to get entry by name")
	}

	return entry, nil
}

// GetByID retrieves an entry by its row id.
func (p *PostgreSQLEntryRepository) GetByID(ctx context.Context, id int64) (*vaultDomain.Entry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, namespace, key_name, nonce, encrypted_value, created_at, updated_at, expired_at
			  FROM entries
			  WHERE id = $1`

	entry, err := scanEntry(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateEntryError(err, "failed to get entry by id")
	}

	return entry, nil
}

// Delete removes an entry by id. Returns ErrEntryNotFound when no row was removed.
func (p *PostgreSQLEntryRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to delete entry")
	}

	return checkRowsAffected(result, vaultDomain.ErrEntryNotFound, "failed to delete entry")
}

// NewPostgreSQLEntryRepository creates a new PostgreSQL Entry repository instance.
func NewPostgreSQLEntryRepository(db *sql.DB) *PostgreSQLEntryRepository {
	return &PostgreSQLEntryRepository{db: db}
}

// scanEntry reads one entries row selected in the canonical column order.
func scanEntry(row *sql.Row) (*vaultDomain.Entry, error) {
	var entry vaultDomain.Entry
	var expiredAt sql.NullTime

	err := row.Scan(
		&entry.ID,
		&entry.Namespace,
		&entry.KeyName,
		&entry.Nonce,
		&entry.EncryptedValue,
		&entry.CreatedAt,
		&entry.UpdatedAt,
		&expiredAt,
	)
	if err != nil {
		return nil, err
	}
	entry.ExpiredAt = timePtr(expiredAt)

	return &entry, nil
}

func translateEntryError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return vaultDomain.ErrEntryNotFound
	}
	return apperrors.WrapStorage(err, message)
}
