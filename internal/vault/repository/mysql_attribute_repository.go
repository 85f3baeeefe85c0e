package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cachevault/internal/database"
	apperrors "github.com/allisson/cachevault/internal/errors"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// MySQLAttributeRepository implements Attribute persistence for MySQL databases.
type MySQLAttributeRepository struct {
	db *sql.DB
}

// Upsert inserts the attribute or updates the row matching (entry_id, name).
//
// LAST_INSERT_ID(id) in the update branch makes LastInsertId report the existing row.
func (m *MySQLAttributeRepository) Upsert(
	ctx context.Context,
	attribute *vaultDomain.Attribute,
) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO attributes (entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)
			  ON DUPLICATE KEY UPDATE
				id = LAST_INSERT_ID(id),
				nonce = VALUES(nonce),
				encrypted_value = VALUES(encrypted_value),
				hashed_value = VALUES(hashed_value),
				updated_at = VALUES(updated_at)`

	result, err := querier.ExecContext(
		ctx,
		query,
		attribute.EntryID,
		attribute.Name,
		attribute.Nonce,
		attribute.EncryptedValue,
		attribute.HashedValue,
		attribute.CreatedAt,
		attribute.UpdatedAt,
	)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to upsert attribute")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to read attribute id")
	}

	return id, nil
}

// GetByName retrieves the attribute called name on entryID.
func (m *MySQLAttributeRepository) GetByName(
	ctx context.Context,
	entryID int64,
	name string,
) (*vaultDomain.Attribute, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at
			  FROM attributes
			  WHERE entry_id = ? AND name = ?`

	attribute, err := scanAttribute(querier.QueryRowContext(ctx, query, entryID, name))
	if err != nil {
		return nil, translateAttributeError(err, "failed to get attribute by name")
	}

	return attribute, nil
}

// GetByID retrieves an attribute by its row id.
func (m *MySQLAttributeRepository) GetByID(ctx context.Context, id int64) (*vaultDomain.Attribute, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at
			  FROM attributes
			  WHERE id = ?`

	attribute, err := scanAttribute(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateAttributeError(err, "failed to get attribute by id")
	}

	return attribute, nil
}

// ListByEntryID returns every attribute of entryID in ascending id order.
func (m *MySQLAttributeRepository) ListByEntryID(
	ctx context.Context,
	entryID int64,
) ([]*vaultDomain.Attribute, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at
			  FROM attributes
			  WHERE entry_id = ?
			  ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list attributes")
	}
	return collectAttributes(rows)
}

// DeleteByEntryID removes every attribute of entryID.
func (m *MySQLAttributeRepository) DeleteByEntryID(ctx context.Context, entryID int64) error {
	querier := database.GetTx(ctx, m.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM attributes WHERE entry_id = ?`, entryID); err != nil {
		return apperrors.WrapStorage(err, "failed to delete attributes")
	}
	return nil
}

// NewMySQLAttributeRepository creates a new MySQL Attribute repository instance.
func NewMySQLAttributeRepository(db *sql.DB) *MySQLAttributeRepository {
	return &MySQLAttributeRepository{db: db}
}
