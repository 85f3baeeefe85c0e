package repository

import (
	"context"
	"database/sql"

	"github.com/allisson/cachevault/internal/database"
	apperrors "github.com/allisson/cachevault/internal/errors"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// PostgreSQLAttributeRepository implements Attribute persistence for PostgreSQL databases.
type PostgreSQLAttributeRepository struct {
	db *sql.DB
}

// Upsert inserts the attribute or, when (entry_id, name) already exists, replaces its
// nonce, ciphertext, digest and updated_at. Returns the row id in both cases.
func (p *PostgreSQLAttributeRepository) Upsert(
	ctx context.Context,
	attribute *vaultDomain.Attribute,
) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO attributes (entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (entry_id, name) DO UPDATE SET
				nonce = EXCLUDED.nonce,
				encrypted_value = EXCLUDED.encrypted_value,
				hashed_value = EXCLUDED.hashed_value,
				updated_at = EXCLUDED.updated_at
			  RETURNING id`

	var id int64
	err := querier.QueryRowContext(
		ctx,
		query,
		attribute.EntryID,
		attribute.Name,
		attribute.Nonce,
		attribute.EncryptedValue,
		attribute.HashedValue,
		attribute.CreatedAt,
		attribute.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return 0, apperrors.WrapStorage(err, "failed to upsert attribute")
	}

	return id, nil
}

// GetByName retrieves the attribute called name on entryID.
func (p *PostgreSQLAttributeRepository) GetByName(
	ctx context.Context,
	entryID int64,
	name string,
) (*vaultDomain.Attribute, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at
			  FROM attributes
			  WHERE entry_id = $1 AND name = $2`

	attribute, err := scanAttribute(querier.QueryRowContext(ctx, query, entryID, name))
	if err != nil {
		return nil, translateAttributeError(err, "failed to get attribute by name")
	}

	return attribute, nil
}

// GetByID retrieves an attribute by its row id.
func (p *PostgreSQLAttributeRepository) GetByID(ctx context.Context, id int64) (*vaultDomain.Attribute, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at
			  FROM attributes
			  WHERE id = $1`

	attribute, err := scanAttribute(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translateAttributeError(err, "failed to get attribute by id")
	}

	return attribute, nil
}

// ListByEntryID returns every attribute of entryID in ascending id order.
func (p *PostgreSQLAttributeRepository) ListByEntryID(
	ctx context.Context,
	entryID int64,
) ([]*vaultDomain.Attribute, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, entry_id, name, nonce, encrypted_value, hashed_value, created_at, updated_at
			  FROM attributes
			  WHERE entry_id = $1
			  ORDER BY id ASC`

	rows, err := querier.QueryContext(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.WrapStorage(err, "failed to list attributes")
	}
	return collectAttributes(rows)
}

// DeleteByEntryID removes every attribute of entryID.
func (p *PostgreSQLAttributeRepository) DeleteByEntryID(ctx context.Context, entryID int64) error {
	querier := database.GetTx(ctx, p.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM attributes WHERE entry_id = $1`, entryID); err != nil {
		return apperrors.WrapStorage(err, "failed to delete attributes")
	}
	return nil
}

// NewPostgreSQLAttributeRepository creates a new PostgreSQL Attribute repository instance.
func NewPostgreSQLAttributeRepository(db *sql.DB) *PostgreSQLAttributeRepository {
	return &PostgreSQLAttributeRepository{db: db}
}
