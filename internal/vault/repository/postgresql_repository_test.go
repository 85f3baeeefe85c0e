package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/cachevault/internal/errors"
	"github.com/allisson/cachevault/internal/testutil"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

var (
	entryColumns = []string{
		"id", "namespace", "key_name", "nonce", "encrypted_value", "created_at", "updated_at", "expired_at",
	}
	attributeColumns = []string{
		"id", "entry_id", "name", "nonce", "encrypted_value", "hashed_value", "created_at", "updated_at",
	}
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db, mock
}

func TestPostgreSQLEntryRepository_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the row id", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		entry := newTestEntry("default", "api-token")

		mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (namespace, key_name) DO UPDATE SET")).
			WithArgs(
				entry.Namespace,
				entry.KeyName,
				entry.Nonce,
				entry.EncryptedValue,
				entry.CreatedAt,
				entry.UpdatedAt,
				nil,
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

		id, err := repo.Upsert(ctx, entry)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("binds the expiry in utc", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		expiredAt := time.Date(2030, 1, 2, 3, 4, 5, 0, time.FixedZone("UTC-3", -3*60*60))
		entry := newTestEntry("default", "api-token")
		entry.ExpiredAt = &expiredAt

		mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (namespace, key_name) DO UPDATE SET")).
			WithArgs(
				entry.Namespace,
				entry.KeyName,
				entry.Nonce,
				entry.EncryptedValue,
				entry.CreatedAt,
				entry.UpdatedAt,
				expiredAt.UTC(),
			).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

		id, err := repo.Upsert(ctx, entry)
		require.NoError(t, err)
		assert.Equal(t, int64(8), id)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error is a storage failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		driverErr := errors.New("connection reset")

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO entries")).WillReturnError(driverErr)

		_, err := repo.Upsert(ctx, newTestEntry("default", "api-token"))
		assert.ErrorIs(t, err, apperrors.ErrStorage)
		assert.ErrorIs(t, err, driverErr)
		assert.Contains(t, err.Error(), "failed to upsert entry")
	})
}

func TestPostgreSQLEntryRepository_GetByName(t *testing.T) {
	ctx := context.Background()
	query := regexp.QuoteMeta("WHERE namespace = $1 AND key_name = $2")

	t.Run("found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)
		now := time.Now().UTC()
		expiredAt := now.Add(time.Hour)

		mock.ExpectQuery(query).
			WithArgs("default", "api-token").
			WillReturnRows(sqlmock.NewRows(entryColumns).
				AddRow(int64(3), "default", "api-token", []byte("nonce"), []byte("ct"), now, now, expiredAt))

		entry, err := repo.GetByName(ctx, "default", "api-token")
		require.NoError(t, err)
		assert.Equal(t, int64(3), entry.ID)
		assert.Equal(t, []byte("ct"), entry.EncryptedValue)
		require.NotNil(t, entry.ExpiredAt)
		assert.Equal(t, expiredAt, *entry.ExpiredAt)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(query).WithArgs("default", "missing").WillReturnError(sql.ErrNoRows)

		entry, err := repo.GetByName(ctx, "default", "missing")
		assert.Nil(t, entry)
		assert.ErrorIs(t, err, vaultDomain.ErrEntryNotFound)
		assert.False(t, errors.Is(err, apperrors.ErrStorage))
	})

	t.Run("storage failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectQuery(query).WillReturnError(sql.ErrConnDone)

		_, err := repo.GetByName(ctx, "default", "api-token")
		assert.ErrorIs(t, err, apperrors.ErrStorage)
		assert.False(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestPostgreSQLEntryRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deleted", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries WHERE id = $1")).
			WithArgs(int64(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLEntryRepository(db)

		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM entries")).WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, 3), vaultDomain.ErrEntryNotFound)
	})
}

func TestPostgreSQLAttributeRepository_Upsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLAttributeRepository(db)
	attribute := newTestAttribute(3, "email")

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (entry_id, name) DO UPDATE SET")).
		WithArgs(
			attribute.EntryID,
			attribute.Name,
			attribute.Nonce,
			attribute.EncryptedValue,
			attribute.HashedValue,
			attribute.CreatedAt,
			attribute.UpdatedAt,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := repo.Upsert(context.Background(), attribute)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLAttributeRepository_ListByEntryID(t *testing.T) {
	ctx := context.Background()

	t.Run("ordered rows", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAttributeRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("ORDER BY id ASC")).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(attributeColumns).
				AddRow(int64(1), int64(3), "zeta", []byte("n"), []byte("c"), make([]byte, 32), now, now).
				AddRow(int64(2), int64(3), "alpha", []byte("n"), []byte("c"), make([]byte, 32), now, now))

		attributes, err := repo.ListByEntryID(ctx, 3)
		require.NoError(t, err)
		require.Len(t, attributes, 2)
		assert.Equal(t, "zeta", attributes[0].Name)
		assert.Equal(t, "alpha", attributes[1].Name)
	})

	t.Run("row error", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewPostgreSQLAttributeRepository(db)
		now := time.Now().UTC()

		mock.ExpectQuery(regexp.QuoteMeta("FROM attributes")).
			WillReturnRows(sqlmock.NewRows(attributeColumns).
				AddRow(int64(1), int64(3), "zeta", []byte("n"), []byte("c"), make([]byte, 32), now, now).
				RowError(0, errors.New("broken row")))

		_, err := repo.ListByEntryID(ctx, 3)
		assert.ErrorIs(t, err, apperrors.ErrStorage)
	})
}

func TestPostgreSQLAttributeRepository_GetByName(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPostgreSQLAttributeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE entry_id = $1 AND name = $2")).
		WithArgs(int64(3), "phone").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByName(context.Background(), 3, "phone")
	assert.ErrorIs(t, err, vaultDomain.ErrAttributeNotFound)
}

func TestPostgreSQLRepositories_Integration(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	db := testutil.SetupPostgresDB(t)
	defer testutil.TeardownDB(t, db)
	defer testutil.CleanupPostgresDB(t, db)

	ctx := context.Background()
	entries := NewPostgreSQLEntryRepository(db)
	attributes := NewPostgreSQLAttributeRepository(db)

	id, err := entries.Upsert(ctx, newTestEntry("default", "api-token"))
	require.NoError(t, err)
	sameID, err := entries.Upsert(ctx, newTestEntry("default", "api-token"))
	require.NoError(t, err)
	assert.Equal(t, id, sameID)

	attrID, err := attributes.Upsert(ctx, newTestAttribute(id, "email"))
	require.NoError(t, err)
	sameAttrID, err := attributes.Upsert(ctx, newTestAttribute(id, "email"))
	require.NoError(t, err)
	assert.Equal(t, attrID, sameAttrID)

	require.NoError(t, entries.Delete(ctx, id))
	assert.Equal(t, 0, testutil.CountRows(t, db, "attributes"))
}
