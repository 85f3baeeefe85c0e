package repository

import (
	"database/sql"
	"errors"
	"time"

	apperrors "github.com/allisson/cachevault/internal/errors"
	vaultDomain "github.com/allisson/cachevault/internal/vault/domain"
)

// nullTime converts an optional time into a driver value, nil meaning SQL NULL.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// checkRowsAffected maps a write that touched no row to notFound.
func checkRowsAffected(result sql.Result, notFound error, message string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.WrapStorage(err, message)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

// scanAttribute reads one attributes row selected in the canonical column order.
func scanAttribute(row interface{ Scan(dest ...any) error }) (*vaultDomain.Attribute, error) {
	var attribute vaultDomain.Attribute

	err := row.Scan(
		&attribute.ID,
		&attribute.EntryID,
		&attribute.Name,
		&attribute.Nonce,
		&attribute.EncryptedValue,
		&attribute.HashedValue,
		&attribute.CreatedAt,
		&attribute.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &attribute, nil
}

// collectAttributes drains rows and closes them.
func collectAttributes(rows *sql.Rows) ([]*vaultDomain.Attribute, error) {
	defer func() {
		_ = rows.Close()
	}()

	var attributes []*vaultDomain.Attribute
	for rows.Next() {
		attribute, err := scanAttribute(rows)
		if err != nil {
			return nil, apperrors.WrapStorage(err, "failed to scan attribute")
		}
		attributes = append(attributes, attribute)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.WrapStorage(err, "failed to iterate attributes")
	}

	return attributes, nil
}

func translateAttributeError(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return vaultDomain.ErrAttributeNotFound
	}
	return apperrors.WrapStorage(err, message)
}
