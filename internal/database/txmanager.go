package database

import (
	"context"
	"database/sql"
	"errors"

	apperrors "github.com/allisson/cachevault/internal/errors"
)

// txKey carries the active *sql.Tx through a context.
type txKey struct{}

// Querier is satisfied by both *sql.DB and *sql.Tx, so repositories run the same
// statements inside and outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// TxManager runs a unit of work atomically.
//
// Repositories pick up the transaction through GetTx, so the same repository method
// works inside and outside WithTx:
//
//	err := txManager.WithTx(ctx, func(ctx context.Context) error {
//	    if err := attributes.DeleteByEntryID(ctx, entry.ID); err != nil {
//	        return err
//	    }
//	    return entries.Delete(ctx, entry.ID)
//	})
//
// Begin, commit and rollback failures are reported as apperrors.ErrStorage.
type TxManager interface {
	// WithTx runs fn inside a transaction carried by the context passed to fn. A
	// call made while a transaction is already active joins it, and the outermost
	// call decides commit or rollback.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type sqlTxManager struct {
	db *sql.DB
}

// NewTxManager creates a TxManager over db.
func NewTxManager(db *sql.DB) TxManager {
	return &sqlTxManager{db: db}
}

func (m *sqlTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.WrapStorage(err, "failed to begin transaction")
	}

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			return errors.Join(err, apperrors.WrapStorage(rbErr, "failed to roll back transaction"))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.WrapStorage(err, "failed to commit transaction")
	}
	return nil
}

// GetTx returns the transaction carried by ctx, or db when there is none.
func GetTx(ctx context.Context, db *sql.DB) Querier {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return db
}
