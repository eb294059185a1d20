package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UnitOfWork wraps a set of store operations in a single commit-or-rollback
// transaction. Services open one unit per mutating call; no transaction is
// shared across requests.
type UnitOfWork struct {
	db *sql.DB
}

// NewUnitOfWork creates a UnitOfWork over the given connection pool.
func NewUnitOfWork(db *sql.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do begins a transaction, runs fn, and commits when fn returns nil. Any
// error from fn rolls the transaction back and is returned unchanged, so
// sentinel errors survive the boundary.
func (u *UnitOfWork) Do(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
