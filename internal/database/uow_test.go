package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestUnitOfWorkCommit(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUnitOfWork(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE categories").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE categories SET name = $1", "books")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWorkRollback(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUnitOfWork(db)
	sentinel := errors.New("category not found")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(tx *sql.Tx) error {
		return sentinel
	})

	// The callback error crosses the boundary unchanged.
	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWorkRollbackFailure(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUnitOfWork(db)
	sentinel := errors.New("category not found")

	mock.ExpectBegin()
	mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

	err := uow.Do(context.Background(), func(tx *sql.Tx) error {
		return sentinel
	})

	// Even with a failed rollback the original error keeps its identity.
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorContains(t, err, "rollback failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWorkBeginError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUnitOfWork(db)

	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	called := false
	err := uow.Do(context.Background(), func(tx *sql.Tx) error {
		called = true
		return nil
	})

	assert.Error(t, err)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUnitOfWorkCommitError(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUnitOfWork(db)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("deadlock detected"))

	err := uow.Do(context.Background(), func(tx *sql.Tx) error {
		return nil
	})

	assert.ErrorContains(t, err, "commit tx")
	assert.NoError(t, mock.ExpectationsWereMet())
}
