// pkg/db/transaction_engine_test.go
package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"susu-ledger/internal/apperr"
	"susu-ledger/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func TestRunTxRetriesSerializationFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := RunTx(context.Background(), db, func(q repository.DBExecutor) error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTxRetriesSerializationFailureOnCommit(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err := RunTx(context.Background(), db, func(q repository.DBExecutor) error {
		attempts++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTxExhaustsRetryBudget(t *testing.T) {
	db, mock := newMockDB(t)
	for i := 0; i < maxTxAttempts; i++ {
		mock.ExpectBegin()
		mock.ExpectRollback()
	}

	attempts := 0
	err := RunTx(context.Background(), db, func(q repository.DBExecutor) error {
		attempts++
		return &pq.Error{Code: "40001"}
	})
	require.Error(t, err)
	assert.Equal(t, apperr.Aborted, apperr.CodeOf(err))
	assert.Equal(t, maxTxAttempts, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTxDoesNotRetryBusinessErrors(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	cause := apperr.New(apperr.FailedPrecondition, "request is not pending")
	err := RunTx(context.Background(), db, func(q repository.DBExecutor) error {
		attempts++
		return cause
	})
	require.Error(t, err)
	assert.Equal(t, apperr.FailedPrecondition, apperr.CodeOf(err))
	assert.Equal(t, 1, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunTxStopsOnContextCancellation(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	ctx, cancel := context.WithCancel(context.Background())
	attempts := 0
	err := RunTx(ctx, db, func(q repository.DBExecutor) error {
		attempts++
		cancel() // expires during the backoff before the next attempt
		return &pq.Error{Code: "40001"}
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestIsSerializationFailure(t *testing.T) {
	assert.True(t, isSerializationFailure(&pq.Error{Code: "40001"}))
	assert.True(t, isSerializationFailure(&pq.Error{Code: "40P01"}))
	assert.True(t, isSerializationFailure(fmt.Errorf("commit: %w", &pq.Error{Code: "40001"})))

	assert.False(t, isSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, isSerializationFailure(errors.New("request is not pending")))
	assert.False(t, isSerializationFailure(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "40001"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
}
