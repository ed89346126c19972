package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/pkg/dbmetrics"
)

const updateQuery = `UPDATE bookings SET status = \$1 WHERE id = \$2`

func newManager(t *testing.T) (*TransactionManager, *dbmetrics.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := dbmetrics.Wrap(sqlDB, nil)
	return NewTransactionManager(db), db, mock
}

func updateStatus(ctx context.Context, db dbmetrics.DBExecutor) error {
	_, err := dbmetrics.GetExecutor(ctx, db).ExecContext(ctx, "UPDATE bookings SET status = $1 WHERE id = $2", "Confirmed", "BA-2025-0420")
	return err
}

func TestTransactionManager_Commit(t *testing.T) {
	tm, db, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectExec(updateQuery).WithArgs("Confirmed", "BA-2025-0420").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return updateStatus(ctx, db)
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	tm, db, mock := newManager(t)
	errBusiness := errors.New("booking is cancelled")
	mock.ExpectBegin()
	mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		if err := updateStatus(ctx, db); err != nil {
			return err
		}
		return errBusiness
	})

	assert.Same(t, errBusiness, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_RollbackAndRepanic(t *testing.T) {
	tm, _, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = tm.Do(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_NestedReusesOuterTx(t *testing.T) {
	tm, db, mock := newManager(t)
	mock.ExpectBegin()
	mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(updateQuery).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tm.DoSerializable(context.Background(), func(outer context.Context) error {
		if err := updateStatus(outer, db); err != nil {
			return err
		}
		return tm.Do(outer, func(inner context.Context) error {
			assert.Same(t, dbmetrics.GetExecutor(outer, db), dbmetrics.GetExecutor(inner, db))
			return updateStatus(inner, db)
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_CommitFailure(t *testing.T) {
	tests := []struct {
		name          string
		commitErr     error
		wantRetryable bool
	}{
		{"serialization failure", &pq.Error{Code: "40001"}, true},
		{"deadlock", &pq.Error{Code: "40P01"}, true},
		{"deferred constraint", &pq.Error{Code: "23503"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, _, mock := newManager(t)
			mock.ExpectBegin()
			mock.ExpectCommit().WillReturnError(tt.commitErr)

			err := tm.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrCommitTx)
			assert.ErrorIs(t, err, domain.ErrStorage)
			var pqErr *pq.Error
			assert.ErrorAs(t, err, &pqErr)
			assert.Equal(t, tt.wantRetryable, domain.IsRetryable(err))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTransactionManager_BeginFailure(t *testing.T) {
	tm, _, mock := newManager(t)
	mock.ExpectBegin().WillReturnError(&pq.Error{Code: "08006"})
	called := false

	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.False(t, called)
	assert.ErrorIs(t, err, ErrBeginTx)
	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.True(t, domain.IsRetryable(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactionManager_ReadOnlyOptions(t *testing.T) {
	var got *sql.TxOptions
	tm := NewTransactionManager(beginnerFunc(func(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
		got = opts
		return nil, &pq.Error{Code: "57P01"}
	}))

	err := tm.DoReadOnly(context.Background(), func(ctx context.Context) error { return nil })

	require.Error(t, err)
	require.NotNil(t, got)
	assert.True(t, got.ReadOnly)
}

type beginnerFunc func(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)

func (f beginnerFunc) BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	return f(ctx, opts)
}
