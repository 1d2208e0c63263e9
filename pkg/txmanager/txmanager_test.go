package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingBeginner struct{}

func (failingBeginner) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return nil, errors.New("connection refused")
}

type nopExecutor struct{ DBExecutor }

func TestGetExecutor_NoTransaction(t *testing.T) {
	fallback := &nopExecutor{}

	got := GetExecutor(context.Background(), fallback)

	assert.Same(t, fallback, got)
	assert.False(t, IsInTransaction(context.Background()))
}

func TestManager_BeginFailure(t *testing.T) {
	m := NewTransactionManager(failingBeginner{})
	called := false

	err := m.Do(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBeginTx)
	assert.False(t, called)
}

func newMockManager(t *testing.T) (*Manager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTransactionManager(db), mock
}

func TestManager_Commit(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		assert.True(t, IsInTransaction(ctx))
		_, isTx := GetExecutor(ctx, &nopExecutor{}).(*sql.Tx)
		assert.True(t, isTx)
		return nil
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_RollbackOnError(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	errWrite := errors.New("write failed")

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return errWrite
	})

	assert.ErrorIs(t, err, errWrite)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_CommitFailure(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := m.Do(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommitTx)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestManager_NestedReusesOuterTransaction(t *testing.T) {
	m, mock := newMockManager(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(inner context.Context) error {
			assert.Same(t, GetExecutor(ctx, nil), GetExecutor(inner, nil))
			return nil
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
