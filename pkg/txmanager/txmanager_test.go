package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homemcom/AgendaService/pkg/dbmetrics"
)

type fakeTx struct {
	commits   int
	rollbacks int
	commitErr error
}

func (f *fakeTx) QueryContext(_ context.Context, _ string, _ ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (f *fakeTx) QueryRowContext(_ context.Context, _ string, _ ...interface{}) *sql.Row {
	return nil
}

func (f *fakeTx) ExecContext(_ context.Context, _ string, _ ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (f *fakeTx) Commit() error   { f.commits++; return f.commitErr }
func (f *fakeTx) Rollback() error { f.rollbacks++; return nil }

type fakeDB struct {
	tx       *fakeTx
	beginErr error

	begins   int
	lastOpts *sql.TxOptions
}

func (f *fakeDB) BeginTx(_ context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	f.begins++
	f.lastOpts = opts
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return f.tx, nil
}

func serializationFailure() error {
	return &pq.Error{Code: "40001"}
}

func TestDo(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(ctx context.Context) error {
		// Транзакция доступна репозиториям через контекст
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 1, db.begins)
	assert.Equal(t, 1, db.tx.commits)
	assert.Equal(t, 0, db.tx.rollbacks)
}

func TestDo_RollbackOnError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	boom := errors.New("boom")
	err := m.Do(context.Background(), func(_ context.Context) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	assert.Equal(t, 0, db.tx.commits)
	assert.Equal(t, 1, db.tx.rollbacks)
}

func TestDo_BeginError(t *testing.T) {
	db := &fakeDB{beginErr: errors.New("connection refused")}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(_ context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTxBegin)
}

func TestDo_CommitError(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{commitErr: errors.New("broken pipe")}}
	m := NewTransactionManager(db)

	err := m.Do(context.Background(), func(_ context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrTxCommit)
}

func TestDoReadOnly(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	err := m.DoReadOnly(context.Background(), func(_ context.Context) error { return nil })
	require.NoError(t, err)

	require.NotNil(t, db.lastOpts)
	assert.True(t, db.lastOpts.ReadOnly)
}

func TestDoSerializable(t *testing.T) {
	t.Run("sets serializable isolation", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		err := m.DoSerializable(context.Background(), func(_ context.Context) error { return nil })
		require.NoError(t, err)

		require.NotNil(t, db.lastOpts)
		assert.Equal(t, sql.LevelSerializable, db.lastOpts.Isolation)
	})

	t.Run("retries serialization failure up to the limit", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		attempts := 0
		err := m.DoSerializable(context.Background(), func(_ context.Context) error {
			attempts++
			return serializationFailure()
		})

		var pqErr *pq.Error
		require.ErrorAs(t, err, &pqErr)
		assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)

		// Три попытки, все откачены
		assert.Equal(t, maxSerializableRetries, attempts)
		assert.Equal(t, maxSerializableRetries, db.begins)
		assert.Equal(t, maxSerializableRetries, db.tx.rollbacks)
		assert.Equal(t, 0, db.tx.commits)
	})

	t.Run("second attempt wins after a conflict", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		attempts := 0
		err := m.DoSerializable(context.Background(), func(_ context.Context) error {
			attempts++
			if attempts == 1 {
				return serializationFailure()
			}
			return nil
		})
		require.NoError(t, err)

		assert.Equal(t, 2, attempts)
		assert.Equal(t, 2, db.begins)
		assert.Equal(t, 1, db.tx.rollbacks)
		assert.Equal(t, 1, db.tx.commits)
	})

	t.Run("business errors are not retried", func(t *testing.T) {
		db := &fakeDB{tx: &fakeTx{}}
		m := NewTransactionManager(db)

		boom := errors.New("slot not available")
		err := m.DoSerializable(context.Background(), func(_ context.Context) error {
			return boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, db.begins)
	})
}
