package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestGormTxManager_WithinTx(t *testing.T) {
	t.Run("commits on success", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		tm := NewGormTxManager(gormDB)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.WithinTx(context.Background(), func(ctx context.Context) error {
			tx, ok := ctx.Value(txKey{}).(*gorm.DB)
			assert.True(t, ok)
			assert.NotNil(t, tx)
			return nil
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		tm := NewGormTxManager(gormDB)

		mock.ExpectBegin()
		mock.ExpectRollback()

		wantErr := errors.New("boom")
		err := tm.WithinTx(context.Background(), func(ctx context.Context) error {
			return wantErr
		})

		assert.Equal(t, wantErr, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins the outer transaction", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		tm := NewGormTxManager(gormDB)

		// Only one begin/commit pair for the nested pair of calls
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.WithinTx(context.Background(), func(outer context.Context) error {
			return tm.WithinTx(outer, func(inner context.Context) error {
				assert.Equal(t, outer.Value(txKey{}), inner.Value(txKey{}))
				return nil
			})
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDBFromContext(t *testing.T) {
	gormDB, _, mockDB := newMockGormDB(t)
	defer mockDB.Close()

	t.Run("falls back to base connection", func(t *testing.T) {
		db := dbFromContext(context.Background(), gormDB)
		assert.NotNil(t, db)
	})

	t.Run("prefers the context transaction", func(t *testing.T) {
		_, mock2, mockDB2 := newMockGormDB(t)
		defer mockDB2.Close()
		_ = mock2

		ctx := context.WithValue(context.Background(), txKey{}, gormDB)
		db := dbFromContext(ctx, nil)
		assert.NotNil(t, db)
	})
}
