package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehouse/backend/internal/domain/sequence"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

func TestGormCounterRepository_Next(t *testing.T) {
	t.Run("returns post-increment value", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCounterRepository(gormDB)

		tenantID := uuid.New()

		mock.ExpectQuery(`INSERT INTO sequence_counters .* ON CONFLICT \(tenant_id, series\)`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(7)))

		value, err := repo.Next(context.Background(), tenantID, sequence.SeriesOrder)

		assert.NoError(t, err)
		assert.Equal(t, int64(7), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects unknown series", func(t *testing.T) {
		gormDB, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCounterRepository(gormDB)

		_, err := repo.Next(context.Background(), uuid.New(), sequence.Series("bogus"))
		assert.Error(t, err)
	})
}

func TestGormCounterRepository_Current(t *testing.T) {
	t.Run("returns stored value", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCounterRepository(gormDB)

		tenantID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "tenant_id", "series", "value"}).
			AddRow(uuid.New(), tenantID, "order", int64(42))
		mock.ExpectQuery(`SELECT \* FROM "sequence_counters" WHERE tenant_id = \$1 AND series = \$2 ORDER BY .* LIMIT .*`).
			WithArgs(tenantID, sequence.SeriesOrder, 1).
			WillReturnRows(rows)

		value, err := repo.Current(context.Background(), tenantID, sequence.SeriesOrder)

		assert.NoError(t, err)
		assert.Equal(t, int64(42), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns zero for unused counter", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCounterRepository(gormDB)

		mock.ExpectQuery(`SELECT \* FROM "sequence_counters"`).
			WillReturnError(gorm.ErrRecordNotFound)

		value, err := repo.Current(context.Background(), uuid.New(), sequence.SeriesPayment)

		assert.NoError(t, err)
		assert.Equal(t, int64(0), value)
	})
}

func TestGormCounterRepository_Resync(t *testing.T) {
	t.Run("returns greatest of current and issued max", func(t *testing.T) {
		gormDB, mock, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCounterRepository(gormDB)

		mock.ExpectQuery(`INSERT INTO sequence_counters .* GREATEST\(sequence_counters\.value, EXCLUDED\.value\)`).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(int64(100)))

		value, err := repo.Resync(context.Background(), uuid.New(), sequence.SeriesOrder, 100)

		assert.NoError(t, err)
		assert.Equal(t, int64(100), value)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects negative issued max", func(t *testing.T) {
		gormDB, _, mockDB := newMockGormDB(t)
		defer mockDB.Close()
		repo := NewGormCounterRepository(gormDB)

		_, err := repo.Resync(context.Background(), uuid.New(), sequence.SeriesOrder, -1)
		assert.Error(t, err)
	})
}
