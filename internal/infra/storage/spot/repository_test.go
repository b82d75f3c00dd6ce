package spot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/pgerrors"
)

func TestGetByIDLocksInsideTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM parking_spots WHERE id = $1 FOR UPDATE")).
		WithArgs("A035").
		WillReturnRows(sqlmock.NewRows(spotColumns).AddRow("A035", "REGULAR", "OPEN", "", now, now))
	mock.ExpectCommit()

	sqlTx, err := db.Begin()
	require.NoError(t, err)

	ctx := dbmetrics.WithTx(context.Background(), &dbmetrics.SqlTxWrapper{Tx: sqlTx})
	spot, err := NewRepository(db).GetByID(ctx, "A035")
	require.NoError(t, err)
	require.NoError(t, sqlTx.Commit())

	assert.Equal(t, domain.VehicleRegular, spot.VehicleType)
	assert.Equal(t, domain.SpotOpen, spot.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountUnbookedReserved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM parking_spots p WHERE p.status = $1 AND NOT EXISTS (SELECT 1 FROM bookings b")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := NewRepository(db).CountUnbookedReserved(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestCreateDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO parking_spots")).
		WillReturnError(&pq.Error{Code: pgerrors.CodeUniqueViolation})

	_, err = NewRepository(db).Create(context.Background(), &domain.ParkingSpot{ID: "A035", VehicleType: domain.VehicleRegular, Status: domain.SpotOpen})
	assert.ErrorIs(t, err, ErrDuplicateSpot)
}

func TestDeleteInUse(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM parking_spots")).
		WillReturnError(&pq.Error{Code: pgerrors.CodeForeignKeyViolation})

	assert.ErrorIs(t, NewRepository(db).Delete(context.Background(), "A035"), ErrSpotInUse)
}
