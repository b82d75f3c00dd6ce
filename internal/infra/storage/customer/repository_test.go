package customer

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByAccountID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE account_id = $1")).
		WithArgs("acc-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "account_id", "name", "is_employee", "created_at"}).
			AddRow(int64(7), "acc-1", "Ann", true, time.Now()))
	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE account_id = $1")).
		WithArgs("acc-2").
		WillReturnError(sql.ErrNoRows)

	repo := NewRepository(db)

	c, err := repo.GetByAccountID(context.Background(), "acc-1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), c.ID)
	assert.True(t, c.IsEmployee)

	_, err = repo.GetByAccountID(context.Background(), "acc-2")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
