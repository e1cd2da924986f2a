package financial

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_AppendIncome(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO financial_records (owner_id,type,amount,appointment_id,memo)")).
		WithArgs(int64(1), "income", 90.0, int64(5), "appointment #5").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))

	id, err := repo.AppendIncome(context.Background(), 1, 90, 5, "appointment #5")
	require.NoError(t, err)
	assert.Equal(t, int64(21), id)

	// вторая запись для той же записи клиента не создается
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (appointment_id) DO NOTHING")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = repo.AppendIncome(context.Background(), 1, 90, 5, "appointment #5")
	assert.ErrorIs(t, err, ErrRecordExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByAppointmentID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM financial_records WHERE appointment_id = $1 AND owner_id = $2")).
		WithArgs(int64(5), int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "owner_id", "type", "amount", "appointment_id", "memo", "created_at"}).
			AddRow(int64(21), int64(1), "income", 90.0, int64(5), "memo", now))

	rec, err := NewRepository(db).GetByAppointmentID(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(21), rec.ID)
	require.NotNil(t, rec.AppointmentID)
	assert.Equal(t, int64(5), *rec.AppointmentID)
}

func TestRepository_DeleteByAppointmentID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM financial_records WHERE appointment_id = $1 AND owner_id = $2")).
		WithArgs(int64(5), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.DeleteByAppointmentID(context.Background(), 1, 5))

	mock.ExpectExec("DELETE FROM financial_records").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.DeleteByAppointmentID(context.Background(), 1, 5), ErrRecordNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
