package bookinglink

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "owner_id", "slug", "title", "active", "service_ids", "days_in_advance",
	"view_count", "appointment_count", "created_at", "updated_at",
}

func TestRepository_GetBySlug(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM booking_links WHERE slug = $1")).
		WithArgs("anna-studio").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(int64(2), int64(1), "anna-studio", "Anna", true, []byte("{3,4}"), 7, int64(10), int64(1), nil, nil))

	link, err := NewRepository(db).GetBySlug(context.Background(), "anna-studio")
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4}, link.ServiceIDs)
	assert.Equal(t, 7, link.DaysInAdvance)
	assert.True(t, link.Active)
}

func TestRepository_GetBySlug_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM booking_links").WillReturnRows(sqlmock.NewRows(columns))

	_, err = NewRepository(db).GetBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrLinkNotFound)
}

func TestRepository_Counters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_links SET view_count = view_count + 1 WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE booking_links SET appointment_count = appointment_count + 1 WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.IncrementViews(context.Background(), 2))
	assert.ErrorIs(t, repo.IncrementAppointments(context.Background(), 2), ErrLinkNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
