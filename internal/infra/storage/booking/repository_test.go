package booking

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/EventsBookingService/internal/domain"
	"github.com/m04kA/EventsBookingService/pkg/dbmetrics"
	"github.com/m04kA/EventsBookingService/pkg/ptr"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func rowValues(r *BookingRow) []driver.Value {
	opt := func(s *string) driver.Value {
		if s == nil {
			return nil
		}
		return *s
	}
	optTime := func(tm *time.Time) driver.Value {
		if tm == nil {
			return nil
		}
		return *tm
	}
	var guests, total driver.Value
	if r.GuestCount != nil {
		guests = *r.GuestCount
	}
	if r.TotalAmount.Valid {
		total = r.TotalAmount.Decimal.String()
	}
	return []driver.Value{
		r.ID, r.CustomerName, r.CustomerEmail, opt(r.CustomerPhone), r.EventDate, r.EventType,
		r.Venue, opt(r.CeremonyVenue), guests, r.Lights, r.Sound, r.LEDWall, r.Projector, r.Smoke,
		r.LiveBand, opt(r.LiveBandRider), opt(r.Notes), total, opt(r.QuoteContent), r.Status,
		r.Archived, optTime(r.ArchivedAt), opt(r.ArchivedBy), opt(r.LastEditedBy), optTime(r.LastEditedAt),
		r.CreatedAt, r.UpdatedAt,
	}
}

func TestRepository_GetByID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)
	row := fullRow()

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1$`).
		WithArgs(row.ID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(rowValues(row)...))

	got, err := repo.GetByID(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)
	assert.Equal(t, domain.StatusConfirmed, got.Status)
	assert.Equal(t, "San Agustin Church", *got.CeremonyVenue)
	assert.Equal(t, 250, *got.GuestCount)
	require.NotNil(t, got.TotalAmount)
	assert.Equal(t, "40000.5", got.TotalAmount.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_SparseRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)
	row := sparseRow()

	mock.ExpectQuery(`SELECT .+ FROM bookings`).
		WithArgs(row.ID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(rowValues(row)...))

	got, err := repo.GetByID(context.Background(), row.ID)

	require.NoError(t, err)
	assert.Nil(t, got.TotalAmount)
	assert.Nil(t, got.CustomerPhone)
	assert.Nil(t, got.GuestCount)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)

	mock.ExpectQuery(`SELECT .+ FROM bookings`).
		WithArgs("BA-2025-9999").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetByID(context.Background(), "BA-2025-9999")

	assert.ErrorIs(t, err, ErrBookingNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_GetForUpdate_LocksRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)
	row := sparseRow()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1 FOR UPDATE$`).
		WithArgs(row.ID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(rowValues(row)...))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	got, err := repo.GetForUpdate(ctx, row.ID)
	require.NoError(t, err)
	assert.Equal(t, row.ID, got.ID)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetForUpdate_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1 FOR UPDATE$`).
		WithArgs("BA-2025-9999").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := repo.GetForUpdate(context.Background(), "BA-2025-9999")

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_GetByID_DoesNotLockInsideTransaction(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)
	row := sparseRow()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE id = \$1$`).
		WithArgs(row.ID).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(rowValues(row)...))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := dbmetrics.WithTx(context.Background(), tx)

	_, err = repo.GetByID(ctx, row.ID)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_ConnectionErrorIsRetryable(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)

	mock.ExpectQuery(`SELECT .+ FROM bookings`).
		WillReturnError(&pq.Error{Code: "08006", Message: "connection failure"})

	_, err := repo.GetByID(context.Background(), "BA-2025-0001")

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.True(t, domain.IsRetryable(err))
}

func TestRepository_Create(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)
	created := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	b := MapRowToBooking(sparseRow())

	mock.ExpectQuery(`INSERT INTO bookings \(.+\) VALUES \(.+\) RETURNING created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	got, err := repo.Create(context.Background(), b)

	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_DuplicateID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)

	mock.ExpectQuery(`INSERT INTO bookings`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_pkey"})

	_, err := repo.Create(context.Background(), MapRowToBooking(sparseRow()))

	assert.ErrorIs(t, err, ErrDuplicateID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRepository_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)

	mock.ExpectQuery(`UPDATE bookings SET .+ WHERE id = \$\d+ RETURNING created_at, updated_at`).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}))

	_, err := repo.Update(context.Background(), MapRowToBooking(sparseRow()))

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestRepository_List_Filters(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .+ FROM bookings WHERE status IN \(\$1,\$2\) AND archived = \$3 AND \(customer_name ILIKE \$4 OR customer_email ILIKE \$5 OR id ILIKE \$6\) AND event_date >= \$7 ORDER BY event_date ASC, created_at DESC`).
		WithArgs("QuoteSent", "Confirmed", false, `%50\%%`, `%50\%%`, `%50\%%`, from).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(rowValues(fullRow())...).
			AddRow(rowValues(sparseRow())...))

	got, err := repo.List(context.Background(), domain.BookingFilter{
		Statuses:      []domain.BookingStatus{domain.StatusQuoteSent, domain.StatusConfirmed},
		Archived:      ptr.Ptr(false),
		Search:        ptr.Ptr(" 50% "),
		EventDateFrom: &from,
	})

	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewRepository(db, time.Second)

	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs("BA-2025-0001").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM bookings WHERE id = \$1`).
		WithArgs("BA-2025-0002").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "BA-2025-0001"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "BA-2025-0002"), ErrBookingNotFound)
}
