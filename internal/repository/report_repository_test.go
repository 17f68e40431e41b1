package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportMock(t *testing.T) (sqlmock.Sqlmock, *ReportRepo, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return mock, NewReportRepo(db), func() { _ = db.Close() }
}

func TestOccupancyReportFormatting(t *testing.T) {
	mock, repo, done := newReportMock(t)
	defer done()

	mock.ExpectQuery(`SELECT room_number, capacity, current_occupancy, price FROM rooms ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"room_number", "capacity", "current_occupancy", "price"}).
			AddRow("G12", 4, 1, 15000).
			AddRow("T7", 2, 2, 25000).
			AddRow("X0", 0, 0, 10000))

	rows, err := repo.Occupancy(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "25.0", rows[0].Percent)
	assert.Equal(t, "100.0", rows[1].Percent)
	// Zero capacity must not divide by zero.
	assert.Equal(t, "0.0", rows[2].Percent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialSummary(t *testing.T) {
	mock, repo, done := newReportMock(t)
	defer done()

	mock.ExpectQuery(`SELECT room_number, capacity, current_occupancy, price FROM rooms ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"room_number", "capacity", "current_occupancy", "price"}).
			AddRow("G12", 4, 1, 15000).
			AddRow("T7", 2, 2, 25000))

	sum, err := repo.Financial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, sum.TotalRooms)
	assert.Equal(t, uint64(6), sum.TotalCapacity)
	assert.Equal(t, uint64(3), sum.TotalOccupied)
	assert.Equal(t, "50.0", sum.OccupancyRate)
	assert.Equal(t, uint64(65000), sum.TotalRevenue)
	require.Len(t, sum.Rooms, 2)
	assert.Equal(t, uint64(15000), sum.Rooms[0].Revenue)
	assert.Equal(t, uint64(50000), sum.Rooms[1].Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinancialSummaryEmptyStore(t *testing.T) {
	mock, repo, done := newReportMock(t)
	defer done()

	mock.ExpectQuery(`SELECT room_number, capacity, current_occupancy, price FROM rooms ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{"room_number", "capacity", "current_occupancy", "price"}))

	sum, err := repo.Financial(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.TotalRooms)
	assert.Equal(t, uint64(0), sum.TotalRevenue)
	assert.Equal(t, "0.0", sum.OccupancyRate)
	assert.Empty(t, sum.Rooms)
	assert.NoError(t, mock.ExpectationsWereMet())
}
