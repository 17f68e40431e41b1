package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tachbel/hostel-management/internal/model"
)

// newMock returns a sqlmock database that matches SQL strings exactly, so
// the tests pin the statements the repositories actually issue.
func newMock(t *testing.T) (sqlmock.Sqlmock, *RoomRepo, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return mock, NewRoomRepo(db), func() { _ = db.Close() }
}

func TestRoomCreateDuplicateNumber(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM rooms WHERE room_number = ? AND id <> ?)`).
		WithArgs("G12", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := repo.Create(context.Background(), &model.Room{RoomNumber: "G12", Capacity: 4, Price: 15000})
	assert.ErrorIs(t, err, ErrDuplicateRoomNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoomCreate(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM rooms WHERE room_number = ? AND id <> ?)`).
		WithArgs("G12", int64(0)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO rooms (room_number, capacity, price) VALUES (?, ?, ?)`).
		WithArgs("G12", int64(4), int64(15000)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	room := &model.Room{RoomNumber: "G12", Capacity: 4, Price: 15000}
	err := repo.Create(context.Background(), room)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), room.ID)
	assert.Equal(t, uint32(0), room.CurrentOccupancy)
	assert.True(t, room.IsAvailable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementOccupancyFullRoom(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	// Zero affected rows means the guard refused the increment.
	mock.ExpectExec(`UPDATE rooms SET current_occupancy = current_occupancy + 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy < capacity`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	err = repo.IncrementOccupancyTx(context.Background(), tx, 7)
	assert.ErrorIs(t, err, ErrRoomFull)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementOccupancyMissingRoom(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rooms SET current_occupancy = current_occupancy + 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy < capacity`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	err = repo.IncrementOccupancyTx(context.Background(), tx, 99)
	assert.ErrorIs(t, err, ErrRoomNotFound)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementOccupancyUnderflow(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rooms SET current_occupancy = current_occupancy - 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy > 0`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS(SELECT 1 FROM rooms WHERE id = ?)`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	err = repo.DecrementOccupancyTx(context.Background(), tx, 7)
	assert.ErrorIs(t, err, ErrOccupancyUnderflow)
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementOccupancy(t *testing.T) {
	mock, repo, done := newMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE rooms SET current_occupancy = current_occupancy - 1, is_available = (current_occupancy < capacity) WHERE id = ? AND current_occupancy > 0`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.DB().BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.DecrementOccupancyTx(context.Background(), tx, 7))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}
