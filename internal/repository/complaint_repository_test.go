package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tachbel/hostel-management/internal/model"
)

func newComplaintMock(t *testing.T) (sqlmock.Sqlmock, *ComplaintRepo, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	return mock, NewComplaintRepo(db), func() { _ = db.Close() }
}

func TestComplaintUpdateStatusMissing(t *testing.T) {
	mock, repo, done := newComplaintMock(t)
	defer done()

	mock.ExpectQuery(`SELECT id, student_id, manager_id, title, description, date, status FROM complaints WHERE id = ?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "manager_id", "title", "description", "date", "status"}))

	err := repo.UpdateStatus(context.Background(), 5, model.ComplaintResolved)
	assert.ErrorIs(t, err, ErrComplaintNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A same-value status write still succeeds: existence is checked up front
// because the UPDATE alone reports zero affected rows in that case.
func TestComplaintUpdateStatusSameValue(t *testing.T) {
	mock, repo, done := newComplaintMock(t)
	defer done()

	mock.ExpectQuery(`SELECT id, student_id, manager_id, title, description, date, status FROM complaints WHERE id = ?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "student_id", "manager_id", "title", "description", "date", "status"}).
			AddRow(5, 1, 1, "Leaking tap", "The tap in G12 leaks.", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), model.ComplaintOpen))
	mock.ExpectExec(`UPDATE complaints SET status = ? WHERE id = ?`).
		WithArgs(model.ComplaintOpen, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.UpdateStatus(context.Background(), 5, model.ComplaintOpen))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestComplaintCountByStatusDefaultsZero(t *testing.T) {
	mock, repo, done := newComplaintMock(t)
	defer done()

	mock.ExpectQuery(`SELECT status, COUNT(*) FROM complaints GROUP BY status`).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(model.ComplaintOpen, 2))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, counts[model.ComplaintOpen])
	assert.Equal(t, 0, counts[model.ComplaintInProgress])
	assert.Equal(t, 0, counts[model.ComplaintResolved])
	assert.NoError(t, mock.ExpectationsWereMet())
}
