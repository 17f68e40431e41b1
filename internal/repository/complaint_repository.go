package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tachbel/hostel-management/internal/model"
)

// ErrComplaintNotFound is returned when a complaint lookup fails.
var ErrComplaintNotFound = errors.New("complaint not found")

// ComplaintRepo provides operations for complaints.
type ComplaintRepo struct {
	db *sql.DB
}

// NewComplaintRepo constructs a ComplaintRepo with the given DB handle.
func NewComplaintRepo(db *sql.DB) *ComplaintRepo { return &ComplaintRepo{db: db} }

// Create inserts a new complaint.  The handler has already verified that
// the referenced student and manager exist.  On success the ID field is
// populated.
func (r *ComplaintRepo) Create(ctx context.Context, c *model.Complaint) error {
	const q = `INSERT INTO complaints (student_id, manager_id, title, description, date, status) VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, c.StudentID, c.ManagerID, c.Title, c.Description, c.Date.Format("2006-01-02"), c.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return nil
}

// GetByID retrieves a complaint by ID, returning ErrComplaintNotFound when
// no row matches.
func (r *ComplaintRepo) GetByID(ctx context.Context, id uint64) (*model.Complaint, error) {
	const q = `SELECT id, student_id, manager_id, title, description, date, status FROM complaints WHERE id = ?`
	var c model.Complaint
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.StudentID, &c.ManagerID, &c.Title, &c.Description, &c.Date, &c.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComplaintNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ComplaintDetail is a complaint joined with the student and manager names
// for display.  Missing references render as "N/A".
type ComplaintDetail struct {
	ID          uint64 `json:"id"`
	StudentName string `json:"student_name"`
	ManagerName string `json:"manager_name"`
	Title       string `json:"title"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

// List returns all complaints joined with student and manager names,
// ordered by complaint ID.
func (r *ComplaintRepo) List(ctx context.Context) ([]ComplaintDetail, error) {
	const q = `SELECT c.id, COALESCE(s.name, 'N/A'), COALESCE(m.name, 'N/A'), c.title, c.status, c.date FROM complaints c LEFT JOIN students s ON s.id = c.student_id LEFT JOIN managers m ON m.id = c.manager_id ORDER BY c.id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ComplaintDetail, 0)
	for rows.Next() {
		var d ComplaintDetail
		var date sql.NullTime
		if err := rows.Scan(&d.ID, &d.StudentName, &d.ManagerName, &d.Title, &d.Status, &date); err != nil {
			return nil, err
		}
		if date.Valid {
			d.Date = date.Time.Format("2006-01-02")
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus sets a complaint's status.  The caller validates the status
// value against the fixed set; any value may replace any other, there is
// no enforced ordering.  Existence is checked first because MySQL reports
// zero affected rows for a same-value write.
func (r *ComplaintRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	const q = `UPDATE complaints SET status = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, status, id)
	return err
}

// CountByStatus tallies complaints per status.  All three buckets are
// always present, defaulting to zero.
func (r *ComplaintRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	counts := map[string]int{
		model.ComplaintOpen:       0,
		model.ComplaintInProgress: 0,
		model.ComplaintResolved:   0,
	}
	const q = `SELECT status, COUNT(*) FROM complaints GROUP BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
