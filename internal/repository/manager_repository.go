package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tachbel/hostel-management/internal/model"
)

// ErrManagerNotFound is returned when a manager lookup fails.
var ErrManagerNotFound = errors.New("manager not found")

// ManagerRepo provides CRUD operations for managers.  It mirrors
// StudentRepo except that a manager's dependents are complaints, removed by
// the schema's cascade on delete.
type ManagerRepo struct {
	db *sql.DB
}

// NewManagerRepo constructs a ManagerRepo with the given DB handle.
func NewManagerRepo(db *sql.DB) *ManagerRepo { return &ManagerRepo{db: db} }

// Create inserts a new manager, enforcing email uniqueness.  On success the
// ID field is populated.
func (r *ManagerRepo) Create(ctx context.Context, m *model.Manager) error {
	taken, err := r.EmailExists(ctx, m.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	const q = `INSERT INTO managers (name, email, phone) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, m.Name, m.Email, m.Phone)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// EmailExists reports whether another manager already uses the given email.
func (r *ManagerRepo) EmailExists(ctx context.Context, email string, excludeID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM managers WHERE email = ? AND id <> ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID retrieves a manager by ID, returning ErrManagerNotFound when no
// row matches.
func (r *ManagerRepo) GetByID(ctx context.Context, id uint64) (*model.Manager, error) {
	const q = `SELECT id, name, email, phone FROM managers WHERE id = ?`
	var m model.Manager
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.Name, &m.Email, &m.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrManagerNotFound
		}
		return nil, err
	}
	return &m, nil
}

// List returns all managers ordered by ID.
func (r *ManagerRepo) List(ctx context.Context) ([]*model.Manager, error) {
	const q = `SELECT id, name, email, phone FROM managers ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Manager, 0)
	for rows.Next() {
		m := new(model.Manager)
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update writes the manager's mutable fields, re-checking email uniqueness
// against other rows.
func (r *ManagerRepo) Update(ctx context.Context, m *model.Manager) error {
	taken, err := r.EmailExists(ctx, m.Email, m.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	const q = `UPDATE managers SET name = ?, email = ?, phone = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, q, m.Name, m.Email, m.Phone, m.ID)
	return err
}

// Delete removes a manager and, through the cascade, their complaints.
func (r *ManagerRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM managers WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrManagerNotFound
	}
	return nil
}
