package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/tachbel/hostel-management/internal/model"
)

// ErrStudentNotFound is returned when a student lookup fails.
var ErrStudentNotFound = errors.New("student not found")

// StudentRepo provides CRUD operations for students.  Deleting a student
// cascades to their bookings and complaints through the schema's foreign
// keys; the repository performs no extra cleanup.
type StudentRepo struct {
	db *sql.DB
}

// NewStudentRepo constructs a StudentRepo with the given DB handle.
func NewStudentRepo(db *sql.DB) *StudentRepo { return &StudentRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span multiple repositories.
func (r *StudentRepo) DB() *sql.DB { return r.db }

// Create inserts a new student.  The caller has already validated the email
// and phone formats; Create enforces email uniqueness and returns
// ErrDuplicateEmail without inserting when the address is taken.  On
// success the ID field of the student is populated.
func (r *StudentRepo) Create(ctx context.Context, s *model.Student) error {
	taken, err := r.EmailExists(ctx, s.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	const q = `INSERT INTO students (name, email, phone, registration_date) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Email, s.Phone, s.RegistrationDate.Format("2006-01-02"))
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// EmailExists reports whether another student already uses the given email.
// excludeID is skipped so updates do not collide with the student's own row;
// pass zero when creating.
func (r *StudentRepo) EmailExists(ctx context.Context, email string, excludeID uint64) (bool, error) {
	const q = `SELECT EXISTS(SELECT 1 FROM students WHERE email = ? AND id <> ?)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, email, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByID retrieves a student by ID.  It returns ErrStudentNotFound when no
// row matches.
func (r *StudentRepo) GetByID(ctx context.Context, id uint64) (*model.Student, error) {
	const q = `SELECT id, name, email, phone, registration_date FROM students WHERE id = ?`
	var s model.Student
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.RegistrationDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return &s, nil
}

// List returns all students ordered by ID, which matches insertion order
// since IDs are monotonic.
func (r *StudentRepo) List(ctx context.Context) ([]*model.Student, error) {
	const q = `SELECT id, name, email, phone, registration_date FROM students ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.Student, 0)
	for rows.Next() {
		s := new(model.Student)
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.RegistrationDate); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update writes the student's mutable fields.  The handler merges changed
// fields into the loaded record before calling Update, so the whole row is
// written.  Email uniqueness is re-checked against other rows.
func (r *StudentRepo) Update(ctx context.Context, s *model.Student) error {
	taken, err := r.EmailExists(ctx, s.Email, s.ID)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateEmail
	}
	const q = `UPDATE students SET name = ?, email = ?, phone = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Email, s.Phone, s.ID)
	if err != nil {
		return err
	}
	// RowsAffected is zero both for a missing row and for a no-op write, so
	// existence was verified by the handler's initial GetByID.
	_, _ = res.RowsAffected()
	return nil
}

// Delete removes a student.  Dependent bookings and complaints are removed
// by the ON DELETE CASCADE constraints.  Returns ErrStudentNotFound when no
// row was deleted.
func (r *StudentRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM students WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrStudentNotFound
	}
	return nil
}
