package database

import (
	"context"
	"database/sql"
	"time"
)

// schemaStatements creates the five hostel tables.  Foreign keys carry
// ON DELETE CASCADE: removing a student or room removes its bookings, and
// removing a student or manager removes the complaints referencing them.
// The cascade is the documented delete policy for the whole service.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(20) NOT NULL,
		registration_date DATE NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS rooms (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		room_number VARCHAR(32) NOT NULL UNIQUE,
		capacity INT UNSIGNED NOT NULL,
		current_occupancy INT UNSIGNED NOT NULL DEFAULT 0,
		price INT UNSIGNED NOT NULL,
		is_available TINYINT(1) NOT NULL DEFAULT 1
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS managers (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) NOT NULL UNIQUE,
		phone VARCHAR(20) NOT NULL
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		student_id BIGINT UNSIGNED NOT NULL,
		room_id BIGINT UNSIGNED NOT NULL,
		booking_date DATE NOT NULL,
		check_in_date DATE NOT NULL,
		check_out_date DATE NOT NULL,
		status ENUM('confirmed','cancelled','completed') NOT NULL DEFAULT 'confirmed',
		CONSTRAINT fk_bookings_student FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
		CONSTRAINT fk_bookings_room FOREIGN KEY (room_id) REFERENCES rooms(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
	`CREATE TABLE IF NOT EXISTS complaints (
		id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		student_id BIGINT UNSIGNED NOT NULL,
		manager_id BIGINT UNSIGNED NOT NULL,
		title VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		date DATE NOT NULL,
		status ENUM('open','in-progress','resolved') NOT NULL DEFAULT 'open',
		CONSTRAINT fk_complaints_student FOREIGN KEY (student_id) REFERENCES students(id) ON DELETE CASCADE,
		CONSTRAINT fk_complaints_manager FOREIGN KEY (manager_id) REFERENCES managers(id) ON DELETE CASCADE
	) ENGINE=InnoDB`,
}

// InitSchema creates all tables when they do not yet exist.  The statements
// are idempotent so the function can run on every startup.
func InitSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Seed inserts sample students, rooms and managers when the students table
// is empty.  It returns true when rows were inserted.  Repeated calls on a
// populated store are no-ops.
func Seed(ctx context.Context, db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}
	today := time.Now().UTC().Format("2006-01-02")
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	students := [][3]string{
		{"Wanjiku Mwangi", "wanjiku@student.ku.ac.ke", "0712345678"},
		{"Otieno Owino", "owino@student.uonbi.ac.ke", "0723456789"},
	}
	for _, s := range students {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO students (name, email, phone, registration_date) VALUES (?, ?, ?, ?)`,
			s[0], s[1], s[2], today); err != nil {
			return false, err
		}
	}
	rooms := []struct {
		number   string
		capacity uint32
		price    uint32
	}{
		{"G12", 4, 15000},
		{"T7", 2, 25000},
	}
	for _, r := range rooms {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rooms (room_number, capacity, price) VALUES (?, ?, ?)`,
			r.number, r.capacity, r.price); err != nil {
			return false, err
		}
	}
	managers := [][3]string{
		{"Kamau Githinji", "k.githinji@uonhostels.com", "0701234567"},
		{"Nyambura Wairimu", "n.wairimu@kuhostels.co.ke", "0712345678"},
	}
	for _, m := range managers {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO managers (name, email, phone) VALUES (?, ?, ?)`,
			m[0], m[1], m[2]); err != nil {
			return false, err
		}
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return true, nil
}
