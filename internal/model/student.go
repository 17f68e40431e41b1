package model

import "time"

// Student represents a resident record as stored in the `students` table.
// Each field corresponds to a column in the database.  Handlers define
// separate response types with appropriate JSON tags where the wire shape
// differs from the storage shape.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – full name of the student.
//  Email            – unique email address.
//  Phone            – Kenyan mobile number (07XXXXXXXX).
//  RegistrationDate – date the student was registered.
type Student struct {
    ID               uint64    // students.id
    Name             string    // students.name
    Email            string    // students.email
    Phone            string    // students.phone
    RegistrationDate time.Time // students.registration_date
}
