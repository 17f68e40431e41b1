package model

// Manager represents a hostel manager in the `managers` table.  Managers
// are the assignees of complaints filed by students.
type Manager struct {
    ID    uint64 // managers.id
    Name  string // managers.name
    Email string // managers.email
    Phone string // managers.phone
}
