package model

import "time"

// Booking status values.  A booking starts as confirmed and may move to
// cancelled.  Completed is part of the schema enum but no operation sets it
// yet; it is reserved for a future check-out flow.
const (
    BookingConfirmed = "confirmed"
    BookingCancelled = "cancelled"
    BookingCompleted = "completed"
)

// Booking records a student's stay in a room.  Creating a booking and
// incrementing the room's occupancy form one composite effect; the same
// holds for cancellation and the decrement.  The repository layer keeps
// both writes inside a single transaction.
//
// Fields:
//  ID           – primary key identifier.
//  StudentID    – student who booked.
//  RoomID       – room being booked.
//  BookingDate  – date the booking was made.
//  CheckInDate  – planned check-in date.
//  CheckOutDate – planned check-out date.
//  Status       – confirmed, cancelled or completed.
type Booking struct {
    ID           uint64    // bookings.id
    StudentID    uint64    // bookings.student_id
    RoomID       uint64    // bookings.room_id
    BookingDate  time.Time // bookings.booking_date
    CheckInDate  time.Time // bookings.check_in_date
    CheckOutDate time.Time // bookings.check_out_date
    Status       string    // bookings.status
}
