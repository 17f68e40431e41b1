// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// created.  It carries enough information for downstream consumers to
// notify the student or feed dashboards without querying the primary
// database.
type BookingConfirmedEvent struct {
    BookingID    uint64 `json:"booking_id"`
    StudentID    uint64 `json:"student_id"`
    StudentName  string `json:"student_name"`
    RoomID       uint64 `json:"room_id"`
    RoomNumber   string `json:"room_number"`
    CheckInDate  string `json:"check_in_date"`
    CheckOutDate string `json:"check_out_date"`
    BookedAt     string `json:"booked_at"`
}

// BookingCancelledEvent is published when a booking is cancelled and the
// room's bed is released.
type BookingCancelledEvent struct {
    BookingID   uint64 `json:"booking_id"`
    StudentID   uint64 `json:"student_id"`
    RoomID      uint64 `json:"room_id"`
    RoomNumber  string `json:"room_number"`
    CancelledAt string `json:"cancelled_at"`
}
