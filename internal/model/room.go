package model

// Room represents a hostel room in the `rooms` table.  Occupancy and
// availability are derived state: CurrentOccupancy moves only through
// booking creation and cancellation, and IsAvailable is recomputed as
// `current_occupancy < capacity` on every occupancy mutation.  Neither is
// directly settable through the update surface.
//
// Fields:
//  ID               – primary key identifier.
//  RoomNumber       – unique human readable room label (e.g. "G12").
//  Capacity         – number of beds; always greater than zero.
//  CurrentOccupancy – beds currently taken; 0 ≤ occupancy ≤ capacity.
//  Price            – price per semester in KES.
//  IsAvailable      – whether at least one bed is free.
type Room struct {
    ID               uint64 // rooms.id
    RoomNumber       string // rooms.room_number
    Capacity         uint32 // rooms.capacity
    CurrentOccupancy uint32 // rooms.current_occupancy
    Price            uint32 // rooms.price
    IsAvailable      bool   // rooms.is_available
}
