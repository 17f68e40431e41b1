// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrRoomFull indicates that a booking cannot be created
// because every bed in the room is taken, while ErrDuplicateEmail
// signals that a unique constraint would be violated.
package repository

import "errors"

// ErrDuplicateEmail is returned when creating or updating a student or
// manager with an email address already present in the same table.
// Handlers should translate this into an HTTP 409 response.
var ErrDuplicateEmail = errors.New("email already exists")

// ErrDuplicateRoomNumber is returned when creating or renaming a room to a
// room number already in use. Handlers should translate this into an
// HTTP 409 response.
var ErrDuplicateRoomNumber = errors.New("room number already exists")

// ErrRoomFull is returned when a booking would push a room's occupancy
// above its capacity. No partial state is committed when this occurs.
var ErrRoomFull = errors.New("room is at full capacity")

// ErrAlreadyCancelled is returned when cancelling a booking that has
// already been cancelled. The store is left unchanged.
var ErrAlreadyCancelled = errors.New("booking already cancelled")

// ErrOccupancyUnderflow is returned when a cancellation would drive a
// room's occupancy counter below zero. The decrement saturates instead of
// going negative and the whole cancellation is rolled back.
var ErrOccupancyUnderflow = errors.New("room occupancy already zero")

// ErrInvalidStatus is returned when a status value outside the fixed
// enumeration is supplied.
var ErrInvalidStatus = errors.New("invalid status")
