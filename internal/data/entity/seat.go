package entity

import "github.com/google/uuid"

type Seat struct {
	BaseSimple
	RoomID     uuid.UUID `db:"room_id"`
	SeatRow    string    `db:"seat_row"`    // A, B, ..., Z, AA, ...
	SeatNumber int       `db:"seat_number"` // 1, 2, 3, ...
	Label      string    `db:"label"`       // A1, B5, etc.
}
