package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RowsQty   int       `json:"rows_qty"`
	ColsQty   int       `json:"cols_qty"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

type SeatResponse struct {
	ID         string `json:"id"`
	RoomID     string `json:"room_id"`
	SeatRow    string `json:"seat_row"`
	SeatNumber int    `json:"seat_number"`
	Label      string `json:"label"`
}

func RoomToResponse(room *entity.Room) RoomResponse {
	return RoomResponse{
		ID:        room.ID.String(),
		Name:      room.Name,
		RowsQty:   room.RowsQty,
		ColsQty:   room.ColsQty,
		Capacity:  room.Capacity,
		CreatedAt: room.CreatedAt,
	}
}

func SeatToResponse(seat *entity.Seat) SeatResponse {
	return SeatResponse{
		ID:         seat.ID.String(),
		RoomID:     seat.RoomID.String(),
		SeatRow:    seat.SeatRow,
		SeatNumber: seat.SeatNumber,
		Label:      seat.Label,
	}
}

func SeatsToResponse(seats []*entity.Seat) []SeatResponse {
	out := make([]SeatResponse, 0, len(seats))
	for _, seat := range seats {
		out = append(out, SeatToResponse(seat))
	}
	return out
}
