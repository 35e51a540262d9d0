package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type ReservationResponse struct {
	ID          string                   `json:"id"`
	TicketCode  string                   `json:"ticket_code"`
	ScreeningID string                   `json:"screening_id"`
	CustomerID  *string                  `json:"customer_id,omitempty"`
	SaleOrderID *string                  `json:"sale_order_id,omitempty"`
	QtyRegular  int                      `json:"qty_regular"`
	QtyVIP      int                      `json:"qty_vip"`
	TotalSeats  int                      `json:"total_seats"`
	Status      entity.ReservationStatus `json:"status"`
	SeatLabels  []string                 `json:"seat_labels,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
}

type TicketResponse struct {
	TicketCode    string   `json:"ticket_code"`
	ScreeningName string   `json:"screening_name"`
	RoomName      string   `json:"room_name"`
	StartTime     string   `json:"start_time"`
	SeatLabels    []string `json:"seat_labels"`
	TotalSeats    int      `json:"total_seats"`
}

func ReservationToResponse(reservation *entity.Reservation, seatLabels []string) ReservationResponse {
	resp := ReservationResponse{
		ID:          reservation.ID.String(),
		TicketCode:  reservation.TicketCode,
		ScreeningID: reservation.ScreeningID.String(),
		QtyRegular:  reservation.QtyRegular,
		QtyVIP:      reservation.QtyVIP,
		TotalSeats:  reservation.TotalSeats,
		Status:      reservation.Status,
		SeatLabels:  seatLabels,
		CreatedAt:   reservation.CreatedAt,
	}

	if reservation.CustomerID != nil {
		id := reservation.CustomerID.String()
		resp.CustomerID = &id
	}
	if reservation.SaleOrderID != nil {
		id := reservation.SaleOrderID.String()
		resp.SaleOrderID = &id
	}

	return resp
}
