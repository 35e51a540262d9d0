package request

type CreateReservationRequest struct {
	ScreeningID string   `json:"screening_id" validate:"required,uuid4"`
	CustomerID  *string  `json:"customer_id,omitempty" validate:"omitempty,uuid4"`
	SeatIDs     []string `json:"seat_ids" validate:"required,min=1,dive,uuid4"`
	QtyVIP      int      `json:"qty_vip" validate:"gte=0"`
}
