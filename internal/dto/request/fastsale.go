package request

type FastSaleRequest struct {
	ScreeningID  string   `json:"screening_id" validate:"required,uuid4"`
	CustomerID   string   `json:"customer_id" validate:"required,uuid4"`
	SeatIDs      []string `json:"seat_ids" validate:"required,min=1,dive,uuid4"`
	QtyRegular   int      `json:"qty_regular" validate:"gte=0"`
	QtyVIP       int      `json:"qty_vip" validate:"gte=0"`
	RedeemPoints bool     `json:"redeem_points"`
}
