package response

import (
	"cinema-manager/internal/data/entity"
)

type SaleOrderLineResponse struct {
	ProductCode entity.ProductCode `json:"product_code"`
	Qty         int                `json:"qty"`
	UnitPrice   float64            `json:"unit_price"`
	Discount    float64            `json:"discount"`
}

type FastSaleResponse struct {
	OrderID     string                  `json:"order_id"`
	OrderNumber string                  `json:"order_number"`
	Status      entity.SaleOrderStatus  `json:"status"`
	TotalAmount float64                 `json:"total_amount"`
	Lines       []SaleOrderLineResponse `json:"lines"`
	Reservation ReservationResponse     `json:"reservation"`
	PointsSpent int                     `json:"points_spent,omitempty"`
	FreeVIP     int                     `json:"free_vip,omitempty"`
	FreeRegular int                     `json:"free_regular,omitempty"`
}

func SaleOrderLinesToResponse(lines []*entity.SaleOrderLine) []SaleOrderLineResponse {
	out := make([]SaleOrderLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, SaleOrderLineResponse{
			ProductCode: line.ProductCode,
			Qty:         line.Qty,
			UnitPrice:   line.UnitPrice,
			Discount:    line.Discount,
		})
	}
	return out
}
