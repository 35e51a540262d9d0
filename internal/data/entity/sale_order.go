package entity

import "github.com/google/uuid"

type SaleOrderStatus string

const (
	SaleOrderStatusDraft     SaleOrderStatus = "draft"
	SaleOrderStatusSent      SaleOrderStatus = "sent"
	SaleOrderStatusSale      SaleOrderStatus = "sale"
	SaleOrderStatusCancelled SaleOrderStatus = "cancelled"
)

// IsConfirmable reports whether the order is still in a pre-confirmed state.
func (s SaleOrderStatus) IsConfirmable() bool {
	return s == SaleOrderStatusDraft || s == SaleOrderStatusSent
}

type ProductCode string

const (
	ProductTicketRegular ProductCode = "ticket_regular"
	ProductTicketVIP     ProductCode = "ticket_vip"
)

type SaleOrder struct {
	BaseNoDelete
	OrderNumber string          `db:"order_number"`
	CustomerID  *uuid.UUID      `db:"customer_id"`
	Status      SaleOrderStatus `db:"status"`
	TotalAmount float64         `db:"total_amount"`
}

type SaleOrderLine struct {
	BaseSimple
	OrderID     uuid.UUID   `db:"order_id"`
	ProductCode ProductCode `db:"product_code"`
	Qty         int         `db:"qty"`
	UnitPrice   float64     `db:"unit_price"`
	Discount    float64     `db:"discount"` // percent
}
