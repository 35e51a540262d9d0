package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type CustomerResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Email         *string            `json:"email,omitempty"`
	Phone         *string            `json:"phone,omitempty"`
	LoyaltyPoints int                `json:"loyalty_points"`
	MemberLevel   entity.MemberLevel `json:"member_level"`
	Discount      float64            `json:"discount"`
	CreatedAt     time.Time          `json:"created_at"`
}

func CustomerToResponse(customer *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:            customer.ID.String(),
		Name:          customer.Name,
		Email:         customer.Email,
		Phone:         customer.Phone,
		LoyaltyPoints: customer.LoyaltyPoints,
		MemberLevel:   customer.MemberLevel,
		Discount:      entity.DiscountForLevel(customer.MemberLevel),
		CreatedAt:     customer.CreatedAt,
	}
}
