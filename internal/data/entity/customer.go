package entity

type Customer struct {
	BaseNoDelete
	Name          string      `db:"name"`
	Email         *string     `db:"email"`
	Phone         *string     `db:"phone"`
	LoyaltyPoints int         `db:"loyalty_points"`
	MemberLevel   MemberLevel `db:"member_level"`
}
