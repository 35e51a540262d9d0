package entity

import "github.com/google/uuid"

type MemberLevel string

const (
	MemberLevelStandard MemberLevel = "standard"
	MemberLevelSilver   MemberLevel = "silver"
	MemberLevelPremium  MemberLevel = "premium"
)

// Loyalty point rules. Redemption prefers VIP tickets first.
const (
	PointsPerSeat     = 10
	VIPRedeemCost     = 200
	RegularRedeemCost = 100
)

// LevelForPoints derives the membership level from a point total.
// Boundaries are strict: exactly 500 is still standard, exactly 1000 silver.
func LevelForPoints(points int) MemberLevel {
	switch {
	case points > 1000:
		return MemberLevelPremium
	case points > 500:
		return MemberLevelSilver
	default:
		return MemberLevelStandard
	}
}

// DiscountForLevel returns the discount percentage for paid order lines.
func DiscountForLevel(level MemberLevel) float64 {
	switch level {
	case MemberLevelPremium:
		return 20.0
	case MemberLevelSilver:
		return 10.0
	default:
		return 0.0
	}
}

// LoyaltyCredit records that points were accrued for a reservation.
// At most one credit per reservation, enforced by the schema.
type LoyaltyCredit struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	CustomerID    uuid.UUID `db:"customer_id"`
	Points        int       `db:"points"`
}
