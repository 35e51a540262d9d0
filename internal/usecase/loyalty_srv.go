package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RedeemPlan is the outcome of a greedy point redemption: VIP tickets
// first at their higher cost, the remaining points spent on regular
// tickets.
type RedeemPlan struct {
	FreeVIP     int
	FreeRegular int
	Spent       int
}

type LoyaltyService interface {
	// AccrueForReservation credits points for a confirmed reservation,
	// exactly once per reservation. Returns the points added: 0 when
	// the reservation was already credited or carries no customer.
	AccrueForReservation(ctx context.Context, q database.Querier, reservation *entity.Reservation) (int, error)

	// PlanRedemption computes which of the requested tickets the
	// customer's points can cover. ErrInsufficientPoints when not a
	// single ticket is coverable.
	PlanRedemption(availablePoints, reqVIP, reqRegular int) (RedeemPlan, error)

	// ApplyRedemption deducts the plan's spent points from the customer
	// and recomputes the membership level.
	ApplyRedemption(ctx context.Context, q database.Querier, customer *entity.Customer, plan RedeemPlan) error
}

type loyaltyService struct {
	db   database.PgxIface
	repo *repository.Repository
	log  *zap.Logger
}

func NewLoyaltyService(db database.PgxIface, repo *repository.Repository, log *zap.Logger) LoyaltyService {
	return &loyaltyService{
		db:   db,
		repo: repo,
		log:  log.With(zap.String("service", "loyalty")),
	}
}

func (s *loyaltyService) AccrueForReservation(ctx context.Context, q database.Querier, reservation *entity.Reservation) (int, error) {
	if reservation.CustomerID == nil {
		return 0, nil
	}

	points := reservation.TotalSeats * entity.PointsPerSeat
	credit := &entity.LoyaltyCredit{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReservationID: reservation.ID,
		CustomerID:    *reservation.CustomerID,
		Points:        points,
	}

	inserted, err := s.repo.LoyaltyCredit.Insert(ctx, q, credit)
	if err != nil {
		return 0, fmt.Errorf("record loyalty credit: %w", err)
	}
	if !inserted {
		s.log.Info("Reservation already credited, skipping accrual",
			zap.String("reservation_id", reservation.ID.String()),
		)
		return 0, nil
	}

	customer, err := s.repo.Customer.FindByID(ctx, *reservation.CustomerID)
	if err != nil {
		return 0, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return 0, fmt.Errorf("customer not found")
	}

	newTotal := customer.LoyaltyPoints + points
	newLevel := entity.LevelForPoints(newTotal)
	if err := s.repo.Customer.UpdateLoyalty(ctx, q, customer.ID, newTotal, newLevel); err != nil {
		return 0, fmt.Errorf("update customer loyalty: %w", err)
	}

	s.log.Info("Loyalty points accrued",
		zap.String("customer_id", customer.ID.String()),
		zap.String("reservation_id", reservation.ID.String()),
		zap.Int("points", points),
		zap.Int("total", newTotal),
		zap.String("level", string(newLevel)),
	)

	customer.LoyaltyPoints = newTotal
	customer.MemberLevel = newLevel
	return points, nil
}

func (s *loyaltyService) PlanRedemption(availablePoints, reqVIP, reqRegular int) (RedeemPlan, error) {
	var plan RedeemPlan

	remaining := availablePoints
	plan.FreeVIP = remaining / entity.VIPRedeemCost
	if plan.FreeVIP > reqVIP {
		plan.FreeVIP = reqVIP
	}
	remaining -= plan.FreeVIP * entity.VIPRedeemCost

	plan.FreeRegular = remaining / entity.RegularRedeemCost
	if plan.FreeRegular > reqRegular {
		plan.FreeRegular = reqRegular
	}

	plan.Spent = plan.FreeVIP*entity.VIPRedeemCost + plan.FreeRegular*entity.RegularRedeemCost

	if plan.FreeVIP == 0 && plan.FreeRegular == 0 {
		return RedeemPlan{}, ErrInsufficientPoints
	}

	return plan, nil
}

func (s *loyaltyService) ApplyRedemption(ctx context.Context, q database.Querier, customer *entity.Customer, plan RedeemPlan) error {
	if plan.Spent > customer.LoyaltyPoints {
		return ErrInsufficientPoints
	}

	newTotal := customer.LoyaltyPoints - plan.Spent
	newLevel := entity.LevelForPoints(newTotal)
	if err := s.repo.Customer.UpdateLoyalty(ctx, q, customer.ID, newTotal, newLevel); err != nil {
		return fmt.Errorf("update customer loyalty: %w", err)
	}

	s.log.Info("Loyalty points redeemed",
		zap.String("customer_id", customer.ID.String()),
		zap.Int("spent", plan.Spent),
		zap.Int("free_vip", plan.FreeVIP),
		zap.Int("free_regular", plan.FreeRegular),
		zap.Int("total", newTotal),
	)

	customer.LoyaltyPoints = newTotal
	customer.MemberLevel = newLevel
	return nil
}
