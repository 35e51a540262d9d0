package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/database"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FastSaleService sells tickets at the counter in one call: it builds a
// confirmed sale order with member pricing, then drives a reservation
// through the regular confirmation flow.
type FastSaleService interface {
	SellTickets(ctx context.Context, req *request.FastSaleRequest) (*response.FastSaleResponse, error)
}

type fastSaleService struct {
	db          database.PgxIface
	repo        *repository.Repository
	reservation ReservationService
	loyalty     LoyaltyService
	config      *utils.Config
	log         *zap.Logger
}

func NewFastSaleService(
	db database.PgxIface,
	repo *repository.Repository,
	reservation ReservationService,
	loyalty LoyaltyService,
	config *utils.Config,
	log *zap.Logger,
) FastSaleService {
	return &fastSaleService{
		db:          db,
		repo:        repo,
		reservation: reservation,
		loyalty:     loyalty,
		config:      config,
		log:         log.With(zap.String("service", "fast_sale")),
	}
}

func (s *fastSaleService) SellTickets(ctx context.Context, req *request.FastSaleRequest) (*response.FastSaleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Fast sale validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	totalTickets := req.QtyRegular + req.QtyVIP
	if totalTickets == 0 {
		return nil, ErrNoSeatsSelected
	}
	if len(req.SeatIDs) != totalTickets {
		return nil, ErrSeatCountMismatch
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}
	customer, err := s.repo.Customer.FindByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	if customer == nil {
		return nil, fmt.Errorf("customer not found")
	}

	// Draft reservation first: the accrual credit is keyed on its ID.
	draft, err := s.reservation.CreateReservation(ctx, &request.CreateReservationRequest{
		ScreeningID: req.ScreeningID,
		CustomerID:  &req.CustomerID,
		SeatIDs:     req.SeatIDs,
		QtyVIP:      req.QtyVIP,
	})
	if err != nil {
		return nil, err
	}

	reservationID, err := uuid.Parse(draft.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation id: %w", err)
	}
	reservation, err := s.repo.Reservation.FindByID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation not found")
	}

	var plan RedeemPlan

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	order := &entity.SaleOrder{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		OrderNumber: utils.GenerateOrderNumber(),
		CustomerID:  &customerID,
		Status:      entity.SaleOrderStatusDraft,
	}
	if err := s.repo.SaleOrder.Create(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("create sale order: %w", err)
	}

	var lines []*entity.SaleOrderLine
	if req.RedeemPoints {
		plan, err = s.loyalty.PlanRedemption(customer.LoyaltyPoints, req.QtyVIP, req.QtyRegular)
		if err != nil {
			return nil, err
		}
		if err := s.loyalty.ApplyRedemption(ctx, tx, customer, plan); err != nil {
			return nil, err
		}

		// Freed units at full discount, the remainder at list price.
		lines = s.buildLines(order.ID, now, req.QtyVIP-plan.FreeVIP, req.QtyRegular-plan.FreeRegular, 0)
		lines = append(lines, s.freeLines(order.ID, now, plan)...)
	} else {
		// Accrue before pricing so the discount reflects the new total.
		added, err := s.loyalty.AccrueForReservation(ctx, tx, reservation)
		if err != nil {
			return nil, err
		}
		level := entity.LevelForPoints(customer.LoyaltyPoints + added)
		lines = s.buildLines(order.ID, now, req.QtyVIP, req.QtyRegular, entity.DiscountForLevel(level))
	}

	if err := s.repo.SaleOrder.AddLines(ctx, tx, lines); err != nil {
		return nil, fmt.Errorf("add sale order lines: %w", err)
	}

	order.TotalAmount = orderTotal(lines)

	if err := s.repo.SaleOrder.Confirm(ctx, tx, order.ID, order.TotalAmount); err != nil {
		return nil, fmt.Errorf("confirm sale order: %w", err)
	}
	order.Status = entity.SaleOrderStatusSale

	if err := s.repo.Reservation.LinkSaleOrder(ctx, tx, reservation.ID, order.ID); err != nil {
		return nil, fmt.Errorf("link sale order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	// The engine sees the linked order and skips re-accrual.
	confirmed, err := s.reservation.ConfirmReservation(ctx, draft.ID)
	if err != nil {
		return nil, err
	}

	s.log.Info("Fast sale completed",
		zap.String("order_number", order.OrderNumber),
		zap.String("reservation_id", draft.ID),
		zap.Float64("total_amount", order.TotalAmount),
		zap.Bool("redeemed", req.RedeemPoints),
	)

	return &response.FastSaleResponse{
		OrderID:     order.ID.String(),
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		Lines:       response.SaleOrderLinesToResponse(lines),
		Reservation: *confirmed,
		PointsSpent: plan.Spent,
		FreeVIP:     plan.FreeVIP,
		FreeRegular: plan.FreeRegular,
	}, nil
}

// buildLines creates the paid order lines. Zero-quantity lines are
// skipped.
func (s *fastSaleService) buildLines(orderID uuid.UUID, now time.Time, qtyVIP, qtyRegular int, discount float64) []*entity.SaleOrderLine {
	return ticketLines(orderID, now, qtyVIP, qtyRegular, s.config.Ticket.VIPPrice, s.config.Ticket.RegularPrice, discount)
}

// freeLines creates fully discounted lines for redeemed tickets.
func (s *fastSaleService) freeLines(orderID uuid.UUID, now time.Time, plan RedeemPlan) []*entity.SaleOrderLine {
	return ticketLines(orderID, now, plan.FreeVIP, plan.FreeRegular, s.config.Ticket.VIPPrice, s.config.Ticket.RegularPrice, 100)
}

func ticketLines(orderID uuid.UUID, now time.Time, qtyVIP, qtyRegular int, vipPrice, regularPrice, discount float64) []*entity.SaleOrderLine {
	var lines []*entity.SaleOrderLine
	if qtyVIP > 0 {
		lines = append(lines, &entity.SaleOrderLine{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			OrderID:     orderID,
			ProductCode: entity.ProductTicketVIP,
			Qty:         qtyVIP,
			UnitPrice:   vipPrice,
			Discount:    discount,
		})
	}
	if qtyRegular > 0 {
		lines = append(lines, &entity.SaleOrderLine{
			BaseSimple:  entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			OrderID:     orderID,
			ProductCode: entity.ProductTicketRegular,
			Qty:         qtyRegular,
			UnitPrice:   regularPrice,
			Discount:    discount,
		})
	}
	return lines
}

// orderTotal sums line amounts with their discounts applied.
func orderTotal(lines []*entity.SaleOrderLine) float64 {
	total := 0.0
	for _, line := range lines {
		total += float64(line.Qty) * line.UnitPrice * (1 - line.Discount/100)
	}
	return total
}
