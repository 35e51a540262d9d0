package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/database"
	"cinema-manager/pkg/utils"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationService interface {
	CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	GetCustomerReservations(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error)

	// ConfirmReservation runs the full confirmation inside one
	// transaction: screening row lock, capacity check, occupancy index
	// insert, status flip, sale order, point accrual. Reservations that
	// arrive already linked to a sale order skip accrual here; the sale
	// flow already credited them.
	ConfirmReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error)

	CancelReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error)
	GenerateTicket(ctx context.Context, reservationID string) (*response.TicketResponse, error)
}

type reservationService struct {
	db      database.PgxIface
	repo    *repository.Repository
	loyalty LoyaltyService
	config  *utils.Config
	log     *zap.Logger
}

func NewReservationService(db database.PgxIface, repo *repository.Repository, loyalty LoyaltyService, config *utils.Config, log *zap.Logger) ReservationService {
	return &reservationService{
		db:      db,
		repo:    repo,
		loyalty: loyalty,
		config:  config,
		log:     log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	screeningID, err := uuid.Parse(req.ScreeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening id: %w", err)
	}

	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return nil, fmt.Errorf("get screening by id: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening not found")
	}

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid customer id: %w", err)
		}
		customer, err := s.repo.Customer.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get customer: %w", err)
		}
		if customer == nil {
			return nil, fmt.Errorf("customer not found")
		}
		customerID = &id
	}

	if len(req.SeatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}
	if req.QtyVIP > len(req.SeatIDs) {
		return nil, ErrSeatCountMismatch
	}

	seatIDs := make([]uuid.UUID, 0, len(req.SeatIDs))
	seen := mapset.NewSet[uuid.UUID]()
	for _, seatIDStr := range req.SeatIDs {
		seatID, err := uuid.Parse(seatIDStr)
		if err != nil {
			return nil, fmt.Errorf("invalid seat id: %w", err)
		}
		if !seen.Add(seatID) {
			return nil, fmt.Errorf("duplicate seat id: %s", seatIDStr)
		}
		seatIDs = append(seatIDs, seatID)
	}

	// Every chosen seat must exist and belong to the screening's room.
	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("get seats: %w", err)
	}
	if len(seats) != len(seatIDs) {
		return nil, fmt.Errorf("seat not found")
	}
	for _, seat := range seats {
		if seat.RoomID != screening.RoomID {
			return nil, fmt.Errorf("seat %s is not in the screening room", seat.Label)
		}
	}

	room, err := s.repo.Room.FindByID(ctx, screening.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room by id: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room not found")
	}
	if len(seatIDs) > room.Capacity {
		return nil, ErrCapacityExceeded
	}

	now := time.Now()
	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TicketCode:  entity.TicketCodeUnassigned,
		ScreeningID: screeningID,
		CustomerID:  customerID,
		QtyRegular:  len(seatIDs) - req.QtyVIP,
		QtyVIP:      req.QtyVIP,
		TotalSeats:  len(seatIDs),
		Status:      entity.ReservationStatusDraft,
	}

	if err := s.repo.Reservation.Create(ctx, reservation); err != nil {
		s.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("screening_id", req.ScreeningID),
		)
		return nil, fmt.Errorf("create reservation: %w", err)
	}

	reservationSeats := make([]*entity.ReservationSeat, len(seatIDs))
	for i, seatID := range seatIDs {
		reservationSeats[i] = &entity.ReservationSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			ReservationID: reservation.ID,
			SeatID:        seatID,
		}
	}
	if err := s.repo.ReservationSeat.CreateBatch(ctx, reservationSeats); err != nil {
		return nil, fmt.Errorf("create reservation seats: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("screening_id", req.ScreeningID),
		zap.Int("total_seats", reservation.TotalSeats),
	)

	return s.toResponse(ctx, reservation)
}

func (s *reservationService) GetReservationByID(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, reservation)
}

func (s *reservationService) GetCustomerReservations(ctx context.Context, customerID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ReservationResponse], error) {
	id, err := uuid.Parse(customerID)
	if err != nil {
		return nil, fmt.Errorf("invalid customer id: %w", err)
	}

	reservations, err := s.repo.Reservation.FindByCustomerID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get customer reservations",
			zap.Error(err),
			zap.String("customer_id", customerID),
		)
		return nil, fmt.Errorf("get customer reservations: %w", err)
	}

	total, err := s.repo.Reservation.CountByCustomerID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("count customer reservations: %w", err)
	}

	reservationResponses := make([]response.ReservationResponse, len(reservations))
	for i, reservation := range reservations {
		resp, err := s.toResponse(ctx, reservation)
		if err != nil {
			return nil, err
		}
		reservationResponses[i] = *resp
	}

	return response.NewPaginatedResponse(reservationResponses, req.Page, req.PerPage, total), nil
}

func (s *reservationService) ConfirmReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanConfirm() {
		return nil, fmt.Errorf("%w: cannot confirm a %s reservation", ErrInvalidTransition, reservation.Status)
	}
	if reservation.TotalSeats == 0 {
		return nil, ErrNoSeatsSelected
	}

	seatIDs, err := s.repo.ReservationSeat.FindSeatIDsByReservationID(ctx, reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("get reservation seats: %w", err)
	}
	if len(seatIDs) == 0 {
		return nil, ErrNoSeatsSelected
	}

	screening, err := s.repo.Screening.FindByID(ctx, reservation.ScreeningID)
	if err != nil {
		return nil, fmt.Errorf("get screening by id: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening not found")
	}

	room, err := s.repo.Room.FindByID(ctx, screening.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room by id: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room not found")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent confirmations on the same screening.
	if err := s.repo.Screening.LockRow(ctx, tx, screening.ID); err != nil {
		return nil, fmt.Errorf("lock screening: %w", err)
	}

	taken, err := s.repo.Reservation.ConfirmedSeatCount(ctx, tx, screening.ID, &reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("count confirmed seats: %w", err)
	}
	if taken+reservation.TotalSeats > room.Capacity {
		s.log.Warn("Confirmation refused, capacity exceeded",
			zap.String("reservation_id", reservationID),
			zap.Int("taken", taken),
			zap.Int("requested", reservation.TotalSeats),
			zap.Int("capacity", room.Capacity),
		)
		return nil, ErrCapacityExceeded
	}

	occupiedIDs, err := s.repo.ScreeningSeat.FindSeatIDsByScreeningID(ctx, tx, screening.ID, &reservation.ID)
	if err != nil {
		return nil, fmt.Errorf("get occupied seats: %w", err)
	}

	occupied := mapset.NewSet(occupiedIDs...)
	requested := mapset.NewSet(seatIDs...)
	if conflict := requested.Intersect(occupied); conflict.Cardinality() > 0 {
		s.log.Warn("Confirmation refused, seats already taken",
			zap.String("reservation_id", reservationID),
			zap.Int("conflicts", conflict.Cardinality()),
		)
		return nil, ErrSeatConflict
	}

	// Pull the ticket code inside the transaction so a sequence failure
	// cannot leave a confirmed reservation without its code.
	if reservation.TicketCode == entity.TicketCodeUnassigned {
		code, err := s.repo.Reservation.NextTicketCode(ctx, tx)
		if err != nil {
			return nil, fmt.Errorf("next ticket code: %w", err)
		}
		if err := s.repo.Reservation.UpdateTicketCode(ctx, tx, reservation.ID, code); err != nil {
			return nil, fmt.Errorf("assign ticket code: %w", err)
		}
		reservation.TicketCode = code
	}

	now := time.Now()
	screeningSeats := make([]*entity.ScreeningSeat, len(seatIDs))
	for i, seatID := range seatIDs {
		screeningSeats[i] = &entity.ScreeningSeat{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			ScreeningID:   screening.ID,
			SeatID:        seatID,
			ReservationID: reservation.ID,
		}
	}
	if err := s.repo.ScreeningSeat.Occupy(ctx, tx, screeningSeats); err != nil {
		if errors.Is(err, repository.ErrSeatAlreadyOccupied) {
			return nil, ErrSeatConflict
		}
		return nil, fmt.Errorf("occupy seats: %w", err)
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, tx, reservation.ID, entity.ReservationStatusConfirmed); err != nil {
		return nil, fmt.Errorf("update reservation status: %w", err)
	}

	if reservation.SaleOrderID == nil {
		// Counter-independent confirmation: raise and confirm the order
		// here, then accrue. Reservations arriving with an order were
		// already priced and credited by the sale flow.
		order := &entity.SaleOrder{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			OrderNumber: utils.GenerateOrderNumber(),
			CustomerID:  reservation.CustomerID,
			Status:      entity.SaleOrderStatusDraft,
		}
		if err := s.repo.SaleOrder.Create(ctx, tx, order); err != nil {
			return nil, fmt.Errorf("create sale order: %w", err)
		}

		discount := 0.0
		if reservation.CustomerID != nil {
			customer, err := s.repo.Customer.FindByID(ctx, *reservation.CustomerID)
			if err != nil {
				return nil, fmt.Errorf("get customer: %w", err)
			}
			if customer != nil {
				discount = entity.DiscountForLevel(customer.MemberLevel)
			}
		}

		lines := ticketLines(order.ID, now, reservation.QtyVIP, reservation.QtyRegular,
			s.config.Ticket.VIPPrice, s.config.Ticket.RegularPrice, discount)
		if err := s.repo.SaleOrder.AddLines(ctx, tx, lines); err != nil {
			return nil, fmt.Errorf("add sale order lines: %w", err)
		}
		if err := s.repo.SaleOrder.Confirm(ctx, tx, order.ID, orderTotal(lines)); err != nil {
			return nil, fmt.Errorf("confirm sale order: %w", err)
		}
		if err := s.repo.Reservation.LinkSaleOrder(ctx, tx, reservation.ID, order.ID); err != nil {
			return nil, fmt.Errorf("link sale order: %w", err)
		}

		if _, err := s.loyalty.AccrueForReservation(ctx, tx, reservation); err != nil {
			return nil, fmt.Errorf("accrue loyalty points: %w", err)
		}
		reservation.SaleOrderID = &order.ID
	} else {
		existing, err := s.repo.SaleOrder.FindByID(ctx, *reservation.SaleOrderID)
		if err != nil {
			return nil, fmt.Errorf("get sale order: %w", err)
		}
		if existing != nil && existing.Status.IsConfirmable() {
			if err := s.repo.SaleOrder.Confirm(ctx, tx, existing.ID, existing.TotalAmount); err != nil {
				return nil, fmt.Errorf("confirm sale order: %w", err)
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	reservation.Status = entity.ReservationStatusConfirmed

	s.log.Info("Reservation confirmed",
		zap.String("reservation_id", reservationID),
		zap.String("ticket_code", reservation.TicketCode),
		zap.Int("total_seats", reservation.TotalSeats),
	)

	return s.toResponse(ctx, reservation)
}

func (s *reservationService) CancelReservation(ctx context.Context, reservationID string) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if !reservation.CanCancel() {
		return nil, fmt.Errorf("%w: cannot cancel a %s reservation", ErrInvalidTransition, reservation.Status)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.repo.ScreeningSeat.ReleaseByReservationID(ctx, tx, reservation.ID); err != nil {
		return nil, fmt.Errorf("release seats: %w", err)
	}

	if err := s.repo.Reservation.UpdateStatus(ctx, tx, reservation.ID, entity.ReservationStatusCanceled); err != nil {
		return nil, fmt.Errorf("update reservation status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	reservation.Status = entity.ReservationStatusCanceled

	s.log.Info("Reservation canceled",
		zap.String("reservation_id", reservationID),
	)

	return s.toResponse(ctx, reservation)
}

func (s *reservationService) GenerateTicket(ctx context.Context, reservationID string) (*response.TicketResponse, error) {
	reservation, err := s.findReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.Status != entity.ReservationStatusConfirmed {
		return nil, fmt.Errorf("%w: ticket requires a confirmed reservation", ErrInvalidTransition)
	}

	screening, err := s.repo.Screening.FindByID(ctx, reservation.ScreeningID)
	if err != nil {
		return nil, fmt.Errorf("get screening by id: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening not found")
	}

	movie, err := s.repo.Movie.FindByID(ctx, screening.MovieID)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}

	room, err := s.repo.Room.FindByID(ctx, screening.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room by id: %w", err)
	}

	movieTitle := ""
	if movie != nil {
		movieTitle = movie.Title
	}
	roomName := ""
	if room != nil {
		roomName = room.Name
	}

	labels, err := s.seatLabels(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	return &response.TicketResponse{
		TicketCode:    reservation.TicketCode,
		ScreeningName: entity.ScreeningName(movieTitle, screening.StartTime),
		RoomName:      roomName,
		StartTime:     screening.StartTime.Format(time.RFC3339),
		SeatLabels:    labels,
		TotalSeats:    reservation.TotalSeats,
	}, nil
}

func (s *reservationService) toResponse(ctx context.Context, reservation *entity.Reservation) (*response.ReservationResponse, error) {
	labels, err := s.seatLabels(ctx, reservation.ID)
	if err != nil {
		return nil, err
	}

	resp := response.ReservationToResponse(reservation, labels)
	return &resp, nil
}

func (s *reservationService) seatLabels(ctx context.Context, reservationID uuid.UUID) ([]string, error) {
	seatIDs, err := s.repo.ReservationSeat.FindSeatIDsByReservationID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("get reservation seats: %w", err)
	}
	if len(seatIDs) == 0 {
		return nil, nil
	}

	seats, err := s.repo.Seat.FindByIDs(ctx, seatIDs)
	if err != nil {
		return nil, fmt.Errorf("get seats: %w", err)
	}

	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label
	}
	return labels, nil
}

func (s *reservationService) findReservation(ctx context.Context, reservationID string) (*entity.Reservation, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation id: %w", err)
	}

	reservation, err := s.repo.Reservation.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID),
		)
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation not found")
	}

	return reservation, nil
}
