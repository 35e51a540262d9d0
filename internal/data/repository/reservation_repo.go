package repository

import (
	"context"
	"fmt"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Reservation, error)
	CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error)
	FindConfirmedByScreeningID(ctx context.Context, screeningID uuid.UUID) ([]*entity.Reservation, error)
	// Transactional pieces of the confirm flow
	UpdateTicketCode(ctx context.Context, q database.Querier, id uuid.UUID, code string) error
	NextTicketCode(ctx context.Context, q database.Querier) (string, error)
	UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.ReservationStatus) error
	LinkSaleOrder(ctx context.Context, q database.Querier, id, orderID uuid.UUID) error
	ConfirmedSeatCount(ctx context.Context, q database.Querier, screeningID uuid.UUID, exclude *uuid.UUID) (int, error)
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (id, ticket_code, screening_id, customer_id, sale_order_id,
			qty_regular, qty_vip, total_seats, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.TicketCode,
		reservation.ScreeningID,
		reservation.CustomerID,
		reservation.SaleOrderID,
		reservation.QtyRegular,
		reservation.QtyVIP,
		reservation.TotalSeats,
		reservation.Status,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("screening_id", reservation.ScreeningID.String()),
		)
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `
		SELECT id, ticket_code, screening_id, customer_id, sale_order_id,
			qty_regular, qty_vip, total_seats, status, created_at, updated_at
		FROM reservations
		WHERE id = $1
	`

	var reservation entity.Reservation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.TicketCode,
		&reservation.ScreeningID,
		&reservation.CustomerID,
		&reservation.SaleOrderID,
		&reservation.QtyRegular,
		&reservation.QtyVIP,
		&reservation.TotalSeats,
		&reservation.Status,
		&reservation.CreatedAt,
		&reservation.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return &reservation, nil
}

func (r *reservationRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT id, ticket_code, screening_id, customer_id, sale_order_id,
			qty_regular, qty_vip, total_seats, status, created_at, updated_at
		FROM reservations
		WHERE customer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find reservations by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return nil, fmt.Errorf("find reservations by customer ID %s: %w", customerID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM reservations WHERE customer_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, customerID).Scan(&count); err != nil {
		r.log.Error("Failed to count reservations by customer ID",
			zap.Error(err),
			zap.String("customer_id", customerID.String()),
		)
		return 0, fmt.Errorf("count reservations by customer ID %s: %w", customerID.String(), err)
	}

	return count, nil
}

func (r *reservationRepository) FindConfirmedByScreeningID(ctx context.Context, screeningID uuid.UUID) ([]*entity.Reservation, error) {
	query := `
		SELECT id, ticket_code, screening_id, customer_id, sale_order_id,
			qty_regular, qty_vip, total_seats, status, created_at, updated_at
		FROM reservations
		WHERE screening_id = $1 AND status = 'confirmed'
	`

	rows, err := r.db.Query(ctx, query, screeningID)
	if err != nil {
		r.log.Error("Failed to find confirmed reservations by screening ID",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("find confirmed reservations by screening ID %s: %w", screeningID.String(), err)
	}
	defer rows.Close()

	return scanReservations(rows, r.log)
}

func (r *reservationRepository) UpdateTicketCode(ctx context.Context, q database.Querier, id uuid.UUID, code string) error {
	if q == nil {
		q = r.db
	}

	query := `UPDATE reservations SET ticket_code = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, code)
	if err != nil {
		r.log.Error("Failed to update ticket code",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("ticket_code", code),
		)
		return fmt.Errorf("update ticket code for reservation %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) NextTicketCode(ctx context.Context, q database.Querier) (string, error) {
	if q == nil {
		q = r.db
	}

	query := `SELECT nextval('reservation_ticket_seq')`

	var seq int64
	if err := q.QueryRow(ctx, query).Scan(&seq); err != nil {
		r.log.Error("Failed to fetch next ticket sequence", zap.Error(err))
		return "", fmt.Errorf("next ticket sequence: %w", err)
	}

	return fmt.Sprintf("TKT/%05d", seq), nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.ReservationStatus) error {
	if q == nil {
		q = r.db
	}

	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) LinkSaleOrder(ctx context.Context, q database.Querier, id, orderID uuid.UUID) error {
	if q == nil {
		q = r.db
	}

	query := `UPDATE reservations SET sale_order_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, orderID)
	if err != nil {
		r.log.Error("Failed to link sale order",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("sale_order_id", orderID.String()),
		)
		return fmt.Errorf("link sale order %s to reservation %s: %w", orderID.String(), id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("reservation %s not found", id.String())
	}

	return nil
}

func (r *reservationRepository) ConfirmedSeatCount(ctx context.Context, q database.Querier, screeningID uuid.UUID, exclude *uuid.UUID) (int, error) {
	if q == nil {
		q = r.db
	}

	query := `
		SELECT COALESCE(SUM(total_seats), 0)
		FROM reservations
		WHERE screening_id = $1 AND status = 'confirmed'
			AND ($2::uuid IS NULL OR id != $2)
	`

	var total int
	if err := q.QueryRow(ctx, query, screeningID, exclude).Scan(&total); err != nil {
		r.log.Error("Failed to sum confirmed seats",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return 0, fmt.Errorf("sum confirmed seats for screening %s: %w", screeningID.String(), err)
	}

	return total, nil
}

func scanReservations(rows pgx.Rows, log *zap.Logger) ([]*entity.Reservation, error) {
	var reservations []*entity.Reservation
	for rows.Next() {
		var reservation entity.Reservation
		err := rows.Scan(
			&reservation.ID,
			&reservation.TicketCode,
			&reservation.ScreeningID,
			&reservation.CustomerID,
			&reservation.SaleOrderID,
			&reservation.QtyRegular,
			&reservation.QtyVIP,
			&reservation.TotalSeats,
			&reservation.Status,
			&reservation.CreatedAt,
			&reservation.UpdatedAt,
		)
		if err != nil {
			log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, &reservation)
	}

	return reservations, nil
}
