package repository

import (
	"context"
	"fmt"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReservationSeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.ReservationSeat) error
	FindSeatIDsByReservationID(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error)
	DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error
}

type reservationSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationSeatRepository(db database.PgxIface, log *zap.Logger) ReservationSeatRepository {
	return &reservationSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation_seat")),
	}
}

func (r *reservationSeatRepository) CreateBatch(ctx context.Context, seats []*entity.ReservationSeat) error {
	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO reservation_seats (id, reservation_id, seat_id, created_at) VALUES `
	args := []interface{}{}

	for i, rs := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d)", i*4+1, i*4+2, i*4+3, i*4+4)
		args = append(args, rs.ID, rs.ReservationID, rs.SeatID, rs.CreatedAt)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch reservation seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch reservation seats: %w", err)
	}

	return nil
}

func (r *reservationSeatRepository) FindSeatIDsByReservationID(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT seat_id
		FROM reservation_seats
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to find seat IDs by reservation ID",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return nil, fmt.Errorf("find seat IDs by reservation ID %s: %w", reservationID.String(), err)
	}
	defer rows.Close()

	var seatIDs []uuid.UUID
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			r.log.Error("Failed to scan seat ID row", zap.Error(err))
			return nil, fmt.Errorf("scan seat ID row: %w", err)
		}
		seatIDs = append(seatIDs, seatID)
	}

	return seatIDs, nil
}

func (r *reservationSeatRepository) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	query := `DELETE FROM reservation_seats WHERE reservation_id = $1`

	_, err := r.db.Exec(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to delete reservation seats",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("delete reservation seats for %s: %w", reservationID.String(), err)
	}

	return nil
}
