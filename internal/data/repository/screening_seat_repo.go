package repository

import (
	"context"
	"errors"
	"fmt"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// ErrSeatAlreadyOccupied is returned when the occupancy index rejects an
// insert because another confirmed reservation already holds the seat.
var ErrSeatAlreadyOccupied = errors.New("seat already occupied for this screening")

const uniqueViolationCode = "23505"

type ScreeningSeatRepository interface {
	Occupy(ctx context.Context, q database.Querier, seats []*entity.ScreeningSeat) error
	ReleaseByReservationID(ctx context.Context, q database.Querier, reservationID uuid.UUID) error
	FindSeatIDsByScreeningID(ctx context.Context, q database.Querier, screeningID uuid.UUID, exclude *uuid.UUID) ([]uuid.UUID, error)
}

type screeningSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningSeatRepository(db database.PgxIface, log *zap.Logger) ScreeningSeatRepository {
	return &screeningSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening_seat")),
	}
}

func (r *screeningSeatRepository) Occupy(ctx context.Context, q database.Querier, seats []*entity.ScreeningSeat) error {
	if q == nil {
		q = r.db
	}

	if len(seats) == 0 {
		return nil
	}

	query := `INSERT INTO screening_seats (id, screening_id, seat_id, reservation_id, created_at) VALUES `
	args := []interface{}{}

	for i, ss := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)", i*5+1, i*5+2, i*5+3, i*5+4, i*5+5)
		args = append(args, ss.ID, ss.ScreeningID, ss.SeatID, ss.ReservationID, ss.CreatedAt)
	}

	_, err := q.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			// Lost a race despite the screening lock, or a caller
			// skipped the lock. Either way the seat is taken.
			r.log.Warn("Occupancy insert hit unique constraint",
				zap.String("screening_id", seats[0].ScreeningID.String()),
			)
			return ErrSeatAlreadyOccupied
		}

		r.log.Error("Failed to occupy screening seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("occupy screening seats: %w", err)
	}

	return nil
}

func (r *screeningSeatRepository) ReleaseByReservationID(ctx context.Context, q database.Querier, reservationID uuid.UUID) error {
	if q == nil {
		q = r.db
	}

	query := `DELETE FROM screening_seats WHERE reservation_id = $1`

	_, err := q.Exec(ctx, query, reservationID)
	if err != nil {
		r.log.Error("Failed to release screening seats",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return fmt.Errorf("release screening seats for %s: %w", reservationID.String(), err)
	}

	return nil
}

func (r *screeningSeatRepository) FindSeatIDsByScreeningID(ctx context.Context, q database.Querier, screeningID uuid.UUID, exclude *uuid.UUID) ([]uuid.UUID, error) {
	if q == nil {
		q = r.db
	}

	query := `
		SELECT seat_id
		FROM screening_seats
		WHERE screening_id = $1 AND ($2::uuid IS NULL OR reservation_id != $2)
	`

	rows, err := q.Query(ctx, query, screeningID, exclude)
	if err != nil {
		r.log.Error("Failed to find occupied seat IDs",
			zap.Error(err),
			zap.String("screening_id", screeningID.String()),
		)
		return nil, fmt.Errorf("find occupied seat IDs for screening %s: %w", screeningID.String(), err)
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
