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

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []*entity.Seat) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error)
	FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Seat, error)
	DeleteByRoomID(ctx context.Context, roomID uuid.UUID) error
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	if len(seats) == 0 {
		return nil
	}

	// Build batch insert with numbered placeholders
	query := `INSERT INTO seats (id, room_id, seat_row, seat_number, label, created_at) VALUES `
	args := []interface{}{}

	for i, seat := range seats {
		if i > 0 {
			query += ", "
		}
		query += fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			i*6+1, i*6+2, i*6+3, i*6+4, i*6+5, i*6+6)

		args = append(args,
			seat.ID,
			seat.RoomID,
			seat.SeatRow,
			seat.SeatNumber,
			seat.Label,
			seat.CreatedAt,
		)
	}

	_, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to create batch seats",
			zap.Error(err),
			zap.Int("count", len(seats)),
		)
		return fmt.Errorf("create batch seats: %w", err)
	}

	return nil
}

func (r *seatRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	query := `
		SELECT id, room_id, seat_row, seat_number, label, created_at
		FROM seats
		WHERE id = $1
	`

	var seat entity.Seat
	err := r.db.QueryRow(ctx, query, id).Scan(
		&seat.ID,
		&seat.RoomID,
		&seat.SeatRow,
		&seat.SeatNumber,
		&seat.Label,
		&seat.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find seat by ID",
			zap.Error(err),
			zap.String("seat_id", id.String()),
		)
		return nil, fmt.Errorf("find seat by ID %s: %w", id.String(), err)
	}

	return &seat, nil
}

func (r *seatRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	if len(ids) == 0 {
		return []*entity.Seat{}, nil
	}

	query := `
		SELECT id, room_id, seat_row, seat_number, label, created_at
		FROM seats
		WHERE id = ANY($1)
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		r.log.Error("Failed to find seats by IDs",
			zap.Error(err),
			zap.Int("count", len(ids)),
		)
		return nil, fmt.Errorf("find seats by IDs: %w", err)
	}
	defer rows.Close()

	return scanSeats(rows, r.log)
}

func (r *seatRepository) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Seat, error) {
	query := `
		SELECT id, room_id, seat_row, seat_number, label, created_at
		FROM seats
		WHERE room_id = $1
		ORDER BY seat_row, seat_number
	`

	rows, err := r.db.Query(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to find seats by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return nil, fmt.Errorf("find seats by room ID %s: %w", roomID.String(), err)
	}
	defer rows.Close()

	return scanSeats(rows, r.log)
}

func (r *seatRepository) DeleteByRoomID(ctx context.Context, roomID uuid.UUID) error {
	query := `DELETE FROM seats WHERE room_id = $1`

	_, err := r.db.Exec(ctx, query, roomID)
	if err != nil {
		r.log.Error("Failed to delete seats by room ID",
			zap.Error(err),
			zap.String("room_id", roomID.String()),
		)
		return fmt.Errorf("delete seats by room ID %s: %w", roomID.String(), err)
	}

	return nil
}

func scanSeats(rows pgx.Rows, log *zap.Logger) ([]*entity.Seat, error) {
	var seats []*entity.Seat
	for rows.Next() {
		var seat entity.Seat
		err := rows.Scan(
			&seat.ID,
			&seat.RoomID,
			&seat.SeatRow,
			&seat.SeatNumber,
			&seat.Label,
			&seat.CreatedAt,
		)
		if err != nil {
			log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, &seat)
	}

	return seats, nil
}
