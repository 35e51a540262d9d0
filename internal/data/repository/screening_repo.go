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

type ScreeningRepository interface {
	Create(ctx context.Context, screening *entity.Screening) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error)
	FindAll(ctx context.Context, limit, offset int, movieID *uuid.UUID) ([]*entity.Screening, error)
	CountAll(ctx context.Context, movieID *uuid.UUID) (int64, error)
	Update(ctx context.Context, screening *entity.Screening) error
	Delete(ctx context.Context, id uuid.UUID) error

	// LockRow takes a row-level lock on the screening for the duration of
	// the surrounding transaction. Serializes concurrent confirmations.
	LockRow(ctx context.Context, q database.Querier, id uuid.UUID) error
}

type screeningRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScreeningRepository(db database.PgxIface, log *zap.Logger) ScreeningRepository {
	return &screeningRepository{
		db:  db,
		log: log.With(zap.String("repository", "screening")),
	}
}

func (r *screeningRepository) Create(ctx context.Context, screening *entity.Screening) error {
	query := `
		INSERT INTO screenings (id, movie_id, room_id, start_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.RoomID,
		screening.StartTime,
		screening.CreatedAt,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", screening.MovieID.String()),
			zap.String("room_id", screening.RoomID.String()),
		)
		return fmt.Errorf("create screening: %w", err)
	}

	return nil
}

func (r *screeningRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	query := `
		SELECT id, movie_id, room_id, start_time, created_at, updated_at
		FROM screenings
		WHERE id = $1
	`

	var screening entity.Screening
	err := r.db.QueryRow(ctx, query, id).Scan(
		&screening.ID,
		&screening.MovieID,
		&screening.RoomID,
		&screening.StartTime,
		&screening.CreatedAt,
		&screening.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find screening by ID",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return nil, fmt.Errorf("find screening by ID %s: %w", id.String(), err)
	}

	return &screening, nil
}

func (r *screeningRepository) FindAll(ctx context.Context, limit, offset int, movieID *uuid.UUID) ([]*entity.Screening, error) {
	query := `
		SELECT id, movie_id, room_id, start_time, created_at, updated_at
		FROM screenings
		WHERE $3::uuid IS NULL OR movie_id = $3
		ORDER BY start_time
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, movieID)
	if err != nil {
		r.log.Error("Failed to find screenings",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find screenings: %w", err)
	}
	defer rows.Close()

	var screenings []*entity.Screening
	for rows.Next() {
		var screening entity.Screening
		err := rows.Scan(
			&screening.ID,
			&screening.MovieID,
			&screening.RoomID,
			&screening.StartTime,
			&screening.CreatedAt,
			&screening.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan screening row", zap.Error(err))
			return nil, fmt.Errorf("scan screening row: %w", err)
		}
		screenings = append(screenings, &screening)
	}

	return screenings, nil
}

func (r *screeningRepository) CountAll(ctx context.Context, movieID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM screenings WHERE $1::uuid IS NULL OR movie_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		r.log.Error("Failed to count screenings", zap.Error(err))
		return 0, fmt.Errorf("count screenings: %w", err)
	}

	return count, nil
}

func (r *screeningRepository) Update(ctx context.Context, screening *entity.Screening) error {
	query := `
		UPDATE screenings
		SET movie_id = $2, room_id = $3, start_time = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		screening.ID,
		screening.MovieID,
		screening.RoomID,
		screening.StartTime,
		screening.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screening.ID.String()),
		)
		return fmt.Errorf("update screening %s: %w", screening.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found", screening.ID.String())
	}

	return nil
}

func (r *screeningRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM screenings WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("delete screening %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("screening %s not found", id.String())
	}

	r.log.Info("Screening deleted", zap.String("screening_id", id.String()))
	return nil
}

func (r *screeningRepository) LockRow(ctx context.Context, q database.Querier, id uuid.UUID) error {
	query := `SELECT id FROM screenings WHERE id = $1 FOR UPDATE`

	var locked uuid.UUID
	err := q.QueryRow(ctx, query, id).Scan(&locked)

	if err == pgx.ErrNoRows {
		return fmt.Errorf("screening %s not found", id.String())
	}
	if err != nil {
		r.log.Error("Failed to lock screening row",
			zap.Error(err),
			zap.String("screening_id", id.String()),
		)
		return fmt.Errorf("lock screening %s: %w", id.String(), err)
	}

	return nil
}
