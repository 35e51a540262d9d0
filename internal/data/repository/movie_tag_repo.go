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

type MovieTagRepository interface {
	Create(ctx context.Context, tag *entity.MovieTag) error
	FindByName(ctx context.Context, name string) (*entity.MovieTag, error)
	FindAll(ctx context.Context) ([]*entity.MovieTag, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.MovieTag, error)
	Link(ctx context.Context, link *entity.MovieTagLink) error
	UnlinkByMovieID(ctx context.Context, movieID uuid.UUID) error
}

type movieTagRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieTagRepository(db database.PgxIface, log *zap.Logger) MovieTagRepository {
	return &movieTagRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie_tag")),
	}
}

func (r *movieTagRepository) Create(ctx context.Context, tag *entity.MovieTag) error {
	query := `INSERT INTO movie_tags (id, name, created_at) VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, query, tag.ID, tag.Name, tag.CreatedAt)
	if err != nil {
		r.log.Error("Failed to create movie tag",
			zap.Error(err),
			zap.String("name", tag.Name),
		)
		return fmt.Errorf("create movie tag %s: %w", tag.Name, err)
	}

	return nil
}

func (r *movieTagRepository) FindByName(ctx context.Context, name string) (*entity.MovieTag, error) {
	query := `SELECT id, name, created_at FROM movie_tags WHERE name = $1`

	var tag entity.MovieTag
	err := r.db.QueryRow(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie tag by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find movie tag by name %s: %w", name, err)
	}

	return &tag, nil
}

func (r *movieTagRepository) FindAll(ctx context.Context) ([]*entity.MovieTag, error) {
	query := `SELECT id, name, created_at FROM movie_tags ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find movie tags", zap.Error(err))
		return nil, fmt.Errorf("find movie tags: %w", err)
	}
	defer rows.Close()

	var tags []*entity.MovieTag
	for rows.Next() {
		var tag entity.MovieTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			r.log.Error("Failed to scan movie tag row", zap.Error(err))
			return nil, fmt.Errorf("scan movie tag row: %w", err)
		}
		tags = append(tags, &tag)
	}

	return tags, nil
}

func (r *movieTagRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.MovieTag, error) {
	query := `
		SELECT t.id, t.name, t.created_at
		FROM movie_tags t
		INNER JOIN movie_tag_links l ON l.tag_id = t.id
		WHERE l.movie_id = $1
		ORDER BY t.name
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find tags by movie ID",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("find tags by movie ID %s: %w", movieID.String(), err)
	}
	defer rows.Close()

	var tags []*entity.MovieTag
	for rows.Next() {
		var tag entity.MovieTag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			r.log.Error("Failed to scan movie tag row", zap.Error(err))
			return nil, fmt.Errorf("scan movie tag row: %w", err)
		}
		tags = append(tags, &tag)
	}

	return tags, nil
}

func (r *movieTagRepository) Link(ctx context.Context, link *entity.MovieTagLink) error {
	query := `
		INSERT INTO movie_tag_links (id, movie_id, tag_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (movie_id, tag_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, link.ID, link.MovieID, link.TagID, link.CreatedAt)
	if err != nil {
		r.log.Error("Failed to link movie tag",
			zap.Error(err),
			zap.String("movie_id", link.MovieID.String()),
			zap.String("tag_id", link.TagID.String()),
		)
		return fmt.Errorf("link tag %s to movie %s: %w", link.TagID.String(), link.MovieID.String(), err)
	}

	return nil
}

func (r *movieTagRepository) UnlinkByMovieID(ctx context.Context, movieID uuid.UUID) error {
	query := `DELETE FROM movie_tag_links WHERE movie_id = $1`

	_, err := r.db.Exec(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to unlink movie tags",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return fmt.Errorf("unlink tags for movie %s: %w", movieID.String(), err)
	}

	return nil
}
