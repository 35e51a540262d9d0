package usecase

import (
	"context"
	"fmt"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"
	"cinema-manager/internal/dto/response"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest, title *string) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest, title *string) (*response.PaginatedResponse[response.MovieResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	movies, err := s.repo.Movie.FindAll(ctx, limit, offset, title)
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, title)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		tags, err := s.repo.MovieTag.FindByMovieID(ctx, movie.ID)
		if err != nil {
			s.log.Warn("Failed to get tags for movie",
				zap.Error(err),
				zap.String("movie_id", movie.ID.String()),
			)
		}

		tagNames := make([]string, len(tags))
		for j, tag := range tags {
			tagNames[j] = tag.Name
		}

		movieResponses[i] = response.MovieToResponse(movie, tagNames)
	}

	return response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total), nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	tags, err := s.repo.MovieTag.FindByMovieID(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to get tags for movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
	}

	tagNames := make([]string, len(tags))
	for i, tag := range tags {
		tagNames[i] = tag.Name
	}

	resp := response.MovieToResponse(movie, tagNames)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.MovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		Rating:      req.Rating,
		PosterURL:   req.PosterURL,
		ExternalID:  req.ExternalID,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		s.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", req.Title),
		)
		return nil, fmt.Errorf("create movie: %w", err)
	}

	if err := s.attachTags(ctx, movie.ID, req.Tags); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie, req.Tags)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update movie validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get movie by id: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = req.Description
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.PosterURL != nil {
		movie.PosterURL = req.PosterURL
	}
	if req.ExternalID != nil {
		movie.ExternalID = req.ExternalID
	}
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		s.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return nil, fmt.Errorf("update movie: %w", err)
	}

	// Tags present in the request replace the existing set.
	if req.Tags != nil {
		if err := s.repo.MovieTag.UnlinkByMovieID(ctx, movie.ID); err != nil {
			return nil, fmt.Errorf("unlink movie tags: %w", err)
		}
		if err := s.attachTags(ctx, movie.ID, req.Tags); err != nil {
			return nil, err
		}
	}

	tags, err := s.repo.MovieTag.FindByMovieID(ctx, movie.ID)
	if err != nil {
		s.log.Warn("Failed to get tags for movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
	}

	tagNames := make([]string, len(tags))
	for i, tag := range tags {
		tagNames[i] = tag.Name
	}

	resp := response.MovieToResponse(movie, tagNames)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("invalid movie id: %w", err)
	}

	if err := s.repo.Movie.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", movieID),
		)
		return fmt.Errorf("delete movie: %w", err)
	}

	return nil
}

// attachTags ensures each named tag exists and links it to the movie.
func (s *movieService) attachTags(ctx context.Context, movieID uuid.UUID, tagNames []string) error {
	for _, name := range tagNames {
		tag, err := s.repo.MovieTag.FindByName(ctx, name)
		if err != nil {
			return fmt.Errorf("find tag %s: %w", name, err)
		}

		if tag == nil {
			tag = &entity.MovieTag{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: time.Now(),
				},
				Name: name,
			}
			if err := s.repo.MovieTag.Create(ctx, tag); err != nil {
				return fmt.Errorf("create tag %s: %w", name, err)
			}
		}

		link := &entity.MovieTagLink{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			MovieID: movieID,
			TagID:   tag.ID,
		}
		if err := s.repo.MovieTag.Link(ctx, link); err != nil {
			return fmt.Errorf("link tag %s: %w", name, err)
		}
	}

	return nil
}
