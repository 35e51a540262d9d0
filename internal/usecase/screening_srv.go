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

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ScreeningService interface {
	GetScreenings(ctx context.Context, req *request.PaginatedRequest, movieID *string) (*response.PaginatedResponse[response.ScreeningResponse], error)
	GetScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error)
	CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error)
	UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningUpdateRequest) (*response.ScreeningResponse, error)
	DeleteScreening(ctx context.Context, screeningID string) error

	// AvailableSeats is the remaining capacity: room capacity minus the
	// seats of confirmed reservations, floored at zero.
	AvailableSeats(ctx context.Context, screeningID uuid.UUID) (int, error)

	// AvailableSeatList lists the concrete seats not yet held by a
	// confirmed reservation for the screening.
	AvailableSeatList(ctx context.Context, screeningID string) ([]response.SeatResponse, error)
}

type screeningService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewScreeningService(repo *repository.Repository, log *zap.Logger) ScreeningService {
	return &screeningService{
		repo: repo,
		log:  log.With(zap.String("service", "screening")),
	}
}

func (s *screeningService) GetScreenings(ctx context.Context, req *request.PaginatedRequest, movieID *string) (*response.PaginatedResponse[response.ScreeningResponse], error) {
	var movieFilter *uuid.UUID
	if movieID != nil {
		id, err := uuid.Parse(*movieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie id: %w", err)
		}
		movieFilter = &id
	}

	screenings, err := s.repo.Screening.FindAll(ctx, req.Limit(), req.Offset(), movieFilter)
	if err != nil {
		s.log.Error("Failed to get screenings", zap.Error(err))
		return nil, fmt.Errorf("get screenings: %w", err)
	}

	total, err := s.repo.Screening.CountAll(ctx, movieFilter)
	if err != nil {
		s.log.Error("Failed to count screenings", zap.Error(err))
		return nil, fmt.Errorf("count screenings: %w", err)
	}

	screeningResponses := make([]response.ScreeningResponse, len(screenings))
	for i, screening := range screenings {
		resp, err := s.toResponse(ctx, screening)
		if err != nil {
			return nil, err
		}
		screeningResponses[i] = *resp
	}

	return response.NewPaginatedResponse(screeningResponses, req.Page, req.PerPage, total), nil
}

func (s *screeningService) GetScreeningByID(ctx context.Context, screeningID string) (*response.ScreeningResponse, error) {
	screening, err := s.findScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	return s.toResponse(ctx, screening)
}

func (s *screeningService) CreateScreening(ctx context.Context, req *request.ScreeningRequest) (*response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie id: %w", err)
	}
	roomID, err := uuid.Parse(req.RoomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room id: %w", err)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("check movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie not found")
	}

	room, err := s.repo.Room.FindByID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("check room: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room not found")
	}

	now := time.Now()
	screening := &entity.Screening{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:   movieID,
		RoomID:    roomID,
		StartTime: startTime,
	}

	if err := s.repo.Screening.Create(ctx, screening); err != nil {
		s.log.Error("Failed to create screening",
			zap.Error(err),
			zap.String("movie_id", req.MovieID),
			zap.String("room_id", req.RoomID),
		)
		return nil, fmt.Errorf("create screening: %w", err)
	}

	s.log.Info("Screening created",
		zap.String("screening_id", screening.ID.String()),
		zap.String("name", entity.ScreeningName(movie.Title, startTime)),
	)

	resp := response.ScreeningToResponse(screening, movie.Title, room.Name, room.Capacity)
	return &resp, nil
}

func (s *screeningService) UpdateScreening(ctx context.Context, screeningID string, req *request.ScreeningUpdateRequest) (*response.ScreeningResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update screening validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	screening, err := s.findScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	if req.MovieID != nil {
		movieID, err := uuid.Parse(*req.MovieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie id: %w", err)
		}
		movie, err := s.repo.Movie.FindByID(ctx, movieID)
		if err != nil {
			return nil, fmt.Errorf("check movie: %w", err)
		}
		if movie == nil {
			return nil, fmt.Errorf("movie not found")
		}
		screening.MovieID = movieID
	}

	if req.RoomID != nil {
		roomID, err := uuid.Parse(*req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("invalid room id: %w", err)
		}
		room, err := s.repo.Room.FindByID(ctx, roomID)
		if err != nil {
			return nil, fmt.Errorf("check room: %w", err)
		}
		if room == nil {
			return nil, fmt.Errorf("room not found")
		}
		screening.RoomID = roomID
	}

	if req.StartTime != nil {
		startTime, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid start time: %w", err)
		}
		screening.StartTime = startTime
	}

	screening.UpdatedAt = time.Now()
	if err := s.repo.Screening.Update(ctx, screening); err != nil {
		s.log.Error("Failed to update screening",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
		return nil, fmt.Errorf("update screening: %w", err)
	}

	return s.toResponse(ctx, screening)
}

func (s *screeningService) DeleteScreening(ctx context.Context, screeningID string) error {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return fmt.Errorf("invalid screening id: %w", err)
	}

	reservations, err := s.repo.Reservation.FindConfirmedByScreeningID(ctx, id)
	if err != nil {
		return fmt.Errorf("check screening reservations: %w", err)
	}
	if len(reservations) > 0 {
		return ErrSeatsLocked
	}

	if err := s.repo.Screening.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete screening",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
		return fmt.Errorf("delete screening: %w", err)
	}

	return nil
}

func (s *screeningService) AvailableSeats(ctx context.Context, screeningID uuid.UUID) (int, error) {
	screening, err := s.repo.Screening.FindByID(ctx, screeningID)
	if err != nil {
		return 0, fmt.Errorf("get screening by id: %w", err)
	}
	if screening == nil {
		return 0, fmt.Errorf("screening not found")
	}

	room, err := s.repo.Room.FindByID(ctx, screening.RoomID)
	if err != nil {
		return 0, fmt.Errorf("get room by id: %w", err)
	}
	if room == nil {
		return 0, fmt.Errorf("room not found")
	}

	reservations, err := s.repo.Reservation.FindConfirmedByScreeningID(ctx, screeningID)
	if err != nil {
		return 0, fmt.Errorf("get confirmed reservations: %w", err)
	}

	taken := 0
	for _, reservation := range reservations {
		taken += reservation.TotalSeats
	}

	available := room.Capacity - taken
	if available < 0 {
		available = 0
	}

	return available, nil
}

func (s *screeningService) AvailableSeatList(ctx context.Context, screeningID string) ([]response.SeatResponse, error) {
	screening, err := s.findScreening(ctx, screeningID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByRoomID(ctx, screening.RoomID)
	if err != nil {
		return nil, fmt.Errorf("get room seats: %w", err)
	}

	occupiedIDs, err := s.repo.ScreeningSeat.FindSeatIDsByScreeningID(ctx, nil, screening.ID, nil)
	if err != nil {
		return nil, fmt.Errorf("get occupied seats: %w", err)
	}

	occupied := mapset.NewSet(occupiedIDs...)
	available := make([]*entity.Seat, 0, len(seats))
	for _, seat := range seats {
		if !occupied.Contains(seat.ID) {
			available = append(available, seat)
		}
	}

	return response.SeatsToResponse(available), nil
}

func (s *screeningService) toResponse(ctx context.Context, screening *entity.Screening) (*response.ScreeningResponse, error) {
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

	available, err := s.AvailableSeats(ctx, screening.ID)
	if err != nil {
		return nil, err
	}

	resp := response.ScreeningToResponse(screening, movieTitle, roomName, available)
	return &resp, nil
}

func (s *screeningService) findScreening(ctx context.Context, screeningID string) (*entity.Screening, error) {
	id, err := uuid.Parse(screeningID)
	if err != nil {
		return nil, fmt.Errorf("invalid screening id: %w", err)
	}

	screening, err := s.repo.Screening.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get screening by ID",
			zap.Error(err),
			zap.String("screening_id", screeningID),
		)
		return nil, fmt.Errorf("get screening by id: %w", err)
	}
	if screening == nil {
		return nil, fmt.Errorf("screening not found")
	}

	return screening, nil
}
