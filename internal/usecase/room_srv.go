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

type RoomService interface {
	GetRooms(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoomResponse], error)
	GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error)
	GetRoomSeats(ctx context.Context, roomID string) ([]response.SeatResponse, error)
	CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error)
	UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error)
	DeleteRoom(ctx context.Context, roomID string) error

	// GenerateSeats rebuilds the seat grid from the room's row/column
	// counts and syncs capacity to the seat count. Refused while any
	// confirmed reservation exists in the room.
	GenerateSeats(ctx context.Context, roomID string) ([]response.SeatResponse, error)
}

type roomService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewRoomService(repo *repository.Repository, log *zap.Logger) RoomService {
	return &roomService{
		repo: repo,
		log:  log.With(zap.String("service", "room")),
	}
}

func (s *roomService) GetRooms(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.RoomResponse], error) {
	rooms, err := s.repo.Room.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get rooms", zap.Error(err))
		return nil, fmt.Errorf("get rooms: %w", err)
	}

	total, err := s.repo.Room.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count rooms", zap.Error(err))
		return nil, fmt.Errorf("count rooms: %w", err)
	}

	roomResponses := make([]response.RoomResponse, len(rooms))
	for i, room := range rooms {
		roomResponses[i] = response.RoomToResponse(room)
	}

	return response.NewPaginatedResponse(roomResponses, req.Page, req.PerPage, total), nil
}

func (s *roomService) GetRoomByID(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) GetRoomSeats(ctx context.Context, roomID string) ([]response.SeatResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByRoomID(ctx, room.ID)
	if err != nil {
		s.log.Error("Failed to get room seats",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return nil, fmt.Errorf("get room seats: %w", err)
	}

	return response.SeatsToResponse(seats), nil
}

func (s *roomService) CreateRoom(ctx context.Context, req *request.RoomRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	room := &entity.Room{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		RowsQty:  req.RowsQty,
		ColsQty:  req.ColsQty,
		Capacity: req.RowsQty * req.ColsQty,
	}

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.log.Error("Failed to create room",
			zap.Error(err),
			zap.String("name", req.Name),
		)
		return nil, fmt.Errorf("create room: %w", err)
	}

	if err := s.buildSeatGrid(ctx, room); err != nil {
		return nil, err
	}

	s.log.Info("Room created",
		zap.String("room_id", room.ID.String()),
		zap.String("name", room.Name),
		zap.Int("capacity", room.Capacity),
	)

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) UpdateRoom(ctx context.Context, roomID string, req *request.RoomUpdateRequest) (*response.RoomResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update room validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	layoutChanged := false
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.RowsQty != nil && *req.RowsQty != room.RowsQty {
		room.RowsQty = *req.RowsQty
		layoutChanged = true
	}
	if req.ColsQty != nil && *req.ColsQty != room.ColsQty {
		room.ColsQty = *req.ColsQty
		layoutChanged = true
	}

	// A layout change means a regeneration, which is refused while
	// confirmed reservations reference the current seats.
	if layoutChanged {
		locked, err := s.repo.Room.HasConfirmedReservations(ctx, room.ID)
		if err != nil {
			return nil, fmt.Errorf("check room reservations: %w", err)
		}
		if locked {
			return nil, ErrSeatsLocked
		}
	}

	room.UpdatedAt = time.Now()
	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.log.Error("Failed to update room",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return nil, fmt.Errorf("update room: %w", err)
	}

	if layoutChanged {
		if err := s.buildSeatGrid(ctx, room); err != nil {
			return nil, err
		}
	}

	resp := response.RoomToResponse(room)
	return &resp, nil
}

func (s *roomService) DeleteRoom(ctx context.Context, roomID string) error {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return fmt.Errorf("invalid room id: %w", err)
	}

	locked, err := s.repo.Room.HasConfirmedReservations(ctx, id)
	if err != nil {
		return fmt.Errorf("check room reservations: %w", err)
	}
	if locked {
		return ErrSeatsLocked
	}

	if err := s.repo.Room.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete room",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return fmt.Errorf("delete room: %w", err)
	}

	return nil
}

func (s *roomService) GenerateSeats(ctx context.Context, roomID string) ([]response.SeatResponse, error) {
	room, err := s.findRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	locked, err := s.repo.Room.HasConfirmedReservations(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("check room reservations: %w", err)
	}
	if locked {
		s.log.Warn("Seat generation refused, room has confirmed reservations",
			zap.String("room_id", roomID),
		)
		return nil, ErrSeatsLocked
	}

	if err := s.buildSeatGrid(ctx, room); err != nil {
		return nil, err
	}

	seats, err := s.repo.Seat.FindByRoomID(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("get room seats: %w", err)
	}

	return response.SeatsToResponse(seats), nil
}

// buildSeatGrid replaces the room's seats with a fresh rows x cols grid
// and updates the capacity to match.
func (s *roomService) buildSeatGrid(ctx context.Context, room *entity.Room) error {
	if err := s.repo.Seat.DeleteByRoomID(ctx, room.ID); err != nil {
		return fmt.Errorf("clear room seats: %w", err)
	}

	now := time.Now()
	seats := make([]*entity.Seat, 0, room.RowsQty*room.ColsQty)
	for row := 0; row < room.RowsQty; row++ {
		rowLabel := entity.RowLabel(row)
		for col := 1; col <= room.ColsQty; col++ {
			seats = append(seats, &entity.Seat{
				BaseSimple: entity.BaseSimple{
					ID:        uuid.New(),
					CreatedAt: now,
				},
				RoomID:     room.ID,
				SeatRow:    rowLabel,
				SeatNumber: col,
				Label:      fmt.Sprintf("%s%d", rowLabel, col),
			})
		}
	}

	if err := s.repo.Seat.CreateBatch(ctx, seats); err != nil {
		return fmt.Errorf("create seats: %w", err)
	}

	if room.Capacity != len(seats) {
		room.Capacity = len(seats)
		if err := s.repo.Room.UpdateCapacity(ctx, room.ID, len(seats)); err != nil {
			return fmt.Errorf("update room capacity: %w", err)
		}
	}

	s.log.Info("Seat grid generated",
		zap.String("room_id", room.ID.String()),
		zap.Int("rows", room.RowsQty),
		zap.Int("cols", room.ColsQty),
		zap.Int("seats", len(seats)),
	)

	return nil
}

func (s *roomService) findRoom(ctx context.Context, roomID string) (*entity.Room, error) {
	id, err := uuid.Parse(roomID)
	if err != nil {
		return nil, fmt.Errorf("invalid room id: %w", err)
	}

	room, err := s.repo.Room.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get room by ID",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return nil, fmt.Errorf("get room by id: %w", err)
	}
	if room == nil {
		return nil, fmt.Errorf("room not found")
	}

	return room, nil
}
