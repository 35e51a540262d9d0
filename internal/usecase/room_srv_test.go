package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-manager/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateSeatsGrid(t *testing.T) {
	repo, rooms, _, _, _, _, _, _, _, _ := testRepo()
	service := NewRoomService(repo, zap.NewNop())

	room := &entity.Room{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Sala 1",
		RowsQty:      2,
		ColsQty:      3,
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	seats, err := service.GenerateSeats(context.Background(), room.ID.String())
	require.NoError(t, err)
	require.Len(t, seats, 6)

	labels := make([]string, len(seats))
	for i, seat := range seats {
		labels[i] = seat.Label
	}
	assert.Equal(t, []string{"A1", "A2", "A3", "B1", "B2", "B3"}, labels)

	stored, err := rooms.FindByID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Capacity)
}

func TestGenerateSeatsReplacesOldGrid(t *testing.T) {
	repo, rooms, seatRepo, _, _, _, _, _, _, _ := testRepo()
	service := NewRoomService(repo, zap.NewNop())

	room := &entity.Room{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Sala 2",
		RowsQty:      1,
		ColsQty:      2,
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	_, err := service.GenerateSeats(context.Background(), room.ID.String())
	require.NoError(t, err)

	room.RowsQty = 3
	room.ColsQty = 1
	seats, err := service.GenerateSeats(context.Background(), room.ID.String())
	require.NoError(t, err)
	require.Len(t, seats, 3)

	all, err := seatRepo.FindByRoomID(context.Background(), room.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3, "old seats must be gone")
}

func TestGenerateSeatsRefusedWhenRoomLocked(t *testing.T) {
	repo, rooms, _, _, _, _, _, _, _, _ := testRepo()
	service := NewRoomService(repo, zap.NewNop())

	room := &entity.Room{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Sala 3",
		RowsQty:      2,
		ColsQty:      2,
	}
	require.NoError(t, rooms.Create(context.Background(), room))
	rooms.locked = true

	_, err := service.GenerateSeats(context.Background(), room.ID.String())
	assert.ErrorIs(t, err, ErrSeatsLocked)
}

func TestRowLabelsBeyondZ(t *testing.T) {
	repo, rooms, _, _, _, _, _, _, _, _ := testRepo()
	service := NewRoomService(repo, zap.NewNop())

	room := &entity.Room{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Sala grande",
		RowsQty:      27,
		ColsQty:      1,
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	seats, err := service.GenerateSeats(context.Background(), room.ID.String())
	require.NoError(t, err)
	require.Len(t, seats, 27)

	// Lexicographic row ordering puts AA right after A.
	assert.Equal(t, "A1", seats[0].Label)
	assert.Equal(t, "AA1", seats[1].Label)
	assert.Equal(t, "Z1", seats[26].Label)
}
