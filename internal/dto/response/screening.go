package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type ScreeningResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	MovieID        string    `json:"movie_id"`
	MovieTitle     string    `json:"movie_title"`
	RoomID         string    `json:"room_id"`
	RoomName       string    `json:"room_name"`
	StartTime      time.Time `json:"start_time"`
	AvailableSeats int       `json:"available_seats"`
	CreatedAt      time.Time `json:"created_at"`
}

func ScreeningToResponse(screening *entity.Screening, movieTitle, roomName string, availableSeats int) ScreeningResponse {
	return ScreeningResponse{
		ID:             screening.ID.String(),
		Name:           entity.ScreeningName(movieTitle, screening.StartTime),
		MovieID:        screening.MovieID.String(),
		MovieTitle:     movieTitle,
		RoomID:         screening.RoomID.String(),
		RoomName:       roomName,
		StartTime:      screening.StartTime,
		AvailableSeats: availableSeats,
		CreatedAt:      screening.CreatedAt,
	}
}
