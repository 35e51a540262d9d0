package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Screening struct {
	BaseNoDelete
	MovieID   uuid.UUID `db:"movie_id"`
	RoomID    uuid.UUID `db:"room_id"`
	StartTime time.Time `db:"start_time"`
}

// ScreeningName builds the display name: "movie title - start time".
func ScreeningName(movieTitle string, startTime time.Time) string {
	return fmt.Sprintf("%s - %s", movieTitle, startTime.Format("2006-01-02 15:04"))
}
