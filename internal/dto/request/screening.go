package request

type ScreeningRequest struct {
	MovieID   string `json:"movie_id" validate:"required,uuid4"`
	RoomID    string `json:"room_id" validate:"required,uuid4"`
	StartTime string `json:"start_time" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

type ScreeningUpdateRequest struct {
	MovieID   *string `json:"movie_id,omitempty" validate:"omitempty,uuid4"`
	RoomID    *string `json:"room_id,omitempty" validate:"omitempty,uuid4"`
	StartTime *string `json:"start_time,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}
