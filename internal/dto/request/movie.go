package request

type MovieRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Rating      float64  `json:"rating" validate:"gte=0,max=10"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	ExternalID  *string  `json:"external_id,omitempty"`
	Tags        []string `json:"tags,omitempty" validate:"dive,min=1,max=50"`
}

type MovieUpdateRequest struct {
	Title       *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description,omitempty"`
	Rating      *float64 `json:"rating,omitempty" validate:"omitempty,gte=0,max=10"`
	PosterURL   *string  `json:"poster_url,omitempty"`
	ExternalID  *string  `json:"external_id,omitempty"`
	Tags        []string `json:"tags,omitempty" validate:"dive,min=1,max=50"`
}
