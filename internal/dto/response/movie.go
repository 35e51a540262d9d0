package response

import (
	"time"

	"cinema-manager/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Rating      float64   `json:"rating"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	ExternalID  *string   `json:"external_id,omitempty"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie, tags []string) MovieResponse {
	if tags == nil {
		tags = []string{}
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Rating:      movie.Rating,
		PosterURL:   movie.PosterURL,
		ExternalID:  movie.ExternalID,
		Tags:        tags,
		CreatedAt:   movie.CreatedAt,
	}
}
