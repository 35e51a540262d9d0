package entity

import "github.com/google/uuid"

type Movie struct {
	Base
	Title       string  `db:"title"`
	Description *string `db:"description"`
	Rating      float64 `db:"rating"`
	PosterURL   *string `db:"poster_url"`
	ExternalID  *string `db:"external_id"`
}

type MovieTag struct {
	BaseSimple
	Name string `db:"name"`
}

type MovieTagLink struct {
	BaseSimple
	MovieID uuid.UUID `db:"movie_id"`
	TagID   uuid.UUID `db:"tag_id"`
}
