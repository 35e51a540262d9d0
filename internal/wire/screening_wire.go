package wire

import (
	"cinema-manager/internal/adaptor"
	"cinema-manager/pkg/middleware"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireScreening(
	r chi.Router,
	screeningHandler *adaptor.ScreeningHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Get("/api/screenings", screeningHandler.GetScreenings)
	r.Get("/api/screenings/{id}", screeningHandler.GetScreeningByID)
	r.Get("/api/screenings/{id}/seats", screeningHandler.GetAvailableSeats)

	r.Route("/api/admin/screenings", func(r chi.Router) {
		r.Use(middleware.Admin(config.Admin.APIKey, log))

		r.Post("/", screeningHandler.CreateScreening)
		r.Put("/{id}", screeningHandler.UpdateScreening)
		r.Delete("/{id}", screeningHandler.DeleteScreening)
	})
}
