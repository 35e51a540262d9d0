package wire

import (
	"cinema-manager/internal/adaptor"
	"cinema-manager/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/reservations", func(r chi.Router) {
		r.Post("/", reservationHandler.CreateReservation)
		r.Get("/{id}", reservationHandler.GetReservationByID)
		r.Post("/{id}/confirm", reservationHandler.ConfirmReservation)
		r.Post("/{id}/cancel", reservationHandler.CancelReservation)
		r.Get("/{id}/ticket", reservationHandler.GenerateTicket)
	})
}
