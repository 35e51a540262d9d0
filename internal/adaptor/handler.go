package adaptor

import (
	"errors"
	"net/http"
	"strings"

	"cinema-manager/internal/usecase"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Movie       *MovieHandler
	Room        *RoomHandler
	Screening   *ScreeningHandler
	Reservation *ReservationHandler
	FastSale    *FastSaleHandler
	Customer    *CustomerHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Movie:       NewMovieHandler(service.Movie, log),
		Room:        NewRoomHandler(service.Room, log),
		Screening:   NewScreeningHandler(service.Screening, log),
		Reservation: NewReservationHandler(service.Reservation, log),
		FastSale:    NewFastSaleHandler(service.FastSale, log),
		Customer:    NewCustomerHandler(service.Customer, service.Reservation, log),
	}
}

// handleServiceError maps service errors to HTTP responses. Business
// rule sentinels come first, then string matching for the generic
// not-found / validation cases.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrSeatConflict),
		errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrSeatsLocked),
		errors.Is(err, usecase.ErrInvalidTransition):
		log.Warn(operation+" refused",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrNoSeatsSelected),
		errors.Is(err, usecase.ErrSeatCountMismatch),
		errors.Is(err, usecase.ErrInsufficientPoints):
		log.Warn(operation+" refused",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "duplicate"):
		log.Warn(operation+" failed - bad input",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
