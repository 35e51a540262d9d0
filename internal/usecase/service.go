package usecase

import (
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/database"
	"cinema-manager/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Movie       MovieService
	Room        RoomService
	Screening   ScreeningService
	Reservation ReservationService
	Loyalty     LoyaltyService
	FastSale    FastSaleService
	Customer    CustomerService
}

func NewService(db database.PgxIface, repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	loyalty := NewLoyaltyService(db, repo, log)
	reservation := NewReservationService(db, repo, loyalty, config, log)

	return &Service{
		Movie:       NewMovieService(repo, log),
		Room:        NewRoomService(repo, log),
		Screening:   NewScreeningService(repo, log),
		Reservation: reservation,
		Loyalty:     loyalty,
		FastSale:    NewFastSaleService(db, repo, reservation, loyalty, config, log),
		Customer:    NewCustomerService(repo, log),
	}
}
