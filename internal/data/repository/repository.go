package repository

import (
	"cinema-manager/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Movie           MovieRepository
	MovieTag        MovieTagRepository
	Room            RoomRepository
	Seat            SeatRepository
	Screening       ScreeningRepository
	Reservation     ReservationRepository
	ReservationSeat ReservationSeatRepository
	ScreeningSeat   ScreeningSeatRepository
	Customer        CustomerRepository
	LoyaltyCredit   LoyaltyCreditRepository
	SaleOrder       SaleOrderRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Movie:           NewMovieRepository(db, log),
		MovieTag:        NewMovieTagRepository(db, log),
		Room:            NewRoomRepository(db, log),
		Seat:            NewSeatRepository(db, log),
		Screening:       NewScreeningRepository(db, log),
		Reservation:     NewReservationRepository(db, log),
		ReservationSeat: NewReservationSeatRepository(db, log),
		ScreeningSeat:   NewScreeningSeatRepository(db, log),
		Customer:        NewCustomerRepository(db, log),
		LoyaltyCredit:   NewLoyaltyCreditRepository(db, log),
		SaleOrder:       NewSaleOrderRepository(db, log),
	}
}
