package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cinemaFixture struct {
	repo     *repository.Repository
	rooms    *fakeRoomRepo
	seats    *fakeSeatRepo
	occupied *fakeScreeningSeatRepo
	resRepo  *fakeReservationRepo
	credits  *fakeLoyaltyCreditRepo
	orders   *fakeSaleOrderRepo

	room      *entity.Room
	seatList  []*entity.Seat
	screening *entity.Screening
	customer  *entity.Customer

	loyalty     LoyaltyService
	reservation ReservationService
}

// seedCinema builds a room with the given seat count, one screening in
// it and one customer.
func seedCinema(t *testing.T, seatCount int) *cinemaFixture {
	t.Helper()

	repo, rooms, seats, screenings, reservations, _, occupied, customers, credits, orders := testRepo()

	now := time.Now()
	room := &entity.Room{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Sala 1",
		RowsQty:      1,
		ColsQty:      seatCount,
		Capacity:     seatCount,
	}
	require.NoError(t, rooms.Create(context.Background(), room))

	seatList := make([]*entity.Seat, seatCount)
	for i := 0; i < seatCount; i++ {
		seatList[i] = &entity.Seat{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			RoomID:     room.ID,
			SeatRow:    "A",
			SeatNumber: i + 1,
			Label:      fmt.Sprintf("A%d", i+1),
		}
	}
	require.NoError(t, seats.CreateBatch(context.Background(), seatList))

	movie := &entity.Movie{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title: "Metropolis",
	}
	require.NoError(t, repo.Movie.Create(context.Background(), movie))

	screening := &entity.Screening{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:      movie.ID,
		RoomID:       room.ID,
		StartTime:    now.Add(24 * time.Hour),
	}
	require.NoError(t, screenings.Create(context.Background(), screening))

	customer := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         "Dora",
		MemberLevel:  entity.MemberLevelStandard,
	}
	require.NoError(t, customers.Create(context.Background(), customer))

	log := zap.NewNop()
	loyalty := NewLoyaltyService(fakeDB{}, repo, log)
	reservation := NewReservationService(fakeDB{}, repo, loyalty, testConfig(), log)

	return &cinemaFixture{
		repo:        repo,
		rooms:       rooms,
		seats:       seats,
		occupied:    occupied,
		resRepo:     reservations,
		credits:     credits,
		orders:      orders,
		room:        room,
		seatList:    seatList,
		screening:   screening,
		customer:    customer,
		loyalty:     loyalty,
		reservation: reservation,
	}
}

func (f *cinemaFixture) draftReservation(t *testing.T, seatIdx ...int) string {
	t.Helper()

	seatIDs := make([]string, len(seatIdx))
	for i, idx := range seatIdx {
		seatIDs[i] = f.seatList[idx].ID.String()
	}

	customerID := f.customer.ID.String()
	resp, err := f.reservation.CreateReservation(context.Background(), &request.CreateReservationRequest{
		ScreeningID: f.screening.ID.String(),
		CustomerID:  &customerID,
		SeatIDs:     seatIDs,
	})
	require.NoError(t, err)
	require.Equal(t, entity.ReservationStatusDraft, resp.Status)
	require.Equal(t, entity.TicketCodeUnassigned, resp.TicketCode)
	return resp.ID
}

func TestConfirmReservation(t *testing.T) {
	f := seedCinema(t, 4)
	id := f.draftReservation(t, 0, 1)

	resp, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Equal(t, "TKT/00001", resp.TicketCode)
	assert.Len(t, f.occupied.entries, 2)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, customer.LoyaltyPoints, "10 points per seat")

	// Confirmation also raises and confirms the ticket order.
	require.NotNil(t, resp.SaleOrderID)
	order, err := f.repo.SaleOrder.FindByID(context.Background(), uuid.MustParse(*resp.SaleOrderID))
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, entity.SaleOrderStatusSale, order.Status)
	assert.InDelta(t, 16.0, order.TotalAmount, 0.001, "two regular seats at list price")
}

func TestConfirmReservationSeatConflict(t *testing.T) {
	f := seedCinema(t, 4)

	first := f.draftReservation(t, 0, 1)
	_, err := f.reservation.ConfirmReservation(context.Background(), first)
	require.NoError(t, err)

	second := f.draftReservation(t, 1, 2)
	_, err = f.reservation.ConfirmReservation(context.Background(), second)
	assert.ErrorIs(t, err, ErrSeatConflict)

	// Conflict leaves everything untouched.
	stored, err := f.repo.Reservation.FindByID(context.Background(), uuid.MustParse(second))
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusDraft, stored.Status)
	assert.Len(t, f.occupied.entries, 2)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, customer.LoyaltyPoints, "only the first confirmation accrued")
}

func TestConfirmReservationCapacityExceeded(t *testing.T) {
	f := seedCinema(t, 4)
	f.room.Capacity = 2

	first := f.draftReservation(t, 0, 1)
	_, err := f.reservation.ConfirmReservation(context.Background(), first)
	require.NoError(t, err)

	second := f.draftReservation(t, 2)
	_, err = f.reservation.ConfirmReservation(context.Background(), second)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	stored, err := f.repo.Reservation.FindByID(context.Background(), uuid.MustParse(second))
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusDraft, stored.Status)
}

func TestConfirmReservationTicketSequenceFailure(t *testing.T) {
	f := seedCinema(t, 4)
	id := f.draftReservation(t, 0, 1)

	// A sequence failure must abort the whole confirmation.
	f.resRepo.ticketErr = fmt.Errorf("next ticket sequence: connection reset")
	_, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.Error(t, err)

	stored, err := f.repo.Reservation.FindByID(context.Background(), uuid.MustParse(id))
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusDraft, stored.Status)
	assert.Equal(t, entity.TicketCodeUnassigned, stored.TicketCode)
	assert.Empty(t, f.occupied.entries)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, customer.LoyaltyPoints)

	// Retrying after the sequence recovers succeeds normally.
	f.resRepo.ticketErr = nil
	resp, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)
	assert.Equal(t, "TKT/00001", resp.TicketCode)
}

func TestConfirmReservationTwice(t *testing.T) {
	f := seedCinema(t, 4)
	id := f.draftReservation(t, 0)

	_, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)

	_, err = f.reservation.ConfirmReservation(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, customer.LoyaltyPoints, "no double accrual")
}

func TestConfirmReservationLinkedToSaleOrderSkipsAccrual(t *testing.T) {
	f := seedCinema(t, 4)
	id := f.draftReservation(t, 0, 1)

	orderID := uuid.New()
	require.NoError(t, f.repo.Reservation.LinkSaleOrder(context.Background(), nil, uuid.MustParse(id), orderID))

	resp, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Status)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, customer.LoyaltyPoints, "sale-linked reservations accrue in the sale flow")

	exists, err := f.credits.ExistsByReservationID(context.Background(), uuid.MustParse(id))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCancelReservationReleasesSeats(t *testing.T) {
	f := seedCinema(t, 4)
	id := f.draftReservation(t, 0, 1)

	_, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, f.occupied.entries, 2)

	resp, err := f.reservation.CancelReservation(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusCanceled, resp.Status)
	assert.Empty(t, f.occupied.entries)

	// The freed seats can be confirmed by someone else.
	other := f.draftReservation(t, 0, 1)
	_, err = f.reservation.ConfirmReservation(context.Background(), other)
	assert.NoError(t, err)
}

func TestCancelCanceledReservation(t *testing.T) {
	f := seedCinema(t, 4)
	id := f.draftReservation(t, 0)

	_, err := f.reservation.CancelReservation(context.Background(), id)
	require.NoError(t, err)

	_, err = f.reservation.CancelReservation(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelDoesNotClawBackPoints(t *testing.T) {
	f := seedCinema(t, 4)
	id := f.draftReservation(t, 0, 1)

	_, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)

	_, err = f.reservation.CancelReservation(context.Background(), id)
	require.NoError(t, err)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 20, customer.LoyaltyPoints, "accrued points survive cancellation")
}

func TestCreateReservationRejectsForeignSeat(t *testing.T) {
	f := seedCinema(t, 2)

	foreign := &entity.Seat{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		RoomID:     uuid.New(),
		SeatRow:    "A",
		SeatNumber: 1,
		Label:      "A1",
	}
	require.NoError(t, f.seats.CreateBatch(context.Background(), []*entity.Seat{foreign}))

	_, err := f.reservation.CreateReservation(context.Background(), &request.CreateReservationRequest{
		ScreeningID: f.screening.ID.String(),
		SeatIDs:     []string{foreign.ID.String()},
	})
	assert.Error(t, err)
}

func TestCreateReservationExceedingRoomCapacity(t *testing.T) {
	f := seedCinema(t, 2)
	f.room.Capacity = 1

	customerID := f.customer.ID.String()
	_, err := f.reservation.CreateReservation(context.Background(), &request.CreateReservationRequest{
		ScreeningID: f.screening.ID.String(),
		CustomerID:  &customerID,
		SeatIDs:     []string{f.seatList[0].ID.String(), f.seatList[1].ID.String()},
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestGenerateTicketRequiresConfirmed(t *testing.T) {
	f := seedCinema(t, 2)
	id := f.draftReservation(t, 0)

	_, err := f.reservation.GenerateTicket(context.Background(), id)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)

	ticket, err := f.reservation.GenerateTicket(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "TKT/00001", ticket.TicketCode)
	assert.Equal(t, 1, ticket.TotalSeats)
	assert.Contains(t, ticket.ScreeningName, " - ")
}
