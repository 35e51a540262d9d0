package usecase

import (
	"context"
	"testing"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newFastSale(f *cinemaFixture) FastSaleService {
	return NewFastSaleService(fakeDB{}, f.repo, f.reservation, f.loyalty, testConfig(), zap.NewNop())
}

func (f *cinemaFixture) seatIDs(idx ...int) []string {
	out := make([]string, len(idx))
	for i, n := range idx {
		out[i] = f.seatList[n].ID.String()
	}
	return out
}

func TestSellTicketsSeatCountMismatch(t *testing.T) {
	f := seedCinema(t, 4)
	service := newFastSale(f)

	_, err := service.SellTickets(context.Background(), &request.FastSaleRequest{
		ScreeningID: f.screening.ID.String(),
		CustomerID:  f.customer.ID.String(),
		SeatIDs:     f.seatIDs(0),
		QtyRegular:  2,
	})
	assert.ErrorIs(t, err, ErrSeatCountMismatch)
}

func TestSellTicketsNoTickets(t *testing.T) {
	f := seedCinema(t, 4)
	service := newFastSale(f)

	_, err := service.SellTickets(context.Background(), &request.FastSaleRequest{
		ScreeningID: f.screening.ID.String(),
		CustomerID:  f.customer.ID.String(),
		SeatIDs:     f.seatIDs(0),
	})
	assert.ErrorIs(t, err, ErrNoSeatsSelected)
}

func TestSellTicketsMemberDiscount(t *testing.T) {
	f := seedCinema(t, 4)
	service := newFastSale(f)

	// 495 points plus the 10 accrued for this sale crosses into silver,
	// so the order is priced with the silver discount already applied.
	f.customer.LoyaltyPoints = 495

	resp, err := service.SellTickets(context.Background(), &request.FastSaleRequest{
		ScreeningID: f.screening.ID.String(),
		CustomerID:  f.customer.ID.String(),
		SeatIDs:     f.seatIDs(0),
		QtyRegular:  1,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.SaleOrderStatusSale, resp.Status)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, entity.ProductTicketRegular, resp.Lines[0].ProductCode)
	assert.Equal(t, 8.0, resp.Lines[0].UnitPrice)
	assert.Equal(t, 10.0, resp.Lines[0].Discount)
	assert.InDelta(t, 7.2, resp.TotalAmount, 0.001)

	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Reservation.Status)
	assert.NotEmpty(t, resp.Reservation.TicketCode)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 505, customer.LoyaltyPoints, "accrued once, not again on confirm")
	assert.Equal(t, entity.MemberLevelSilver, customer.MemberLevel)
}

func TestSellTicketsRedeemPoints(t *testing.T) {
	f := seedCinema(t, 4)
	service := newFastSale(f)

	f.customer.LoyaltyPoints = 250

	resp, err := service.SellTickets(context.Background(), &request.FastSaleRequest{
		ScreeningID:  f.screening.ID.String(),
		CustomerID:   f.customer.ID.String(),
		SeatIDs:      f.seatIDs(0, 1),
		QtyRegular:   1,
		QtyVIP:       1,
		RedeemPoints: true,
	})
	require.NoError(t, err)

	// 250 points free the VIP ticket (200); the regular one is paid.
	assert.Equal(t, 1, resp.FreeVIP)
	assert.Equal(t, 0, resp.FreeRegular)
	assert.Equal(t, 200, resp.PointsSpent)
	assert.InDelta(t, 8.0, resp.TotalAmount, 0.001)

	require.Len(t, resp.Lines, 2)
	assert.Equal(t, entity.ProductTicketRegular, resp.Lines[0].ProductCode)
	assert.Equal(t, 0.0, resp.Lines[0].Discount)
	assert.Equal(t, entity.ProductTicketVIP, resp.Lines[1].ProductCode)
	assert.Equal(t, 100.0, resp.Lines[1].Discount)

	customer, err := f.repo.Customer.FindByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, customer.LoyaltyPoints)

	assert.Equal(t, entity.ReservationStatusConfirmed, resp.Reservation.Status)
}

func TestSellTicketsRedeemWithoutPoints(t *testing.T) {
	f := seedCinema(t, 4)
	service := newFastSale(f)

	f.customer.LoyaltyPoints = 50

	_, err := service.SellTickets(context.Background(), &request.FastSaleRequest{
		ScreeningID:  f.screening.ID.String(),
		CustomerID:   f.customer.ID.String(),
		SeatIDs:      f.seatIDs(0),
		QtyRegular:   1,
		RedeemPoints: true,
	})
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestSellTicketsOccupiedSeat(t *testing.T) {
	f := seedCinema(t, 4)
	service := newFastSale(f)

	id := f.draftReservation(t, 0)
	_, err := f.reservation.ConfirmReservation(context.Background(), id)
	require.NoError(t, err)

	_, err = service.SellTickets(context.Background(), &request.FastSaleRequest{
		ScreeningID: f.screening.ID.String(),
		CustomerID:  f.customer.ID.String(),
		SeatIDs:     f.seatIDs(0),
		QtyRegular:  1,
	})
	assert.ErrorIs(t, err, ErrSeatConflict)
}
