package usecase

import (
	"context"
	"fmt"
	"sort"

	"cinema-manager/internal/data/entity"
	"cinema-manager/internal/data/repository"
	"cinema-manager/pkg/database"
	"cinema-manager/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// In-memory fakes for the repository layer. The transactional methods
// ignore the Querier they receive; the fake DB hands out a no-op
// transaction so the service flows run unchanged.

type fakeDB struct{}

func (fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return fakeTx{}, nil }
func (fakeDB) Ping(ctx context.Context) error            { return nil }
func (fakeDB) Close()                                    {}

type fakeTx struct{ pgx.Tx }

func (fakeTx) Commit(ctx context.Context) error   { return nil }
func (fakeTx) Rollback(ctx context.Context) error { return nil }

type fakeRoomRepo struct {
	rooms  map[uuid.UUID]*entity.Room
	locked bool
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: make(map[uuid.UUID]*entity.Room)}
}

func (f *fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return f.rooms[id], nil
}

func (f *fakeRoomRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Room, error) {
	var out []*entity.Room
	for _, room := range f.rooms {
		out = append(out, room)
	}
	return out, nil
}

func (f *fakeRoomRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.rooms)), nil
}

func (f *fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	f.rooms[room.ID] = room
	return nil
}

func (f *fakeRoomRepo) UpdateCapacity(ctx context.Context, roomID uuid.UUID, capacity int) error {
	if room, ok := f.rooms[roomID]; ok {
		room.Capacity = capacity
	}
	return nil
}

func (f *fakeRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.rooms, id)
	return nil
}

func (f *fakeRoomRepo) HasConfirmedReservations(ctx context.Context, roomID uuid.UUID) (bool, error) {
	return f.locked, nil
}

type fakeSeatRepo struct {
	seats map[uuid.UUID]*entity.Seat
}

func newFakeSeatRepo() *fakeSeatRepo {
	return &fakeSeatRepo{seats: make(map[uuid.UUID]*entity.Seat)}
}

func (f *fakeSeatRepo) CreateBatch(ctx context.Context, seats []*entity.Seat) error {
	for _, seat := range seats {
		f.seats[seat.ID] = seat
	}
	return nil
}

func (f *fakeSeatRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Seat, error) {
	return f.seats[id], nil
}

func (f *fakeSeatRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, id := range ids {
		if seat, ok := f.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (f *fakeSeatRepo) FindByRoomID(ctx context.Context, roomID uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, seat := range f.seats {
		if seat.RoomID == roomID {
			out = append(out, seat)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SeatRow != out[j].SeatRow {
			return out[i].SeatRow < out[j].SeatRow
		}
		return out[i].SeatNumber < out[j].SeatNumber
	})
	return out, nil
}

func (f *fakeSeatRepo) DeleteByRoomID(ctx context.Context, roomID uuid.UUID) error {
	for id, seat := range f.seats {
		if seat.RoomID == roomID {
			delete(f.seats, id)
		}
	}
	return nil
}

type fakeScreeningRepo struct {
	screenings map[uuid.UUID]*entity.Screening
}

func newFakeScreeningRepo() *fakeScreeningRepo {
	return &fakeScreeningRepo{screenings: make(map[uuid.UUID]*entity.Screening)}
}

func (f *fakeScreeningRepo) Create(ctx context.Context, screening *entity.Screening) error {
	f.screenings[screening.ID] = screening
	return nil
}

func (f *fakeScreeningRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Screening, error) {
	return f.screenings[id], nil
}

func (f *fakeScreeningRepo) FindAll(ctx context.Context, limit, offset int, movieID *uuid.UUID) ([]*entity.Screening, error) {
	var out []*entity.Screening
	for _, screening := range f.screenings {
		if movieID == nil || screening.MovieID == *movieID {
			out = append(out, screening)
		}
	}
	return out, nil
}

func (f *fakeScreeningRepo) CountAll(ctx context.Context, movieID *uuid.UUID) (int64, error) {
	out, _ := f.FindAll(ctx, 0, 0, movieID)
	return int64(len(out)), nil
}

func (f *fakeScreeningRepo) Update(ctx context.Context, screening *entity.Screening) error {
	f.screenings[screening.ID] = screening
	return nil
}

func (f *fakeScreeningRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.screenings, id)
	return nil
}

func (f *fakeScreeningRepo) LockRow(ctx context.Context, q database.Querier, id uuid.UUID) error {
	return nil
}

type fakeReservationRepo struct {
	reservations map[uuid.UUID]*entity.Reservation
	ticketSeq    int64
	ticketErr    error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[uuid.UUID]*entity.Reservation)}
}

func (f *fakeReservationRepo) Create(ctx context.Context, reservation *entity.Reservation) error {
	f.reservations[reservation.ID] = reservation
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	if r, ok := f.reservations[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeReservationRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for _, r := range f.reservations {
		if r.CustomerID != nil && *r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	out, _ := f.FindByCustomerID(ctx, customerID, 0, 0)
	return int64(len(out)), nil
}

func (f *fakeReservationRepo) FindConfirmedByScreeningID(ctx context.Context, screeningID uuid.UUID) ([]*entity.Reservation, error) {
	var out []*entity.Reservation
	for _, r := range f.reservations {
		if r.ScreeningID == screeningID && r.Status == entity.ReservationStatusConfirmed {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateTicketCode(ctx context.Context, q database.Querier, id uuid.UUID, code string) error {
	if r, ok := f.reservations[id]; ok {
		r.TicketCode = code
	}
	return nil
}

func (f *fakeReservationRepo) NextTicketCode(ctx context.Context, q database.Querier) (string, error) {
	if f.ticketErr != nil {
		return "", f.ticketErr
	}
	f.ticketSeq++
	return fmt.Sprintf("TKT/%05d", f.ticketSeq), nil
}

func (f *fakeReservationRepo) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.ReservationStatus) error {
	if r, ok := f.reservations[id]; ok {
		r.Status = status
	}
	return nil
}

func (f *fakeReservationRepo) LinkSaleOrder(ctx context.Context, q database.Querier, id, orderID uuid.UUID) error {
	if r, ok := f.reservations[id]; ok {
		r.SaleOrderID = &orderID
	}
	return nil
}

func (f *fakeReservationRepo) ConfirmedSeatCount(ctx context.Context, q database.Querier, screeningID uuid.UUID, exclude *uuid.UUID) (int, error) {
	total := 0
	for _, r := range f.reservations {
		if r.ScreeningID != screeningID || r.Status != entity.ReservationStatusConfirmed {
			continue
		}
		if exclude != nil && r.ID == *exclude {
			continue
		}
		total += r.TotalSeats
	}
	return total, nil
}

type fakeReservationSeatRepo struct {
	seats map[uuid.UUID][]uuid.UUID
}

func newFakeReservationSeatRepo() *fakeReservationSeatRepo {
	return &fakeReservationSeatRepo{seats: make(map[uuid.UUID][]uuid.UUID)}
}

func (f *fakeReservationSeatRepo) CreateBatch(ctx context.Context, seats []*entity.ReservationSeat) error {
	for _, rs := range seats {
		f.seats[rs.ReservationID] = append(f.seats[rs.ReservationID], rs.SeatID)
	}
	return nil
}

func (f *fakeReservationSeatRepo) FindSeatIDsByReservationID(ctx context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	return f.seats[reservationID], nil
}

func (f *fakeReservationSeatRepo) DeleteByReservationID(ctx context.Context, reservationID uuid.UUID) error {
	delete(f.seats, reservationID)
	return nil
}

type fakeScreeningSeatRepo struct {
	entries []*entity.ScreeningSeat
}

func newFakeScreeningSeatRepo() *fakeScreeningSeatRepo {
	return &fakeScreeningSeatRepo{}
}

func (f *fakeScreeningSeatRepo) Occupy(ctx context.Context, q database.Querier, seats []*entity.ScreeningSeat) error {
	for _, incoming := range seats {
		for _, existing := range f.entries {
			if existing.ScreeningID == incoming.ScreeningID && existing.SeatID == incoming.SeatID {
				return repository.ErrSeatAlreadyOccupied
			}
		}
	}
	f.entries = append(f.entries, seats...)
	return nil
}

func (f *fakeScreeningSeatRepo) ReleaseByReservationID(ctx context.Context, q database.Querier, reservationID uuid.UUID) error {
	kept := f.entries[:0]
	for _, entry := range f.entries {
		if entry.ReservationID != reservationID {
			kept = append(kept, entry)
		}
	}
	f.entries = kept
	return nil
}

func (f *fakeScreeningSeatRepo) FindSeatIDsByScreeningID(ctx context.Context, q database.Querier, screeningID uuid.UUID, exclude *uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, entry := range f.entries {
		if entry.ScreeningID != screeningID {
			continue
		}
		if exclude != nil && entry.ReservationID == *exclude {
			continue
		}
		out = append(out, entry.SeatID)
	}
	return out, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (f *fakeCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	if c, ok := f.customers[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeCustomerRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range f.customers {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCustomerRepo) CountAll(ctx context.Context) (int64, error) {
	return int64(len(f.customers)), nil
}

func (f *fakeCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	f.customers[customer.ID] = customer
	return nil
}

func (f *fakeCustomerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.customers, id)
	return nil
}

func (f *fakeCustomerRepo) UpdateLoyalty(ctx context.Context, q database.Querier, id uuid.UUID, points int, level entity.MemberLevel) error {
	if c, ok := f.customers[id]; ok {
		c.LoyaltyPoints = points
		c.MemberLevel = level
	}
	return nil
}

type fakeLoyaltyCreditRepo struct {
	credits map[uuid.UUID]*entity.LoyaltyCredit
}

func newFakeLoyaltyCreditRepo() *fakeLoyaltyCreditRepo {
	return &fakeLoyaltyCreditRepo{credits: make(map[uuid.UUID]*entity.LoyaltyCredit)}
}

func (f *fakeLoyaltyCreditRepo) Insert(ctx context.Context, q database.Querier, credit *entity.LoyaltyCredit) (bool, error) {
	if _, exists := f.credits[credit.ReservationID]; exists {
		return false, nil
	}
	f.credits[credit.ReservationID] = credit
	return true, nil
}

func (f *fakeLoyaltyCreditRepo) ExistsByReservationID(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	_, exists := f.credits[reservationID]
	return exists, nil
}

type fakeSaleOrderRepo struct {
	orders map[uuid.UUID]*entity.SaleOrder
	lines  map[uuid.UUID][]*entity.SaleOrderLine
}

func newFakeSaleOrderRepo() *fakeSaleOrderRepo {
	return &fakeSaleOrderRepo{
		orders: make(map[uuid.UUID]*entity.SaleOrder),
		lines:  make(map[uuid.UUID][]*entity.SaleOrderLine),
	}
}

func (f *fakeSaleOrderRepo) Create(ctx context.Context, q database.Querier, order *entity.SaleOrder) error {
	f.orders[order.ID] = order
	return nil
}

func (f *fakeSaleOrderRepo) AddLines(ctx context.Context, q database.Querier, lines []*entity.SaleOrderLine) error {
	for _, line := range lines {
		f.lines[line.OrderID] = append(f.lines[line.OrderID], line)
	}
	return nil
}

func (f *fakeSaleOrderRepo) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.SaleOrderStatus) error {
	if order, ok := f.orders[id]; ok {
		order.Status = status
	}
	return nil
}

func (f *fakeSaleOrderRepo) Confirm(ctx context.Context, q database.Querier, id uuid.UUID, total float64) error {
	if order, ok := f.orders[id]; ok {
		order.Status = entity.SaleOrderStatusSale
		order.TotalAmount = total
	}
	return nil
}

func (f *fakeSaleOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleOrder, error) {
	return f.orders[id], nil
}

func (f *fakeSaleOrderRepo) FindLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.SaleOrderLine, error) {
	return f.lines[orderID], nil
}

// testRepo bundles fresh fakes into the aggregate the services expect.
type fakeMovieRepo struct {
	movies map[uuid.UUID]*entity.Movie
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: make(map[uuid.UUID]*entity.Movie)}
}

func (f *fakeMovieRepo) Create(ctx context.Context, movie *entity.Movie) error {
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	return f.movies[id], nil
}

func (f *fakeMovieRepo) FindAll(ctx context.Context, limit, offset int, titleFilter *string) ([]*entity.Movie, error) {
	var out []*entity.Movie
	for _, movie := range f.movies {
		out = append(out, movie)
	}
	return out, nil
}

func (f *fakeMovieRepo) CountAll(ctx context.Context, titleFilter *string) (int64, error) {
	return int64(len(f.movies)), nil
}

func (f *fakeMovieRepo) Update(ctx context.Context, movie *entity.Movie) error {
	f.movies[movie.ID] = movie
	return nil
}

func (f *fakeMovieRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.movies, id)
	return nil
}

type fakeMovieTagRepo struct {
	tags  map[uuid.UUID]*entity.MovieTag
	links []*entity.MovieTagLink
}

func newFakeMovieTagRepo() *fakeMovieTagRepo {
	return &fakeMovieTagRepo{tags: make(map[uuid.UUID]*entity.MovieTag)}
}

func (f *fakeMovieTagRepo) Create(ctx context.Context, tag *entity.MovieTag) error {
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeMovieTagRepo) FindByName(ctx context.Context, name string) (*entity.MovieTag, error) {
	for _, tag := range f.tags {
		if tag.Name == name {
			return tag, nil
		}
	}
	return nil, nil
}

func (f *fakeMovieTagRepo) FindAll(ctx context.Context) ([]*entity.MovieTag, error) {
	var out []*entity.MovieTag
	for _, tag := range f.tags {
		out = append(out, tag)
	}
	return out, nil
}

func (f *fakeMovieTagRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.MovieTag, error) {
	var out []*entity.MovieTag
	for _, link := range f.links {
		if link.MovieID == movieID {
			if tag, ok := f.tags[link.TagID]; ok {
				out = append(out, tag)
			}
		}
	}
	return out, nil
}

func (f *fakeMovieTagRepo) Link(ctx context.Context, link *entity.MovieTagLink) error {
	f.links = append(f.links, link)
	return nil
}

func (f *fakeMovieTagRepo) UnlinkByMovieID(ctx context.Context, movieID uuid.UUID) error {
	kept := f.links[:0]
	for _, link := range f.links {
		if link.MovieID != movieID {
			kept = append(kept, link)
		}
	}
	f.links = kept
	return nil
}

func testConfig() *utils.Config {
	return &utils.Config{
		Ticket: utils.TicketConfig{RegularPrice: 8, VIPPrice: 12},
	}
}

func testRepo() (*repository.Repository, *fakeRoomRepo, *fakeSeatRepo, *fakeScreeningRepo, *fakeReservationRepo, *fakeReservationSeatRepo, *fakeScreeningSeatRepo, *fakeCustomerRepo, *fakeLoyaltyCreditRepo, *fakeSaleOrderRepo) {
	rooms := newFakeRoomRepo()
	seats := newFakeSeatRepo()
	screenings := newFakeScreeningRepo()
	reservations := newFakeReservationRepo()
	reservationSeats := newFakeReservationSeatRepo()
	screeningSeats := newFakeScreeningSeatRepo()
	customers := newFakeCustomerRepo()
	credits := newFakeLoyaltyCreditRepo()
	orders := newFakeSaleOrderRepo()

	repo := &repository.Repository{
		Movie:           newFakeMovieRepo(),
		MovieTag:        newFakeMovieTagRepo(),
		Room:            rooms,
		Seat:            seats,
		Screening:       screenings,
		Reservation:     reservations,
		ReservationSeat: reservationSeats,
		ScreeningSeat:   screeningSeats,
		Customer:        customers,
		LoyaltyCredit:   credits,
		SaleOrder:       orders,
	}

	return repo, rooms, seats, screenings, reservations, reservationSeats, screeningSeats, customers, credits, orders
}
