package entity

import (
	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusDraft     ReservationStatus = "draft"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCanceled  ReservationStatus = "canceled"
)

// TicketCodeUnassigned is the placeholder until a code is pulled
// from the ticket sequence.
const TicketCodeUnassigned = "New"

type Reservation struct {
	BaseNoDelete
	TicketCode  string            `db:"ticket_code"`
	ScreeningID uuid.UUID         `db:"screening_id"`
	CustomerID  *uuid.UUID        `db:"customer_id"`
	SaleOrderID *uuid.UUID        `db:"sale_order_id"`
	QtyRegular  int               `db:"qty_regular"`
	QtyVIP      int               `db:"qty_vip"`
	TotalSeats  int               `db:"total_seats"`
	Status      ReservationStatus `db:"status"`
}

// CanConfirm reports whether the reservation may transition to confirmed.
// confirmed and canceled are both final for this transition.
func (r *Reservation) CanConfirm() bool {
	return r.Status == ReservationStatusDraft
}

// CanCancel reports whether the reservation may transition to canceled.
func (r *Reservation) CanCancel() bool {
	return r.Status == ReservationStatusDraft || r.Status == ReservationStatusConfirmed
}

type ReservationSeat struct {
	BaseSimple
	ReservationID uuid.UUID `db:"reservation_id"`
	SeatID        uuid.UUID `db:"seat_id"`
}

// ScreeningSeat is one row of the per-screening occupancy index.
// A row exists only while a confirmed reservation holds the seat.
type ScreeningSeat struct {
	BaseSimple
	ScreeningID   uuid.UUID `db:"screening_id"`
	SeatID        uuid.UUID `db:"seat_id"`
	ReservationID uuid.UUID `db:"reservation_id"`
}
