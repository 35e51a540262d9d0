package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationTransitions(t *testing.T) {
	draft := &Reservation{Status: ReservationStatusDraft}
	confirmed := &Reservation{Status: ReservationStatusConfirmed}
	canceled := &Reservation{Status: ReservationStatusCanceled}

	assert.True(t, draft.CanConfirm())
	assert.False(t, confirmed.CanConfirm())
	assert.False(t, canceled.CanConfirm())

	assert.True(t, draft.CanCancel())
	assert.True(t, confirmed.CanCancel())
	assert.False(t, canceled.CanCancel())
}

func TestSaleOrderStatusIsConfirmable(t *testing.T) {
	assert.True(t, SaleOrderStatusDraft.IsConfirmable())
	assert.True(t, SaleOrderStatusSent.IsConfirmable())
	assert.False(t, SaleOrderStatusSale.IsConfirmable())
	assert.False(t, SaleOrderStatusCancelled.IsConfirmable())
}
