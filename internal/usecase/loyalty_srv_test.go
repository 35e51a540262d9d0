package usecase

import (
	"context"
	"testing"
	"time"

	"cinema-manager/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPlanRedemption(t *testing.T) {
	service := NewLoyaltyService(fakeDB{}, nil, zap.NewNop())

	tests := []struct {
		name       string
		points     int
		reqVIP     int
		reqRegular int
		wantVIP    int
		wantReg    int
		wantSpent  int
		wantErr    error
	}{
		{
			name:   "vip first leaves remainder unused",
			points: 250, reqVIP: 1, reqRegular: 2,
			wantVIP: 1, wantReg: 0, wantSpent: 200,
		},
		{
			name:   "regular only when vip unaffordable",
			points: 100, reqVIP: 1, reqRegular: 1,
			wantVIP: 0, wantReg: 1, wantSpent: 100,
		},
		{
			name:   "exact spend across both tiers",
			points: 500, reqVIP: 2, reqRegular: 1,
			wantVIP: 2, wantReg: 1, wantSpent: 500,
		},
		{
			name:   "remainder covers some regulars",
			points: 400, reqVIP: 1, reqRegular: 3,
			wantVIP: 1, wantReg: 2, wantSpent: 400,
		},
		{
			name:   "vip capped at requested quantity",
			points: 1000, reqVIP: 1, reqRegular: 0,
			wantVIP: 1, wantReg: 0, wantSpent: 200,
		},
		{
			name:   "nothing redeemable",
			points: 50, reqVIP: 1, reqRegular: 1,
			wantErr: ErrInsufficientPoints,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := service.PlanRedemption(tt.points, tt.reqVIP, tt.reqRegular)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVIP, plan.FreeVIP)
			assert.Equal(t, tt.wantReg, plan.FreeRegular)
			assert.Equal(t, tt.wantSpent, plan.Spent)
		})
	}
}

func TestAccrueForReservation(t *testing.T) {
	repo, _, _, _, _, _, _, customers, credits, _ := testRepo()
	service := NewLoyaltyService(fakeDB{}, repo, zap.NewNop())

	customer := &entity.Customer{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:          "Anna",
		LoyaltyPoints: 495,
		MemberLevel:   entity.MemberLevelStandard,
	}
	require.NoError(t, customers.Create(context.Background(), customer))

	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		CustomerID:   &customer.ID,
		TotalSeats:   2,
	}

	added, err := service.AccrueForReservation(context.Background(), nil, reservation)
	require.NoError(t, err)
	assert.Equal(t, 20, added)

	stored, err := customers.FindByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 515, stored.LoyaltyPoints)
	assert.Equal(t, entity.MemberLevelSilver, stored.MemberLevel, "crossing 500 promotes to silver")

	exists, err := credits.ExistsByReservationID(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAccrueForReservationIsIdempotent(t *testing.T) {
	repo, _, _, _, _, _, _, customers, _, _ := testRepo()
	service := NewLoyaltyService(fakeDB{}, repo, zap.NewNop())

	customer := &entity.Customer{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:         "Bruno",
		MemberLevel:  entity.MemberLevelStandard,
	}
	require.NoError(t, customers.Create(context.Background(), customer))

	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		CustomerID:   &customer.ID,
		TotalSeats:   3,
	}

	added, err := service.AccrueForReservation(context.Background(), nil, reservation)
	require.NoError(t, err)
	assert.Equal(t, 30, added)

	added, err = service.AccrueForReservation(context.Background(), nil, reservation)
	require.NoError(t, err)
	assert.Equal(t, 0, added, "second accrual for the same reservation is a no-op")

	stored, err := customers.FindByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.LoyaltyPoints)
}

func TestAccrueForReservationWithoutCustomer(t *testing.T) {
	repo, _, _, _, _, _, _, _, credits, _ := testRepo()
	service := NewLoyaltyService(fakeDB{}, repo, zap.NewNop())

	reservation := &entity.Reservation{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		TotalSeats:   2,
	}

	added, err := service.AccrueForReservation(context.Background(), nil, reservation)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	exists, err := credits.ExistsByReservationID(context.Background(), reservation.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyRedemptionDeductsAndRelevels(t *testing.T) {
	repo, _, _, _, _, _, _, customers, _, _ := testRepo()
	service := NewLoyaltyService(fakeDB{}, repo, zap.NewNop())

	customer := &entity.Customer{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:          "Carla",
		LoyaltyPoints: 1100,
		MemberLevel:   entity.MemberLevelPremium,
	}
	require.NoError(t, customers.Create(context.Background(), customer))

	plan := RedeemPlan{FreeVIP: 3, FreeRegular: 0, Spent: 600}
	require.NoError(t, service.ApplyRedemption(context.Background(), nil, customer, plan))

	stored, err := customers.FindByID(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, stored.LoyaltyPoints)
	assert.Equal(t, entity.MemberLevelStandard, stored.MemberLevel, "exactly 500 is standard again")
}
