package repository

import (
	"context"
	"fmt"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoyaltyCreditRepository records point accruals per reservation. The
// unique constraint on reservation_id makes Insert idempotent: a second
// accrual for the same reservation is silently skipped.
type LoyaltyCreditRepository interface {
	Insert(ctx context.Context, q database.Querier, credit *entity.LoyaltyCredit) (bool, error)
	ExistsByReservationID(ctx context.Context, reservationID uuid.UUID) (bool, error)
}

type loyaltyCreditRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLoyaltyCreditRepository(db database.PgxIface, log *zap.Logger) LoyaltyCreditRepository {
	return &loyaltyCreditRepository{
		db:  db,
		log: log.With(zap.String("repository", "loyalty_credit")),
	}
}

// Insert reports whether a credit row was actually written. false means a
// credit for this reservation already existed.
func (r *loyaltyCreditRepository) Insert(ctx context.Context, q database.Querier, credit *entity.LoyaltyCredit) (bool, error) {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO loyalty_credits (id, reservation_id, customer_id, points, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (reservation_id) DO NOTHING
	`

	result, err := q.Exec(ctx, query,
		credit.ID,
		credit.ReservationID,
		credit.CustomerID,
		credit.Points,
	)

	if err != nil {
		r.log.Error("Failed to insert loyalty credit",
			zap.Error(err),
			zap.String("reservation_id", credit.ReservationID.String()),
		)
		return false, fmt.Errorf("insert loyalty credit for reservation %s: %w", credit.ReservationID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *loyaltyCreditRepository) ExistsByReservationID(ctx context.Context, reservationID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM loyalty_credits WHERE reservation_id = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, reservationID).Scan(&exists); err != nil {
		r.log.Error("Failed to check loyalty credit",
			zap.Error(err),
			zap.String("reservation_id", reservationID.String()),
		)
		return false, fmt.Errorf("check loyalty credit for reservation %s: %w", reservationID.String(), err)
	}

	return exists, nil
}
