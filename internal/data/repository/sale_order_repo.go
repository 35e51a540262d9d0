package repository

import (
	"context"
	"fmt"
	"strings"

	"cinema-manager/internal/data/entity"
	"cinema-manager/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SaleOrderRepository interface {
	Create(ctx context.Context, q database.Querier, order *entity.SaleOrder) error
	AddLines(ctx context.Context, q database.Querier, lines []*entity.SaleOrderLine) error
	UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.SaleOrderStatus) error

	// Confirm flips the order to sale and records the final total.
	Confirm(ctx context.Context, q database.Querier, id uuid.UUID, total float64) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleOrder, error)
	FindLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.SaleOrderLine, error)
}

type saleOrderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSaleOrderRepository(db database.PgxIface, log *zap.Logger) SaleOrderRepository {
	return &saleOrderRepository{
		db:  db,
		log: log.With(zap.String("repository", "sale_order")),
	}
}

func (r *saleOrderRepository) Create(ctx context.Context, q database.Querier, order *entity.SaleOrder) error {
	if q == nil {
		q = r.db
	}

	query := `
		INSERT INTO sale_orders (id, order_number, customer_id, status, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		order.ID,
		order.OrderNumber,
		order.CustomerID,
		order.Status,
		order.TotalAmount,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create sale order",
			zap.Error(err),
			zap.String("order_number", order.OrderNumber),
		)
		return fmt.Errorf("create sale order %s: %w", order.OrderNumber, err)
	}

	return nil
}

func (r *saleOrderRepository) AddLines(ctx context.Context, q database.Querier, lines []*entity.SaleOrderLine) error {
	if q == nil {
		q = r.db
	}

	if len(lines) == 0 {
		return nil
	}

	var builder strings.Builder
	builder.WriteString(`
		INSERT INTO sale_order_lines (id, order_id, product_code, qty, unit_price, discount)
		VALUES `)

	args := make([]any, 0, len(lines)*6)
	for i, line := range lines {
		if i > 0 {
			builder.WriteString(", ")
		}
		base := i * 6
		builder.WriteString(fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args,
			line.ID,
			line.OrderID,
			line.ProductCode,
			line.Qty,
			line.UnitPrice,
			line.Discount,
		)
	}

	_, err := q.Exec(ctx, builder.String(), args...)
	if err != nil {
		r.log.Error("Failed to add sale order lines",
			zap.Error(err),
			zap.Int("line_count", len(lines)),
		)
		return fmt.Errorf("add %d sale order lines: %w", len(lines), err)
	}

	return nil
}

func (r *saleOrderRepository) UpdateStatus(ctx context.Context, q database.Querier, id uuid.UUID, status entity.SaleOrderStatus) error {
	if q == nil {
		q = r.db
	}

	query := `UPDATE sale_orders SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update sale order status",
			zap.Error(err),
			zap.String("order_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update sale order %s status: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("sale order %s not found", id.String())
	}

	return nil
}

func (r *saleOrderRepository) Confirm(ctx context.Context, q database.Querier, id uuid.UUID, total float64) error {
	if q == nil {
		q = r.db
	}

	query := `UPDATE sale_orders SET status = $2, total_amount = $3, updated_at = NOW() WHERE id = $1`

	result, err := q.Exec(ctx, query, id, entity.SaleOrderStatusSale, total)
	if err != nil {
		r.log.Error("Failed to confirm sale order",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return fmt.Errorf("confirm sale order %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("sale order %s not found", id.String())
	}

	return nil
}

func (r *saleOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.SaleOrder, error) {
	query := `
		SELECT id, order_number, customer_id, status, total_amount, created_at, updated_at
		FROM sale_orders
		WHERE id = $1
	`

	var order entity.SaleOrder
	err := r.db.QueryRow(ctx, query, id).Scan(
		&order.ID,
		&order.OrderNumber,
		&order.CustomerID,
		&order.Status,
		&order.TotalAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find sale order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find sale order by ID %s: %w", id.String(), err)
	}

	return &order, nil
}

func (r *saleOrderRepository) FindLinesByOrderID(ctx context.Context, orderID uuid.UUID) ([]*entity.SaleOrderLine, error) {
	query := `
		SELECT id, order_id, product_code, qty, unit_price, discount
		FROM sale_order_lines
		WHERE order_id = $1
		ORDER BY product_code
	`

	rows, err := r.db.Query(ctx, query, orderID)
	if err != nil {
		r.log.Error("Failed to find sale order lines",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return nil, fmt.Errorf("find lines for sale order %s: %w", orderID.String(), err)
	}
	defer rows.Close()

	var lines []*entity.SaleOrderLine
	for rows.Next() {
		var line entity.SaleOrderLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.ProductCode,
			&line.Qty,
			&line.UnitPrice,
			&line.Discount,
		)
		if err != nil {
			r.log.Error("Failed to scan sale order line row", zap.Error(err))
			return nil, fmt.Errorf("scan sale order line row: %w", err)
		}
		lines = append(lines, &line)
	}

	return lines, nil
}
