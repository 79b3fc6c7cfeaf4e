package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/shopsync/internal/dbx"
	"github.com/dmitrijs2005/shopsync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Insert(ctx context.Context, order *models.Order) error {

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}
	customer, err := json.Marshal(order.CustomerInfo)
	if err != nil {
		return fmt.Errorf("failed to encode customer info: %w", err)
	}

	query :=
		`INSERT INTO orders (id, user_id, items, total, customer_info, payment_method, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err = r.db.ExecContext(ctx, query,
		order.ID, order.UserID, items, order.Total, customer,
		order.PaymentMethod, order.Status, order.CreatedAt)

	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	query :=
		`SELECT id, user_id, items, total, customer_info, payment_method, status, created_at
		 FROM orders
		 WHERE user_id = $1
		 ORDER BY created_at
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Order, 0)
	for rows.Next() {
		var (
			order    models.Order
			items    []byte
			customer []byte
		)
		if err := rows.Scan(&order.ID, &order.UserID, &items, &order.Total,
			&customer, &order.PaymentMethod, &order.Status, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		if err := json.Unmarshal(items, &order.Items); err != nil {
			return nil, fmt.Errorf("failed to decode items: %w", err)
		}
		if err := json.Unmarshal(customer, &order.CustomerInfo); err != nil {
			return nil, fmt.Errorf("failed to decode customer info: %w", err)
		}
		result = append(result, order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate order rows: %w", err)
	}
	return result, nil
}
