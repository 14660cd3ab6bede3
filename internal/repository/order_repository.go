package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/mluvul69-gif/linea-store/internal/entity"
)

// ErrDuplicateOrder signals that an order for this Stripe checkout session was
// already persisted. Replayed webhook deliveries hit this instead of creating
// a second order row.
var ErrDuplicateOrder = errors.New("order already exists for checkout session")

const mysqlDuplicateEntry = 1062

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db}
}

func (r *OrderRepository) CreateOrder(ctx context.Context, order *entity.Order) (*entity.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	orderQuery := `INSERT INTO orders (stripe_session_id, customer_email, total) VALUES (?, ?, ?)`
	res, err := tx.ExecContext(ctx, orderQuery, order.StripeSessionID, order.CustomerEmail, order.Total)
	if err != nil {
		tx.Rollback()
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, ErrDuplicateOrder
		}
		return nil, err
	}

	orderID, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// Insert order items with batch
	if len(order.Items) > 0 {
		itemQuery := `INSERT INTO order_items (order_id, product_name, quantity, unit_price) VALUES `

		var values []interface{}
		for _, item := range order.Items {
			itemQuery += "(?, ?, ?, ?),"
			values = append(values, orderID, item.ProductName, item.Quantity, item.UnitPrice)
		}
		itemQuery = itemQuery[:len(itemQuery)-1]

		_, err = tx.ExecContext(ctx, itemQuery, values...)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	err = tx.Commit()
	if err != nil {
		return nil, err
	}

	order.ID = int(orderID)
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	return order, nil
}

func (r *OrderRepository) GetOrderByID(ctx context.Context, id int) (*entity.Order, error) {
	orderQuery := `SELECT id, stripe_session_id, customer_email, total, created_at FROM orders WHERE id = ?`

	order := &entity.Order{}
	err := r.db.QueryRowContext(ctx, orderQuery, id).Scan(&order.ID, &order.StripeSessionID, &order.CustomerEmail, &order.Total, &order.CreatedAt)
	if err != nil {
		return nil, err
	}

	items, err := r.getOrderItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetOrders returns all orders, newest first, items included.
func (r *OrderRepository) GetOrders(ctx context.Context) ([]*entity.Order, error) {
	query := `SELECT id, stripe_session_id, customer_email, total, created_at FROM orders ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		order := &entity.Order{}
		err := rows.Scan(&order.ID, &order.StripeSessionID, &order.CustomerEmail, &order.Total, &order.CreatedAt)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, order := range orders {
		items, err := r.getOrderItems(ctx, order.ID)
		if err != nil {
			return nil, err
		}
		order.Items = items
	}

	return orders, nil
}

func (r *OrderRepository) getOrderItems(ctx context.Context, orderID int) ([]entity.OrderItem, error) {
	query := `SELECT id, order_id, product_name, quantity, unit_price FROM order_items WHERE order_id = ?`
	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entity.OrderItem
	for rows.Next() {
		var item entity.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.ProductName, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
