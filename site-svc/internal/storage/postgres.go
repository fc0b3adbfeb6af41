package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"flavor-heaven/site-svc/internal/domain"
	"flavor-heaven/site-svc/internal/service"

	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE of a duplicate key.
const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+menuColumns+" FROM menu_items WHERE available = TRUE ORDER BY category, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

const menuColumns = `id, name, COALESCE(description, ''), price, COALESCE(image, ''), category, dietary, spicy, popular, available`

func scanMenuItem(row rowScanner) (domain.MenuItem, error) {
	var item domain.MenuItem
	err := row.Scan(&item.ID, &item.Name, &item.Description, &item.Price, &item.Image,
		&item.Category, pq.Array(&item.Dietary), &item.Spicy, &item.Popular, &item.Available)
	return item, err
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id string) (*domain.MenuItem, error) {
	item, err := scanMenuItem(r.DB.QueryRowContext(ctx, "SELECT "+menuColumns+" FROM menu_items WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO menu_items (id, name, description, price, image, category, dietary, spicy, popular, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		item.ID, item.Name, item.Description, item.Price, item.Image, item.Category,
		pq.Array(item.Dietary), item.Spicy, item.Popular, item.Available)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return service.ErrConflict
	}
	return err
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, image = $5, category = $6, dietary = $7, spicy = $8, popular = $9, available = $10
		WHERE id = $1`,
		item.ID, item.Name, item.Description, item.Price, item.Image, item.Category,
		pq.Array(item.Dietary), item.Spicy, item.Popular, item.Available)
	return affectedOne(result, err)
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	return affectedOne(result, err)
}

// affectedOne maps an exec that touched no row to ErrNotFound.
func affectedOne(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return service.ErrNotFound
	}
	return nil
}

// SeedMenu inserts items that are not stored yet.
func (r *PostgresRepository) SeedMenu(ctx context.Context, items []domain.MenuItem) error {
	for _, item := range items {
		if _, err := r.DB.ExecContext(ctx, `
			INSERT INTO menu_items (id, name, description, price, image, category, dietary, spicy, popular, available)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (id) DO NOTHING`,
			item.ID, item.Name, item.Description, item.Price, item.Image, item.Category,
			pq.Array(item.Dietary), item.Spicy, item.Popular, item.Available); err != nil {
			return fmt.Errorf("seed menu item %s: %w", item.ID, err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var eta sql.NullTime
	if order.EstimatedDeliveryTime != nil {
		eta = sql.NullTime{Time: *order.EstimatedDeliveryTime, Valid: true}
	}

	c := order.Customer
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO orders (order_number, customer_name, customer_email, customer_phone, address, city, zip, pickup_time,
			order_type, payment_method, special_instructions, subtotal, tax, delivery_fee, total,
			order_status, payment_status, estimated_delivery_time, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		RETURNING id`,
		order.OrderNumber, c.Name, c.Email, c.Phone, c.Address, c.City, c.Zip, c.PickupTime,
		order.OrderType, order.PaymentMethod, order.SpecialInstructions,
		order.Subtotal, order.Tax, order.DeliveryFee, order.Total,
		order.OrderStatus, order.PaymentStatus, eta, order.Timestamp,
	).Scan(&order.ID); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, item_id, name, price, quantity, image, description, category, dietary_tags)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			order.ID, item.ID, item.Name, item.Price, item.Quantity, item.Image, item.Description, item.Category,
			pq.Array(item.DietaryTags)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

const orderColumns = `id, order_number, customer_name, customer_email, customer_phone,
	COALESCE(address, ''), COALESCE(city, ''), COALESCE(zip, ''), COALESCE(pickup_time, ''),
	order_type, payment_method, COALESCE(special_instructions, ''), subtotal, tax, delivery_fee, total,
	order_status, payment_status, estimated_delivery_time, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (domain.Order, error) {
	var (
		o   domain.Order
		eta sql.NullTime
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.Customer.Name, &o.Customer.Email, &o.Customer.Phone,
		&o.Customer.Address, &o.Customer.City, &o.Customer.Zip, &o.Customer.PickupTime,
		&o.OrderType, &o.PaymentMethod, &o.SpecialInstructions, &o.Subtotal, &o.Tax, &o.DeliveryFee, &o.Total,
		&o.OrderStatus, &o.PaymentStatus, &eta, &o.Timestamp)
	if eta.Valid {
		t := eta.Time
		o.EstimatedDeliveryTime = &t
	}
	return o, err
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	return r.oneOrder(ctx, row)
}

func (r *PostgresRepository) GetOrderByNumber(ctx context.Context, orderNumber string) (*domain.Order, error) {
	row := r.DB.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE order_number = $1", orderNumber)
	return r.oneOrder(ctx, row)
}

func (r *PostgresRepository) oneOrder(ctx context.Context, row *sql.Row) (*domain.Order, error) {
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := r.orderItems(ctx, []int{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]
	return &order, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return r.listOrders(ctx, "SELECT "+orderColumns+" FROM orders ORDER BY created_at DESC")
}

func (r *PostgresRepository) ListOrdersByEmail(ctx context.Context, email string) ([]domain.Order, error) {
	return r.listOrders(ctx, "SELECT "+orderColumns+" FROM orders WHERE customer_email = $1 ORDER BY created_at DESC", email)
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	var ids []int
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.orderItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}
	return orders, nil
}

func (r *PostgresRepository) orderItems(ctx context.Context, orderIDs []int) (map[int][]domain.CartLine, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT order_id, item_id, name, price, quantity, COALESCE(image, ''), COALESCE(description, ''), COALESCE(category, ''), dietary_tags
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int][]domain.CartLine, len(orderIDs))
	for rows.Next() {
		var (
			orderID int
			line    domain.CartLine
		)
		if err := rows.Scan(&orderID, &line.ID, &line.Name, &line.Price, &line.Quantity, &line.Image,
			&line.Description, &line.Category, pq.Array(&line.DietaryTags)); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items[orderID] = append(items[orderID], line)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status string) error {
	return r.updateOrderColumn(ctx, "UPDATE orders SET order_status = $1 WHERE id = $2", status, id)
}

func (r *PostgresRepository) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	return r.updateOrderColumn(ctx, "UPDATE orders SET payment_status = $1 WHERE id = $2", status, id)
}

func (r *PostgresRepository) updateOrderColumn(ctx context.Context, query, value string, id int) error {
	result, err := r.DB.ExecContext(ctx, query, value, id)
	return affectedOne(result, err)
}

const reservationColumns = `id, name, email, COALESCE(phone, ''), date, time_slot, guests,
	COALESCE(special_requests, ''), status, created_at`

func scanReservation(row rowScanner) (domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(&res.ID, &res.Name, &res.Email, &res.Phone, &res.Date, &res.Time,
		&res.Guests, &res.SpecialRequests, &res.Status, &res.CreatedAt)
	return res, err
}

// CreateReservation inserts res if its slot has room. Writers of one slot are
// serialized by a transaction-scoped advisory lock.
func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation, capacity int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := checkSeating(ctx, tx, res, capacity); err != nil {
		return err
	}
	if err := tx.QueryRowContext(ctx, `
		INSERT INTO reservations (name, email, phone, date, time_slot, guests, special_requests, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		res.Name, res.Email, res.Phone, res.Date, res.Time, res.Guests, res.SpecialRequests, res.Status, res.CreatedAt,
	).Scan(&res.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx, "SELECT "+reservationColumns+" FROM reservations WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *PostgresRepository) UpdateReservation(ctx context.Context, res *domain.Reservation, capacity int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := checkSeating(ctx, tx, res, capacity); err != nil {
		return err
	}
	result, err := tx.ExecContext(ctx, `
		UPDATE reservations
		SET name = $1, email = $2, phone = $3, date = $4, time_slot = $5, guests = $6, special_requests = $7, status = $8
		WHERE id = $9`,
		res.Name, res.Email, res.Phone, res.Date, res.Time, res.Guests, res.SpecialRequests, res.Status, res.ID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return service.ErrNotFound
	}
	return tx.Commit()
}

// checkSeating locks the slot of res for the rest of tx and fails with
// ErrNoAvailability when res does not fit. Cancelled reservations always fit.
func checkSeating(ctx context.Context, tx *sql.Tx, res *domain.Reservation, capacity int) error {
	if res.Status == service.ReservationStatusCancelled {
		return nil
	}
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))", res.Date, res.Time); err != nil {
		return fmt.Errorf("lock reservation slot: %w", err)
	}

	var booked int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(guests), 0)
		FROM reservations
		WHERE date = $1 AND time_slot = $2 AND status <> 'cancelled' AND id <> $3`,
		res.Date, res.Time, res.ID).Scan(&booked); err != nil {
		return fmt.Errorf("count booked guests: %w", err)
	}
	if booked+res.Guests > capacity {
		return service.ErrNoAvailability
	}
	return nil
}

func (r *PostgresRepository) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+reservationColumns+" FROM reservations ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := []domain.Reservation{}
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, res)
	}
	return reservations, rows.Err()
}

func (r *PostgresRepository) GuestsBooked(ctx context.Context, date, slot string) (int, error) {
	var total int
	err := r.DB.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(guests), 0)
		FROM reservations
		WHERE date = $1 AND time_slot = $2 AND status <> 'cancelled'`, date, slot).Scan(&total)
	return total, err
}

func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS menu_items (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT,
			price NUMERIC(10, 2) NOT NULL CHECK (price >= 0),
			image TEXT,
			category TEXT NOT NULL,
			dietary TEXT[] NOT NULL DEFAULT '{}',
			spicy BOOLEAN NOT NULL DEFAULT FALSE,
			popular BOOLEAN NOT NULL DEFAULT FALSE,
			available BOOLEAN NOT NULL DEFAULT TRUE
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			order_number TEXT NOT NULL UNIQUE,
			customer_name TEXT NOT NULL,
			customer_email TEXT NOT NULL,
			customer_phone TEXT NOT NULL,
			address TEXT,
			city TEXT,
			zip TEXT,
			pickup_time TEXT,
			order_type TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			special_instructions TEXT,
			subtotal NUMERIC(10, 2) NOT NULL,
			tax NUMERIC(10, 2) NOT NULL,
			delivery_fee NUMERIC(10, 2) NOT NULL DEFAULT 0,
			total NUMERIC(10, 2) NOT NULL,
			order_status TEXT NOT NULL DEFAULT 'received',
			payment_status TEXT NOT NULL DEFAULT 'pending',
			estimated_delivery_time TIMESTAMPTZ,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			id SERIAL PRIMARY KEY,
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			item_id TEXT NOT NULL,
			name TEXT NOT NULL,
			price NUMERIC(10, 2) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity >= 1),
			image TEXT,
			description TEXT,
			category TEXT,
			dietary_tags TEXT[] NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS reservations (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			date TEXT NOT NULL,
			time_slot TEXT NOT NULL,
			guests INTEGER NOT NULL CHECK (guests >= 1),
			special_requests TEXT,
			status TEXT NOT NULL DEFAULT 'confirmed',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		"CREATE INDEX IF NOT EXISTS idx_orders_customer_email ON orders (customer_email)",
		"CREATE INDEX IF NOT EXISTS idx_reservations_slot ON reservations (date, time_slot)",
	}
	for _, stmt := range statements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}

var (
	_ service.MenuRepository        = (*PostgresRepository)(nil)
	_ service.OrderRepository       = (*PostgresRepository)(nil)
	_ service.ReservationRepository = (*PostgresRepository)(nil)
)
