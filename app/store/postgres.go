package store

import (
	"context"
	"fmt"
	"shopassist/app/config"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do"
)

type Postgres struct {
	pool *pgxpool.Pool
}

var _ AdminStore = (*Postgres)(nil)

func NewPostgres(di *do.Injector) (*Postgres, error) {
	ctx := do.MustInvoke[context.Context](di)
	cfg := do.MustInvoke[*config.Config](di)

	pool, err := pgxpool.New(ctx, cfg.DB.URL())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err = initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	return &Postgres{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price BIGINT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			cpu TEXT NOT NULL DEFAULT '',
			ram TEXT NOT NULL DEFAULT '',
			battery TEXT NOT NULL DEFAULT '',
			monitor TEXT NOT NULL DEFAULT '',
			graphic_card TEXT NOT NULL DEFAULT '',
			os TEXT NOT NULL DEFAULT '',
			thumbnail TEXT NOT NULL DEFAULT '',
			warranty TEXT NOT NULL DEFAULT '',
			stock INTEGER NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_products_active ON products (active);`,
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			status TEXT NOT NULL,
			total_price BIGINT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);`,
		`CREATE TABLE IF NOT EXISTS order_details (
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL,
			quantity INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_order_details_order ON order_details (order_id);`,
		`CREATE TABLE IF NOT EXISTS customers (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT ''
		);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}

	return nil
}

const productColumns = `id, name, description, price, category, brand, cpu, ram, battery,
	monitor, graphic_card, os, thumbnail, warranty, stock, active`

func (s *Postgres) FindActive(ctx context.Context) ([]Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query active products: %w", err)
	}

	return scanProducts(rows)
}

func (s *Postgres) FindByNameContains(ctx context.Context, term string) ([]Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE active AND name ILIKE '%' || $1 || '%' ORDER BY id`,
		term)
	if err != nil {
		return nil, fmt.Errorf("query products by name: %w", err)
	}

	return scanProducts(rows)
}

func (s *Postgres) FindByDescriptionContains(ctx context.Context, term string) ([]Product, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE active AND description ILIKE '%' || $1 || '%' ORDER BY id`,
		term)
	if err != nil {
		return nil, fmt.Errorf("query products by description: %w", err)
	}

	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()

	var result []Product

	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Brand,
			&p.CPU, &p.RAM, &p.Battery, &p.Monitor, &p.GraphicCard, &p.OS,
			&p.Thumbnail, &p.Warranty, &p.Stock, &p.Active); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}

	return result, nil
}

func (s *Postgres) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return count, nil
}

func (s *Postgres) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

func (s *Postgres) FindAllOrders(ctx context.Context) ([]Order, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, status, total_price, created_at FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	index := make(map[int64]int)

	for rows.Next() {
		var o Order
		if err = rows.Scan(&o.ID, &o.Status, &o.TotalPrice, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("read orders: %w", err)
	}
	rows.Close()

	detailRows, err := s.pool.Query(ctx,
		`SELECT order_id, product_id, quantity FROM order_details`)
	if err != nil {
		return nil, fmt.Errorf("query order details: %w", err)
	}
	defer detailRows.Close()

	for detailRows.Next() {
		var orderID int64
		var d OrderDetail
		if err = detailRows.Scan(&orderID, &d.ProductID, &d.Quantity); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Details = append(orders[i].Details, d)
		}
	}
	if err = detailRows.Err(); err != nil {
		return nil, fmt.Errorf("read order details: %w", err)
	}

	return orders, nil
}

func (s *Postgres) Shutdown() error {
	s.pool.Close()

	return nil
}
