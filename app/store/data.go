package store

import (
	"context"
	"time"
)

// Product is a read-only catalog view. Prices are VND, no fractional part.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Category    string
	Brand       string
	CPU         string
	RAM         string
	Battery     string
	Monitor     string
	GraphicCard string
	OS          string
	Thumbnail   string
	Warranty    string
	Stock       int
	Active      bool
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderShipping  OrderStatus = "SHIPPING"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

type Order struct {
	ID         int64
	Status     OrderStatus
	TotalPrice int64
	CreatedAt  time.Time
	Details    []OrderDetail
}

type OrderDetail struct {
	ProductID int64
	Quantity  int
}

// CatalogStore is the read path used by the shopper assistant.
// Every query filters on the active flag.
type CatalogStore interface {
	FindActive(ctx context.Context) ([]Product, error)
	FindByNameContains(ctx context.Context, term string) ([]Product, error)
	FindByDescriptionContains(ctx context.Context, term string) ([]Product, error)
}

// AdminStore adds the aggregates consumed by the admin assistant.
type AdminStore interface {
	CatalogStore
	CountProducts(ctx context.Context) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	FindAllOrders(ctx context.Context) ([]Order, error)
}
