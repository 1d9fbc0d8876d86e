package store

import (
	"context"
	"strings"
	"sync"

	"github.com/elliotchance/pie/v2"
)

// Memory is an in-process AdminStore used by tests and DB-less local runs.
type Memory struct {
	mu        sync.RWMutex
	products  []Product
	orders    []Order
	customers int64
}

var _ AdminStore = (*Memory)(nil)

func NewMemory(products []Product) *Memory {
	return &Memory{products: products}
}

func (s *Memory) SetOrders(orders []Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders = orders
}

func (s *Memory) SetCustomerCount(count int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = count
}

func (s *Memory) FindActive(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return pie.Filter(s.products, func(p Product) bool {
		return p.Active
	}), nil
}

func (s *Memory) FindByNameContains(_ context.Context, term string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(term)

	return pie.Filter(s.products, func(p Product) bool {
		return p.Active && strings.Contains(strings.ToLower(p.Name), lower)
	}), nil
}

func (s *Memory) FindByDescriptionContains(_ context.Context, term string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lower := strings.ToLower(term)

	return pie.Filter(s.products, func(p Product) bool {
		return p.Active && strings.Contains(strings.ToLower(p.Description), lower)
	}), nil
}

func (s *Memory) CountProducts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.products)), nil
}

func (s *Memory) CountCustomers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.customers, nil
}

func (s *Memory) FindAllOrders(_ context.Context) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Order, len(s.orders))
	copy(result, s.orders)

	return result, nil
}
