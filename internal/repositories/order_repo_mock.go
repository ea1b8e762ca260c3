package repositories

import (
	"sort"
	"sync"
	"time"

	"billing/internal/apperrors"
	"billing/internal/models"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// It lets the app run without a database and backs lightweight tests.
type MockOrderRepository struct {
	orders map[string]models.Order
	mu     sync.RWMutex
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// Create adds a new order keyed by its public identifier.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.OrderID] = *order
	return nil
}

// GetByOrderID returns an order by its public identifier.
func (r *MockOrderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, &apperrors.NotFoundError{Resource: "order", ID: orderID}
	}
	return &order, nil
}

// Save replaces a stored order.
func (r *MockOrderRepository) Save(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; !ok {
		return &apperrors.NotFoundError{Resource: "order", ID: order.OrderID}
	}
	r.orders[order.OrderID] = *order
	return nil
}

// Delete removes an order and its line items.
func (r *MockOrderRepository) Delete(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.OrderID]; !ok {
		return &apperrors.NotFoundError{Resource: "order", ID: order.OrderID}
	}
	delete(r.orders, order.OrderID)
	return nil
}

// GetAllByCreatedAtDesc returns all orders, newest first.
func (r *MockOrderRepository) GetAllByCreatedAtDesc() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedByCreatedAtDesc(), nil
}

// Filter returns orders matching the conjunction of the present fields.
func (r *MockOrderRepository) Filter(filter models.OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]models.Order, 0)
	for _, order := range r.sortedByCreatedAtDesc() {
		if filter.PaymentMethod != nil && order.PaymentMethod != *filter.PaymentMethod {
			continue
		}
		if filter.GrandTotal != nil {
			if filter.TotalCompare == models.TotalCompareAtLeast {
				if order.GrandTotal < *filter.GrandTotal {
					continue
				}
			} else if order.GrandTotal != *filter.GrandTotal {
				continue
			}
		}
		matched = append(matched, order)
	}
	return matched, nil
}

// SumSalesByDate sums grand totals for the given calendar day, nil when none.
func (r *MockOrderRepository) SumSalesByDate(date time.Time) (*float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sum float64
	found := false
	for _, order := range r.orders {
		if sameDay(order.CreatedAt, date) {
			sum += order.GrandTotal
			found = true
		}
	}
	if !found {
		return nil, nil
	}
	return &sum, nil
}

// CountByOrderDate counts orders for the given calendar day, nil when none.
func (r *MockOrderRepository) CountByOrderDate(date time.Time) (*int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, order := range r.orders {
		if sameDay(order.CreatedAt, date) {
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	return &count, nil
}

// FindRecentOrders returns up to limit orders, newest first.
func (r *MockOrderRepository) FindRecentOrders(limit int) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := r.sortedByCreatedAtDesc()
	if len(orders) > limit {
		orders = orders[:limit]
	}
	return orders, nil
}

func (r *MockOrderRepository) sortedByCreatedAtDesc() []models.Order {
	orders := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, order)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
