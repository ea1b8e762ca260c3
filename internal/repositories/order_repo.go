package repositories

import (
	"time"

	"billing/internal/models"
)

// OrderRepository defines the interface for order data access. An order and
// its line items form a single aggregate: they are written and deleted
// together, and items are never exposed through an independent store.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByOrderID(orderID string) (*models.Order, error)
	Save(order *models.Order) error
	Delete(order *models.Order) error
	GetAllByCreatedAtDesc() ([]models.Order, error)
	Filter(filter models.OrderFilter) ([]models.Order, error)
	// SumSalesByDate returns nil (not zero) when no orders exist on the
	// given calendar day; the same holds for CountByOrderDate. Callers
	// normalize to 0 at the presentation boundary.
	SumSalesByDate(date time.Time) (*float64, error)
	CountByOrderDate(date time.Time) (*int64, error)
	FindRecentOrders(limit int) ([]models.Order, error)
}
