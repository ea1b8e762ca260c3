package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"billing/internal/apperrors"
	"billing/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// Create persists an order together with its line items in one write.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// GetByOrderID retrieves an order by its public identifier.
func (r *GORMOrderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "order", ID: orderID}
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", orderID, err)
	}
	return &order, nil
}

// Save updates an existing order, including its embedded payment details.
func (r *GORMOrderRepository) Save(order *models.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.OrderID, err)
	}
	return nil
}

// Delete removes an order and cascades to its line items.
func (r *GORMOrderRepository) Delete(order *models.Order) error {
	res := r.db.Select(clause.Associations).Delete(order)
	if res.Error != nil {
		return fmt.Errorf("failed to delete order %s: %w", order.OrderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "order", ID: order.OrderID}
	}
	return nil
}

// GetAllByCreatedAtDesc retrieves all orders, newest first.
func (r *GORMOrderRepository) GetAllByCreatedAtDesc() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get latest orders: %w", err)
	}
	return orders, nil
}

// Filter retrieves orders matching the conjunction of the present filter
// fields. An absent field contributes no predicate.
func (r *GORMOrderRepository) Filter(filter models.OrderFilter) ([]models.Order, error) {
	tx := r.db.Preload("Items")
	if filter.PaymentMethod != nil {
		tx = tx.Where("payment_method = ?", *filter.PaymentMethod)
	}
	if filter.GrandTotal != nil {
		if filter.TotalCompare == models.TotalCompareAtLeast {
			tx = tx.Where("grand_total >= ?", *filter.GrandTotal)
		} else {
			tx = tx.Where("grand_total = ?", *filter.GrandTotal)
		}
	}

	var orders []models.Order
	if err := tx.Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to filter orders: %w", err)
	}
	return orders, nil
}

// SumSalesByDate sums grand totals over the given calendar day. Returns nil
// when no orders match.
func (r *GORMOrderRepository) SumSalesByDate(date time.Time) (*float64, error) {
	var sum sql.NullFloat64
	err := r.db.Model(&models.Order{}).
		Select("SUM(grand_total)").
		Where("date(created_at) = date(?)", date).
		Scan(&sum).Error
	if err != nil {
		return nil, fmt.Errorf("failed to sum sales for %s: %w", date.Format("2006-01-02"), err)
	}
	if !sum.Valid {
		return nil, nil
	}
	return &sum.Float64, nil
}

// CountByOrderDate counts orders on the given calendar day. Returns nil when
// none exist so callers can distinguish "no orders" from a zero total.
func (r *GORMOrderRepository) CountByOrderDate(date time.Time) (*int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("date(created_at) = date(?)", date).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count orders for %s: %w", date.Format("2006-01-02"), err)
	}
	if count == 0 {
		return nil, nil
	}
	return &count, nil
}

// FindRecentOrders retrieves the most recently created orders, newest first.
func (r *GORMOrderRepository) FindRecentOrders(limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items").Order("created_at DESC").Limit(limit).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find recent orders: %w", err)
	}
	return orders, nil
}
