package repositories

import (
	"billing/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetAll() ([]models.Category, error)
	GetByCategoryID(categoryID string) (*models.Category, error)
	// Delete removes the category and every item assigned to it in one
	// operation.
	Delete(categoryID string) error
}

// ItemRepository defines the interface for catalog item data access.
type ItemRepository interface {
	Create(item *models.Item) error
	GetAll() ([]models.Item, error)
	GetByItemID(itemID string) (*models.Item, error)
	Delete(itemID string) error
	CountByCategoryID(categoryID string) (int64, error)
}
