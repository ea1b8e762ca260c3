package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"billing/internal/apperrors"
	"billing/internal/models"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{
		db: db,
	}
}

// Create creates a new category, generating its public ID when absent.
func (r *GORMCategoryRepository) Create(category *models.Category) error {
	if category.CategoryID == "" {
		category.CategoryID = uuid.New().String()
	}
	if err := r.db.Create(category).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetAll retrieves all categories.
func (r *GORMCategoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to get all categories: %w", err)
	}
	return categories, nil
}

// GetByCategoryID retrieves a category by its public identifier.
func (r *GORMCategoryRepository) GetByCategoryID(categoryID string) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, "category_id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "category", ID: categoryID}
		}
		return nil, fmt.Errorf("failed to get category by ID %s: %w", categoryID, err)
	}
	return &category, nil
}

// Delete removes a category and all of its items in one transaction.
func (r *GORMCategoryRepository) Delete(categoryID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Item{}, "category_id = ?", categoryID).Error; err != nil {
			return fmt.Errorf("failed to delete items of category %s: %w", categoryID, err)
		}
		res := tx.Delete(&models.Category{}, "category_id = ?", categoryID)
		if res.Error != nil {
			return fmt.Errorf("failed to delete category %s: %w", categoryID, res.Error)
		}
		if res.RowsAffected == 0 {
			return &apperrors.NotFoundError{Resource: "category", ID: categoryID}
		}
		return nil
	})
}

// GORMItemRepository is a GORM implementation of ItemRepository.
type GORMItemRepository struct {
	db *gorm.DB
}

// NewGORMItemRepository creates a new instance of GORMItemRepository.
func NewGORMItemRepository(db *gorm.DB) *GORMItemRepository {
	return &GORMItemRepository{
		db: db,
	}
}

// Create creates a new item, generating its public ID when absent.
func (r *GORMItemRepository) Create(item *models.Item) error {
	if item.ItemID == "" {
		item.ItemID = uuid.New().String()
	}
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// GetAll retrieves all items.
func (r *GORMItemRepository) GetAll() ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to get all items: %w", err)
	}
	return items, nil
}

// GetByItemID retrieves an item by its public identifier.
func (r *GORMItemRepository) GetByItemID(itemID string) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, "item_id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperrors.NotFoundError{Resource: "item", ID: itemID}
		}
		return nil, fmt.Errorf("failed to get item by ID %s: %w", itemID, err)
	}
	return &item, nil
}

// Delete deletes an item by its public identifier.
func (r *GORMItemRepository) Delete(itemID string) error {
	res := r.db.Delete(&models.Item{}, "item_id = ?", itemID)
	if res.Error != nil {
		return fmt.Errorf("failed to delete item %s: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return &apperrors.NotFoundError{Resource: "item", ID: itemID}
	}
	return nil
}

// CountByCategoryID counts the items assigned to a category.
func (r *GORMItemRepository) CountByCategoryID(categoryID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Item{}).Where("category_id = ?", categoryID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count items for category %s: %w", categoryID, err)
	}
	return count, nil
}
