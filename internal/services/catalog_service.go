package services

import (
	"github.com/go-playground/validator/v10"

	"billing/internal/models"
	"billing/internal/repositories"
)

// CatalogService manages the categories and items sold at the till. Orders
// only ever read name/price snapshots from here at creation time.
type CatalogService struct {
	categoryRepo repositories.CategoryRepository
	itemRepo     repositories.ItemRepository
	validate     *validator.Validate
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(categoryRepo repositories.CategoryRepository, itemRepo repositories.ItemRepository) *CatalogService {
	return &CatalogService{
		categoryRepo: categoryRepo,
		itemRepo:     itemRepo,
		validate:     newValidator(),
	}
}

// AddCategory validates and stores a new category.
func (s *CatalogService) AddCategory(category *models.Category) (*models.CategoryResponse, error) {
	if err := checkStruct(s.validate, category); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return &models.CategoryResponse{Category: *category, Items: 0}, nil
}

// GetCategories lists all categories with their live item counts.
func (s *CatalogService) GetCategories() ([]models.CategoryResponse, error) {
	categories, err := s.categoryRepo.GetAll()
	if err != nil {
		return nil, err
	}

	responses := make([]models.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		count, err := s.itemRepo.CountByCategoryID(category.CategoryID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, models.CategoryResponse{Category: category, Items: count})
	}
	return responses, nil
}

// DeleteCategory removes a category and its items.
func (s *CatalogService) DeleteCategory(categoryID string) error {
	return s.categoryRepo.Delete(categoryID)
}

// AddItem validates and stores a new item; the referenced category must
// exist.
func (s *CatalogService) AddItem(item *models.Item) (*models.Item, error) {
	if err := checkStruct(s.validate, item); err != nil {
		return nil, err
	}
	if _, err := s.categoryRepo.GetByCategoryID(item.CategoryID); err != nil {
		return nil, err
	}
	if err := s.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetItems lists all items.
func (s *CatalogService) GetItems() ([]models.Item, error) {
	return s.itemRepo.GetAll()
}

// DeleteItem removes an item by its public identifier.
func (s *CatalogService) DeleteItem(itemID string) error {
	return s.itemRepo.Delete(itemID)
}
