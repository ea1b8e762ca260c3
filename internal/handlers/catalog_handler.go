package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"billing/internal/models"
	"billing/internal/services"
)

// CatalogHandler handles HTTP requests for categories and items.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers read-only catalog routes on router and mutating
// routes on admin (which carries the admin-role middleware).
func (h *CatalogHandler) RegisterRoutes(router fiber.Router, admin fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	router.Get("/items", h.HandleGetItems)

	admin.Post("/categories", h.HandleAddCategory)
	admin.Delete("/categories/:categoryId", h.HandleDeleteCategory)
	admin.Post("/items", h.HandleAddItem)
	admin.Delete("/items/:itemId", h.HandleDeleteItem)
}

// HandleAddCategory creates a new category.
func (h *CatalogHandler) HandleAddCategory(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	response, err := h.service.AddCategory(&category)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleGetCategories lists all categories with item counts.
func (h *CatalogHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetCategories()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

// HandleDeleteCategory removes a category and its items.
func (h *CatalogHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	if err := h.service.DeleteCategory(c.Params("categoryId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleAddItem creates a new item under an existing category.
func (h *CatalogHandler) HandleAddItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing item body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	created, err := h.service.AddItem(&item)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetItems lists all items.
func (h *CatalogHandler) HandleGetItems(c *fiber.Ctx) error {
	items, err := h.service.GetItems()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}

// HandleDeleteItem removes an item.
func (h *CatalogHandler) HandleDeleteItem(c *fiber.Ctx) error {
	if err := h.service.DeleteItem(c.Params("itemId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
