package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"billing/internal/models"
	"billing/internal/services"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service *services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service: service,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Delete("/:orderId", h.HandleDeleteOrder)
	orderRoutes.Get("/latest", h.HandleGetLatestOrders)
	orderRoutes.Post("/filtered-data", h.HandleGetFilteredOrders)
}

// HandleCreateOrder creates a new order from a cart submission.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var request models.OrderRequest
	if err := c.BodyParser(&request); err != nil {
		log.Printf("Error parsing order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.service.CreateOrder(request)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleDeleteOrder deletes an order by its public identifier.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID := c.Params("orderId")
	if err := h.service.DeleteOrder(orderID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleGetLatestOrders retrieves all orders, newest first.
func (h *OrderHandler) HandleGetLatestOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetLatestOrders()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetFilteredOrders retrieves orders matching the submitted filter.
func (h *OrderHandler) HandleGetFilteredOrders(c *fiber.Ctx) error {
	var filter models.OrderFilter
	if err := c.BodyParser(&filter); err != nil {
		log.Printf("Error parsing order filter body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	orders, err := h.service.GetFilteredOrders(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}
