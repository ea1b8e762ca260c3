package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"billing/internal/models"
	"billing/internal/services"
)

// DashboardHandler serves the sales dashboard aggregates.
type DashboardHandler struct {
	orderService *services.OrderService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(orderService *services.OrderService) *DashboardHandler {
	return &DashboardHandler{
		orderService: orderService,
	}
}

// RegisterRoutes registers the dashboard routes with the Fiber app.
func (h *DashboardHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/dashboard", h.HandleGetDashboard)
}

// HandleGetDashboard returns today's sales sum, today's order count and the
// recent-orders feed. Days without orders normalize to zero here, at the
// presentation boundary.
func (h *DashboardHandler) HandleGetDashboard(c *fiber.Ctx) error {
	today := time.Now()

	todaySales, err := h.orderService.SumSalesByDate(today)
	if err != nil {
		return respondError(c, err)
	}
	todayCount, err := h.orderService.CountByOrderDate(today)
	if err != nil {
		return respondError(c, err)
	}
	recentOrders, err := h.orderService.FindRecentOrders()
	if err != nil {
		return respondError(c, err)
	}

	response := models.DashboardResponse{
		RecentOrders: recentOrders,
	}
	if todaySales != nil {
		response.TodaySales = *todaySales
	}
	if todayCount != nil {
		response.TodayOrderCount = *todayCount
	}

	return c.JSON(response)
}
