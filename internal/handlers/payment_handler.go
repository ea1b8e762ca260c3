package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"billing/internal/models"
	"billing/internal/services"
)

// PaymentHandler handles checkout-session creation and payment verification.
type PaymentHandler struct {
	gateway      services.PaymentGateway
	orderService *services.OrderService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(gateway services.PaymentGateway, orderService *services.OrderService) *PaymentHandler {
	return &PaymentHandler{
		gateway:      gateway,
		orderService: orderService,
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payments")
	paymentRoutes.Post("/create-checkout-session", h.HandleCreateCheckoutSession)
	paymentRoutes.Post("/verify", h.HandleVerifyPayment)
}

// HandleCreateCheckoutSession asks the gateway for a hosted checkout URL.
func (h *PaymentHandler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var request models.PaymentRequest
	if err := c.BodyParser(&request); err != nil {
		log.Printf("Error parsing payment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	session, err := h.gateway.CreateCheckoutSession(request.Amount, request.Currency)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// HandleVerifyPayment confirms a card payment against the gateway and
// returns the (possibly updated) order.
func (h *PaymentHandler) HandleVerifyPayment(c *fiber.Ctx) error {
	var request models.PaymentVerificationRequest
	if err := c.BodyParser(&request); err != nil {
		log.Printf("Error parsing payment verification body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.orderService.VerifyPayment(request)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(order)
}
