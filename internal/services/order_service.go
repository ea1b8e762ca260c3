package services

import (
	"encoding/hex"
	"encoding/json"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"billing/internal/models"
	"billing/internal/repositories"
	"billing/pkg/payments"
)

// recentOrdersLimit is the fixed page size of the dashboard's recent feed.
const recentOrdersLimit = 5

// PaymentGateway is the slice of the payment provider the order lifecycle
// depends on.
type PaymentGateway interface {
	CreateCheckoutSession(amount float64, currency string) (*payments.CheckoutSession, error)
	RetrievePaymentIntent(paymentIntentID string) (*payments.PaymentIntent, error)
}

// EventPublisher emits billing events. Publication is best-effort: failures
// are logged and never fail the originating operation.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderService handles the order lifecycle (creation, deletion, payment
// verification) and the order reporting queries.
type OrderService struct {
	orderRepo repositories.OrderRepository
	gateway   PaymentGateway
	publisher EventPublisher
	validate  *validator.Validate
}

// NewOrderService creates a new OrderService. publisher may be nil when no
// message broker is configured.
func NewOrderService(orderRepo repositories.OrderRepository, gateway PaymentGateway, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		gateway:   gateway,
		publisher: publisher,
		validate:  newValidator(),
	}
}

// newOrderID generates the public order identifier: the displayable "ORD"
// prefix over a 128-bit random suffix, so concurrent creation cannot collide
// the way a wall-clock id would.
func newOrderID() string {
	u := uuid.New()
	suffix := make([]byte, hex.EncodedLen(len(u)))
	hex.Encode(suffix, u[:])
	for i, b := range suffix {
		if b >= 'a' && b <= 'f' {
			suffix[i] = b - 'a' + 'A'
		}
	}
	return "ORD" + string(suffix)
}

// CreateOrder validates a cart submission and persists it as an order with
// its line-item snapshots. Cash orders settle immediately; UPI orders start
// PENDING and settle only through VerifyPayment. No gateway call happens
// here for either method: checkout-session creation is a separate operation.
func (s *OrderService) CreateOrder(request models.OrderRequest) (*models.Order, error) {
	if err := checkStruct(s.validate, request); err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(request.CartItems))
	for _, cartItem := range request.CartItems {
		items = append(items, models.OrderItem{
			ItemID:   cartItem.ItemID,
			Name:     cartItem.Name,
			Price:    cartItem.Price,
			Quantity: cartItem.Quantity,
		})
	}

	order := &models.Order{
		OrderID:       newOrderID(),
		CustomerName:  request.CustomerName,
		PhoneNumber:   request.PhoneNumber,
		Subtotal:      request.Subtotal,
		Tax:           request.Tax,
		GrandTotal:    request.GrandTotal,
		CreatedAt:     time.Now(),
		Items:         items,
		PaymentMethod: models.PaymentMethod(request.PaymentMethod),
		PaymentDetails: models.PaymentDetails{
			Status: models.PaymentStatusPending,
		},
	}
	if order.PaymentMethod == models.PaymentMethodCash {
		order.PaymentDetails.Status = models.PaymentStatusCompleted
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	s.publishEvent("order.created", map[string]interface{}{
		"order_id":       order.OrderID,
		"grand_total":    order.GrandTotal,
		"payment_method": order.PaymentMethod,
		"status":         order.PaymentDetails.Status,
	})

	return order, nil
}

// DeleteOrder removes an order by its public identifier, cascading to its
// line items.
func (s *OrderService) DeleteOrder(orderID string) error {
	order, err := s.orderRepo.GetByOrderID(orderID)
	if err != nil {
		return err
	}
	return s.orderRepo.Delete(order)
}

// VerifyPayment checks a UPI payment against the gateway. A succeeded intent
// completes the order and stores both gateway identifiers; a canceled intent
// fails a pending order terminally; any other status leaves the order
// untouched. Re-invoking on a completed order re-confirms the same values.
func (s *OrderService) VerifyPayment(request models.PaymentVerificationRequest) (*models.Order, error) {
	if err := checkStruct(s.validate, request); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByOrderID(request.OrderID)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.RetrievePaymentIntent(request.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	switch intent.Status {
	case payments.IntentStatusSucceeded:
		order.PaymentDetails.PaymentIntentID = request.PaymentIntentID
		order.PaymentDetails.PaymentMethodID = request.PaymentMethodID
		order.PaymentDetails.Status = models.PaymentStatusCompleted
		if err := s.orderRepo.Save(order); err != nil {
			return nil, err
		}
		s.publishEvent("payment.completed", map[string]interface{}{
			"order_id":          order.OrderID,
			"payment_intent_id": request.PaymentIntentID,
			"grand_total":       order.GrandTotal,
		})
	case payments.IntentStatusCanceled:
		// Definitive gateway failure: terminal, but never downgrades an
		// already-settled order.
		if order.PaymentDetails.Status == models.PaymentStatusPending {
			order.PaymentDetails.Status = models.PaymentStatusFailed
			if err := s.orderRepo.Save(order); err != nil {
				return nil, err
			}
		}
	default:
		// Not yet settled; a normal outcome, not an error.
	}

	return order, nil
}

// GetLatestOrders retrieves all orders, newest first.
func (s *OrderService) GetLatestOrders() ([]models.Order, error) {
	return s.orderRepo.GetAllByCreatedAtDesc()
}

// GetFilteredOrders retrieves orders matching the conjunction of the present
// filter fields.
func (s *OrderService) GetFilteredOrders(filter models.OrderFilter) ([]models.Order, error) {
	return s.orderRepo.Filter(filter)
}

// SumSalesByDate sums grand totals over a calendar day; nil when no orders.
func (s *OrderService) SumSalesByDate(date time.Time) (*float64, error) {
	return s.orderRepo.SumSalesByDate(date)
}

// CountByOrderDate counts orders on a calendar day; nil when none.
func (s *OrderService) CountByOrderDate(date time.Time) (*int64, error) {
	return s.orderRepo.CountByOrderDate(date)
}

// FindRecentOrders retrieves the 5 most recently created orders.
func (s *OrderService) FindRecentOrders() ([]models.Order, error) {
	return s.orderRepo.FindRecentOrders(recentOrdersLimit)
}

func (s *OrderService) publishEvent(event string, payload map[string]interface{}) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.publisher.Publish(event, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", event, err)
	}
}
