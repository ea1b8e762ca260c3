package services_test

import (
	"errors"
	"log"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"billing/internal/apperrors"
	"billing/internal/models"
	"billing/internal/repositories"
	"billing/internal/services"
	"billing/pkg/payments"
)

// MockOrderRepository is a mock implementation of repositories.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByOrderID(orderID string) (*models.Order, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(order *models.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetAllByCreatedAtDesc() ([]models.Order, error) {
	args := m.Called()
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) Filter(filter models.OrderFilter) ([]models.Order, error) {
	args := m.Called(filter)
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderRepository) SumSalesByDate(date time.Time) (*float64, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*float64), args.Error(1)
}

func (m *MockOrderRepository) CountByOrderDate(date time.Time) (*int64, error) {
	args := m.Called(date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*int64), args.Error(1)
}

func (m *MockOrderRepository) FindRecentOrders(limit int) ([]models.Order, error) {
	args := m.Called(limit)
	return args.Get(0).([]models.Order), args.Error(1)
}

// MockPaymentGateway is a mock implementation of services.PaymentGateway
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(amount float64, currency string) (*payments.CheckoutSession, error) {
	args := m.Called(amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) RetrievePaymentIntent(paymentIntentID string) (*payments.PaymentIntent, error) {
	args := m.Called(paymentIntentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payments.PaymentIntent), args.Error(1)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	log.SetOutput(os.Stdout)
	code := m.Run()
	os.Exit(code)
}

func validOrderRequest(method string) models.OrderRequest {
	return models.OrderRequest{
		CustomerName: "John Doe",
		PhoneNumber:  "9876543210",
		CartItems: []models.OrderItemRequest{
			{ItemID: "item-1", Name: "Demo Item", Price: 50000.0, Quantity: 1},
		},
		Subtotal:      50000.0,
		Tax:           2500.0,
		GrandTotal:    52500.0,
		PaymentMethod: method,
	}
}

func TestOrderService_CreateOrder_Cash(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.CreateOrder(validOrderRequest("CASH"))

	assert.NoError(t, err)
	assert.NotNil(t, order)
	assert.True(t, strings.HasPrefix(order.OrderID, "ORD"))
	assert.Equal(t, "John Doe", order.CustomerName)
	assert.Equal(t, 52500.0, order.GrandTotal)
	assert.Equal(t, models.PaymentMethodCash, order.PaymentMethod)
	// Cash settles immediately, without gateway identifiers.
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentDetails.Status)
	assert.Empty(t, order.PaymentDetails.PaymentIntentID)
	assert.Empty(t, order.PaymentDetails.PaymentMethodID)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, "item-1", order.Items[0].ItemID)
	assert.Equal(t, 50000.0, order.Items[0].Price)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_UPIStartsPending(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil).Once()

	order, err := service.CreateOrder(validOrderRequest("UPI"))

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentDetails.Status)
	assert.Empty(t, order.PaymentDetails.PaymentIntentID)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_CreateOrder_UniqueOrderIDs(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	mockRepo.On("Create", mock.AnythingOfType("*models.Order")).Return(nil)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		order, err := service.CreateOrder(validOrderRequest("CASH"))
		assert.NoError(t, err)
		assert.False(t, seen[order.OrderID], "duplicate order id %s", order.OrderID)
		seen[order.OrderID] = true
	}
}

func TestOrderService_CreateOrder_ValidationListsEveryViolation(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	request := models.OrderRequest{
		CustomerName: "John Doe",
		PhoneNumber:  "12345", // not 10 digits
		CartItems: []models.OrderItemRequest{
			{ItemID: "item-1", Name: "Demo Item", Price: 10.0, Quantity: 1},
		},
		Subtotal:      0, // must be > 0
		Tax:           -1.0,
		GrandTotal:    52500.0,
		PaymentMethod: "CARD", // not CASH or UPI
	}

	order, err := service.CreateOrder(request)

	assert.Error(t, err)
	assert.Nil(t, order)
	var validationErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "PhoneNumber")
	assert.Contains(t, validationErr.Fields, "Subtotal")
	assert.Contains(t, validationErr.Fields, "Tax")
	assert.Contains(t, validationErr.Fields, "PaymentMethod")
	// Nothing reaches the repository on a malformed request.
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestOrderService_CreateOrder_RejectsEmptyCart(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	request := validOrderRequest("CASH")
	request.CartItems = nil

	_, err := service.CreateOrder(request)

	var validationErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "CartItems")
}

func TestOrderService_CreateOrder_RejectsBadLineItems(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	request := validOrderRequest("CASH")
	request.CartItems = []models.OrderItemRequest{
		{ItemID: "item-1", Name: "Demo Item", Price: 0, Quantity: 0},
	}

	_, err := service.CreateOrder(request)

	var validationErr *apperrors.ValidationError
	assert.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Fields, "Price")
	assert.Contains(t, validationErr.Fields, "Quantity")
}

func TestOrderService_DeleteOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	order := &models.Order{OrderID: "ORDABC"}
	mockRepo.On("GetByOrderID", "ORDABC").Return(order, nil).Once()
	mockRepo.On("Delete", order).Return(nil).Once()

	err := service.DeleteOrder("ORDABC")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_DeleteOrder_NotFound(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	notFound := &apperrors.NotFoundError{Resource: "order", ID: "missing"}
	mockRepo.On("GetByOrderID", "missing").Return(nil, notFound).Once()

	err := service.DeleteOrder("missing")

	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestOrderService_VerifyPayment_SucceededCompletesOrder(t *testing.T) {
	// The in-memory repository keeps the state across both verification
	// calls, which is what the idempotence check needs.
	repo := repositories.NewMockOrderRepository()
	gateway := new(MockPaymentGateway)
	service := services.NewOrderService(repo, gateway, nil)

	order, err := service.CreateOrder(validOrderRequest("UPI"))
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentDetails.Status)

	gateway.On("RetrievePaymentIntent", "pi_123").
		Return(&payments.PaymentIntent{ID: "pi_123", Amount: 5250000, Currency: "inr", Status: "succeeded"}, nil)

	request := models.PaymentVerificationRequest{
		PaymentIntentID: "pi_123",
		PaymentMethodID: "pm_123",
		OrderID:         order.OrderID,
	}

	verified, err := service.VerifyPayment(request)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, verified.PaymentDetails.Status)
	assert.Equal(t, "pi_123", verified.PaymentDetails.PaymentIntentID)
	assert.Equal(t, "pm_123", verified.PaymentDetails.PaymentMethodID)

	// Re-verifying an already-completed order yields the same state.
	again, err := service.VerifyPayment(request)
	assert.NoError(t, err)
	assert.Equal(t, verified.PaymentDetails, again.PaymentDetails)

	stored, err := repo.GetByOrderID(order.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, stored.PaymentDetails.Status)
}

func TestOrderService_VerifyPayment_UnknownOrder(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	gateway := new(MockPaymentGateway)
	service := services.NewOrderService(repo, gateway, nil)

	_, err := service.VerifyPayment(models.PaymentVerificationRequest{
		PaymentIntentID: "pi_123",
		PaymentMethodID: "pm_123",
		OrderID:         "ORDMISSING",
	})

	var notFoundErr *apperrors.NotFoundError
	assert.True(t, errors.As(err, &notFoundErr))
	assert.Equal(t, "order", notFoundErr.Resource)
	gateway.AssertNotCalled(t, "RetrievePaymentIntent", mock.Anything)
}

func TestOrderService_VerifyPayment_IndeterminateStatusLeavesOrderUntouched(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewOrderService(mockRepo, gateway, nil)

	order := &models.Order{
		OrderID:        "ORDABC",
		PaymentMethod:  models.PaymentMethodUPI,
		PaymentDetails: models.PaymentDetails{Status: models.PaymentStatusPending},
	}
	mockRepo.On("GetByOrderID", "ORDABC").Return(order, nil).Once()
	gateway.On("RetrievePaymentIntent", "pi_123").
		Return(&payments.PaymentIntent{ID: "pi_123", Status: "processing"}, nil).Once()

	result, err := service.VerifyPayment(models.PaymentVerificationRequest{
		PaymentIntentID: "pi_123",
		PaymentMethodID: "pm_123",
		OrderID:         "ORDABC",
	})

	// A not-yet-settled status is a normal outcome, not an error.
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, result.PaymentDetails.Status)
	assert.Empty(t, result.PaymentDetails.PaymentIntentID)
	mockRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestOrderService_VerifyPayment_CanceledFailsPendingOrder(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewOrderService(mockRepo, gateway, nil)

	order := &models.Order{
		OrderID:        "ORDABC",
		PaymentMethod:  models.PaymentMethodUPI,
		PaymentDetails: models.PaymentDetails{Status: models.PaymentStatusPending},
	}
	mockRepo.On("GetByOrderID", "ORDABC").Return(order, nil).Once()
	mockRepo.On("Save", order).Return(nil).Once()
	gateway.On("RetrievePaymentIntent", "pi_123").
		Return(&payments.PaymentIntent{ID: "pi_123", Status: "canceled"}, nil).Once()

	result, err := service.VerifyPayment(models.PaymentVerificationRequest{
		PaymentIntentID: "pi_123",
		PaymentMethodID: "pm_123",
		OrderID:         "ORDABC",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, result.PaymentDetails.Status)
	mockRepo.AssertExpectations(t)
}

func TestOrderService_VerifyPayment_GatewayErrorPropagates(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	gateway := new(MockPaymentGateway)
	service := services.NewOrderService(mockRepo, gateway, nil)

	order := &models.Order{
		OrderID:        "ORDABC",
		PaymentDetails: models.PaymentDetails{Status: models.PaymentStatusPending},
	}
	mockRepo.On("GetByOrderID", "ORDABC").Return(order, nil).Once()
	gateway.On("RetrievePaymentIntent", "pi_123").
		Return(nil, &apperrors.GatewayError{Op: "retrieve payment intent", Err: errors.New("connection refused")}).Once()

	_, err := service.VerifyPayment(models.PaymentVerificationRequest{
		PaymentIntentID: "pi_123",
		PaymentMethodID: "pm_123",
		OrderID:         "ORDABC",
	})

	var gatewayErr *apperrors.GatewayError
	assert.True(t, errors.As(err, &gatewayErr))
	mockRepo.AssertNotCalled(t, "Save", mock.Anything)
}

func TestOrderService_FilterConjunction(t *testing.T) {
	// Exercised through the in-memory repository to check the conjunction
	// semantics end to end: both fields set intersects, empty matches all.
	repo := repositories.NewMockOrderRepository()
	service := services.NewOrderService(repo, new(MockPaymentGateway), nil)

	cash, err := service.CreateOrder(validOrderRequest("CASH"))
	assert.NoError(t, err)
	_, err = service.CreateOrder(validOrderRequest("UPI"))
	assert.NoError(t, err)
	cheap := validOrderRequest("CASH")
	cheap.Subtotal = 100.0
	cheap.Tax = 5.0
	cheap.GrandTotal = 105.0
	_, err = service.CreateOrder(cheap)
	assert.NoError(t, err)

	total := 52500.0
	method := models.PaymentMethodCash
	matched, err := service.GetFilteredOrders(models.OrderFilter{GrandTotal: &total, PaymentMethod: &method})
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, cash.OrderID, matched[0].OrderID)

	all, err := service.GetFilteredOrders(models.OrderFilter{})
	assert.NoError(t, err)
	assert.Len(t, all, 3)

	atLeast, err := service.GetFilteredOrders(models.OrderFilter{
		GrandTotal:   &total,
		TotalCompare: models.TotalCompareAtLeast,
	})
	assert.NoError(t, err)
	assert.Len(t, atLeast, 2)
}

func TestOrderService_DashboardQueries(t *testing.T) {
	mockRepo := new(MockOrderRepository)
	service := services.NewOrderService(mockRepo, new(MockPaymentGateway), nil)

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	sum := 150.0
	count := int64(2)

	mockRepo.On("SumSalesByDate", day).Return(&sum, nil).Once()
	mockRepo.On("CountByOrderDate", day).Return(&count, nil).Once()
	mockRepo.On("FindRecentOrders", 5).Return([]models.Order{}, nil).Once()

	gotSum, err := service.SumSalesByDate(day)
	assert.NoError(t, err)
	assert.Equal(t, 150.0, *gotSum)

	gotCount, err := service.CountByOrderDate(day)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), *gotCount)

	_, err = service.FindRecentOrders()
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}
