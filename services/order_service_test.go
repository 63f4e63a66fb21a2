package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopverse/models"
)

type MockOrderStore struct {
	mock.Mock
}

func (m *MockOrderStore) Insert(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) FindByBuyer(ctx context.Context, buyerID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	args := m.Called(ctx, buyerID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) FindByVendor(ctx context.Context, vendorID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	args := m.Called(ctx, vendorID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func (m *MockOrderStore) FindAdmin(ctx context.Context, filter AdminFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderStore) UpdateItemStatus(ctx context.Context, orderID, productID, vendorID primitive.ObjectID, status string, arrival *time.Time) (*models.Order, error) {
	args := m.Called(ctx, orderID, productID, vendorID, status, arrival)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) SetPayment(ctx context.Context, orderID primitive.ObjectID, paymentStatus, paymentMethod string) (*models.Order, error) {
	args := m.Called(ctx, orderID, paymentStatus, paymentMethod)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) SetAggregateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) CancelIfProcessing(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) SetRefunded(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderStore) Delete(ctx context.Context, orderID primitive.ObjectID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockCatalog) DecrementStockIfAvailable(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	args := m.Called(ctx, id, qty)
	return args.Bool(0), args.Error(1)
}

func (m *MockCatalog) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	args := m.Called(ctx, id, qty)
	return args.Error(0)
}

type MockVendorDirectory struct {
	mock.Mock
}

func (m *MockVendorDirectory) FindVendor(ctx context.Context, id primitive.ObjectID) (*models.Seller, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Seller), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, recipientType string, recipientID primitive.ObjectID, title, message, link string) error {
	args := m.Called(ctx, recipientType, recipientID, title, message, link)
	return args.Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) OrderCreated(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockEventPublisher) OrderPaid(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockEventPublisher) OrderRefunded(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type fixture struct {
	store    *MockOrderStore
	catalog  *MockCatalog
	vendors  *MockVendorDirectory
	notifier *MockNotifier
	events   *MockEventPublisher
	svc      *OrderService
	now      time.Time
}

func newFixture() *fixture {
	f := &fixture{
		store:    new(MockOrderStore),
		catalog:  new(MockCatalog),
		vendors:  new(MockVendorDirectory),
		notifier: new(MockNotifier),
		events:   new(MockEventPublisher),
		now:      time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewOrderService(f.store, f.catalog, f.vendors, f.notifier, f.events)
	f.svc.now = func() time.Time { return f.now }
	return f
}

var (
	buyerID  = primitive.NewObjectID()
	vendorA  = primitive.NewObjectID()
	vendorB  = primitive.NewObjectID()
	productA = primitive.NewObjectID()
	productB = primitive.NewObjectID()

	buyerActor = models.Actor{ID: buyerID, Role: models.RoleBuyer, Name: "Ada"}
	adminActor = models.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin, Name: "Root"}
)

func address() models.ShippingAddress {
	return models.ShippingAddress{
		FullName:   "Ada Lovelace",
		Phone:      "5550100",
		Street:     "12 Analytical Way",
		City:       "London",
		State:      "LDN",
		PostalCode: "EC1",
		Country:    "UK",
	}
}

func twoVendorOrder() *models.Order {
	return &models.Order{
		ID:            primitive.NewObjectID(),
		OrderNumber:   "SV-TEST000001",
		BuyerID:       buyerID,
		PaymentMethod: models.MethodCard,
		PaymentStatus: models.PaymentPending,
		Status:        models.StatusProcessing,
		Items: []models.OrderItem{
			{ProductID: productA, VendorID: vendorA, Title: "Keyboard", Quantity: 2, UnitPrice: 100, Status: models.StatusProcessing},
			{ProductID: productB, VendorID: vendorB, Title: "Mouse", Quantity: 1, UnitPrice: 50, Status: models.StatusProcessing},
		},
		TotalPrice: 250,
	}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.catalog.On("FindProduct", mock.Anything, productA).
		Return(&models.Product{ID: productA, Title: "Keyboard", Price: 100, Stock: 10, VendorID: vendorA}, nil)
	f.catalog.On("FindProduct", mock.Anything, productB).
		Return(&models.Product{ID: productB, Title: "Mouse", Price: 50, Stock: 5, VendorID: vendorB}, nil)

	f.store.On("Insert", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)
	f.notifier.On("Notify", mock.Anything, models.RoleBuyer, buyerID, "Order placed", mock.Anything, mock.Anything).Return(nil)
	f.events.On("OrderCreated", mock.Anything, mock.AnythingOfType("*models.Order")).Return(nil)

	order, err := f.svc.CreateOrder(ctx, buyerID, CreateOrderInput{
		Items: []CreateOrderItem{
			{ProductID: productA, Quantity: 2, UnitPrice: 100},
			{ProductID: productB, Quantity: 1, UnitPrice: 50},
		},
		ShippingAddress: address(),
		PaymentMethod:   models.MethodCard,
	})

	assert.NoError(t, err)
	assert.Equal(t, 250.0, order.TotalPrice)
	assert.Equal(t, models.PaymentPending, order.PaymentStatus)
	assert.Equal(t, models.StatusProcessing, order.Status)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, vendorA, order.Items[0].VendorID)
	assert.Equal(t, vendorB, order.Items[1].VendorID)
	assert.Equal(t, models.StatusProcessing, order.Items[0].Status)
	assert.NotEmpty(t, order.OrderNumber)

	f.store.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateOrder(context.Background(), buyerID, CreateOrderInput{
		ShippingAddress: address(),
	})

	assert.ErrorIs(t, err, ErrInvalidOrder)
	f.store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrder_IncompleteAddress(t *testing.T) {
	f := newFixture()

	addr := address()
	addr.PostalCode = ""
	_, err := f.svc.CreateOrder(context.Background(), buyerID, CreateOrderInput{
		Items:           []CreateOrderItem{{ProductID: productA, Quantity: 1}},
		ShippingAddress: addr,
	})

	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestCreateOrder_InvalidQuantity(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateOrder(context.Background(), buyerID, CreateOrderInput{
		Items:           []CreateOrderItem{{ProductID: productA, Quantity: 0}},
		ShippingAddress: address(),
	})

	assert.ErrorIs(t, err, ErrInvalidOrder)
}

func TestCreateOrder_UnknownProduct(t *testing.T) {
	f := newFixture()

	f.catalog.On("FindProduct", mock.Anything, productA).Return(nil, ErrProductNotFound)

	_, err := f.svc.CreateOrder(context.Background(), buyerID, CreateOrderInput{
		Items:           []CreateOrderItem{{ProductID: productA, Quantity: 1}},
		ShippingAddress: address(),
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
	f.store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestCreateOrder_ForgedVendorRejected(t *testing.T) {
	f := newFixture()

	f.catalog.On("FindProduct", mock.Anything, productA).
		Return(&models.Product{ID: productA, Title: "Keyboard", Price: 100, VendorID: vendorA}, nil)

	_, err := f.svc.CreateOrder(context.Background(), buyerID, CreateOrderInput{
		Items:           []CreateOrderItem{{ProductID: productA, VendorID: vendorB, Quantity: 1}},
		ShippingAddress: address(),
	})

	assert.ErrorIs(t, err, ErrInvalidOrder)
	f.store.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestUpdateItemStatus_ShippedSetsArrivalWindow(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	wantArrival := f.now.Add(3 * 24 * time.Hour)

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.store.On("UpdateItemStatus", mock.Anything, order.ID, productA, vendorA, models.StatusShipped,
		mock.MatchedBy(func(arrival *time.Time) bool {
			return arrival != nil && arrival.Equal(wantArrival)
		})).Return(order, nil)
	f.notifier.On("Notify", mock.Anything, models.RoleBuyer, buyerID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.UpdateItemStatus(context.Background(), order.ID, vendorA, productA, models.StatusShipped)

	assert.NoError(t, err)
	f.store.AssertExpectations(t)
}

func TestUpdateItemStatus_DeliveredSetsArrivalNow(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	order.Items[0].Status = models.StatusShipped

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.store.On("UpdateItemStatus", mock.Anything, order.ID, productA, vendorA, models.StatusDelivered,
		mock.MatchedBy(func(arrival *time.Time) bool {
			return arrival != nil && arrival.Equal(f.now)
		})).Return(order, nil)
	f.notifier.On("Notify", mock.Anything, models.RoleBuyer, buyerID, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.UpdateItemStatus(context.Background(), order.ID, vendorA, productA, models.StatusDelivered)

	assert.NoError(t, err)
	f.store.AssertExpectations(t)
}

func TestUpdateItemStatus_OtherVendorsLineRejected(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	// vendorA owns a line in this order, but product B belongs to vendorB.
	_, err := f.svc.UpdateItemStatus(context.Background(), order.ID, vendorA, productB, models.StatusShipped)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	f.store.AssertNotCalled(t, "UpdateItemStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateItemStatus_StrangerVendorRejected(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	stranger := primitive.NewObjectID()

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.UpdateItemStatus(context.Background(), order.ID, stranger, productA, models.StatusShipped)

	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestUpdateItemStatus_InvalidTransition(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	order.Items[0].Status = models.StatusDelivered

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.UpdateItemStatus(context.Background(), order.ID, vendorA, productA, models.StatusShipped)

	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestConfirmPayment_DecrementsStockOnce(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	paid := *order
	paid.PaymentStatus = models.PaymentPaid

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.catalog.On("DecrementStockIfAvailable", mock.Anything, productA, 2).Return(true, nil)
	f.catalog.On("DecrementStockIfAvailable", mock.Anything, productB, 1).Return(true, nil)
	f.store.On("SetPayment", mock.Anything, order.ID, models.PaymentPaid, models.MethodCard).Return(&paid, nil)
	f.notifier.On("Notify", mock.Anything, models.RoleBuyer, buyerID, "Payment received", mock.Anything, mock.Anything).Return(nil)
	f.events.On("OrderPaid", mock.Anything, &paid).Return(nil)

	updated, err := f.svc.ConfirmPayment(context.Background(), order.ID, buyerActor, models.PaymentPaid, models.MethodCard)

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
	f.catalog.AssertExpectations(t)
	f.store.AssertExpectations(t)
}

func TestConfirmPayment_AlreadyPaidIsNoOpOnStock(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	order.PaymentStatus = models.PaymentPaid

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.store.On("SetPayment", mock.Anything, order.ID, models.PaymentPaid, models.MethodCard).Return(order, nil)

	_, err := f.svc.ConfirmPayment(context.Background(), order.ID, buyerActor, models.PaymentPaid, models.MethodCard)

	assert.NoError(t, err)
	f.catalog.AssertNotCalled(t, "DecrementStockIfAvailable", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.catalog.On("DecrementStockIfAvailable", mock.Anything, productA, 2).Return(true, nil)
	f.catalog.On("DecrementStockIfAvailable", mock.Anything, productB, 1).Return(false, nil)
	f.catalog.On("IncrementStock", mock.Anything, productA, 2).Return(nil)

	_, err := f.svc.ConfirmPayment(context.Background(), order.ID, buyerActor, models.PaymentPaid, models.MethodCard)

	var stockErr *InsufficientStockError
	assert.ErrorAs(t, err, &stockErr)
	assert.Equal(t, productB.Hex(), stockErr.ProductID)
	assert.Equal(t, "Mouse", stockErr.Title)

	// compensation restored product A; payment status untouched
	f.catalog.AssertCalled(t, "IncrementStock", mock.Anything, productA, 2)
	f.store.AssertNotCalled(t, "SetPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_OtherBuyerRejected(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	stranger := models.Actor{ID: primitive.NewObjectID(), Role: models.RoleBuyer, Name: "Mallory"}

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.ConfirmPayment(context.Background(), order.ID, stranger, models.PaymentPaid, models.MethodCard)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	f.catalog.AssertNotCalled(t, "DecrementStockIfAvailable", mock.Anything, mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "SetPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_SellerRejected(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.ConfirmPayment(context.Background(), order.ID,
		models.Actor{ID: vendorA, Role: models.RoleSeller}, models.PaymentPaid, models.MethodCard)

	assert.ErrorIs(t, err, ErrNotAuthorized)
	f.store.AssertNotCalled(t, "SetPayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_AdminAllowed(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	paid := *order
	paid.PaymentStatus = models.PaymentPaid

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.catalog.On("DecrementStockIfAvailable", mock.Anything, productA, 2).Return(true, nil)
	f.catalog.On("DecrementStockIfAvailable", mock.Anything, productB, 1).Return(true, nil)
	f.store.On("SetPayment", mock.Anything, order.ID, models.PaymentPaid, models.MethodCard).Return(&paid, nil)
	f.notifier.On("Notify", mock.Anything, models.RoleBuyer, buyerID, "Payment received", mock.Anything, mock.Anything).Return(nil)
	f.events.On("OrderPaid", mock.Anything, &paid).Return(nil)

	updated, err := f.svc.ConfirmPayment(context.Background(), order.ID, adminActor, models.PaymentPaid, models.MethodCard)

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, updated.PaymentStatus)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	cancelled := *order
	cancelled.Status = models.StatusCancelled

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.store.On("CancelIfProcessing", mock.Anything, order.ID).Return(&cancelled, nil)

	updated, err := f.svc.CancelOrder(context.Background(), order.ID, buyerID)

	assert.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestCancelOrder_WrongBuyer(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.CancelOrder(context.Background(), order.ID, primitive.NewObjectID())

	assert.ErrorIs(t, err, ErrNotAuthorized)
	f.store.AssertNotCalled(t, "CancelIfProcessing", mock.Anything, mock.Anything)
}

func TestCancelOrder_NotProcessing(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	order.Status = models.StatusShipped

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.CancelOrder(context.Background(), order.ID, buyerID)

	assert.ErrorIs(t, err, ErrInvalidState)
	f.store.AssertNotCalled(t, "CancelIfProcessing", mock.Anything, mock.Anything)
}

func TestRefundOrder(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	refunded := *order
	refunded.PaymentStatus = models.PaymentRefunded
	refunded.Status = models.StatusCancelled

	f.store.On("SetRefunded", mock.Anything, order.ID).Return(&refunded, nil)
	f.notifier.On("Notify", mock.Anything, models.RoleBuyer, buyerID, "Refund processed",
		mock.MatchedBy(func(message string) bool {
			return len(message) > 0
		}), mock.Anything).Return(nil)
	f.events.On("OrderRefunded", mock.Anything, &refunded).Return(nil)

	updated, err := f.svc.RefundOrder(context.Background(), order.ID, "damaged on arrival")

	assert.NoError(t, err)
	assert.Equal(t, models.PaymentRefunded, updated.PaymentStatus)
	assert.Equal(t, models.StatusCancelled, updated.Status)
	f.notifier.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestOrdersForVendor_ProjectsForeignItems(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()

	f.store.On("FindByVendor", mock.Anything, vendorA, int64(1), int64(20)).
		Return([]models.Order{*order}, nil)

	orders, err := f.svc.OrdersForVendor(context.Background(), vendorA, 1, 20)

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 1)
	assert.Equal(t, vendorA, orders[0].Items[0].VendorID)
}

func TestGetOrder_BuyerScope(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	_, err := f.svc.GetOrder(context.Background(), order.ID, models.Actor{ID: primitive.NewObjectID(), Role: models.RoleBuyer})
	assert.ErrorIs(t, err, ErrNotAuthorized)

	got, err := f.svc.GetOrder(context.Background(), order.ID, models.Actor{ID: buyerID, Role: models.RoleBuyer})
	assert.NoError(t, err)
	assert.Len(t, got.Items, 2)
}

func TestGetOrder_SellerScopeIsProjected(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)

	got, err := f.svc.GetOrder(context.Background(), order.ID, models.Actor{ID: vendorB, Role: models.RoleSeller})

	assert.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Equal(t, vendorB, got.Items[0].VendorID)
}

func TestTrackOrder(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	arrival := f.now.Add(24 * time.Hour)
	order.Items[0].Status = models.StatusShipped
	order.Items[0].ArrivalDate = &arrival

	f.store.On("FindByID", mock.Anything, order.ID).Return(order, nil)
	f.vendors.On("FindVendor", mock.Anything, vendorA).
		Return(&models.Seller{ID: vendorA, ShopName: "KeyShop", Email: "keys@example.com"}, nil)
	f.vendors.On("FindVendor", mock.Anything, vendorB).
		Return(nil, assert.AnError)

	tracking, err := f.svc.TrackOrder(context.Background(), order.ID)

	assert.NoError(t, err)
	assert.Equal(t, order.OrderNumber, tracking.OrderNumber)
	assert.Len(t, tracking.Items, 2)
	assert.Equal(t, "KeyShop", tracking.Items[0].ShopName)
	assert.Equal(t, models.StatusShipped, tracking.Items[0].Status)
	assert.Equal(t, &arrival, tracking.Items[0].ArrivalDate)
	// vendor lookup failure degrades to an empty shop name, not an error
	assert.Empty(t, tracking.Items[1].ShopName)
}

func TestVendorEarnings(t *testing.T) {
	f := newFixture()
	order := twoVendorOrder()
	order.Items[0].Status = models.StatusDelivered

	f.store.On("FindByVendor", mock.Anything, vendorA, int64(1), int64(0)).
		Return([]models.Order{*order}, nil)

	earnings, err := f.svc.VendorEarnings(context.Background(), vendorA)

	assert.NoError(t, err)
	assert.Equal(t, 1, earnings.TotalItems)
	assert.Equal(t, 200.0, earnings.TotalSales)
	assert.Equal(t, 20.0, earnings.TotalCommission)
	assert.Equal(t, 180.0, earnings.NetEarnings)
}

func TestSetAggregateStatus_InvalidValue(t *testing.T) {
	f := newFixture()

	_, err := f.svc.SetAggregateStatus(context.Background(), primitive.NewObjectID(), "misplaced")

	assert.ErrorIs(t, err, ErrInvalidOrder)
}
