package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopverse/models"
)

// Estimated delivery window applied when a line ships.
const arrivalWindow = 3 * 24 * time.Hour

const commissionRate = 0.10

// OrderService owns the order lifecycle: creation, per-vendor line-item
// transitions, payment confirmation with stock adjustment, cancellation,
// refunds and the role-scoped read views.
type OrderService struct {
	store    OrderStore
	catalog  Catalog
	vendors  VendorDirectory
	notifier Notifier
	events   EventPublisher
	now      func() time.Time
}

func NewOrderService(store OrderStore, catalog Catalog, vendors VendorDirectory, notifier Notifier, events EventPublisher) *OrderService {
	return &OrderService{
		store:    store,
		catalog:  catalog,
		vendors:  vendors,
		notifier: notifier,
		events:   events,
		now:      time.Now,
	}
}

type CreateOrderItem struct {
	ProductID primitive.ObjectID
	VendorID  primitive.ObjectID
	Quantity  int
	UnitPrice float64
}

type CreateOrderInput struct {
	Items           []CreateOrderItem
	ShippingAddress models.ShippingAddress
	PaymentMethod   string
}

// CreateOrder validates the line items against the catalog and persists a new
// order. Vendor attribution always comes from (or is checked against) the
// catalog so a caller cannot forge another vendor's ownership into an order.
// Payment always starts pending; immediate-capture flows confirm right after
// the gateway succeeds, which keeps the stock decrement in one place.
func (s *OrderService) CreateOrder(ctx context.Context, buyerID primitive.ObjectID, in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: no products in order", ErrInvalidOrder)
	}
	if !in.ShippingAddress.Complete() {
		return nil, fmt.Errorf("%w: shipping address is incomplete", ErrInvalidOrder)
	}

	method := in.PaymentMethod
	if method == "" {
		method = models.MethodCOD
	}
	if !models.ValidPaymentMethod(method) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, in.PaymentMethod)
	}

	now := s.now()
	items := make([]models.OrderItem, 0, len(in.Items))
	for i, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item %d has invalid quantity", ErrInvalidOrder, i)
		}

		product, err := s.catalog.FindProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}

		vendorID := item.VendorID
		if vendorID.IsZero() {
			vendorID = product.VendorID
		} else if vendorID != product.VendorID {
			return nil, fmt.Errorf("%w: item %d vendor does not own the product", ErrInvalidOrder, i)
		}

		unitPrice := item.UnitPrice
		if unitPrice <= 0 {
			unitPrice = product.Price
		}

		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			VendorID:  vendorID,
			Title:     product.Title,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			Status:    models.StatusProcessing,
		})
	}

	order := &models.Order{
		ID:              primitive.NewObjectID(),
		OrderNumber:     newOrderNumber(),
		BuyerID:         buyerID,
		Items:           items,
		PaymentMethod:   method,
		PaymentStatus:   models.PaymentPending,
		Status:          models.StatusProcessing,
		ShippingAddress: in.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	order.TotalPrice = order.ComputeTotal()

	if err := s.store.Insert(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.notify(ctx, models.RoleBuyer, buyerID,
		"Order placed",
		fmt.Sprintf("Your order %s has been placed.", order.OrderNumber),
		"/orders/"+order.ID.Hex())
	if s.events != nil {
		s.publish(ctx, s.events.OrderCreated, order)
	}

	return order, nil
}

// UpdateItemStatus applies a vendor's fulfillment transition to their own
// line item. Shipped lines get an estimated arrival three days out; delivered
// lines record the actual delivery time.
func (s *OrderService) UpdateItemStatus(ctx context.Context, orderID, vendorID, productID primitive.ObjectID, newStatus string) (*models.Order, error) {
	if !models.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, newStatus)
	}

	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.HasVendor(vendorID) {
		return nil, fmt.Errorf("%w: order has no items for this vendor", ErrNotAuthorized)
	}

	var current *models.OrderItem
	for i := range order.Items {
		if order.Items[i].ProductID == productID {
			current = &order.Items[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("%w: product not in order", ErrProductNotFound)
	}
	if current.VendorID != vendorID {
		return nil, fmt.Errorf("%w: line item belongs to another vendor", ErrNotAuthorized)
	}
	if !models.CanTransitionItem(current.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move item from %s to %s", ErrInvalidState, current.Status, newStatus)
	}

	var arrival *time.Time
	switch newStatus {
	case models.StatusShipped:
		t := s.now().Add(arrivalWindow)
		arrival = &t
	case models.StatusDelivered:
		t := s.now()
		arrival = &t
	}

	updated, err := s.store.UpdateItemStatus(ctx, orderID, productID, vendorID, newStatus, arrival)
	if err != nil {
		return nil, err
	}

	s.notify(ctx, models.RoleBuyer, updated.BuyerID,
		"Order update",
		fmt.Sprintf("An item in order %s is now %s.", updated.OrderNumber, newStatus),
		"/orders/"+updated.ID.Hex())

	return updated, nil
}

// ConfirmPayment records the payment outcome. Only the order's own buyer or
// an admin may confirm. On the first transition into paid it decrements stock
// for every line item, all-or-nothing: if any product cannot cover its
// quantity, decrements already applied are restored and the confirmation
// fails with InsufficientStockError. Re-confirming an already paid order
// never touches stock.
func (s *OrderService) ConfirmPayment(ctx context.Context, orderID primitive.ObjectID, actor models.Actor, paymentStatus, paymentMethod string) (*models.Order, error) {
	if !models.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrInvalidOrder, paymentStatus)
	}
	if paymentMethod != "" && !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidOrder, paymentMethod)
	}

	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !(actor.IsBuyer() && order.BuyerID == actor.ID) {
		return nil, fmt.Errorf("%w: order belongs to another buyer", ErrNotAuthorized)
	}
	if paymentMethod == "" {
		paymentMethod = order.PaymentMethod
	}

	becomingPaid := paymentStatus == models.PaymentPaid && order.PaymentStatus != models.PaymentPaid
	if becomingPaid {
		if err := s.adjustStock(ctx, order); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.SetPayment(ctx, orderID, paymentStatus, paymentMethod)
	if err != nil {
		return nil, err
	}

	if becomingPaid {
		s.notify(ctx, models.RoleBuyer, updated.BuyerID,
			"Payment received",
			fmt.Sprintf("Payment for order %s was received.", updated.OrderNumber),
			"/orders/"+updated.ID.Hex())
		if s.events != nil {
			s.publish(ctx, s.events.OrderPaid, updated)
		}
	}

	return updated, nil
}

// adjustStock decrements stock per line via the catalog's atomic conditional
// update, compensating everything already decremented if a later line fails.
func (s *OrderService) adjustStock(ctx context.Context, order *models.Order) error {
	type adjustment struct {
		productID primitive.ObjectID
		qty       int
	}
	var applied []adjustment

	restock := func() {
		for _, a := range applied {
			if err := s.catalog.IncrementStock(ctx, a.productID, a.qty); err != nil {
				log.Printf("restock of %s failed: %v", a.productID.Hex(), err)
			}
		}
	}

	for _, item := range order.Items {
		ok, err := s.catalog.DecrementStockIfAvailable(ctx, item.ProductID, item.Quantity)
		if err != nil {
			restock()
			return fmt.Errorf("adjust stock: %w", err)
		}
		if !ok {
			restock()
			return &InsufficientStockError{
				ProductID: item.ProductID.Hex(),
				Title:     item.Title,
				Requested: item.Quantity,
			}
		}
		applied = append(applied, adjustment{productID: item.ProductID, qty: item.Quantity})
	}

	return nil
}

// CancelOrder is the buyer-initiated cancel, allowed only while the whole
// order is still processing. Stock already sold is not restored here.
func (s *OrderService) CancelOrder(ctx context.Context, orderID, buyerID primitive.ObjectID) (*models.Order, error) {
	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, fmt.Errorf("%w: order belongs to another buyer", ErrNotAuthorized)
	}
	if order.Status != models.StatusProcessing {
		return nil, fmt.Errorf("%w: cannot cancel this order", ErrInvalidState)
	}

	// The store re-checks the processing guard in its filter, so a racing
	// ship/cancel cannot slip through between the read above and the write.
	return s.store.CancelIfProcessing(ctx, orderID)
}

// RefundOrder is the admin path: mark the payment refunded, cancel the order
// and tell the buyer. Stock is not restored.
func (s *OrderService) RefundOrder(ctx context.Context, orderID primitive.ObjectID, reason string) (*models.Order, error) {
	updated, err := s.store.SetRefunded(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if reason == "" {
		reason = "N/A"
	}
	s.notify(ctx, models.RoleBuyer, updated.BuyerID,
		"Refund processed",
		fmt.Sprintf("Your refund for order %s has been processed. Reason: %s", updated.OrderNumber, reason),
		"/orders/"+updated.ID.Hex())
	if s.events != nil {
		s.publish(ctx, s.events.OrderRefunded, updated)
	}

	return updated, nil
}

// SetAggregateStatus is the admin override for the coarse order-level status.
// It is independent of the per-line statuses.
func (s *OrderService) SetAggregateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, status)
	}
	return s.store.SetAggregateStatus(ctx, orderID, status)
}

func (s *OrderService) OrdersForBuyer(ctx context.Context, buyerID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	page, limit = normalizePage(page, limit)
	return s.store.FindByBuyer(ctx, buyerID, page, limit)
}

// OrdersForVendor returns the vendor's orders with every item list projected
// down to that vendor's own lines.
func (s *OrderService) OrdersForVendor(ctx context.Context, vendorID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	page, limit = normalizePage(page, limit)
	orders, err := s.store.FindByVendor(ctx, vendorID, page, limit)
	if err != nil {
		return nil, err
	}
	projected := make([]models.Order, 0, len(orders))
	for i := range orders {
		projected = append(projected, orders[i].ForVendor(vendorID))
	}
	return projected, nil
}

func (s *OrderService) OrdersForAdmin(ctx context.Context, filter AdminFilter) ([]models.Order, int64, error) {
	filter.Page, filter.Limit = normalizePage(filter.Page, filter.Limit)
	return s.store.FindAdmin(ctx, filter)
}

// GetOrder loads one order scoped to the actor: buyers see only their own
// orders, vendors see their own line items only, admins see everything.
func (s *OrderService) GetOrder(ctx context.Context, orderID primitive.ObjectID, actor models.Actor) (*models.Order, error) {
	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleAdmin:
		return order, nil
	case models.RoleBuyer:
		if order.BuyerID != actor.ID {
			return nil, fmt.Errorf("%w: order belongs to another buyer", ErrNotAuthorized)
		}
		return order, nil
	case models.RoleSeller:
		if !order.HasVendor(actor.ID) {
			return nil, fmt.Errorf("%w: order has no items for this vendor", ErrNotAuthorized)
		}
		projected := order.ForVendor(actor.ID)
		return &projected, nil
	}
	return nil, fmt.Errorf("%w: unknown role %q", ErrNotAuthorized, actor.Role)
}

// TrackOrder builds the public tracking projection: per-line fulfillment
// progress and vendor contact, no prices and no buyer details. Vendor lookups
// are best-effort.
func (s *OrderService) TrackOrder(ctx context.Context, orderID primitive.ObjectID) (*models.Tracking, error) {
	order, err := s.store.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	sellers := map[primitive.ObjectID]*models.Seller{}
	tracking := &models.Tracking{
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		Items:       make([]models.TrackingItem, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		seller, seen := sellers[item.VendorID]
		if !seen {
			seller, err = s.vendors.FindVendor(ctx, item.VendorID)
			if err != nil {
				seller = nil
			}
			sellers[item.VendorID] = seller
		}

		view := models.TrackingItem{
			Title:       item.Title,
			Quantity:    item.Quantity,
			Status:      item.Status,
			ArrivalDate: item.ArrivalDate,
		}
		if seller != nil {
			view.ShopName = seller.ShopName
			view.VendorEmail = seller.Email
		}
		tracking.Items = append(tracking.Items, view)
	}

	return tracking, nil
}

type Earnings struct {
	TotalSales      float64 `json:"totalSales"`
	TotalItems      int     `json:"totalItems"`
	TotalCommission float64 `json:"totalCommission"`
	NetEarnings     float64 `json:"netEarnings"`
}

// VendorEarnings sums the vendor's delivered line items minus the platform
// commission.
func (s *OrderService) VendorEarnings(ctx context.Context, vendorID primitive.ObjectID) (*Earnings, error) {
	orders, err := s.store.FindByVendor(ctx, vendorID, 1, 0)
	if err != nil {
		return nil, err
	}

	earnings := &Earnings{}
	for i := range orders {
		for _, item := range orders[i].ItemsForVendor(vendorID) {
			if item.Status != models.StatusDelivered {
				continue
			}
			sale := item.UnitPrice * float64(item.Quantity)
			earnings.TotalItems++
			earnings.TotalSales += sale
			earnings.TotalCommission += sale * commissionRate
		}
	}
	earnings.NetEarnings = earnings.TotalSales - earnings.TotalCommission
	return earnings, nil
}

// HardDelete removes an order permanently. Orders are otherwise retained for
// invoicing and audit; this is the administrative escape hatch only.
func (s *OrderService) HardDelete(ctx context.Context, orderID primitive.ObjectID) error {
	return s.store.Delete(ctx, orderID)
}

func (s *OrderService) notify(ctx context.Context, recipientType string, recipientID primitive.ObjectID, title, message, link string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, recipientType, recipientID, title, message, link); err != nil {
		log.Printf("notification failed: %v", err)
	}
}

func (s *OrderService) publish(ctx context.Context, fn func(context.Context, *models.Order) error, order *models.Order) {
	if err := fn(ctx, order); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}

func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 0 {
		limit = 0
	}
	if limit == 0 {
		limit = 20
	}
	return page, limit
}

func newOrderNumber() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "SV-" + strings.ToUpper(raw[:10])
}
