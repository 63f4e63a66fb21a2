package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopverse/models"
)

// AdminFilter narrows the admin order listing. Query matches against the
// human-facing order number, Status against the aggregate status.
type AdminFilter struct {
	Status string
	Query  string
	Page   int64
	Limit  int64
}

// OrderStore is the order persistence port. Implementations must perform the
// guarded updates (CancelIfProcessing, UpdateItemStatus) as single
// conditional writes so concurrent requests cannot bypass the guards.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindByBuyer(ctx context.Context, buyerID primitive.ObjectID, page, limit int64) ([]models.Order, error)
	FindByVendor(ctx context.Context, vendorID primitive.ObjectID, page, limit int64) ([]models.Order, error)
	FindAdmin(ctx context.Context, filter AdminFilter) ([]models.Order, int64, error)
	UpdateItemStatus(ctx context.Context, orderID, productID, vendorID primitive.ObjectID, status string, arrival *time.Time) (*models.Order, error)
	SetPayment(ctx context.Context, orderID primitive.ObjectID, paymentStatus, paymentMethod string) (*models.Order, error)
	SetAggregateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error)
	CancelIfProcessing(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error)
	SetRefunded(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error)
	Delete(ctx context.Context, orderID primitive.ObjectID) error
}

// Catalog is the read/adjust port onto the product inventory. Stock changes
// go through DecrementStockIfAvailable, a single atomic conditional update;
// IncrementStock exists only to compensate a failed multi-item confirmation.
type Catalog interface {
	FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	DecrementStockIfAvailable(ctx context.Context, id primitive.ObjectID, qty int) (bool, error)
	IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error
}

// VendorDirectory resolves seller contact details for public tracking.
type VendorDirectory interface {
	FindVendor(ctx context.Context, id primitive.ObjectID) (*models.Seller, error)
}

// Notifier is a fire-and-forget sink; a failed notification never aborts the
// order operation that produced it.
type Notifier interface {
	Notify(ctx context.Context, recipientType string, recipientID primitive.ObjectID, title, message, link string) error
}

// EventPublisher emits order lifecycle events, also fire-and-forget.
type EventPublisher interface {
	OrderCreated(ctx context.Context, order *models.Order) error
	OrderPaid(ctx context.Context, order *models.Order) error
	OrderRefunded(ctx context.Context, order *models.Order) error
}
