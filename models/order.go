package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Line item and aggregate order statuses share one value set.
const (
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

const (
	MethodCOD    = "cod"
	MethodCard   = "card"
	MethodWallet = "wallet"
)

type ShippingAddress struct {
	FullName   string `bson:"fullName" json:"fullName"`
	Phone      string `bson:"phone" json:"phone"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

// Complete reports whether every address field is filled in.
func (a ShippingAddress) Complete() bool {
	return a.FullName != "" && a.Phone != "" && a.Street != "" &&
		a.City != "" && a.State != "" && a.PostalCode != "" && a.Country != ""
}

// OrderItem is one product line inside an order. Vendor, title and unit
// price are captured at order time so later catalog edits do not rewrite
// order history.
type OrderItem struct {
	ProductID   primitive.ObjectID `bson:"productId" json:"productId"`
	VendorID    primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	Title       string             `bson:"title" json:"title"`
	Quantity    int                `bson:"quantity" json:"quantity"`
	UnitPrice   float64            `bson:"unitPrice" json:"unitPrice"`
	Status      string             `bson:"status" json:"status"`
	ArrivalDate *time.Time         `bson:"arrivalDate,omitempty" json:"arrivalDate,omitempty"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderNumber     string             `bson:"orderNumber" json:"orderNumber"`
	BuyerID         primitive.ObjectID `bson:"buyerId" json:"buyerId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	TotalPrice      float64            `bson:"totalPrice" json:"totalPrice"`
	PaymentMethod   string             `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string             `bson:"paymentStatus" json:"paymentStatus"`
	Status          string             `bson:"status" json:"status"`
	ShippingAddress ShippingAddress    `bson:"shippingAddress" json:"shippingAddress"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ComputeTotal derives the order total from its line items. TotalPrice is
// never taken from a client; callers recompute it whenever items change.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

// HasVendor reports whether at least one line item belongs to the vendor.
func (o *Order) HasVendor(vendorID primitive.ObjectID) bool {
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}

// ItemsForVendor returns only the vendor's own line items. Every
// vendor-facing read path goes through here so other vendors' items and
// prices never leak.
func (o *Order) ItemsForVendor(vendorID primitive.ObjectID) []OrderItem {
	items := []OrderItem{}
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			items = append(items, item)
		}
	}
	return items
}

// ForVendor returns a copy of the order with the item list projected down
// to the vendor's own lines.
func (o *Order) ForVendor(vendorID primitive.ObjectID) Order {
	projected := *o
	projected.Items = o.ItemsForVendor(vendorID)
	return projected
}

func ValidStatus(s string) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func ValidPaymentMethod(s string) bool {
	switch s {
	case MethodCOD, MethodCard, MethodWallet:
		return true
	}
	return false
}

// CanTransitionItem validates a vendor's line-item status change.
// Delivered and cancelled are terminal; a shipped line may still be
// cancelled (lost parcel, carrier return).
func CanTransitionItem(from, to string) bool {
	switch from {
	case StatusProcessing:
		return to == StatusShipped || to == StatusCancelled
	case StatusShipped:
		return to == StatusDelivered || to == StatusCancelled
	}
	return false
}

// TrackingItem is the public-safe view of one order line: no prices, no
// buyer data, just fulfillment progress and who ships it.
type TrackingItem struct {
	Title       string     `json:"title"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	ArrivalDate *time.Time `json:"arrivalDate,omitempty"`
	ShopName    string     `json:"shopName,omitempty"`
	VendorEmail string     `json:"vendorEmail,omitempty"`
}

type Tracking struct {
	OrderNumber string         `json:"orderNumber"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
	Items       []TrackingItem `json:"items"`
}
