package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestComputeTotal(t *testing.T) {
	order := Order{Items: []OrderItem{
		{Quantity: 2, UnitPrice: 100},
		{Quantity: 1, UnitPrice: 50},
	}}
	assert.Equal(t, 250.0, order.ComputeTotal())

	order.Items = nil
	assert.Equal(t, 0.0, order.ComputeTotal())
}

func TestItemsForVendor(t *testing.T) {
	vendorA := primitive.NewObjectID()
	vendorB := primitive.NewObjectID()
	order := Order{Items: []OrderItem{
		{VendorID: vendorA, Title: "Keyboard"},
		{VendorID: vendorB, Title: "Mouse"},
		{VendorID: vendorA, Title: "Monitor"},
	}}

	items := order.ItemsForVendor(vendorA)
	assert.Len(t, items, 2)
	for _, item := range items {
		assert.Equal(t, vendorA, item.VendorID)
	}

	assert.Empty(t, order.ItemsForVendor(primitive.NewObjectID()))
	assert.True(t, order.HasVendor(vendorB))
	assert.False(t, order.HasVendor(primitive.NewObjectID()))
}

func TestForVendorLeavesOriginalIntact(t *testing.T) {
	vendorA := primitive.NewObjectID()
	vendorB := primitive.NewObjectID()
	order := Order{Items: []OrderItem{
		{VendorID: vendorA},
		{VendorID: vendorB},
	}}

	projected := order.ForVendor(vendorA)
	assert.Len(t, projected.Items, 1)
	assert.Len(t, order.Items, 2)
}

func TestCanTransitionItem(t *testing.T) {
	assert.True(t, CanTransitionItem(StatusProcessing, StatusShipped))
	assert.True(t, CanTransitionItem(StatusProcessing, StatusCancelled))
	assert.True(t, CanTransitionItem(StatusShipped, StatusDelivered))
	assert.True(t, CanTransitionItem(StatusShipped, StatusCancelled))

	assert.False(t, CanTransitionItem(StatusProcessing, StatusDelivered))
	assert.False(t, CanTransitionItem(StatusDelivered, StatusShipped))
	assert.False(t, CanTransitionItem(StatusCancelled, StatusProcessing))
	assert.False(t, CanTransitionItem(StatusShipped, StatusShipped))
}

func TestShippingAddressComplete(t *testing.T) {
	addr := ShippingAddress{
		FullName:   "Ada Lovelace",
		Phone:      "5550100",
		Street:     "12 Analytical Way",
		City:       "London",
		State:      "LDN",
		PostalCode: "EC1",
		Country:    "UK",
	}
	assert.True(t, addr.Complete())

	addr.Phone = ""
	assert.False(t, addr.Complete())
}
