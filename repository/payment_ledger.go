package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopverse/models"
)

// PaymentLedger is the MongoDB implementation of controllers.PaymentRecorder.
type PaymentLedger struct {
	col *mongo.Collection
}

func NewPaymentLedger(col *mongo.Collection) *PaymentLedger {
	return &PaymentLedger{col: col}
}

func (l *PaymentLedger) Record(ctx context.Context, payment models.Payment) error {
	if _, err := l.col.InsertOne(ctx, payment); err != nil {
		return fmt.Errorf("record payment: %w", err)
	}
	return nil
}

// SetOutcome stamps the confirmed status and method on every payment recorded
// against the order.
func (l *PaymentLedger) SetOutcome(ctx context.Context, orderID primitive.ObjectID, status, method string) error {
	_, err := l.col.UpdateMany(ctx,
		bson.M{"orderId": orderID},
		bson.M{"$set": bson.M{"status": status, "method": method}},
	)
	if err != nil {
		return fmt.Errorf("set payment outcome: %w", err)
	}
	return nil
}
