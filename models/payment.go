package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment records one gateway interaction for an order. The gateway itself
// sits behind an interface; only the reference and outcome are stored.
type Payment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	OrderID     primitive.ObjectID `bson:"orderId,omitempty" json:"orderId,omitempty"`
	Amount      float64            `bson:"amount" json:"amount"`
	Currency    string             `bson:"currency" json:"currency"`
	Reference   string             `bson:"reference" json:"reference"`
	Method      string             `bson:"method,omitempty" json:"method,omitempty"`
	Status      string             `bson:"status" json:"status"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
