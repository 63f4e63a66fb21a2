package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Notification struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	RecipientType string             `bson:"recipientType" json:"recipientType"`
	RecipientID   primitive.ObjectID `bson:"recipientId" json:"recipientId"`
	Title         string             `bson:"title" json:"title"`
	Message       string             `bson:"message" json:"message"`
	Link          string             `bson:"link,omitempty" json:"link,omitempty"`
	IsRead        bool               `bson:"isRead" json:"isRead"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
