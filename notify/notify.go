package notify

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopverse/models"
)

// MongoSink stores notifications for in-app delivery. It implements
// services.Notifier; callers treat failures as non-fatal.
type MongoSink struct {
	col *mongo.Collection
}

func NewMongoSink(col *mongo.Collection) *MongoSink {
	return &MongoSink{col: col}
}

func (s *MongoSink) Notify(ctx context.Context, recipientType string, recipientID primitive.ObjectID, title, message, link string) error {
	notification := models.Notification{
		ID:            primitive.NewObjectID(),
		RecipientType: recipientType,
		RecipientID:   recipientID,
		Title:         title,
		Message:       message,
		Link:          link,
		CreatedAt:     time.Now(),
	}
	if _, err := s.col.InsertOne(ctx, notification); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}
