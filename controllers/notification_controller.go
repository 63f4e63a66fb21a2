package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopverse/database"
	"shopverse/middleware"
	"shopverse/models"
)

// GetNotifications lists the actor's notifications, newest first.
func GetNotifications(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.M{"createdAt": -1}).SetLimit(50)
	cursor, err := database.NotificationCollection.Find(ctx, bson.M{
		"recipientType": actor.Role,
		"recipientId":   actor.ID,
	}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	notifications := []models.Notification{}
	if err := cursor.All(ctx, &notifications); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "notifications": notifications})
}

// MarkNotificationRead flags one of the actor's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := database.NotificationCollection.UpdateOne(ctx,
		bson.M{"_id": objID, "recipientId": actor.ID},
		bson.M{"$set": bson.M{"isRead": true}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
