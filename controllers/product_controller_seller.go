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

// Seller product management. The vendor field is always stamped from the
// authenticated actor; a seller cannot create or edit another vendor's
// products.

func CreateProduct(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and price are required"})
		return
	}
	if product.Stock < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
		return
	}

	product.ID = primitive.NewObjectID()
	product.VendorID = actor.ID
	product.Status = "active"
	product.CreatedAt = time.Now()
	product.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := database.ProductCollection.InsertOne(ctx, product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

func GetMyProducts(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := database.ProductCollection.Find(ctx, bson.M{"vendorId": actor.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "count": len(products), "products": products})
}

func UpdateProduct(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var body struct {
		Title       *string  `json:"title"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		Stock       *int     `json:"stock"`
		Category    *string  `json:"category"`
		Status      *string  `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := bson.M{}
	if body.Title != nil {
		update["title"] = *body.Title
	}
	if body.Description != nil {
		update["description"] = *body.Description
	}
	if body.Price != nil {
		update["price"] = *body.Price
	}
	if body.Stock != nil {
		if *body.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock cannot be negative"})
			return
		}
		update["stock"] = *body.Stock
	}
	if body.Category != nil {
		update["category"] = *body.Category
	}
	if body.Status != nil {
		update["status"] = *body.Status
	}
	update["updatedAt"] = time.Now()

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.Product
	err = database.ProductCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": objID, "vendorId": actor.ID},
		bson.M{"$set": update}, opts).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "product": updated})
}

func DeleteProduct(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	result, err := database.ProductCollection.DeleteOne(ctx, bson.M{"_id": objID, "vendorId": actor.ID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
