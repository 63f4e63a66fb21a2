package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"shopverse/database"
	"shopverse/models"
)

// GetProductsPublic lists active products for the storefront.
func GetProductsPublic(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	filter := bson.M{"status": "active"}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	cursor, err := database.ProductCollection.Find(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	resp := make([]gin.H, 0, len(products))
	for _, p := range products {
		resp = append(resp, gin.H{
			"id":          p.ID.Hex(),
			"title":       p.Title,
			"description": p.Description,
			"price":       p.Price,
			"category":    p.Category,
			"vendorId":    p.VendorID.Hex(),
			"inStock":     p.InStock(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "count": len(resp), "products": resp})
}

// GetProductsAdmin lists everything, stock levels included.
func GetProductsAdmin(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	cursor, err := database.ProductCollection.Find(ctx, bson.M{})
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
