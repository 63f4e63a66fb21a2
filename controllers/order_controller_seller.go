package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopverse/middleware"
	"shopverse/services"
)

// SellerOrderController serves the vendor view: order lists projected to the
// vendor's own line items, per-line fulfillment transitions, earnings.
type SellerOrderController struct {
	svc *services.OrderService
}

func NewSellerOrderController(svc *services.OrderService) *SellerOrderController {
	return &SellerOrderController{svc: svc}
}

func (ctl *SellerOrderController) Orders(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	page, limit := pagination(c)

	orders, err := ctl.svc.OrdersForVendor(c.Request.Context(), actor.ID, page, limit)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "count": len(orders), "orders": orders})
}

type updateItemStatusRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

func (ctl *SellerOrderController) UpdateItemStatus(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body updateItemStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	productID, err := primitive.ObjectIDFromHex(body.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId format"})
		return
	}

	order, err := ctl.svc.UpdateItemStatus(c.Request.Context(), orderID, actor.ID, productID, body.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	projected := order.ForVendor(actor.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": projected})
}

func (ctl *SellerOrderController) Earnings(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	earnings, err := ctl.svc.VendorEarnings(c.Request.Context(), actor.ID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "earnings": earnings})
}
