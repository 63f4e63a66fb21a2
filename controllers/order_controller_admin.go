package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopverse/metrics"
	"shopverse/services"
)

// AdminOrderController is the unrestricted view plus the aggregate-status
// override, refund and hard-delete paths.
type AdminOrderController struct {
	svc     *services.OrderService
	metrics *metrics.OrderMetrics
}

func NewAdminOrderController(svc *services.OrderService, m *metrics.OrderMetrics) *AdminOrderController {
	return &AdminOrderController{svc: svc, metrics: m}
}

func (ctl *AdminOrderController) List(c *gin.Context) {
	page, limit := pagination(c)
	filter := services.AdminFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
		Page:   page,
		Limit:  limit,
	}

	orders, total, err := ctl.svc.OrdersForAdmin(c.Request.Context(), filter)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "total": total, "orders": orders})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus overrides the coarse order-level status. It deliberately does
// not touch per-line statuses; those belong to the vendors.
func (ctl *AdminOrderController) UpdateStatus(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body updateOrderStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := ctl.svc.SetAggregateStatus(c.Request.Context(), orderID, body.Status)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated", "order": order})
}

type refundRequest struct {
	Reason string `json:"reason"`
}

func (ctl *AdminOrderController) Refund(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body refundRequest
	_ = c.ShouldBindJSON(&body)

	order, err := ctl.svc.RefundOrder(c.Request.Context(), orderID, body.Reason)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	ctl.metrics.Refunds.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Refund processed", "order": order})
}

// Delete is the administrative hard-delete escape hatch; orders are normally
// retained forever for invoicing and audit.
func (ctl *AdminOrderController) Delete(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	if err := ctl.svc.HardDelete(c.Request.Context(), orderID); err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
}
