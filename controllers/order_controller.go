package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopverse/metrics"
	"shopverse/middleware"
	"shopverse/models"
	"shopverse/services"
)

// OrderController exposes the buyer-facing order endpoints plus public
// tracking. The engine does all the work; handlers bind, delegate and map
// errors.
type OrderController struct {
	svc     *services.OrderService
	metrics *metrics.OrderMetrics
}

func NewOrderController(svc *services.OrderService, m *metrics.OrderMetrics) *OrderController {
	return &OrderController{svc: svc, metrics: m}
}

type createOrderItemRequest struct {
	ProductID string  `json:"productId" binding:"required"`
	VendorID  string  `json:"vendorId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type createOrderRequest struct {
	Items           []createOrderItemRequest `json:"items"`
	ShippingAddress models.ShippingAddress   `json:"shippingAddress"`
	PaymentMethod   string                   `json:"paymentMethod"`
}

func (ctl *OrderController) Create(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var body createOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	input := services.CreateOrderInput{
		ShippingAddress: body.ShippingAddress,
		PaymentMethod:   body.PaymentMethod,
	}
	for _, item := range body.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid productId format"})
			return
		}
		var vendorID primitive.ObjectID
		if item.VendorID != "" {
			vendorID, err = primitive.ObjectIDFromHex(item.VendorID)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vendorId format"})
				return
			}
		}
		input.Items = append(input.Items, services.CreateOrderItem{
			ProductID: productID,
			VendorID:  vendorID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order, err := ctl.svc.CreateOrder(c.Request.Context(), actor.ID, input)
	if err != nil {
		respondOrderError(c, err)
		return
	}

	ctl.metrics.OrdersCreated.Inc()
	c.JSON(http.StatusCreated, gin.H{"message": "Order placed", "order": order})
}

func (ctl *OrderController) MyOrders(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	page, limit := pagination(c)

	orders, err := ctl.svc.OrdersForBuyer(c.Request.Context(), actor.ID, page, limit)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "count": len(orders), "orders": orders})
}

func (ctl *OrderController) Get(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := ctl.svc.GetOrder(c.Request.Context(), orderID, actor)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "order": order})
}

func (ctl *OrderController) Cancel(c *gin.Context) {
	actor, _ := middleware.GetActor(c)
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	order, err := ctl.svc.CancelOrder(c.Request.Context(), orderID, actor.ID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled", "order": order})
}

// Track is unauthenticated: it returns only the public-safe projection.
func (ctl *OrderController) Track(c *gin.Context) {
	orderID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	tracking, err := ctl.svc.TrackOrder(c.Request.Context(), orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetch success", "tracking": tracking})
}

func pagination(c *gin.Context) (int64, int64) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	return page, limit
}
