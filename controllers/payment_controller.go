package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"shopverse/metrics"
	"shopverse/middleware"
	"shopverse/models"
	"shopverse/services"
)

// Gateway abstracts the payment provider. The real provider integration
// lives outside this service; the default implementation only mints a
// reference the client can hand back after capture.
type Gateway interface {
	CreateIntent(ctx context.Context, amount float64, currency, description string) (reference string, err error)
}

// LocalGateway issues opaque references without talking to a provider.
type LocalGateway struct{}

func (LocalGateway) CreateIntent(ctx context.Context, amount float64, currency, description string) (string, error) {
	return "pi_" + uuid.NewString(), nil
}

// PaymentRecorder keeps the payment documents in step with the gateway:
// one record per intent, outcome stamped on confirmation.
type PaymentRecorder interface {
	Record(ctx context.Context, payment models.Payment) error
	SetOutcome(ctx context.Context, orderID primitive.ObjectID, status, method string) error
}

// PaymentController records gateway intents and drives payment confirmation
// through the order engine.
type PaymentController struct {
	svc      *services.OrderService
	gateway  Gateway
	payments PaymentRecorder
	metrics  *metrics.OrderMetrics
}

func NewPaymentController(svc *services.OrderService, gateway Gateway, payments PaymentRecorder, m *metrics.OrderMetrics) *PaymentController {
	return &PaymentController{svc: svc, gateway: gateway, payments: payments, metrics: m}
}

type createIntentRequest struct {
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount" binding:"required"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

func (ctl *PaymentController) CreateIntent(c *gin.Context) {
	actor, _ := middleware.GetActor(c)

	var body createIntentRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount is required"})
		return
	}
	if body.Currency == "" {
		body.Currency = "usd"
	}
	if body.Description == "" {
		body.Description = "ShopVerse purchase"
	}

	reference, err := ctl.gateway.CreateIntent(c.Request.Context(), body.Amount, body.Currency, body.Description)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Payment provider unavailable"})
		return
	}

	payment := models.Payment{
		ID:          primitive.NewObjectID(),
		UserID:      actor.ID,
		Amount:      body.Amount,
		Currency:    body.Currency,
		Reference:   reference,
		Status:      models.PaymentPending,
		Description: body.Description,
		CreatedAt:   time.Now(),
	}
	if body.OrderID != "" {
		orderID, err := primitive.ObjectIDFromHex(body.OrderID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid orderId format"})
			return
		}
		payment.OrderID = orderID
	}

	if err := ctl.payments.Record(c.Request.Context(), payment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment intent created", "reference": reference, "payment": payment})
}

type confirmPaymentRequest struct {
	PaymentStatus string `json:"paymentStatus" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
}

// Confirm applies the payment outcome to the order, on behalf of the order's
// buyer or an admin. First transition into paid decrements stock,
// all-or-nothing; re-confirmation is a no-op on stock.
func (ctl *PaymentController) Confirm(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token required"})
		return
	}

	orderID, err := primitive.ObjectIDFromHex(c.Param("orderId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var body confirmPaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := ctl.svc.ConfirmPayment(c.Request.Context(), orderID, actor, body.PaymentStatus, body.PaymentMethod)
	if err != nil {
		var stockErr *services.InsufficientStockError
		if errors.As(err, &stockErr) {
			ctl.metrics.StockConflicts.Inc()
		}
		respondOrderError(c, err)
		return
	}

	if err := ctl.payments.SetOutcome(c.Request.Context(), orderID, body.PaymentStatus, order.PaymentMethod); err != nil {
		log.Printf("payment record update failed: %v", err)
	}

	if body.PaymentStatus == models.PaymentPaid {
		ctl.metrics.PaymentsConfirmed.Inc()
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment updated", "order": order})
}
