package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"shopverse/models"
)

const (
	subjectOrderCreated  = "orders.created"
	subjectOrderPaid     = "orders.paid"
	subjectOrderRefunded = "orders.refunded"
)

type orderEvent struct {
	OrderID     string    `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	BuyerID     string    `json:"buyerId"`
	TotalPrice  float64   `json:"totalPrice"`
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
}

// NatsPublisher pushes order lifecycle events to NATS. Publishing is
// fire-and-forget; subscribers (mailers, analytics) are free to miss events.
type NatsPublisher struct {
	conn *nats.Conn
}

func NewNatsPublisher(url string) (*NatsPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NatsPublisher{conn: conn}, nil
}

func (p *NatsPublisher) OrderCreated(ctx context.Context, order *models.Order) error {
	return p.publish(subjectOrderCreated, order)
}

func (p *NatsPublisher) OrderPaid(ctx context.Context, order *models.Order) error {
	return p.publish(subjectOrderPaid, order)
}

func (p *NatsPublisher) OrderRefunded(ctx context.Context, order *models.Order) error {
	return p.publish(subjectOrderRefunded, order)
}

func (p *NatsPublisher) publish(subject string, order *models.Order) error {
	payload, err := json.Marshal(orderEvent{
		OrderID:     order.ID.Hex(),
		OrderNumber: order.OrderNumber,
		BuyerID:     order.BuyerID.Hex(),
		TotalPrice:  order.TotalPrice,
		Status:      order.Status,
		Timestamp:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}
	return nil
}

func (p *NatsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher disables event publishing when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) OrderCreated(ctx context.Context, order *models.Order) error  { return nil }
func (NoopPublisher) OrderPaid(ctx context.Context, order *models.Order) error     { return nil }
func (NoopPublisher) OrderRefunded(ctx context.Context, order *models.Order) error { return nil }

// Connect dials NATS with a few retries and falls back to the noop publisher,
// so a missing broker never blocks the API from serving orders.
func Connect(url string, maxRetries int, delay time.Duration) (Publisher, func()) {
	if url == "" {
		log.Println("NATS URL not set, event publishing disabled")
		return NoopPublisher{}, func() {}
	}

	for i := 0; i < maxRetries; i++ {
		publisher, err := NewNatsPublisher(url)
		if err == nil {
			log.Println("connected to NATS")
			return publisher, publisher.Close
		}
		log.Printf("NATS connect attempt %d/%d failed: %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			time.Sleep(delay)
		}
	}

	log.Println("NATS unavailable, continuing without event publishing")
	return NoopPublisher{}, func() {}
}

// Publisher matches services.EventPublisher; declared here so Connect can
// return either implementation without importing services.
type Publisher interface {
	OrderCreated(ctx context.Context, order *models.Order) error
	OrderPaid(ctx context.Context, order *models.Order) error
	OrderRefunded(ctx context.Context, order *models.Order) error
}
