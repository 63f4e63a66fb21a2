package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopverse/models"
	"shopverse/services"
)

// OrderStore is the MongoDB implementation of services.OrderStore. Guarded
// transitions are expressed as filtered updates so the guard and the write
// are one atomic operation.
type OrderStore struct {
	col *mongo.Collection
}

func NewOrderStore(col *mongo.Collection) *OrderStore {
	return &OrderStore{col: col}
}

func (s *OrderStore) Insert(ctx context.Context, order *models.Order) error {
	_, err := s.col.InsertOne(ctx, order)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *OrderStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &order, nil
}

func (s *OrderStore) FindByBuyer(ctx context.Context, buyerID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	return s.find(ctx, bson.M{"buyerId": buyerID}, page, limit)
}

func (s *OrderStore) FindByVendor(ctx context.Context, vendorID primitive.ObjectID, page, limit int64) ([]models.Order, error) {
	return s.find(ctx, bson.M{"items.vendorId": vendorID}, page, limit)
}

func (s *OrderStore) FindAdmin(ctx context.Context, filter services.AdminFilter) ([]models.Order, int64, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.Query != "" {
		query["orderNumber"] = bson.M{"$regex": filter.Query, "$options": "i"}
	}

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	orders, err := s.find(ctx, query, filter.Page, filter.Limit)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// find lists orders newest-first. A limit of zero means no limit.
func (s *OrderStore) find(ctx context.Context, query bson.M, page, limit int64) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		opts.SetSkip((page - 1) * limit).SetLimit(limit)
	}

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (s *OrderStore) UpdateItemStatus(ctx context.Context, orderID, productID, vendorID primitive.ObjectID, status string, arrival *time.Time) (*models.Order, error) {
	filter := bson.M{
		"_id": orderID,
		"items": bson.M{"$elemMatch": bson.M{
			"productId": productID,
			"vendorId":  vendorID,
		}},
	}
	set := bson.M{
		"items.$.status": status,
		"updatedAt":      time.Now(),
	}
	if arrival != nil {
		set["items.$.arrivalDate"] = *arrival
	}
	return s.findOneAndUpdate(ctx, filter, bson.M{"$set": set}, services.ErrNotFound)
}

func (s *OrderStore) SetPayment(ctx context.Context, orderID primitive.ObjectID, paymentStatus, paymentMethod string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"paymentStatus": paymentStatus,
		"paymentMethod": paymentMethod,
		"updatedAt":     time.Now(),
	}}
	return s.findOneAndUpdate(ctx, bson.M{"_id": orderID}, update, services.ErrNotFound)
}

func (s *OrderStore) SetAggregateStatus(ctx context.Context, orderID primitive.ObjectID, status string) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"status":    status,
		"updatedAt": time.Now(),
	}}
	return s.findOneAndUpdate(ctx, bson.M{"_id": orderID}, update, services.ErrNotFound)
}

// CancelIfProcessing cancels only while the order is still processing; the
// status guard lives in the filter so a racing update cannot bypass it.
func (s *OrderStore) CancelIfProcessing(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	filter := bson.M{"_id": orderID, "status": models.StatusProcessing}
	update := bson.M{"$set": bson.M{
		"status":    models.StatusCancelled,
		"updatedAt": time.Now(),
	}}
	return s.findOneAndUpdate(ctx, filter, update, fmt.Errorf("%w: cannot cancel this order", services.ErrInvalidState))
}

func (s *OrderStore) SetRefunded(ctx context.Context, orderID primitive.ObjectID) (*models.Order, error) {
	update := bson.M{"$set": bson.M{
		"paymentStatus": models.PaymentRefunded,
		"status":        models.StatusCancelled,
		"updatedAt":     time.Now(),
	}}
	return s.findOneAndUpdate(ctx, bson.M{"_id": orderID}, update, services.ErrNotFound)
}

func (s *OrderStore) Delete(ctx context.Context, orderID primitive.ObjectID) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if result.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *OrderStore) findOneAndUpdate(ctx context.Context, filter, update bson.M, noMatch error) (*models.Order, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var order models.Order
	err := s.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, noMatch
	}
	if err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return &order, nil
}
