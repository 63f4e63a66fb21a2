package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shopverse/models"
	"shopverse/services"
)

// Catalog is the MongoDB implementation of services.Catalog.
type Catalog struct {
	col *mongo.Collection
}

func NewCatalog(col *mongo.Collection) *Catalog {
	return &Catalog{col: col}
}

func (c *Catalog) FindProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := c.col.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("%w: %s", services.ErrProductNotFound, id.Hex())
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return &product, nil
}

// DecrementStockIfAvailable takes qty units of stock in one conditional
// update. The stock check and the write are a single document operation, so
// two confirmations racing over the same product cannot both win the last
// units.
func (c *Catalog) DecrementStockIfAvailable(ctx context.Context, id primitive.ObjectID, qty int) (bool, error) {
	result, err := c.col.UpdateOne(ctx,
		bson.M{"_id": id, "stock": bson.M{"$gte": qty}},
		bson.M{"$inc": bson.M{"stock": -qty}},
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return result.MatchedCount == 1, nil
}

// IncrementStock returns qty units; used only to compensate a partially
// applied multi-item decrement.
func (c *Catalog) IncrementStock(ctx context.Context, id primitive.ObjectID, qty int) error {
	_, err := c.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"stock": qty}},
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	return nil
}

// SellerDirectory resolves vendors for the tracking projection.
type SellerDirectory struct {
	col *mongo.Collection
}

func NewSellerDirectory(col *mongo.Collection) *SellerDirectory {
	return &SellerDirectory{col: col}
}

func (d *SellerDirectory) FindVendor(ctx context.Context, id primitive.ObjectID) (*models.Seller, error) {
	var seller models.Seller
	err := d.col.FindOne(ctx, bson.M{"_id": id}).Decode(&seller)
	if err != nil {
		return nil, fmt.Errorf("find vendor: %w", err)
	}
	return &seller, nil
}
