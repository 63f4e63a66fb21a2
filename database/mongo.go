package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var Client *mongo.Client
var DB *mongo.Database

var (
	UserCollection         *mongo.Collection
	SellerCollection       *mongo.Collection
	AdminCollection        *mongo.Collection
	ProductCollection      *mongo.Collection
	OrderCollection        *mongo.Collection
	NotificationCollection *mongo.Collection
	PaymentCollection      *mongo.Collection
)

func Connect(uri, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("ping MongoDB: %w", err)
	}

	Client = client
	DB = client.Database(dbName)

	UserCollection = DB.Collection("users")
	SellerCollection = DB.Collection("sellers")
	AdminCollection = DB.Collection("admins")
	ProductCollection = DB.Collection("products")
	OrderCollection = DB.Collection("orders")
	NotificationCollection = DB.Collection("notifications")
	PaymentCollection = DB.Collection("payments")

	log.Println("connected to MongoDB")
	return nil
}

func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect: %v", err)
	}
}
