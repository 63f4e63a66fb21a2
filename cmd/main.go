package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"shopverse/config"
	"shopverse/controllers"
	"shopverse/database"
	"shopverse/events"
	"shopverse/metrics"
	"shopverse/notify"
	"shopverse/repository"
	"shopverse/routes"
	"shopverse/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		log.Fatal(err)
	}
	defer database.Disconnect()

	publisher, closePublisher := events.Connect(cfg.NATSURL, 3, 2*time.Second)
	defer closePublisher()

	orderStore := repository.NewOrderStore(database.OrderCollection)
	catalog := repository.NewCatalog(database.ProductCollection)
	vendors := repository.NewSellerDirectory(database.SellerCollection)
	sink := notify.NewMongoSink(database.NotificationCollection)

	orderService := services.NewOrderService(orderStore, catalog, vendors, sink, publisher)

	m := metrics.New()
	ctl := routes.Controllers{
		Auth:         controllers.NewAuthController([]byte(cfg.JWTSecret)),
		Orders:       controllers.NewOrderController(orderService, m),
		SellerOrders: controllers.NewSellerOrderController(orderService),
		AdminOrders:  controllers.NewAdminOrderController(orderService, m),
		Payments:     controllers.NewPaymentController(orderService, controllers.LocalGateway{}, repository.NewPaymentLedger(database.PaymentCollection), m),
		Metrics:      m,
	}

	r := gin.Default()
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r, []byte(cfg.JWTSecret), ctl)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
