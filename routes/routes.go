package routes

import (
	"github.com/gin-gonic/gin"

	"shopverse/controllers"
	"shopverse/metrics"
	"shopverse/middleware"
	"shopverse/models"
)

// Controllers bundles the handler sets the route table wires up.
type Controllers struct {
	Auth         *controllers.AuthController
	Orders       *controllers.OrderController
	SellerOrders *controllers.SellerOrderController
	AdminOrders  *controllers.AdminOrderController
	Payments     *controllers.PaymentController
	Metrics      *metrics.OrderMetrics
}

func RegisterRoutes(r *gin.Engine, jwtSecret []byte, ctl Controllers) {
	r.Use(middleware.RequestMetrics(ctl.Metrics))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.POST("/auth/register", ctl.Auth.Register)
		api.POST("/auth/login", ctl.Auth.Login)

		api.GET("/products", controllers.GetProductsPublic)
		api.GET("/orders/:id/track", ctl.Orders.Track)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret))
		{
			protected.POST("/orders", ctl.Orders.Create)
			protected.GET("/orders/my", ctl.Orders.MyOrders)
			protected.GET("/orders/:id", ctl.Orders.Get)
			protected.PUT("/orders/:id/cancel", ctl.Orders.Cancel)

			protected.POST("/payments", ctl.Payments.CreateIntent)
			protected.PUT("/payments/:orderId/confirm", ctl.Payments.Confirm)

			protected.GET("/notifications", controllers.GetNotifications)
			protected.PUT("/notifications/:id/read", controllers.MarkNotificationRead)

			seller := protected.Group("/seller")
			seller.Use(middleware.RequireRole(models.RoleSeller))
			{
				seller.GET("/orders", ctl.SellerOrders.Orders)
				seller.PUT("/orders/:id/status", ctl.SellerOrders.UpdateItemStatus)
				seller.GET("/earnings", ctl.SellerOrders.Earnings)

				seller.POST("/products", controllers.CreateProduct)
				seller.GET("/products", controllers.GetMyProducts)
				seller.PUT("/products/:id", controllers.UpdateProduct)
				seller.DELETE("/products/:id", controllers.DeleteProduct)
			}

			admin := protected.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/orders", ctl.AdminOrders.List)
				admin.GET("/orders/:id", ctl.Orders.Get)
				admin.PUT("/orders/:id/status", ctl.AdminOrders.UpdateStatus)
				admin.PUT("/orders/:id/refund", ctl.AdminOrders.Refund)
				admin.DELETE("/orders/:id", ctl.AdminOrders.Delete)

				admin.GET("/products", controllers.GetProductsAdmin)
			}
		}
	}
}
