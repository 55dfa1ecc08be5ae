package routes

import (
	"github.com/mhusainh/ScanDine-sub000/configs"
	"github.com/mhusainh/ScanDine-sub000/controllers"
	"github.com/mhusainh/ScanDine-sub000/middlewares"
	"github.com/mhusainh/ScanDine-sub000/pkg/midtrans"
	"github.com/mhusainh/ScanDine-sub000/repository"
	"github.com/mhusainh/ScanDine-sub000/services"
	"github.com/mhusainh/ScanDine-sub000/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	tableRepo := repository.NewTableRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Gateway client (online payments disabled when the key is absent)
	var snap *midtrans.SnapClient
	if cfg.MidtransServerKey != "" {
		snap = midtrans.NewSnapClient(cfg.MidtransBaseURL, cfg.MidtransServerKey)
	}

	// Services
	tableSvc := services.NewTableService(db, tableRepo, cfg.PublicBaseURL)
	catalogSvc := services.NewCatalogService(db, catalogRepo)
	orderSvc := services.NewOrderService(db, orderRepo, catalogRepo, paymentRepo, tableSvc, snap, cfg.TaxRate)
	paymentSvc := services.NewPaymentService(db, orderRepo, paymentRepo, tableSvc, cfg.MidtransServerKey)

	// Kitchen feed
	hub := ws.NewKitchenHub()
	go hub.Run()
	orderSvc.OnOrderCreated = hub.OrderCreated
	orderSvc.OnOrderStatusChanged = hub.OrderStatusChanged

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL)
	tableCtrl := controllers.NewTableController(tableSvc, catalogSvc)
	orderCtrl := controllers.NewOrderController(orderSvc, paymentSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	catalogCtrl := controllers.NewCatalogController(catalogSvc)

	// Public (customer) — no auth, the table token is the credential
	r.GET("/t/:uuid/menu", tableCtrl.Menu)
	r.POST("/orders", orderCtrl.Create)
	r.GET("/orders/:id", orderCtrl.Detail)
	r.POST("/payments/webhook", paymentCtrl.Webhook)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)
	}

	// Staff (staff or admin)
	staff := r.Group("/", middlewares.AuthMiddleware(cfg.JWTSecret, "staff", "admin"))
	{
		staff.GET("/orders", orderCtrl.List)
		staff.PATCH("/orders/:id/status", orderCtrl.UpdateStatus)
		staff.POST("/orders/:id/confirm-payment", orderCtrl.ConfirmPayment)
		staff.GET("/kitchen/orders", orderCtrl.Active)
		staff.GET("/ws/kitchen", hub.HandleWebSocket)

		staff.GET("/tables", tableCtrl.List)
		staff.GET("/tables/:id/qr-url", tableCtrl.QRUrl)
	}

	// Admin only
	admin := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, "admin"))
	{
		admin.POST("/staff", authCtrl.CreateStaff)
		admin.POST("/tables", tableCtrl.Create)

		admin.POST("/categories", catalogCtrl.CreateCategory)
		admin.PATCH("/categories/:id", catalogCtrl.UpdateCategory)
		admin.DELETE("/categories/:id", catalogCtrl.DeleteCategory)

		admin.POST("/menu-items", catalogCtrl.CreateMenuItem)
		admin.PATCH("/menu-items/:id", catalogCtrl.UpdateMenuItem)
		admin.DELETE("/menu-items/:id", catalogCtrl.DeleteMenuItem)
		admin.POST("/menu-items/:id/modifier-groups", catalogCtrl.AttachModifierGroup)
		admin.DELETE("/menu-items/:id/modifier-groups/:groupId", catalogCtrl.DetachModifierGroup)

		admin.POST("/modifier-groups", catalogCtrl.CreateModifierGroup)
		admin.PATCH("/modifier-groups/:id", catalogCtrl.UpdateModifierGroup)
		admin.DELETE("/modifier-groups/:id", catalogCtrl.DeleteModifierGroup)
		admin.POST("/modifier-items", catalogCtrl.CreateModifierItem)
		admin.PATCH("/modifier-items/:id", catalogCtrl.UpdateModifierItem)
		admin.DELETE("/modifier-items/:id", catalogCtrl.DeleteModifierItem)
	}
}
