package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/septianhadinugroho/snack-iseng-service/config"
	"github.com/septianhadinugroho/snack-iseng-service/controllers"
	"github.com/septianhadinugroho/snack-iseng-service/middlewares"
	"github.com/septianhadinugroho/snack-iseng-service/services"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Inisialisasi service
	pushSvc := services.NewPushService(db, config.LoadPushConfig())
	ledgerSvc := services.NewLedgerService(db, pushSvc)
	importSvc := services.NewImportService(ledgerSvc)

	// Inisialisasi controller
	adminCtrl := controllers.NewAdminController(db)
	orderCtrl := controllers.NewOrderController(db, ledgerSvc, importSvc)
	expenseCtrl := controllers.NewExpenseController(db, ledgerSvc, importSvc)
	productCtrl := controllers.NewProductController(db)
	dashboardCtrl := controllers.NewDashboardController(db)
	historyCtrl := controllers.NewHistoryController(db)
	subscriptionCtrl := controllers.NewSubscriptionController(pushSvc)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter ketat untuk login/register
	public := r.Group("/api")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", adminCtrl.Register)
		public.POST("/login", adminCtrl.Login)
	}

	// Registrasi push notification (frontend service worker)
	r.GET("/api/vapid-public-key", subscriptionCtrl.GetVapidPublicKey)
	r.POST("/api/subscribe", subscriptionCtrl.Subscribe)

	// Feed dashboard real-time
	r.GET("/ws", controllers.WSHandler)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())

	auth.GET("/profile", adminCtrl.GetProfile)

	// DASHBOARD
	auth.GET("/dashboard", dashboardCtrl.GetDashboard)

	// PRODUCTS
	auth.GET("/products", productCtrl.GetAllProducts)
	auth.PUT("/products/:product_id", productCtrl.UpdateProduct)

	// ORDERS
	auth.GET("/orders", orderCtrl.GetAllOrders)
	auth.POST("/orders", orderCtrl.CreateOrder)
	auth.PUT("/orders/:order_id", orderCtrl.UpdateOrder)
	auth.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)
	auth.POST("/orders/import", orderCtrl.ImportOrders)
	auth.DELETE("/orders/reset/all", orderCtrl.ResetOrders)

	// EXPENSES
	auth.GET("/expenses", expenseCtrl.GetAllExpenses)
	auth.POST("/expenses", expenseCtrl.CreateExpense)
	auth.PUT("/expenses/:expense_id", expenseCtrl.UpdateExpense)
	auth.DELETE("/expenses/:expense_id", expenseCtrl.DeleteExpense)
	auth.DELETE("/expenses/items/:item_id", expenseCtrl.DeleteExpenseItem)
	auth.POST("/expenses/import", expenseCtrl.ImportExpenses)
	auth.DELETE("/expenses/reset/all", expenseCtrl.ResetExpenses)

	// HISTORY / NOTIFICATIONS
	auth.GET("/notifications", historyCtrl.GetAllHistory)
	auth.DELETE("/notifications/:log_id", historyCtrl.DeleteHistory)

	return r
}
