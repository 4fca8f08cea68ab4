package routes

import (
	"time"

	"github.com/dukapos/dukapos-api/internal/config"
	"github.com/dukapos/dukapos-api/internal/domain/entity"
	"github.com/dukapos/dukapos-api/internal/domain/enum"
	"github.com/dukapos/dukapos-api/internal/presentation/http/handler"
	"github.com/dukapos/dukapos-api/internal/presentation/http/middleware"
	"github.com/dukapos/dukapos-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Pos      *handler.PosHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Sale     *handler.SaleHandler
	Discount *handler.DiscountHandler
	Settings *handler.SettingsHandler
	User     *handler.UserHandler
	Printer  *handler.PrinterHandler
	Report   *handler.ReportHandler
	Mpesa    *handler.MpesaHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Daraja posts payment results here; it cannot carry our tokens
		v1.POST("/mpesa/callback", h.Mpesa.Callback)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/password", h.Auth.ChangePassword)

	registerPosRoutes(protected, h)
	registerProductRoutes(protected, h)
	registerCategoryRoutes(protected, h)
	registerSaleRoutes(protected, h)
	registerDiscountRoutes(protected, h)
	registerSettingsRoutes(protected, h)
	registerReportRoutes(protected, h)
	registerUserRoutes(protected, h)
	registerPrinterRoutes(protected, h)
	registerMpesaRoutes(protected, h)
}

func registerPosRoutes(protected *gin.RouterGroup, h *Handlers) {
	pos := protected.Group("/pos")
	{
		pos.GET("/cart", h.Pos.GetCart)
		pos.DELETE("/cart", h.Pos.ClearCart)
		pos.POST("/cart/items", h.Pos.AddItem)
		pos.PUT("/cart/items/:line_id/quantity", h.Pos.SetQuantity)
		pos.DELETE("/cart/items/:line_id", h.Pos.RemoveItem)
		pos.PUT("/cart/items/:line_id/price",
			middleware.RequirePermission(entity.PermissionEditPrices), h.Pos.OverridePrice)
		pos.PUT("/cart/items/:line_id/discount", h.Pos.ApplyLineDiscount)
		pos.PUT("/cart/sale-type", h.Pos.SwitchSaleType)
		pos.PUT("/cart/discount", h.Pos.ApplyDiscount)
		pos.PUT("/cart/discount/preset", h.Pos.ApplyPresetDiscount)
		pos.DELETE("/cart/discount", h.Pos.ClearDiscount)

		pos.POST("/hold", h.Pos.HoldSale)
		pos.GET("/held", h.Pos.ListHeldSales)
		pos.POST("/held/:id/resume", h.Pos.ResumeSale)

		pos.POST("/pay", h.Pos.Pay)
		pos.POST("/pay/split", h.Pos.PaySplit)
		pos.POST("/sales/:id/cancel",
			middleware.RequirePermission(entity.PermissionVoidSales), h.Pos.CancelSale)
	}
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.GET("/barcode/:barcode", h.Product.GetByBarcode)
		products.GET("/:id", h.Product.Get)

		admin := products.Group("")
		admin.Use(middleware.RequireRole(enum.UserRoleAdmin.String()))
		{
			admin.POST("", h.Product.Create)
			admin.PUT("/:id", h.Product.Update)
			admin.DELETE("/:id", h.Product.Delete)
		}
	}
}

func registerCategoryRoutes(protected *gin.RouterGroup, h *Handlers) {
	categories := protected.Group("/categories")
	{
		categories.GET("", h.Category.List)

		admin := categories.Group("")
		admin.Use(middleware.RequireRole(enum.UserRoleAdmin.String()))
		{
			admin.POST("", h.Category.Create)
			admin.PUT("/:id", h.Category.Update)
			admin.DELETE("/:id", h.Category.Delete)
		}
	}
}

func registerSaleRoutes(protected *gin.RouterGroup, h *Handlers) {
	sales := protected.Group("/sales")
	{
		sales.GET("", h.Sale.List)
		sales.GET("/receipt/:receipt_number", h.Sale.GetByReceipt)
		sales.GET("/:id", h.Sale.Get)
		sales.DELETE("/held/:id", h.Sale.DeleteHeld)
	}
}

func registerDiscountRoutes(protected *gin.RouterGroup, h *Handlers) {
	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.GET("/:id", h.Discount.Get)

		admin := discounts.Group("")
		admin.Use(middleware.RequireRole(enum.UserRoleAdmin.String()))
		{
			admin.POST("", h.Discount.Create)
			admin.PUT("/:id", h.Discount.Update)
			admin.DELETE("/:id", h.Discount.Delete)
		}
	}
}

func registerSettingsRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Settings.Get)
		settings.PUT("", middleware.RequireRole(enum.UserRoleAdmin.String()), h.Settings.Update)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(entity.PermissionViewReports))
	{
		reports.GET("/summary", h.Report.SalesSummary)
		reports.GET("/top-products", h.Report.TopProducts)
		reports.GET("/daily", h.Report.DailySales)
		reports.GET("/attendants", h.Report.SalesByAttendant)
		reports.GET("/stock", h.Report.StockReport)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequireRole(enum.UserRoleAdmin.String()))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printers := protected.Group("/printers")
	{
		printers.GET("/status", h.Printer.Status)
		printers.POST("/test", h.Printer.TestPrint)
		printers.POST("/receipt", h.Printer.PrintReceipt)

		admin := printers.Group("")
		admin.Use(middleware.RequireRole(enum.UserRoleAdmin.String()))
		{
			admin.GET("", h.Printer.List)
			admin.POST("", h.Printer.Create)
			admin.PUT("/:id", h.Printer.Update)
			admin.PUT("/:id/default", h.Printer.SetDefault)
			admin.DELETE("/:id", h.Printer.Delete)
		}
	}
}

func registerMpesaRoutes(protected *gin.RouterGroup, h *Handlers) {
	mpesa := protected.Group("/mpesa")
	{
		mpesa.POST("/stk-push", h.Mpesa.InitiateSTKPush)
		mpesa.GET("/status/:checkout_request_id", h.Mpesa.CheckStatus)
		mpesa.GET("/sales/:sale_id", h.Mpesa.ListBySale)
	}
}
