package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/daneswara/kafe-pos/config"
	"github.com/daneswara/kafe-pos/controllers"
	"github.com/daneswara/kafe-pos/mailer"
	"github.com/daneswara/kafe-pos/middlewares"
	"github.com/daneswara/kafe-pos/services"
)

func SetupRouter(db *gorm.DB, mails *mailer.Queue, cache *services.CacheService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.NewRateLimiter(100, 60).RateLimit())

	// File upload hanya boleh diakses sebagai gambar
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/uploads/") {
			lower := strings.ToLower(c.Request.URL.Path)
			if !strings.HasSuffix(lower, ".jpg") &&
				!strings.HasSuffix(lower, ".jpeg") &&
				!strings.HasSuffix(lower, ".png") &&
				!strings.HasSuffix(lower, ".gif") &&
				!strings.HasSuffix(lower, ".webp") {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
		}
		c.Next()
	})
	r.Static("/uploads", "./public/uploads")

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	if !config.IsProduction() {
		r.StaticFile("/api/docs", "./docs/openapi.json")
	}

	authController := controllers.NewAuthController(db, mails)
	userController := controllers.NewUserController(db)
	roleController := controllers.NewRoleController(db, cache)
	menuController := controllers.NewMenuController(db, cache)
	categoryController := controllers.NewCategoryController(db)
	productController := controllers.NewProductController(db)
	tableController := controllers.NewTableController(db)
	customerController := controllers.NewCustomerController(db)
	discountController := controllers.NewDiscountController(db)
	orderController := controllers.NewOrderController(db)
	transactionController := controllers.NewTransactionController(db)
	uploadController := controllers.NewUploadController(db)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(middlewares.NewStrictRateLimiter())
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.Refresh)
		auth.GET("/verify-email", authController.VerifyEmail)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.POST("/auth/logout", authController.Logout)
		protected.POST("/auth/switch-role", authController.SwitchRole)
		protected.GET("/auth/profile", authController.GetProfile)
		protected.GET("/menus/accessible", menuController.GetAccessibleMenus)

		admin := protected.Group("")
		admin.Use(middlewares.RequireRoles("ADMIN"))
		{
			admin.GET("/users", userController.GetAllUsers)
			admin.GET("/users/:uuid", userController.GetUserByUUID)
			admin.POST("/users", userController.CreateUser)
			admin.PATCH("/users/:uuid", userController.UpdateUser)
			admin.DELETE("/users/:uuid", userController.DeleteUser)

			admin.GET("/roles", roleController.GetAllRoles)
			admin.GET("/roles/:uuid", roleController.GetRoleByUUID)
			admin.POST("/roles", roleController.CreateRole)
			admin.PATCH("/roles/:uuid", roleController.UpdateRole)
			admin.DELETE("/roles/:uuid", roleController.DeleteRole)
			admin.PUT("/roles/:uuid/menus", roleController.UpdateMenuAccess)

			admin.GET("/menus", menuController.GetMenuTree)
			admin.GET("/menus/:uuid", menuController.GetMenuByUUID)
			admin.POST("/menus", menuController.CreateMenu)
			admin.PATCH("/menus/:uuid", menuController.UpdateMenu)
			admin.DELETE("/menus/:uuid", menuController.DeleteMenu)

			admin.POST("/categories", categoryController.CreateCategory)
			admin.PATCH("/categories/:uuid", categoryController.UpdateCategory)
			admin.DELETE("/categories/:uuid", categoryController.DeleteCategory)

			admin.POST("/products", productController.CreateProduct)
			admin.PATCH("/products/:uuid", productController.UpdateProduct)
			admin.DELETE("/products/:uuid", productController.DeleteProduct)

			admin.POST("/tables", tableController.CreateTable)
			admin.PATCH("/tables/:uuid", tableController.UpdateTable)
			admin.DELETE("/tables/:uuid", tableController.DeleteTable)

			admin.POST("/discounts", discountController.CreateDiscount)
			admin.PATCH("/discounts/:uuid", discountController.UpdateDiscount)
			admin.DELETE("/discounts/:uuid", discountController.DeleteDiscount)

			admin.DELETE("/customers/:uuid", customerController.DeleteCustomer)

			admin.POST("/transactions/:uuid/refund", transactionController.RefundTransaction)
			admin.GET("/reports/daily", transactionController.GetDailyReport)

			admin.POST("/uploads/images", uploadController.UploadImage)
			admin.GET("/media", uploadController.GetAllMedia)
			admin.DELETE("/media/:uuid", uploadController.DeleteMedia)
		}

		// Operasional kasir/pelayan
		staff := protected.Group("")
		staff.Use(middlewares.RequireRoles("ADMIN", "USER"))
		{
			staff.GET("/categories", categoryController.GetAllCategories)
			staff.GET("/categories/:uuid", categoryController.GetCategoryByUUID)

			staff.GET("/products", productController.GetAllProducts)
			staff.GET("/products/:uuid", productController.GetProductByUUID)

			staff.GET("/tables", tableController.GetAllTables)
			staff.GET("/tables/:uuid", tableController.GetTableByUUID)
			staff.PATCH("/tables/:uuid/status", tableController.UpdateTableStatus)

			staff.GET("/customers", customerController.GetAllCustomers)
			staff.GET("/customers/:uuid", customerController.GetCustomerByUUID)
			staff.POST("/customers", customerController.CreateCustomer)
			staff.PATCH("/customers/:uuid", customerController.UpdateCustomer)
			staff.POST("/customers/:uuid/points", customerController.AdjustPoints)

			staff.GET("/discounts", discountController.GetAllDiscounts)
			staff.GET("/discounts/:uuid", discountController.GetDiscountByUUID)
			staff.POST("/discounts/validate", discountController.ValidateDiscount)

			staff.GET("/orders", orderController.GetAllOrders)
			staff.GET("/orders/:uuid", orderController.GetOrderByUUID)
			staff.POST("/orders", orderController.CreateOrder)
			staff.PATCH("/orders/:uuid/status", orderController.UpdateOrderStatus)
			staff.POST("/orders/:uuid/items", orderController.AddItems)
			staff.PATCH("/orders/:uuid/items/:item_uuid/status", orderController.UpdateItemStatus)

			staff.GET("/transactions", transactionController.GetAllTransactions)
			staff.GET("/transactions/:uuid", transactionController.GetTransactionByUUID)
			staff.POST("/transactions", transactionController.CreateTransaction)
		}
	}

	return r
}
