package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/guardtag/GuardTag/app/controllers"
	"github.com/guardtag/GuardTag/internal/pkg/middleware"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())

	// Public tag surface
	qr := api.Group("/qr")
	qr.Post("/", controllers.HandleCreateQR)
	qr.Get("/p/:code", controllers.HandlePublicResolve)
	qr.Post("/:code/activate", controllers.HandleActivate)
	qr.Post("/:code/contact", controllers.HandleContact)
	qr.Post("/:code/profile", controllers.HandleUpsertProfile)
	qr.Get("/:code/profile", controllers.HandleGetProfile)
	qr.Get("/:code", middleware.RequireAdminAPI, controllers.HandleGetQR)

	// Admin panel surface; stricter limiter than the public group
	admin := api.Group("/admin", limiter.New(limiter.Config{
		Max:        30,
		Expiration: 1 * time.Minute,
	}))
	admin.Post("/login", controllers.HandleLogin)
	admin.Post("/logout", controllers.HandleLogout)

	admin.Post("/generate-batch", middleware.RequireAdminAPI, controllers.HandleGenerateBatch)
	admin.Post("/orders", middleware.RequireAdminAPI, controllers.HandleCreateOrder)
	admin.Get("/orders", middleware.RequireAdminAPI, controllers.HandleListOrders)
	admin.Get("/batches", middleware.RequireAdminAPI, controllers.HandleListBatches)
	admin.Get("/inventory", middleware.RequireAdminAPI, controllers.HandleInventory)
	admin.Get("/qrs", middleware.RequireAdminAPI, controllers.HandleListQRs)
	admin.Get("/stats", middleware.RequireAdminAPI, controllers.HandleStats)
	admin.Post("/subscription/:code", middleware.RequireAdminAPI, controllers.HandleSubscription)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
