package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guardtag/GuardTag/app/controllers"
	"github.com/guardtag/GuardTag/internal/pkg/middleware"
	"github.com/guardtag/GuardTag/internal/pkg/session"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// init session
	session.NewSessionStore()

	// Apply UserContext middleware globally as first middleware
	app.Use(middleware.UserContextMiddleware)

	// Initialize controllers with repositories
	controllers.InitializeQRController()
	controllers.InitializeAuthController()
	controllers.InitializeAdminController()

	h.registerPublicRoutes(app)
}

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// Scan entry printed on the sticker
	app.Get("/q/:code", controllers.HandleScanRedirect)

	// Load balancer health check
	app.Get("/health", controllers.HandleHealth)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
