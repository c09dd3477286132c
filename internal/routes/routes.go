package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/gamevault/internal/config"
	"github.com/example/gamevault/internal/handlers"
	"github.com/example/gamevault/internal/middleware"
	"github.com/example/gamevault/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	entitlementService := services.NewEntitlementService(db)
	cartService := services.NewCartService(db, entitlementService)
	activityService := services.NewActivityService(db)
	charger := &services.SimulatedCharger{Delay: cfg.ChargeDelay}
	checkoutService := services.NewCheckoutService(db, cartService, charger, activityService)

	authHandler := handlers.NewAuthHandler(db, cfg)
	gameHandler := handlers.NewGameHandler(db, entitlementService)
	cartHandler := handlers.NewCartHandler(cartService)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService)
	libraryHandler := handlers.NewLibraryHandler(db, activityService)
	wishlistHandler := handlers.NewWishlistHandler(db, entitlementService, activityService)
	profileHandler := handlers.NewProfileHandler(db, activityService)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Catalog reads; a token is optional and only enriches ownership flags
	games := api.Group("/games", middleware.OptionalAuthMiddleware(cfg))
	games.Get("/", gameHandler.ListGames)
	games.Get("/:id", gameHandler.GetGame)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/cart", cartHandler.GetCart)
	protected.Post("/cart", cartHandler.AddToCart)
	protected.Delete("/cart/:gameId", cartHandler.RemoveFromCart)
	protected.Delete("/cart", cartHandler.ClearCart)

	protected.Post("/checkout", checkoutHandler.Checkout)

	protected.Get("/library", libraryHandler.ListLibrary)
	protected.Post("/library/:id/install", libraryHandler.Install)
	protected.Post("/library/:id/uninstall", libraryHandler.Uninstall)
	protected.Post("/library/:id/play", libraryHandler.Play)

	protected.Get("/wishlist", wishlistHandler.ListWishlist)
	protected.Post("/wishlist", wishlistHandler.AddToWishlist)
	protected.Delete("/wishlist/:gameId", wishlistHandler.RemoveFromWishlist)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)
	protected.Get("/profile/activity", profileHandler.ListActivity)
}
