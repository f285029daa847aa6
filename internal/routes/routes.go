package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/kudipay/internal/billing"
	"github.com/example/kudipay/internal/cache"
	"github.com/example/kudipay/internal/config"
	"github.com/example/kudipay/internal/handlers"
	"github.com/example/kudipay/internal/middleware"
	"github.com/example/kudipay/internal/recent"
	"github.com/example/kudipay/internal/wallet"
	"github.com/example/kudipay/internal/workflow"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, kv *cache.Store, client *billing.Client, cfg *config.Config) {
	balances := wallet.NewCache(kv, client)
	recents := recent.NewStore(kv)
	snapshots := workflow.NewSnapshots(kv)
	engine := workflow.NewEngine(client, balances, recents, db)

	authHandler := handlers.NewAuthHandler(db, cfg)
	purchaseHandler := handlers.NewPurchaseHandler(engine, client, snapshots)
	walletHandler := handlers.NewWalletHandler(balances)
	catalogHandler := handlers.NewCatalogHandler(client)
	recentHandler := handlers.NewRecentHandler(recents)
	historyHandler := handlers.NewHistoryHandler(db)
	formHandler := handlers.NewFormHandler(snapshots)

	limiter := middleware.NewPurchaseLimiter()

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Catalog routes are app-level: the provider is queried under the
	// service credential.
	api.Get("/data/plans/:network", catalogHandler.DataPlans)
	api.Get("/cable/packages/:operator", catalogHandler.CablePackages)
	api.Get("/electricity/providers", catalogHandler.ElectricityProviders)
	api.Get("/internet/provider/:code/plans", catalogHandler.InternetPlans)
	api.Post("/cable/validate-smartcard", catalogHandler.ValidateSmartcard)
	api.Post("/electricity/validate-meter", catalogHandler.ValidateMeter)

	api.Get("/network/detect", purchaseHandler.DetectNetwork)

	// Protected routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	protected.Get("/profile", authHandler.Profile)

	protected.Get("/balance", walletHandler.Balance)
	protected.Get("/balance/cached", walletHandler.CachedBalance)

	protected.Get("/purchase/pin-status", purchaseHandler.PinStatus)
	protected.Post("/purchase/review", purchaseHandler.Review)
	protected.Post("/purchase", limiter.Handler(), purchaseHandler.Submit)

	protected.Get("/recents/:type", recentHandler.List)
	protected.Delete("/recents/:type", recentHandler.Clear)

	protected.Get("/forms/:type", formHandler.Get)
	protected.Put("/forms/:type", formHandler.Save)
	protected.Delete("/forms/:type", formHandler.Clear)

	protected.Get("/history", historyHandler.List)
	protected.Get("/history/:id", historyHandler.Get)
}
