package http

import (
	"log/slog"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chamseddine-glitch/sha/internal/auth"
	"github.com/chamseddine-glitch/sha/internal/config"
	"github.com/chamseddine-glitch/sha/internal/http/handlers"
	"github.com/chamseddine-glitch/sha/internal/http/middleware"
	"github.com/chamseddine-glitch/sha/internal/http/signedcookie"
	"github.com/chamseddine-glitch/sha/internal/mailer"
	"github.com/chamseddine-glitch/sha/internal/modules/cart"
	"github.com/chamseddine-glitch/sha/internal/modules/describe"
	"github.com/chamseddine-glitch/sha/internal/modules/orders"
	"github.com/chamseddine-glitch/sha/internal/modules/settings"
	"github.com/chamseddine-glitch/sha/internal/remote"
	"github.com/chamseddine-glitch/sha/internal/storage"
)

// Deps carries everything the router wires together.
type Deps struct {
	Cfg     *config.Config
	DB      *gorm.DB
	Log     *slog.Logger
	Mailer  mailer.Service
	Uploads storage.Storage
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Server.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Log))
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.ErrorHandler(d.Log))

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  d.Cfg.Server.BaseURL == "",
		AllowOrigins:     corsOrigins(d.Cfg),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	secret := []byte(d.Cfg.Cookie.Secret)
	sessionCodec := signedcookie.New(secret, d.Cfg.Cookie.Session, d.Cfg.Cookie.Secure, d.Cfg.Admin.SessionTTL)
	cartCodec := signedcookie.New(secret, d.Cfg.Cookie.Cart, d.Cfg.Cookie.Secure, 30*24*time.Hour)
	profileCodec := signedcookie.New(secret, d.Cfg.Cookie.Profile, d.Cfg.Cookie.Secure, 365*24*time.Hour)

	binClient := remote.NewClient(d.Cfg.Remote)

	published := settings.NewPublishedStore(binClient, d.Cfg.Remote.SettingsBin)
	draftRepo := settings.NewRepo(d.DB)
	sync := settings.NewSynchronizer(published, draftRepo, d.Log)
	settingsSvc := settings.NewService(sync, draftRepo, published, d.Log)

	cartSvc := cart.NewService(cart.NewRepo(d.DB))

	orderStore := orders.NewStore(binClient, d.Cfg.Remote.OrdersBin)
	orderSvc := orders.NewService(orderStore, cartSvc, d.Mailer, d.Cfg.SMTP.From, d.Cfg.Admin.NotifyEmail, d.Log)
	tracker := orders.NewTracker(orders.NewSeenRepo(d.DB))

	sessions := auth.NewSessionStore(d.DB, d.Cfg.Admin.SessionTTL)
	authenticator := auth.NewConfigAuthenticator(d.Cfg.Admin.Username, d.Cfg.Admin.PasswordHash)

	var gen describe.Generator = describe.Noop{}
	if d.Cfg.Gen.Endpoint != "" {
		gen = describe.NewHTTPGenerator(d.Cfg.Gen.Endpoint, d.Cfg.Gen.APIKey, d.Cfg.Remote.Timeout)
	}

	storeH := handlers.NewStoreHandler(sync)
	cartH := handlers.NewCartHandler(cartCodec, cartSvc)
	checkoutH := handlers.NewCheckoutHandler(cartCodec, cartSvc, orderSvc, sync)
	authH := handlers.NewAuthHandler(authenticator, sessions, sessionCodec)
	adminSettingsH := handlers.NewAdminSettingsHandler(settingsSvc, sync)
	adminProductsH := handlers.NewAdminProductsHandler(settingsSvc, gen)
	adminOrdersH := handlers.NewAdminOrdersHandler(orderSvc, tracker)
	uploadsH := handlers.NewUploadHandler(d.Uploads)

	r.Use(middleware.Profile(profileCodec))

	api := r.Group("/api")
	{
		api.GET("/store", storeH.Get)
		api.GET("/store/products/:id", storeH.GetProduct)

		api.GET("/cart", cartH.Get)
		api.POST("/cart/items", cartH.Add)
		api.DELETE("/cart/items/:id", cartH.Remove)
		api.DELETE("/cart", cartH.Clear)

		api.POST("/checkout", checkoutH.Summary)
		api.POST("/orders", checkoutH.Place)
		api.POST("/orders/whatsapp", checkoutH.WhatsApp)

		api.POST("/admin/login", authH.Login)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminSession(sessionCodec, sessions))
	{
		admin.GET("/me", authH.Me)
		admin.POST("/logout", authH.Logout)
	}

	protected := admin.Group("")
	protected.Use(middleware.RequireAdmin())
	{
		protected.GET("/settings", adminSettingsH.Get)
		protected.PATCH("/settings", adminSettingsH.Update)
		protected.POST("/settings/publish", adminSettingsH.Publish)
		protected.DELETE("/settings/draft", adminSettingsH.DiscardDraft)

		protected.POST("/categories", adminSettingsH.AddCategory)
		protected.DELETE("/categories/:name", adminSettingsH.DeleteCategory)

		protected.POST("/products", adminProductsH.Add)
		protected.PUT("/products/:id", adminProductsH.Update)
		protected.DELETE("/products/:id", adminProductsH.Delete)
		protected.POST("/products/describe", adminProductsH.Describe)

		protected.GET("/orders", adminOrdersH.List)
		protected.POST("/orders/seen", adminOrdersH.MarkSeen)
		protected.POST("/orders/import", adminOrdersH.Import)
		protected.DELETE("/orders", adminOrdersH.Clear)

		protected.POST("/uploads", uploadsH.Upload)
	}

	if d.Cfg.Storage.Driver == "" || d.Cfg.Storage.Driver == "local" {
		r.Static(d.Cfg.Storage.LocalURL, d.Cfg.Storage.LocalDir)
	}

	return r
}

func corsOrigins(cfg *config.Config) []string {
	if cfg.Server.BaseURL == "" {
		return nil
	}
	return []string{cfg.Server.BaseURL}
}
