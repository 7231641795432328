package router

import (
	authsvc "wasteline-backend/internal/application/auth"
	collsvc "wasteline-backend/internal/application/collectors"
	listsvc "wasteline-backend/internal/application/listings"
	"wasteline-backend/internal/application/notifications"
	repsvc "wasteline-backend/internal/application/reports"
	upsvc "wasteline-backend/internal/application/uploads"
	"wasteline-backend/internal/config"
	"wasteline-backend/internal/infrastructure/database"
	authhandlers "wasteline-backend/internal/interfaces/handlers/auth"
	collhandlers "wasteline-backend/internal/interfaces/handlers/collectors"
	healthhandlers "wasteline-backend/internal/interfaces/handlers/health"
	listhandlers "wasteline-backend/internal/interfaces/handlers/listings"
	rephandlers "wasteline-backend/internal/interfaces/handlers/reports"
	uphandlers "wasteline-backend/internal/interfaces/handlers/uploads"
	"wasteline-backend/internal/middleware"
	"wasteline-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// gormPinger adapts a gorm.DB to the health check's DBPinger.
type gormPinger struct {
	db *gorm.DB
}

func (p *gormPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route
// registration.
func CreateApp(cfg *config.Config) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Redis is optional: without it health counters and registration
	// notifications are disabled, everything else still works.
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		rdb = redis.NewClient(opts)
	}

	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	// Health module (no auth)
	var pinger *gormPinger
	if db != nil {
		pinger = &gormPinger{db: db}
	}
	healthH := &healthhandlers.Handlers{
		Rdb:      rdb,
		AdminKey: cfg.HealthAdminKey,
	}
	if pinger != nil {
		healthH.DB = pinger
	}
	app.Get("/", healthH.Root)
	app.Get("/health/json", healthH.JSON)
	app.Post("/health/reset", healthH.Reset)

	// db may be nil if DATABASE_URL not set (e.g. smoke tests); protected
	// modules are only mounted when it is available.
	if db == nil {
		return app, nil
	}

	var sender notifications.Sender
	if cfg.MailAPIKey != "" {
		sender = &notifications.BrevoClient{
			APIKey:   cfg.MailAPIKey,
			MailFrom: cfg.MailFrom,
		}
	}
	dispatcher := &notifications.Dispatcher{Sender: sender, Rdb: rdb}

	// Auth module: registration and login are public, /me requires a token.
	authService := &authsvc.Service{
		DB:         db,
		JWTSecret:  cfg.JWTSecret,
		JWTTTL:     cfg.JWTTTL,
		Dispatcher: dispatcher,
	}
	authH := &authhandlers.Handlers{Service: authService}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authH.Register)
	authGroup.Post("/register/collector", authH.RegisterCollector)
	authGroup.Post("/login", authH.Login)
	authGroup.Get("/me", middleware.RequireAuth(cfg.JWTSecret), authH.Me)

	// Listings module: search and detail are public, writes are role gated.
	listingsService := &listsvc.Service{DB: db}
	listingsH := &listhandlers.Handlers{Service: listingsService}
	listingsGroup := app.Group("/api/v1/listings")
	listingsGroup.Get("/", listingsH.List)
	listingsGroup.Post("/", middleware.RequireAuth(cfg.JWTSecret), middleware.AuthorizePermission(constants.CreateListing), listingsH.Create)
	listingsGroup.Get("/mine", middleware.RequireAuth(cfg.JWTSecret), listingsH.Mine)
	listingsGroup.Get("/reservations", middleware.RequireAuth(cfg.JWTSecret), middleware.AuthorizePermission(constants.TransitionListing), listingsH.Reservations)
	listingsGroup.Get("/:id", listingsH.GetByID)
	listingsGroup.Patch("/:id/status", middleware.RequireAuth(cfg.JWTSecret), middleware.AuthorizePermission(constants.TransitionListing), listingsH.Transition)
	listingsGroup.Get("/:id/events", middleware.RequireAuth(cfg.JWTSecret), listingsH.Events)

	// Collectors module: directory is public, status toggle is collector only.
	collectorsService := &collsvc.Service{DB: db}
	collectorsH := &collhandlers.Handlers{Service: collectorsService}
	collectorsGroup := app.Group("/api/v1/collectors")
	collectorsGroup.Get("/", collectorsH.Search)
	collectorsGroup.Patch("/status", middleware.RequireAuth(cfg.JWTSecret), middleware.AuthorizePermission(constants.UpdateOwnStatus), collectorsH.UpdateStatus)
	collectorsGroup.Get("/:id", collectorsH.GetByID)

	// Reports module (auth required, creation resident gated)
	reportsService := &repsvc.Service{DB: db}
	reportsH := &rephandlers.Handlers{Service: reportsService}
	reportsGroup := app.Group("/api/v1/reports", middleware.RequireAuth(cfg.JWTSecret))
	reportsGroup.Post("/", middleware.AuthorizePermission(constants.CreateReport), reportsH.Create)
	reportsGroup.Get("/mine", reportsH.Mine)
	reportsGroup.Get("/:id", reportsH.GetByID)
	reportsGroup.Patch("/:id/status", reportsH.UpdateStatus)

	// Uploads module (auth required)
	storageClient := &upsvc.HTTPClient{
		BaseURL:   cfg.StorageURL,
		SecretKey: cfg.StorageSecretKey,
	}
	uploadsService := &upsvc.Service{
		Client:     storageClient,
		StorageURL: cfg.StorageURL,
	}
	uploadsH := &uphandlers.Handlers{Service: uploadsService}
	uploadsGroup := app.Group("/api/v1/uploads", middleware.RequireAuth(cfg.JWTSecret))
	uploadsGroup.Post("/listing-image", uploadsH.SignListingImage)
	uploadsGroup.Post("/report-image", uploadsH.SignReportImage)

	return app, nil
}
