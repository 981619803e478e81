package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/poggerdex/poggerdex/internal/admin"
	"github.com/poggerdex/poggerdex/internal/capture"
	"github.com/poggerdex/poggerdex/internal/collection"
	"github.com/poggerdex/poggerdex/internal/companion"
	"github.com/poggerdex/poggerdex/internal/config"
	"github.com/poggerdex/poggerdex/internal/identity"
	"github.com/poggerdex/poggerdex/internal/middleware"
	"github.com/poggerdex/poggerdex/internal/notification"
	"github.com/poggerdex/poggerdex/internal/pokedex"
	"github.com/poggerdex/poggerdex/internal/quota"
	"github.com/poggerdex/poggerdex/internal/ranking"
	"github.com/poggerdex/poggerdex/internal/session"
	"github.com/poggerdex/poggerdex/internal/trade"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Sessions live in Redis, so the cache is mandatory in every
	// environment. The database may be absent in dev; memory
	// repositories fill in.
	if d.Cache == nil {
		return fmt.Errorf("redis is required for session storage")
	}
	if !d.Cfg.IsDev() && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	if d.Cfg.IsDev() {
		// Plain text access log: [HH:MM:SS] 200 -  145ms METHOD /path
		app.Use(logger.New(logger.Config{
			Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
			TimeFormat: "15:04:05",
			TimeZone:   "Local",
		}))
	}
	app.Use(middleware.Audit(d.Logger))

	// Health
	RegisterHealthRoutes(app, d)

	// Repositories, with in-memory fallbacks for dev without a database.
	var (
		identityRepo  identity.Repository
		captureRepo   capture.Repository
		quotaRepo     quota.Repository
		companionRepo companion.Repository
		tradeRepo     trade.Repository
		rankingRepo   ranking.Repository
	)
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		captureRepo = capture.NewPostgresRepository(d.DB)
		quotaRepo = quota.NewPostgresRepository(d.DB)
		companionRepo = companion.NewPostgresRepository(d.DB)
		tradeRepo = trade.NewPostgresRepository(d.DB)
		rankingRepo = ranking.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		captureRepo = capture.NewMemoryRepository()
		quotaRepo = quota.NewMemoryRepository()
		companionRepo = companion.NewMemoryRepository()
		tradeRepo = trade.NewMemoryRepository()
		rankingRepo = ranking.NewMemoryRepository()
	}

	// Services and handlers
	sessions := session.NewStore(d.Cache, d.Cfg.SessionTTL)
	catalog := pokedex.NewClient(d.Cfg.CatalogBaseURL)
	notifier := notification.NewLoggerNotifier(d.Logger)

	identitySvc := identity.NewService(identityRepo)
	quotaSvc := quota.NewService(quotaRepo, d.Cfg.HourlyQuota)
	companionSvc := companion.NewService(companionRepo)
	captureSvc := capture.NewService(catalog, captureRepo, quotaSvc, companionSvc, notifier)
	collectionSvc := collection.NewService(captureRepo)
	rankingSvc := ranking.NewService(rankingRepo)
	tradeSvc := trade.NewService(tradeRepo, captureRepo, notifier)

	authHandler := identity.NewHandler(identitySvc, sessions)
	quotaHandler := quota.NewHandler(quotaSvc)
	captureHandler := capture.NewHandler(captureSvc, catalog, d.Cfg.SpeciesLimit)
	collectionHandler := collection.NewHandler(collectionSvc)
	rankingHandler := ranking.NewHandler(rankingSvc)
	tradeHandler := trade.NewHandler(tradeSvc)
	companionHandler := companion.NewHandler(companionSvc)
	adminHandler := admin.NewHandler(identityRepo, captureSvc, quotaSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	throttle := middleware.LoginThrottle(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, throttle)

	// Protected routes
	authmw := middleware.SessionAuth(sessions)
	protected := api.Group("", authmw)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/me", func(c *fiber.Ctx) error {
		user, ok := c.Locals(middleware.CurrentUserKey).(session.User)
		if !ok {
			return c.SendStatus(http.StatusUnauthorized)
		}
		return c.JSON(fiber.Map{
			"id":       user.ID,
			"username": user.Username,
			"phone":    user.Phone,
			"is_admin": user.IsAdmin,
		})
	})

	RegisterCaptureRoutes(protected, captureHandler, quotaHandler, catalog, d.Cfg.SpeciesLimit)
	RegisterCollectionRoutes(protected, collectionHandler)
	RegisterRankingRoutes(protected, rankingHandler)
	RegisterTradeRoutes(protected, tradeHandler, middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	RegisterCompanionRoutes(protected, companionHandler)
	RegisterAdminRoutes(protected, adminHandler)

	return nil
}
