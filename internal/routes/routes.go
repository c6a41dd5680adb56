package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/wigglew/wigglew_auth/internal/config"
	"github.com/wigglew/wigglew_auth/internal/hash"
	"github.com/wigglew/wigglew_auth/internal/identity"
	"github.com/wigglew/wigglew_auth/internal/middleware"
	"github.com/wigglew/wigglew_auth/internal/notification"
	"github.com/wigglew/wigglew_auth/internal/otp"
	"github.com/wigglew/wigglew_auth/internal/token"
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
	// Postgres and Redis are mandatory outside of dev; dev falls back to
	// in-memory stores so the service runs standalone.
	if !isDev(d.Cfg.AppEnv) {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	var userRepo identity.Repository
	if d.DB != nil {
		userRepo = identity.NewPostgresRepository(d.DB)
	} else {
		userRepo = identity.NewMemoryRepository()
	}

	notifier := notification.NewLoggerNotifier(d.Logger)

	var otpProvider identity.OTPProvider
	if d.Cache != nil {
		otpProvider = otp.NewRedisProvider(d.Cache, notifier, d.Cfg.OTPTTL, d.Cfg.OTPLength)
	} else {
		otpProvider = otp.NewMemoryProvider(notifier, d.Cfg.OTPTTL, d.Cfg.OTPLength)
	}

	hasher := hash.NewBcrypt(0)
	issuer := token.NewIssuer(d.Cfg.JWTSecret, d.Cfg.AccessTokenTTL)

	authSvc := identity.NewService(userRepo, hasher, otpProvider, issuer, d.Cfg.CountryPrefix, d.Logger)
	authHandler := identity.NewHandler(authSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes: the authorization layer verifying session tokens.
	jwtmw := middleware.JWTAuth(issuer)
	protected := api.Group("", jwtmw)
	protected.Get("/me", func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		if uid == "" {
			return c.SendStatus(http.StatusUnauthorized)
		}
		user, err := userRepo.FindByID(c.UserContext(), uid)
		if err != nil {
			return fiber.NewError(http.StatusUnauthorized, "user not found")
		}
		return c.JSON(fiber.Map{
			"user_id":             user.ID,
			"full_name":           user.FullName,
			"phone":               user.Phone,
			"role":                user.Role,
			"verification_status": user.Status,
			"created_at":          user.CreatedAt,
		})
	})

	return nil
}

func isDev(env string) bool {
	switch strings.ToLower(env) {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}
