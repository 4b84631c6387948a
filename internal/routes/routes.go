package routes

import (
	"time"

	"github.com/campustrack/backend/internal/config"
	"github.com/campustrack/backend/internal/handlers"
	"github.com/campustrack/backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	reportHandler *handlers.ReportHandler,
	matchHandler *handlers.MatchHandler,
	messageHandler *handlers.MessageHandler,
	notificationHandler *handlers.NotificationHandler,
	assistantHandler *handlers.AssistantHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", handlers.Health)

	jwt := middleware.JWTProtected(cfg)

	// Reports
	api.Post("/lost-items", jwt, reportHandler.CreateLost)
	api.Get("/lost-items/mine", jwt, reportHandler.ListMyLost)
	api.Post("/found-items", jwt, reportHandler.CreateFound)
	api.Get("/found-items/mine", jwt, reportHandler.ListMyFound)

	// Matches — listing, rescans and lifecycle transitions
	user := api.Group("/user", jwt)
	user.Get("/matches", matchHandler.ListMine)
	user.Post("/matches/rescan", matchHandler.Rescan)
	user.Post("/matches/:id/claim", matchHandler.Claim)
	user.Post("/matches/:id/reject", matchHandler.Reject)
	user.Post("/matches/:id/submit", matchHandler.MarkSubmitted)
	user.Post("/matches/:id/receive", matchHandler.MarkReceived)

	// Per-match conversation (participants only, enforced in the service)
	user.Get("/matches/:id/messages", messageHandler.List)
	user.Post("/matches/:id/messages", messageHandler.Post)

	// Notification feed
	api.Get("/notifications", jwt, notificationHandler.List)
	api.Get("/notifications/unread-count", jwt, notificationHandler.UnreadCount)
	api.Put("/notifications/:id/read", jwt, notificationHandler.MarkRead)
	api.Put("/notifications/read-all", jwt, notificationHandler.MarkAllRead)

	// Admin panel (protected + admin required)
	admin := api.Group("/admin", jwt, middleware.AdminRequired(cfg))
	admin.Post("/matches", matchHandler.CreateAdminMatch)
	admin.Get("/matches/scan", matchHandler.InteractiveScan)

	// AI assistant — stricter rate limit, the upstream model is metered
	ai := api.Group("/assistant", jwt, limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	ai.Post("/chat", assistantHandler.Chat)
	ai.Post("/search", assistantHandler.Search)
	ai.Post("/matches", assistantHandler.CreateMatch)
}
