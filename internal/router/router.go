package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/asozialesnetzwerk/zitate-go/internal/handler"
	"github.com/asozialesnetzwerk/zitate-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Pair   *handler.PairHandler
	Vote   *handler.VoteHandler
	Quote  *handler.QuoteHandler
	Author *handler.AuthorHandler
	Stats  *handler.StatsHandler
	Sync   *handler.SyncHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins, cookieName string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics (before API group)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	pairLimit := middleware.NewPairRateLimiter().Handler()
	voteLimit := middleware.NewVoteRateLimiter(cookieName).Handler()
	syncLimit := middleware.NewSyncRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()

	api := app.Group("/api")

	// Pair routes. "next" before ":id" so the literal segment wins.
	api.Get("/zitate/next", h.Pair.Next, pairLimit)
	api.Get("/zitate/info/z/:quoteId", h.Quote.GetQuote, pairLimit)
	api.Get("/zitate/info/a/:authorId", h.Quote.GetAuthor, pairLimit)
	api.Get("/zitate/:id", h.Pair.GetByID, pairLimit)

	// Vote routes
	api.Post("/votes", h.Vote.Submit, voteLimit)
	api.Delete("/votes", h.Vote.Retract, voteLimit)

	// Author aggregates
	api.Get("/authors/:authorId/stats", h.Author.GetStats, pairLimit)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, statsLimit)

	// Sync routes
	api.Get("/sync/delta", h.Sync.DeltaSync, syncLimit)
	api.Get("/sync/full", h.Sync.FullSync, syncLimit)
}
