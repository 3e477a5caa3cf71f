package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/asozialesnetzwerk/zitate-go/internal/config"
	"github.com/asozialesnetzwerk/zitate-go/internal/db"
	"github.com/asozialesnetzwerk/zitate-go/internal/handler"
	"github.com/asozialesnetzwerk/zitate-go/internal/middleware"
	"github.com/asozialesnetzwerk/zitate-go/internal/repository"
	"github.com/asozialesnetzwerk/zitate-go/internal/router"
	"github.com/asozialesnetzwerk/zitate-go/internal/service"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "zitate-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	handler.InitMetrics(pool)

	// Repositories
	quoteRepo := repository.NewQuoteRepo(pool)
	wrongQuoteRepo := repository.NewWrongQuoteRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	authorRepo := repository.NewAuthorRepo(pool)

	// Services
	identitySvc := service.NewIdentityService(cfg.IdentitySalt)
	ratingSvc := service.NewRatingService(voteRepo, cache)
	selectionSvc := service.NewSelectionService(wrongQuoteRepo, quoteRepo, cfg.SelectionSeed)
	wrongQuoteSvc := service.NewWrongQuoteService(quoteRepo, wrongQuoteRepo, ratingSvc, selectionSvc)
	voteSvc := service.NewVoteService(wrongQuoteRepo, ratingSvc, selectionSvc)
	authorSvc := service.NewAuthorService(authorRepo, cache)
	syncSvc := service.NewSyncService(wrongQuoteRepo, authorRepo)

	// Background workers
	ratingWorker := service.NewRatingWorker(pool, wrongQuoteRepo, cache)
	go ratingWorker.Start(ctx)

	authorWorker := service.NewAuthorWorker(pool, cache, 15*time.Minute)
	go authorWorker.Start(ctx)

	app := fiber.New(fiber.Config{
		AppName:      "Zitate API",
		ServerHeader: "Zitate",
	})

	router.Setup(app, &router.Handlers{
		Pair:   handler.NewPairHandler(wrongQuoteSvc, selectionSvc, identitySvc, cfg.CookieName),
		Vote:   handler.NewVoteHandler(voteSvc, identitySvc, cfg.CookieName),
		Quote:  handler.NewQuoteHandler(quoteRepo),
		Author: handler.NewAuthorHandler(authorSvc),
		Stats:  handler.NewStatsHandler(quoteRepo),
		Sync:   handler.NewSyncHandler(syncSvc),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins, cfg.CookieName)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("zitate backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
