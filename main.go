package main

import (
	"context"
	"net/http"
	"os"
	"time"

	ghandlers "github.com/gorilla/handlers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Sara-kerr/Ecommerce-MERN/cache"
	"github.com/Sara-kerr/Ecommerce-MERN/cart"
	"github.com/Sara-kerr/Ecommerce-MERN/checkout"
	"github.com/Sara-kerr/Ecommerce-MERN/config"
	"github.com/Sara-kerr/Ecommerce-MERN/database"
	"github.com/Sara-kerr/Ecommerce-MERN/handlers"
	"github.com/Sara-kerr/Ecommerce-MERN/router"
	"github.com/Sara-kerr/Ecommerce-MERN/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(os.Stdout)

	client, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info().Str("database", cfg.Database).Msg("connected to MongoDB")

	if err := database.EnsureIndexes(client, cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("creating indexes")
	}

	// A down Redis only disables caching; reads fall through to Mongo.
	if err := cache.Init(cfg.Redis); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	utils.NewProductCacheJob(client, cfg.Database, 10*time.Minute).Start(ctx)

	carts := cart.NewStore()
	workflow := checkout.New(checkout.NewMongoStore(client, cfg.Database), carts)
	h := handlers.New(client, cfg.Database, carts, workflow)

	cors := ghandlers.CORS(
		ghandlers.AllowedOrigins(cfg.AllowedOrigins),
		ghandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		ghandlers.AllowedHeaders([]string{"Content-Type", handlers.SessionHeader}),
		ghandlers.ExposedHeaders([]string{handlers.SessionHeader}),
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      cors(router.SetupRoutes(h)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Info().Str("port", cfg.Port).Msg("server listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
