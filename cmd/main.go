package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Sunnyraj65/Delishly/internal/cart"
	"github.com/Sunnyraj65/Delishly/internal/catalog"
	"github.com/Sunnyraj65/Delishly/internal/checkout"
	"github.com/Sunnyraj65/Delishly/internal/config"
	h "github.com/Sunnyraj65/Delishly/internal/http"
	"github.com/Sunnyraj65/Delishly/internal/logger"
	"github.com/Sunnyraj65/Delishly/internal/orders"
	"github.com/Sunnyraj65/Delishly/internal/serviceability"
	"github.com/Sunnyraj65/Delishly/internal/store"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Redis backs the cart store and the product cache
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// MongoDB backs the product catalog
	mongoDB, err := catalog.ConnectMongoDB(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer mongoDB.Client().Disconnect(ctx)
	log.Info().Str("uri", cfg.Mongo.URI).Msg("connected to MongoDB")

	// Postgres backs orders and the outbox
	ordersRepo, err := orders.NewPostgresRepository(&orders.Credentials{
		Host:              cfg.Postgres.Host,
		Port:              cfg.Postgres.Port,
		User:              cfg.Postgres.User,
		Password:          cfg.Postgres.Password,
		DBName:            cfg.Postgres.DBName,
		MigrationsDirPath: cfg.Postgres.MigrationsDirPath,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer ordersRepo.Close()
	if err := ordersRepo.RunMigrations(&orders.Credentials{
		MigrationsDirPath: cfg.Postgres.MigrationsDirPath,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}
	log.Info().Msg("connected to postgres")

	catalogRepo := catalog.NewBreakerRepository(catalog.NewMongoRepository(mongoDB), log)
	catalogSvc := catalog.NewService(catalogRepo, catalog.NewRedisCache(redisClient), log)

	cartStore := store.NewRedisStore(redisClient)
	cartManager := cart.NewManager(cartStore, log, cfg.Cart.IdleEviction)
	go cartManager.Run(ctx)

	checkoutSvc := checkout.NewService(cartManager, ordersRepo, log)

	if cfg.Kafka.Enabled {
		poller := checkout.NewOutboxPoller(ordersRepo, log, cfg.Kafka.Brokers...)
		go poller.Run(ctx)
	}

	checker := serviceability.NewChecker(cfg.Delivery.Pincodes)

	cartHandler := h.NewCartHandler(cartManager, catalogSvc, cfg.Pricing, cfg.Server.RequestTimeout)
	catalogHandler := h.NewCatalogHandler(catalogSvc)
	ordersHandler := h.NewOrdersHandler(checkoutSvc, ordersRepo, checker)
	pincodeHandler := h.NewPincodeHandler(checker)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/{id}", catalogHandler.GetProduct)
			r.Post("/", catalogHandler.CreateProduct)
			r.Put("/{id}", catalogHandler.UpdateProduct)
			r.Delete("/{id}", catalogHandler.DeleteProduct)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", catalogHandler.ListCategories)
			r.Post("/", catalogHandler.CreateCategory)
			r.Put("/{id}", catalogHandler.UpdateCategory)
			r.Delete("/{id}", catalogHandler.DeleteCategory)
		})

		r.Post("/checkout", ordersHandler.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{id}", ordersHandler.GetOrder)
		})

		r.Get("/pincode/check/{pincode}", pincodeHandler.Check)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      otelhttp.NewHandler(r, "delishly"),
		ReadTimeout:  cfg.Server.RequestTimeout,
		WriteTimeout: cfg.Server.RequestTimeout,
		IdleTimeout:  60 * cfg.Server.RequestTimeout / 30,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("delishly storefront listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	stop()
	cartManager.Close()
	log.Info().Msg("server exited")
}
