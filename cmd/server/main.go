package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/dsmolkov/ecommerce_backend/internal/cache"
	"github.com/dsmolkov/ecommerce_backend/internal/config"
	"github.com/dsmolkov/ecommerce_backend/internal/es"
	"github.com/dsmolkov/ecommerce_backend/internal/handlers"
	"github.com/dsmolkov/ecommerce_backend/internal/logging"
	loggingmw "github.com/dsmolkov/ecommerce_backend/internal/middleware/logging"
	"github.com/dsmolkov/ecommerce_backend/internal/mykafka"
	"github.com/dsmolkov/ecommerce_backend/internal/repo"
	"github.com/dsmolkov/ecommerce_backend/internal/service"
	httpserver "github.com/dsmolkov/ecommerce_backend/internal/transport/http"
)

const productIndex = "product"

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	db, err := config.InitDB(ctx, configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	jwtSecret := []byte(configuration.JWT_SECRET)
	refreshSecret := []byte(configuration.REFRESH_SECRET)

	var prod *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		prod = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	var productCache *cache.ProductCache
	if configuration.REDIS_ADDR != "" {
		rdb := redis.NewClient(&redis.Options{Addr: configuration.REDIS_ADDR})
		productCache = cache.NewProductCache(rdb, 10*time.Minute)
	}

	var searchHandler *handlers.SearchHandler
	var productHandler *handlers.ProductHandler
	if configuration.ES_URL != "" {
		esClient, err := es.NewClient(configuration)
		if err != nil {
			log.Fatal(err)
		}
		searchHandler = handlers.NewSearchHandler(esClient, productIndex)
		productHandler = &handlers.ProductHandler{DB: db, Producer: prod, ES: esClient, ESIndex: productIndex, Cache: productCache}
	} else {
		productHandler = &handlers.ProductHandler{DB: db, Producer: prod, Cache: productCache}
	}

	store := repo.NewStore(db)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		AuthHandler:    &handlers.AuthHandler{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret, Producer: prod},
		ProductHandler: productHandler,
		CartHandler:    &handlers.CartHandler{Svc: service.NewCartService(store), Producer: prod},
		OrderHandler: &handlers.OrderHandler{
			Checkout: service.NewCheckoutService(store),
			Orders:   service.NewOrderService(store),
			Producer: prod,
		},
		SearchHandler: searchHandler,
		TokenService:  &service.TokenService{DB: db, JWTSecret: jwtSecret, RefreshSecret: refreshSecret},
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":8080",
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
