package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/cart"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/catalog"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/checkout"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/db"
	h "github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/http"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/logger"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/poller"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/session"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/storage"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/telemetry"
	"github.com/Manmohan01-cloud/NaturalHealthShopApp/internal/wishlist"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg := loadConfig()
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	ctx := context.Background()

	tp, err := telemetry.InitTracerProvider(ctx, "healthshop-storefront", cfg.TraceExporter)
	if err != nil {
		log.WithError(err).Fatal("failed to init tracing")
	}
	defer tp.Shutdown(context.Background())

	var sqliteDB *sql.DB
	openSQLite := func() *sql.DB {
		if sqliteDB == nil {
			sqliteDB, err = db.OpenAndMigrate(cfg.SQLitePath)
			if err != nil {
				log.WithError(err).Fatal("failed to open sqlite database")
			}
			log.Infof("SQLite ready at %s", cfg.SQLitePath)
		}
		return sqliteDB
	}

	kv, closeStorage := openStorage(ctx, cfg, log, openSQLite)
	defer closeStorage()

	var source catalog.Source
	switch cfg.CatalogSource {
	case "http":
		creds := session.NewCredentials(cfg.CatalogToken, cfg.CatalogRefreshToken)
		source = catalog.NewHTTPSource(cfg.CatalogURL, creds, cfg.RequestTimeout)
		log.Infof("Catalog source: %s", cfg.CatalogURL)
	case "sqlite":
		source = catalog.NewSQLiteSource(openSQLite())
	default:
		log.Fatalf("unknown catalog source %q", cfg.CatalogSource)
	}
	if sqliteDB != nil {
		defer sqliteDB.Close()
	}

	cartStore := cart.NewStore(kv, log)
	wishlistStore := wishlist.NewStore(kv, log)
	cartStore.Load(ctx)
	wishlistStore.Load(ctx)

	var publisher checkout.Publisher
	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()
	if len(cfg.KafkaBrokers) > 0 {
		kp := checkout.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kp.Close()
		publisher = kp

		p := poller.NewPoller(cartStore, log, cfg.KafkaBrokers...)
		defer p.Close()
		go p.Run(pollCtx)
		log.Infof("Kafka enabled: %v", cfg.KafkaBrokers)
	}

	catalogService := catalog.NewService(source, log, cfg.RequestTimeout)
	handlers := h.Handlers{
		Products: h.NewProductHandler(catalogService, cartStore, wishlistStore, cfg.RequestTimeout),
		Cart:     h.NewCartHandler(cartStore, catalogService, cfg.RequestTimeout),
		Wishlist: h.NewWishlistHandler(wishlistStore, catalogService, cfg.RequestTimeout),
		Checkout: h.NewCheckoutHandler(checkout.NewService(publisher, log)),
	}
	router := h.NewRouter(h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
	}, handlers, log)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	}
	stopPoller()

	// flush pending snapshot writes before the backends close; Close cancels
	// a write still running at the deadline and waits for it to return
	if err := cartStore.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to flush cart")
	}
	if err := wishlistStore.Close(shutdownCtx); err != nil {
		log.WithError(err).Error("failed to flush wishlist")
	}

	log.Info("server exited")
}

// openStorage connects the configured snapshot backend. The returned func releases it.
func openStorage(ctx context.Context, cfg *Config, log logrus.FieldLogger, openSQLite func() *sql.DB) (storage.Store, func()) {
	switch cfg.StorageBackend {
	case "memory":
		log.Warn("using in-memory storage, cart and wishlist are lost on restart")
		return storage.NewMemoryStore(), func() {}

	case "redis":
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("Redis connection failed")
		}
		log.Info("Redis ping succeeded")
		return storage.NewRedisStore(redisClient, 0), func() { redisClient.Close() }

	case "mongo":
		mongoDB, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		store := storage.NewMongoStore(mongoDB)
		if err := store.CreateIndexes(ctx); err != nil {
			log.WithError(err).Warn("failed to create snapshot indexes")
		}
		log.Infof("Connected to MongoDB at %s", cfg.MongoURI)
		return store, func() { mongoDB.Client().Disconnect(context.Background()) }

	case "sqlite":
		return storage.NewSQLiteStore(openSQLite()), func() {}

	default:
		log.Fatal(fmt.Sprintf("unknown storage backend %q", cfg.StorageBackend))
		return nil, nil
	}
}
