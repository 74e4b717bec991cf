package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"seatmap/config"
	"seatmap/internal/catalog"
	"seatmap/internal/database"
	"seatmap/internal/handler"
	"seatmap/internal/metrics"
	"seatmap/internal/pricing"
	"seatmap/internal/queue"
	"seatmap/internal/render"
	"seatmap/internal/repository"
	"seatmap/internal/service"
	"seatmap/internal/storage"
	"seatmap/internal/worker"
	"seatmap/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.Server.LogLevel)
	gin.SetMode(cfg.Server.Mode)
	log := logger.WithComponent("server")
	defer func() { _ = logger.L.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	recorder := metrics.NewPrometheus()

	cat, closeCatalog, err := openCatalog(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to load venue", zap.Error(err))
	}
	defer closeCatalog()

	store, closeStore, err := openStorage(ctx, cfg, recorder)
	if err != nil {
		log.Fatal("Failed to initialize storage", zap.Error(err))
	}
	defer closeStore()

	prices := pricing.FromConfig(cfg.Pricing)
	svc := service.NewSeatMapService(
		cat,
		prices,
		render.NewComposer(cfg.Layout.Breakpoint, prices),
		store,
		service.WithRecorder(recorder),
		service.WithKeyPrefix(cfg.Storage.KeyPrefix),
		service.WithIdleTTL(cfg.Session.IdleTTL),
	)
	go func() { _ = svc.Run(ctx) }()

	templates, err := handler.LoadTemplates()
	if err != nil {
		log.Fatal("Failed to parse templates", zap.Error(err))
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(templates)
	router.GET("/metrics", gin.WrapH(recorder.Handler()))
	router.Use(handler.SessionMiddleware(cfg.Server.SecureCookie))
	handler.NewSeatMapHandler(svc).RegisterRoutes(router)
	handler.NewPageHandler(svc).RegisterRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("Server started",
			zap.String("addr", server.Addr),
			zap.String("venue_id", cat.Venue().VenueID),
			zap.String("storage", string(cfg.Storage.Backend)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server stopped unexpectedly", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

// openCatalog postgres 來源需要先建立連線與資料表
func openCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, func(), error) {
	if cfg.Catalog.Source != config.CatalogSourcePostgres {
		cat, err := catalog.Open(ctx, cfg.Catalog, nil)
		return cat, func() {}, err
	}

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewVenueRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	cat, err := catalog.Open(ctx, cfg.Catalog, repo)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return cat, pool.Close, nil
}

// openStorage 依設定選擇後端；WriteBehind 開啟時 Set 經由隊列交給 worker 寫入
func openStorage(ctx context.Context, cfg *config.Config, recorder metrics.Recorder) (storage.KeyValueStore, func(), error) {
	var (
		store   storage.KeyValueStore
		closeFn = func() {}
	)

	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		store = storage.NewMemoryStore()
	case config.StorageBackendRedis:
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store = storage.NewRedisStore(rdb, 0)
		closeFn = func() { _ = rdb.Close() }
	case config.StorageBackendSQLite:
		db, err := database.InitSQLite(&cfg.SQLite)
		if err != nil {
			return nil, nil, err
		}
		sqlite, err := storage.NewSQLiteStore(ctx, db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		store = sqlite
		closeFn = func() { _ = db.Close() }
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if !cfg.Storage.WriteBehind {
		return store, closeFn, nil
	}

	q := queue.NewPersistQueue(cfg.Storage.QueueSize)
	w := worker.NewPersistWorker(store, q, func(error) { recorder.PersistFailed() })
	if err := w.Start(ctx); err != nil {
		closeFn()
		return nil, nil, err
	}
	return storage.NewWriteBehind(store, q), closeFn, nil
}
