package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/iliyamo/karting-reservation/internal/config"
	"github.com/iliyamo/karting-reservation/internal/database"
	"github.com/iliyamo/karting-reservation/internal/handler"
	"github.com/iliyamo/karting-reservation/internal/logger"
	"github.com/iliyamo/karting-reservation/internal/middleware"
	"github.com/iliyamo/karting-reservation/internal/notify"
	"github.com/iliyamo/karting-reservation/internal/queue"
	"github.com/iliyamo/karting-reservation/internal/receipt"
	"github.com/iliyamo/karting-reservation/internal/repository"
	"github.com/iliyamo/karting-reservation/internal/repository/memory"
	"github.com/iliyamo/karting-reservation/internal/router"
	"github.com/iliyamo/karting-reservation/internal/service"
)

// stores bundles the persistence backends selected by STORAGE_DRIVER.
type stores struct {
	customers    service.CustomerStore
	karts        service.KartStore
	reservations service.ReservationStore
	db           *sql.DB
}

func openStores(ctx context.Context, cfg config.Config, zl *zap.Logger) (stores, error) {
	if cfg.StorageDriver == config.StorageMemory {
		zl.Warn("using in-memory storage; data is lost on restart")
		return stores{
			customers:    memory.NewCustomerStore(),
			karts:        memory.NewKartStore(),
			reservations: memory.NewReservationStore(),
		}, nil
	}

	db, err := database.Open(ctx, database.Options{
		User:     cfg.DBUser,
		Password: cfg.DBPass,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		Name:     cfg.DBName,
	})
	if err != nil {
		return stores{}, err
	}
	if cfg.DBMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return stores{}, err
		}
		zl.Info("database schema ready")
	}
	return stores{
		customers:    repository.NewCustomerRepo(db),
		karts:        repository.NewKartRepo(db),
		reservations: repository.NewReservationRepo(db),
		db:           db,
	}, nil
}

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()
	cfg := config.Load()

	zl, err := logger.New(cfg.LogLevel, cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("open storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	if st.db != nil {
		defer st.db.Close()
	}

	var events service.EventPublisher
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.RabbitURL, zl.Named("publisher"))
		consumer := queue.NewConsumer(cfg.RabbitURL, filepath.Join("logs", "reservas.log"), zl.Named("consumer"))
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				zl.Error("reservation consumer stopped", zap.Error(err))
			}
		}()
	}

	reservations := service.NewReservationService(st.customers, st.karts, st.reservations, events, zl.Named("reservations"))
	receipts := service.NewReceiptService(reservations, receipt.NewRenderer(), notify.NewMailer(cfg.SMTP, zl.Named("mailer")), zl.Named("receipts"))

	rdb := config.NewRedisClient(config.LoadRedisConfig(), zl)
	if rdb != nil {
		defer rdb.Close()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(zl.Named("http")))

	router.RegisterRoutes(e)
	router.RegisterAPI(e, router.Handlers{
		Customers:    handler.NewCustomerHandler(service.NewCustomerService(st.customers)),
		Karts:        handler.NewKartHandler(service.NewKartService(st.karts)),
		Reservations: handler.NewReservationHandler(reservations, receipts),
	},
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, zl.Named("ratelimit")),
		middleware.NewRedisCache(config.LoadCacheConfig(), rdb, zl.Named("cache")),
	)

	addr := ":" + cfg.Port
	go func() {
		zl.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env), zap.String("storage", cfg.StorageDriver))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("shutdown", zap.Error(err))
	}
}
