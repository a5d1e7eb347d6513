package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/booking-crm/internal/audit"
	"github.com/BruksfildServices01/booking-crm/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-crm/internal/db"
	"github.com/BruksfildServices01/booking-crm/internal/domain/availability"
	"github.com/BruksfildServices01/booking-crm/internal/events"
	"github.com/BruksfildServices01/booking-crm/internal/handlers"
	infraRepo "github.com/BruksfildServices01/booking-crm/internal/infra/repository"
	"github.com/BruksfildServices01/booking-crm/internal/lock"
	"github.com/BruksfildServices01/booking-crm/internal/logger"
	"github.com/BruksfildServices01/booking-crm/internal/middleware"
	"github.com/BruksfildServices01/booking-crm/internal/routes"
	"github.com/BruksfildServices01/booking-crm/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/booking-crm/internal/usecase/appointment"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	timezone.SetDefault(cfg.DefaultTimezone)

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}

	checks := map[string]handlers.Check{
		"postgres": func(ctx context.Context) error { return dbpkg.Ping(ctx, db) },
	}

	// ======================================================
	// BOOKING LOCK
	// ======================================================
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			return err
		}
		locker = lock.NewRedisLocker(rdb, cfg.BookingLockTTL, log)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Info("booking lock: redis", zap.String("addr", cfg.RedisAddr))
	} else {
		log.Info("booking lock: in-process")
	}

	// ======================================================
	// AUDIT
	// ======================================================
	sink, closeSink, err := auditSink(ctx, cfg, db, log, checks)
	if err != nil {
		return err
	}
	defer closeSink()

	dispatcher := audit.NewDispatcher(sink, log)

	// ======================================================
	// EVENTS
	// ======================================================
	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPUrl != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPUrl, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		publisher = p
		log.Info("events: amqp", zap.String("exchange", cfg.AMQPExchange))
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORSMiddleware(cfg.CORSOrigins),
	)

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Appointment: ucAppointment.Deps{
			Repo:   infraRepo.NewAppointmentGormRepository(db),
			Audit:  dispatcher,
			Events: publisher,
			Clock:  availability.SystemClock,
			Locker: locker,
			Log:    log,
		},
		AuditSink:   sink,
		ReadyChecks: checks,
		Log:         log,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Warn("audit drain incomplete", zap.Error(err))
	}
	if err := publisher.Close(); err != nil {
		log.Warn("event publisher close", zap.Error(err))
	}

	return nil
}

// auditSink picks Mongo when configured and falls back to the appointments
// database.
func auditSink(
	ctx context.Context,
	cfg *config.Config,
	db *gorm.DB,
	log *zap.Logger,
	checks map[string]handlers.Check,
) (audit.Sink, func(), error) {
	if cfg.MongoURI == "" {
		log.Info("audit sink: postgres")
		return audit.NewGormSink(db), func() {}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, err
	}

	closeFn := func() {
		c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(c)
	}

	sink, err := audit.NewMongoSink(ctx, client.Database(cfg.MongoDatabase))
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
	log.Info("audit sink: mongo", zap.String("database", cfg.MongoDatabase))
	return sink, closeFn, nil
}
