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

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/slotlock"
	"github.com/BruksfildServices01/clinic-scheduler/internal/logger"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	zl, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	db := dbpkg.NewDB(cfg, zl)

	auditLogger := audit.New(db)
	dispatcher := audit.NewDispatcher(auditLogger, zl)
	defer dispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Locker:      slotLocker(cfg, zl),
		Gateway:     paymentGateway(cfg, zl),
		Audit:       dispatcher,
		AuditLogger: auditLogger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zl.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
}

func slotLocker(cfg *config.Config, zl *zap.Logger) domain.SlotLocker {
	if cfg.RedisAddr == "" {
		zl.Info("REDIS_ADDR not set, slot locking relies on the database only")
		return slotlock.Noop{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := slotlock.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		zl.Warn("redis unavailable, slot locking relies on the database only", zap.Error(err))
		return slotlock.Noop{}
	}

	ttl := time.Duration(cfg.SlotLockTTLSeconds) * time.Second
	return slotlock.NewRedisLocker(client, ttl, zl)
}

func paymentGateway(cfg *config.Config, zl *zap.Logger) payment.Gateway {
	if cfg.MercadoPagoAccessToken == "" {
		zl.Info("MERCADOPAGO_ACCESS_TOKEN not set, payments disabled")
		return payment.Disabled{}
	}

	mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken)
	if err != nil {
		zl.Error("failed to init mercadopago, payments disabled", zap.Error(err))
		return payment.Disabled{}
	}
	return mp
}
