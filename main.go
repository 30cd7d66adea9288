package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/tkwed/tours-api/internal/config"
	"github.com/tkwed/tours-api/internal/db"
	"github.com/tkwed/tours-api/internal/logger"
	"github.com/tkwed/tours-api/internal/netaddr"
	"github.com/tkwed/tours-api/internal/server"
	"github.com/tkwed/tours-api/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	cfg := config.Load()

	lg := logger.New(cfg.LogLevel)
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.TracingEnabled)
	if err != nil {
		lg.Fatal("telemetry setup", zap.Error(err))
	}

	d, err := db.Open(ctx, db.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DSN(),
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		ConnectAttempts: cfg.DBConnectAttempts,
		ConnectInterval: cfg.DBConnectInterval,
		AutoMigrate:     cfg.DBAutoMigrate,
	})
	if err != nil {
		lg.Fatal("db open", zap.String("driver", cfg.DBDriver), zap.Error(err))
	}
	defer d.Close()
	lg.Info("connected to database", zap.String("driver", cfg.DBDriver), zap.String("dialect", d.Dialect()))

	prometheus.MustRegister(collectors.NewDBStatsCollector(d.DB.DB, "tours"))

	gin.SetMode(gin.ReleaseMode)
	router := server.NewRouter(server.Options{
		Logger:      lg,
		Store:       d,
		ServiceName: cfg.ServiceName,
		CORSOrigins: cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.ListenAddr(netaddr.LocalIPv4()),
		Handler: router,
	}

	errc := make(chan error, 1)
	go func() {
		lg.Info("listening", zap.String("addr", "http://"+srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			lg.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		lg.Info("shutting down")
	}

	sctx, scancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer scancel()
	if err := srv.Shutdown(sctx); err != nil {
		lg.Error("http shutdown", zap.Error(err))
	}
	if err := shutdownTelemetry(sctx); err != nil {
		lg.Error("telemetry shutdown", zap.Error(err))
	}
}
